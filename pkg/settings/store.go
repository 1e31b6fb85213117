// Package settings persists user preferences as TOML records in a
// key/value store. Every record has a compiled-in default that is used
// when the stored text is missing or cannot be decoded.
package settings

import (
	"errors"
	"sync"
)

// Record keys.
const (
	KeyPrintSettings = "print_settings"
	KeyBedSettings   = "bed_settings"
	KeyCostSettings  = "cost_settings"
	KeyFilaments     = "filaments"
	KeyPrinters      = "printers"
)

// Keys lists every record key in a stable order.
func Keys() []string {
	return []string{KeyPrintSettings, KeyBedSettings, KeyCostSettings, KeyFilaments, KeyPrinters}
}

// ErrNotFound is returned by Store.Get for a key that was never set.
var ErrNotFound = errors.New("settings: key not found")

// Store holds raw record text by key.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// MemoryStore is a Store kept in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	s.mu.Lock()
	s.data[key] = v
	s.mu.Unlock()
	return nil
}
