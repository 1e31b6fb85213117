package settings

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/chazu/printcost/pkg/logging"
	"github.com/chazu/printcost/pkg/pricing"
)

// Snapshot is every record at once.
type Snapshot struct {
	Print     PrintSettings        `json:"print"`
	Bed       BedSettings          `json:"bed"`
	Cost      pricing.CostSettings `json:"cost"`
	Filaments []pricing.Filament   `json:"filaments"`
	Printers  []pricing.Printer    `json:"printers"`
}

// Defaults returns a snapshot of compiled-in records.
func Defaults() Snapshot {
	return Snapshot{
		Print:     DefaultPrintSettings(),
		Bed:       DefaultBedSettings(),
		Cost:      pricing.DefaultCostSettings(),
		Filaments: pricing.DefaultFilaments(),
		Printers:  pricing.DefaultPrinters(),
	}
}

// Filament resolves the cost settings' filament, falling back to the
// first entry.
func (s Snapshot) Filament() pricing.Filament {
	f, _ := pricing.FindFilament(s.Filaments, s.Cost.FilamentID)
	return f
}

// Printer resolves the cost settings' printer, falling back to the
// first entry.
func (s Snapshot) Printer() pricing.Printer {
	p, _ := pricing.FindPrinter(s.Printers, s.Cost.PrinterID)
	return p
}

// Manager reads and writes typed records through a Store.
type Manager struct {
	store Store
}

// NewManager wraps store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// load decodes key into v. It reports false, after logging, when the
// record is absent or unreadable; v is then left for the caller to fill.
func (m *Manager) load(key string, v interface{}) bool {
	data, err := m.store.Get(key)
	if errors.Is(err, ErrNotFound) {
		logging.Logger().Debug("settings record absent, using default", "key", key)
		return false
	}
	if err != nil {
		logging.Logger().Warn("settings record unreadable, using default", "key", key, "err", err)
		return false
	}
	if err := toml.Unmarshal(data, v); err != nil {
		logging.Logger().Warn("settings record corrupt, using default", "key", key, "err", err)
		return false
	}
	return true
}

func (m *Manager) save(key string, v interface{}) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("settings: encode %s: %w", key, err)
	}
	return m.store.Set(key, data)
}

func (m *Manager) PrintSettings() PrintSettings {
	var p PrintSettings
	if !m.load(KeyPrintSettings, &p) {
		return DefaultPrintSettings()
	}
	return p
}

func (m *Manager) SavePrintSettings(p PrintSettings) error {
	return m.save(KeyPrintSettings, p)
}

func (m *Manager) BedSettings() BedSettings {
	var b BedSettings
	if !m.load(KeyBedSettings, &b) {
		return DefaultBedSettings()
	}
	return b
}

func (m *Manager) SaveBedSettings(b BedSettings) error {
	return m.save(KeyBedSettings, b)
}

func (m *Manager) CostSettings() pricing.CostSettings {
	var c pricing.CostSettings
	if !m.load(KeyCostSettings, &c) {
		return pricing.DefaultCostSettings()
	}
	return c
}

func (m *Manager) SaveCostSettings(c pricing.CostSettings) error {
	return m.save(KeyCostSettings, c)
}

// Filaments returns the stored list; an empty stored list counts as
// absent since lookups need at least one entry.
func (m *Manager) Filaments() []pricing.Filament {
	var r filamentsRecord
	if !m.load(KeyFilaments, &r) || len(r.Filaments) == 0 {
		return pricing.DefaultFilaments()
	}
	return r.Filaments
}

func (m *Manager) SaveFilaments(fs []pricing.Filament) error {
	return m.save(KeyFilaments, filamentsRecord{Filaments: fs})
}

// Printers returns the stored list, or the defaults when empty.
func (m *Manager) Printers() []pricing.Printer {
	var r printersRecord
	if !m.load(KeyPrinters, &r) || len(r.Printers) == 0 {
		return pricing.DefaultPrinters()
	}
	return r.Printers
}

func (m *Manager) SavePrinters(ps []pricing.Printer) error {
	return m.save(KeyPrinters, printersRecord{Printers: ps})
}

// Snapshot loads every record.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		Print:     m.PrintSettings(),
		Bed:       m.BedSettings(),
		Cost:      m.CostSettings(),
		Filaments: m.Filaments(),
		Printers:  m.Printers(),
	}
}

// SaveSnapshot writes every record, stopping at the first failure.
func (m *Manager) SaveSnapshot(s Snapshot) error {
	if err := m.SavePrintSettings(s.Print); err != nil {
		return err
	}
	if err := m.SaveBedSettings(s.Bed); err != nil {
		return err
	}
	if err := m.SaveCostSettings(s.Cost); err != nil {
		return err
	}
	if err := m.SaveFilaments(s.Filaments); err != nil {
		return err
	}
	return m.SavePrinters(s.Printers)
}
