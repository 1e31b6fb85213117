package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/chazu/printcost/pkg/logging"
)

const fileExt = ".toml"

// FileStore keeps one <key>.toml file per record inside Dir.
type FileStore struct {
	Dir string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("settings: create %s: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, key+fileExt)
}

func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("settings: read %s: %w", key, err)
	}
	return data, nil
}

// Set writes value through a temporary file so readers never see a
// partially written record.
func (s *FileStore) Set(key string, value []byte) error {
	tmp, err := os.CreateTemp(s.Dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("settings: write %s: %w", key, err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: write %s: %w", key, err)
	}
	return nil
}

// keyFor maps a watched file name back to its record key. Temporary
// files and foreign files report false.
func keyFor(name string) (string, bool) {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, fileExt) {
		return "", false
	}
	return strings.TrimSuffix(base, fileExt), true
}

// Watch calls onChange with the record key whenever a record file is
// created, written or renamed into place. It blocks until ctx is done.
func (s *FileStore) Watch(ctx context.Context, onChange func(key string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("settings: watch: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.Dir); err != nil {
		return fmt.Errorf("settings: watch %s: %w", s.Dir, err)
	}

	for {
		select {
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			key, ok := keyFor(e.Name)
			if !ok {
				continue
			}
			logging.Logger().Debug("settings changed", "key", key, "op", e.Op.String())
			onChange(key)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Errorf("settings watcher: %v", err)
		case <-ctx.Done():
			return nil
		}
	}
}
