package settings

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/chazu/printcost/pkg/logging"
	"github.com/chazu/printcost/pkg/pricing"
)

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get("x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}
	v := []byte("a = 1")
	if err := s.Set("x", v); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	v[0] = 'z'
	got, err := s.Get("x")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "a = 1" {
		t.Errorf("Get() = %q, stored value aliased caller slice", got)
	}
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "settings")
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if _, err := s.Get(KeyBedSettings); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.Set(KeyBedSettings, []byte("width = 1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "bed_settings.toml")); err != nil {
		t.Fatalf("record file missing: %v", err)
	}
	got, err := s.Get(KeyBedSettings)
	if err != nil || string(got) != "width = 1" {
		t.Errorf("Get() = %q, %v", got, err)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestManagerDefaultsWhenAbsent(t *testing.T) {
	m := NewManager(NewMemoryStore())
	got := m.Snapshot()
	if !reflect.DeepEqual(got, Defaults()) {
		t.Errorf("Snapshot() = %+v, want defaults", got)
	}
}

func TestManagerDefaultsWhenCorrupt(t *testing.T) {
	store := NewMemoryStore()
	for _, k := range Keys() {
		store.Set(k, []byte("this is = = not toml"))
	}
	m := NewManager(store)
	if got := m.Snapshot(); !reflect.DeepEqual(got, Defaults()) {
		t.Errorf("Snapshot() with corrupt records = %+v, want defaults", got)
	}
}

func TestManagerEmptyListsFallBack(t *testing.T) {
	m := NewManager(NewMemoryStore())
	if err := m.SaveFilaments(nil); err != nil {
		t.Fatalf("SaveFilaments() error = %v", err)
	}
	if got := m.Filaments(); len(got) != len(pricing.DefaultFilaments()) {
		t.Errorf("Filaments() = %v, want defaults", got)
	}
}

func TestManagerRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m := NewManager(store)

	want := Defaults()
	want.Print.InfillPercent = 35
	want.Print.Support = true
	want.Bed = BedSettings{Width: 256, Depth: 256, Height: 256}
	want.Cost.FilamentID = "petg"
	want.Cost.PrinterID = "bambu_x1c"
	want.Cost.MarkupPercent = 150
	want.Filaments = append(want.Filaments, pricing.Filament{ID: "asa", Name: "ASA", PricePerKg: 110, Density: 1.07})
	want.Printers = want.Printers[:1]

	if err := m.SaveSnapshot(want); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	got := NewManager(store).Snapshot()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot() = %+v\nwant %+v", got, want)
	}
	if f := got.Filament(); f.ID != "petg" {
		t.Errorf("Filament() = %q, want petg", f.ID)
	}
	if p := got.Printer(); p.ID != "ender3" {
		t.Errorf("Printer() = %q, want fallback ender3", p.ID)
	}
}

func TestPrintSettingsInfillFraction(t *testing.T) {
	if got := DefaultPrintSettings().InfillFraction(); got != 0.2 {
		t.Errorf("InfillFraction() = %v, want 0.2", got)
	}
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name string
		key  string
		ok   bool
	}{
		{"/a/print_settings.toml", "print_settings", true},
		{"printers.toml", "printers", true},
		{"/a/printers.abc123.tmp", "", false},
		{"/a/README", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := keyFor(tt.name)
			if key != tt.key || ok != tt.ok {
				t.Errorf("keyFor(%q) = %q, %v; want %q, %v", tt.name, key, ok, tt.key, tt.ok)
			}
		})
	}
}

func TestFileStoreWatch(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func(key string) { changed <- key })
	}()

	// The watcher registers asynchronously, so keep writing until an
	// event arrives.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case key := <-changed:
			if key != KeyCostSettings {
				t.Fatalf("onChange(%q), want %q", key, KeyCostSettings)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch() error = %v", err)
			}
			return
		case <-tick.C:
			store.Set(KeyCostSettings, []byte("markup_percent = 100"))
		case <-deadline:
			t.Fatal("no change notification within 5s")
		}
	}
}
