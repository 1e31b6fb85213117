// Package loader reads STL files from disk into meshes. Files load
// concurrently with a bounded number of workers; each file succeeds or
// fails on its own.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chazu/printcost/pkg/logging"
	"github.com/chazu/printcost/pkg/mesh"
	"github.com/chazu/printcost/pkg/stl"
)

// DefaultWorkers bounds concurrent file reads when Loader.Workers is unset.
const DefaultWorkers = 4

var (
	// ErrNotSTL rejects a path without a .stl extension.
	ErrNotSTL = errors.New("not an .stl file")
	// ErrSuperseded marks results of a batch replaced by a newer Load.
	ErrSuperseded = errors.New("load superseded by newer request")
)

// Result is the outcome for one path. Exactly one of Mesh and Err is set.
type Result struct {
	Path   string     `json:"path"`
	Name   string     `json:"name"`
	Format stl.Format `json:"format"`
	Mesh   *mesh.Mesh `json:"-"`
	Err    error      `json:"-"`
}

// IsSTL reports whether name has a .stl extension, ignoring case.
func IsSTL(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".stl")
}

// Loader loads batches of files. Starting a new batch marks any batch
// still in flight as superseded.
type Loader struct {
	Workers int

	// ReadFile defaults to os.ReadFile.
	ReadFile func(path string) ([]byte, error)

	mu         sync.Mutex
	generation uint64
}

// New returns a loader with the given worker bound.
func New(workers int) *Loader {
	return &Loader{Workers: workers}
}

// Load reads and decodes paths, returning one Result per path in input
// order. Cancelling ctx fails the files not yet read with ctx.Err().
// When another Load starts before this one finishes, every Result that
// had not failed on its own gets ErrSuperseded and its mesh is dropped.
func (l *Loader) Load(ctx context.Context, paths []string) []Result {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.mu.Unlock()

	results := make([]Result, len(paths))
	jobs := make(chan int)

	workers := l.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = l.loadOne(ctx, paths[i])
			}
		}()
	}

feed:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			for j := i; j < len(paths); j++ {
				results[j] = Result{Path: paths[j], Name: filepath.Base(paths[j]), Err: ctx.Err()}
			}
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if l.current() != gen {
		logging.Logger().Debug("discarding superseded load", "generation", gen, "files", len(paths))
		for i := range results {
			if results[i].Err == nil {
				results[i].Mesh = nil
				results[i].Err = ErrSuperseded
			}
		}
	}
	return results
}

func (l *Loader) current() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

func (l *Loader) loadOne(ctx context.Context, path string) Result {
	res := Result{Path: path, Name: filepath.Base(path)}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	if !IsSTL(path) {
		res.Err = fmt.Errorf("%s: %w", res.Name, ErrNotSTL)
		logging.Logger().Warn("skipping file", "file", res.Name, "err", ErrNotSTL)
		return res
	}

	read := l.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	buf, err := read(path)
	if err != nil {
		res.Err = fmt.Errorf("loader: %w", err)
		logging.Logger().Error("read failed", "file", res.Name, "err", err)
		return res
	}

	m, format, err := stl.DecodeMesh(res.Name, buf)
	if err != nil {
		res.Err = err
		logging.Logger().Error("decode failed", "file", res.Name, "err", err)
		return res
	}
	res.Mesh = m
	res.Format = format
	logging.Logger().Info("loaded model", "file", res.Name, "format", format.String(), "triangles", m.TriangleCount())
	return res
}

// Meshes returns the successful meshes keyed by path and the failures.
func Meshes(results []Result) (map[string]*mesh.Mesh, []error) {
	ok := make(map[string]*mesh.Mesh, len(results))
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		ok[r.Path] = r.Mesh
	}
	return ok, errs
}
