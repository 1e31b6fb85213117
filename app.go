package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/chazu/printcost/pkg/config"
	"github.com/chazu/printcost/pkg/engine"
	"github.com/chazu/printcost/pkg/estimate"
	"github.com/chazu/printcost/pkg/kernel/sdfx"
	"github.com/chazu/printcost/pkg/loader"
	"github.com/chazu/printcost/pkg/logging"
	"github.com/chazu/printcost/pkg/mesh"
	"github.com/chazu/printcost/pkg/project"
	"github.com/chazu/printcost/pkg/quote"
	"github.com/chazu/printcost/pkg/script"
	"github.com/chazu/printcost/pkg/settings"
	"github.com/chazu/printcost/pkg/stl"
)

// Events emitted to the frontend.
const (
	eventModelsChanged   = "models:changed"
	eventSettingsChanged = "settings:changed"
)

// colorPalette colors script parts in the preview.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

var errNoRuntime = errors.New("desktop runtime not started")

// App is the Wails backend. Its exported methods are bound to the
// frontend.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg      config.Config
	store    settings.Store
	settings *settings.Manager
	runner   *script.Runner
	loader   *loader.Loader
	project  *project.Project
}

// MeshData is a mesh in the flat layout the viewer uploads directly.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// ModelData is one project model with its geometry and estimate.
type ModelData struct {
	project.Model
	Mesh     MeshData          `json:"mesh"`
	Estimate estimate.Estimate `json:"estimate"`
}

// LoadResult reports a batch of opened files.
type LoadResult struct {
	Models []ModelData `json:"models"`
	Errors []string    `json:"errors"`
}

// EvalErrorData is an error shown in the script editor.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// ScriptResult is the output of EvaluateScript.
type ScriptResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Quote    *quote.Quote    `json:"quote"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []string        `json:"warnings"`
}

// NewApp wires the backend around cfg and a settings store.
func NewApp(cfg config.Config, store settings.Store) *App {
	eng := engine.NewEngine()
	eng.Timeout = cfg.EvalTimeout()
	// Scripts get their own loader so a script run never supersedes a
	// file-open batch still in flight.
	return &App{
		cfg:      cfg,
		store:    store,
		settings: settings.NewManager(store),
		runner: &script.Runner{
			Engine:       eng,
			Kernel:       sdfx.New(),
			Loader:       loader.New(cfg.LoadWorkers),
			DefaultHours: cfg.DefaultPrintHours,
		},
		loader:  loader.New(cfg.LoadWorkers),
		project: project.New(),
	}
}

// startup is called by Wails once the window exists.
func (a *App) startup(ctx context.Context) {
	a.ctx, a.cancel = context.WithCancel(ctx)
	fs, ok := a.store.(*settings.FileStore)
	if !ok || !a.cfg.WatchSettings {
		return
	}
	go func() {
		err := fs.Watch(a.ctx, func(key string) {
			a.emit(eventSettingsChanged, key)
		})
		if err != nil {
			logging.Errorf("settings watch stopped: %v", err)
		}
	}()
}

func (a *App) shutdown(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}
}

// emit is a no-op until startup has run, so the backend can be driven
// without a window.
func (a *App) emit(event string, data ...interface{}) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, event, data...)
}

func (a *App) options(hours float64) quote.Options {
	if hours <= 0 {
		hours = a.cfg.DefaultPrintHours
	}
	return quote.FromSettings(a.settings.Snapshot(), hours)
}

func (a *App) modelData(m project.Model, o quote.Options) ModelData {
	verts, norms := m.Mesh.Flat()
	return ModelData{
		Model:    m,
		Mesh:     MeshData{Vertices: verts, Normals: norms, PartName: m.Name, Color: m.Color},
		Estimate: estimate.Analyze(m.Mesh, m.Scale, o.Filament.Density, o.InfillFraction),
	}
}

// OpenModels shows a file picker and loads the chosen STL files.
func (a *App) OpenModels() (LoadResult, error) {
	if a.ctx == nil {
		return LoadResult{}, errNoRuntime
	}
	paths, err := runtime.OpenMultipleFilesDialog(a.ctx, runtime.OpenDialogOptions{
		Title:   "Open STL models",
		Filters: []runtime.FileFilter{{DisplayName: "STL models (*.stl)", Pattern: "*.stl;*.STL"}},
	})
	if err != nil {
		return LoadResult{}, err
	}
	return a.LoadModels(paths), nil
}

// LoadModels reads paths and adds every decodable file to the project.
// Failures are reported per file.
func (a *App) LoadModels(paths []string) LoadResult {
	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	res := LoadResult{Models: []ModelData{}, Errors: []string{}}
	o := a.options(0)
	for _, r := range a.loader.Load(ctx, paths) {
		if r.Err != nil {
			if !errors.Is(r.Err, loader.ErrSuperseded) {
				res.Errors = append(res.Errors, r.Err.Error())
			}
			continue
		}
		m := a.project.Add("", r.Name, r.Mesh)
		res.Models = append(res.Models, a.modelData(m, o))
	}
	if len(res.Models) > 0 {
		a.emit(eventModelsChanged)
	}
	return res
}

// Models lists the project.
func (a *App) Models() []ModelData {
	o := a.options(0)
	models := a.project.Models()
	out := make([]ModelData, 0, len(models))
	for _, m := range models {
		out = append(out, a.modelData(m, o))
	}
	return out
}

// changed wraps a project operation result for the frontend.
func (a *App) changed(m project.Model, err error) (ModelData, error) {
	if err != nil {
		logging.Logger().Warn("model operation failed", "err", err)
		return ModelData{}, err
	}
	a.emit(eventModelsChanged)
	return a.modelData(m, a.options(0)), nil
}

func (a *App) SelectModel(id string) error { return a.project.Select(id) }

// SelectedModel returns the current selection, or nil when nothing is
// selected.
func (a *App) SelectedModel() *ModelData {
	sel, ok := a.project.Selected()
	if !ok {
		return nil
	}
	md := a.modelData(sel, a.options(0))
	return &md
}

func (a *App) DuplicateModel(id string) (ModelData, error) { return a.changed(a.project.Duplicate(id)) }

func (a *App) RemoveModel(id string) error {
	if err := a.project.Remove(id); err != nil {
		return err
	}
	a.emit(eventModelsChanged)
	return nil
}

func (a *App) RenameModel(id, name string) (ModelData, error) {
	return a.changed(a.project.Rename(id, name))
}

func (a *App) SetPosition(id string, v mesh.Vec3) (ModelData, error) {
	return a.changed(a.project.SetPosition(id, v))
}

func (a *App) SetRotation(id string, degrees mesh.Vec3) (ModelData, error) {
	return a.changed(a.project.SetRotation(id, degrees))
}

func (a *App) SetScale(id string, s mesh.Vec3) (ModelData, error) {
	return a.changed(a.project.SetScale(id, s))
}

func (a *App) SetUniformScale(id string, s float64) (ModelData, error) {
	return a.changed(a.project.SetUniformScale(id, s))
}

func (a *App) CenterModel(id string) (ModelData, error) { return a.changed(a.project.Center(id)) }

func (a *App) PlaceOnBed(id string) (ModelData, error) { return a.changed(a.project.PlaceOnBed(id)) }

func (a *App) LayFlat(id string) (ModelData, error) { return a.changed(a.project.LayFlat(id)) }

func (a *App) Rotate90(id, axis string) (ModelData, error) {
	return a.changed(a.project.Rotate90(id, project.Axis(axis)))
}

func (a *App) ResetTransform(id string) (ModelData, error) {
	return a.changed(a.project.ResetTransform(id))
}

func (a *App) ToggleVisible(id string) (ModelData, error) {
	return a.changed(a.project.ToggleVisible(id))
}

func (a *App) ToggleLock(id string) (ModelData, error) {
	return a.changed(a.project.ToggleLock(id))
}

// Quote prices every visible model. hours <= 0 uses the configured
// default print time.
func (a *App) Quote(hours float64) quote.Quote {
	return quote.Project(a.project.Models(), a.options(hours))
}

// QuoteModel prices a single model.
func (a *App) QuoteModel(id string, hours float64) (quote.Item, error) {
	m, err := a.project.Get(id)
	if err != nil {
		return quote.Item{}, err
	}
	return quote.Price(m.Name, m.Mesh, m.Scale, 1, a.options(hours)), nil
}

// Settings returns every persisted record.
func (a *App) Settings() settings.Snapshot {
	return a.settings.Snapshot()
}

func (a *App) SaveSettings(s settings.Snapshot) error {
	if err := a.settings.SaveSnapshot(s); err != nil {
		logging.Errorf("save settings: %v", err)
		return err
	}
	return nil
}

// ResetSettings overwrites every record with its default.
func (a *App) ResetSettings() (settings.Snapshot, error) {
	d := settings.Defaults()
	if err := a.SaveSettings(d); err != nil {
		return settings.Snapshot{}, err
	}
	return d, nil
}

// ExportModel asks for a destination and writes the model with its
// scale baked in.
func (a *App) ExportModel(id string, text bool) (string, error) {
	if a.ctx == nil {
		return "", errNoRuntime
	}
	m, err := a.project.Get(id)
	if err != nil {
		return "", err
	}
	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Export model",
		DefaultFilename: m.Name + ".stl",
		Filters:         []runtime.FileFilter{{DisplayName: "STL models (*.stl)", Pattern: "*.stl"}},
	})
	if err != nil || path == "" {
		return "", err
	}
	return path, writeModel(path, m, text)
}

func writeModel(path string, m project.Model, text bool) error {
	format := stl.FormatBinary
	if text {
		format = stl.FormatText
	}
	data := stl.Encode(format, m.Name, mesh.Bake(m.Mesh, m.Scale).Triangles())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}
	logging.Logger().Info("exported model", "file", path, "format", format.String())
	return nil
}

// EvaluateScript runs a quote script, builds or loads every part and
// prices the job. File paths in the script resolve against baseDir.
func (a *App) EvaluateScript(source, baseDir string) ScriptResult {
	result := ScriptResult{Meshes: []MeshData{}, Errors: []EvalErrorData{}, Warnings: []string{}}

	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	out, err := a.runner.Run(ctx, source, baseDir, a.settings.Snapshot(), 0)
	if err != nil {
		logging.Errorf("evaluate: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	result.Warnings = append(result.Warnings, out.Warnings...)
	for _, e := range out.Errors {
		result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
	}
	for i, p := range out.Parts {
		verts, norms := p.Mesh.Flat()
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: verts,
			Normals:  norms,
			PartName: p.Name,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	result.Quote = out.Quote
	return result
}
