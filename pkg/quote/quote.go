// Package quote prices meshes: it runs the estimate for each one, feeds
// the weight into the pricing chain and rolls the results up.
package quote

import (
	"fmt"

	"github.com/chazu/printcost/pkg/estimate"
	"github.com/chazu/printcost/pkg/job"
	"github.com/chazu/printcost/pkg/mesh"
	"github.com/chazu/printcost/pkg/pricing"
	"github.com/chazu/printcost/pkg/project"
	"github.com/chazu/printcost/pkg/settings"
)

// DefaultPrintHours is the per-model print time when none is given.
const DefaultPrintHours = 1.0

// Options are the inputs shared by every item of a quote. Density comes
// from Filament.
type Options struct {
	Filament       pricing.Filament     `json:"filament"`
	Printer        pricing.Printer      `json:"printer"`
	Cost           pricing.CostSettings `json:"cost"`
	InfillFraction float64              `json:"infillFraction"`
	PrintHours     float64              `json:"printHours"`
}

// FromSettings resolves the selected filament and printer and takes
// infill from the print settings. hours <= 0 means DefaultPrintHours.
func FromSettings(s settings.Snapshot, hours float64) Options {
	if hours <= 0 {
		hours = DefaultPrintHours
	}
	return Options{
		Filament:       s.Filament(),
		Printer:        s.Printer(),
		Cost:           s.Cost,
		InfillFraction: s.Print.InfillFraction(),
		PrintHours:     hours,
	}
}

// ForJob applies the job's overrides on top of o. Unknown ids fall back
// to the first list entry, as settings lookups do.
func (o Options) ForJob(j *job.Job, s settings.Snapshot) Options {
	if j == nil {
		return o
	}
	if j.FilamentID != "" {
		o.Filament, _ = pricing.FindFilament(s.Filaments, j.FilamentID)
		o.Cost.FilamentID = o.Filament.ID
	}
	if j.PrinterID != "" {
		o.Printer, _ = pricing.FindPrinter(s.Printers, j.PrinterID)
		o.Cost.PrinterID = o.Printer.ID
	}
	if j.Infill != nil {
		o.InfillFraction = *j.Infill / 100
	}
	if j.PrintHours != nil {
		o.PrintHours = *j.PrintHours
	}
	return o
}

// Item is the quote for one model. Breakdown is per copy.
type Item struct {
	Name      string            `json:"name"`
	Copies    int               `json:"copies"`
	Scale     mesh.Vec3         `json:"scale"`
	Estimate  estimate.Estimate `json:"estimate"`
	Breakdown pricing.Breakdown `json:"breakdown"`
}

// Quote is a priced set of items.
type Quote struct {
	Options     Options        `json:"options"`
	Items       []Item         `json:"items"`
	TotalGrams  float64        `json:"totalGrams"`
	TotalPieces int            `json:"totalPieces"`
	Totals      pricing.Totals `json:"totals"`
}

// Price quotes a single model.
func Price(name string, m *mesh.Mesh, scale mesh.Vec3, copies int, o Options) Item {
	if copies < 1 {
		copies = 1
	}
	est := estimate.Analyze(m, scale, o.Filament.Density, o.InfillFraction)
	return Item{
		Name:      name,
		Copies:    copies,
		Scale:     scale,
		Estimate:  est,
		Breakdown: pricing.Calculate(est.WeightGrams, o.Cost, o.Filament, o.Printer, o.PrintHours),
	}
}

// Build rolls items up. Each copy counts as a separate print.
func Build(items []Item, o Options) Quote {
	q := Quote{Options: o, Items: items}
	var all []pricing.Breakdown
	for _, it := range items {
		for c := 0; c < it.Copies; c++ {
			all = append(all, it.Breakdown)
		}
		q.TotalGrams += it.Estimate.WeightGrams * float64(it.Copies)
		q.TotalPieces += it.Copies
	}
	q.Totals = pricing.Summarize(all)
	return q
}

// Project quotes every visible model of a project once each.
func Project(models []project.Model, o Options) Quote {
	items := make([]Item, 0, len(models))
	for _, m := range models {
		if !m.Visible {
			continue
		}
		items = append(items, Price(m.Name, m.Mesh, m.Scale, 1, o))
	}
	return Build(items, o)
}

// Meshes is the built geometry of a job. File parts are keyed by path
// and shape parts by part name, in separate maps so a part named like a
// file can never stand in for it.
type Meshes struct {
	Files  map[string]*mesh.Mesh
	Shapes map[string]*mesh.Mesh
}

// For returns the mesh built for p.
func (ms Meshes) For(p job.Part) (*mesh.Mesh, bool) {
	var m *mesh.Mesh
	if p.FromFile() {
		m = ms.Files[p.Path]
	} else {
		m = ms.Shapes[p.Name]
	}
	return m, m != nil
}

// Job quotes every part of j; a missing mesh is an error.
func Job(j *job.Job, meshes Meshes, o Options) (Quote, error) {
	items := make([]Item, 0, len(j.Parts))
	for _, p := range j.Parts {
		m, ok := meshes.For(p)
		if !ok {
			return Quote{}, fmt.Errorf("quote: no mesh for part %q", p.Name)
		}
		items = append(items, Price(p.Name, m, p.Scale, p.Copies, o))
	}
	return Build(items, o), nil
}
