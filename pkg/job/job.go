// Package job describes a quote request: which parts to price, how many
// copies of each, and which material and machine to price them with. A
// Job is a plain value built by the quote-script engine or the CLI; it
// holds no meshes.
package job

import "github.com/chazu/printcost/pkg/mesh"

// Part is one priced item. Exactly one of Path (an STL file) and Shape
// (a parametric solid) is set.
type Part struct {
	Name   string    `json:"name"`
	Path   string    `json:"path,omitempty"`
	Shape  *Shape    `json:"shape,omitempty"`
	Scale  mesh.Vec3 `json:"scale"`
	Copies int       `json:"copies"`
}

// FromFile reports whether the part is loaded from disk.
func (p Part) FromFile() bool {
	return p.Path != ""
}

// Job is a complete quote request. Nil overrides fall back to the
// persisted settings.
type Job struct {
	Parts      []Part   `json:"parts"`
	FilamentID string   `json:"filamentId,omitempty"`
	PrinterID  string   `json:"printerId,omitempty"`
	Infill     *float64 `json:"infill,omitempty"`     // percent, 0-100
	PrintHours *float64 `json:"printHours,omitempty"` // per copy
}

// New returns an empty job.
func New() *Job {
	return &Job{}
}

// AddPart appends p, defaulting Scale to identity and Copies to one.
func (j *Job) AddPart(p Part) {
	if p.Scale == (mesh.Vec3{}) {
		p.Scale = mesh.Identity
	}
	if p.Copies == 0 {
		p.Copies = 1
	}
	j.Parts = append(j.Parts, p)
}

// Lookup returns the part named name.
func (j *Job) Lookup(name string) (Part, bool) {
	for _, p := range j.Parts {
		if p.Name == name {
			return p, true
		}
	}
	return Part{}, false
}

// Paths lists the file-backed parts' paths in order.
func (j *Job) Paths() []string {
	var paths []string
	for _, p := range j.Parts {
		if p.FromFile() {
			paths = append(paths, p.Path)
		}
	}
	return paths
}
