// Package script runs a quote script end to end: evaluate, validate,
// load and tessellate every part, then price the job.
package script

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/chazu/printcost/pkg/engine"
	"github.com/chazu/printcost/pkg/job"
	"github.com/chazu/printcost/pkg/kernel"
	"github.com/chazu/printcost/pkg/loader"
	"github.com/chazu/printcost/pkg/mesh"
	"github.com/chazu/printcost/pkg/quote"
	"github.com/chazu/printcost/pkg/settings"
	"github.com/chazu/printcost/pkg/tessellate"
)

// Part is one built part in script order.
type Part struct {
	Name string
	Mesh *mesh.Mesh
}

// Output is everything a run produced. Errors covers script, validation
// and build failures; when it is non-empty Parts and Quote are empty.
type Output struct {
	Job      *job.Job
	Parts    []Part
	Quote    *quote.Quote
	Errors   []engine.EvalError
	Warnings []string
}

// Runner holds the collaborators a run needs.
type Runner struct {
	Engine *engine.Engine
	Kernel kernel.Kernel
	Loader *loader.Loader
	// DefaultHours is the print time used when neither the script nor
	// the caller sets one. Zero means quote.DefaultPrintHours.
	DefaultHours float64
}

// Run evaluates source and prices the result against snap. Relative
// model paths resolve against baseDir. hours > 0 overrides the
// script's print time. The error
// is reserved for engine failures such as timeouts.
func (r *Runner) Run(ctx context.Context, source, baseDir string, snap settings.Snapshot, hours float64) (Output, error) {
	var out Output
	res, err := r.Engine.Evaluate(source)
	if err != nil {
		return out, err
	}
	out.Warnings = res.Warnings
	if len(res.Errors) > 0 {
		out.Errors = res.Errors
		return out, nil
	}
	j := res.Job
	out.Job = j
	if j == nil || len(j.Parts) == 0 {
		return out, nil
	}
	if verrs := job.Validate(j); len(verrs) > 0 {
		for _, v := range verrs {
			out.Errors = append(out.Errors, engine.EvalError{Message: v.Error()})
		}
		return out, nil
	}

	meshes, err := r.build(ctx, j, baseDir)
	if err != nil {
		out.Errors = append(out.Errors, engine.EvalError{Message: err.Error()})
		return out, nil
	}
	for _, p := range j.Parts {
		m, _ := meshes.For(p)
		out.Parts = append(out.Parts, Part{Name: p.Name, Mesh: m})
	}

	o := quote.FromSettings(snap, r.DefaultHours).ForJob(j, snap)
	if hours > 0 {
		o.PrintHours = hours
	}
	q, err := quote.Job(j, meshes, o)
	if err != nil {
		out.Errors = append(out.Errors, engine.EvalError{Message: err.Error()})
		out.Parts = nil
		return out, nil
	}
	out.Quote = &q
	return out, nil
}

func (r *Runner) build(ctx context.Context, j *job.Job, baseDir string) (quote.Meshes, error) {
	meshes := quote.Meshes{
		Files:  make(map[string]*mesh.Mesh),
		Shapes: make(map[string]*mesh.Mesh),
	}

	if paths := j.Paths(); len(paths) > 0 {
		resolved := make([]string, len(paths))
		for i, p := range paths {
			resolved[i] = p
			if baseDir != "" && !filepath.IsAbs(p) {
				resolved[i] = filepath.Join(baseDir, p)
			}
		}
		loaded, errs := loader.Meshes(r.Loader.Load(ctx, resolved))
		if len(errs) > 0 {
			return meshes, fmt.Errorf("models: %w", errors.Join(errs...))
		}
		for i, p := range paths {
			meshes.Files[p] = loaded[resolved[i]]
		}
	}

	parts, err := tessellate.Job(j, r.Kernel)
	if err != nil {
		return meshes, err
	}
	for _, pm := range parts {
		meshes.Shapes[pm.Name] = pm.Mesh
	}
	return meshes, nil
}
