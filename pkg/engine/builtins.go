package engine

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/printcost/pkg/job"
	"github.com/chazu/printcost/pkg/mesh"
)

type builtin = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// registerBuiltins installs the quote-script vocabulary. Builtins write
// into j and append advisory findings to warn. Source must already have
// been through preprocessSource.
func registerBuiltins(env *zygo.Zlisp, j *job.Job, warn func(string)) {
	env.AddFunction("vec3", builtinVec3)
	env.AddFunction("box", builtinBox)
	env.AddFunction("cylinder", builtinCylinder)
	env.AddFunction("sphere", builtinSphere)
	env.AddFunction("union", foldShapes("union", job.Union))
	env.AddFunction("difference", foldShapes("difference", job.Difference))
	env.AddFunction("intersection", foldShapes("intersection", job.Intersection))
	env.AddFunction("translate", transform("translate", job.Translate))
	env.AddFunction("rotate", transform("rotate", job.Rotate))
	env.AddFunction("model", builtinModel)
	env.AddFunction("part", builtinPart(j))

	// (filament :petg) / (printer "prusa_mk4")
	env.AddFunction("filament", selectID("filament", &j.FilamentID, warn))
	env.AddFunction("printer", selectID("printer", &j.PrinterID, warn))

	// (infill 35)
	env.AddFunction("infill", setNumber("infill", &j.Infill, warn))
	// (print-time 2.5), hours per copy
	env.AddFunction("print_time", setNumber("print-time", &j.PrintHours, warn))
}

// (vec3 1 2 3)
func builtinVec3(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 3 {
		return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
	}
	var xyz [3]float64
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
		}
		xyz[i] = f
	}
	return &sexpVec3{vec: mesh.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}}, nil
}

// (box 10 20 30), (box (vec3 10 20 30)) or (box :x 10 :y 20 :z 30)
func builtinBox(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) == 1 {
		v, err := toVec3(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		return &sexpShape{shape: job.Box(v)}, nil
	}
	var size [3]float64
	for i, axis := range []string{"x", "y", "z"} {
		v, ok := pa.arg(axis, i)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("box: missing %s", axis)
		}
		f, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %s: %w", axis, err)
		}
		size[i] = f
	}
	return &sexpShape{shape: job.Box(mesh.Vec3{X: size[0], Y: size[1], Z: size[2]})}, nil
}

// (cylinder :height 20 :radius 5) or (cylinder 20 5)
func builtinCylinder(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	h, ok := pa.arg("height", 0)
	if !ok {
		return zygo.SexpNull, fmt.Errorf("cylinder: missing height")
	}
	height, err := toFloat64(h)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("cylinder: height: %w", err)
	}
	r, ok := pa.arg("radius", 1)
	if !ok {
		return zygo.SexpNull, fmt.Errorf("cylinder: missing radius")
	}
	radius, err := toFloat64(r)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("cylinder: radius: %w", err)
	}
	return &sexpShape{shape: job.Cylinder(height, radius)}, nil
}

// (sphere 5) or (sphere :radius 5)
func builtinSphere(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	r, ok := pa.arg("radius", 0)
	if !ok {
		return zygo.SexpNull, fmt.Errorf("sphere: missing radius")
	}
	radius, err := toFloat64(r)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
	}
	return &sexpShape{shape: job.Sphere(radius)}, nil
}

// foldShapes builds a left fold over two or more operands, so
// (difference a b c) is a minus b minus c. A single list argument is
// spread.
func foldShapes(op string, combine func(a, b *job.Shape) *job.Shape) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 1 {
			items, err := sexpListToSlice(args[0])
			if err == nil {
				args = items
			}
		}
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("%s requires at least 2 shapes, got %d", op, len(args))
		}
		acc, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: operand 1: %w", op, err)
		}
		for i, a := range args[1:] {
			s, err := toShape(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: operand %d: %w", op, i+2, err)
			}
			acc = combine(acc, s)
		}
		return &sexpShape{shape: acc}, nil
	}
}

// transform handles (translate shape (vec3 ...)) and the :by keyword form.
func transform(op string, apply func(s *job.Shape, v mesh.Vec3) *job.Shape) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("%s requires a shape", op)
		}
		s, err := toShape(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
		}
		v, ok := pa.arg("by", 1)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("%s requires a vec3", op)
		}
		vec, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
		}
		return &sexpShape{shape: apply(s, vec)}, nil
	}
}

// (model "bracket.stl")
func builtinModel(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 1 {
		return zygo.SexpNull, fmt.Errorf("model requires a file path")
	}
	path, err := toString(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("model: %w", err)
	}
	if path == "" {
		return zygo.SexpNull, fmt.Errorf("model: empty path")
	}
	return &sexpModel{path: path}, nil
}

// (part "name" (model "x.stl") :scale (vec3 2 1 1) :copies 4)
// (part "name" (box 10 10 10) :scale 1.5)
func builtinPart(j *job.Job) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("part requires a name and a model or shape")
		}
		partName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: name: %w", err)
		}
		if _, dup := j.Lookup(partName); dup {
			return zygo.SexpNull, fmt.Errorf("part: %q already defined", partName)
		}

		p := job.Part{Name: partName}
		switch body := pa.positional[1].(type) {
		case *sexpModel:
			p.Path = body.path
		case *sexpShape:
			p.Shape = body.shape
		case *zygo.SexpStr:
			p.Path = body.S
		default:
			return zygo.SexpNull, fmt.Errorf("part: expected model or shape, got %T", body)
		}

		if v, ok := pa.kw["scale"]; ok {
			s, err := toScale(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part: scale: %w", err)
			}
			p.Scale = s
		}
		if v, ok := pa.kw["copies"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part: copies: %w", err)
			}
			if n < 1 {
				return zygo.SexpNull, fmt.Errorf("part: copies must be at least 1, got %d", n)
			}
			p.Copies = n
		}

		j.AddPart(p)
		return &sexpPartRef{name: partName}, nil
	}
}

func selectID(what string, dst *string, warn func(string)) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("%s requires an id", what)
		}
		id, err := toName(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", what, err)
		}
		if *dst != "" && *dst != id {
			warn(fmt.Sprintf("%s %q replaces %q", what, id, *dst))
		}
		*dst = id
		return &zygo.SexpStr{S: id}, nil
	}
}

func setNumber(what string, dst **float64, warn func(string)) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("%s requires one number", what)
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", what, err)
		}
		if f < 0 {
			return zygo.SexpNull, fmt.Errorf("%s: must not be negative, got %g", what, f)
		}
		if *dst != nil && **dst != f {
			warn(fmt.Sprintf("%s %g replaces %g", what, f, **dst))
		}
		*dst = &f
		return &zygo.SexpFloat{Val: f}, nil
	}
}
