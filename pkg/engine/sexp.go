package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/printcost/pkg/job"
	"github.com/chazu/printcost/pkg/mesh"
)

// Go values carried through the interpreter between builtins.

type sexpVec3 struct {
	vec mesh.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

type sexpShape struct {
	shape *job.Shape
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string { return s.shape.String() }
func (s *sexpShape) Type() *zygo.RegisteredType              { return nil }

// sexpModel is a reference to an STL file; the file is read later by the
// loader, never by the sandbox.
type sexpModel struct {
	path string
}

func (m *sexpModel) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(model %q)", m.path)
}
func (m *sexpModel) Type() *zygo.RegisteredType { return nil }

type sexpPartRef struct {
	name string
}

func (p *sexpPartRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(part %q)", p.name)
}
func (p *sexpPartRef) Type() *zygo.RegisteredType { return nil }

// isKW reports the keyword name when s is a preprocessed keyword.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs is an argument list split into keyword and positional parts.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs splits args. A trailing keyword with no value maps to
// SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	res := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			res.positional = append(res.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			res.kw[name] = args[i+1]
			i++
		} else {
			res.kw[name] = zygo.SexpNull
		}
	}
	return res
}

// arg returns the keyword value when present, else the positional
// argument at index i.
func (a kwArgs) arg(kw string, i int) (zygo.Sexp, bool) {
	if v, ok := a.kw[kw]; ok {
		return v, true
	}
	if i >= 0 && i < len(a.positional) {
		return a.positional[i], true
	}
	return nil, false
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toName accepts a keyword or a plain string, so (filament :petg) and
// (filament "petg") are equivalent.
func toName(s zygo.Sexp) (string, error) {
	if name, ok := isKW(s); ok {
		return name, nil
	}
	return toString(s)
}

func toVec3(s zygo.Sexp) (mesh.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return mesh.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toScale accepts a vec3 or a single number for uniform scaling.
func toScale(s zygo.Sexp) (mesh.Vec3, error) {
	if f, err := toFloat64(s); err == nil {
		return mesh.Uniform(f), nil
	}
	return toVec3(s)
}

func toShape(s zygo.Sexp) (*job.Shape, error) {
	if v, ok := s.(*sexpShape); ok {
		return v.shape, nil
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a list or array to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}
