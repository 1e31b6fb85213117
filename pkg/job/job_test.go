package job

import (
	"strings"
	"testing"

	"github.com/chazu/printcost/pkg/mesh"
)

func ptr(f float64) *float64 { return &f }

func TestAddPartDefaults(t *testing.T) {
	j := New()
	j.AddPart(Part{Name: "a", Path: "a.stl"})
	j.AddPart(Part{Name: "b", Shape: Box(mesh.Vec3{X: 1, Y: 1, Z: 1}), Scale: mesh.Uniform(2), Copies: 3})

	a, ok := j.Lookup("a")
	if !ok {
		t.Fatal("Lookup(a) not found")
	}
	if a.Scale != mesh.Identity || a.Copies != 1 {
		t.Errorf("defaults = scale %+v copies %d, want identity and 1", a.Scale, a.Copies)
	}
	b, _ := j.Lookup("b")
	if b.Scale != mesh.Uniform(2) || b.Copies != 3 {
		t.Errorf("explicit values overwritten: %+v", b)
	}
	if _, ok := j.Lookup("c"); ok {
		t.Error("Lookup(c) found a missing part")
	}
	if got := j.Paths(); len(got) != 1 || got[0] != "a.stl" {
		t.Errorf("Paths() = %v, want [a.stl]", got)
	}
}

func TestValidate(t *testing.T) {
	cube := Box(mesh.Vec3{X: 10, Y: 10, Z: 10})
	valid := func() *Job {
		j := New()
		j.AddPart(Part{Name: "cube", Shape: cube})
		return j
	}

	tests := []struct {
		name   string
		mutate func(j *Job)
		want   string // substring of the first error; empty for valid
	}{
		{"valid", func(j *Job) {}, ""},
		{"no parts", func(j *Job) { j.Parts = nil }, "no parts"},
		{"infill too high", func(j *Job) { j.Infill = ptr(120) }, "infill"},
		{"negative hours", func(j *Job) { j.PrintHours = ptr(-1) }, "negative print time"},
		{"no source", func(j *Job) { j.Parts[0].Shape = nil }, "neither"},
		{"two sources", func(j *Job) { j.Parts[0].Path = "x.stl" }, "both"},
		{"zero copies", func(j *Job) { j.Parts[0].Copies = 0 }, "copies"},
		{"zero scale", func(j *Job) { j.Parts[0].Scale.Y = 0 }, "scale"},
		{"unnamed", func(j *Job) { j.Parts[0].Name = "" }, "no name"},
		{"duplicate", func(j *Job) { j.AddPart(Part{Name: "cube", Path: "c.stl"}) }, "duplicate"},
		{"bad box", func(j *Job) { j.Parts[0].Shape = Box(mesh.Vec3{X: 1, Y: 0, Z: 1}) }, "box: dimensions"},
		{"bad cylinder", func(j *Job) { j.Parts[0].Shape = Cylinder(0, 2) }, "cylinder"},
		{"bad sphere", func(j *Job) { j.Parts[0].Shape = Sphere(-1) }, "sphere"},
		{"bad nested", func(j *Job) {
			j.Parts[0].Shape = Translate(Difference(cube, Sphere(0)), mesh.Vec3{X: 1})
		}, "sphere"},
		{"bad arity", func(j *Job) {
			j.Parts[0].Shape = &Shape{Kind: ShapeUnion, Children: []*Shape{cube}}
		}, "expected 2 operands"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := valid()
			tt.mutate(j)
			errs := Validate(j)
			if tt.want == "" {
				if len(errs) != 0 {
					t.Fatalf("Validate() = %v, want none", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("Validate() found nothing, want %q", tt.want)
			}
			if !strings.Contains(errs[0].Error(), tt.want) {
				t.Errorf("Validate()[0] = %q, want it to contain %q", errs[0].Error(), tt.want)
			}
		})
	}
}

func TestValidateNil(t *testing.T) {
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) = %v, want one error", errs)
	}
}

func TestShapeString(t *testing.T) {
	s := Translate(Difference(Box(mesh.Vec3{X: 10, Y: 10, Z: 10}), Cylinder(12, 2)), mesh.Vec3{X: 5})
	want := "(translate (difference (box 10 10 10) (cylinder 12 2)) (vec3 5 0 0))"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestShapeKindString(t *testing.T) {
	tests := []struct {
		kind ShapeKind
		want string
	}{
		{ShapeBox, "box"},
		{ShapeIntersection, "intersection"},
		{ShapeRotate, "rotate"},
		{ShapeKind(99), "ShapeKind(99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
