// Package tessellate walks parametric shape trees and produces triangle
// meshes using a geometry kernel. One mesh is produced per part.
package tessellate

import (
	"fmt"

	"github.com/chazu/printcost/pkg/job"
	"github.com/chazu/printcost/pkg/kernel"
	"github.com/chazu/printcost/pkg/mesh"
)

// PartMesh pairs a job part with its tessellated geometry.
type PartMesh struct {
	Name string
	Mesh *mesh.Mesh
}

// Job tessellates every shape-backed part of j in order. File-backed
// parts are skipped; the loader reads those. The job is never mutated.
func Job(j *job.Job, k kernel.Kernel) ([]PartMesh, error) {
	if j == nil {
		return nil, nil
	}
	var out []PartMesh
	for _, p := range j.Parts {
		if p.Shape == nil {
			continue
		}
		m, err := Shape(p.Shape, k)
		if err != nil {
			return nil, fmt.Errorf("tessellate: part %q: %w", p.Name, err)
		}
		out = append(out, PartMesh{Name: p.Name, Mesh: m})
	}
	return out, nil
}

// Shape builds the solid for s and meshes it.
func Shape(s *job.Shape, k kernel.Kernel) (*mesh.Mesh, error) {
	solid, err := walkShape(k, s)
	if err != nil {
		return nil, err
	}
	m, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed: %w", err)
	}
	return m, nil
}

// walkShape recursively builds a kernel solid from a shape node.
func walkShape(k kernel.Kernel, s *job.Shape) (kernel.Solid, error) {
	if s == nil {
		return nil, fmt.Errorf("nil shape")
	}
	switch {
	case s.Kind.IsPrimitive():
		return handlePrimitive(k, s)
	case s.Kind.IsBoolean():
		return handleBoolean(k, s)
	case s.Kind == job.ShapeTranslate || s.Kind == job.ShapeRotate:
		return handleTransform(k, s)
	default:
		return nil, fmt.Errorf("unknown shape kind: %v", s.Kind)
	}
}

func handlePrimitive(k kernel.Kernel, s *job.Shape) (kernel.Solid, error) {
	switch s.Kind {
	case job.ShapeBox:
		return k.Box(s.Size)
	case job.ShapeCylinder:
		return k.Cylinder(s.Height, s.Radius)
	default:
		return k.Sphere(s.Radius)
	}
}

func handleBoolean(k kernel.Kernel, s *job.Shape) (kernel.Solid, error) {
	if len(s.Children) != 2 {
		return nil, fmt.Errorf("%s needs 2 operands, got %d", s.Kind, len(s.Children))
	}
	a, err := walkShape(k, s.Children[0])
	if err != nil {
		return nil, err
	}
	b, err := walkShape(k, s.Children[1])
	if err != nil {
		return nil, err
	}
	switch s.Kind {
	case job.ShapeUnion:
		return k.Union(a, b), nil
	case job.ShapeDifference:
		return k.Difference(a, b), nil
	default:
		return k.Intersection(a, b), nil
	}
}

func handleTransform(k kernel.Kernel, s *job.Shape) (kernel.Solid, error) {
	if len(s.Children) != 1 {
		return nil, fmt.Errorf("%s needs 1 operand, got %d", s.Kind, len(s.Children))
	}
	child, err := walkShape(k, s.Children[0])
	if err != nil {
		return nil, err
	}
	if s.Vector == (mesh.Vec3{}) {
		return child, nil
	}
	if s.Kind == job.ShapeTranslate {
		return k.Translate(child, s.Vector), nil
	}
	return k.Rotate(child, s.Vector), nil
}
