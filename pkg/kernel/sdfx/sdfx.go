// Package sdfx implements kernel.Kernel with the signed-distance-field
// CAD library github.com/deadsy/sdfx.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/printcost/pkg/kernel"
	"github.com/chazu/printcost/pkg/mesh"
)

var _ kernel.Kernel = (*Kernel)(nil)

// DefaultCells is the marching cubes resolution along the longest axis.
const DefaultCells = 200

type solid struct {
	s sdf.SDF3
}

func (s *solid) BoundingBox() mesh.Box {
	bb := s.s.BoundingBox()
	return mesh.Box{Min: fromVec(bb.Min), Max: fromVec(bb.Max)}
}

// Kernel tessellates with uniform marching cubes.
type Kernel struct {
	Cells int
}

// New returns a kernel at DefaultCells resolution.
func New() *Kernel {
	return &Kernel{Cells: DefaultCells}
}

func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*solid).s
}

func wrap(s sdf.SDF3) kernel.Solid {
	return &solid{s: s}
}

func toVec(v mesh.Vec3) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromVec(v v3.Vec) mesh.Vec3 {
	return mesh.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Box3D is centered on the origin, so the result is shifted by half its
// size to put the minimum corner there.
func (k *Kernel) Box(size mesh.Vec3) (kernel.Solid, error) {
	s, err := sdf.Box3D(toVec(size), 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: box: %w", err)
	}
	m := sdf.Translate3d(toVec(size.Mul(mesh.Uniform(0.5))))
	return wrap(sdf.Transform3D(s, m)), nil
}

func (k *Kernel) Cylinder(height, radius float64) (kernel.Solid, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: cylinder: %w", err)
	}
	return wrap(s), nil
}

func (k *Kernel) Sphere(radius float64) (kernel.Solid, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx: sphere: %w", err)
	}
	return wrap(s), nil
}

func (k *Kernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

func (k *Kernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

func (k *Kernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

func (k *Kernel) Translate(s kernel.Solid, offset mesh.Vec3) kernel.Solid {
	return wrap(sdf.Transform3D(unwrap(s), sdf.Translate3d(toVec(offset))))
}

func (k *Kernel) Rotate(s kernel.Solid, degrees mesh.Vec3) kernel.Solid {
	const rad = math.Pi / 180
	m := sdf.RotateZ(degrees.Z * rad).Mul(sdf.RotateY(degrees.Y * rad)).Mul(sdf.RotateX(degrees.X * rad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// ToMesh runs marching cubes over the solid. Degenerate triangles get a
// zero normal rather than NaN.
func (k *Kernel) ToMesh(s kernel.Solid) (*mesh.Mesh, error) {
	cells := k.Cells
	if cells <= 0 {
		cells = DefaultCells
	}
	tris := render.ToTriangles(unwrap(s), render.NewMarchingCubesUniform(cells))

	out := make([]mesh.Triangle, 0, len(tris))
	for _, tri := range tris {
		var t mesh.Triangle
		n := tri.Normal()
		if !math.IsNaN(n.X) && !math.IsNaN(n.Y) && !math.IsNaN(n.Z) {
			t.Normal = mesh.Point{float32(n.X), float32(n.Y), float32(n.Z)}
		}
		for j := 0; j < 3; j++ {
			v := tri[j]
			t.Vertices[j] = mesh.Point{float32(v.X), float32(v.Y), float32(v.Z)}
		}
		out = append(out, t)
	}
	return mesh.New(out), nil
}
