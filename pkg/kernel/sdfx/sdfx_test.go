package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/printcost/pkg/mesh"
)

// testCells keeps marching cubes fast while staying well inside the
// volume tolerances below.
const testCells = 80

func newTestKernel() *Kernel {
	return &Kernel{Cells: testCells}
}

func within(got, want, rel float64) bool {
	return math.Abs(got-want) <= math.Abs(want)*rel
}

func TestBoxVolumeAndBounds(t *testing.T) {
	k := newTestKernel()
	s, err := k.Box(mesh.Vec3{X: 40, Y: 20, Z: 10})
	if err != nil {
		t.Fatalf("Box() error = %v", err)
	}

	bb := s.BoundingBox()
	if math.Abs(bb.Min.X) > 0.01 || math.Abs(bb.Max.X-40) > 0.01 {
		t.Errorf("x bounds = [%v, %v], want [0, 40]", bb.Min.X, bb.Max.X)
	}

	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if got := mesh.Volume(m, mesh.Identity); !within(got, 8.0, 0.03) {
		t.Errorf("Volume() = %v cm³, want ~8.0", got)
	}
	dims := mesh.Dimensions(m, mesh.Identity)
	if !within(dims.X, 40, 0.03) || !within(dims.Y, 20, 0.03) || !within(dims.Z, 10, 0.03) {
		t.Errorf("Dimensions() = %+v, want ~(40,20,10)", dims)
	}
	if got := mesh.DominantFace(m); got != mesh.FaceZ {
		t.Errorf("DominantFace() = %v, want z", got)
	}
}

func TestCylinderVolume(t *testing.T) {
	k := newTestKernel()
	s, err := k.Cylinder(20, 10)
	if err != nil {
		t.Fatalf("Cylinder() error = %v", err)
	}
	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	want := math.Pi * 10 * 10 * 20 / 1000
	if got := mesh.Volume(m, mesh.Identity); !within(got, want, 0.05) {
		t.Errorf("Volume() = %v cm³, want ~%v", got, want)
	}
}

func TestInvalidPrimitives(t *testing.T) {
	k := newTestKernel()
	if _, err := k.Box(mesh.Vec3{X: -1, Y: 1, Z: 1}); err == nil {
		t.Error("Box() accepted a negative size")
	}
	if _, err := k.Cylinder(10, -1); err == nil {
		t.Error("Cylinder() accepted a negative radius")
	}
	if _, err := k.Sphere(0); err == nil {
		t.Error("Sphere() accepted a zero radius")
	}
}

func TestDifferenceRemovesVolume(t *testing.T) {
	k := newTestKernel()
	box, err := k.Box(mesh.Vec3{X: 30, Y: 30, Z: 30})
	if err != nil {
		t.Fatal(err)
	}
	hole, err := k.Cylinder(40, 5)
	if err != nil {
		t.Fatal(err)
	}
	hole = k.Translate(hole, mesh.Vec3{X: 15, Y: 15, Z: 15})

	m, err := k.ToMesh(k.Difference(box, hole))
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	want := (27000 - math.Pi*25*30) / 1000
	if got := mesh.Volume(m, mesh.Identity); !within(got, want, 0.05) {
		t.Errorf("Volume() = %v cm³, want ~%v", got, want)
	}
}

func TestUnionAndIntersectionBounds(t *testing.T) {
	k := newTestKernel()
	a, _ := k.Box(mesh.Vec3{X: 20, Y: 20, Z: 20})
	b, _ := k.Box(mesh.Vec3{X: 20, Y: 20, Z: 20})
	b = k.Translate(b, mesh.Vec3{X: 10})

	u := k.Union(a, b).BoundingBox()
	if math.Abs(u.Max.X-30) > 0.01 || math.Abs(u.Min.X) > 0.01 {
		t.Errorf("union x bounds = [%v, %v], want [0, 30]", u.Min.X, u.Max.X)
	}

	m, err := k.ToMesh(k.Intersection(a, b))
	if err != nil {
		t.Fatal(err)
	}
	if got := mesh.Volume(m, mesh.Identity); !within(got, 4.0, 0.05) {
		t.Errorf("intersection Volume() = %v cm³, want ~4.0", got)
	}
}

func TestRotateSwapsAxes(t *testing.T) {
	k := newTestKernel()
	s, _ := k.Box(mesh.Vec3{X: 100, Y: 10, Z: 10})
	bb := k.Rotate(s, mesh.Vec3{Z: 90}).BoundingBox()
	size := bb.Size()
	if math.Abs(size.Y-100) > 0.5 || math.Abs(size.X-10) > 0.5 {
		t.Errorf("rotated size = %+v, want ~(10,100,10)", size)
	}
}

func TestNoNaNNormals(t *testing.T) {
	k := newTestKernel()
	s, _ := k.Sphere(10)
	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatal(err)
	}
	_, normals := m.Flat()
	for i, n := range normals {
		if n != n {
			t.Fatalf("normals[%d] is NaN", i)
		}
	}
}
