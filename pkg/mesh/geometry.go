package mesh

import "math"

// Face names the axis a flat side of the bounding box faces.
type Face int

const (
	FaceX Face = iota
	FaceY
	FaceZ
)

func (f Face) String() string {
	switch f {
	case FaceX:
		return "x"
	case FaceY:
		return "y"
	case FaceZ:
		return "z"
	}
	return "unknown"
}

// scaled returns the vertices of t multiplied per-axis by scale.
func scaled(t Triangle, scale Vec3) (v0, v1, v2 Vec3) {
	return t.Vertices[0].Vec().Mul(scale),
		t.Vertices[1].Vec().Mul(scale),
		t.Vertices[2].Vec().Mul(scale)
}

// Volume returns the enclosed volume in cm³. Each triangle contributes
// the signed volume of the tetrahedron it forms with the origin; the
// absolute sum is exact for any closed, consistently wound mesh. Open
// meshes give a deterministic but meaningless value.
func Volume(m *Mesh, scale Vec3) float64 {
	if m == nil {
		return 0
	}
	var sum float64
	for _, t := range m.tris {
		v0, v1, v2 := scaled(t, scale)
		sum += v0.Dot(v1.Cross(v2)) / 6
	}
	// mm³ -> cm³
	return math.Abs(sum) / 1000
}

// Bounds returns the bounding box of the scaled vertex set. ok is false
// for an empty mesh.
func Bounds(m *Mesh, scale Vec3) (box Box, ok bool) {
	if m.IsEmpty() {
		return Box{}, false
	}
	box = emptyBox()
	for _, t := range m.tris {
		v0, v1, v2 := scaled(t, scale)
		box.Extend(v0)
		box.Extend(v1)
		box.Extend(v2)
	}
	return box, true
}

// Dimensions returns the size of the scaled bounding box in mm.
// An empty mesh yields (0,0,0).
func Dimensions(m *Mesh, scale Vec3) Vec3 {
	box, ok := Bounds(m, scale)
	if !ok {
		return Vec3{}
	}
	return box.Size()
}

// DominantFace compares the projected areas of the unscaled bounding box
// and returns the axis whose face is largest. Ties prefer Z, then X, then Y.
// An empty mesh yields FaceZ.
func DominantFace(m *Mesh) Face {
	box, ok := Bounds(m, Identity)
	if !ok {
		return FaceZ
	}
	size := box.Size()
	areaX := size.Y * size.Z
	areaY := size.X * size.Z
	areaZ := size.X * size.Y

	if areaZ >= areaX && areaZ >= areaY {
		return FaceZ
	}
	if areaX >= areaY {
		return FaceX
	}
	return FaceY
}

// Bake returns a new mesh with scale applied to every vertex. Normals
// are recomputed from the winding since non-uniform scaling skews them;
// degenerate triangles get a zero normal.
func Bake(m *Mesh, scale Vec3) *Mesh {
	if m == nil {
		return nil
	}
	out := make([]Triangle, len(m.tris))
	for i, t := range m.tris {
		v0, v1, v2 := scaled(t, scale)
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		if l := math.Sqrt(n.Dot(n)); l > 0 {
			out[i].Normal = Point{float32(n.X / l), float32(n.Y / l), float32(n.Z / l)}
		}
		out[i].Vertices = [3]Point{toPoint(v0), toPoint(v1), toPoint(v2)}
	}
	return &Mesh{tris: out}
}

func toPoint(v Vec3) Point {
	return Point{float32(v.X), float32(v.Y), float32(v.Z)}
}
