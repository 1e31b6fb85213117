// Package meshtest provides reference solids for tests.
package meshtest

import "github.com/chazu/printcost/pkg/mesh"

// faces lists the six faces of the unit cube as quads wound
// counter-clockwise when seen from outside, with their outward normals.
var faces = []struct {
	normal mesh.Point
	quad   [4]mesh.Point
}{
	{mesh.Point{0, 0, -1}, [4]mesh.Point{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
	{mesh.Point{0, 0, 1}, [4]mesh.Point{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	{mesh.Point{0, -1, 0}, [4]mesh.Point{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	{mesh.Point{0, 1, 0}, [4]mesh.Point{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}},
	{mesh.Point{-1, 0, 0}, [4]mesh.Point{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	{mesh.Point{1, 0, 0}, [4]mesh.Point{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
}

// BoxTriangles returns the 12 triangles of an axis-aligned box with the
// given size whose minimum corner sits at origin. When withNormals is
// false every normal is left zero.
func BoxTriangles(size, origin mesh.Vec3, withNormals bool) []mesh.Triangle {
	tris := make([]mesh.Triangle, 0, 12)
	place := func(p mesh.Point) mesh.Point {
		return mesh.Point{
			float32(origin.X + float64(p[0])*size.X),
			float32(origin.Y + float64(p[1])*size.Y),
			float32(origin.Z + float64(p[2])*size.Z),
		}
	}
	for _, f := range faces {
		var n mesh.Point
		if withNormals {
			n = f.normal
		}
		a, b, c, d := place(f.quad[0]), place(f.quad[1]), place(f.quad[2]), place(f.quad[3])
		tris = append(tris,
			mesh.Triangle{Normal: n, Vertices: [3]mesh.Point{a, b, c}},
			mesh.Triangle{Normal: n, Vertices: [3]mesh.Point{a, c, d}},
		)
	}
	return tris
}

// Box returns a box mesh with its minimum corner at the origin.
func Box(x, y, z float64) *mesh.Mesh {
	return mesh.New(BoxTriangles(mesh.Vec3{X: x, Y: y, Z: z}, mesh.Vec3{}, true))
}

// Cube returns a cube mesh with the given edge length.
func Cube(edge float64) *mesh.Mesh {
	return Box(edge, edge, edge)
}

// Tetrahedron returns the corner tetrahedron spanned by the three axes
// with the given leg length; its volume is leg³/6.
func Tetrahedron(leg float32) *mesh.Mesh {
	o := mesh.Point{0, 0, 0}
	x := mesh.Point{leg, 0, 0}
	y := mesh.Point{0, leg, 0}
	z := mesh.Point{0, 0, leg}
	return mesh.New([]mesh.Triangle{
		{Vertices: [3]mesh.Point{o, y, x}},
		{Vertices: [3]mesh.Point{o, x, z}},
		{Vertices: [3]mesh.Point{o, z, y}},
		{Vertices: [3]mesh.Point{x, y, z}},
	})
}
