// Package mesh holds the triangle-soup model and the geometry queries
// run against it: enclosed volume, bounding box and dominant face.
//
// A Mesh is never mutated after construction. Scale is always supplied
// by the caller at query time and applied to each vertex before any
// accumulation, so non-uniform scale is exact.
package mesh

// Triangle is one facet: an advisory normal and three vertices.
// The normal is carried through untouched and never used for geometry.
type Triangle struct {
	Normal   Point    `json:"normal"`
	Vertices [3]Point `json:"vertices"`
}

// Mesh is an ordered, immutable sequence of triangles.
type Mesh struct {
	tris []Triangle
}

// New creates a Mesh owning a copy of tris.
func New(tris []Triangle) *Mesh {
	own := make([]Triangle, len(tris))
	copy(own, tris)
	return &Mesh{tris: own}
}

// Clone returns an independent copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return New(nil)
	}
	return New(m.tris)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.tris)
}

// VertexCount returns the number of (non-deduplicated) vertices.
func (m *Mesh) VertexCount() int {
	return m.TriangleCount() * 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return m.TriangleCount() == 0
}

// Triangle returns the i-th triangle.
func (m *Mesh) Triangle(i int) Triangle {
	return m.tris[i]
}

// Triangles returns a copy of the triangle sequence in file order.
func (m *Mesh) Triangles() []Triangle {
	if m == nil {
		return nil
	}
	out := make([]Triangle, len(m.tris))
	copy(out, m.tris)
	return out
}

// Flat returns the mesh as flat render buffers: vertices has 3 floats
// per vertex (x,y,z), normals repeats each facet normal per vertex.
func (m *Mesh) Flat() (vertices, normals []float32) {
	n := m.VertexCount()
	vertices = make([]float32, 0, n*3)
	normals = make([]float32, 0, n*3)
	if m == nil {
		return vertices, normals
	}
	for _, t := range m.tris {
		for _, v := range t.Vertices {
			vertices = append(vertices, v[0], v[1], v[2])
			normals = append(normals, t.Normal[0], t.Normal[1], t.Normal[2])
		}
	}
	return vertices, normals
}
