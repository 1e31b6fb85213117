// Package kernel defines the solid-modeling backend used to turn
// parametric shapes into triangle meshes. The quoting path only needs
// primitives, booleans and rigid transforms.
package kernel

import "github.com/chazu/printcost/pkg/mesh"

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounds in millimeters.
	BoundingBox() mesh.Box
}

// Kernel builds and tessellates solids. Dimensions are millimeters and
// rotations are Euler angles in degrees applied X, then Y, then Z.
type Kernel interface {
	// Box has its minimum corner at the origin.
	Box(size mesh.Vec3) (Solid, error)
	// Cylinder is centered on the origin with its axis along Z.
	Cylinder(height, radius float64) (Solid, error)
	// Sphere is centered on the origin.
	Sphere(radius float64) (Solid, error)

	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	Translate(s Solid, offset mesh.Vec3) Solid
	Rotate(s Solid, degrees mesh.Vec3) Solid

	ToMesh(s Solid) (*mesh.Mesh, error)
}
