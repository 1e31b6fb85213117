package job

import (
	"fmt"

	"github.com/chazu/printcost/pkg/mesh"
)

// ShapeKind enumerates the nodes of a parametric shape tree.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCylinder
	ShapeSphere
	ShapeUnion
	ShapeDifference
	ShapeIntersection
	ShapeTranslate
	ShapeRotate
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeCylinder:
		return "cylinder"
	case ShapeSphere:
		return "sphere"
	case ShapeUnion:
		return "union"
	case ShapeDifference:
		return "difference"
	case ShapeIntersection:
		return "intersection"
	case ShapeTranslate:
		return "translate"
	case ShapeRotate:
		return "rotate"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// IsPrimitive reports whether k is a leaf shape.
func (k ShapeKind) IsPrimitive() bool {
	return k == ShapeBox || k == ShapeCylinder || k == ShapeSphere
}

// IsBoolean reports whether k combines exactly two children.
func (k ShapeKind) IsBoolean() bool {
	return k == ShapeUnion || k == ShapeDifference || k == ShapeIntersection
}

// Shape is one node of a shape tree. Only the fields relevant to Kind are
// meaningful: Size for boxes, Height and Radius for cylinders, Radius
// for spheres, Vector for translate (mm) and rotate (degrees).
type Shape struct {
	Kind     ShapeKind `json:"kind"`
	Size     mesh.Vec3 `json:"size,omitempty"`
	Height   float64   `json:"height,omitempty"`
	Radius   float64   `json:"radius,omitempty"`
	Vector   mesh.Vec3 `json:"vector,omitempty"`
	Children []*Shape  `json:"children,omitempty"`
}

func Box(size mesh.Vec3) *Shape {
	return &Shape{Kind: ShapeBox, Size: size}
}

func Cylinder(height, radius float64) *Shape {
	return &Shape{Kind: ShapeCylinder, Height: height, Radius: radius}
}

func Sphere(radius float64) *Shape {
	return &Shape{Kind: ShapeSphere, Radius: radius}
}

func Union(a, b *Shape) *Shape {
	return &Shape{Kind: ShapeUnion, Children: []*Shape{a, b}}
}

// Difference removes b from a.
func Difference(a, b *Shape) *Shape {
	return &Shape{Kind: ShapeDifference, Children: []*Shape{a, b}}
}

func Intersection(a, b *Shape) *Shape {
	return &Shape{Kind: ShapeIntersection, Children: []*Shape{a, b}}
}

func Translate(s *Shape, offset mesh.Vec3) *Shape {
	return &Shape{Kind: ShapeTranslate, Vector: offset, Children: []*Shape{s}}
}

// Rotate applies Euler angles in degrees.
func Rotate(s *Shape, degrees mesh.Vec3) *Shape {
	return &Shape{Kind: ShapeRotate, Vector: degrees, Children: []*Shape{s}}
}

// String renders the tree in the quote-script syntax.
func (s *Shape) String() string {
	if s == nil {
		return "nil"
	}
	switch s.Kind {
	case ShapeBox:
		return fmt.Sprintf("(box %g %g %g)", s.Size.X, s.Size.Y, s.Size.Z)
	case ShapeCylinder:
		return fmt.Sprintf("(cylinder %g %g)", s.Height, s.Radius)
	case ShapeSphere:
		return fmt.Sprintf("(sphere %g)", s.Radius)
	case ShapeTranslate, ShapeRotate:
		return fmt.Sprintf("(%s %s (vec3 %g %g %g))", s.Kind, childString(s, 0), s.Vector.X, s.Vector.Y, s.Vector.Z)
	default:
		return fmt.Sprintf("(%s %s %s)", s.Kind, childString(s, 0), childString(s, 1))
	}
}

func childString(s *Shape, i int) string {
	if i >= len(s.Children) {
		return "nil"
	}
	return s.Children[i].String()
}
