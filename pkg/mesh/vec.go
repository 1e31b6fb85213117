package mesh

import "math"

// Point is a vertex or normal exactly as stored in an STL file, in millimeters.
type Point [3]float32

// Vec returns the point widened to float64.
func (p Point) Vec() Vec3 {
	return Vec3{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}

// Vec3 is a float64 3-tuple used for scale, size, position and rotation.
type Vec3 struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
	Z float64 `json:"z" toml:"z"`
}

// Identity is the unit scale.
var Identity = Vec3{X: 1, Y: 1, Z: 1}

// Uniform returns a scale with every axis set to s.
func Uniform(s float64) Vec3 {
	return Vec3{X: s, Y: s, Z: s}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Mul returns the component-wise product of v and o.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{X: v.X * o.X, Y: v.Y * o.Y, Z: v.Z * o.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// emptyBox is inverted so that the first Extend sets both corners.
func emptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: Vec3{X: inf, Y: inf, Z: inf},
		Max: Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Extend grows the box to contain p.
func (b *Box) Extend(p Vec3) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
}

// Size returns max - min per axis.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}
