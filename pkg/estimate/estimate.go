// Package estimate derives physical and placement quantities from a mesh:
// weight, the offset that rests it on the bed, and the rotation that lays
// its largest face flat.
package estimate

import "github.com/chazu/printcost/pkg/mesh"

// Weight returns grams for a volume in cm³, a density in g/cm³ and an
// infill fraction in [0,1]. Infill scales the whole enclosed volume;
// walls and shells are not modeled separately.
func Weight(volumeCm3, densityGPerCm3, infillFraction float64) float64 {
	return volumeCm3 * densityGPerCm3 * infillFraction
}

// RestOffset returns the Y translation that brings the lowest scaled
// vertex onto the Y=0 plane. An empty mesh needs no offset.
func RestOffset(m *mesh.Mesh, scale mesh.Vec3) float64 {
	box, ok := mesh.Bounds(m, scale)
	if !ok {
		return 0
	}
	return -box.Min.Y
}

// CenterOffset returns the X/Z position that centers a model. The bed is
// an unbounded plane, so the answer is always its origin.
func CenterOffset() (x, z float64) {
	return 0, 0
}

// FaceToRotation maps a dominant face to Euler angles in degrees.
//
// Y and Z both map to the identity rotation; that matches the observed
// behavior of the quoting tool this replaces and is likely incomplete
// for FaceZ under a Y-up bed.
func FaceToRotation(face mesh.Face) mesh.Vec3 {
	switch face {
	case mesh.FaceX:
		return mesh.Vec3{X: 90}
	default:
		return mesh.Vec3{}
	}
}

// Estimate bundles everything derived from one mesh at one scale.
type Estimate struct {
	VolumeCm3    float64   `json:"volumeCm3"`
	WeightGrams  float64   `json:"weightGrams"`
	Dimensions   mesh.Vec3 `json:"dimensions"`
	DominantFace string    `json:"dominantFace"`
	RestOffset   float64   `json:"restOffset"`
	LayFlat      mesh.Vec3 `json:"layFlat"`
	Triangles    int       `json:"triangles"`
}

// Analyze runs every query against m. Nothing is cached; callers that
// need memoization keep the result.
func Analyze(m *mesh.Mesh, scale mesh.Vec3, densityGPerCm3, infillFraction float64) Estimate {
	volume := mesh.Volume(m, scale)
	face := mesh.DominantFace(m)
	return Estimate{
		VolumeCm3:    volume,
		WeightGrams:  Weight(volume, densityGPerCm3, infillFraction),
		Dimensions:   mesh.Dimensions(m, scale),
		DominantFace: face.String(),
		RestOffset:   RestOffset(m, scale),
		LayFlat:      FaceToRotation(face),
		Triangles:    m.TriangleCount(),
	}
}
