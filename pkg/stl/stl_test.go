package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/chazu/printcost/pkg/mesh"
	"github.com/chazu/printcost/pkg/mesh/meshtest"
)

// --- Classify ---

func TestClassify(t *testing.T) {
	padded := append(bytes.Repeat([]byte{0}, 1020), []byte("solid")...)
	tests := []struct {
		name string
		buf  []byte
		want Format
	}{
		{"empty", nil, FormatBinary},
		{"text", []byte("solid cube\nendsolid cube\n"), FormatText},
		{"keyword not at start", []byte("  \n  solid x"), FormatText},
		{"binary", EncodeBinary(meshtest.BoxTriangles(mesh.Uniform(10), mesh.Vec3{}, true)), FormatBinary},
		{"short garbage", []byte{1, 2, 3}, FormatBinary},
		{"keyword straddles window", padded, FormatBinary},
		{"keyword inside window", padded[5:], FormatText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.buf); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyBinaryHeaderWithKeywordIsMisread(t *testing.T) {
	buf := EncodeBinary(meshtest.BoxTriangles(mesh.Uniform(10), mesh.Vec3{}, true))
	copy(buf, "solid exported by some CAD tool")
	if got := Classify(buf); got != FormatText {
		t.Fatalf("Classify() = %s; the heuristic is expected to read this header as text", got)
	}
}

// --- Binary ---

func TestBinaryRoundTripBitExact(t *testing.T) {
	tris := []mesh.Triangle{
		{
			Normal:   mesh.Point{0, 0, 1},
			Vertices: [3]mesh.Point{{0, 0, 0}, {1.5, -2.25, 3e-7}, {float32(math.Pi), 1e30, -0}},
		},
		{
			Normal:   mesh.Point{float32(math.NaN()), 0.1, -0.3},
			Vertices: [3]mesh.Point{{math.MaxFloat32, math.SmallestNonzeroFloat32, 7}, {8, 9, 10}, {11, 12, 13}},
		},
	}
	got, err := DecodeBinary(EncodeBinary(tris))
	if err != nil {
		t.Fatalf("DecodeBinary() error = %v", err)
	}
	if len(got) != len(tris) {
		t.Fatalf("decoded %d triangles, want %d", len(got), len(tris))
	}
	for i := range tris {
		if !sameBits(got[i].Normal, tris[i].Normal) {
			t.Errorf("triangle %d normal = %v, want %v", i, got[i].Normal, tris[i].Normal)
		}
		for j := 0; j < 3; j++ {
			if !sameBits(got[i].Vertices[j], tris[i].Vertices[j]) {
				t.Errorf("triangle %d vertex %d = %v, want %v", i, j, got[i].Vertices[j], tris[i].Vertices[j])
			}
		}
	}
}

func sameBits(a, b mesh.Point) bool {
	for i := 0; i < 3; i++ {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			return false
		}
	}
	return true
}

func TestDecodeBinaryLayout(t *testing.T) {
	// Hand-built record, independent of EncodeBinary.
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	for _, f := range []float32{0, 0, -1, 1, 2, 3, 4, 5, 6, 7, 8, 9} {
		binary.Write(&buf, binary.LittleEndian, f)
	}
	binary.Write(&buf, binary.LittleEndian, uint16(0xBEEF))

	tris, err := DecodeBinary(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeBinary() error = %v", err)
	}
	want := mesh.Triangle{
		Normal:   mesh.Point{0, 0, -1},
		Vertices: [3]mesh.Point{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
	}
	if len(tris) != 1 || tris[0] != want {
		t.Fatalf("DecodeBinary() = %+v, want [%+v]", tris, want)
	}
}

func TestDecodeBinaryToleratesTrailingBytes(t *testing.T) {
	tris := meshtest.BoxTriangles(mesh.Uniform(10), mesh.Vec3{}, true)
	buf := append(EncodeBinary(tris), []byte("trailing garbage")...)
	got, err := DecodeBinary(buf)
	if err != nil {
		t.Fatalf("DecodeBinary() error = %v", err)
	}
	if len(got) != 12 {
		t.Errorf("decoded %d triangles, want 12", len(got))
	}
}

func TestDecodeBinaryTruncated(t *testing.T) {
	full := EncodeBinary(meshtest.BoxTriangles(mesh.Uniform(10), mesh.Vec3{}, true))

	hugeCount := make([]byte, 84)
	binary.LittleEndian.PutUint32(hugeCount[80:], math.MaxUint32)

	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"header only", full[:80]},
		{"missing one count byte", full[:83]},
		{"mid record", full[:84+50*5+17]},
		{"missing attribute bytes", full[:len(full)-1]},
		{"max count", hugeCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tris, err := DecodeBinary(tt.buf)
			if !errors.Is(err, ErrTruncatedInput) {
				t.Fatalf("DecodeBinary() error = %v, want ErrTruncatedInput", err)
			}
			if tris != nil {
				t.Errorf("DecodeBinary() returned %d triangles alongside the error", len(tris))
			}
		})
	}
}

func TestDecodeBinaryZeroTriangles(t *testing.T) {
	tris, err := DecodeBinary(EncodeBinary(nil))
	if err != nil {
		t.Fatalf("DecodeBinary() error = %v", err)
	}
	if len(tris) != 0 {
		t.Errorf("decoded %d triangles, want 0", len(tris))
	}
}

// --- Text ---

const twoFacets = `solid square
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 1 1 0
    endloop
  endfacet
  facet normal 0.0E+00 -0.0e0 -1.000000e+00
    outer loop
      vertex 0 0 0
      vertex 1.0 1.0 0.0
      vertex -1.5e1 +2.5E-1 0
    endloop
  endfacet
endsolid square
`

func TestDecodeText(t *testing.T) {
	tris := DecodeText([]byte(twoFacets))
	if len(tris) != 2 {
		t.Fatalf("decoded %d triangles, want 2", len(tris))
	}
	if tris[0].Normal != (mesh.Point{0, 0, -1}) {
		t.Errorf("first normal = %v", tris[0].Normal)
	}
	if tris[1].Vertices[2] != (mesh.Point{-15, 0.25, 0}) {
		t.Errorf("scientific notation vertex = %v, want [-15 0.25 0]", tris[1].Vertices[2])
	}
	if tris[1].Vertices[1] != (mesh.Point{1, 1, 0}) {
		t.Errorf("vertex order not preserved: %v", tris[1].Vertices[1])
	}
}

func TestDecodeTextDropsPartialTriangle(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"complete", twoFacets, 2},
		{"extra vertex", strings.Replace(twoFacets, "endsolid", "vertex 9 9 9\nendsolid", 1), 2},
		{"extra normal", strings.Replace(twoFacets, "endsolid", "facet normal 1 0 0\nendsolid", 1), 2},
		{"extra normal and two vertices", strings.Replace(twoFacets, "endsolid",
			"facet normal 1 0 0\nvertex 1 1 1\nvertex 2 2 2\nendsolid", 1), 2},
		{"last vertex missing", strings.Replace(twoFacets, "vertex -1.5e1 +2.5E-1 0", "", 1), 1},
		{"no records", "solid empty\nendsolid empty\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(DecodeText([]byte(tt.src))); got != tt.want {
				t.Errorf("decoded %d triangles, want %d", got, tt.want)
			}
		})
	}
}

func TestDecodeTextLenientNumbers(t *testing.T) {
	src := `solid bad
facet normal 1.2.3 - e
outer loop
vertex 1e999 2 3
vertex 4 ++5 6
vertex 7 8 9
endloop
endfacet
endsolid bad
`
	tris := DecodeText([]byte(src))
	if len(tris) != 1 {
		t.Fatalf("decoded %d triangles, want 1", len(tris))
	}
	if tris[0].Normal != (mesh.Point{0, 0, 0}) {
		t.Errorf("malformed normal = %v, want zeros", tris[0].Normal)
	}
	if tris[0].Vertices[0] != (mesh.Point{0, 2, 3}) {
		t.Errorf("out of range literal = %v, want [0 2 3]", tris[0].Vertices[0])
	}
	if tris[0].Vertices[1] != (mesh.Point{4, 0, 6}) {
		t.Errorf("malformed literal = %v, want [4 0 6]", tris[0].Vertices[1])
	}
}

func TestParseFloat32(t *testing.T) {
	if _, err := parseFloat32("abc"); !errors.Is(err, ErrMalformedNumber) {
		t.Errorf("parseFloat32(abc) error = %v, want ErrMalformedNumber", err)
	}
	if f, err := parseFloat32("-2.5e2"); err != nil || f != -250 {
		t.Errorf("parseFloat32(-2.5e2) = %v, %v", f, err)
	}
}

func TestTextRoundTrip(t *testing.T) {
	tris := meshtest.BoxTriangles(mesh.Vec3{X: 10.1, Y: 3.3333, Z: 1e-3}, mesh.Vec3{X: -4.2, Y: 0, Z: 7}, true)
	buf := EncodeText("round trip part", tris)
	if Classify(buf) != FormatText {
		t.Fatal("encoded text not classified as text")
	}
	got := DecodeText(buf)
	if len(got) != len(tris) {
		t.Fatalf("decoded %d triangles, want %d", len(got), len(tris))
	}
	for i := range tris {
		if got[i] != tris[i] {
			t.Fatalf("triangle %d = %+v, want %+v", i, got[i], tris[i])
		}
	}
	if !strings.HasPrefix(string(buf), "solid round_trip_part\n") {
		t.Errorf("unexpected header line: %q", strings.SplitN(string(buf), "\n", 2)[0])
	}
}

// --- Decode dispatch ---

func TestDecodeDispatch(t *testing.T) {
	tris := meshtest.BoxTriangles(mesh.Uniform(20), mesh.Vec3{}, false)

	for _, f := range []Format{FormatBinary, FormatText} {
		t.Run(f.String(), func(t *testing.T) {
			got, format, err := Decode(Encode(f, "cube", tris))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if format != f {
				t.Errorf("format = %s, want %s", format, f)
			}
			if len(got) != 12 {
				t.Errorf("decoded %d triangles, want 12", len(got))
			}
		})
	}
}

func TestDecodeMeshParseError(t *testing.T) {
	buf := EncodeBinary(meshtest.BoxTriangles(mesh.Uniform(20), mesh.Vec3{}, false))
	_, _, err := DecodeMesh("part.stl", buf[:200])
	if err == nil {
		t.Fatal("expected error for truncated buffer")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %T is not *ParseError", err)
	}
	if pe.File != "part.stl" {
		t.Errorf("ParseError.File = %q, want part.stl", pe.File)
	}
	if !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("errors.Is(err, ErrTruncatedInput) = false for %v", err)
	}
	if !strings.Contains(err.Error(), "part.stl") {
		t.Errorf("error message %q does not name the file", err)
	}
}

// 20 mm cube, binary, zero normals, scaled (2,1,1).
func TestEndToEndScaledCube(t *testing.T) {
	buf := EncodeBinary(meshtest.BoxTriangles(mesh.Uniform(20), mesh.Vec3{}, false))
	m, format, err := DecodeMesh("cube20.stl", buf)
	if err != nil {
		t.Fatalf("DecodeMesh() error = %v", err)
	}
	if format != FormatBinary {
		t.Fatalf("format = %s, want binary", format)
	}
	if m.TriangleCount() != 12 {
		t.Fatalf("triangles = %d, want 12", m.TriangleCount())
	}

	scale := mesh.Vec3{X: 2, Y: 1, Z: 1}
	if v := mesh.Volume(m, scale); math.Abs(v-16.0) > 1e-9 {
		t.Errorf("Volume() = %v, want 16.0", v)
	}
	if d := mesh.Dimensions(m, scale); d != (mesh.Vec3{X: 40, Y: 20, Z: 20}) {
		t.Errorf("Dimensions() = %+v, want (40,20,20)", d)
	}
	if f := mesh.DominantFace(m); f != mesh.FaceZ {
		t.Errorf("DominantFace() = %s, want z", f)
	}
}
