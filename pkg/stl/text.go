package stl

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chazu/printcost/pkg/mesh"
)

const number = `([\d.eE+-]+)`

var (
	normalPattern = regexp.MustCompile(`normal\s+` + number + `\s+` + number + `\s+` + number)
	vertexPattern = regexp.MustCompile(`vertex\s+` + number + `\s+` + number + `\s+` + number)
)

// DecodeText parses a text STL buffer. Normal and vertex records are
// collected independently in document order; triangle i takes normal i
// and vertices 3i..3i+2. A trailing triangle without its full set of
// records is dropped. Literals that fail to parse read as 0.
func DecodeText(buf []byte) []mesh.Triangle {
	if !utf8.Valid(buf) {
		buf = bytes.ToValidUTF8(buf, []byte("\uFFFD"))
	}
	normals := scanPoints(normalPattern, buf)
	vertices := scanPoints(vertexPattern, buf)

	n := len(normals)
	if m := len(vertices) / 3; m < n {
		n = m
	}

	tris := make([]mesh.Triangle, n)
	for i := range tris {
		tris[i] = mesh.Triangle{
			Normal:   normals[i],
			Vertices: [3]mesh.Point{vertices[3*i], vertices[3*i+1], vertices[3*i+2]},
		}
	}
	return tris
}

func scanPoints(re *regexp.Regexp, buf []byte) []mesh.Point {
	matches := re.FindAllSubmatch(buf, -1)
	points := make([]mesh.Point, len(matches))
	for i, m := range matches {
		points[i] = mesh.Point{parseNumber(m[1]), parseNumber(m[2]), parseNumber(m[3])}
	}
	return points
}

// parseNumber is lenient: anything strconv rejects, including values out
// of float32 range, becomes 0.
func parseNumber(b []byte) float32 {
	f, err := parseFloat32(string(b))
	if err != nil {
		return 0
	}
	return f
}

func parseFloat32(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, ErrMalformedNumber
	}
	return float32(f), nil
}

// EncodeText writes tris as a text STL solid with the given name.
// Numbers use the shortest representation that reads back bit-exact.
func EncodeText(name string, tris []mesh.Triangle) []byte {
	name = strings.Join(strings.Fields(name), "_")
	var b strings.Builder
	b.WriteString("solid " + name + "\n")
	for _, t := range tris {
		b.WriteString("  facet normal " + formatPoint(t.Normal) + "\n")
		b.WriteString("    outer loop\n")
		for _, v := range t.Vertices {
			b.WriteString("      vertex " + formatPoint(v) + "\n")
		}
		b.WriteString("    endloop\n")
		b.WriteString("  endfacet\n")
	}
	b.WriteString("endsolid " + name + "\n")
	return []byte(b.String())
}

func formatPoint(p mesh.Point) string {
	return formatFloat(p[0]) + " " + formatFloat(p[1]) + " " + formatFloat(p[2])
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'e', -1, 32)
}
