package stl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/chazu/printcost/pkg/mesh"
)

// Binary layout.
const (
	headerSize = 80
	countSize  = 4
	recordSize = 50
	// minBinarySize is the header plus the triangle count.
	minBinarySize = headerSize + countSize
)

// short name, for convenience
var le = binary.LittleEndian

// DecodeBinary reads a little-endian binary STL buffer: an ignored 80-byte
// header, a uint32 triangle count N, then N 50-byte records of normal,
// three vertices and an ignored 2-byte attribute. Bytes past the last
// record are ignored. A buffer too short for the header or for N records
// fails with ErrTruncatedInput and no triangles.
func DecodeBinary(buf []byte) ([]mesh.Triangle, error) {
	if len(buf) < minBinarySize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncatedInput, len(buf), minBinarySize)
	}
	n := le.Uint32(buf[headerSize:minBinarySize])

	// uint64 so that the largest declared count cannot overflow.
	need := uint64(minBinarySize) + uint64(n)*recordSize
	if uint64(len(buf)) < need {
		return nil, fmt.Errorf("%w: %d triangles need %d bytes, have %d", ErrTruncatedInput, n, need, len(buf))
	}

	tris := make([]mesh.Triangle, n)
	for i := range tris {
		off := minBinarySize + i*recordSize
		readTriangle(buf[off:off+recordSize], &tris[i])
	}
	return tris, nil
}

// readTriangle decodes one record directly into its final storage.
func readTriangle(rec []byte, t *mesh.Triangle) {
	t.Normal = readPoint(rec[0:12])
	t.Vertices[0] = readPoint(rec[12:24])
	t.Vertices[1] = readPoint(rec[24:36])
	t.Vertices[2] = readPoint(rec[36:48])
	// rec[48:50] is the attribute byte count, discarded.
}

func readPoint(b []byte) mesh.Point {
	return mesh.Point{
		math.Float32frombits(le.Uint32(b[0:4])),
		math.Float32frombits(le.Uint32(b[4:8])),
		math.Float32frombits(le.Uint32(b[8:12])),
	}
}

// binaryHeader deliberately avoids the word Classify looks for.
var binaryHeader = []byte("printcost binary STL")

// EncodeBinary writes tris in the binary layout with zero attributes.
func EncodeBinary(tris []mesh.Triangle) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, minBinarySize+len(tris)*recordSize))

	var header [headerSize]byte
	copy(header[:], binaryHeader)
	buf.Write(header[:])

	var word [4]byte
	le.PutUint32(word[:], uint32(len(tris)))
	buf.Write(word[:])

	var rec [recordSize]byte
	for _, t := range tris {
		putPoint(rec[0:12], t.Normal)
		putPoint(rec[12:24], t.Vertices[0])
		putPoint(rec[24:36], t.Vertices[1])
		putPoint(rec[36:48], t.Vertices[2])
		rec[48], rec[49] = 0, 0
		buf.Write(rec[:])
	}
	return buf.Bytes()
}

func putPoint(b []byte, p mesh.Point) {
	le.PutUint32(b[0:4], math.Float32bits(p[0]))
	le.PutUint32(b[4:8], math.Float32bits(p[1]))
	le.PutUint32(b[8:12], math.Float32bits(p[2]))
}
