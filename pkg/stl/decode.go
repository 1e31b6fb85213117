// Package stl reads and writes STL triangle soups in both the binary and
// the text encoding. Which encoding a buffer uses is guessed by Classify;
// Decode dispatches on that guess.
package stl

import (
	"fmt"

	"github.com/chazu/printcost/pkg/mesh"
)

// Decode classifies buf and runs the matching decoder.
func Decode(buf []byte) ([]mesh.Triangle, Format, error) {
	switch f := Classify(buf); f {
	case FormatText:
		return DecodeText(buf), f, nil
	case FormatBinary:
		tris, err := DecodeBinary(buf)
		return tris, f, err
	default:
		return nil, f, fmt.Errorf("%w: %v", ErrUnrecognizedFormat, f)
	}
}

// DecodeMesh decodes buf into a Mesh. Failures are reported as a
// *ParseError naming file.
func DecodeMesh(file string, buf []byte) (*mesh.Mesh, Format, error) {
	tris, f, err := Decode(buf)
	if err != nil {
		return nil, f, &ParseError{File: file, Err: err}
	}
	return mesh.New(tris), f, nil
}

// Encode writes tris in the requested format.
func Encode(f Format, name string, tris []mesh.Triangle) []byte {
	if f == FormatText {
		return EncodeText(name, tris)
	}
	return EncodeBinary(tris)
}
