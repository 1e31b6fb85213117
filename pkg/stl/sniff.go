package stl

import "bytes"

// Format is the encoding variant of an STL buffer.
type Format int

const (
	FormatBinary Format = iota
	FormatText
)

func (f Format) String() string {
	if f == FormatText {
		return "text"
	}
	return "binary"
}

// sniffWindow is how many leading bytes Classify inspects.
const sniffWindow = 1024

var textMarker = []byte("solid")

// Classify reports whether buf holds text or binary STL. It looks for the
// "solid" keyword anywhere in the first 1024 bytes; text STL has no magic
// number, so a binary header that happens to contain the word is
// misread as text. Classify never fails and defaults to FormatBinary.
func Classify(buf []byte) Format {
	head := buf
	if len(head) > sniffWindow {
		head = head[:sniffWindow]
	}
	if bytes.Contains(head, textMarker) {
		return FormatText
	}
	return FormatBinary
}
