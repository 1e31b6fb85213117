package stl

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedFormat is reserved for buffers no decoder accepts.
	// Classify always falls back to binary, so it is never returned today.
	ErrUnrecognizedFormat = errors.New("stl: unrecognized format")

	// ErrTruncatedInput means a binary buffer is shorter than its header
	// or than the size implied by its declared triangle count.
	ErrTruncatedInput = errors.New("stl: truncated input")

	// ErrMalformedNumber marks a text literal that is not a number. The
	// text decoder recovers from it by substituting 0 and never returns it.
	ErrMalformedNumber = errors.New("stl: malformed number")
)

// ParseError reports a decode failure for a named file.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("stl: %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
