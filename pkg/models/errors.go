package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedVertex marks a vertex line whose coordinates do not parse.
	ErrMalformedVertex = errors.New("malformed vertex")
	// ErrMalformedFace marks a face line whose indices do not parse.
	ErrMalformedFace = errors.New("malformed face")
	// ErrFaceIndex marks a face index outside the vertex list.
	ErrFaceIndex = errors.New("face index out of range")
	// ErrUnsupportedFormat is returned by Load for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported model format")
	// ErrEmptyMesh is returned when a source yields no vertices or no faces.
	ErrEmptyMesh = errors.New("empty mesh")
)

// ParseError describes a line of a text model that failed to parse.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
