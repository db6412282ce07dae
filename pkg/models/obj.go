package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse obj %s: %w", path, err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ParseOBJ reads vertex and face records from r.
//
// Only "v" and "f" lines are consumed. Face corners may be written as a,
// a/b, a/b/c or a//c; only the vertex index is kept. Polygons with more than
// three corners are split into a triangle fan. A v or f line that does not
// parse aborts the load with a *ParseError.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	mesh := NewMesh("")
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, &ParseError{Line: lineNo, Text: line, Err: err}
			}
			mesh.Vertices = append(mesh.Vertices, v)
		case "f":
			faces, err := parseFace(fields[1:], len(mesh.Vertices))
			if err != nil {
				return nil, &ParseError{Line: lineNo, Text: line, Err: err}
			}
			mesh.Faces = append(mesh.Faces, faces...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func parseVertex(fields []string) (math3d.Vec3, error) {
	// A fourth (w) coordinate must parse but is not kept.
	if len(fields) < 3 || len(fields) > 4 {
		return math3d.Vec3{}, fmt.Errorf("%w: want 3 coordinates, got %d", ErrMalformedVertex, len(fields))
	}
	var xyzw [4]float64
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("%w: %w", ErrMalformedVertex, err)
		}
		xyzw[i] = f
	}
	return math3d.V3(xyzw[0], xyzw[1], xyzw[2]), nil
}

// parseFace returns the triangle fan for one face record. Negative indices
// are relative to the n vertices read so far.
func parseFace(fields []string, n int) ([]Face, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: want at least 3 corners, got %d", ErrMalformedFace, len(fields))
	}

	idx := make([]int, len(fields))
	for i, corner := range fields {
		parts := strings.Split(corner, "/")
		if len(parts) > 3 {
			return nil, fmt.Errorf("%w: corner %q", ErrMalformedFace, corner)
		}
		v, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedFace, err)
		}
		// Texture and normal indices are checked, then dropped. Either may
		// be empty as in "a//c".
		for _, p := range parts[1:] {
			if p == "" {
				continue
			}
			if _, err := strconv.Atoi(p); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedFace, err)
			}
		}
		switch {
		case v < 0:
			v = n + v + 1
		case v == 0:
			return nil, fmt.Errorf("%w: index 0", ErrMalformedFace)
		}
		idx[i] = v
	}

	faces := make([]Face, 0, len(idx)-2)
	for i := 1; i+1 < len(idx); i++ {
		faces = append(faces, Face{A: idx[0], B: idx[i], C: idx[i+1], Color: DefaultFaceColor})
	}
	return faces, nil
}
