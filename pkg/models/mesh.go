// Package models provides mesh loading and representation for scanline.
package models

import (
	"fmt"
	"image/color"

	"github.com/taigrr/scanline/pkg/math3d"
)

// DefaultFaceColor is assigned to faces whose source carries no color.
var DefaultFaceColor = color.RGBA{255, 255, 255, 255}

// Face is a triangle referencing three vertices by 1-based index.
type Face struct {
	A, B, C int
	Color   color.RGBA
}

// Indices returns the face's vertex indices converted to 0-based.
func (f Face) Indices() [3]int {
	return [3]int{f.A - 1, f.B - 1, f.C - 1}
}

// Mesh holds immutable geometry plus the pose used to place it each frame.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Pose, mutated once per frame by the driver.
	Rotation    math3d.Vec3
	Scale       math3d.Vec3
	Translation math3d.Vec3

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh with unit scale.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
		Scale:    math3d.V3(1, 1, 1),
	}
}

// Validate reports the first face whose indices fall outside [1, len(Vertices)].
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 || len(m.Faces) == 0 {
		return ErrEmptyMesh
	}
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range [3]int{f.A, f.B, f.C} {
			if idx < 1 || idx > n {
				return fmt.Errorf("face %d index %d of %d vertices: %w", i+1, idx, n, ErrFaceIndex)
			}
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Radius returns half the bounding box diagonal.
func (m *Mesh) Radius() float64 {
	return m.Size().Len() / 2
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Normalize recenters the vertices on the origin and scales them so the
// largest bounding box extent is 2, matching the original sample cube.
func (m *Mesh) Normalize() {
	if len(m.Vertices) == 0 {
		return
	}
	center := m.Center()
	size := m.Size()
	extent := max(size.X, size.Y, size.Z)
	if extent == 0 {
		extent = 1
	}
	s := 2 / extent
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Sub(center).Scale(s)
	}
	m.CalculateBounds()
}

// WorldMatrix composes the pose: scale, rotate X, Y, Z, then translate.
func (m *Mesh) WorldMatrix() math3d.Mat4 {
	return math3d.World(m.Scale, m.Rotation, m.Translation)
}

// Paint sets every face to c.
func (m *Mesh) Paint(c color.RGBA) {
	for i := range m.Faces {
		m.Faces[i].Color = c
	}
}

// PaintPalette gives each face a distinct color from Palette.
func (m *Mesh) PaintPalette() {
	colors := Palette(len(m.Faces))
	for i := range m.Faces {
		m.Faces[i].Color = colors[i]
	}
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (lo, hi math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
