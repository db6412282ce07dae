package models

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/scanline/pkg/math3d"
)

// LoadGLTF loads the triangle primitives of a glTF or GLB file.
//
// glTF is right-handed with counter-clockwise front faces. Z is mirrored into
// the left-handed camera space, which also flips the winding, so each
// triangle's second and third corners are swapped to keep it front-facing.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	palette := Palette(len(doc.Materials) + 1)

	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh, palette); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// processMesh appends the geometry of one glTF mesh.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh, palette []color.RGBA) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, strips)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], [][3]float32{})
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		// OBJ-style 1-based indices
		base := len(mesh.Vertices) + 1
		for _, p := range positions {
			mesh.Vertices = append(mesh.Vertices, math3d.V3(float64(p[0]), float64(p[1]), -float64(p[2])))
		}

		c := primitiveColor(doc, prim, palette)

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], []uint32{})
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{
				A:     base + int(indices[i]),
				B:     base + int(indices[i+2]), // swapped
				C:     base + int(indices[i+1]), // swapped
				Color: c,
			})
		}
	}

	return nil
}

// primitiveColor returns the material base color, or a palette entry keyed
// by material index when the primitive has no usable material.
func primitiveColor(doc *gltf.Document, prim *gltf.Primitive, palette []color.RGBA) color.RGBA {
	if prim.Material == nil {
		return palette[0]
	}
	mat := doc.Materials[*prim.Material]
	if mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorFactor == nil {
		return palette[*prim.Material+1]
	}
	f := mat.PBRMetallicRoughness.BaseColorFactor
	return color.RGBA{
		R: unitToByte(f[0]),
		G: unitToByte(f[1]),
		B: unitToByte(f[2]),
		A: unitToByte(f[3]),
	}
}

func unitToByte(v float64) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
