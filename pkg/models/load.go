package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a mesh, choosing the decoder from the file extension.
func Load(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("load %s: %w %q", path, ErrUnsupportedFormat, ext)
	}
}
