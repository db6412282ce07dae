package render

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// Snapshot returns a copy of the framebuffer enlarged by an integer factor.
// Nearest-neighbour sampling keeps pixel edges hard.
func (fb *Framebuffer) Snapshot(scale int) image.Image {
	img := fb.ToImage()
	if scale <= 1 {
		return img
	}
	return transform.Resize(img, fb.Width*scale, fb.Height*scale, transform.NearestNeighbor)
}

// SaveSnapshot writes the framebuffer to path as a PNG, enlarged by scale.
func (fb *Framebuffer) SaveSnapshot(path string, scale int) error {
	if err := imgio.Save(path, fb.Snapshot(scale), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
