// Package render implements the scanline software rasterizer: the pixel
// buffer, line and triangle primitives, and the per-frame pipeline that
// transforms, culls, projects and depth-orders mesh faces.
package render

import (
	"fmt"
	"image"
	"image/color"
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// Framebuffer is a row-major RGBA8 pixel buffer with its origin at the top
// left. Pix holds Width*Height*4 bytes.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFramebuffer creates a framebuffer that owns its pixel memory.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}
}

// NewFramebufferFrom wraps pixel memory owned by a presentation layer.
// The framebuffer never resizes or reallocates pix.
func NewFramebufferFrom(width, height int, pix []byte) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("framebuffer size %dx%d: must be positive", width, height)
	}
	if want := width * height * BytesPerPixel; len(pix) != want {
		return nil, fmt.Errorf("framebuffer %dx%d: got %d bytes, want %d", width, height, len(pix), want)
	}
	return &Framebuffer{Width: width, Height: height, Pix: pix}, nil
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	if len(fb.Pix) == 0 {
		return
	}
	fb.Pix[0], fb.Pix[1], fb.Pix[2], fb.Pix[3] = c.R, c.G, c.B, c.A
	// Doubling copy fills the rest from the first pixel.
	for filled := BytesPerPixel; filled < len(fb.Pix); filled *= 2 {
		copy(fb.Pix[filled:], fb.Pix[:filled])
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Writes outside the buffer, including negative coordinates, are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	i := (y*fb.Width + x) * BytesPerPixel
	fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3] = c.R, c.G, c.B, c.A
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	i := (y*fb.Width + x) * BytesPerPixel
	return color.RGBA{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3]}
}

// DrawRect draws a filled rectangle.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c color.RGBA) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			fb.SetPixel(px, py, c)
		}
	}
}

// DrawGrid plots a dot every spacing pixels in both directions.
func (fb *Framebuffer) DrawGrid(spacing int, c color.RGBA) {
	if spacing <= 0 {
		return
	}
	for y := 0; y < fb.Height; y += spacing {
		for x := 0; x < fb.Width; x += spacing {
			fb.SetPixel(x, y, c)
		}
	}
}

// ToImage copies the framebuffer into a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Pix)
	return img
}
