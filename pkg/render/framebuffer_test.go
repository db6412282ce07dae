package render

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFramebuffer(t *testing.T) {
	fb := NewFramebuffer(500, 300)
	assert.Equal(t, 500, fb.Width)
	assert.Equal(t, 300, fb.Height)
	assert.Len(t, fb.Pix, 500*300*4)
}

func TestNewFramebufferFrom(t *testing.T) {
	pix := make([]byte, 4*3*4)
	fb, err := NewFramebufferFrom(4, 3, pix)
	require.NoError(t, err)

	fb.SetPixel(1, 0, ColorRed)
	// The caller's memory is written in place.
	assert.Equal(t, []byte{255, 0, 0, 255}, pix[4:8])

	_, err = NewFramebufferFrom(4, 3, make([]byte, 10))
	assert.Error(t, err)
	_, err = NewFramebufferFrom(0, 3, nil)
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 5}, {500, 300}} {
		fb := NewFramebuffer(size[0], size[1])
		c := RGBA(10, 20, 30, 40)
		fb.Clear(c)
		for y := range fb.Height {
			for x := range fb.Width {
				if got := fb.GetPixel(x, y); got != c {
					t.Fatalf("%dx%d pixel (%d,%d) = %v, want %v", fb.Width, fb.Height, x, y, got, c)
				}
			}
		}
	}

	assert.NotPanics(t, func() { NewFramebuffer(0, 0).Clear(ColorWhite) })
}

func TestSetPixelBounds(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	before := append([]byte(nil), fb.Pix...)

	tests := []struct {
		name string
		x, y int
	}{
		{"one past right edge", 4, 0},
		{"one past bottom edge", 0, 3},
		{"far away", 1000, 1000},
		{"negative x", -1, 0},
		{"negative y", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { fb.SetPixel(tt.x, tt.y, ColorWhite) })
			assert.Equal(t, before, fb.Pix)
		})
	}
}

func TestSetGetPixel(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.SetPixel(3, 2, ColorBlue)

	assert.Equal(t, ColorBlue, fb.GetPixel(3, 2))
	assert.Equal(t, []byte{0, 0, 255, 255}, fb.Pix[(2*4+3)*4:])
	assert.Equal(t, color.RGBA{}, fb.GetPixel(-1, 0))
}

func TestDrawRect(t *testing.T) {
	fb := NewFramebuffer(6, 6)
	fb.DrawRect(1, 1, 2, 3, ColorRed)

	assert.Len(t, litPixels(fb), 6)
	assert.Equal(t, ColorRed, fb.GetPixel(2, 3))
	assert.Equal(t, color.RGBA{}, fb.GetPixel(3, 1))

	// Partially offscreen rectangles are clipped.
	assert.NotPanics(t, func() { fb.DrawRect(-2, -2, 4, 4, ColorRed) })
	assert.Equal(t, ColorRed, fb.GetPixel(0, 0))
}

func TestDrawGrid(t *testing.T) {
	fb := NewFramebuffer(10, 7)
	fb.DrawGrid(5, ColorGray)

	assert.ElementsMatch(t, []Point{{0, 0}, {5, 0}, {0, 5}, {5, 5}}, litPixels(fb))

	fb.Clear(color.RGBA{})
	fb.DrawGrid(0, ColorGray)
	assert.Empty(t, litPixels(fb))
}

func TestToImage(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(2, 1, ColorGreen)

	img := fb.ToImage()
	assert.Equal(t, ColorGreen, img.RGBAAt(2, 1))

	// The image is a copy.
	img.SetRGBA(0, 0, ColorRed)
	assert.Equal(t, color.RGBA{}, fb.GetPixel(0, 0))
}

func TestSaveSnapshot(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	fb.Clear(ColorBlack)
	fb.SetPixel(1, 0, ColorRed)

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, fb.SaveSnapshot(path, 3))

	img, err := imgio.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())

	r, g, b, _ := img.At(4, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
}

func TestSaveSnapshotBadPath(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	err := fb.SaveSnapshot(filepath.Join(t.TempDir(), "missing", "frame.png"), 1)
	assert.Error(t, err)
}
