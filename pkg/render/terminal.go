package render

import (
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	xdraw "golang.org/x/image/draw"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each cell shows two stacked pixels, so the framebuffer height
// should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	drawHalfBlocks(scr, area, fb.Width, fb.GetPixel)
}

// DrawScaled fits the framebuffer into area, resampling with nearest
// neighbour when the sizes differ. The terminal can be any size while the
// framebuffer keeps its fixed resolution.
func (fb *Framebuffer) DrawScaled(scr uv.Screen, area uv.Rectangle) {
	w, h := area.Max.X-area.Min.X, (area.Max.Y-area.Min.Y)*2
	if w <= 0 || h <= 0 {
		return
	}
	if w == fb.Width && h == fb.Height {
		fb.Draw(scr, area)
		return
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	src := &image.RGBA{Pix: fb.Pix, Stride: fb.Width * BytesPerPixel, Rect: image.Rect(0, 0, fb.Width, fb.Height)}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	drawHalfBlocks(scr, area, w, func(x, y int) color.RGBA {
		if x < 0 || x >= w || y < 0 || y >= h {
			return color.RGBA{}
		}
		return dst.RGBAAt(x, y)
	})
}

// drawHalfBlocks paints area with ▀ cells: foreground is the top pixel and
// background the bottom pixel of each pair of rows.
func drawHalfBlocks(scr uv.Screen, area uv.Rectangle, width int, pixel func(x, y int) color.RGBA) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(pixel(x, topY)),
					Bg: rgbaToColor(pixel(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
