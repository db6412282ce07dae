package render

import (
	"image/color"
	"math"
)

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Pt creates a new Point.
func Pt(x, y int) Point {
	return Point{x, y}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) with a digital
// differential analyzer: max(|dx|, |dy|) equal steps, each sample rounded to
// the nearest pixel. Both endpoints are plotted.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := x1 - x0
	dy := y1 - y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		fb.SetPixel(x0, y0, c)
		return
	}

	xInc := float64(dx) / float64(steps)
	yInc := float64(dy) / float64(steps)
	x, y := float64(x0), float64(y0)
	for range steps + 1 {
		fb.SetPixel(int(math.Round(x)), int(math.Round(y)), c)
		x += xInc
		y += yInc
	}
}

// DrawTriangle draws the three edges of a triangle.
func (fb *Framebuffer) DrawTriangle(p0, p1, p2 Point, c color.RGBA) {
	fb.DrawLine(p0.X, p0.Y, p1.X, p1.Y, c)
	fb.DrawLine(p1.X, p1.Y, p2.X, p2.Y, c)
	fb.DrawLine(p2.X, p2.Y, p0.X, p0.Y, c)
}

// SortVertices orders three points by ascending Y with three
// compare-and-swaps. Already sorted input is returned unchanged.
func SortVertices(p0, p1, p2 Point) (Point, Point, Point) {
	if p0.Y > p1.Y {
		p0, p1 = p1, p0
	}
	if p1.Y > p2.Y {
		p1, p2 = p2, p1
	}
	if p0.Y > p1.Y {
		p0, p1 = p1, p0
	}
	return p0, p1, p2
}

// FillTriangle fills a triangle by splitting it at the middle vertex into a
// flat-bottom and a flat-top half and filling each scanline by scanline.
func (fb *Framebuffer) FillTriangle(p0, p1, p2 Point, c color.RGBA) {
	p0, p1, p2 = SortVertices(p0, p1, p2)

	switch {
	case p0.Y == p2.Y:
		// Zero height: all three points share one row.
		fb.hline(min(p0.X, p1.X, p2.X), max(p0.X, p1.X, p2.X), p0.Y, c)
	case p1.Y == p2.Y:
		fb.fillFlatBottom(p0, p1, p2, c)
	case p0.Y == p1.Y:
		fb.fillFlatTop(p0, p1, p2, c)
	default:
		// M lies on the long edge P0-P2 at the height of P1.
		mx := float64(p0.X) + float64(p2.X-p0.X)*float64(p1.Y-p0.Y)/float64(p2.Y-p0.Y)
		m := Point{int(math.Round(mx)), p1.Y}
		fb.fillFlatBottom(p0, p1, m, c)
		fb.fillFlatTop(p1, m, p2, c)
	}
}

// fillFlatBottom fills a triangle whose p1 and p2 share the bottom row,
// walking down from the apex p0. Requires p0.Y < p1.Y == p2.Y.
func (fb *Framebuffer) fillFlatBottom(p0, p1, p2 Point, c color.RGBA) {
	invSlope1 := float64(p1.X-p0.X) / float64(p1.Y-p0.Y)
	invSlope2 := float64(p2.X-p0.X) / float64(p2.Y-p0.Y)

	yStart := max(p0.Y, 0)
	yEnd := min(p2.Y, fb.Height-1)
	for y := yStart; y <= yEnd; y++ {
		dy := float64(y - p0.Y)
		xStart := float64(p0.X) + invSlope1*dy
		xEnd := float64(p0.X) + invSlope2*dy
		fb.hline(int(math.Round(xStart)), int(math.Round(xEnd)), y, c)
	}
}

// fillFlatTop fills a triangle whose p0 and p1 share the top row, walking
// up from the apex p2. Requires p0.Y == p1.Y < p2.Y.
func (fb *Framebuffer) fillFlatTop(p0, p1, p2 Point, c color.RGBA) {
	invSlope1 := float64(p2.X-p0.X) / float64(p2.Y-p0.Y)
	invSlope2 := float64(p2.X-p1.X) / float64(p2.Y-p1.Y)

	yStart := min(p2.Y, fb.Height-1)
	yEnd := max(p0.Y, 0)
	for y := yStart; y >= yEnd; y-- {
		dy := float64(p2.Y - y)
		xStart := float64(p2.X) - invSlope1*dy
		xEnd := float64(p2.X) - invSlope2*dy
		fb.hline(int(math.Round(xStart)), int(math.Round(xEnd)), y, c)
	}
}

// hline fills the inclusive span [x0, x1] on row y, clipped to the buffer.
func (fb *Framebuffer) hline(x0, x1, y int, c color.RGBA) {
	if y < 0 || y >= fb.Height {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	x0 = max(x0, 0)
	x1 = min(x1, fb.Width-1)
	if x0 > x1 {
		return
	}
	row := y * fb.Width * BytesPerPixel
	for i := row + x0*BytesPerPixel; i <= row+x1*BytesPerPixel; i += BytesPerPixel {
		fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
