package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Wireframe draws debug geometry straight from world space, bypassing the
// triangle pipeline.
type Wireframe struct {
	camera Camera
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// DrawLine3D draws a line in 3D space. Lines with an endpoint behind the near
// plane are skipped.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, c Color) {
	x1, y1, _, vis1 := w.camera.WorldToScreen(p1, w.fb.Width, w.fb.Height)
	x2, y2, _, vis2 := w.camera.WorldToScreen(p2, w.fb.Width, w.fb.Height)
	if !vis1 || !vis2 {
		return
	}

	w.fb.DrawLine(int(math.Round(x1)), int(math.Round(y1)), int(math.Round(x2)), int(math.Round(y2)), c)
}

// boxEdges indexes the corners produced by AABB.Corners.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0}, // min Z face
	{4, 5}, {5, 7}, {7, 6}, {6, 4}, // max Z face
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // connecting edges
}

// DrawBox draws the edges of a local-space box after transformation.
func (w *Wireframe) DrawBox(box AABB, transform math3d.Mat4, c Color) {
	corners := box.Corners()
	for i, v := range corners {
		corners[i] = transform.MulVec3(v)
	}
	for _, edge := range boxEdges {
		w.DrawLine3D(corners[edge[0]], corners[edge[1]], c)
	}
}

// DrawAxes draws the local X, Y and Z axes of transform in red, green and
// blue.
func (w *Wireframe) DrawAxes(transform math3d.Mat4, length float64) {
	origin := transform.Translation()
	w.DrawLine3D(origin, transform.MulVec3(math3d.V3(length, 0, 0)), ColorRed)
	w.DrawLine3D(origin, transform.MulVec3(math3d.V3(0, length, 0)), ColorGreen)
	w.DrawLine3D(origin, transform.MulVec3(math3d.V3(0, 0, length)), ColorBlue)
}
