package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Camera is an immutable viewpoint. Copies are cheap; a frame captures one
// value and never observes later changes.
type Camera struct {
	// Position in world space
	Position math3d.Vec3
	// Target is the point the camera looks at.
	Target math3d.Vec3
	Up     math3d.Vec3

	// Projection parameters
	FOV  float64 // Vertical field of view in radians
	Near float64 // Near clipping plane
	Far  float64 // Far clipping plane
}

// DefaultCamera sits at the origin looking down +Z.
func DefaultCamera() Camera {
	return Camera{
		Position: math3d.Zero3(),
		Target:   math3d.Forward(),
		Up:       math3d.Up(),
		FOV:      math.Pi / 3, // 60 degrees
		Near:     0.1,
		Far:      100,
	}
}

// Forward returns the unit view direction.
func (c Camera) Forward() math3d.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// ViewMatrix returns the left-handed view matrix. Camera space has +Z
// pointing away from the viewer. When Up is zero or parallel to the view
// direction another world axis stands in for it.
func (c Camera) ViewMatrix() math3d.Mat4 {
	const eps = 1e-12
	f := c.Forward()
	up := c.Up
	if up.Cross(f).LenSq() < eps {
		up = math3d.Up()
	}
	if up.Cross(f).LenSq() < eps {
		up = math3d.Forward()
	}
	return math3d.LookAt(c.Position, c.Target, up)
}

// ProjectionMatrix returns the perspective matrix for the given aspect
// ratio (width / height).
func (c Camera) ProjectionMatrix(aspect float64) math3d.Mat4 {
	return math3d.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c Camera) ViewProjectionMatrix(aspect float64) math3d.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// Frustum returns the view frustum for the given aspect ratio.
func (c Camera) Frustum(aspect float64) Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix(aspect))
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible), where depth is the view-space Z.
func (c Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	aspect := float64(screenWidth) / float64(screenHeight)
	view := c.ViewMatrix().MulVec3(worldPos)

	// Check if behind the near plane
	if view.Z < c.Near {
		return 0, 0, 0, false
	}

	ndc := c.ProjectionMatrix(aspect).Project(math3d.V4FromV3(view, 1))
	x, y = NDCToScreen(ndc.X, ndc.Y, screenWidth, screenHeight)
	return x, y, ndc.W, true
}

// NDCToScreen maps normalized device coordinates to pixels with the origin
// at the top left. Y is flipped.
func NDCToScreen(nx, ny float64, width, height int) (x, y float64) {
	hw, hh := float64(width)/2, float64(height)/2
	return nx*hw + hw, -ny*hh + hh
}
