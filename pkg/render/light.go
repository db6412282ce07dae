package render

import (
	"image/color"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Light is a directional light. Direction points from the light into the
// scene.
type Light struct {
	Direction math3d.Vec3
}

// DefaultLight shines straight into the screen along +Z.
func DefaultLight() Light {
	return Light{Direction: math3d.Forward()}
}

// Intensity returns how strongly a face with the given unit normal is lit,
// in [0, 1]. Faces turned toward the light get the most.
func (l Light) Intensity(normal math3d.Vec3) float64 {
	return clamp01(-normal.Dot(l.Direction.Normalize()))
}

// ApplyIntensity scales the RGB channels of c by factor, clamped to [0, 1].
// Alpha is kept.
func ApplyIntensity(c color.RGBA, factor float64) color.RGBA {
	factor = clamp01(factor)
	scale := func(v uint8) uint8 { return uint8(float64(v) * factor) }
	return RGBA(scale(c.R), scale(c.G), scale(c.B), c.A)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
