// Package motion animates the viewer: spring-damped spin impulses and eased
// zoom.
package motion

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/scanline/pkg/math3d"
)

// axis is an extra angular velocity that a critically damped spring pulls
// back to zero.
type axis struct {
	velocity float64
	accel    float64 // spring velocity of velocity
}

// Spinner produces the per-frame rotation of the mesh: a constant base spin
// plus impulses that die out smoothly.
type Spinner struct {
	Base math3d.Vec3

	spring  harmonica.Spring
	x, y, z axis
}

// NewSpinner creates a spinner stepped fps times per second.
func NewSpinner(fps int, base math3d.Vec3) *Spinner {
	return &Spinner{
		Base: base,
		// Frequency 4 settles in about a second; damping 1 never overshoots
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Impulse adds angular velocity in radians per frame.
func (s *Spinner) Impulse(v math3d.Vec3) {
	s.x.velocity += v.X
	s.y.velocity += v.Y
	s.z.velocity += v.Z
}

// Velocity returns the rotation to apply this frame.
func (s *Spinner) Velocity() math3d.Vec3 {
	return s.Base.Add(math3d.V3(s.x.velocity, s.y.velocity, s.z.velocity))
}

// Update returns the rotation for this frame, then decays the impulses by
// one step.
func (s *Spinner) Update() math3d.Vec3 {
	v := s.Velocity()
	for _, a := range []*axis{&s.x, &s.y, &s.z} {
		a.velocity, a.accel = s.spring.Update(a.velocity, a.accel, 0)
	}
	return v
}

// Reset drops all impulses.
func (s *Spinner) Reset() {
	s.x, s.y, s.z = axis{}, axis{}, axis{}
}
