package motion

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Zoom eases the model distance between steps.
type Zoom struct {
	Min, Max float64
	// Step is the distance change of one In or Out.
	Step float64
	// Duration of one step in seconds.
	Duration float32

	current float64
	target  float64
	tween   *gween.Tween
}

// NewZoom starts at distance with a 1..20 range and half-unit steps.
func NewZoom(distance float64) *Zoom {
	return &Zoom{
		Min:      1,
		Max:      20,
		Step:     0.5,
		Duration: 0.25,
		current:  distance,
		target:   distance,
	}
}

// In moves the model one step closer.
func (z *Zoom) In() { z.SetTarget(z.target - z.Step) }

// Out moves the model one step away.
func (z *Zoom) Out() { z.SetTarget(z.target + z.Step) }

// SetTarget starts easing from the current distance to d, clamped to
// [Min, Max].
func (z *Zoom) SetTarget(d float64) {
	z.target = min(max(d, z.Min), z.Max)
	if z.target == z.current {
		z.tween = nil
		return
	}
	z.tween = gween.New(float32(z.current), float32(z.target), z.Duration, ease.OutCubic)
}

// Update advances the tween by dt seconds and returns the distance.
func (z *Zoom) Update(dt float64) float64 {
	if z.tween == nil {
		return z.current
	}
	v, done := z.tween.Update(float32(dt))
	z.current = float64(v)
	if done {
		z.current = z.target
		z.tween = nil
	}
	return z.current
}

// Distance returns the current distance.
func (z *Zoom) Distance() float64 { return z.current }

// Target returns the distance being eased towards.
func (z *Zoom) Target() float64 { return z.target }
