package main

import (
	"github.com/charmbracelet/harmonica"
)

// Zoom eases the model's z-offset towards a target with a critically damped
// spring. The target is kept inside [Min, Max].
type Zoom struct {
	Min, Max float64

	pos, vel float64
	target   float64
	spring   harmonica.Spring
}

// NewZoom creates a zoom resting at offset, clamped to [lo, hi].
func NewZoom(fps int, offset, lo, hi float64) *Zoom {
	z := &Zoom{
		Min:    lo,
		Max:    hi,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
	z.target = z.clamp(offset)
	z.pos = z.target
	return z
}

func (z *Zoom) clamp(v float64) float64 {
	return min(max(v, z.Min), z.Max)
}

// Nudge moves the target by delta.
func (z *Zoom) Nudge(delta float64) {
	z.target = z.clamp(z.target + delta)
}

// Set jumps the target to offset.
func (z *Zoom) Set(offset float64) {
	z.target = z.clamp(offset)
}

// Target returns where the zoom is heading.
func (z *Zoom) Target() float64 { return z.target }

// Update advances the spring one frame and returns the new offset.
// The offset never drops below Min, even while the spring overshoots.
func (z *Zoom) Update() float64 {
	z.pos, z.vel = z.spring.Update(z.pos, z.vel, z.target)
	if z.pos < z.Min {
		z.pos, z.vel = z.Min, 0
	}
	return z.pos
}
