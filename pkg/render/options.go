package render

import (
	"errors"
	"fmt"
)

// Options configures a Renderer.
type Options struct {
	Cols, Rows int // Frame size in pixels, both even

	Rotation Rotation
	ZOffset  float64 // Distance the model is pushed along +z

	FOV              float64
	Near             float64
	Thresholds       [2]float64
	NormalizeShading bool

	// BoundingRadius, when positive, is checked against the camera at
	// construction and whenever the z-offset changes.
	BoundingRadius float64

	Wireframe bool // Outline faces instead of filling them
	Strict    bool // Fail on the first bad face or bounds violation
}

// DefaultOptions returns the options used by the reference cube demo: a
// 56x56 frame with a unit cube 2.5 units in front of the camera.
func DefaultOptions() Options {
	return Options{
		Cols:           56,
		Rows:           56,
		Rotation:       DefaultRotation,
		ZOffset:        2.5,
		FOV:            1.0,
		Near:           1.0,
		Thresholds:     [2]float64{0.5, 0.8},
		BoundingRadius: 0.8660254037844386, // half-diagonal of the unit cube
	}
}

// Validate reports every invalid option.
func (o Options) Validate() error {
	var errs []error
	if o.Cols <= 0 || o.Rows <= 0 {
		errs = append(errs, fmt.Errorf("frame size %dx%d must be positive", o.Cols, o.Rows))
	} else if o.Cols%2 != 0 || o.Rows%2 != 0 {
		errs = append(errs, fmt.Errorf("frame size %dx%d must be even", o.Cols, o.Rows))
	}
	if o.ZOffset <= 0 {
		errs = append(errs, fmt.Errorf("z-offset %g must be positive", o.ZOffset))
	}
	if o.FOV <= 0 {
		errs = append(errs, fmt.Errorf("fov %g must be positive", o.FOV))
	}
	if o.Near < 0 {
		errs = append(errs, fmt.Errorf("near plane %g must not be negative", o.Near))
	}
	if o.Thresholds[0] < 0 || o.Thresholds[0] > o.Thresholds[1] {
		errs = append(errs, fmt.Errorf("shade thresholds %v must be non-negative and increasing", o.Thresholds))
	}
	if o.BoundingRadius < 0 {
		errs = append(errs, fmt.Errorf("bounding radius %g must not be negative", o.BoundingRadius))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("render: invalid options: %w", err)
	}
	return nil
}

// Camera builds the camera described by o.
func (o Options) Camera() *Camera {
	c := NewCamera(o.Cols, o.Rows)
	c.FOV = o.FOV
	c.Near = o.Near
	c.Thresholds = o.Thresholds
	c.NormalizeShading = o.NormalizeShading
	return c
}
