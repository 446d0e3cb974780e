package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/nibble/pkg/math3d"
)

var (
	// ErrBehindCamera is returned when a vertex would be projected from z <= 0.
	ErrBehindCamera = errors.New("render: vertex at or behind camera")
	// ErrOutOfFrame is returned when a vertex projects outside the frame.
	ErrOutOfFrame = errors.New("render: vertex projects outside frame")
)

// Camera is a fixed pinhole camera at the origin looking down +z.
type Camera struct {
	Cols, Rows int

	// Projection parameters
	Aspect float64 // Horizontal scale, normally Rows/Cols
	FOV    float64 // Field-of-view scale applied to both axes
	Near   float64 // Closest z a model may reach, used by CheckBounds

	// Shading parameters
	Thresholds       [2]float64 // Shade level boundaries, increasing
	NormalizeShading bool       // Divide by |normal| before thresholding
}

// NewCamera creates a camera for a cols×rows frame with default settings.
func NewCamera(cols, rows int) *Camera {
	return &Camera{
		Cols:       cols,
		Rows:       rows,
		Aspect:     float64(rows) / float64(cols),
		FOV:        1.0,
		Near:       1.0,
		Thresholds: [2]float64{0.5, 0.8},
	}
}

// ProjectPoint maps a camera-space point to pixel coordinates, rounding to
// the nearest pixel. Points at z <= 0 and points landing outside the frame
// are reported as errors instead of being clamped.
func (c *Camera) ProjectPoint(v math3d.Vec3) (Point, error) {
	if v.Z <= 0 {
		return Point{}, fmt.Errorf("%w: z=%.4g", ErrBehindCamera, v.Z)
	}
	sx := c.Aspect * c.FOV * v.X / v.Z
	sy := c.FOV * v.Y / v.Z

	p := Pt(
		int(math.Round(sx*float64(c.Cols)+float64(c.Cols/2))),
		int(math.Round(sy*float64(c.Rows)+float64(c.Rows/2))),
	)
	if p.X < 0 || p.X >= c.Cols || p.Y < 0 || p.Y >= c.Rows {
		return p, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfFrame, p.X, p.Y, c.Cols, c.Rows)
	}
	return p, nil
}

// Project maps every vertex of o to screen space and shades the face.
func (c *Camera) Project(o Oriented) (Triangle2D, error) {
	t := Triangle2D{Colour: o.Colour, Intensity: c.Shade(o.Normal)}
	for i, v := range o.V {
		p, err := c.ProjectPoint(v)
		if err != nil {
			return Triangle2D{}, fmt.Errorf("vertex %d: %w", i, err)
		}
		t.P[i] = p
	}
	return t, nil
}

// Shade converts a face normal to an intensity level in 1..3 from |normal.z|
// measured against the thresholds. Unless NormalizeShading is set the normal
// keeps its magnitude, so larger faces shade brighter.
func (c *Camera) Shade(normal math3d.Vec3) Intensity {
	v := math.Abs(normal.Z)
	if c.NormalizeShading {
		if l := normal.Len(); l > 0 {
			v /= l
		}
	}
	switch {
	case v < c.Thresholds[0]:
		return 1
	case v < c.Thresholds[1]:
		return 2
	default:
		return MaxIntensity
	}
}

// CheckBounds reports whether every point within radius of the model origin,
// pushed to z=offset, stays in front of the near plane and projects inside
// the frame under any rotation.
func (c *Camera) CheckBounds(radius, offset float64) error {
	if radius < 0 {
		return fmt.Errorf("render: negative bounding radius %g", radius)
	}
	if offset-radius <= 0 {
		return fmt.Errorf("%w: radius %g at offset %g reaches z=%g", ErrBehindCamera, radius, offset, offset-radius)
	}
	if offset-radius < c.Near {
		return fmt.Errorf("%w: radius %g at offset %g crosses near plane %g", ErrBehindCamera, radius, offset, c.Near)
	}

	// Widest view-ray slope to a sphere tangent: r / sqrt(d² - r²).
	slope := radius / math.Sqrt(offset*offset-radius*radius)
	for _, v := range []math3d.Vec3{
		math3d.V3(slope, 0, 1), math3d.V3(-slope, 0, 1),
		math3d.V3(0, slope, 1), math3d.V3(0, -slope, 1),
	} {
		if _, err := c.ProjectPoint(v); err != nil {
			return fmt.Errorf("radius %g at offset %g: %w", radius, offset, err)
		}
	}
	return nil
}

// MinOffset returns the smallest z-offset, to within 1e-6, for which a model
// of the given radius passes CheckBounds. It returns an error if no offset
// up to far qualifies.
func (c *Camera) MinOffset(radius, far float64) (float64, error) {
	if err := c.CheckBounds(radius, far); err != nil {
		return 0, err
	}
	lo, hi := radius, far
	for hi-lo > 1e-6 {
		mid := (lo + hi) / 2
		if c.CheckBounds(radius, mid) == nil {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi, nil
}
