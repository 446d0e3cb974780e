package render

import (
	"github.com/taigrr/nibble/pkg/math3d"
)

// Rotation advances elevation (θ) and azimuth (φ) by fixed table steps per
// animation tick. Angle indices are rate·step reduced modulo 256.
type Rotation struct {
	ThetaRate uint8
	PhiRate   uint8
}

// DefaultRotation spins the azimuth twice as fast as the elevation.
var DefaultRotation = Rotation{ThetaRate: 1, PhiRate: 2}

// Angles returns the θ and φ table indices for step.
func (r Rotation) Angles(step uint8) (theta, phi uint8) {
	return r.ThetaRate * step, r.PhiRate * step
}

// Matrix returns the composite rotation for step.
func (r Rotation) Matrix(step uint8) math3d.Mat4 {
	theta, phi := r.Angles(step)
	return math3d.Orbit(
		math3d.SinF(theta), math3d.CosF(theta),
		math3d.SinF(phi), math3d.CosF(phi),
	)
}

// Period returns the number of ticks after which both angles repeat.
func (r Rotation) Period() int {
	return lcm(axisPeriod(r.ThetaRate), axisPeriod(r.PhiRate))
}

func axisPeriod(rate uint8) int {
	if rate == 0 {
		return 1
	}
	return math3d.TableSize / gcd(int(rate), math3d.TableSize)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
