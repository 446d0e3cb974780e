package render

import (
	"github.com/taigrr/nibble/pkg/math3d"
)

// Triangle is a model-space triangle in canonical (unrotated) coordinates.
// Each pipeline stage returns a new value; the canonical triangle is never
// modified, so the same mesh can be re-rotated from scratch every frame.
//
//	Triangle → Rotate → Rotated → Translate → Translated → Orient → Oriented → Camera.Project → Triangle2D
type Triangle struct {
	V      [3]math3d.Vec3
	Colour Colour
}

// Rotated is a triangle after the orbit rotation.
type Rotated struct {
	V      [3]math3d.Vec3
	Colour Colour
}

// Translated is a rotated triangle pushed along +z into camera space.
type Translated struct {
	V      [3]math3d.Vec3
	Colour Colour
}

// Oriented is a camera-space triangle with its surface normal. The normal
// is not normalized; its magnitude scales the face area.
type Oriented struct {
	V      [3]math3d.Vec3
	Normal math3d.Vec3
	Colour Colour
}

// Rotate applies r at step to every vertex.
func (t Triangle) Rotate(r Rotation, step uint8) Rotated {
	return t.Transform(r.Matrix(step))
}

// Transform applies the rotation part of m to every vertex.
func (t Triangle) Transform(m math3d.Mat4) Rotated {
	out := Rotated{Colour: t.Colour}
	for i, v := range t.V {
		out.V[i] = m.MulVec3Dir(v)
	}
	return out
}

// Translate adds offset to every z coordinate. The offset must be large
// enough that every vertex ends up in front of the camera; Camera.CheckBounds
// verifies this for a whole model.
func (r Rotated) Translate(offset float64) Translated {
	m := math3d.Translate(math3d.V3(0, 0, offset))
	out := Translated{Colour: r.Colour}
	for i, v := range r.V {
		out.V[i] = m.MulVec3(v)
	}
	return out
}

// Orient computes the face normal (v1-v0) × (v2-v0).
func (t Translated) Orient() Oriented {
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	return Oriented{
		V:      t.V,
		Normal: e1.Cross(e2),
		Colour: t.Colour,
	}
}

// Facing returns normal · v0. The camera sits at the origin, so a positive
// value means the face is turned towards it.
func (o Oriented) Facing() float64 {
	return o.Normal.Dot(o.V[0])
}

// Visible reports whether the face survives back-face culling.
func (o Oriented) Visible() bool {
	return o.Facing() > 0
}
