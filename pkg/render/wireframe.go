package render

import (
	"github.com/taigrr/nibble/pkg/math3d"
)

// Wireframe draws camera-space line segments into a frame.
type Wireframe struct {
	camera *Camera
	dst    Target
}

// NewWireframe creates a new wireframe drawer.
func NewWireframe(camera *Camera, dst Target) *Wireframe {
	return &Wireframe{
		camera: camera,
		dst:    dst,
	}
}

// DrawLine3D projects both endpoints and draws the segment between them.
// Segments with an endpoint that fails projection are not drawn.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, p Pixel) error {
	a, err := w.camera.ProjectPoint(p1)
	if err != nil {
		return err
	}
	b, err := w.camera.ProjectPoint(p2)
	if err != nil {
		return err
	}
	DrawLine(w.dst, a, b, p)
	return nil
}

// DrawAxes draws the model-space axes through transform: x red, y green and
// z blue. Axes that leave the frame are skipped.
func (w *Wireframe) DrawAxes(transform math3d.Mat4, length float64, i Intensity) int {
	origin := transform.MulVec3(math3d.Zero3())
	axes := [...]struct {
		dir    math3d.Vec3
		colour Colour
	}{
		{math3d.V3(length, 0, 0), Red},
		{math3d.V3(0, length, 0), Green},
		{math3d.V3(0, 0, length), Blue},
	}

	drawn := 0
	for _, a := range axes {
		tip := transform.MulVec3(a.dir)
		if w.DrawLine3D(origin, tip, MakePixel(a.colour, i)) == nil {
			drawn++
		}
	}
	return drawn
}
