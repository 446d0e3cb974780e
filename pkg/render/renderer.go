package render

import (
	"fmt"
	"log/slog"

	"github.com/taigrr/nibble/pkg/math3d"
)

// Mesh supplies canonical model-space triangles to a Renderer.
// This interface lets render draw meshes without importing the models package.
type Mesh interface {
	TriangleCount() int
	Triangle(i int) Triangle
}

// FrameStats counts what happened to each face during one frame.
type FrameStats struct {
	Tested   int // Faces considered
	Culled   int // Faces turned away from the camera
	Rejected int // Faces skipped because a vertex failed projection
	Drawn    int // Faces rasterized
}

// Renderer owns one frame and runs the full pipeline for every face of a
// mesh: rotate, translate, orient, cull, project, shade and fill.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	opts   Options
	camera *Camera
	fb     *Framebuffer
	wire   *Wireframe
	Stats  FrameStats // Statistics for the most recent frame
}

// NewRenderer validates opts and allocates the frame.
// With a positive BoundingRadius the model is checked against the camera:
// a violation is an error in strict mode and a warning otherwise.
func NewRenderer(opts Options) (*Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{
		opts:   opts,
		camera: opts.Camera(),
		fb:     NewFramebuffer(opts.Cols, opts.Rows),
	}
	r.wire = NewWireframe(r.camera, r.fb)
	if err := r.checkBounds(); err != nil {
		return nil, err
	}
	Logger().Info("renderer ready",
		slog.Int("cols", opts.Cols),
		slog.Int("rows", opts.Rows),
		slog.Float64("z_offset", opts.ZOffset),
		slog.Int("period", opts.Rotation.Period()),
	)
	return r, nil
}

func (r *Renderer) checkBounds() error {
	if r.opts.BoundingRadius <= 0 {
		return nil
	}
	err := r.camera.CheckBounds(r.opts.BoundingRadius, r.opts.ZOffset)
	if err == nil {
		return nil
	}
	if r.opts.Strict {
		return err
	}
	Logger().Warn("model may leave the frame", slog.Any("err", err))
	return nil
}

// Options returns the renderer's current options.
func (r *Renderer) Options() Options { return r.opts }

// Camera returns the renderer's camera.
func (r *Renderer) Camera() *Camera { return r.camera }

// Framebuffer returns the frame written by Render.
func (r *Renderer) Framebuffer() *Framebuffer { return r.fb }

// Wireframe returns a line drawer sharing the renderer's camera and frame.
func (r *Renderer) Wireframe() *Wireframe { return r.wire }

// SetZOffset moves the model along the camera axis.
func (r *Renderer) SetZOffset(offset float64) error {
	if offset <= 0 {
		return fmt.Errorf("render: z-offset %g must be positive", offset)
	}
	prev := r.opts.ZOffset
	r.opts.ZOffset = offset
	if err := r.checkBounds(); err != nil {
		r.opts.ZOffset = prev
		return err
	}
	return nil
}

// SetWireframe switches between filled faces and outlines.
func (r *Renderer) SetWireframe(on bool) { r.opts.Wireframe = on }

// Transform returns the model-to-camera matrix for step: the orbit rotation
// followed by the z-offset.
func (r *Renderer) Transform(step uint8) math3d.Mat4 {
	return math3d.Translate(math3d.V3(0, 0, r.opts.ZOffset)).Mul(r.opts.Rotation.Matrix(step))
}

// Render clears the frame and draws mesh at animation step.
// In lenient mode faces that fail projection are skipped and counted;
// in strict mode the first failure aborts the frame.
func (r *Renderer) Render(mesh Mesh, step uint8) (FrameStats, error) {
	r.fb.Clear()
	r.Stats = FrameStats{}
	log := Logger()

	for i := range mesh.TriangleCount() {
		r.Stats.Tested++
		o := mesh.Triangle(i).
			Rotate(r.opts.Rotation, step).
			Translate(r.opts.ZOffset).
			Orient()

		if !o.Visible() {
			r.Stats.Culled++
			log.Debug("face culled", slog.Int("face", i), slog.Float64("facing", o.Facing()))
			continue
		}

		t, err := r.camera.Project(o)
		if err != nil {
			if r.opts.Strict {
				return r.Stats, fmt.Errorf("render: face %d: %w", i, err)
			}
			r.Stats.Rejected++
			log.Debug("face rejected", slog.Int("face", i), slog.Any("err", err))
			continue
		}

		if r.opts.Wireframe {
			t.Outline(r.fb)
		} else {
			t.Fill(r.fb)
		}
		r.Stats.Drawn++
	}
	return r.Stats, nil
}
