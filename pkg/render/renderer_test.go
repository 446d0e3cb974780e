package render_test

import (
	"errors"
	"testing"

	"github.com/taigrr/nibble/pkg/math3d"
	"github.com/taigrr/nibble/pkg/models"
	"github.com/taigrr/nibble/pkg/render"
)

func newRenderer(t *testing.T, mod func(*render.Options)) *render.Renderer {
	t.Helper()
	opts := render.DefaultOptions()
	if mod != nil {
		mod(&opts)
	}
	r, err := render.NewRenderer(opts)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func litPixels(fb *render.Framebuffer) map[render.Point]render.Pixel {
	lit := map[render.Point]render.Pixel{}
	fb.Scan(func(x, y int, p render.Pixel) bool {
		if p.Lit() {
			lit[render.Pt(x, y)] = p
		}
		return true
	})
	return lit
}

func TestRenderCubeFrontOn(t *testing.T) {
	r := newRenderer(t, nil)
	stats, err := r.Render(models.UnitCube(), 0)
	if err != nil {
		t.Fatal(err)
	}
	want := render.FrameStats{Tested: 12, Culled: 10, Rejected: 0, Drawn: 2}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if r.Stats != stats {
		t.Errorf("Stats field %+v differs from returned %+v", r.Stats, stats)
	}

	lit := litPixels(r.Framebuffer())
	if len(lit) != 29*29 {
		t.Errorf("%d lit pixels, want %d", len(lit), 29*29)
	}
	for p, px := range lit {
		if p.X < 14 || p.X > 42 || p.Y < 14 || p.Y > 42 {
			t.Errorf("pixel %v outside the front face", p)
		}
		if px != render.MakePixel(render.Red, 3) {
			t.Errorf("pixel %v = %v, want red/3", p, px)
		}
	}
}

func TestRenderCubeSpinning(t *testing.T) {
	tests := []struct {
		step  uint8
		stats render.FrameStats
		lit   int
	}{
		{10, render.FrameStats{Tested: 12, Culled: 8, Drawn: 4}, 806},
		{37, render.FrameStats{Tested: 12, Culled: 6, Drawn: 6}, 940},
		{100, render.FrameStats{Tested: 12, Culled: 6, Drawn: 6}, 924},
		{200, render.FrameStats{Tested: 12, Culled: 6, Drawn: 6}, 798},
	}
	r := newRenderer(t, nil)
	cube := models.UnitCube()
	for _, tt := range tests {
		stats, err := r.Render(cube, tt.step)
		if err != nil {
			t.Fatalf("step %d: %v", tt.step, err)
		}
		if stats != tt.stats {
			t.Errorf("step %d: stats = %+v, want %+v", tt.step, stats, tt.stats)
		}
		if n := len(litPixels(r.Framebuffer())); n != tt.lit {
			t.Errorf("step %d: %d lit pixels, want %d", tt.step, n, tt.lit)
		}
	}
}

func TestRenderClearsAndRepeats(t *testing.T) {
	r := newRenderer(t, nil)
	cube := models.UnitCube()
	if _, err := r.Render(cube, 37); err != nil {
		t.Fatal(err)
	}
	first := append([]byte(nil), r.Framebuffer().Bytes()...)

	if _, err := r.Render(cube, 200); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Render(cube, 37); err != nil {
		t.Fatal(err)
	}
	if string(first) != string(r.Framebuffer().Bytes()) {
		t.Error("re-rendering the same step produced a different frame")
	}

	// One full period later the frame is identical.
	period := r.Options().Rotation.Period()
	if _, err := r.Render(cube, uint8(37+period)); err != nil {
		t.Fatal(err)
	}
	if string(first) != string(r.Framebuffer().Bytes()) {
		t.Error("frame differs one period later")
	}
}

func TestRenderWireframe(t *testing.T) {
	r := newRenderer(t, func(o *render.Options) { o.Wireframe = true })
	stats, err := r.Render(models.UnitCube(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Drawn != 2 {
		t.Fatalf("stats = %+v", stats)
	}

	// Square outline plus the shared diagonal.
	lit := litPixels(r.Framebuffer())
	if len(lit) != 139 {
		t.Errorf("%d lit pixels, want 139", len(lit))
	}
	for _, p := range []render.Point{{14, 14}, {42, 14}, {14, 42}, {42, 42}, {28, 28}, {14, 20}} {
		if _, ok := lit[p]; !ok {
			t.Errorf("edge pixel %v not drawn", p)
		}
	}
	if _, ok := lit[render.Pt(20, 20)]; ok {
		t.Error("interior pixel drawn in wireframe mode")
	}
}

// bigTriangle faces the camera but is far wider than the frame.
func bigTriangle() *models.Mesh {
	m := models.NewMesh("big")
	m.Vertices = []math3d.Vec3{{X: -3, Y: -3}, {X: 3, Y: -3}, {X: -3, Y: 3}}
	m.Faces = []models.Face{{V: [3]int{0, 1, 2}, Colour: render.Green}}
	m.CalculateBounds()
	return m
}

func TestRenderRejectsOutOfFrame(t *testing.T) {
	r := newRenderer(t, nil)
	stats, err := r.Render(bigTriangle(), 0)
	if err != nil {
		t.Fatalf("lenient render failed: %v", err)
	}
	if want := (render.FrameStats{Tested: 1, Rejected: 1}); stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if n := len(litPixels(r.Framebuffer())); n != 0 {
		t.Errorf("%d pixels drawn for a rejected face", n)
	}

	strict := newRenderer(t, func(o *render.Options) { o.Strict = true })
	_, err = strict.Render(bigTriangle(), 0)
	if !errors.Is(err, render.ErrOutOfFrame) {
		t.Errorf("strict render err = %v, want ErrOutOfFrame", err)
	}
}

func TestNewRendererBounds(t *testing.T) {
	// Too close: tolerated with a warning unless strict.
	r := newRenderer(t, func(o *render.Options) { o.ZOffset = 1.9 })
	stats, err := r.Render(models.UnitCube(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := (render.FrameStats{Tested: 12, Culled: 10, Drawn: 2}); stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	opts := render.DefaultOptions()
	opts.ZOffset = 1.9
	opts.Strict = true
	if _, err := render.NewRenderer(opts); !errors.Is(err, render.ErrOutOfFrame) {
		t.Errorf("strict NewRenderer err = %v, want ErrOutOfFrame", err)
	}

	opts.ZOffset = 0.5
	if _, err := render.NewRenderer(opts); !errors.Is(err, render.ErrBehindCamera) {
		t.Errorf("strict NewRenderer err = %v, want ErrBehindCamera", err)
	}

	opts = render.DefaultOptions()
	opts.Cols = 7
	if _, err := render.NewRenderer(opts); err == nil {
		t.Error("NewRenderer accepted an odd frame width")
	}
}

func TestSetZOffset(t *testing.T) {
	r := newRenderer(t, func(o *render.Options) { o.Strict = true })
	if err := r.SetZOffset(4); err != nil {
		t.Fatal(err)
	}
	if got := r.Options().ZOffset; got != 4 {
		t.Errorf("ZOffset = %v, want 4", got)
	}

	if err := r.SetZOffset(1.2); !errors.Is(err, render.ErrBehindCamera) {
		t.Errorf("err = %v, want ErrBehindCamera", err)
	}
	if got := r.Options().ZOffset; got != 4 {
		t.Errorf("failed SetZOffset changed ZOffset to %v", got)
	}
	if err := r.SetZOffset(-1); err == nil {
		t.Error("negative offset accepted")
	}
}

func TestTransformMatchesPipeline(t *testing.T) {
	r := newRenderer(t, nil)
	cube := models.UnitCube()
	for _, step := range []uint8{0, 9, 130} {
		m := r.Transform(step)
		for i := range cube.TriangleCount() {
			tri := cube.Triangle(i)
			staged := tri.Rotate(r.Options().Rotation, step).Translate(r.Options().ZOffset)
			for k, v := range tri.V {
				if got := m.MulVec3(v); !got.ApproxEqual(staged.V[k], 1e-12) {
					t.Fatalf("step %d face %d vertex %d: %+v != %+v", step, i, k, got, staged.V[k])
				}
			}
		}
	}
}

func TestWireframeAxes(t *testing.T) {
	r := newRenderer(t, nil)
	fb := r.Framebuffer()
	fb.Clear()

	drawn := r.Wireframe().DrawAxes(r.Transform(0), 0.5, 2)
	if drawn != 3 {
		t.Fatalf("drew %d axes, want 3", drawn)
	}
	centre := fb.Pixel(28, 28)
	if !centre.Lit() || centre.Intensity() != 2 {
		t.Errorf("origin pixel = %v", centre)
	}
	// The x axis runs right from the centre in red.
	if p := fb.Pixel(35, 28); p.Colour() != render.Red {
		t.Errorf("x axis pixel = %v, want red", p)
	}

	err := r.Wireframe().DrawLine3D(math3d.V3(0, 0, 2), math3d.V3(0, 0, -1), render.MakePixel(render.Blue, 1))
	if !errors.Is(err, render.ErrBehindCamera) {
		t.Errorf("DrawLine3D err = %v, want ErrBehindCamera", err)
	}
}

func BenchmarkRenderCube(b *testing.B) {
	r, err := render.NewRenderer(render.DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}
	cube := models.UnitCube()
	var step uint8
	for b.Loop() {
		if _, err := r.Render(cube, step); err != nil {
			b.Fatal(err)
		}
		step++
	}
}
