package models

import (
	"math"
	"testing"

	"github.com/taigrr/nibble/pkg/math3d"
	"github.com/taigrr/nibble/pkg/render"
)

func TestCubeGeometry(t *testing.T) {
	c := UnitCube()
	if c.TriangleCount() != 12 || c.VertexCount() != 8 {
		t.Fatalf("got %d faces, %d vertices", c.TriangleCount(), c.VertexCount())
	}
	if c.BoundsMin != math3d.V3(-0.5, -0.5, -0.5) || c.BoundsMax != math3d.V3(0.5, 0.5, 0.5) {
		t.Errorf("bounds %+v..%+v", c.BoundsMin, c.BoundsMax)
	}
	if r := c.Radius(); math.Abs(r-DefaultRadius) > 1e-12 {
		t.Errorf("Radius = %v, want %v", r, DefaultRadius)
	}
}

func TestCubeNormalsPointInward(t *testing.T) {
	c := Cube(1)
	for i := range c.TriangleCount() {
		tri := c.Triangle(i)
		n := tri.V[1].Sub(tri.V[0]).Cross(tri.V[2].Sub(tri.V[0]))
		centroid := tri.V[0].Add(tri.V[1]).Add(tri.V[2]).Scale(1.0 / 3)
		if n.Dot(centroid) >= 0 {
			t.Errorf("face %d normal %+v points outward", i, n)
		}
		if n.Len() != 4 {
			t.Errorf("face %d normal length %v, want 4", i, n.Len())
		}
	}
}

func TestCubeColours(t *testing.T) {
	counts := map[render.Colour]int{}
	for _, f := range UnitCube().Faces {
		counts[f.Colour]++
	}
	for _, col := range []render.Colour{render.Red, render.Green, render.Blue} {
		if counts[col] != 4 {
			t.Errorf("%v faces = %d, want 4", col, counts[col])
		}
	}
}

func TestCubeFrontFaceCull(t *testing.T) {
	// Only the two triangles nearest the camera survive culling when the
	// cube is pushed straight down +z.
	c := UnitCube()
	visible := 0
	for i := range c.TriangleCount() {
		tri := c.Triangle(i)
		o := render.Rotated{V: tri.V, Colour: tri.Colour}.Translate(2.5).Orient()
		if o.Visible() {
			visible++
			if tri.Colour != render.Red {
				t.Errorf("face %d (%v) visible, want a -z face", i, tri.Colour)
			}
		}
	}
	if visible != 2 {
		t.Errorf("%d faces visible, want 2", visible)
	}
}

func TestMeshNormalize(t *testing.T) {
	m := NewMesh("offset")
	m.Vertices = []math3d.Vec3{{X: 10, Y: 10, Z: 10}, {X: 12, Y: 10, Z: 10}, {X: 10, Y: 14, Z: 10}}
	m.Faces = []Face{{V: [3]int{0, 1, 2}}}
	m.Normalize(2)

	if r := m.Radius(); math.Abs(r-2) > 1e-9 {
		t.Errorf("Radius = %v, want 2", r)
	}
	if c := m.Center(); !c.ApproxEqual(math3d.Zero3(), 1e-9) {
		t.Errorf("Center = %+v", c)
	}
	if s := m.Size(); math.Abs(s.Y/s.X-2) > 1e-9 {
		t.Errorf("aspect not preserved: %+v", s)
	}
}

func TestMeshCloneIsDeep(t *testing.T) {
	a := UnitCube()
	b := a.Clone()
	b.Vertices[0] = math3d.V3(9, 9, 9)
	b.Faces[0].Colour = render.Off
	if a.Vertices[0] == b.Vertices[0] || a.Faces[0].Colour == render.Off {
		t.Error("Clone shares storage with the original")
	}
}

func TestRecolour(t *testing.T) {
	m := UnitCube()
	m.Recolour()
	want := []render.Colour{render.Red, render.Red, render.Green, render.Green, render.Blue, render.Blue, render.Red}
	for i, w := range want {
		if m.Faces[i].Colour != w {
			t.Errorf("face %d = %v, want %v", i, m.Faces[i].Colour, w)
		}
	}
}

func TestEmptyMeshBounds(t *testing.T) {
	m := NewMesh("empty")
	m.CalculateBounds()
	if m.Radius() != 0 || m.Center() != math3d.Zero3() {
		t.Errorf("empty mesh radius %v centre %+v", m.Radius(), m.Center())
	}
}
