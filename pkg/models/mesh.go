// Package models provides the meshes nibble renders: a canonical cube and
// triangle lists loaded from glTF.
package models

import (
	"github.com/taigrr/nibble/pkg/math3d"
	"github.com/taigrr/nibble/pkg/render"
)

// Mesh is an indexed triangle list in canonical model space.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle with vertex indices and a flat colour.
//
// Winding matters: a face is drawn when (v1-v0)×(v2-v0) points away from
// the camera, i.e. into the solid.
type Face struct {
	V      [3]int // Indices into Mesh.Vertices
	Colour render.Colour
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Radius returns the largest distance of any vertex from the model origin,
// which is the rotation centre.
func (m *Mesh) Radius() float64 {
	var r float64
	for _, v := range m.Vertices {
		r = max(r, v.Len())
	}
	return r
}

// Normalize moves the bounding-box centre to the origin and scales the mesh
// so that Radius() equals radius.
func (m *Mesh) Normalize(radius float64) {
	m.CalculateBounds()
	m.Transform(math3d.Translate(m.Center().Scale(-1)))
	if r := m.Radius(); r > 0 {
		m.Transform(math3d.ScaleUniform(radius / r))
	}
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(v)
	}
	m.CalculateBounds()
}

// Recolour assigns colours to faces in pairs, cycling red, green, blue.
// Quads split into two triangles keep a single colour.
func (m *Mesh) Recolour() {
	palette := [...]render.Colour{render.Red, render.Green, render.Blue}
	for i := range m.Faces {
		m.Faces[i].Colour = palette[(i/2)%len(palette)]
	}
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Triangle returns face i as a canonical render triangle.
// Implements render.Mesh.
func (m *Mesh) Triangle(i int) render.Triangle {
	f := m.Faces[i]
	return render.Triangle{
		V: [3]math3d.Vec3{
			m.Vertices[f.V[0]],
			m.Vertices[f.V[1]],
			m.Vertices[f.V[2]],
		},
		Colour: f.Colour,
	}
}
