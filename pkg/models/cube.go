package models

import (
	"github.com/taigrr/nibble/pkg/math3d"
	"github.com/taigrr/nibble/pkg/render"
)

// cubeFaces indexes the corners of a cube, where bit 0 of the corner
// index selects +x, bit 1 +y and bit 2 +z. Every triangle is wound so its
// normal points into the cube.
var cubeFaces = [12]Face{
	{V: [3]int{0, 1, 2}, Colour: render.Red}, // -z
	{V: [3]int{1, 3, 2}, Colour: render.Red},
	{V: [3]int{4, 6, 5}, Colour: render.Red}, // +z
	{V: [3]int{5, 6, 7}, Colour: render.Red},
	{V: [3]int{0, 2, 4}, Colour: render.Green}, // -x
	{V: [3]int{2, 6, 4}, Colour: render.Green},
	{V: [3]int{1, 5, 3}, Colour: render.Green}, // +x
	{V: [3]int{3, 5, 7}, Colour: render.Green},
	{V: [3]int{0, 4, 1}, Colour: render.Blue}, // -y
	{V: [3]int{1, 4, 5}, Colour: render.Blue},
	{V: [3]int{2, 3, 6}, Colour: render.Blue}, // +y
	{V: [3]int{3, 7, 6}, Colour: render.Blue},
}

// Cube returns an axis-aligned cube centred on the origin with the given
// half side length. Opposite faces share a colour.
func Cube(half float64) *Mesh {
	m := NewMesh("cube")
	for i := range 8 {
		v := math3d.V3(-half, -half, -half)
		if i&1 != 0 {
			v.X = half
		}
		if i&2 != 0 {
			v.Y = half
		}
		if i&4 != 0 {
			v.Z = half
		}
		m.Vertices = append(m.Vertices, v)
	}
	m.Faces = append(m.Faces, cubeFaces[:]...)
	m.CalculateBounds()
	return m
}

// UnitCube returns the cube with side length 1.
func UnitCube() *Mesh {
	return Cube(0.5)
}
