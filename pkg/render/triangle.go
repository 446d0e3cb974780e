package render

import "math"

// Triangle2D is a projected, shaded triangle in integer screen space.
type Triangle2D struct {
	P         [3]Point
	Colour    Colour
	Intensity Intensity
}

// Pixel returns the flat-shaded cell every pixel of t is written with.
func (t Triangle2D) Pixel() Pixel {
	return MakePixel(t.Colour, t.Intensity)
}

// Fill rasterizes t into dst.
func (t Triangle2D) Fill(dst Target) {
	FillTriangle(dst, t.P[0], t.P[1], t.P[2], t.Pixel())
}

// Outline draws the three edges of t into dst.
func (t Triangle2D) Outline(dst Target) {
	p := t.Pixel()
	DrawLine(dst, t.P[0], t.P[1], p)
	DrawLine(dst, t.P[1], t.P[2], p)
	DrawLine(dst, t.P[2], t.P[0], p)
}

// FillTriangle scan-converts the triangle (v0, v1, v2) into dst.
//
// A triangle with a horizontal edge is filled directly. Any other triangle is
// split at the row of its middle vertex: the upper part (in ascending y) is
// filled through that row and the lower part starts one row later, so no
// pixel on the split row is written twice.
func FillTriangle(dst Target, v0, v1, v2 Point, p Pixel) {
	// Three-element sorting network on y.
	if v0.Y > v2.Y {
		v0, v2 = v2, v0
	}
	if v0.Y > v1.Y {
		v0, v1 = v1, v0
	}
	if v1.Y > v2.Y {
		v1, v2 = v2, v1
	}

	switch {
	case v0.Y == v2.Y:
		lo := min(v0.X, v1.X, v2.X)
		hi := max(v0.X, v1.X, v2.X)
		HLine(dst, lo, hi, v0.Y, p)
	case v1.Y == v2.Y:
		fillFlatBottom(dst, v0, v1, v2, p)
	case v0.Y == v1.Y:
		fillFlatTop(dst, v0, v1, v2, p)
	default:
		q := splitPoint(v0, v1, v2)
		fillFlatBottom(dst, v0, v1, q, p)
		fillFlatTop(dst, Pt(q.X, v1.Y+1), Pt(v1.X, v1.Y+1), v2, p)
	}
}

// splitPoint returns the point on edge v0-v2 at the row of v1, with x
// rounded to nearest. v0.Y < v1.Y < v2.Y.
func splitPoint(v0, v1, v2 Point) Point {
	t := float64(v1.Y-v0.Y) / float64(v2.Y-v0.Y)
	x := float64(v0.X) + float64(v2.X-v0.X)*t
	return Pt(int(math.Round(x)), v1.Y)
}

// fillFlatBottom fills from apex a down to the flat edge b-c (b.Y == c.Y).
func fillFlatBottom(dst Target, a, b, c Point, p Pixel) {
	if b.X > c.X {
		b, c = c, b
	}
	fillBetween(dst, newEdgeStepper(a, b), newEdgeStepper(a, c), a.Y, b.Y, p)
}

// fillFlatTop fills from the flat edge a-b (a.Y == b.Y) to apex c.
func fillFlatTop(dst Target, a, b, c Point, p Pixel) {
	if a.Y == c.Y {
		HLine(dst, min(a.X, b.X, c.X), max(a.X, b.X, c.X), a.Y, p)
		return
	}
	if a.X > b.X {
		a, b = b, a
	}
	fillBetween(dst, newEdgeStepper(a, c), newEdgeStepper(b, c), a.Y, c.Y, p)
}

// fillBetween walks the left and right edges in lock-step one row at a time
// and fills the inclusive span covering both edges' pixels on each row.
func fillBetween(dst Target, left, right edgeStepper, y0, y1 int, p Pixel) {
	for y := y0; y <= y1; y++ {
		l0, l1 := left.row()
		r0, r1 := right.row()
		HLine(dst, min(l0, r0), max(l1, r1), y, p)
	}
}
