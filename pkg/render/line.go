package render

// DrawLine draws the inclusive Bresenham line between a and b.
// The endpoints are ordered by ascending y first, so DrawLine(a, b) and
// DrawLine(b, a) light the same pixels.
func DrawLine(dst Target, a, b Point, p Pixel) {
	if a.Y > b.Y {
		a, b = b, a
	}
	e := newEdgeStepper(a, b)
	dst.SetPixel(e.x, e.y, p)
	for !e.done() {
		e.step()
		dst.SetPixel(e.x, e.y, p)
	}
}

// HLine fills row y from x0 to x1 inclusive. The endpoints may be given in
// either order.
func HLine(dst Target, x0, x1, y int, p Pixel) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		dst.SetPixel(x, y, p)
	}
}
