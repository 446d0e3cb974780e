package render

// Point is an integer screen-space position; y=0 is the bottom row.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{x, y}
}

// edgeStepper walks the pixels of a segment from p0 towards p1 with the
// two-regime Bresenham recurrence. The segment must not descend (p1.Y >= p0.Y).
//
// In the x-major regime every step moves x by one and y by at most one; in
// the y-major regime every step moves y by one and x by at most one.
type edgeStepper struct {
	x, y   int
	dir    int // +1 or -1 along x
	xMajor bool
	err    int
	inc    int // added to err when the minor axis stays put
	dec    int // added to err when the minor axis moves
	n      int // steps remaining until p1
}

func newEdgeStepper(p0, p1 Point) edgeStepper {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	dir := 1
	if dx < 0 {
		dx, dir = -dx, -1
	}
	e := edgeStepper{x: p0.X, y: p0.Y, dir: dir}
	if dx > dy {
		e.xMajor = true
		e.inc = 2 * dy
		e.dec = e.inc - 2*dx
		e.err = e.inc - dx
		e.n = dx
	} else {
		e.inc = 2 * dx
		e.dec = e.inc - 2*dy
		e.err = e.inc - dy
		e.n = dy
	}
	return e
}

// done reports whether the stepper has reached p1.
func (e *edgeStepper) done() bool {
	return e.n == 0
}

// step advances one pixel along the major axis.
func (e *edgeStepper) step() {
	if e.n == 0 {
		return
	}
	e.n--
	if e.xMajor {
		e.x += e.dir
		if e.err >= 0 {
			e.y++
			e.err += e.dec
		} else {
			e.err += e.inc
		}
		return
	}
	e.y++
	if e.err >= 0 {
		e.x += e.dir
		e.err += e.dec
	} else {
		e.err += e.inc
	}
}

// row returns the x extent of the edge's pixels on the current row and
// leaves the stepper on the first pixel of the next row. x-major edges may
// cover several pixels per row; y-major edges cover exactly one. On the last
// row the stepper stops at the end point.
func (e *edgeStepper) row() (lo, hi int) {
	lo, hi = e.x, e.x
	y := e.y
	for !e.done() {
		e.step()
		if e.y != y {
			break
		}
		lo = min(lo, e.x)
		hi = max(hi, e.x)
	}
	return lo, hi
}
