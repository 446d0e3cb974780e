// Package render implements the nibble geometry pipeline: rotation, perspective
// projection, face shading and scan conversion into a packed 4-bit framebuffer.
package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Target receives rasterized pixels. Framebuffer is the usual implementation.
type Target interface {
	SetPixel(x, y int, p Pixel)
}

// Framebuffer is a packed 4-bit-per-pixel frame. Each byte holds two
// horizontally adjacent pixels: even x in the low nibble, odd x in the high one.
//
// Screen coordinates have y=0 at the bottom; storage rows run top-first, so
// screen (x, y) lives in storage row Rows()-y-1.
//
// A Framebuffer is not safe for concurrent use.
type Framebuffer struct {
	pix    []byte
	rows   int
	cols   int
	stride int
}

// NewFramebuffer allocates a cleared frame. Both dimensions must be positive
// and even.
func NewFramebuffer(cols, rows int) *Framebuffer {
	if cols <= 0 || rows <= 0 {
		panic("render: framebuffer dimensions must be positive")
	}
	if cols%2 != 0 || rows%2 != 0 {
		panic("render: framebuffer dimensions must be even")
	}
	stride := cols / 2
	return &Framebuffer{
		pix:    make([]byte, stride*rows),
		rows:   rows,
		cols:   cols,
		stride: stride,
	}
}

// Cols returns the frame width in pixels.
func (fb *Framebuffer) Cols() int { return fb.cols }

// Rows returns the frame height in pixels.
func (fb *Framebuffer) Rows() int { return fb.rows }

// Stride returns the number of bytes per storage row.
func (fb *Framebuffer) Stride() int { return fb.stride }

// Bytes exposes the packed storage, top row first.
func (fb *Framebuffer) Bytes() []byte { return fb.pix }

// Clear zeroes every pixel.
func (fb *Framebuffer) Clear() {
	clear(fb.pix)
}

// Set writes colour c at intensity i to screen position (x, y).
func (fb *Framebuffer) Set(x, y int, c Colour, i Intensity) {
	fb.SetPixel(x, y, MakePixel(c, i))
}

// SetPixel writes p to screen position (x, y), replacing whatever was there.
// It panics if (x, y) is outside the frame.
func (fb *Framebuffer) SetPixel(x, y int, p Pixel) {
	fb.mustContain(x, y)
	fb.write(fb.rows-y-1, x, p)
}

// Pixel returns the cell at screen position (x, y).
// It panics if (x, y) is outside the frame.
func (fb *Framebuffer) Pixel(x, y int) Pixel {
	fb.mustContain(x, y)
	return fb.read(fb.rows-y-1, x)
}

// PixelAt returns the cell at storage position (row, col), where row 0 is
// the top of the display.
func (fb *Framebuffer) PixelAt(row, col int) Pixel {
	if row < 0 || row >= fb.rows || col < 0 || col >= fb.cols {
		panic(fmt.Sprintf("render: storage position (%d,%d) outside %dx%d frame", row, col, fb.cols, fb.rows))
	}
	return fb.read(row, col)
}

// Contains reports whether screen position (x, y) is inside the frame.
func (fb *Framebuffer) Contains(x, y int) bool {
	return x >= 0 && x < fb.cols && y >= 0 && y < fb.rows
}

// Scan calls fn for every pixel in storage order: top row first, left to
// right. Iteration stops early if fn returns false.
func (fb *Framebuffer) Scan(fn func(x, y int, p Pixel) bool) {
	for row := range fb.rows {
		y := fb.rows - row - 1
		for col := range fb.cols {
			if !fn(col, y, fb.read(row, col)) {
				return
			}
		}
	}
}

func (fb *Framebuffer) mustContain(x, y int) {
	if !fb.Contains(x, y) {
		panic(fmt.Sprintf("render: pixel (%d,%d) outside %dx%d frame", x, y, fb.cols, fb.rows))
	}
}

// pixOffset returns the byte offset and nibble shift of storage (row, col).
func (fb *Framebuffer) pixOffset(row, col int) (offset int, shift uint) {
	return row*fb.stride + col/2, uint(4 * (col & 1))
}

func (fb *Framebuffer) read(row, col int) Pixel {
	offset, shift := fb.pixOffset(row, col)
	return Pixel(fb.pix[offset] >> shift & cellMask)
}

func (fb *Framebuffer) write(row, col int, p Pixel) {
	offset, shift := fb.pixOffset(row, col)
	// Clear the nibble and set the new value
	fb.pix[offset] = fb.pix[offset]&^(cellMask<<shift) | (uint8(p)&cellMask)<<shift
}

// Image converts the frame to an RGBA image using pal. Row 0 of the image is
// the top of the display.
func (fb *Framebuffer) Image(pal Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.cols, fb.rows))
	fb.Scan(func(x, y int, p Pixel) bool {
		img.SetRGBA(x, fb.rows-y-1, pal.RGBA(p))
		return true
	})
	return img
}

// WritePNG encodes the frame as a PNG.
func (fb *Framebuffer) WritePNG(w io.Writer, pal Palette) error {
	return png.Encode(w, fb.Image(pal))
}

// SavePNG saves the frame as a PNG file.
func (fb *Framebuffer) SavePNG(path string, pal Palette) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fb.WritePNG(f, pal)
}

// WriteText dumps the packed bytes as decimal values, one storage row per
// line, top row first.
func (fb *Framebuffer) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for row := range fb.rows {
		line := fb.pix[row*fb.stride : (row+1)*fb.stride]
		for i, b := range line {
			if i > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%3d", b)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Palette maps packed cells to display colours.
type Palette struct {
	Red, Green, Blue color.RGBA
	Background       color.RGBA
}

// DefaultPalette approximates the SSD1331 primaries.
var DefaultPalette = Palette{
	Red:        color.RGBA{255, 0, 0, 255},
	Green:      color.RGBA{0, 255, 0, 255},
	Blue:       color.RGBA{0, 0, 255, 255},
	Background: color.RGBA{0, 0, 0, 255},
}

// RGBA returns the display colour of p. Unlit cells map to the background;
// lit cells scale the primary by intensity/MaxIntensity.
func (pal Palette) RGBA(p Pixel) color.RGBA {
	if !p.Lit() {
		return pal.Background
	}
	var base color.RGBA
	switch p.Colour() {
	case Red:
		base = pal.Red
	case Green:
		base = pal.Green
	default:
		base = pal.Blue
	}
	i := uint16(p.Intensity())
	return color.RGBA{
		R: uint8(uint16(base.R) * i / uint16(MaxIntensity)),
		G: uint8(uint16(base.G) * i / uint16(MaxIntensity)),
		B: uint8(uint16(base.B) * i / uint16(MaxIntensity)),
		A: 255,
	}
}
