package render

import "fmt"

// Colour is a 2-bit colour tag. Off is representable but never drawn as a colour.
type Colour uint8

const (
	Off Colour = iota
	Red
	Green
	Blue
)

var colourNames = [...]string{"off", "red", "green", "blue"}

func (c Colour) String() string {
	if int(c) < len(colourNames) {
		return colourNames[c]
	}
	return fmt.Sprintf("Colour(%d)", uint8(c))
}

// ParseColour returns the colour named s.
func ParseColour(s string) (Colour, error) {
	for i, n := range colourNames {
		if n == s {
			return Colour(i), nil
		}
	}
	return Off, fmt.Errorf("render: unknown colour %q", s)
}

// Intensity is a 2-bit relative brightness level, 0 (dark) to MaxIntensity.
type Intensity uint8

// MaxIntensity is the brightest level a Pixel can carry.
const MaxIntensity Intensity = 3

// Pixel is one 4-bit framebuffer cell.
// Bits 0-1 hold the colour, bits 2-3 the intensity.
type Pixel uint8

const (
	colourMask    = 0x03
	intensityMask = 0x03
	intensityBits = 2
	cellMask      = 0x0F
)

// MakePixel packs c and i into a cell. Values wider than 2 bits are truncated.
func MakePixel(c Colour, i Intensity) Pixel {
	return Pixel(uint8(c)&colourMask | (uint8(i)&intensityMask)<<intensityBits)
}

// Colour returns the colour bits of p.
func (p Pixel) Colour() Colour {
	return Colour(uint8(p) & colourMask)
}

// Intensity returns the intensity bits of p.
func (p Pixel) Intensity() Intensity {
	return Intensity(uint8(p) >> intensityBits & intensityMask)
}

// Lit reports whether p would emit light: a colour at non-zero intensity.
func (p Pixel) Lit() bool {
	return p.Colour() != Off && p.Intensity() != 0
}

func (p Pixel) String() string {
	return fmt.Sprintf("%s/%d", p.Colour(), p.Intensity())
}
