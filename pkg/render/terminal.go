package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw paints the frame into area using upper half-block cells, so each
// terminal row shows two storage rows: the top one as foreground and the
// one below as background. Cells beyond the frame are left untouched.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle, pal Palette) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		top := (row - area.Min.Y) * 2
		if top >= fb.rows {
			break
		}
		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.cols {
				break
			}
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(pal.RGBA(fb.read(top, x))),
					Bg: rgbaToColor(pal.RGBA(fb.read(top+1, x))),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// TermSize returns the number of terminal columns and rows Draw needs.
func (fb *Framebuffer) TermSize() (cols, rows int) {
	return fb.cols, fb.rows / 2
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
