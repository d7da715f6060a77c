package render

import (
	"github.com/gdamore/tcell/v2"
)

// HalfBlock is the glyph used to show two vertical dots per cell
const HalfBlock = '▀'

// Flush writes the canvas to screen at cell offset (ox, oy)
// Each cell shows its top dot as foreground and bottom dot as background, text overrides the glyph
func (c *Canvas) Flush(screen tcell.Screen, ox, oy int) {
	sw, sh := screen.Size()
	for row := 0; row < c.rows; row++ {
		y := oy + row
		if y < 0 || y >= sh {
			continue
		}
		for col := 0; col < c.cols; col++ {
			x := ox + col
			if x < 0 || x >= sw {
				continue
			}
			top, bottom := c.Dots(col, row)
			cell := c.text[row*c.cols+col]
			switch {
			case cell.Cont:
				continue
			case cell.Rune != 0:
				bg := average(top, bottom)
				style := tcell.StyleDefault.
					Background(bg.Tcell()).
					Foreground(Blend(bg, cell.Fg, cell.Alpha).Tcell()).
					Bold(cell.Bold)
				screen.SetContent(x, y, cell.Rune, nil, style)
			default:
				style := tcell.StyleDefault.Foreground(top.Tcell()).Background(bottom.Tcell())
				screen.SetContent(x, y, HalfBlock, nil, style)
			}
		}
	}
}
