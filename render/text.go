package render

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// Align is the horizontal anchor of a text run
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextCell is one glyph of the text layer; Rune 0 is empty, Cont marks the tail of a wide rune
type TextCell struct {
	Rune  rune
	Fg    RGB
	Alpha float64
	Bold  bool
	Cont  bool
}

// TextStyle groups the text attributes
type TextStyle struct {
	Color RGB
	Alpha float64
	Bold  bool
	Align Align
}

// MeasureText returns the logical width of s on the cell grid
func (c *Canvas) MeasureText(s string) float64 {
	return float64(runewidth.StringWidth(s) * c.cellW)
}

// Text writes s on the row containing y, anchored at x by style.Align
// Returns the logical x span actually covered
func (c *Canvas) Text(x, y float64, s string, st TextStyle) (x0, x1 float64) {
	if st.Alpha <= 0 || s == "" || !finite2(x, y) {
		return x, x
	}
	row := int(math.Floor(y / float64(c.cellH)))
	if row < 0 || row >= c.rows {
		return x, x
	}

	width := runewidth.StringWidth(s)
	col := int(math.Floor(x / float64(c.cellW)))
	switch st.Align {
	case AlignCenter:
		col -= width / 2
	case AlignRight:
		col -= width
	}

	start := col
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col >= 0 && col+rw <= c.cols {
			c.text[row*c.cols+col] = TextCell{Rune: r, Fg: st.Color, Alpha: st.Alpha, Bold: st.Bold}
			for k := 1; k < rw; k++ {
				c.text[row*c.cols+col+k] = TextCell{Cont: true}
			}
		}
		col += rw
	}
	return float64(start * c.cellW), float64(col * c.cellW)
}

// TextAt returns the text layer cell at (col, row)
func (c *Canvas) TextAt(col, row int) TextCell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return TextCell{}
	}
	return c.text[row*c.cols+col]
}

// Truncate shortens s to at most width cells, appending tail when cut
func Truncate(s string, width int, tail string) string {
	return runewidth.Truncate(s, width, tail)
}
