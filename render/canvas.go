// Package render rasterizes the visualization into a float-addressed pixel buffer and
// flushes it to a terminal using half-block cells
package render

import (
	"math"

	"github.com/lixenwraith/nri-constellation/vmath"
)

// MaxPixelRatio caps the backing store density
const MaxPixelRatio = 2.0

// Default logical size of one terminal cell
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Canvas is a raster in logical pixel coordinates backed by a ratio-scaled pixel buffer
// plus a cell-aligned text layer
type Canvas struct {
	w, h   float64 // logical size
	ratio  float64
	bw, bh int // backing size
	pix    []RGB

	cellW, cellH int
	cols, rows   int
	text         []TextCell
}

// NewCanvas creates an empty canvas for cells of cellW×cellH logical pixels
func NewCanvas(cellW, cellH int) *Canvas {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 1 {
		cellH = DefaultCellHeight
	}
	c := &Canvas{cellW: cellW, cellH: cellH}
	c.Resize(0, 0, 1)
	return c
}

// ClampRatio bounds a device pixel ratio to (0, MaxPixelRatio], non-positive becomes 1
func ClampRatio(ratio float64) float64 {
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return 1
	}
	return math.Min(ratio, MaxPixelRatio)
}

// BackingSize returns the pixel buffer dimensions for a logical size, never below 1×1
func BackingSize(w, h, ratio float64) (int, int) {
	ratio = ClampRatio(ratio)
	bw := int(math.Floor(vmath.Finite(w, 0) * ratio))
	bh := int(math.Floor(vmath.Finite(h, 0) * ratio))
	return max(1, bw), max(1, bh)
}

// Resize adjusts dimensions, reallocates only if capacity insufficient
func (c *Canvas) Resize(w, h, ratio float64) {
	c.w = math.Max(0, vmath.Finite(w, 0))
	c.h = math.Max(0, vmath.Finite(h, 0))
	c.ratio = ClampRatio(ratio)
	c.bw, c.bh = BackingSize(c.w, c.h, c.ratio)

	size := c.bw * c.bh
	if cap(c.pix) < size {
		c.pix = make([]RGB, size)
	} else {
		c.pix = c.pix[:size]
	}

	c.cols = max(1, int(math.Ceil(c.w/float64(c.cellW))))
	c.rows = max(1, int(math.Ceil(c.h/float64(c.cellH))))
	if cap(c.text) < c.cols*c.rows {
		c.text = make([]TextCell, c.cols*c.rows)
	} else {
		c.text = c.text[:c.cols*c.rows]
	}
	c.Clear(RGBBlack)
}

// Size returns the logical size
func (c *Canvas) Size() (w, h float64) { return c.w, c.h }

// Backing returns the pixel buffer size
func (c *Canvas) Backing() (w, h int) { return c.bw, c.bh }

// Ratio returns the effective pixel ratio
func (c *Canvas) Ratio() float64 { return c.ratio }

// Cells returns the text layer grid size
func (c *Canvas) Cells() (cols, rows int) { return c.cols, c.rows }

// CellSize returns the logical size of one cell
func (c *Canvas) CellSize() (w, h int) { return c.cellW, c.cellH }

// Clear fills the raster with bg and empties the text layer using exponential copy
func (c *Canvas) Clear(bg RGB) {
	if len(c.pix) > 0 {
		c.pix[0] = bg
		for filled := 1; filled < len(c.pix); filled *= 2 {
			copy(c.pix[filled:], c.pix[:filled])
		}
	}
	for i := range c.text {
		c.text[i] = TextCell{}
	}
}

// At returns the backing pixel at (x, y), black outside bounds
func (c *Canvas) At(x, y int) RGB {
	if x < 0 || y < 0 || x >= c.bw || y >= c.bh {
		return RGBBlack
	}
	return c.pix[y*c.bw+x]
}

// plot composites one backing pixel
func (c *Canvas) plot(x, y int, col RGB, alpha float64, mode BlendMode) {
	if x < 0 || y < 0 || x >= c.bw || y >= c.bh || alpha <= 0 {
		return
	}
	i := y*c.bw + x
	c.pix[i] = mode.apply(c.pix[i], col, alpha)
}

// Plot composites the pixel under logical point (x, y)
func (c *Canvas) Plot(x, y float64, col RGB, alpha float64, mode BlendMode) {
	c.plot(int(math.Floor(x*c.ratio)), int(math.Floor(y*c.ratio)), col, alpha, mode)
}

// box returns the clipped backing-pixel bounds of a logical rect
func (c *Canvas) box(x0, y0, x1, y1 float64) (ix0, iy0, ix1, iy1 int) {
	ix0 = max(0, int(math.Floor(x0*c.ratio)))
	iy0 = max(0, int(math.Floor(y0*c.ratio)))
	ix1 = min(c.bw-1, int(math.Ceil(x1*c.ratio)))
	iy1 = min(c.bh-1, int(math.Ceil(y1*c.ratio)))
	return
}

// sampleRect averages the backing pixels covering a logical rect, nearest pixel if the rect is sub-pixel
func (c *Canvas) sampleRect(x, y, w, h float64) RGB {
	ix0 := int(math.Floor(x * c.ratio))
	iy0 := int(math.Floor(y * c.ratio))
	ix1 := int(math.Floor((x + w) * c.ratio))
	iy1 := int(math.Floor((y + h) * c.ratio))
	if ix1 <= ix0 || iy1 <= iy0 {
		return c.At(ix0, iy0)
	}
	var r, g, b, n int
	for py := max(0, iy0); py < min(iy1, c.bh); py++ {
		row := c.pix[py*c.bw:]
		for px := max(0, ix0); px < min(ix1, c.bw); px++ {
			p := row[px]
			r += int(p.R)
			g += int(p.G)
			b += int(p.B)
			n++
		}
	}
	if n == 0 {
		return RGBBlack
	}
	return RGB{uint8(r / n), uint8(g / n), uint8(b / n)}
}

// Dots returns the top and bottom half-cell colors of cell (col, row)
func (c *Canvas) Dots(col, row int) (top, bottom RGB) {
	cw, ch := float64(c.cellW), float64(c.cellH)
	x := float64(col) * cw
	y := float64(row) * ch
	top = c.sampleRect(x, y, cw, ch/2)
	bottom = c.sampleRect(x, y+ch/2, cw, ch/2)
	return top, bottom
}
