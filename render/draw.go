package render

import (
	"math"

	"github.com/lixenwraith/nri-constellation/vmath"
)

// Stop is one color stop of a gradient
type Stop struct {
	Offset float64
	Color  RGB
	Alpha  float64
}

// sampleStops interpolates color and alpha at t, stops must be sorted by offset
func sampleStops(stops []Stop, t float64) (RGB, float64) {
	if len(stops) == 0 {
		return RGBBlack, 0
	}
	if t <= stops[0].Offset {
		return stops[0].Color, stops[0].Alpha
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			a, b := stops[i-1], stops[i]
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color, b.Alpha
			}
			k := (t - a.Offset) / span
			return Lerp(a.Color, b.Color, k), vmath.Lerp(a.Alpha, b.Alpha, k)
		}
	}
	last := stops[len(stops)-1]
	return last.Color, last.Alpha
}

// Fade is the common two-stop glow falloff from color to transparent
func Fade(col RGB, alpha float64) []Stop {
	return []Stop{{0, col, alpha}, {1, col, 0}}
}

// Stroke describes a line style
type Stroke struct {
	Width      float64
	Color      RGB
	Alpha      float64
	Gradient   []Stop     // optional, sampled by curve parameter and multiplied into Alpha
	Dash       [2]float64 // on, off in logical px; zero is solid
	DashOffset float64
	Mode       BlendMode
}

// colorAt resolves the stroke color at curve parameter t
func (s Stroke) colorAt(t float64) (RGB, float64) {
	if len(s.Gradient) == 0 {
		return s.Color, s.Alpha
	}
	col, a := sampleStops(s.Gradient, t)
	return col, a * s.Alpha
}

// subPixel deposits a shape smaller than a backing pixel as a coverage-weighted dot
func (c *Canvas) subPixel(x, y, area float64, col RGB, alpha float64, mode BlendMode) {
	c.Plot(x, y, col, alpha*math.Min(1, area), mode)
}

// Disc fills a circle with anti-aliased edge
func (c *Canvas) Disc(x, y, r float64, col RGB, alpha float64, mode BlendMode) {
	if alpha <= 0 || r <= 0 || !finite2(x, y) {
		return
	}
	br := r * c.ratio
	if br < 0.75 {
		c.subPixel(x, y, math.Pi*br*br, col, alpha, mode)
		return
	}
	bx, by := x*c.ratio, y*c.ratio
	ix0, iy0, ix1, iy1 := c.box(x-r-1, y-r-1, x+r+1, y+r+1)
	for py := iy0; py <= iy1; py++ {
		for px := ix0; px <= ix1; px++ {
			d := math.Hypot(float64(px)+0.5-bx, float64(py)+0.5-by)
			cov := vmath.Clamp01(br + 0.5 - d)
			if cov > 0 {
				c.plot(px, py, col, alpha*cov, mode)
			}
		}
	}
}

// RadialGradient paints stops between radii r0 and r1 around (x, y)
// Pixels beyond r1 take the last stop, so a transparent last stop bounds the paint to r1
func (c *Canvas) RadialGradient(x, y, r0, r1 float64, stops []Stop, alpha float64, mode BlendMode) {
	if alpha <= 0 || len(stops) == 0 || r1 <= r0 || !finite2(x, y) {
		return
	}
	br1 := r1 * c.ratio
	if br1 < 0.75 {
		col, a := sampleStops(stops, 0)
		c.subPixel(x, y, math.Pi*br1*br1*0.5, col, alpha*a, mode)
		return
	}

	ix0, iy0, ix1, iy1 := 0, 0, c.bw-1, c.bh-1
	if stops[len(stops)-1].Alpha <= 0 {
		ix0, iy0, ix1, iy1 = c.box(x-r1, y-r1, x+r1, y+r1)
	}
	bx, by := x*c.ratio, y*c.ratio
	br0 := r0 * c.ratio
	span := br1 - br0
	for py := iy0; py <= iy1; py++ {
		for px := ix0; px <= ix1; px++ {
			d := math.Hypot(float64(px)+0.5-bx, float64(py)+0.5-by)
			col, a := sampleStops(stops, (d-br0)/span)
			if a > 0 {
				c.plot(px, py, col, alpha*a, mode)
			}
		}
	}
}

// Glow paints a soft radial falloff
func (c *Canvas) Glow(x, y, r float64, col RGB, alpha float64, mode BlendMode) {
	c.RadialGradient(x, y, 0, r, Fade(col, 1), alpha, mode)
}

// Ring strokes a circle outline
func (c *Canvas) Ring(x, y, r, width float64, col RGB, alpha float64, mode BlendMode) {
	if alpha <= 0 || r <= 0 || !finite2(x, y) {
		return
	}
	bx, by := x*c.ratio, y*c.ratio
	br := r * c.ratio
	half := math.Max(width*c.ratio, 0.6) / 2
	pad := r + width + 1
	ix0, iy0, ix1, iy1 := c.box(x-pad, y-pad, x+pad, y+pad)
	for py := iy0; py <= iy1; py++ {
		for px := ix0; px <= ix1; px++ {
			d := math.Abs(math.Hypot(float64(px)+0.5-bx, float64(py)+0.5-by) - br)
			cov := vmath.Clamp01(half + 0.5 - d)
			if cov > 0 {
				c.plot(px, py, col, alpha*cov, mode)
			}
		}
	}
}

// segment strokes a straight segment with a flat color, the caller resolves gradients
func (c *Canvas) segment(x0, y0, x1, y1, width float64, col RGB, alpha float64, mode BlendMode) {
	if alpha <= 0 {
		return
	}
	half := math.Max(width*c.ratio, 0.6) / 2
	pad := width + 1
	ix0, iy0, ix1, iy1 := c.box(math.Min(x0, x1)-pad, math.Min(y0, y1)-pad, math.Max(x0, x1)+pad, math.Max(y0, y1)+pad)

	ax, ay := x0*c.ratio, y0*c.ratio
	dx, dy := (x1-x0)*c.ratio, (y1-y0)*c.ratio
	lenSq := dx*dx + dy*dy
	for py := iy0; py <= iy1; py++ {
		for px := ix0; px <= ix1; px++ {
			qx, qy := float64(px)+0.5-ax, float64(py)+0.5-ay
			t := 0.0
			if lenSq > 0 {
				t = vmath.Clamp01((qx*dx + qy*dy) / lenSq)
			}
			d := math.Hypot(qx-dx*t, qy-dy*t)
			cov := vmath.Clamp01(half + 0.5 - d)
			if cov > 0 {
				c.plot(px, py, col, alpha*cov, mode)
			}
		}
	}
}

// Line strokes a straight line
func (c *Canvas) Line(x0, y0, x1, y1 float64, s Stroke) {
	c.QuadCurve(x0, y0, (x0+x1)/2, (y0+y1)/2, x1, y1, s)
}

// QuadCurve strokes a quadratic Bézier, flattened into segments, optionally dashed
func (c *Canvas) QuadCurve(x0, y0, cx, cy, x1, y1 float64, s Stroke) {
	if s.Alpha <= 0 || !finite2(x0, y0) || !finite2(x1, y1) || !finite2(cx, cy) {
		return
	}
	approx := vmath.Dist(x0, y0, cx, cy) + vmath.Dist(cx, cy, x1, y1)
	steps := int(vmath.Clamp(approx/6, 4, 48))

	period := s.Dash[0] + s.Dash[1]
	dashed := s.Dash[0] > 0 && s.Dash[1] > 0
	travelled := 0.0

	px, py := x0, y0
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		nx, ny := vmath.QuadPoint(t, x0, y0, cx, cy, x1, y1)
		seg := vmath.Dist(px, py, nx, ny)
		mid := t - 0.5/float64(steps)
		col, a := s.colorAt(mid)

		if !dashed {
			c.segment(px, py, nx, ny, s.Width, col, a, s.Mode)
		} else {
			c.dashSegment(px, py, nx, ny, seg, travelled, period, s, col, a)
		}
		travelled += seg
		px, py = nx, ny
	}
}

// dashSegment draws the "on" portions of one flattened segment
func (c *Canvas) dashSegment(x0, y0, x1, y1, seg, travelled, period float64, s Stroke, col RGB, a float64) {
	if seg <= 0 {
		return
	}
	pos := 0.0
	for pos < seg {
		phase := math.Mod(travelled+pos-s.DashOffset, period)
		if phase < 0 {
			phase += period
		}
		var run float64
		on := phase < s.Dash[0]
		if on {
			run = s.Dash[0] - phase
		} else {
			run = period - phase
		}
		end := math.Min(seg, pos+run)
		if on {
			t0, t1 := pos/seg, end/seg
			c.segment(
				vmath.Lerp(x0, x1, t0), vmath.Lerp(y0, y1, t0),
				vmath.Lerp(x0, x1, t1), vmath.Lerp(y0, y1, t1),
				s.Width, col, a, s.Mode,
			)
		}
		pos = end + 1e-9
	}
}

// roundBoxDist is the signed distance from (px, py) to a rounded rect in backing space
func roundBoxDist(px, py, cx, cy, hw, hh, r float64) float64 {
	qx := math.Abs(px-cx) - hw + r
	qy := math.Abs(py-cy) - hh + r
	outside := math.Hypot(math.Max(qx, 0), math.Max(qy, 0))
	inside := math.Min(math.Max(qx, qy), 0)
	return outside + inside - r
}

// RoundRect fills a rounded rectangle
func (c *Canvas) RoundRect(x, y, w, h, r float64, col RGB, alpha float64, mode BlendMode) {
	c.roundRect(x, y, w, h, r, func(d float64) float64 { return vmath.Clamp01(0.5 - d) }, col, alpha, mode)
}

// StrokeRoundRect outlines a rounded rectangle
func (c *Canvas) StrokeRoundRect(x, y, w, h, r float64, s Stroke) {
	half := math.Max(s.Width*c.ratio, 0.6) / 2
	c.roundRect(x, y, w, h, r, func(d float64) float64 { return vmath.Clamp01(half + 0.5 - math.Abs(d)) }, s.Color, s.Alpha, s.Mode)
}

func (c *Canvas) roundRect(x, y, w, h, r float64, coverage func(d float64) float64, col RGB, alpha float64, mode BlendMode) {
	if alpha <= 0 || w <= 0 || h <= 0 || !finite2(x, y) {
		return
	}
	r = math.Min(r, math.Min(w, h)/2)
	hw, hh := w*c.ratio/2, h*c.ratio/2
	cx, cy := x*c.ratio+hw, y*c.ratio+hh
	br := r * c.ratio
	ix0, iy0, ix1, iy1 := c.box(x-1, y-1, x+w+1, y+h+1)
	for py := iy0; py <= iy1; py++ {
		for px := ix0; px <= ix1; px++ {
			cov := coverage(roundBoxDist(float64(px)+0.5, float64(py)+0.5, cx, cy, hw, hh, br))
			if cov > 0 {
				c.plot(px, py, col, alpha*cov, mode)
			}
		}
	}
}

// VerticalGradient washes the whole canvas top to bottom
func (c *Canvas) VerticalGradient(stops []Stop, alpha float64, mode BlendMode) {
	for py := 0; py < c.bh; py++ {
		col, a := sampleStops(stops, (float64(py)+0.5)/float64(c.bh))
		if a <= 0 {
			continue
		}
		for px := 0; px < c.bw; px++ {
			c.plot(px, py, col, alpha*a, mode)
		}
	}
}

func finite2(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}
