package render

import "fmt"

// Rect is an axis-aligned box in logical pixels
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside the rect, edges included
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Palette of the overlay
var (
	PillFill     = RGB{8, 11, 16}
	PillText     = RGB{234, 240, 249}
	PillMeta     = RGB{194, 201, 214}
	MicroText    = RGB{218, 227, 238}
	RiskRedRGB   = RGB{0xef, 0x44, 0x44}
	RiskAmberRGB = RGB{0xf5, 0x9e, 0x0b}
	RiskCalmRGB  = RGB{0x94, 0xa3, 0xb8}
)

// RiskColor maps a risk level name to its dot color
func RiskColor(level string) RGB {
	switch level {
	case "red":
		return RiskRedRGB
	case "amber":
		return RiskAmberRGB
	}
	return RiskCalmRGB
}

// ClusterPill is the macro label: title plus NRI meta line and a risk dot
type ClusterPill struct {
	X, Y     float64 // top center
	Title    string
	Score    float64
	SubCount int
	Accent   RGB
	Risk     string
	Alpha    float64
}

// Draw renders the pill and returns its hit box
func (p ClusterPill) Draw(c *Canvas) Rect {
	if p.Alpha <= 0.01 {
		return Rect{X: p.X - 1, Y: p.Y, W: 2, H: 2}
	}
	meta := fmt.Sprintf("NRI %.1f | %d narratives", p.Score, p.SubCount)
	metaW := c.MeasureText(meta)
	w := max(c.MeasureText(p.Title), metaW+12) + 24
	h := 40.0
	box := Rect{X: p.X - w/2, Y: p.Y, W: w, H: h}

	c.RoundRect(box.X, box.Y, w, h, 10, PillFill, p.Alpha*0.86, BlendAlpha)
	c.StrokeRoundRect(box.X, box.Y, w, h, 10, Stroke{Width: 0.85, Color: p.Accent, Alpha: p.Alpha * 0.5 * 0.72})
	c.RoundRect(box.X+5, box.Y+h-2, w-10, 1.2, 1, p.Accent, p.Alpha*0.22*0.9, BlendAlpha)

	c.Text(p.X, box.Y+8, p.Title, TextStyle{Color: PillText, Alpha: p.Alpha * 0.98, Bold: true, Align: AlignCenter})
	c.Text(p.X+5, box.Y+24, meta, TextStyle{Color: PillMeta, Alpha: p.Alpha * 0.88, Align: AlignCenter})
	c.Disc(p.X-metaW/2-9, box.Y+25.5, 2.4, RiskColor(p.Risk), p.Alpha, BlendAlpha)
	return box
}

// SubPill is the sub-topic label
type SubPill struct {
	X, Y   float64
	Text   string
	Accent RGB
	Alpha  float64
}

// Draw renders the pill and returns its hit box
func (p SubPill) Draw(c *Canvas) Rect {
	w := c.MeasureText(p.Text) + 24
	h := 27.0
	box := Rect{X: p.X - w/2, Y: p.Y, W: w, H: h}

	c.RoundRect(box.X, box.Y, w, h, 8, PillFill, p.Alpha*0.84, BlendAlpha)
	c.StrokeRoundRect(box.X, box.Y, w, h, 8, Stroke{Width: 0.72, Color: p.Accent, Alpha: p.Alpha * 0.45 * 0.82})
	c.RoundRect(box.X+4, box.Y+h-2, w-8, 1.2, 1, p.Accent, p.Alpha*0.18, BlendAlpha)
	c.Text(p.X, box.Y+8, p.Text, TextStyle{Color: PillText, Alpha: p.Alpha * 0.98, Align: AlignCenter})
	return box
}

// MicroTag is the micro-narrative chip, placed right of its dot
type MicroTag struct {
	X, Y   float64
	Text   string
	Accent RGB
	Alpha  float64
}

// Draw renders the tag and returns its hit box
func (p MicroTag) Draw(c *Canvas) Rect {
	w := c.MeasureText(p.Text) + 14
	h := 19.0
	box := Rect{X: p.X + 7, Y: p.Y - 9, W: w, H: h}

	c.RoundRect(box.X, box.Y, w, h, 5, PillFill, p.Alpha*0.84, BlendAlpha)
	c.StrokeRoundRect(box.X, box.Y, w, h, 5, Stroke{Width: 0.62, Color: p.Accent, Alpha: p.Alpha * 0.2 * 0.92})
	c.Text(box.X+7, box.Y+4, p.Text, TextStyle{Color: MicroText, Alpha: p.Alpha * 0.9})
	return box
}
