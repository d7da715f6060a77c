// Package interact holds the input-side state of the engines: zoom, pan, drag, hit regions and focus
package interact

import (
	"math"

	"github.com/lixenwraith/nri-constellation/vmath"
)

// Zoom and pan constants shared by both engines
const (
	ZoomMin      = 0.35
	ZoomMax      = 4.8
	ZoomEase     = 0.12
	ZoomStep     = 0.15
	WheelFactor  = -0.0008
	PinchFactor  = 0.01
	PanBound     = 120.0
	PanSpeed     = 0.1
	TouchPanRate = 0.28
)

// Zoom tracks a target and an eased current value, both always within [Min, Max]
type Zoom struct {
	Min, Max float64
	Target   float64
	Current  float64
}

// NewZoom creates a zoom resting at initial
func NewZoom(min, max, initial float64) Zoom {
	z := Zoom{Min: min, Max: max}
	z.Set(initial)
	z.Current = z.Target
	return z
}

// Set moves the target, clamped
func (z *Zoom) Set(v float64) {
	z.Target = vmath.Clamp(vmath.Finite(v, z.Target), z.Min, z.Max)
}

// Add offsets the target, clamped
func (z *Zoom) Add(delta float64) {
	z.Set(z.Target + delta)
}

// Wheel applies a scroll delta
func (z *Zoom) Wheel(deltaY float64) {
	z.Add(deltaY * WheelFactor)
}

// Ease moves current toward target by factor k
func (z *Zoom) Ease(k float64) {
	z.Current = vmath.Clamp(z.Current+(z.Target-z.Current)*k, z.Min, z.Max)
	if math.Abs(z.Target-z.Current) < 1e-6 {
		z.Current = z.Target
	}
}

// Pan is a clamped 2D camera offset
type Pan struct {
	X, Y  float64
	Bound float64
}

// NewPan creates a pan bounded to ±bound
func NewPan(bound float64) Pan {
	return Pan{Bound: bound}
}

// Drag moves the pan opposite to a mouse delta, scaled down as zoom grows
func (p *Pan) Drag(dx, dy, zoom float64) {
	p.move(dx, dy, zoom, PanSpeed)
}

// DragTouch is Drag at the faster touch rate
func (p *Pan) DragTouch(dx, dy, zoom float64) {
	p.move(dx, dy, zoom, TouchPanRate)
}

func (p *Pan) move(dx, dy, zoom, speed float64) {
	rate := speed / math.Max(zoom, ZoomMin)
	p.X = vmath.Clamp(p.X-dx*rate, -p.Bound, p.Bound)
	p.Y = vmath.Clamp(p.Y-dy*rate, -p.Bound, p.Bound)
}

// SetBound changes the bound and pulls the current offset back inside it
func (p *Pan) SetBound(bound float64) {
	p.Bound = math.Max(0, vmath.Finite(bound, 0))
	p.X = vmath.Clamp(p.X, -p.Bound, p.Bound)
	p.Y = vmath.Clamp(p.Y, -p.Bound, p.Bound)
}

// Reset centers the pan
func (p *Pan) Reset() {
	p.X, p.Y = 0, 0
}
