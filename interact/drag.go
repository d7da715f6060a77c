package interact

import "math"

// Click distance thresholds in logical pixels
const (
	ClickThresholdMouse = 5.0
	ClickThresholdTouch = 8.0
)

// Drag tracks one press-move-release gesture and pinch distance
type Drag struct {
	Active         bool
	Touch          bool
	startX, startY float64
	lastX, lastY   float64
	pinchDist      float64
}

// Press begins a gesture at (x, y)
func (d *Drag) Press(x, y float64, touch bool) {
	d.Active = true
	d.Touch = touch
	d.startX, d.startY = x, y
	d.lastX, d.lastY = x, y
	d.pinchDist = 0
}

// Move returns the delta since the last move, zero when not dragging
func (d *Drag) Move(x, y float64) (dx, dy float64) {
	if !d.Active {
		return 0, 0
	}
	dx, dy = x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y
	return dx, dy
}

// Release ends the gesture and reports whether it qualifies as a click
func (d *Drag) Release(x, y float64) (click bool) {
	if !d.Active {
		return false
	}
	d.Active = false
	if d.pinchDist > 0 {
		d.pinchDist = 0
		return false
	}
	limit := ClickThresholdMouse
	if d.Touch {
		limit = ClickThresholdTouch
	}
	return math.Hypot(x-d.startX, y-d.startY) < limit
}

// Pinch records a two-finger distance and returns the change since the previous sample
// The first sample of a pinch returns zero and cancels any single-finger drag
func (d *Drag) Pinch(dist float64) float64 {
	d.Active = true
	prev := d.pinchDist
	d.pinchDist = dist
	if prev <= 0 {
		return 0
	}
	return dist - prev
}

// Pinching reports whether a two-finger gesture is in progress
func (d *Drag) Pinching() bool {
	return d.pinchDist > 0
}
