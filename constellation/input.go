package constellation

import (
	"math"

	"github.com/lixenwraith/nri-constellation/host"
	"github.com/lixenwraith/nri-constellation/interact"
)

// Click runs the topmost region action under (x, y) from the last drawn frame
func (e *Engine) Click(x, y float64) bool {
	if e.closed {
		return false
	}
	return e.hits.Click(x, y)
}

// Over reports whether (x, y) lies on a clickable region of the last drawn frame
func (e *Engine) Over(x, y float64) bool {
	_, ok := e.hits.Hit(x, y)
	return ok
}

func (e *Engine) setOver(over bool) {
	if over != e.overRegion {
		e.overRegion = over
		e.opts.OnHover(over)
	}
}

// aim updates the parallax target from a pointer position normalized to [-1, 1]
func (e *Engine) aim(x, y float64) {
	if e.w <= 0 || e.h <= 0 {
		return
	}
	e.mouseTargetX = (x/e.w - 0.5) * 2
	e.mouseTargetY = (y/e.h - 0.5) * 2
}

func (e *Engine) onPointerMove(ev host.Event) {
	e.aim(ev.X, ev.Y)
	if !e.drag.Active {
		e.setOver(e.Over(ev.X, ev.Y))
		return
	}
	dx, dy := e.drag.Move(ev.X, ev.Y)
	e.pan.Drag(dx, dy, e.zoom.Current)
}

func (e *Engine) onPointerDown(ev host.Event) {
	e.drag.Press(ev.X, ev.Y, false)
}

func (e *Engine) onPointerUp(ev host.Event) {
	if e.drag.Release(ev.X, ev.Y) {
		e.Click(ev.X, ev.Y)
	}
}

func (e *Engine) onPointerLeave(host.Event) {
	e.drag.Release(math.Inf(1), math.Inf(1))
	e.setOver(false)
}

func (e *Engine) onWheel(ev host.Event) {
	e.zoom.Wheel(ev.DeltaY)
}

func touchDistance(ts []host.Touch) float64 {
	return math.Hypot(ts[0].X-ts[1].X, ts[0].Y-ts[1].Y)
}

func (e *Engine) onTouchStart(ev host.Event) {
	switch len(ev.Touches) {
	case 1:
		e.drag.Press(ev.Touches[0].X, ev.Touches[0].Y, true)
	case 2:
		e.drag.Pinch(touchDistance(ev.Touches))
	}
}

func (e *Engine) onTouchMove(ev host.Event) {
	switch len(ev.Touches) {
	case 1:
		if e.drag.Pinching() {
			return
		}
		dx, dy := e.drag.Move(ev.Touches[0].X, ev.Touches[0].Y)
		e.pan.DragTouch(dx, dy, e.zoom.Current)
	case 2:
		e.zoom.Add(e.drag.Pinch(touchDistance(ev.Touches)) * interact.PinchFactor)
	}
}

func (e *Engine) onTouchEnd(ev host.Event) {
	if e.drag.Release(ev.X, ev.Y) {
		e.Click(ev.X, ev.Y)
	}
}
