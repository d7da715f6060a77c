package actorgraph

import (
	"math"

	"github.com/lixenwraith/nri-constellation/host"
	"github.com/lixenwraith/nri-constellation/interact"
)

// HitTest returns the actor under the screen point (x, y) or interact.None
func (e *Engine) HitTest(x, y float64) int {
	if e.closed || e.active == nil {
		return interact.None
	}
	now := e.clock.Now()
	b := e.datasetBlend(now)
	vb := e.viewValue(now)

	from := e.previous
	if b >= 1 {
		from = nil
	}
	targets := make([]interact.Target, len(e.active.Actors))
	for i := range targets {
		p := e.place(e.active, from, i, b, vb)
		if !p.ok {
			targets[i] = interact.Target{X: math.Inf(1), Y: math.Inf(1)}
			continue
		}
		targets[i] = interact.Target{X: p.x, Y: p.y, R: p.anchor.NodeRadius * p.scale}
	}
	return interact.Nearest(targets, x, y, HitMargin)
}

func (e *Engine) setHover(index int) {
	if e.focus.SetHover(index) {
		e.opts.OnHover(index)
	}
}

// click locks the actor under (x, y) and reports it, or clears lock and focus on a miss
func (e *Engine) click(x, y float64) {
	hit := e.HitTest(x, y)
	if hit == interact.None || !e.active.valid(hit) {
		e.focus.Release()
		return
	}
	e.focus.Lock(hit, len(e.active.Actors))
	e.opts.OnEntityClick(e.active.Actors[hit], hit)
}

func (e *Engine) onPointerMove(ev host.Event) {
	if dx, dy := e.drag.Move(ev.X, ev.Y); dx != 0 || dy != 0 {
		e.pan.Drag(dx, dy, e.zoom.Current)
	}
	e.setHover(e.HitTest(ev.X, ev.Y))
}

func (e *Engine) onPointerDown(ev host.Event) {
	e.drag.Press(ev.X, ev.Y, false)
}

func (e *Engine) onPointerUp(ev host.Event) {
	if e.drag.Release(ev.X, ev.Y) {
		e.click(ev.X, ev.Y)
	}
}

func (e *Engine) onPointerLeave(host.Event) {
	e.drag.Release(math.Inf(1), math.Inf(1))
	e.setHover(interact.None)
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
		e.click(ev.X, ev.Y)
	}
}
