package interact

import (
	"math"

	"github.com/lixenwraith/nri-constellation/render"
)

// Region is a clickable rectangle rebuilt every frame
type Region struct {
	render.Rect
	Action func()
}

// HitStack holds the regions of the current frame; later regions are on top
type HitStack struct {
	regions []Region
}

// Reset drops all regions, keeping capacity
func (h *HitStack) Reset() {
	h.regions = h.regions[:0]
}

// Push adds a region on top
func (h *HitStack) Push(r render.Rect, action func()) {
	h.regions = append(h.regions, Region{Rect: r, Action: action})
}

// Len returns the number of regions
func (h *HitStack) Len() int { return len(h.regions) }

// Regions returns the current regions bottom to top; the slice is reused by the next Reset
func (h *HitStack) Regions() []Region { return h.regions }

// Hit returns the topmost region containing (x, y)
func (h *HitStack) Hit(x, y float64) (Region, bool) {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Contains(x, y) {
			return h.regions[i], true
		}
	}
	return Region{}, false
}

// Click runs the action of the topmost region under (x, y)
func (h *HitStack) Click(x, y float64) bool {
	r, ok := h.Hit(x, y)
	if ok && r.Action != nil {
		r.Action()
	}
	return ok
}

// Target is a circular hit target
type Target struct {
	X, Y, R float64
}

// Nearest returns the index of the closest target whose radius plus margin contains (x, y), or -1
func Nearest(targets []Target, x, y, margin float64) int {
	best := -1
	bestSq := math.Inf(1)
	for i, t := range targets {
		dx, dy := x-t.X, y-t.Y
		r := t.R + margin
		d := dx*dx + dy*dy
		if d <= r*r && d < bestSq {
			best, bestSq = i, d
		}
	}
	return best
}
