// Package blend holds the time-based transition state shared by the engines
package blend

import (
	"time"

	"github.com/lixenwraith/nri-constellation/vmath"
)

// Dataset and view transition timings
const (
	DatasetDuration     = 820 * time.Millisecond
	DatasetConeDuration = 1200 * time.Millisecond
	ViewEnterDuration   = 1100 * time.Millisecond
	ViewLeaveDuration   = 760 * time.Millisecond
)

// Blend interpolates From→To over Duration starting at At
// Once progress reaches 1 the blend collapses (From = To) and stays idle until restarted
type Blend struct {
	From     float64
	To       float64
	At       time.Time
	Duration time.Duration
	Ease     vmath.EaseFunc
}

// New returns an idle blend resting at v
func New(v float64, ease vmath.EaseFunc) Blend {
	return Blend{From: v, To: v, Ease: ease}
}

// Start begins a transition; a non-positive duration snaps immediately
func (b *Blend) Start(from, to float64, now time.Time, d time.Duration) {
	if d <= 0 {
		b.Snap(to)
		return
	}
	b.From = from
	b.To = to
	b.At = now
	b.Duration = d
}

// Retarget starts a transition from the current value at now
func (b *Blend) Retarget(to float64, now time.Time, d time.Duration) {
	b.Start(b.Value(now), to, now, d)
}

// Snap jumps to v with no transition
func (b *Blend) Snap(v float64) {
	b.From = v
	b.To = v
	b.Duration = 0
}

// Progress returns linear progress in [0, 1]
func (b *Blend) Progress(now time.Time) float64 {
	if b.Duration <= 0 || b.From == b.To {
		return 1
	}
	return vmath.Clamp01(float64(now.Sub(b.At)) / float64(b.Duration))
}

// Eased returns eased progress in [0, 1]
func (b *Blend) Eased(now time.Time) float64 {
	p := b.Progress(now)
	if b.Ease == nil || p >= 1 {
		return p
	}
	return b.Ease(p)
}

// Value returns the blended value at now, collapsing the blend when complete
func (b *Blend) Value(now time.Time) float64 {
	p := b.Progress(now)
	if p >= 1 {
		b.From = b.To
		b.Duration = 0
		return b.To
	}
	return vmath.Lerp(b.From, b.To, b.Eased(now))
}

// Active reports whether a transition is in flight at now
func (b *Blend) Active(now time.Time) bool {
	return b.Progress(now) < 1
}

