// Package host provides the container an engine mounts into: logical size, pixel ratio,
// listener registry and a frame queue, plus a tcell driver that pumps them
package host

import (
	"log"
	"math"
	"time"

	"github.com/lixenwraith/nri-constellation/render"
	"github.com/lixenwraith/nri-constellation/vmath"
)

// FrameID identifies a queued frame callback
type FrameID uint64

// FrameFunc runs once on the next tick
type FrameFunc func(now time.Time)

// Options configures a Surface
type Options struct {
	Width, Height float64
	PixelRatio    float64
	CellWidth     int
	CellHeight    int
	Accelerated   bool
	ReducedMotion bool
}

type listener struct {
	id uint64
	fn Handler
}

type frame struct {
	id FrameID
	fn FrameFunc
}

// Surface is owned by the goroutine that ticks it; it is not safe for concurrent use
type Surface struct {
	w, h        float64
	ratio       float64
	accelerated bool
	reduced     bool

	canvas *render.Canvas

	listeners  [kindCount][]listener
	nextListen uint64

	frames    []frame
	running   []frame
	nextFrame FrameID

	mounted func()
	mountID uint64
}

// NewSurface creates a surface of the given logical size
func NewSurface(opts Options) *Surface {
	s := &Surface{
		ratio:       render.ClampRatio(opts.PixelRatio),
		accelerated: opts.Accelerated,
		reduced:     opts.ReducedMotion,
		canvas:      render.NewCanvas(opts.CellWidth, opts.CellHeight),
	}
	s.w, s.h = sanitize(opts.Width, opts.Height)
	return s
}

func sanitize(w, h float64) (float64, float64) {
	return math.Max(0, vmath.Finite(w, 0)), math.Max(0, vmath.Finite(h, 0))
}

// Size returns the logical size
func (s *Surface) Size() (w, h float64) { return s.w, s.h }

// PixelRatio returns the requested device pixel ratio
func (s *Surface) PixelRatio() float64 { return s.ratio }

// Accelerated reports whether the particle layer can be drawn
func (s *Surface) Accelerated() bool { return s.accelerated }

// ReducedMotion reports the motion preference
func (s *Surface) ReducedMotion() bool { return s.reduced }

// SetReducedMotion changes the motion preference
func (s *Surface) SetReducedMotion(v bool) { s.reduced = v }

// Canvas returns the raster engines draw into
func (s *Surface) Canvas() *render.Canvas { return s.canvas }

// Resize updates the logical size and notifies resize listeners
func (s *Surface) Resize(w, h float64) {
	s.w, s.h = sanitize(w, h)
	s.Dispatch(Event{Kind: KindResize, Width: s.w, Height: s.h})
}

// Listen registers fn for kind; the returned func removes it and is safe to call repeatedly
func (s *Surface) Listen(kind Kind, fn Handler) (off func()) {
	if kind >= kindCount || fn == nil {
		return func() {}
	}
	s.nextListen++
	id := s.nextListen
	s.listeners[kind] = append(s.listeners[kind], listener{id: id, fn: fn})
	return func() {
		ls := s.listeners[kind]
		for i := range ls {
			if ls[i].id == id {
				s.listeners[kind] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of registered listeners across all kinds
func (s *Surface) ListenerCount() int {
	n := 0
	for _, ls := range s.listeners {
		n += len(ls)
	}
	return n
}

// Dispatch delivers ev synchronously to the listeners registered when it was sent
func (s *Surface) Dispatch(ev Event) {
	if ev.Kind >= kindCount {
		return
	}
	ls := s.listeners[ev.Kind]
	if len(ls) == 0 {
		return
	}
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		l.fn(ev)
	}
}

// RequestFrame queues fn for the next tick
func (s *Surface) RequestFrame(fn FrameFunc) FrameID {
	s.nextFrame++
	s.frames = append(s.frames, frame{id: s.nextFrame, fn: fn})
	return s.nextFrame
}

// CancelFrame drops a queued callback; unknown ids are ignored
func (s *Surface) CancelFrame(id FrameID) {
	for i := range s.frames {
		if s.frames[i].id == id {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return
		}
	}
	// cancelled from inside the tick that is running it
	for i := range s.running {
		if s.running[i].id == id {
			s.running[i].fn = nil
		}
	}
}

// PendingFrames returns the number of queued callbacks
func (s *Surface) PendingFrames() int { return len(s.frames) }

// Tick runs the callbacks queued before the call; callbacks queued during it run next tick
func (s *Surface) Tick(now time.Time) {
	s.running, s.frames = s.frames, s.running[:0]
	for i := range s.running {
		if fn := s.running[i].fn; fn != nil {
			fn(now)
		}
	}
	s.running = s.running[:0]
}

// Mount records the teardown of the engine now owning the surface, tearing down any prior owner
func (s *Surface) Mount(teardown func()) (token uint64) {
	if prev := s.mounted; prev != nil {
		log.Printf("host: replacing mounted engine %d", s.mountID)
		s.mounted = nil
		prev()
	}
	s.mountID++
	s.mounted = teardown
	return s.mountID
}

// Unmount releases ownership if token still owns the surface
func (s *Surface) Unmount(token uint64) {
	if s.mountID == token {
		s.mounted = nil
	}
}

// Mounted reports whether an engine owns the surface
func (s *Surface) Mounted() bool { return s.mounted != nil }
