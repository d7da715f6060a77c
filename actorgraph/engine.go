// Package actorgraph is the actor network engine: golden-angle layout, orbiting particle clouds,
// weighted connection curves and an optional cone presentation, mounted on a host surface
package actorgraph

import (
	"log"
	"math"
	"time"

	"github.com/lixenwraith/nri-constellation/blend"
	"github.com/lixenwraith/nri-constellation/host"
	"github.com/lixenwraith/nri-constellation/interact"
	"github.com/lixenwraith/nri-constellation/layout"
	"github.com/lixenwraith/nri-constellation/model"
	"github.com/lixenwraith/nri-constellation/vmath"
)

// HitMargin extends every node radius for pointer hit-testing
const HitMargin = 10.0

// Config holds the tunables read from the config file
type Config struct {
	ZoomMin float64
	ZoomMax float64
}

// DefaultConfig returns the stock zoom range
func DefaultConfig() Config {
	return Config{ZoomMin: interact.ZoomMin, ZoomMax: interact.ZoomMax}
}

// Options wires callbacks and collaborators at init time
type Options struct {
	OnEntityClick func(actor model.Actor, index int)
	OnHover       func(index int) // interact.None when nothing is hovered
	Clock         blend.Clock
	Config        Config
}

// SetOptions controls a dataset or view swap; the zero value animates
type SetOptions struct {
	Instant bool
}

// State is a read-only snapshot of the engine
type State struct {
	Actors      int
	Hover       int
	Focus       int
	Locked      int
	Active      int
	Zoom        float64
	TargetZoom  float64
	PanX, PanY  float64
	DataBlend   float64
	ViewBlend   float64
	Cone        bool
	Previous    bool
	Width       float64
	Height      float64
	BackingW    int
	BackingH    int
	Scope       string
	FrameQueued bool
}

// Engine is one mounted actor graph; all methods must be called from the surface's goroutine
type Engine struct {
	surface *host.Surface
	opts    Options
	clock   blend.Clock
	epoch   time.Time

	w, h   float64
	cx, cy float64

	active   *runtime
	previous *runtime

	focus     interact.Focus
	dataBlend blend.Blend
	viewBlend blend.Blend
	cone      bool

	zoom interact.Zoom
	pan  interact.Pan
	drag interact.Drag

	projector layout.ConeProjector
	scratch   frameScratch

	frameID  host.FrameID
	lastTick time.Time
	offs     []func()
	token    uint64
	closed   bool
}

// Init mounts a new engine on surface, tearing down whatever owned it before
// The returned teardown is idempotent
func Init(surface *host.Surface, opts Options) (*Engine, func()) {
	if opts.Clock == nil {
		opts.Clock = blend.NewSystemClock()
	}
	if opts.OnHover == nil {
		opts.OnHover = func(int) {}
	}
	if opts.OnEntityClick == nil {
		opts.OnEntityClick = func(model.Actor, int) {}
	}
	cfg := opts.Config
	if cfg.ZoomMin <= 0 || cfg.ZoomMax <= cfg.ZoomMin {
		cfg = DefaultConfig()
	}

	now := opts.Clock.Now()
	e := &Engine{
		surface:   surface,
		opts:      opts,
		clock:     opts.Clock,
		epoch:     now,
		lastTick:  now,
		focus:     interact.NewFocus(),
		dataBlend: blend.New(1, vmath.EaseInOutCubic),
		viewBlend: blend.New(0, vmath.EaseInOutSine),
		zoom:      interact.NewZoom(cfg.ZoomMin, cfg.ZoomMax, 1),
		pan:       interact.NewPan(interact.PanBound),
	}

	e.token = surface.Mount(e.Teardown)
	e.offs = append(e.offs,
		surface.Listen(host.KindMouseMove, e.onPointerMove),
		surface.Listen(host.KindMouseDown, e.onPointerDown),
		surface.Listen(host.KindMouseUp, e.onPointerUp),
		surface.Listen(host.KindMouseLeave, e.onPointerLeave),
		surface.Listen(host.KindTouchStart, e.onTouchStart),
		surface.Listen(host.KindTouchMove, e.onTouchMove),
		surface.Listen(host.KindTouchEnd, e.onTouchEnd),
		surface.Listen(host.KindWheel, e.onWheel),
		surface.Listen(host.KindResize, func(host.Event) { e.Resize() }),
	)

	e.Resize()
	e.frameID = surface.RequestFrame(e.frame)
	log.Printf("actorgraph: mounted %.0fx%.0f", e.w, e.h)
	return e, e.Teardown
}

// Teardown cancels the pending frame and removes every listener
func (e *Engine) Teardown() {
	if e.closed {
		return
	}
	e.closed = true
	e.surface.CancelFrame(e.frameID)
	for _, off := range e.offs {
		off()
	}
	e.offs = nil
	e.surface.Unmount(e.token)
	log.Printf("actorgraph: torn down")
}

// Resize re-reads the surface size and rebuilds both runtime datasets without a blend
func (e *Engine) Resize() {
	if e.closed {
		return
	}
	e.w, e.h = e.surface.Size()
	e.surface.Canvas().Resize(e.w, e.h, e.surface.PixelRatio())
	e.cx, e.cy = layout.Center(e.w, e.h)
	e.projector = layout.NewConeProjector(e.w, e.h)
	e.pan.SetBound(math.Min(e.w, e.h) * panReach / panPixels)

	if e.active != nil {
		e.active = buildRuntime(e.active.Base, e.w, e.h)
		e.focus.Clamp(len(e.active.Actors))
	}
	if e.previous != nil {
		e.previous = buildRuntime(e.previous.Base, e.w, e.h)
	}
}

func (e *Engine) reduced() bool {
	return e.surface.ReducedMotion()
}

// SetData swaps the active dataset, cross-fading from the prior one unless opts.Instant
// Hover, focus and lock are cleared because their indices refer to the old dataset
func (e *Engine) SetData(ds *model.Dataset, opts SetOptions) {
	if e.closed {
		return
	}
	now := e.clock.Now()
	rt := buildRuntime(ds, e.w, e.h)

	if e.active != nil && !opts.Instant && !e.reduced() {
		e.previous = e.active
		d := blend.DatasetDuration
		if e.cone {
			d = blend.DatasetConeDuration
		}
		e.dataBlend.Start(0, 1, now, d)
	} else {
		e.previous = nil
		e.dataBlend.Snap(1)
	}

	e.active = rt
	e.focus.Reset()
	e.opts.OnHover(interact.None)
	log.Printf("actorgraph: dataset %q with %d actors, %d connections", rt.Base.Key, len(rt.Actors), len(rt.Connections))
}

// SetConeMode toggles the cone presentation
func (e *Engine) SetConeMode(enabled bool, opts SetOptions) {
	if e.closed {
		return
	}
	now := e.clock.Now()
	e.cone = enabled
	target, d := 0.0, blend.ViewLeaveDuration
	if enabled {
		target, d = 1, blend.ViewEnterDuration
	}
	if opts.Instant || e.reduced() {
		e.viewBlend.Snap(target)
		return
	}
	e.viewBlend.Retarget(target, now, d)
}

// Cone reports whether cone mode is engaged
func (e *Engine) Cone() bool { return e.cone }

// Focus emphasizes index unless another entity is locked
func (e *Engine) Focus(index int) {
	if e.active == nil {
		return
	}
	e.focus.SetFocus(index, len(e.active.Actors))
}

// Unfocus drops focus from index; no-op while locked
func (e *Engine) Unfocus(index int) {
	if e.active == nil {
		return
	}
	e.focus.Unfocus(index)
}

// Lock locks and focuses index
func (e *Engine) Lock(index int) {
	if e.active == nil {
		return
	}
	e.focus.Lock(index, len(e.active.Actors))
}

// ZoomBy nudges the zoom target, as the on-screen zoom buttons do
func (e *Engine) ZoomBy(delta float64) {
	e.zoom.Add(delta)
}

// ResetView returns the camera to unit zoom and a centered pan
func (e *Engine) ResetView() {
	e.zoom.Set(1)
	e.pan.Reset()
}

// Dataset returns the active base dataset or nil
func (e *Engine) Dataset() *model.Dataset {
	if e.active == nil {
		return nil
	}
	return e.active.Base
}

// State snapshots the engine at the clock's current time
func (e *Engine) State() State {
	now := e.clock.Now()
	bw, bh := e.surface.Canvas().Backing()
	s := State{
		Hover:       e.focus.Hover,
		Focus:       e.focus.Focus,
		Locked:      e.focus.Locked,
		Active:      e.focus.Active(),
		Zoom:        e.zoom.Current,
		TargetZoom:  e.zoom.Target,
		PanX:        e.pan.X,
		PanY:        e.pan.Y,
		DataBlend:   e.datasetBlend(now),
		ViewBlend:   e.viewValue(now),
		Cone:        e.cone,
		Previous:    e.previous != nil,
		Width:       e.w,
		Height:      e.h,
		BackingW:    bw,
		BackingH:    bh,
		FrameQueued: !e.closed && e.frameID != 0,
	}
	if e.active != nil {
		s.Actors = len(e.active.Actors)
		s.Scope = e.active.Base.ScopeLabel()
	}
	return s
}

// datasetBlend is 1 when no cross-fade is running
func (e *Engine) datasetBlend(now time.Time) float64 {
	if e.previous == nil || e.reduced() {
		return 1
	}
	return e.dataBlend.Value(now)
}

func (e *Engine) viewValue(now time.Time) float64 {
	if e.reduced() {
		e.viewBlend.Snap(e.viewBlend.To)
	}
	return vmath.Clamp01(e.viewBlend.Value(now))
}
