// Package constellation is the narrative map engine: a perspective particle field of clusters,
// sub-topics and micro-narratives with a 2D overlay of pills, links and hit regions
package constellation

import (
	"log"
	"math"
	"time"

	"github.com/lixenwraith/nri-constellation/blend"
	"github.com/lixenwraith/nri-constellation/host"
	"github.com/lixenwraith/nri-constellation/interact"
	"github.com/lixenwraith/nri-constellation/layout"
	"github.com/lixenwraith/nri-constellation/model"
	"github.com/lixenwraith/nri-constellation/particle"
	"github.com/lixenwraith/nri-constellation/render"
	"github.com/lixenwraith/nri-constellation/vmath"
)

// OfflineReadout replaces the stage readout when the surface cannot render the scene
const OfflineReadout = "3D-Engine offline"

// Camera and scene constants
const (
	cameraFOV      = 52.0
	cameraNear     = 0.1
	cameraFar      = 1000.0
	cameraStartZ   = 108.0
	cameraDistance = 132.0
	cameraEaseXY   = 0.085
	cameraEaseZ    = 0.1
	mouseEase      = 0.032
	entranceTime   = 2.8
)

// Config holds the tunables read from the config file
type Config struct {
	Particles int
	ZoomMin   float64
	ZoomMax   float64
}

// DefaultConfig returns the stock particle budget and zoom range
func DefaultConfig() Config {
	return Config{Particles: particle.DefaultCount, ZoomMin: interact.ZoomMin, ZoomMax: interact.ZoomMax}
}

// Options wires callbacks and collaborators at init time
type Options struct {
	OnCluster func(c model.Cluster)
	OnSub     func(sub model.SubTopic, c model.Cluster)
	OnMicro   func(mic model.MicroNarrative, sub model.SubTopic, c model.Cluster)
	OnHover   func(over bool) // pointer entered or left a clickable region
	Clock     blend.Clock
	Config    Config
	Catalog   *model.Catalog
}

// State is a read-only snapshot of the engine
type State struct {
	Offline     bool
	Zoom        float64
	TargetZoom  float64
	PanX, PanY  float64
	S1, S2      float64
	Entrance    float64
	Stage       string
	Regions     int
	Particles   int
	Width       float64
	Height      float64
	FrameQueued bool
}

// Engine is one mounted constellation map; all methods must be called from the surface's goroutine
type Engine struct {
	surface *host.Surface
	opts    Options
	clock   blend.Clock
	epoch   time.Time

	catalog  *model.Catalog
	clusters []model.Cluster
	nri      map[int]float64
	accents  []render.RGB

	w, h float64

	camera  *render.Camera
	field   *particle.Field
	anchors []layout.MacroAnchor
	world   []layout.WorldPos

	zoom interact.Zoom
	pan  interact.Pan
	drag interact.Drag
	hits interact.HitStack

	mouseTargetX, mouseTargetY float64
	mouseNormX, mouseNormY     float64
	overRegion                 bool

	s1, s2, ent float64

	frameID host.FrameID
	offs    []func()
	token   uint64
	offline bool
	closed  bool
}

// Init mounts a new map on surface, tearing down whatever owned it before
// An unaccelerated surface gets the offline notice only, and the returned teardown does nothing
func Init(surface *host.Surface, opts Options) (*Engine, func()) {
	if opts.Clock == nil {
		opts.Clock = blend.NewSystemClock()
	}
	if opts.Catalog == nil {
		opts.Catalog = model.Default()
	}
	if opts.OnCluster == nil {
		opts.OnCluster = func(model.Cluster) {}
	}
	if opts.OnSub == nil {
		opts.OnSub = func(model.SubTopic, model.Cluster) {}
	}
	if opts.OnMicro == nil {
		opts.OnMicro = func(model.MicroNarrative, model.SubTopic, model.Cluster) {}
	}
	if opts.OnHover == nil {
		opts.OnHover = func(bool) {}
	}
	cfg := opts.Config
	def := DefaultConfig()
	if cfg.Particles <= 0 {
		cfg.Particles = def.Particles
	}
	if cfg.ZoomMin <= 0 || cfg.ZoomMax <= cfg.ZoomMin {
		cfg.ZoomMin, cfg.ZoomMax = def.ZoomMin, def.ZoomMax
	}
	opts.Config = cfg

	now := opts.Clock.Now()
	e := &Engine{
		surface:  surface,
		opts:     opts,
		clock:    opts.Clock,
		epoch:    now,
		catalog:  opts.Catalog,
		clusters: opts.Catalog.Clusters,
		nri:      model.ClusterNRI(opts.Catalog.Clusters, opts.Catalog.NRI.Score),
		zoom:     interact.NewZoom(cfg.ZoomMin, cfg.ZoomMax, 1),
		pan:      interact.NewPan(interact.PanBound),
	}
	for _, c := range e.clusters {
		e.accents = append(e.accents, render.Hex(c.Color, render.RiskCalmRGB))
	}

	if !surface.Accelerated() {
		e.offline = true
		e.closed = true
		e.w, e.h = surface.Size()
		// the notice owns nothing, but a prior engine on the surface still has to go
		surface.Unmount(surface.Mount(func() {}))
		e.drawOffline()
		log.Printf("constellation: surface not accelerated, map offline")
		return e, func() {}
	}

	e.field = particle.Generate(e.clusters, cfg.Particles)
	e.anchors = layout.BuildMacroAnchors(len(e.clusters))

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
	e.camera = render.NewCamera(cameraFOV, e.aspect(), cameraNear, cameraFar, cameraStartZ)
	e.frameID = surface.RequestFrame(e.frame)
	log.Printf("constellation: mounted %.0fx%.0f with %d particles", e.w, e.h, len(e.field.Points))
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
	e.hits.Reset()
	e.surface.Unmount(e.token)
	log.Printf("constellation: torn down")
}

// Resize re-reads the surface size and updates the camera aspect
func (e *Engine) Resize() {
	if e.closed {
		return
	}
	e.w, e.h = e.surface.Size()
	e.surface.Canvas().Resize(e.w, e.h, e.surface.PixelRatio())
	if e.camera != nil {
		e.camera.Aspect = e.aspect()
		e.camera.Update()
	}
}

// aspect is the width over height ratio, with a collapsed side counted as one pixel
func (e *Engine) aspect() float64 {
	return math.Max(1, e.w) / math.Max(1, e.h)
}

// Offline reports whether the map runs without its scene
func (e *Engine) Offline() bool { return e.offline }

// ZoomBy nudges the zoom target, as the on-screen zoom buttons do
func (e *Engine) ZoomBy(delta float64) {
	if e.offline {
		return
	}
	e.zoom.Add(delta)
}

// SetZoom moves the zoom target directly, as the zoom slider does
func (e *Engine) SetZoom(v float64) {
	if e.offline {
		return
	}
	e.zoom.Set(v)
}

// ResetView returns the camera to unit zoom and a centered pan
func (e *Engine) ResetView() {
	if e.offline {
		return
	}
	e.zoom.Set(1)
	e.pan.Reset()
}

// Stage returns the readout for the current zoom target
func (e *Engine) Stage() string {
	if e.offline {
		return OfflineReadout
	}
	return StageLabel(e.zoom.Target)
}

// StageLabel maps a zoom value to its readout text
func StageLabel(zoom float64) string {
	switch particle.StageFor(zoom) {
	case particle.StageMicro:
		return "Mikro"
	case particle.StageSub:
		return "Sub-Cluster"
	}
	return "Makro"
}

// Catalog returns the data the map renders
func (e *Engine) Catalog() *model.Catalog { return e.catalog }

// State snapshots the engine
func (e *Engine) State() State {
	s := State{
		Offline:     e.offline,
		Zoom:        e.zoom.Current,
		TargetZoom:  e.zoom.Target,
		PanX:        e.pan.X,
		PanY:        e.pan.Y,
		S1:          e.s1,
		S2:          e.s2,
		Entrance:    e.ent,
		Stage:       e.Stage(),
		Regions:     e.hits.Len(),
		Width:       e.w,
		Height:      e.h,
		FrameQueued: !e.closed && e.frameID != 0,
	}
	if e.field != nil {
		s.Particles = len(e.field.Points)
	}
	return s
}

// entrance returns the eased fly-in progress at animation time t
func (e *Engine) entrance(t float64) float64 {
	if e.surface.ReducedMotion() {
		return 1
	}
	return vmath.EaseOutQuart(vmath.Clamp01(t / entranceTime))
}

// animTime is seconds since mount, frozen at zero under reduced motion
func (e *Engine) animTime(now time.Time) float64 {
	if e.surface.ReducedMotion() {
		return 0
	}
	return blend.Seconds(e.epoch, now)
}
