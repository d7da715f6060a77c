package actorgraph

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/nri-constellation/blend"
	"github.com/lixenwraith/nri-constellation/host"
	"github.com/lixenwraith/nri-constellation/interact"
	"github.com/lixenwraith/nri-constellation/model"
	"github.com/lixenwraith/nri-constellation/render"
)

type harness struct {
	surface *host.Surface
	clock   *blend.MockClock
	engine  *Engine
	stop    func()
	clicks  []int
	hovers  []int
}

func newHarness(t *testing.T, reduced bool) *harness {
	t.Helper()
	h := &harness{
		surface: host.NewSurface(host.Options{Width: 800, Height: 600, PixelRatio: 1, ReducedMotion: reduced}),
		clock:   blend.NewMockClock(time.Unix(1000, 0)),
	}
	h.engine, h.stop = Init(h.surface, Options{
		Clock:         h.clock,
		OnEntityClick: func(_ model.Actor, i int) { h.clicks = append(h.clicks, i) },
		OnHover:       func(i int) { h.hovers = append(h.hovers, i) },
	})
	t.Cleanup(h.stop)
	return h
}

// run advances the mock clock by d in 16ms ticks
func (h *harness) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += 16 * time.Millisecond {
		h.clock.Advance(16 * time.Millisecond)
		h.surface.Tick(h.clock.Now())
	}
}

func threeActors() *model.Dataset {
	actors := []model.Actor{
		{Name: "A", Role: "Regulator", Reach: "2M", Color: "#ff9966"},
		{Name: "B", Role: "Media", Reach: "900K", Color: "#8e99ac"},
		{Name: "C", Role: "Social", Reach: "40K", Color: "#c2cada"},
	}
	links := []model.ActorLink{{A: "A", B: "B", Weight: 0.9}, {A: "B", B: "C", Weight: 0.5}}
	return &model.Dataset{Key: "three", Actors: actors, Connections: model.ResolveConnections(actors, links, nil)}
}

func (h *harness) screenPos(i int) (float64, float64) {
	e := h.engine
	now := h.clock.Now()
	p := e.place(e.active, nil, i, 1, e.viewValue(now))
	return p.x, p.y
}

func TestIndexValidityAfterSetData(t *testing.T) {
	h := newHarness(t, false)
	h.engine.SetData(model.Default().OverallDataset(), SetOptions{Instant: true})
	h.engine.Lock(17)
	h.engine.setHover(16)
	if s := h.engine.State(); s.Locked != 17 || s.Focus != 17 {
		t.Fatalf("lock not applied: %+v", s)
	}

	small := threeActors()
	h.engine.SetData(small, SetOptions{})
	for frame := 0; frame < 80; frame++ {
		h.run(16 * time.Millisecond)
		x, y := h.screenPos(frame % 3)
		h.surface.Dispatch(host.Event{Kind: host.KindMouseMove, X: x, Y: y})
		s := h.engine.State()
		for _, idx := range []int{s.Hover, s.Focus, s.Locked} {
			if idx != interact.None && idx >= len(small.Actors) {
				t.Fatalf("frame %d: stale index %d", frame, idx)
			}
		}
	}
	if last := h.hovers[len(h.hovers)-1]; last < 0 || last >= 3 {
		t.Errorf("last hover = %d", last)
	}
}

func TestSetDataResetsFocusAndNotifiesHover(t *testing.T) {
	h := newHarness(t, false)
	h.engine.SetData(threeActors(), SetOptions{Instant: true})
	h.engine.Lock(1)
	h.engine.SetData(threeActors(), SetOptions{Instant: true})
	s := h.engine.State()
	if s.Locked != interact.None || s.Focus != interact.None || s.Hover != interact.None {
		t.Errorf("focus not reset: %+v", s)
	}
	if len(h.hovers) != 2 || h.hovers[1] != interact.None {
		t.Errorf("hover notifications = %v", h.hovers)
	}
}

func TestLockImpliesFocus(t *testing.T) {
	h := newHarness(t, false)
	h.engine.SetData(model.Default().OverallDataset(), SetOptions{Instant: true})
	h.engine.Lock(4)
	for _, op := range []func(){
		func() { h.engine.Focus(2) },
		func() { h.engine.Unfocus(4) },
		func() { h.engine.Focus(99) },
		func() { h.engine.Unfocus(2) },
	} {
		op()
		if s := h.engine.State(); s.Focus != s.Locked || s.Active != 4 {
			t.Fatalf("lock broke focus: %+v", s)
		}
	}
}

func TestFocusBeforeDataIsNoop(t *testing.T) {
	h := newHarness(t, false)
	h.engine.Focus(0)
	h.engine.Lock(0)
	h.engine.Unfocus(0)
	if s := h.engine.State(); s.Active != interact.None {
		t.Errorf("active = %d without data", s.Active)
	}
}

func TestDatasetBlendDurations(t *testing.T) {
	tests := []struct {
		name  string
		cone  bool
		after time.Duration
		done  bool
	}{
		{"flat mid", false, 400 * time.Millisecond, false},
		{"flat done", false, 900 * time.Millisecond, true},
		{"cone mid", true, 900 * time.Millisecond, false},
		{"cone done", true, 1300 * time.Millisecond, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, false)
			h.engine.SetConeMode(tt.cone, SetOptions{Instant: true})
			h.engine.SetData(model.Default().OverallDataset(), SetOptions{})
			if h.engine.State().Previous {
				t.Fatal("first dataset should never cross-fade")
			}
			h.engine.SetData(threeActors(), SetOptions{})
			if !h.engine.State().Previous {
				t.Fatal("second dataset should cross-fade")
			}
			h.run(tt.after)
			s := h.engine.State()
			if s.Previous == tt.done {
				t.Errorf("after %v previous=%v blend=%v", tt.after, s.Previous, s.DataBlend)
			}
		})
	}
}

func TestInstantSkipsBlends(t *testing.T) {
	h := newHarness(t, false)
	h.engine.SetData(model.Default().OverallDataset(), SetOptions{})
	h.engine.SetData(threeActors(), SetOptions{Instant: true})
	if s := h.engine.State(); s.Previous || s.DataBlend != 1 {
		t.Errorf("instant swap cross-faded: %+v", s)
	}
	h.engine.SetConeMode(true, SetOptions{Instant: true})
	if got := h.engine.State().ViewBlend; got != 1 {
		t.Errorf("instant cone view blend = %v", got)
	}
	h.engine.SetData(model.Default().OverallDataset(), SetOptions{})
	if !h.engine.State().Previous {
		t.Error("zero options should cross-fade")
	}
}

func TestReducedMotionSkipsBlends(t *testing.T) {
	h := newHarness(t, true)
	h.engine.SetConeMode(true, SetOptions{})
	if got := h.engine.State().ViewBlend; got != 1 {
		t.Errorf("view blend = %v, want 1 immediately", got)
	}

	h.engine.SetData(model.Default().OverallDataset(), SetOptions{})
	h.engine.SetData(threeActors(), SetOptions{})
	if s := h.engine.State(); s.Previous || s.DataBlend != 1 {
		t.Errorf("reduced motion cross-faded: %+v", s)
	}
}

func TestViewBlendAnimates(t *testing.T) {
	h := newHarness(t, false)
	h.engine.SetData(model.Default().OverallDataset(), SetOptions{Instant: true})
	h.engine.SetConeMode(true, SetOptions{})
	if got := h.engine.State().ViewBlend; got != 0 {
		t.Fatalf("view blend at start = %v", got)
	}
	h.run(500 * time.Millisecond)
	mid := h.engine.State().ViewBlend
	if mid <= 0 || mid >= 1 {
		t.Errorf("view blend mid = %v", mid)
	}
	h.run(700 * time.Millisecond)
	if got := h.engine.State().ViewBlend; got != 1 {
		t.Errorf("view blend end = %v", got)
	}

	h.engine.SetConeMode(false, SetOptions{})
	h.run(800 * time.Millisecond)
	if got := h.engine.State().ViewBlend; got != 0 {
		t.Errorf("leaving cone ended at %v", got)
	}
}

func TestTeardownIdempotent(t *testing.T) {
	h := newHarness(t, false)
	h.engine.SetData(threeActors(), SetOptions{Instant: true})
	h.run(50 * time.Millisecond)

	h.stop()
	h.stop()
	if n := h.surface.ListenerCount(); n != 0 {
		t.Errorf("listeners left: %d", n)
	}
	if n := h.surface.PendingFrames(); n != 0 {
		t.Errorf("frames left: %d", n)
	}
	if h.surface.Mounted() {
		t.Error("surface still mounted")
	}
	h.run(50 * time.Millisecond)
	h.engine.SetData(threeActors(), SetOptions{Instant: true})
}

func TestReinitTearsDownPrior(t *testing.T) {
	h := newHarness(t, false)
	perEngine := h.surface.ListenerCount()

	second, stop := Init(h.surface, Options{Clock: h.clock})
	defer stop()
	if !h.engine.closed {
		t.Error("first engine still running")
	}
	if got := h.surface.ListenerCount(); got != perEngine {
		t.Errorf("listeners = %d, want %d", got, perEngine)
	}
	if got := h.surface.PendingFrames(); got != 1 {
		t.Errorf("frames = %d, want 1", got)
	}
	h.stop()
	if !h.surface.Mounted() || second.closed {
		t.Error("stale teardown affected the new engine")
	}
}

func TestResizeToZeroWidth(t *testing.T) {
	h := newHarness(t, false)
	h.engine.SetData(model.Default().OverallDataset(), SetOptions{Instant: true})
	h.run(32 * time.Millisecond)

	h.surface.Resize(0, 600)
	h.run(32 * time.Millisecond)
	s := h.engine.State()
	if s.BackingW < 1 || s.BackingH != 600 {
		t.Errorf("backing = %dx%d", s.BackingW, s.BackingH)
	}
	h.stop()
}

func TestClickLocksAndMissClears(t *testing.T) {
	h := newHarness(t, false)
	h.engine.SetData(threeActors(), SetOptions{Instant: true})
	h.run(16 * time.Millisecond)

	x, y := h.screenPos(1)
	h.surface.Dispatch(host.Event{Kind: host.KindMouseDown, X: x, Y: y})
	h.surface.Dispatch(host.Event{Kind: host.KindMouseUp, X: x + 2, Y: y})
	if len(h.clicks) != 1 || h.clicks[0] != 1 {
		t.Fatalf("clicks = %v", h.clicks)
	}
	if s := h.engine.State(); s.Locked != 1 || s.Focus != 1 {
		t.Errorf("click did not lock: %+v", s)
	}

	h.surface.Dispatch(host.Event{Kind: host.KindMouseDown, X: -400, Y: -400})
	h.surface.Dispatch(host.Event{Kind: host.KindMouseUp, X: -400, Y: -400})
	if s := h.engine.State(); s.Locked != interact.None || s.Focus != interact.None {
		t.Errorf("miss did not clear: %+v", s)
	}
	if len(h.clicks) != 1 {
		t.Errorf("miss fired click callback")
	}
}

func TestDragPansWithoutClick(t *testing.T) {
	h := newHarness(t, false)
	h.engine.SetData(threeActors(), SetOptions{Instant: true})
	x, y := h.screenPos(0)
	h.surface.Dispatch(host.Event{Kind: host.KindMouseDown, X: x, Y: y})
	h.surface.Dispatch(host.Event{Kind: host.KindMouseMove, X: x + 50, Y: y})
	h.surface.Dispatch(host.Event{Kind: host.KindMouseUp, X: x + 50, Y: y})
	if len(h.clicks) != 0 {
		t.Error("drag fired a click")
	}
	if s := h.engine.State(); math.Abs(s.PanX+5) > 1e-9 {
		t.Errorf("pan x = %v, want -5", s.PanX)
	}
}

func TestPanKeepsGraphOnScreen(t *testing.T) {
	h := newHarness(t, false)
	h.engine.SetData(model.Default().OverallDataset(), SetOptions{Instant: true})
	h.run(16 * time.Millisecond)

	x, y := 10.0, 300.0
	h.surface.Dispatch(host.Event{Kind: host.KindMouseDown, X: x, Y: y})
	for i := 0; i < 50; i++ {
		x += 100
		h.surface.Dispatch(host.Event{Kind: host.KindMouseMove, X: x, Y: y})
	}
	h.surface.Dispatch(host.Event{Kind: host.KindMouseUp, X: x, Y: y})
	h.run(64 * time.Millisecond)

	s := h.engine.State()
	if bound := 600 * panReach / panPixels; math.Abs(s.PanX+bound) > 1e-9 {
		t.Errorf("pan x = %v, want -%v", s.PanX, bound)
	}
	visible := 0
	for i := 0; i < s.Actors; i++ {
		if px, py := h.screenPos(i); px >= 0 && px <= s.Width && py >= 0 && py <= s.Height {
			visible++
		}
	}
	if visible == 0 {
		t.Error("a long drag pushed every actor off screen")
	}

	h.surface.Resize(200, 100)
	if s := h.engine.State(); math.Abs(s.PanX) > 100*panReach/panPixels+1e-9 {
		t.Errorf("pan x = %v not pulled in on shrink", s.PanX)
	}
}

func TestResetView(t *testing.T) {
	h := newHarness(t, false)
	h.engine.SetData(threeActors(), SetOptions{Instant: true})
	h.engine.ZoomBy(1)
	h.surface.Dispatch(host.Event{Kind: host.KindMouseDown, X: 100, Y: 100})
	h.surface.Dispatch(host.Event{Kind: host.KindMouseMove, X: 180, Y: 140})
	h.surface.Dispatch(host.Event{Kind: host.KindMouseUp, X: 180, Y: 140})
	if s := h.engine.State(); s.PanX == 0 || s.PanY == 0 || s.TargetZoom == 1 {
		t.Fatalf("setup did not move the view: %+v", s)
	}
	h.engine.ResetView()
	if s := h.engine.State(); s.PanX != 0 || s.PanY != 0 || s.TargetZoom != 1 {
		t.Errorf("view not reset: %+v", s)
	}
}

func TestWheelZoomClamped(t *testing.T) {
	h := newHarness(t, false)
	for i := 0; i < 50; i++ {
		h.surface.Dispatch(host.Event{Kind: host.KindWheel, DeltaY: -1000})
		h.run(16 * time.Millisecond)
		s := h.engine.State()
		if s.Zoom < interact.ZoomMin || s.Zoom > interact.ZoomMax || s.TargetZoom > interact.ZoomMax {
			t.Fatalf("zoom out of range: %+v", s)
		}
	}
	if h.engine.State().TargetZoom != interact.ZoomMax {
		t.Error("target should pin at max")
	}
}

func TestLabelCompaction(t *testing.T) {
	overall := model.Default().OverallDataset()
	twenty := &model.Dataset{Actors: append(append([]model.Actor{}, overall.Actors...), overall.Actors[:2]...)}
	eight := &model.Dataset{Actors: overall.Actors[:8]}

	crowded := buildRuntime(twenty, 800, 600)
	if len(crowded.Actors) != 20 || !crowded.Labels.Crowded {
		t.Fatalf("20 actors should be crowded")
	}
	for i, a := range crowded.Actors {
		l := crowded.Labels.Decide(a.Name, i, 0)
		if i == 0 {
			if l.Text != a.Name {
				t.Errorf("active label compacted: %q", l.Text)
			}
			continue
		}
		if l.Text != render.CompactName(a.Name) {
			t.Errorf("label %d = %q, want compacted", i, l.Text)
		}
	}

	sparse := buildRuntime(eight, 800, 600)
	for i, a := range sparse.Actors {
		if l := sparse.Labels.Decide(a.Name, i, render.NoActive); l.Text != a.Name || !l.ShowReach {
			t.Errorf("8 actors: label %+v", l)
		}
	}
}

func TestRuntimeSkipsDanglingConnections(t *testing.T) {
	ds := threeActors()
	ds.Connections = append(ds.Connections, model.ActorConnection{From: 2, To: 9, Weight: 1})
	rt := buildRuntime(ds, 800, 600)
	if len(rt.Connections) != 2 {
		t.Errorf("connections = %d, want 2", len(rt.Connections))
	}
	for _, p := range rt.Particles {
		if p.Actor < 0 || p.Actor >= len(rt.Actors) {
			t.Fatalf("particle owner %d out of range", p.Actor)
		}
	}
}

func TestFramesDrawNodes(t *testing.T) {
	h := newHarness(t, false)
	h.engine.SetData(threeActors(), SetOptions{Instant: true})
	h.run(16 * time.Millisecond)

	x, y := h.screenPos(0)
	c := h.surface.Canvas()
	if got := c.At(int(x), int(y)); got == backgroundColor {
		t.Errorf("no node drawn at %v,%v", x, y)
	}

	h.engine.SetConeMode(true, SetOptions{})
	h.engine.SetData(model.Default().OverallDataset(), SetOptions{})
	h.run(1500 * time.Millisecond)
	if s := h.engine.State(); s.ViewBlend != 1 || s.Previous {
		t.Errorf("transitions did not settle: %+v", s)
	}
}

func TestConnectionsTableAndDetail(t *testing.T) {
	ds := threeActors()
	rows := TopConnections(ds, ConnectionLimit)
	if len(rows) != 2 || rows[0].From != "A" || rows[0].To != "B" || rows[1].From != "B" {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].Strength != "Strong" || rows[1].Strength != "Weak" {
		t.Errorf("strengths = %s %s", rows[0].Strength, rows[1].Strength)
	}

	text := Detail(ds, 1)
	for _, want := range []string{"Media with a reach of 900K", "Overall constellation", "A (Strong)", "C (Weak)"} {
		if !strings.Contains(text, want) {
			t.Errorf("detail %q missing %q", text, want)
		}
	}
	if Detail(ds, 7) != "" {
		t.Error("out of range detail should be empty")
	}
	if got := TopConnections(&model.Dataset{}, ConnectionLimit); len(got) != 0 {
		t.Errorf("empty dataset rows = %v", got)
	}
}
