package host

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/nri-constellation/blend"
)

func TestSurfaceSanitizesSize(t *testing.T) {
	s := NewSurface(Options{Width: -5, Height: 600, PixelRatio: 3})
	if w, h := s.Size(); w != 0 || h != 600 {
		t.Errorf("size = %vx%v", w, h)
	}
	if s.PixelRatio() != 2 {
		t.Errorf("ratio = %v, want capped 2", s.PixelRatio())
	}
}

func TestListenOffIdempotent(t *testing.T) {
	s := NewSurface(Options{})
	calls := 0
	off := s.Listen(KindMouseMove, func(Event) { calls++ })
	keep := s.Listen(KindMouseMove, func(Event) { calls += 10 })
	defer keep()

	s.Dispatch(Event{Kind: KindMouseMove})
	if calls != 11 {
		t.Fatalf("calls = %d", calls)
	}
	off()
	off()
	if s.ListenerCount() != 1 {
		t.Fatalf("listeners = %d, want 1", s.ListenerCount())
	}
	s.Dispatch(Event{Kind: KindMouseMove})
	if calls != 21 {
		t.Errorf("calls = %d after off", calls)
	}
}

func TestDispatchRemovalDuringDelivery(t *testing.T) {
	s := NewSurface(Options{})
	var order []string
	var offB func()
	s.Listen(KindKey, func(Event) {
		order = append(order, "a")
		offB()
	})
	offB = s.Listen(KindKey, func(Event) { order = append(order, "b") })

	s.Dispatch(Event{Kind: KindKey})
	s.Dispatch(Event{Kind: KindKey})
	if len(order) != 3 || order[2] != "a" {
		t.Errorf("order = %v", order)
	}
}

func TestResizeNotifies(t *testing.T) {
	s := NewSurface(Options{Width: 800, Height: 600})
	var got Event
	s.Listen(KindResize, func(ev Event) { got = ev })
	s.Resize(0, 600)
	if got.Kind != KindResize || got.Width != 0 || got.Height != 600 {
		t.Errorf("resize event = %+v", got)
	}
}

func TestFrameQueueTickSemantics(t *testing.T) {
	s := NewSurface(Options{})
	clock := blend.NewMockClock(time.Unix(0, 0))
	runs := 0

	var loop FrameFunc
	loop = func(time.Time) {
		runs++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	s.Tick(clock.Now())
	if runs != 1 || s.PendingFrames() != 1 {
		t.Fatalf("after tick 1: runs=%d pending=%d", runs, s.PendingFrames())
	}
	s.Tick(clock.Now())
	if runs != 2 {
		t.Fatalf("requeued frame ran %d times", runs)
	}
}

func TestCancelFrame(t *testing.T) {
	s := NewSurface(Options{})
	ran := false
	id := s.RequestFrame(func(time.Time) { ran = true })
	s.CancelFrame(id)
	s.CancelFrame(id)
	s.CancelFrame(9999)
	s.Tick(time.Now())
	if ran || s.PendingFrames() != 0 {
		t.Error("cancelled frame ran")
	}

	var second FrameID
	s.RequestFrame(func(time.Time) { s.CancelFrame(second) })
	second = s.RequestFrame(func(time.Time) { ran = true })
	s.Tick(time.Now())
	if ran {
		t.Error("frame cancelled mid-tick still ran")
	}
}

func TestMountReplacesPrior(t *testing.T) {
	s := NewSurface(Options{})
	torn := 0
	var first uint64
	first = s.Mount(func() {
		torn++
		s.Unmount(first)
	})
	second := s.Mount(func() {})
	if torn != 1 {
		t.Fatalf("prior teardown ran %d times", torn)
	}
	s.Unmount(first)
	if !s.Mounted() {
		t.Error("stale token unmounted the new owner")
	}
	s.Unmount(second)
	if s.Mounted() {
		t.Error("owner token did not unmount")
	}
}

func newTestTerminal(t *testing.T, opts TerminalOptions) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := NewSimulation(20, 10)
	term, err := NewTerminal(sim, opts)
	if err != nil {
		t.Fatalf("NewTerminal: %v", err)
	}
	t.Cleanup(term.Close)
	return term, sim
}

func TestTerminalSurfaceSize(t *testing.T) {
	term, _ := newTestTerminal(t, TerminalOptions{Color: "truecolor"})
	if w, h := term.Surface().Size(); w != 160 || h != 160 {
		t.Errorf("surface = %vx%v, want 160x160", w, h)
	}
	if !term.Surface().Accelerated() {
		t.Error("forced truecolor should be accelerated")
	}

	mono, _ := newTestTerminal(t, TerminalOptions{Color: "mono"})
	if mono.Surface().Accelerated() {
		t.Error("mono should not be accelerated")
	}
}

func TestTerminalMouseTranslation(t *testing.T) {
	term, _ := newTestTerminal(t, TerminalOptions{})
	var kinds []Kind
	var last Event
	for _, k := range []Kind{KindMouseDown, KindMouseMove, KindMouseUp, KindWheel} {
		term.Surface().Listen(k, func(ev Event) {
			kinds = append(kinds, ev.Kind)
			last = ev
		})
	}

	events := []tcell.Event{
		tcell.NewEventMouse(2, 3, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(4, 3, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(4, 3, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(4, 3, tcell.WheelDown, tcell.ModNone),
	}
	for _, ev := range events {
		if err := term.Handle(ev); err != nil {
			t.Fatalf("Handle: %v", err)
		}
	}

	want := []Kind{KindMouseDown, KindMouseMove, KindMouseUp, KindWheel}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, kinds[i], want[i])
		}
	}
	if last.X != 36 || last.Y != 56 || last.DeltaY != wheelStep {
		t.Errorf("wheel event = %+v", last)
	}
}

func TestTerminalKeysAndResize(t *testing.T) {
	pressed := 0
	term, _ := newTestTerminal(t, TerminalOptions{
		Keys: func(ev *tcell.EventKey) error {
			if ev.Rune() == 'q' {
				return ErrQuit
			}
			pressed++
			return nil
		},
	})

	if err := term.Handle(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone)); err != nil || pressed != 1 {
		t.Errorf("key c: err=%v pressed=%d", err, pressed)
	}
	if err := term.Handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); err != ErrQuit {
		t.Errorf("key q: err=%v", err)
	}

	resized := false
	term.Surface().Listen(KindResize, func(Event) { resized = true })
	if err := term.Handle(tcell.NewEventResize(30, 12)); err != nil {
		t.Fatal(err)
	}
	if w, h := term.Surface().Size(); !resized || w != 240 || h != 192 {
		t.Errorf("resize: notified=%v size=%vx%v", resized, w, h)
	}
}

func TestTerminalRunQuitsOnEscape(t *testing.T) {
	term, sim := newTestTerminal(t, TerminalOptions{FPS: 120})
	ticks := 0
	var loop FrameFunc
	loop = func(time.Time) {
		ticks++
		term.Surface().RequestFrame(loop)
	}
	term.Surface().RequestFrame(loop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		time.Sleep(50 * time.Millisecond)
		sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	}()
	if err := term.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctx.Err() != nil {
		t.Error("Run ended by timeout instead of escape")
	}
}

func TestPollReturnsWhenNobodyReceives(t *testing.T) {
	term, sim := newTestTerminal(t, TerminalOptions{})
	events := make(chan tcell.Event)
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		term.poll(events, done)
		close(exited)
	}()

	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	close(done)
	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("poller still blocked on a send after the loop ended")
	}
}
