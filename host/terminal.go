package host

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/nri-constellation/blend"
)

// DefaultFPS paces the frame ticker
const DefaultFPS = 60

// wheelStep is the pixel delta reported per wheel notch
const wheelStep = 100.0

// ErrQuit is returned by a KeyFunc to stop the loop
var ErrQuit = errors.New("quit")

// KeyFunc handles a key event that no listener consumed; returning ErrQuit ends Run
type KeyFunc func(ev *tcell.EventKey) error

// OverlayFunc draws on top of the flushed canvas, typically a status line
type OverlayFunc func(screen tcell.Screen)

// TerminalOptions configures the tcell driver
type TerminalOptions struct {
	FPS           int
	CellWidth     int
	CellHeight    int
	PixelRatio    float64
	ReducedMotion bool
	Color         string // auto, truecolor, 256, mono
	Clock         blend.Clock
	Keys          KeyFunc
	Overlay       OverlayFunc
}

// Terminal drives a Surface from a tcell screen
type Terminal struct {
	screen  tcell.Screen
	surface *Surface
	opts    TerminalOptions
	clock   blend.Clock

	buttons tcell.ButtonMask
	inside  bool

	finiOnce sync.Once
}

// NewTerminal sizes a surface to screen; a nil screen opens and initializes the real terminal
// A non-nil screen must already be initialized
func NewTerminal(screen tcell.Screen, opts TerminalOptions) (*Terminal, error) {
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return nil, fmt.Errorf("init screen: %w", err)
		}
	}
	screen.EnableMouse()
	screen.HideCursor()

	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = 8
	}
	if opts.CellHeight <= 1 {
		opts.CellHeight = 16
	}
	clock := opts.Clock
	if clock == nil {
		clock = blend.NewSystemClock()
	}

	cols, rows := screen.Size()
	t := &Terminal{
		screen: screen,
		opts:   opts,
		clock:  clock,
	}
	t.surface = NewSurface(Options{
		Width:         float64(cols * opts.CellWidth),
		Height:        float64(rows * opts.CellHeight),
		PixelRatio:    opts.PixelRatio,
		CellWidth:     opts.CellWidth,
		CellHeight:    opts.CellHeight,
		Accelerated:   Accelerated(screen, opts.Color),
		ReducedMotion: opts.ReducedMotion,
	})
	log.Printf("host: terminal %dx%d cells, colors=%d accelerated=%v", cols, rows, screen.Colors(), t.surface.Accelerated())
	return t, nil
}

// NewSimulation returns an initialized simulation screen of w×h cells
func NewSimulation(w, h int) tcell.SimulationScreen {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err == nil {
		s.SetSize(w, h)
	}
	return s
}

// Accelerated reports whether a screen can show the particle layer
func Accelerated(screen tcell.Screen, mode string) bool {
	switch mode {
	case "truecolor", "true", "24bit", "256":
		return true
	case "mono", "none":
		return false
	}
	return screen.Colors() >= 256
}

// Surface returns the driven surface
func (t *Terminal) Surface() *Surface { return t.surface }

// Screen returns the underlying screen
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Close restores the terminal; safe to call more than once
func (t *Terminal) Close() {
	t.finiOnce.Do(t.screen.Fini)
}

// crash restores the terminal and reports a recovered panic with its stack
func (t *Terminal) crash(where string, r any) error {
	t.Close()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s CRASHED: %v\x1b[0m\r\n", where, r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	return fmt.Errorf("%s crashed: %v", where, r)
}

// Run pumps events and frames until ctx ends, a key handler quits or the screen closes
func (t *Terminal) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = t.crash("RENDER LOOP", r)
		}
	}()

	frameTicker := time.NewTicker(time.Second / time.Duration(t.opts.FPS))
	defer frameTicker.Stop()

	eventChan := make(chan tcell.Event, 256)
	crashChan := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crashChan <- t.crash("EVENT POLLER", r)
			}
		}()
		t.poll(eventChan, done)
	}()

	t.draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-crashChan:
			return err

		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			if err := t.Handle(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}

		case <-frameTicker.C:
			t.surface.Tick(t.clock.Now())
			t.draw()
		}
	}
}

// poll forwards screen events until the screen closes or done is closed
func (t *Terminal) poll(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (t *Terminal) draw() {
	t.surface.Canvas().Flush(t.screen, 0, 0)
	if t.opts.Overlay != nil {
		t.opts.Overlay(t.screen)
	}
	t.screen.Show()
}

// Handle translates one tcell event into surface events
func (t *Terminal) Handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.screen.Sync()
		t.surface.Resize(float64(cols*t.opts.CellWidth), float64(rows*t.opts.CellHeight))

	case *tcell.EventMouse:
		t.handleMouse(ev)

	case *tcell.EventKey:
		t.surface.Dispatch(Event{Kind: KindKey, Key: ev.Key(), Rune: ev.Rune(), Mod: ev.Modifiers()})
		if t.opts.Keys != nil {
			return t.opts.Keys(ev)
		}
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return ErrQuit
		}
	}
	return nil
}

// CellCenter maps a cell to the logical pixel at its center
func (t *Terminal) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * float64(t.opts.CellWidth), (float64(row) + 0.5) * float64(t.opts.CellHeight)
}

func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	x, y := t.CellCenter(col, row)
	cols, rows := t.screen.Size()
	btn := ev.Buttons()

	switch {
	case btn&tcell.WheelUp != 0:
		t.surface.Dispatch(Event{Kind: KindWheel, X: x, Y: y, DeltaY: -wheelStep})
		return
	case btn&tcell.WheelDown != 0:
		t.surface.Dispatch(Event{Kind: KindWheel, X: x, Y: y, DeltaY: wheelStep})
		return
	}

	inside := col >= 0 && row >= 0 && col < cols && row < rows
	if t.inside && !inside {
		t.inside = false
		t.surface.Dispatch(Event{Kind: KindMouseLeave, X: x, Y: y})
		return
	}
	t.inside = inside

	pressed := btn & tcell.Button1
	switch {
	case pressed != 0 && t.buttons&tcell.Button1 == 0:
		t.surface.Dispatch(Event{Kind: KindMouseDown, X: x, Y: y})
	case pressed == 0 && t.buttons&tcell.Button1 != 0:
		t.surface.Dispatch(Event{Kind: KindMouseUp, X: x, Y: y})
	default:
		t.surface.Dispatch(Event{Kind: KindMouseMove, X: x, Y: y})
	}
	t.buttons = btn
}
