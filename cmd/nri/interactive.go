package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/nri-constellation/actorgraph"
	"github.com/lixenwraith/nri-constellation/audio"
	"github.com/lixenwraith/nri-constellation/constellation"
	"github.com/lixenwraith/nri-constellation/host"
	"github.com/lixenwraith/nri-constellation/interact"
	"github.com/lixenwraith/nri-constellation/model"
)

var (
	statusStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(15, 23, 42)).Foreground(tcell.NewRGBColor(203, 213, 225))
	detailStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(15, 23, 42)).Foreground(tcell.NewRGBColor(148, 163, 184))
)

// drawLine fills row with text on style, truncated to the screen width
func drawLine(screen tcell.Screen, row int, text string, style tcell.Style) {
	cols, rows := screen.Size()
	if row < 0 || row >= rows {
		return
	}
	text = runewidth.Truncate(text, cols, "…")
	col := 0
	for _, r := range text {
		screen.SetContent(col, row, r, nil, style)
		col += max(1, runewidth.RuneWidth(r))
	}
	for ; col < cols; col++ {
		screen.SetContent(col, row, ' ', nil, style)
	}
}

// interruptContext ends on SIGINT or SIGTERM
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// quitKey reports whether ev ends an interactive session
func quitKey(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q'
}

func (a *app) mapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "map",
		Short: "Explore the narrative constellation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := interruptContext(cmd.Context())
			defer cancel()
			return a.runMap(ctx, nil)
		},
	}
}

// mapSession is the state behind the map's status line and keymap
type mapSession struct {
	engine *constellation.Engine
	detail string
}

func (s *mapSession) keys(ev *tcell.EventKey) error {
	if quitKey(ev) {
		return host.ErrQuit
	}
	switch ev.Rune() {
	case '+', '=':
		s.engine.ZoomBy(interact.ZoomStep)
	case '-', '_':
		s.engine.ZoomBy(-interact.ZoomStep)
	case '0':
		s.engine.ResetView()
	}
	return nil
}

func (s *mapSession) overlay(screen tcell.Screen) {
	_, rows := screen.Size()
	st := s.engine.State()
	line := fmt.Sprintf(" %s  zoom %.2f  |  +/- zoom  0 reset  drag pan  click select  q quit", st.Stage, st.TargetZoom)
	if st.Offline {
		line = " " + constellation.OfflineReadout + "  |  nri list prints the narrative list  q quit"
	}
	drawLine(screen, rows-1, line, statusStyle)
	if s.detail != "" {
		drawLine(screen, rows-2, " "+s.detail, detailStyle)
	}
}

// runMap mounts the constellation on screen, or on the real terminal when screen is nil
func (a *app) runMap(ctx context.Context, screen tcell.Screen) error {
	opts := a.terminalOptions()
	s := &mapSession{}
	opts.Keys = func(ev *tcell.EventKey) error { return s.keys(ev) }
	opts.Overlay = func(sc tcell.Screen) { s.overlay(sc) }

	term, err := host.NewTerminal(screen, opts)
	if err != nil {
		return err
	}
	defer term.Close()

	eng, teardown := constellation.Init(term.Surface(), constellation.Options{
		Catalog: a.catalog,
		Config: constellation.Config{
			Particles: a.cfg.Constellation.Particles,
			ZoomMin:   a.cfg.Constellation.ZoomMin,
			ZoomMax:   a.cfg.Constellation.ZoomMax,
		},
		OnCluster: func(c model.Cluster) {
			s.detail = fmt.Sprintf("%s: %s", c.Label, c.RiskText)
		},
		OnSub: func(sub model.SubTopic, c model.Cluster) {
			s.detail = fmt.Sprintf("%s / %s  %s  %s", c.Label, sub.Label, model.SentimentLabel(sub.Score), sub.Explanation)
		},
		OnMicro: func(mic model.MicroNarrative, sub model.SubTopic, c model.Cluster) {
			s.detail = fmt.Sprintf("%s / %s  %s", sub.Label, mic.Label, mic.Desc)
		},
	})
	defer teardown()
	s.engine = eng

	log.Printf("nri: map session %s", session)
	return term.Run(ctx)
}

func (a *app) actorsCmd() *cobra.Command {
	var scope string
	var cone bool

	cmd := &cobra.Command{
		Use:   "actors",
		Short: "Explore the actor network of a narrative scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("scope") && a.cfg.Actors.Scope != "" {
				scope = a.cfg.Actors.Scope
			}
			if !cmd.Flags().Changed("cone") {
				cone = cone || a.cfg.Actors.Cone
			}
			ctx, cancel := interruptContext(cmd.Context())
			defer cancel()
			return a.runActors(ctx, nil, scope, cone)
		},
	}
	cmd.Flags().StringVar(&scope, "scope", model.OverallKey, "narrative scope key (see `nri scopes`)")
	cmd.Flags().BoolVar(&cone, "cone", false, "start in cone mode")
	return cmd
}

// actorSession is the state behind the actor graph's status line and keymap
type actorSession struct {
	engine   *actorgraph.Engine
	cue      *audio.Cue
	datasets []*model.Dataset
	current  int
	detail   string
}

func (s *actorSession) keys(ev *tcell.EventKey) error {
	if quitKey(ev) {
		return host.ErrQuit
	}
	switch {
	case ev.Key() == tcell.KeyTab:
		s.cycle(1)
	case ev.Key() == tcell.KeyBacktab:
		s.cycle(-1)
	case ev.Rune() == 'c':
		s.engine.SetConeMode(!s.engine.Cone(), actorgraph.SetOptions{})
	case ev.Rune() == 'm':
		s.cue.ToggleMute()
	case ev.Rune() == '+' || ev.Rune() == '=':
		s.engine.ZoomBy(interact.ZoomStep)
	case ev.Rune() == '-' || ev.Rune() == '_':
		s.engine.ZoomBy(-interact.ZoomStep)
	case ev.Rune() == '0':
		s.engine.ResetView()
	}
	return nil
}

// cycle swaps to the next scope with the animated dataset blend
func (s *actorSession) cycle(step int) {
	n := len(s.datasets)
	if n == 0 {
		return
	}
	s.current = ((s.current+step)%n + n) % n
	s.detail = ""
	s.engine.SetData(s.datasets[s.current], actorgraph.SetOptions{})
}

func (s *actorSession) onClick(actor model.Actor, index int) {
	s.detail = actor.Name + ": " + actorgraph.Detail(s.engine.Dataset(), index)
	s.cue.Play()
}

func (s *actorSession) overlay(screen tcell.Screen) {
	_, rows := screen.Size()
	st := s.engine.State()
	mode := "flat"
	if st.Cone {
		mode = "cone"
	}
	sound := "off"
	if s.cue.Enabled() {
		sound = "on"
	}
	line := fmt.Sprintf(" %s  %d actors  %s  zoom %.2f  sound %s  |  Tab scope  c cone  0 reset  m mute  q quit",
		st.Scope, st.Actors, mode, st.TargetZoom, sound)
	drawLine(screen, rows-1, line, statusStyle)
	if s.detail != "" {
		drawLine(screen, rows-2, " "+s.detail, detailStyle)
	}
}

// runActors mounts the actor graph on screen, or on the real terminal when screen is nil
func (a *app) runActors(ctx context.Context, screen tcell.Screen, scope string, cone bool) error {
	s := &actorSession{datasets: a.catalog.Datasets()}
	for i, ds := range s.datasets {
		if ds.Key == scope {
			s.current = i
		}
	}

	opts := a.terminalOptions()
	opts.Keys = func(ev *tcell.EventKey) error { return s.keys(ev) }
	opts.Overlay = func(sc tcell.Screen) { s.overlay(sc) }

	term, err := host.NewTerminal(screen, opts)
	if err != nil {
		return err
	}
	defer term.Close()

	s.cue = audio.New(a.audioConfig())
	defer s.cue.Close()

	eng, teardown := actorgraph.Init(term.Surface(), actorgraph.Options{
		OnEntityClick: s.onClick,
		Config: actorgraph.Config{
			ZoomMin: a.cfg.Actors.ZoomMin,
			ZoomMax: a.cfg.Actors.ZoomMax,
		},
	})
	defer teardown()
	s.engine = eng

	eng.SetData(s.datasets[s.current], actorgraph.SetOptions{Instant: true})
	eng.SetConeMode(cone, actorgraph.SetOptions{Instant: true})

	log.Printf("nri: actors session %s, scope %s", session, s.datasets[s.current].Key)
	return term.Run(ctx)
}
