package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/nri-constellation/actorgraph"
	"github.com/lixenwraith/nri-constellation/audio"
	"github.com/lixenwraith/nri-constellation/blend"
	"github.com/lixenwraith/nri-constellation/config"
	"github.com/lixenwraith/nri-constellation/constellation"
	"github.com/lixenwraith/nri-constellation/export"
	"github.com/lixenwraith/nri-constellation/host"
	"github.com/lixenwraith/nri-constellation/model"
)

// execute runs the root command against an absent config file and returns its combined output
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "absent.toml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestScopesCommand(t *testing.T) {
	out, err := execute(t, "scopes")
	if err != nil {
		t.Fatalf("scopes: %v", err)
	}
	catalog := model.Default()
	for _, want := range []string{model.OverallKey, "Overall constellation", "Actors"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	for _, opt := range catalog.NarrativeOptions() {
		if !strings.Contains(out, opt.Key) {
			t.Errorf("scope %s missing", opt.Key)
		}
	}
}

func TestConnectionsCommand(t *testing.T) {
	out, err := execute(t, "connections")
	if err != nil {
		t.Fatalf("connections: %v", err)
	}
	rows := actorgraph.TopConnections(model.Default().OverallDataset(), actorgraph.ConnectionLimit)
	if len(rows) != actorgraph.ConnectionLimit {
		t.Fatalf("built-in data yields %d connections", len(rows))
	}
	for _, r := range rows {
		if !strings.Contains(out, r.From) || !strings.Contains(out, r.To) {
			t.Errorf("row %s - %s missing from output", r.From, r.To)
		}
	}
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list", "--width", "60")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.HasPrefix(out, constellation.ListTitle) || !strings.Contains(out, "7 Narrative | 3 Cluster") {
		t.Errorf("unexpected list:\n%s", out)
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"map", []string{"export", "map"}},
		{"default scene", []string{"export"}},
		{"actors cone", []string{"export", "actors", "--cone"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name, "frame.svg")
			args := append(tt.args, "--format", "svg", "--at", "50ms", "--width", "24", "--height", "10", "-o", path)
			out, err := execute(t, args...)
			if err != nil {
				t.Fatalf("export: %v", err)
			}
			if !strings.Contains(out, path) {
				t.Errorf("output %q does not name %s", out, path)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(data, []byte("<svg")) || !bytes.Contains(data, []byte("<rect")) {
				t.Errorf("not an svg frame: %.80s", data)
			}
		})
	}
}

func TestExportRejectsBadInput(t *testing.T) {
	if _, err := execute(t, "export", "map", "--format", "gif"); !errors.Is(err, export.ErrFormat) {
		t.Errorf("gif err = %v", err)
	}
	if _, err := execute(t, "export", "globe"); err == nil {
		t.Error("unknown scene should fail")
	}
	if _, err := execute(t, "--data", filepath.Join(t.TempDir(), "none.json"), "scopes"); err == nil {
		t.Error("missing data file should fail")
	}
}

func TestPrepareAppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	cfg.Render.FPS = 30
	if err := config.SaveTo(cfg, path); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{Use: "nri"}
	cmd.Flags().String("color", "", "")
	if err := cmd.ParseFlags([]string{"--color", "mono"}); err != nil {
		t.Fatal(err)
	}
	a := &app{cfgPath: path, reduced: true, color: "mono"}
	if err := a.prepare(cmd); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if !a.cfg.Motion.Reduced || a.cfg.Render.Color != "mono" || a.cfg.Render.FPS != 30 {
		t.Errorf("config = %+v", a.cfg)
	}
	if a.catalog == nil || len(a.catalog.Clusters) != 3 {
		t.Error("built-in catalog not loaded")
	}
}

// testApp is a prepared app over defaults with audio off
func testApp() *app {
	cfg := config.Default()
	cfg.Audio.Enabled = false
	cfg.Constellation.Particles = 200
	return &app{cfg: cfg, catalog: model.Default()}
}

func newActorSession(t *testing.T) (*actorSession, *[]beep.Streamer) {
	t.Helper()
	surface := host.NewSurface(host.Options{Width: 640, Height: 400, Accelerated: true})
	clock := blend.NewMockClock(time.Unix(1000, 0))
	var played []beep.Streamer
	s := &actorSession{
		datasets: model.Default().Datasets(),
		cue:      audio.NewWithSink(audio.DefaultConfig(), func(st beep.Streamer) { played = append(played, st) }),
	}
	eng, teardown := actorgraph.Init(surface, actorgraph.Options{Clock: clock, OnEntityClick: s.onClick})
	t.Cleanup(teardown)
	s.engine = eng
	eng.SetData(s.datasets[0], actorgraph.SetOptions{Instant: true})
	return s, &played
}

func key(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestActorSessionKeys(t *testing.T) {
	s, _ := newActorSession(t)
	n := len(s.datasets)

	if err := s.keys(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)); err != nil {
		t.Fatal(err)
	}
	if s.current != 1 || s.engine.Dataset().Key != s.datasets[1].Key {
		t.Errorf("tab: current=%d key=%s", s.current, s.engine.Dataset().Key)
	}
	s.keys(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone))
	s.keys(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone))
	if s.current != n-1 {
		t.Errorf("backtab should wrap to %d, got %d", n-1, s.current)
	}

	s.keys(key('c'))
	if !s.engine.Cone() {
		t.Error("c should engage cone mode")
	}
	s.keys(key('c'))
	if s.engine.Cone() {
		t.Error("second c should leave cone mode")
	}

	before := s.engine.State().TargetZoom
	s.keys(key('+'))
	if got := s.engine.State().TargetZoom; got <= before {
		t.Errorf("+ zoom %v -> %v", before, got)
	}
	s.keys(key('0'))
	if got := s.engine.State().TargetZoom; got != 1 {
		t.Errorf("0 should reset zoom, got %v", got)
	}

	s.keys(key('m'))
	if s.cue.Enabled() {
		t.Error("m should mute the cue")
	}
	if err := s.keys(key('q')); !errors.Is(err, host.ErrQuit) {
		t.Errorf("q err = %v", err)
	}
}

func TestActorSessionClickPlaysCue(t *testing.T) {
	s, played := newActorSession(t)
	ds := s.engine.Dataset()
	s.onClick(ds.Actors[0], 0)
	if !strings.HasPrefix(s.detail, ds.Actors[0].Name+": ") {
		t.Errorf("detail = %q", s.detail)
	}
	if len(*played) != 1 {
		t.Errorf("cue played %d times", len(*played))
	}
	s.cycle(1)
	if s.detail != "" {
		t.Error("scope change should clear the detail line")
	}
}

func TestMapSessionKeys(t *testing.T) {
	surface := host.NewSurface(host.Options{Width: 640, Height: 400, Accelerated: true})
	eng, teardown := constellation.Init(surface, constellation.Options{
		Clock:  blend.NewMockClock(time.Unix(1000, 0)),
		Config: constellation.Config{Particles: 50, ZoomMin: 0.35, ZoomMax: 4.8},
	})
	defer teardown()
	s := &mapSession{engine: eng}

	s.keys(key('+'))
	s.keys(key('+'))
	if got := eng.State().TargetZoom; got < 1.29 || got > 1.31 {
		t.Errorf("zoom after two steps = %v", got)
	}
	s.keys(key('0'))
	if got := eng.State().TargetZoom; got != 1 {
		t.Errorf("reset zoom = %v", got)
	}
	if err := s.keys(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); !errors.Is(err, host.ErrQuit) {
		t.Errorf("escape err = %v", err)
	}
}

func TestInteractiveRunsQuitOnKey(t *testing.T) {
	tests := []struct {
		name string
		run  func(a *app, ctx context.Context, sc tcell.Screen) error
	}{
		{"map", func(a *app, ctx context.Context, sc tcell.Screen) error { return a.runMap(ctx, sc) }},
		{"actors", func(a *app, ctx context.Context, sc tcell.Screen) error {
			return a.runActors(ctx, sc, "", true)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := host.NewSimulation(40, 14)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			go func() {
				time.Sleep(80 * time.Millisecond)
				sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
			}()
			if err := tt.run(testApp(), ctx, sim); err != nil {
				t.Fatalf("run: %v", err)
			}
			if ctx.Err() != nil {
				t.Error("session ended by timeout instead of q")
			}
		})
	}
}
