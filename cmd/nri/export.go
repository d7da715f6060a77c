package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/nri-constellation/actorgraph"
	"github.com/lixenwraith/nri-constellation/blend"
	"github.com/lixenwraith/nri-constellation/constellation"
	"github.com/lixenwraith/nri-constellation/export"
	"github.com/lixenwraith/nri-constellation/host"
	"github.com/lixenwraith/nri-constellation/model"
)

// exportEpoch is the fixed start of offscreen clocks, so frames are reproducible
var exportEpoch = time.Unix(1_700_000_000, 0)

type exportOptions struct {
	scene  string
	format string
	at     time.Duration
	out    string
	width  int
	height int
	scope  string
	cone   bool
}

func (a *app) exportCmd() *cobra.Command {
	o := exportOptions{}

	cmd := &cobra.Command{
		Use:       "export [map|actors]",
		Short:     "Render one frame offscreen and write it as SVG, PNG or JPEG",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"map", "actors"},
		RunE: func(cmd *cobra.Command, args []string) error {
			o.scene = "map"
			if len(args) == 1 {
				o.scene = args[0]
			}
			if !cmd.Flags().Changed("format") {
				o.format = a.cfg.Export.Format
			}
			if !export.ValidFormat(o.format) {
				return fmt.Errorf("%w: %q (want one of %v)", export.ErrFormat, o.format, export.Formats)
			}
			if o.out == "" {
				o.out = export.FileName(a.cfg.Export.Dir, o.scene, session, o.format)
			}

			if err := a.runExport(cmd.Context(), export.New(), o); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", good.Sprint("wrote"), o.out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.format, "format", "svg", "output format: svg, png, jpg")
	f.DurationVar(&o.at, "at", 2500*time.Millisecond, "animation time of the captured frame")
	f.StringVarP(&o.out, "out", "o", "", "output path (default under export.dir)")
	f.IntVar(&o.width, "width", 120, "frame width in terminal cells")
	f.IntVar(&o.height, "height", 40, "frame height in terminal cells")
	f.StringVar(&o.scope, "scope", model.OverallKey, "actor scope for the actors scene")
	f.BoolVar(&o.cone, "cone", false, "cone mode for the actors scene")
	return cmd
}

// runExport mounts the scene on an offscreen surface, advances a mock clock to o.at and writes the canvas
func (a *app) runExport(ctx context.Context, ex *export.Exporter, o exportOptions) error {
	r := a.cfg.Render
	surface := host.NewSurface(host.Options{
		Width:         float64(max(1, o.width) * r.CellWidth),
		Height:        float64(max(1, o.height) * r.CellHeight),
		PixelRatio:    r.PixelRatio,
		CellWidth:     r.CellWidth,
		CellHeight:    r.CellHeight,
		Accelerated:   true,
		ReducedMotion: a.cfg.Motion.Reduced,
	})
	clock := blend.NewMockClock(exportEpoch)

	switch o.scene {
	case "actors":
		eng, teardown := actorgraph.Init(surface, actorgraph.Options{
			Clock:  clock,
			Config: actorgraph.Config{ZoomMin: a.cfg.Actors.ZoomMin, ZoomMax: a.cfg.Actors.ZoomMax},
		})
		defer teardown()
		eng.SetData(a.catalog.Lookup(o.scope), actorgraph.SetOptions{Instant: true})
		eng.SetConeMode(o.cone, actorgraph.SetOptions{Instant: true})
	default:
		_, teardown := constellation.Init(surface, constellation.Options{
			Clock:   clock,
			Catalog: a.catalog,
			Config: constellation.Config{
				Particles: a.cfg.Constellation.Particles,
				ZoomMin:   a.cfg.Constellation.ZoomMin,
				ZoomMax:   a.cfg.Constellation.ZoomMax,
			},
		})
		defer teardown()
	}

	step := time.Second / time.Duration(r.FPS)
	frames := export.Advance(surface, clock, max(o.at, step), step)
	if err := ex.WriteFile(ctx, surface.Canvas(), o.format, o.out); err != nil {
		return fmt.Errorf("export %s: %w", o.scene, err)
	}
	log.Printf("nri: exported %s at %s after %d frames to %s", o.scene, o.at, frames, o.out)
	return nil
}
