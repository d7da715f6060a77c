// Command nri renders the narrative constellation and the actor network in a terminal
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/nri-constellation/audio"
	"github.com/lixenwraith/nri-constellation/config"
	"github.com/lixenwraith/nri-constellation/host"
	"github.com/lixenwraith/nri-constellation/model"
)

var version = "0.3.0"

// app carries the global flags and everything resolved from them before a subcommand runs
type app struct {
	cfgPath  string
	dataPath string
	debug    bool
	reduced  bool
	color    string

	cfg     *config.Config
	catalog *model.Catalog
	logFile *os.File
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "nri",
		Short:         "nri: narrative risk constellation for the terminal",
		Long:          brand.Sprint("nri") + " renders narrative clusters and the actors behind them\n" + subtle.Sprint("Map, actor network, reports and frame export"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.prepare(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.SetVersionTemplate("nri {{ .Version }}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "config file (default "+config.Path()+")")
	flags.StringVar(&a.dataPath, "data", "", "JSON catalog replacing the built-in data")
	flags.BoolVar(&a.debug, "debug", false, "write logs to "+logDir+"/"+logFileName)
	flags.BoolVar(&a.reduced, "reduced-motion", false, "disable animation")
	flags.StringVar(&a.color, "color", "", "color mode: auto, truecolor, 256, mono")

	root.AddCommand(
		a.mapCmd(),
		a.actorsCmd(),
		a.scopesCmd(),
		a.connectionsCmd(),
		a.listCmd(),
		a.exportCmd(),
	)
	return root
}

// prepare opens the log, loads the config and the catalog, then applies flag overrides
func (a *app) prepare(cmd *cobra.Command) error {
	a.logFile = setupLogging(a.debug)

	path := a.cfgPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		warn.Fprintf(cmd.ErrOrStderr(), "nri: %v, using defaults\n", err)
	}
	a.cfg = cfg

	if a.reduced || os.Getenv("NO_MOTION") != "" {
		a.cfg.Motion.Reduced = true
	}
	if cmd.Flags().Changed("color") {
		a.cfg.Render.Color = a.color
	}

	a.catalog = model.Default()
	if a.dataPath != "" {
		c, err := model.LoadFile(a.dataPath)
		if err != nil {
			return fmt.Errorf("load data: %w", err)
		}
		a.catalog = c
	}
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

func (a *app) terminalOptions() host.TerminalOptions {
	r := a.cfg.Render
	return host.TerminalOptions{
		FPS:           r.FPS,
		CellWidth:     r.CellWidth,
		CellHeight:    r.CellHeight,
		PixelRatio:    r.PixelRatio,
		ReducedMotion: a.cfg.Motion.Reduced,
		Color:         r.Color,
	}
}

func (a *app) audioConfig() audio.Config {
	c := audio.DefaultConfig()
	c.Enabled = a.cfg.Audio.Enabled
	c.Volume = a.cfg.Audio.Volume
	c.Frequency = a.cfg.Audio.Frequency
	return c
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		bad.Fprintf(os.Stderr, "nri: %v\n", err)
		os.Exit(1)
	}
}
