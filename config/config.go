// Package config loads and saves the TOML settings file
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds nri configuration
type Config struct {
	Render        RenderConfig        `toml:"render"`
	Motion        MotionConfig        `toml:"motion"`
	Actors        ActorsConfig        `toml:"actors"`
	Constellation ConstellationConfig `toml:"constellation"`
	Audio         AudioConfig         `toml:"audio"`
	Export        ExportConfig        `toml:"export"`
}

// RenderConfig controls the terminal surface
type RenderConfig struct {
	FPS        int     `toml:"fps"`
	PixelRatio float64 `toml:"pixel_ratio"`
	CellWidth  int     `toml:"cell_width"`
	CellHeight int     `toml:"cell_height"`
	Color      string  `toml:"color"` // "auto", "truecolor", "256", "mono"
}

// MotionConfig controls animation
type MotionConfig struct {
	Reduced bool `toml:"reduced"`
}

// ActorsConfig controls the actor graph
type ActorsConfig struct {
	ZoomMin float64 `toml:"zoom_min"`
	ZoomMax float64 `toml:"zoom_max"`
	Cone    bool    `toml:"cone"`
	Scope   string  `toml:"scope"`
}

// ConstellationConfig controls the narrative map
type ConstellationConfig struct {
	Particles int     `toml:"particles"`
	ZoomMin   float64 `toml:"zoom_min"`
	ZoomMax   float64 `toml:"zoom_max"`
}

// AudioConfig controls the lock cue
type AudioConfig struct {
	Enabled   bool    `toml:"enabled"`
	Volume    float64 `toml:"volume"`
	Frequency float64 `toml:"frequency"`
}

// ExportConfig controls offscreen frame export
type ExportConfig struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"` // "svg", "png", "jpg"
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Render:        RenderConfig{FPS: 60, PixelRatio: 1, CellWidth: 8, CellHeight: 16, Color: "auto"},
		Motion:        MotionConfig{Reduced: false},
		Actors:        ActorsConfig{ZoomMin: 0.35, ZoomMax: 4.8},
		Constellation: ConstellationConfig{Particles: 2400, ZoomMin: 0.35, ZoomMax: 4.8},
		Audio:         AudioConfig{Enabled: true, Volume: 0.5, Frequency: 880},
		Export:        ExportConfig{Dir: "exports", Format: "svg"},
	}
}

// Dir returns the nri config directory path
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "nri")
}

// Path returns the default config file path
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the default config file; a missing file yields defaults
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads path over the defaults; a missing file yields defaults
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes cfg to the default path
func Save(cfg *Config) error {
	return SaveTo(cfg, Path())
}

// SaveTo writes cfg to path, creating parent directories
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	def := Default()
	if c.Render.FPS <= 0 || c.Render.FPS > 240 {
		c.Render.FPS = def.Render.FPS
	}
	if c.Render.PixelRatio <= 0 {
		c.Render.PixelRatio = def.Render.PixelRatio
	}
	if c.Render.CellWidth <= 0 {
		c.Render.CellWidth = def.Render.CellWidth
	}
	if c.Render.CellHeight <= 0 {
		c.Render.CellHeight = def.Render.CellHeight
	}
	switch c.Render.Color {
	case "auto", "truecolor", "256", "mono":
	default:
		c.Render.Color = def.Render.Color
	}
	if c.Actors.ZoomMin <= 0 || c.Actors.ZoomMax <= c.Actors.ZoomMin {
		c.Actors.ZoomMin, c.Actors.ZoomMax = def.Actors.ZoomMin, def.Actors.ZoomMax
	}
	if c.Constellation.ZoomMin <= 0 || c.Constellation.ZoomMax <= c.Constellation.ZoomMin {
		c.Constellation.ZoomMin, c.Constellation.ZoomMax = def.Constellation.ZoomMin, def.Constellation.ZoomMax
	}
	if c.Constellation.Particles <= 0 {
		c.Constellation.Particles = def.Constellation.Particles
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		c.Audio.Volume = def.Audio.Volume
	}
	if c.Audio.Frequency <= 0 {
		c.Audio.Frequency = def.Audio.Frequency
	}
	switch c.Export.Format {
	case "svg", "png", "jpg":
	default:
		c.Export.Format = def.Export.Format
	}
	if c.Export.Dir == "" {
		c.Export.Dir = def.Export.Dir
	}
}
