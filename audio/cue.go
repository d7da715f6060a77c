// Package audio plays the short tone that confirms an entity lock
package audio

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Tone defaults
const (
	SampleRate       = beep.SampleRate(44100)
	DefaultFrequency = 880.0
	DefaultDuration  = 50 * time.Millisecond
	DefaultVolume    = 0.5
)

// Config selects the cue tone
type Config struct {
	Enabled   bool
	Volume    float64 // linear gain in [0, 1]
	Frequency float64
	Duration  time.Duration
}

// DefaultConfig returns the stock cue
func DefaultConfig() Config {
	return Config{Enabled: true, Volume: DefaultVolume, Frequency: DefaultFrequency, Duration: DefaultDuration}
}

// Sink receives finished streamers; speaker.Play in production
type Sink func(s beep.Streamer)

// Cue plays a sine blip; it degrades to silence when no output device is available
type Cue struct {
	cfg    Config
	sink   Sink
	speak  bool
	muted  atomic.Bool
	silent atomic.Bool
	played atomic.Int64
}

// New opens the speaker; failure leaves the cue in silent mode and is not an error
func New(cfg Config) *Cue {
	cfg = sanitize(cfg)
	c := &Cue{cfg: cfg}
	c.muted.Store(!cfg.Enabled)
	if !cfg.Enabled {
		c.silent.Store(true)
		return c
	}

	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio: speaker unavailable, running silent: %v", err)
		c.silent.Store(true)
		return c
	}
	c.speak = true
	c.sink = func(s beep.Streamer) { speaker.Play(s) }
	log.Printf("audio: speaker ready at %d Hz", SampleRate)
	return c
}

// NewWithSink builds a cue that hands streamers to sink instead of the speaker
func NewWithSink(cfg Config, sink Sink) *Cue {
	c := &Cue{cfg: sanitize(cfg), sink: sink}
	c.muted.Store(!c.cfg.Enabled)
	if sink == nil {
		c.silent.Store(true)
	}
	return c
}

func sanitize(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Frequency <= 0 {
		cfg.Frequency = def.Frequency
	}
	if cfg.Duration <= 0 {
		cfg.Duration = def.Duration
	}
	if cfg.Volume < 0 || cfg.Volume > 1 {
		cfg.Volume = def.Volume
	}
	return cfg
}

// Tone builds one cue: an enveloped sine of the configured frequency and duration
func (c *Cue) Tone() (beep.Streamer, error) {
	sine, err := generators.SineTone(SampleRate, c.cfg.Frequency)
	if err != nil {
		return nil, fmt.Errorf("sine tone: %w", err)
	}
	return &effects.Gain{
		Streamer: Envelope(sine, c.cfg.Duration, CueAttack, CueRelease, SampleRate),
		Gain:     c.cfg.Volume - 1,
	}, nil
}

// Play queues one cue and reports whether it was sent to the output
func (c *Cue) Play() bool {
	if c.muted.Load() || c.silent.Load() || c.sink == nil {
		return false
	}
	s, err := c.Tone()
	if err != nil {
		log.Printf("audio: %v", err)
		return false
	}
	c.sink(s)
	c.played.Add(1)
	return true
}

// ToggleMute flips mute and returns true if the cue is now audible
func (c *Cue) ToggleMute() bool {
	muted := !c.muted.Load()
	c.muted.Store(muted)
	return !muted && !c.silent.Load()
}

// Enabled reports whether Play would produce sound
func (c *Cue) Enabled() bool {
	return !c.muted.Load() && !c.silent.Load()
}

// Played returns the number of cues sent
func (c *Cue) Played() int64 { return c.played.Load() }

// Close releases the speaker when this cue opened it
func (c *Cue) Close() {
	if c.speak {
		c.speak = false
		speaker.Close()
	}
}
