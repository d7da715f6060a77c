package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain reads s to exhaustion and returns the sample count and peak amplitude
func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		got, ok := s.Stream(buf)
		for _, smp := range buf[:got] {
			peak = math.Max(peak, math.Max(math.Abs(smp[0]), math.Abs(smp[1])))
		}
		n += got
		if !ok || got == 0 {
			return n, peak
		}
	}
}

func TestToneLengthAndGain(t *testing.T) {
	c := NewWithSink(Config{Enabled: true, Volume: 0.25, Frequency: 880, Duration: 50 * time.Millisecond}, func(beep.Streamer) {})
	s, err := c.Tone()
	if err != nil {
		t.Fatalf("Tone: %v", err)
	}
	n, peak := drain(s)
	if want := SampleRate.N(50 * time.Millisecond); n != want {
		t.Errorf("samples = %d, want %d", n, want)
	}
	if peak > 0.25+1e-9 || peak < 0.2 {
		t.Errorf("peak = %v, want about 0.25", peak)
	}
}

func TestPlayRespectsMuteAndSilence(t *testing.T) {
	var got []beep.Streamer
	sink := func(s beep.Streamer) { got = append(got, s) }

	tests := []struct {
		name    string
		cfg     Config
		sink    Sink
		mute    bool
		audible bool
	}{
		{"enabled", DefaultConfig(), sink, false, true},
		{"disabled in config", Config{Enabled: false}, sink, false, false},
		{"muted", DefaultConfig(), sink, true, false},
		{"no sink", DefaultConfig(), nil, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = nil
			c := NewWithSink(tt.cfg, tt.sink)
			if tt.mute {
				c.ToggleMute()
			}
			if ok := c.Play(); ok != tt.audible {
				t.Errorf("Play() = %v, want %v", ok, tt.audible)
			}
			if c.Enabled() != tt.audible {
				t.Errorf("Enabled() = %v", c.Enabled())
			}
			want := 0
			if tt.audible {
				want = 1
			}
			if len(got) != want || c.Played() != int64(want) {
				t.Errorf("sent %d cues, counted %d", len(got), c.Played())
			}
		})
	}
}

func TestSanitizeFillsDefaults(t *testing.T) {
	c := NewWithSink(Config{Enabled: true, Volume: 3}, func(beep.Streamer) {})
	if c.cfg.Frequency != DefaultFrequency || c.cfg.Duration != DefaultDuration || c.cfg.Volume != DefaultVolume {
		t.Errorf("sanitized config = %+v", c.cfg)
	}
}

func TestEnvelopeShape(t *testing.T) {
	ones := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})
	env := Envelope(ones, 10*time.Millisecond, 2*time.Millisecond, 4*time.Millisecond, beep.SampleRate(1000))

	buf := make([][2]float64, 16)
	n, ok := env.Stream(buf)
	if n != 10 || !ok {
		t.Fatalf("Stream = %d, %v; want 10 samples", n, ok)
	}
	want := []float64{0, 0.5, 1, 1, 1, 1, 1, 0.75, 0.5, 0.25}
	for i, w := range want {
		if math.Abs(buf[i][0]-w) > 1e-9 || buf[i][0] != buf[i][1] {
			t.Errorf("sample %d = %v, want %v", i, buf[i], w)
		}
	}
	if n, ok := env.Stream(buf); n != 0 || ok {
		t.Errorf("exhausted envelope returned %d, %v", n, ok)
	}
}
