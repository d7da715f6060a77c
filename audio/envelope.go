package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue envelope edges; a bare sine gated on and off clicks audibly
const (
	CueAttack  = 4 * time.Millisecond
	CueRelease = 18 * time.Millisecond
)

// envelope shapes a stream with a linear attack and release, cutting it at total samples
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

// Envelope wraps s so it ramps in over attack, ramps out over release and ends after duration
func Envelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{streamer: s, attack: att, release: rel, total: total}
}

// gain returns the envelope level at sample position p
func (e *envelope) gain(p int) float64 {
	if e.attack > 0 && p < e.attack {
		return float64(p) / float64(e.attack)
	}
	if start := e.total - e.release; e.release > 0 && p >= start {
		return float64(e.total-p) / float64(e.release)
	}
	return 1
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if left := e.total - e.pos; left < len(samples) {
		samples = samples[:max(0, left)]
	}
	if len(samples) == 0 {
		return 0, false
	}
	n, ok = e.streamer.Stream(samples)
	for i := range samples[:n] {
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
