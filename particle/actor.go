// Package particle generates and animates the particle clouds of both engines
// Randomness comes from vmath.Hash01 so a given dataset always produces the same field
package particle

import (
	"math"

	"github.com/lixenwraith/nri-constellation/layout"
	"github.com/lixenwraith/nri-constellation/vmath"
)

// ActorParticle orbits one actor anchor; Lane pulls it toward the shared center
type ActorParticle struct {
	Actor int
	Lane  float64
	Orbit float64
	Theta float64
	Speed float64
	Warp  float64
	Size  float64
	Alpha float64
}

// ActorCount returns the number of particles an actor with influence n receives
func ActorCount(n, nodeScale float64) int {
	return int(math.Round((190 + n*230) * (0.8 + nodeScale*0.34)))
}

// ActorParticles seeds the cloud of every anchored actor
func ActorParticles(anchors []layout.Anchor, influence layout.Normalizer, nodeScale float64) []ActorParticle {
	total := 0
	counts := make([]int, len(anchors))
	for i := range anchors {
		counts[i] = ActorCount(vmath.Finite(influence(i), 0.5), nodeScale)
		total += counts[i]
	}

	out := make([]ActorParticle, 0, total)
	for ai, anchor := range anchors {
		a := float64(ai)
		for i := 0; i < counts[ai]; i++ {
			fi := float64(i)
			r1 := vmath.Hash01(a*1711 + fi*313)
			r2 := vmath.Hash01(a*9187 + fi*733)
			r3 := vmath.Hash01(a*1423 + fi*1201)
			r4 := vmath.Hash01(a*8081 + fi*2081)

			lane := math.Pow(r1, 1.8)
			out = append(out, ActorParticle{
				Actor: ai,
				Lane:  lane,
				Orbit: anchor.RingRadius * (0.25 + r2*0.95) * (1 - lane*0.72),
				Theta: r3 * math.Pi * 2,
				Speed: 0.07 + r4*0.26 + lane*0.08,
				Warp:  0.3 + r2*1.2,
				Size:  0.55 + r3*1.55,
				Alpha: 0.07 + r4*0.24,
			})
		}
	}
	return out
}

// Advance rotates the particle by dt seconds, wrapping theta into [0, 2π)
func (p *ActorParticle) Advance(dt float64) {
	p.Theta += p.Speed * dt
	if p.Theta > math.Pi*2 {
		p.Theta -= math.Pi * 2
	}
}

// Position returns the frame position around anchor at time now (seconds)
func (p *ActorParticle) Position(anchor layout.Anchor, cx, cy, now float64) (x, y float64) {
	t := p.Theta + now*p.Speed*0.25
	wobble := 1 + math.Sin(now*0.65+p.Warp*2.4)*0.08

	lx := anchor.X + math.Cos(t+anchor.Drift)*p.Orbit*wobble
	ly := anchor.Y + math.Sin(t*1.08+anchor.Drift*0.7)*p.Orbit*0.8*wobble

	x = lx + (cx-lx)*p.Lane
	y = ly + (cy-ly)*p.Lane + math.Sin(t*0.9+p.Warp)*(1-p.Lane)*1.8
	return x, y
}
