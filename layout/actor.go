package layout

import (
	"math"
	"sort"

	"github.com/lixenwraith/nri-constellation/model"
	"github.com/lixenwraith/nri-constellation/vmath"
)

// Anchor is the flat resolved position of one actor
type Anchor struct {
	X, Y       float64
	Angle      float64
	RingRadius float64 // particle cloud extent
	NodeRadius float64
	Drift      float64 // phase offset for halo pulse and particle orbit
	Ring       int
}

// Center returns the shared visual center of a w×h surface
func Center(w, h float64) (cx, cy float64) {
	return w * 0.5, h * 0.54
}

// RingRadii returns the concentric ring radii for a surface extent
func RingRadii(extent float64) [4]float64 {
	return [4]float64{extent * 0.17, extent * 0.24, extent * 0.31, extent * 0.39}
}

// BuildAnchors places actors on golden-angle arcs grouped by role
// Ranking is by descending raw reach; the hashed ring offset keeps the order loose, not monotonic
func BuildAnchors(actors []model.Actor, w, h float64, influence Normalizer, nodeScale float64) []Anchor {
	anchors := make([]Anchor, len(actors))
	if len(actors) == 0 {
		return anchors
	}

	cx, cy := Center(w, h)
	extent := math.Min(w, h)
	rings := RingRadii(extent)

	type entry struct {
		index int
		reach float64
		group Group
	}
	ranked := make([]entry, len(actors))
	for i, a := range actors {
		ranked[i] = entry{index: i, reach: model.ParseReach(a.Reach), group: ActorGroup(a.Role)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].reach > ranked[j].reach })

	for order, e := range ranked {
		n := vmath.Finite(influence(e.index), 0.5)
		seed := float64(e.index + 1)
		ord := float64(order)

		ringSeed := vmath.Hash01(seed*73 + ord*17)
		ring := (order + int(math.Floor(ringSeed*float64(len(rings))))) % len(rings)

		radialJitter := (vmath.Hash01(seed*911+ord*137) - 0.5) * extent * 0.11
		angleJitter := (vmath.Hash01(seed*337+ord*57) - 0.5) * 1.05
		angle := ord*vmath.GoldenAngle + groupPhase[e.group] + angleJitter
		radial := vmath.Clamp(rings[ring]+radialJitter+n*extent*0.05, extent*0.14, extent*0.47)
		ySquash := 0.78 + vmath.Hash01(seed*271+ord*7)*0.2

		anchors[e.index] = Anchor{
			X:          cx + math.Cos(angle)*radial,
			Y:          cy + math.Sin(angle)*radial*ySquash,
			Angle:      angle,
			RingRadius: (22 + n*50) * (0.86 + nodeScale*0.22),
			NodeRadius: (4.2 + n*9.2) * nodeScale,
			Drift:      seed*0.56 + float64(ring)*0.18,
			Ring:       ring,
		}
	}
	return anchors
}

// EntryOffset is where an actor new to a dataset starts its fly-in, relative to the center
func EntryOffset(index int, name string) (dx, dy float64) {
	l := float64(len(name))
	dx = (vmath.Hash01(float64(index)*193+l*79) - 0.5) * 52
	dy = (vmath.Hash01(float64(index)*457+l*31) - 0.5) * 34
	return dx, dy
}

// LerpAnchor interpolates position and radii, keeping the target's identity fields
func LerpAnchor(from, to Anchor, t float64) Anchor {
	out := to
	out.X = vmath.Lerp(from.X, to.X, t)
	out.Y = vmath.Lerp(from.Y, to.Y, t)
	out.Angle = vmath.Lerp(from.Angle, to.Angle, t)
	out.RingRadius = vmath.Lerp(from.RingRadius, to.RingRadius, t)
	out.NodeRadius = vmath.Lerp(from.NodeRadius, to.NodeRadius, t)
	return out
}
