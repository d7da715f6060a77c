// Package layout computes anchor positions for the actor graph and the constellation map
// All functions are pure; callers rebuild anchors whenever the surface size or the dataset changes
package layout

import (
	"math"
	"strings"

	"github.com/lixenwraith/nri-constellation/model"
	"github.com/lixenwraith/nri-constellation/vmath"
)

// Normalizer maps an entity index to [0, 1]
type Normalizer func(index int) float64

// Influence normalizes parsed reach and optional relevance over one dataset
type Influence struct {
	reach     []float64
	relevance []float64
	minReach  float64
	maxReach  float64
	minRel    float64
	maxRel    float64
}

// NewInfluence captures the reach and relevance spread of actors
func NewInfluence(actors []model.Actor) *Influence {
	in := &Influence{
		reach:     make([]float64, len(actors)),
		relevance: make([]float64, len(actors)),
	}
	for i, a := range actors {
		in.reach[i] = vmath.Finite(model.ParseReach(a.Reach), 0)
		if a.Relevance != nil {
			in.relevance[i] = vmath.Finite(*a.Relevance, 0)
		}
	}
	in.minReach, in.maxReach = spread(in.reach)
	in.minRel, in.maxRel = spread(in.relevance)
	return in
}

func spread(vs []float64) (lo, hi float64) {
	if len(vs) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func normalize(vs []float64, lo, hi float64, i int) float64 {
	if len(vs) == 0 || i < 0 || i >= len(vs) || hi == lo {
		return 0.5
	}
	return (vs[i] - lo) / (hi - lo)
}

// Reach returns the min-max normalized reach, 0.5 for degenerate sets
func (in *Influence) Reach(i int) float64 {
	return normalize(in.reach, in.minReach, in.maxReach, i)
}

// Relevance returns the min-max normalized relevance, 0.5 for degenerate sets
func (in *Influence) Relevance(i int) float64 {
	return normalize(in.relevance, in.minRel, in.maxRel, i)
}

// At blends reach and relevance into a single influence in [0, 1]
func (in *Influence) At(i int) float64 {
	return vmath.Clamp01(in.Reach(i)*0.74 + in.Relevance(i)*0.26)
}

// Group is the semantic bucket that selects an actor's angular arc
type Group string

const (
	GroupInstitution Group = "institution"
	GroupMedia       Group = "media"
	GroupSocial      Group = "social"
	GroupAlt         Group = "alt"
)

var groupPhase = map[Group]float64{
	GroupInstitution: -0.72,
	GroupMedia:       0.56,
	GroupSocial:      1.88,
	GroupAlt:         3.18,
}

// ActorGroup buckets a role string by keyword
func ActorGroup(role string) Group {
	v := strings.ToLower(role)
	for _, kw := range []string{"regulator", "protection", "watchdog", "institution", "political", "utility", "civil", "financial"} {
		if strings.Contains(v, kw) {
			return GroupInstitution
		}
	}
	switch {
	case strings.Contains(v, "alt-media"):
		return GroupAlt
	case strings.Contains(v, "social"):
		return GroupSocial
	case strings.Contains(v, "media"), strings.Contains(v, "broadcast"), strings.Contains(v, "tech"):
		return GroupMedia
	}
	return GroupSocial
}

// NodeScale shrinks nodes as the entity count grows so dense graphs stay legible
func NodeScale(count int) float64 {
	n := float64(max(count, 8))
	return vmath.Clamp(math.Pow(12/n, 0.42), 0.74, 1.18)
}
