package model

import (
	"sort"

	"github.com/lixenwraith/nri-constellation/vmath"
)

// ResolveConnections maps name-keyed links onto indices of actors
// Links naming an actor not in the slice are skipped
// With a relevance map, weights are rescaled by the mean relevance of both endpoints
// If nothing resolves, neighbouring actors are chained so the graph is never edgeless
func ResolveConnections(actors []Actor, links []ActorLink, relevance map[string]float64) []ActorConnection {
	index := make(map[string]int, len(actors))
	for i, a := range actors {
		index[a.Name] = i
	}

	resolved := make([]ActorConnection, 0, len(links))
	for _, link := range links {
		from, okA := index[link.A]
		to, okB := index[link.B]
		if !okA || !okB {
			continue
		}

		weight := link.Weight
		if relevance != nil {
			relA := relevanceOr(relevance, link.A, 0.4)
			relB := relevanceOr(relevance, link.B, 0.4)
			influence := (relA + relB) * 0.5
			weight = vmath.Clamp(link.Weight*(0.58+influence*0.92), 0.22, 0.99)
		}
		resolved = append(resolved, ActorConnection{From: from, To: to, Weight: weight})
	}

	if len(resolved) == 0 && len(actors) > 1 {
		for i := 0; i < len(actors)-1; i++ {
			relA := relevanceOr(relevance, actors[i].Name, 0.55)
			relB := relevanceOr(relevance, actors[i+1].Name, 0.55)
			resolved = append(resolved, ActorConnection{
				From:   i,
				To:     i + 1,
				Weight: vmath.Clamp(0.45+(relA+relB)*0.18, 0.24, 0.8),
			})
		}
	}

	return resolved
}

func relevanceOr(m map[string]float64, name string, fallback float64) float64 {
	if m == nil {
		return fallback
	}
	if v, ok := m[name]; ok && v != 0 {
		return v
	}
	return fallback
}

// SortByWeight returns a copy ordered by descending weight, ties keep input order
func SortByWeight(edges []ActorConnection) []ActorConnection {
	out := make([]ActorConnection, len(edges))
	copy(out, edges)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Weight > out[j].Weight
	})
	return out
}

// StrengthLabel buckets an edge weight
func StrengthLabel(weight float64) string {
	switch {
	case weight >= 0.78:
		return "Strong"
	case weight >= 0.58:
		return "Medium"
	default:
		return "Weak"
	}
}
