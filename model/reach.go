package model

import (
	"math"
	"strconv"
	"strings"
)

// ParseReach converts labels such as "2.1M" or "145K" to an absolute count
// Unparseable labels yield 0
func ParseReach(label string) float64 {
	clean := strings.ToUpper(strings.TrimSpace(label))
	if clean == "" {
		return 0
	}
	mult := 1.0
	switch {
	case strings.HasSuffix(clean, "M"):
		mult = 1_000_000
	case strings.HasSuffix(clean, "K"):
		mult = 1_000
	}
	clean = strings.NewReplacer("M", "", "K", "").Replace(clean)
	base, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(base) || math.IsInf(base, 0) {
		return 0
	}
	return base * mult
}

// ClusterAvgScore returns the mean sub-topic sentiment rounded to two decimals
func ClusterAvgScore(c Cluster) float64 {
	if len(c.SubTopics) == 0 {
		return 0
	}
	var total float64
	for _, s := range c.SubTopics {
		total += s.Score
	}
	return math.Round(total/float64(len(c.SubTopics))*100) / 100
}

// ClusterNRI distributes the overall index across clusters by sentiment deviation and risk level
// The sub-topic-count weighted mean of the result equals overall
func ClusterNRI(clusters []Cluster, overall float64) map[int]float64 {
	out := make(map[int]float64, len(clusters))
	if len(clusters) == 0 {
		return out
	}

	const sensitivity = 30.0

	type entry struct {
		id     int
		avg    float64
		weight float64
		adj    float64
	}
	entries := make([]entry, len(clusters))
	var totalWeight float64
	for i, c := range clusters {
		e := entry{
			id:     c.ID,
			avg:    ClusterAvgScore(c),
			weight: math.Max(1, float64(len(c.SubTopics))),
		}
		switch c.RiskLevel {
		case RiskRed:
			e.adj = 5.8
		case RiskAmber:
			e.adj = 2.2
		default:
			e.adj = -2.8
		}
		entries[i] = e
		totalWeight += e.weight
	}
	if totalWeight == 0 {
		totalWeight = 1
	}

	var weightedMean float64
	for _, e := range entries {
		weightedMean += e.avg * e.weight
	}
	weightedMean /= totalWeight

	raw := make([]float64, len(entries))
	var rawMean float64
	for i, e := range entries {
		raw[i] = overall - (e.avg-weightedMean)*sensitivity + e.adj
		rawMean += raw[i] * e.weight
	}
	rawMean /= totalWeight
	shift := overall - rawMean

	for i, e := range entries {
		out[e.id] = raw[i] + shift
	}
	return out
}

// SentimentLabel buckets a sentiment score for display
func SentimentLabel(score float64) string {
	switch {
	case score > 0.3:
		return "Positiv"
	case score < -0.3:
		return "Negativ"
	default:
		return "Neutral"
	}
}
