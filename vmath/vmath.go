package vmath

import "math"

// GoldenAngle is π(3−√5), the angular increment that avoids periodic clustering
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// --- Scalar ---

// Lerp interpolates a→b by t, t is not clamped
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// SmoothStep returns the Hermite smoothstep of x over [start, end]
// Degenerate range acts as a hard step at end
func SmoothStep(start, end, x float64) float64 {
	if start == end {
		if x >= end {
			return 1
		}
		return 0
	}
	t := Clamp01((x - start) / (end - start))
	return t * t * (3 - 2*t)
}

// Fract returns the fractional part, always in [0, 1)
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// Hash01 maps an integer-valued seed to a stable pseudo-random value in [0, 1)
// Same seed always yields the same value; no state is kept between calls
func Hash01(seed float64) float64 {
	return Fract(math.Sin(seed*12.9898) * 43758.5453)
}

// Wrap01 returns x mod 1 for positive and negative x
func Wrap01(x float64) float64 {
	return Fract(x)
}

// Finite replaces NaN and ±Inf with fallback
func Finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// --- 2D ---

// Dist returns the euclidean distance between two points
func Dist(x0, y0, x1, y1 float64) float64 {
	return math.Hypot(x1-x0, y1-y0)
}

// Perpendicular returns the unit normal of the segment (x0,y0)→(x1,y1)
// Zero-length segments return (0, 0)
func Perpendicular(x0, y0, x1, y1 float64) (px, py float64) {
	dx, dy := x1-x0, y1-y0
	d := math.Hypot(dx, dy)
	if d == 0 {
		return 0, 0
	}
	return -dy / d, dx / d
}

// Rotate rotates (x, y) by angle radians
func Rotate(x, y, angle float64) (rx, ry float64) {
	s, c := math.Sincos(angle)
	return x*c - y*s, x*s + y*c
}
