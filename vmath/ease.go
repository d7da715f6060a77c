package vmath

import "math"

// EaseFunc maps linear progress [0,1] to eased progress [0,1]
type EaseFunc func(t float64) float64

func EaseLinear(t float64) float64 { return t }

func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

func EaseOutQuart(t float64) float64 {
	return 1 - math.Pow(1-t, 4)
}
