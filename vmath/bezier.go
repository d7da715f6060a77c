package vmath

// QuadPoint samples a quadratic Bézier at t
func QuadPoint(t, x0, y0, cx, cy, x1, y1 float64) (x, y float64) {
	mt := 1 - t
	a := mt * mt
	b := 2 * mt * t
	c := t * t
	return a*x0 + b*cx + c*x1, a*y0 + b*cy + c*y1
}

// TravelPhase returns the normalized position of a traveling marker on an edge
// (time*speed + index*phase) mod 1
func TravelPhase(time, speed float64, index int, phase float64) float64 {
	return Wrap01(time*speed + float64(index)*phase)
}
