package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector for world-space positions and particle offsets
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FCross(a, b Vec3F) Vec3F {
	return Vec3F{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FLerp interpolates component-wise
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t), Lerp(a.Z, b.Z, t)}
}

// V3FRotateY rotates v around the Y axis in the XZ plane by precomputed sin/cos
func V3FRotateY(v Vec3F, sinA, cosA float64) Vec3F {
	return Vec3F{
		X: v.X*cosA - v.Z*sinA,
		Y: v.Y,
		Z: v.X*sinA + v.Z*cosA,
	}
}

// SphericalOffset maps three uniform samples to a point inside a sphere of the given scale
// Radius is biased by u^bias so density peaks at the center with a long outer tail
func SphericalOffset(u, v, w, scale, bias float64) Vec3F {
	theta := 2 * math.Pi * u
	phi := math.Acos(Clamp(2*v-1, -1, 1))
	r := math.Pow(w, bias) * scale
	sinPhi := math.Sin(phi)
	return Vec3F{
		X: r * sinPhi * math.Cos(theta),
		Y: r * sinPhi * math.Sin(theta),
		Z: r * math.Cos(phi),
	}
}
