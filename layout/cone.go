package layout

import (
	"math"

	"github.com/lixenwraith/nri-constellation/vmath"
)

// ConeLevels is the number of discrete tiers the cone level snaps toward
const ConeLevels = 4

// ConeAnchor is the alternate 3D position of an actor on a vertical cone
// Level 1 is the wide top (most influential), 0 the narrow bottom
type ConeAnchor struct {
	X3, Y3, Z3 float64
	Level      float64
	Radius     float64
	Angle      float64
}

// ConeShape sizes the cone relative to the surface extent
type ConeShape struct {
	TopRadius    float64
	BottomRadius float64
	Height       float64
}

// ShapeFor returns the default cone for a w×h surface
func ShapeFor(w, h float64) ConeShape {
	extent := math.Min(w, h)
	return ConeShape{
		TopRadius:    extent * 0.44,
		BottomRadius: extent * 0.1,
		Height:       extent * 0.62,
	}
}

// ConeLevel blends influence with vertical screen position, then snaps partially toward tiers
func ConeLevel(influence, y, h float64) float64 {
	yNorm := 0.5
	if h > 0 {
		yNorm = vmath.Clamp01(y / h)
	}
	raw := vmath.Clamp01(influence*0.68 + (1-yNorm)*0.32)
	tiers := float64(ConeLevels - 1)
	snapped := math.Round(raw*tiers) / tiers
	return vmath.Clamp01(vmath.Lerp(raw, snapped, 0.55))
}

// BuildConeAnchors re-projects flat anchors onto the cone
func BuildConeAnchors(anchors []Anchor, influence Normalizer, w, h float64) []ConeAnchor {
	shape := ShapeFor(w, h)
	out := make([]ConeAnchor, len(anchors))
	for i, a := range anchors {
		level := ConeLevel(vmath.Finite(influence(i), 0.5), a.Y, h)
		radius := vmath.Lerp(shape.BottomRadius, shape.TopRadius, level)
		jitter := (vmath.Hash01(float64(i+1)*53+7) - 0.5) * 0.35
		angle := a.Angle + jitter
		out[i] = ConeAnchor{
			X3:     math.Cos(angle) * radius,
			Y3:     (level - 0.5) * shape.Height,
			Z3:     math.Sin(angle) * radius,
			Level:  level,
			Radius: radius,
			Angle:  angle,
		}
	}
	return out
}

// Projected is a screen-space point with its depth cue
// Depth 0 is the far side of the scene, 1 the near side
type Projected struct {
	X, Y  float64
	Scale float64
	Depth float64
}

// ConeProjector maps cone space to the screen with distance-based perspective
type ConeProjector struct {
	CameraDistance float64
	DepthScale     float64
	CenterX        float64
	CenterY        float64
	Tilt           float64 // vertical share of depth, gives the elevated view
	Yaw            float64
	MaxRadius      float64
}

// NewConeProjector sizes a projector for a w×h surface
func NewConeProjector(w, h float64) ConeProjector {
	cx, cy := Center(w, h)
	shape := ShapeFor(w, h)
	return ConeProjector{
		CameraDistance: math.Min(w, h) * 1.6,
		DepthScale:     math.Min(w, h) * 0.42,
		CenterX:        cx,
		CenterY:        cy,
		Tilt:           0.32,
		MaxRadius:      shape.TopRadius,
	}
}

// Project returns the screen position of a cone-space point
func (p ConeProjector) Project(x3, y3, z3 float64) Projected {
	s, c := math.Sincos(p.Yaw)
	x := x3*c - z3*s
	z := x3*s + z3*c

	depth := 0.5
	if p.MaxRadius > 0 {
		depth = vmath.Clamp01((z/p.MaxRadius + 1) * 0.5)
	}

	denom := p.CameraDistance - (depth-0.5)*2*p.DepthScale
	if denom < 1 {
		denom = 1
	}
	persp := p.CameraDistance / denom

	return Projected{
		X:     p.CenterX + x*persp,
		Y:     p.CenterY + (-y3+z*p.Tilt)*persp,
		Scale: persp,
		Depth: depth,
	}
}
