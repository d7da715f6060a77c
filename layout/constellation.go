package layout

import (
	"math"

	"github.com/lixenwraith/nri-constellation/model"
	"github.com/lixenwraith/nri-constellation/vmath"
)

const (
	macroRingX = 42.0
	macroRingY = 30.0
)

// MacroAnchor is a cluster's slot on the macro ring plus its sway parameters
type MacroAnchor struct {
	Angle     float64
	X, Y      float64
	SwayAmp   float64
	SwaySpeed float64
}

// WorldPos is a cluster's world position for one frame
type WorldPos struct {
	X, Y           float64
	MacroX, MacroY float64
}

// BuildMacroAnchors spaces count clusters evenly on an ellipse starting at the top
func BuildMacroAnchors(count int) []MacroAnchor {
	out := make([]MacroAnchor, count)
	lift := 1.0
	if count <= 3 {
		lift = 1.1
	}
	for i := range out {
		angle := -math.Pi/2 + math.Pi*2*float64(i)/float64(count)
		out[i] = MacroAnchor{
			Angle:     angle,
			X:         math.Cos(angle) * macroRingX * lift,
			Y:         math.Sin(angle) * macroRingY * lift,
			SwayAmp:   1.1 + vmath.Hash01(float64(i+1)*31.7)*1.1,
			SwaySpeed: 0.13 + vmath.Hash01(float64(i+1)*57.3)*0.11,
		}
	}
	return out
}

// ClusterWorld animates the ring and blends each cluster toward its static position by s1
func ClusterWorld(anchors []MacroAnchor, clusters []model.Cluster, time, s1 float64) []WorldPos {
	swirl := math.Sin(time*0.12) * 0.22
	blend := math.Pow(vmath.Clamp01(s1), 0.84)
	sinS, cosS := math.Sincos(swirl)

	n := min(len(anchors), len(clusters))
	out := make([]WorldPos, n)
	for ci := 0; ci < n; ci++ {
		a := anchors[ci]
		c := float64(ci)
		rotA := a.Angle + swirl
		ringX := a.X*cosS - a.Y*sinS
		ringY := a.X*sinS + a.Y*cosS
		driftX := math.Cos(time*a.SwaySpeed+c*1.37) * a.SwayAmp
		driftY := math.Sin(time*a.SwaySpeed*0.82+c*1.71) * a.SwayAmp * 0.76

		macroX := ringX + driftX + math.Cos(rotA*2.0+time*0.08)*0.7
		macroY := ringY + driftY + math.Sin(rotA*1.6+time*0.07)*0.5

		out[ci] = WorldPos{
			X:      vmath.Lerp(macroX, clusters[ci].X, blend),
			Y:      vmath.Lerp(macroY, clusters[ci].Y, blend),
			MacroX: macroX,
			MacroY: macroY,
		}
	}
	return out
}

// SubSpread scales sub-topic offsets with the first LOD factor
func SubSpread(s1 float64) float64 { return vmath.Lerp(0.48, 2.25, s1) }

// MicroSpread scales micro-narrative offsets with the second LOD factor
func MicroSpread(s2 float64) float64 { return vmath.Lerp(0.4, 3.55, s2) }

// SubWorld positions a sub-topic relative to its cluster, with a wobble that settles as s1 grows
func SubWorld(base WorldPos, sub model.SubTopic, si int, time, s1 float64) (x, y float64) {
	wobble := (1 - s1*0.5) * 0.5
	spread := SubSpread(s1)
	x = base.X + sub.OffX*spread + math.Sin(time*0.58+float64(si)*1.9)*wobble
	y = base.Y + sub.OffY*spread + math.Cos(time*0.53+float64(si)*1.4)*wobble
	return x, y
}

// MicroWorld positions a micro-narrative relative to its sub-topic
func MicroWorld(base WorldPos, sub model.SubTopic, mic model.MicroNarrative, mi int, time, s1, s2 float64) (x, y float64) {
	wobble := (1 - s2*0.6) * 0.28
	subSpread := SubSpread(s1)
	microSpread := MicroSpread(s2)
	x = base.X + sub.OffX*subSpread + mic.OffX*microSpread + math.Sin(time*0.82+float64(mi)*1.2)*wobble
	y = base.Y + sub.OffY*subSpread + mic.OffY*microSpread + math.Cos(time*0.78+float64(mi)*1.6)*wobble
	return x, y
}
