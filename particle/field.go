package particle

import (
	"math"

	"github.com/lixenwraith/nri-constellation/layout"
	"github.com/lixenwraith/nri-constellation/model"
	"github.com/lixenwraith/nri-constellation/render"
	"github.com/lixenwraith/nri-constellation/vmath"
)

// DefaultCount is the constellation particle budget
const DefaultCount = 2400

// Spherical cloud radii per LOD level and the shared radial bias
const (
	macroRadius = 24.5
	subRadius   = 7.4
	microRadius = 3.2
	radialBias  = 1.48
)

// coolWhite is the tint every cluster colour is pulled toward
var coolWhite = render.RGB{R: 0xdc, G: 0xe5, B: 0xf1}

// Stage is the human readable zoom level
type Stage string

const (
	StageMacro Stage = "Makro"
	StageSub   Stage = "Sub"
	StageMicro Stage = "Mikro"
)

// LOD returns the two level-of-detail factors for a zoom value
func LOD(zoom float64) (s1, s2 float64) {
	return vmath.SmoothStep(1.0, 2.1, zoom), vmath.SmoothStep(2.2, 4.2, zoom)
}

// StageFor maps zoom to the readout stage
func StageFor(zoom float64) Stage {
	switch {
	case zoom >= 2.75:
		return StageMicro
	case zoom >= 1.35:
		return StageSub
	}
	return StageMacro
}

// Point is one constellation particle with its three LOD offsets
type Point struct {
	Cluster, Sub, Micro int
	L1, L2, L3          vmath.Vec3F

	OrbitSpeed float64
	DriftSpeed float64
	DriftAmp   float64
	Phase      float64

	Size  float64
	Color render.RGB

	Pos vmath.Vec3F
}

// Field is the constellation particle set
type Field struct {
	Points   []Point
	clusters []model.Cluster
}

// seed derives a per-particle, per-attribute hash
func seed(i, salt int) float64 {
	return vmath.Hash01(float64(i)*97.13 + float64(salt)*7919.7 + 1)
}

// Generate distributes count particles round-robin over clusters
func Generate(clusters []model.Cluster, count int) *Field {
	f := &Field{clusters: clusters}
	if len(clusters) == 0 || count <= 0 {
		return f
	}
	f.Points = make([]Point, count)

	for i := range f.Points {
		ci := i % len(clusters)
		cluster := clusters[ci]

		si, mi := -1, -1
		if n := len(cluster.SubTopics); n > 0 {
			si = min(int(seed(i, 1)*float64(n)), n-1)
			if m := len(cluster.SubTopics[si].Micro); m > 0 {
				mi = min(int(seed(i, 2)*float64(m)), m-1)
			}
		}

		sign := 1.0
		if seed(i, 6) <= 0.5 {
			sign = -1
		}

		base := render.Hex(cluster.Color, coolWhite)

		f.Points[i] = Point{
			Cluster:    ci,
			Sub:        si,
			Micro:      mi,
			L1:         vmath.SphericalOffset(seed(i, 3), seed(i, 4), seed(i, 5), macroRadius, radialBias),
			L2:         vmath.SphericalOffset(seed(i, 7), seed(i, 8), seed(i, 9), subRadius, radialBias),
			L3:         vmath.SphericalOffset(seed(i, 10), seed(i, 11), seed(i, 12), microRadius, radialBias),
			OrbitSpeed: (0.018 + seed(i, 14)*0.052) * sign,
			DriftSpeed: 0.12 + seed(i, 15)*0.2,
			DriftAmp:   0.26 + seed(i, 16)*0.58,
			Phase:      seed(i, 17) * math.Pi * 2,
			Size:       sizeTier(seed(i, 18), seed(i, 19)),
			Color:      render.MixLab(base, coolWhite, 0.48+seed(i, 13)*0.38),
			Pos:        vmath.Vec3F{X: cluster.X, Y: cluster.Y},
		}
	}
	return f
}

// sizeTier gives most particles a fine grain with a sparse set of bright motes
func sizeTier(r, v float64) float64 {
	switch {
	case r < 0.7:
		return 0.24 + v*0.32
	case r < 0.93:
		return 0.56 + v*0.46
	}
	return 1.0 + v
}

// Update recomputes every particle position for one frame
// ent is the eased entrance progress, world the per-cluster positions for this frame
func (f *Field) Update(time, s1, s2, ent float64, world []layout.WorldPos) {
	subSpread := layout.SubSpread(s1)
	microSpread := layout.MicroSpread(s2)
	cloudSpread := 0.42 + ent*0.58
	arc1 := math.Sin(s1*math.Pi) * 2.8
	arc2 := math.Sin(s2*math.Pi) * 1.6

	for i := range f.Points {
		p := &f.Points[i]
		if p.Cluster >= len(world) {
			continue
		}
		base := world[p.Cluster]

		var subOffX, subOffY, micOffX, micOffY float64
		if p.Sub >= 0 {
			sub := f.clusters[p.Cluster].SubTopics[p.Sub]
			subOffX, subOffY = sub.OffX*subSpread, sub.OffY*subSpread
			if p.Micro >= 0 {
				mic := sub.Micro[p.Micro]
				micOffX, micOffY = mic.OffX*microSpread, mic.OffY*microSpread
			}
		}

		sinA, cosA := math.Sincos(time * p.OrbitSpeed)
		dt := time * p.DriftSpeed
		drift := vmath.Vec3F{
			X: math.Sin(dt+p.Phase) * p.DriftAmp,
			Y: math.Cos(dt*0.72+p.Phase*1.3) * p.DriftAmp,
			Z: math.Sin(dt*0.5+p.Phase*2.0) * p.DriftAmp * 0.3,
		}

		r1 := vmath.V3FRotateY(p.L1, sinA, cosA)
		l1 := vmath.Vec3F{
			X: base.X + (r1.X+drift.X)*cloudSpread,
			Y: base.Y + (r1.Y+drift.Y)*cloudSpread,
			Z: (r1.Z + drift.Z) * cloudSpread,
		}

		r2 := vmath.V3FRotateY(p.L2, sinA, cosA)
		l2 := vmath.Vec3F{
			X: base.X + subOffX + r2.X + drift.X*0.45,
			Y: base.Y + subOffY + r2.Y + drift.Y*0.45,
			Z: r2.Z + drift.Z*0.45,
		}

		l3 := vmath.Vec3F{
			X: base.X + subOffX + micOffX + p.L3.X + drift.X*0.3,
			Y: base.Y + subOffY + micOffY + p.L3.Y + drift.Y*0.3,
			Z: p.L3.Z + drift.Z*0.3,
		}

		pos := vmath.V3FLerp(l1, l2, s1)
		pos.Z += arc1
		if s2 > 0 {
			pos = vmath.V3FLerp(pos, l3, s2)
			pos.Z += arc2
		}
		p.Pos = pos
	}
}

// Breathe is the per-particle size and alpha pulse
func (p *Point) Breathe(time float64) float64 {
	return 0.78 + 0.22*math.Sin(time*0.58+p.Phase)
}
