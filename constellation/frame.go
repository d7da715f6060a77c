package constellation

import (
	"math"
	"time"

	"github.com/lixenwraith/nri-constellation/interact"
	"github.com/lixenwraith/nri-constellation/layout"
	"github.com/lixenwraith/nri-constellation/particle"
	"github.com/lixenwraith/nri-constellation/render"
	"github.com/lixenwraith/nri-constellation/vmath"
)

// particleSpan converts particle size and view distance into a sprite radius
const particleSpan = 280.0

var (
	clearColor  = render.RGB{R: 0x05, G: 0x07, B: 0x0a}
	offlineText = render.RGB{R: 194, G: 201, B: 214}
	bridgeMid   = render.RGB{R: 203, G: 213, B: 225}
	subDotColor = render.RGB{R: 248, G: 251, B: 255}
)

// glowStops is the falloff of one particle sprite
var glowStops = []render.Stop{
	{Offset: 0, Color: render.RGBWhite, Alpha: 1},
	{Offset: 0.08, Color: render.RGBWhite, Alpha: 0.76},
	{Offset: 0.2, Color: render.RGBWhite, Alpha: 0.33},
	{Offset: 0.42, Color: render.RGBWhite, Alpha: 0.1},
	{Offset: 0.7, Color: render.RGBWhite, Alpha: 0.02},
	{Offset: 1, Color: render.RGBWhite, Alpha: 0},
}

// screenPoint is a cluster projected for the overlay
type screenPoint struct {
	x, y    float64
	visible bool
}

// frame advances the camera and particles one tick, draws, and reschedules itself
func (e *Engine) frame(now time.Time) {
	if e.closed {
		return
	}
	t := e.animTime(now)
	e.step(t)

	c := e.surface.Canvas()
	c.Clear(clearColor)
	e.drawParticles(c, t)
	e.drawHUD(c, t)

	e.frameID = e.surface.RequestFrame(e.frame)
}

// step eases zoom, pointer parallax and camera, then moves every particle to time t
func (e *Engine) step(t float64) {
	e.ent = e.entrance(t)
	e.zoom.Ease(interact.ZoomEase)
	e.mouseNormX += (e.mouseTargetX - e.mouseNormX) * mouseEase
	e.mouseNormY += (e.mouseTargetY - e.mouseNormY) * mouseEase

	z := e.zoom.Current
	e.s1, e.s2 = particle.LOD(z)
	layback := vmath.SmoothStep(1.4, 4.0, z)
	parallax := vmath.Lerp(0.42, 0.22, vmath.SmoothStep(1.2, 3.1, z))
	follow := 1.0
	if e.drag.Active {
		follow = 0
	}

	targetX := e.pan.X + e.mouseNormX*parallax*follow
	targetY := -e.pan.Y - e.mouseNormY*parallax*follow + e.s2*1.4 - layback*14
	targetZ := cameraDistance/z - e.s2*12

	cam := e.camera
	if e.surface.ReducedMotion() {
		cam.Position.X, cam.Position.Y, cam.Position.Z = targetX, targetY, targetZ
	} else {
		cam.Position.X += (targetX - cam.Position.X) * cameraEaseXY
		cam.Position.Y += (targetY - cam.Position.Y) * cameraEaseXY
		cam.Position.Z += (targetZ - cam.Position.Z) * cameraEaseZ
	}
	cam.LookAt(cam.Position.X+layback*6, cam.Position.Y+layback*36, 0)

	e.world = layout.ClusterWorld(e.anchors, e.clusters, t, e.s1)
	e.field.Update(t, e.s1, e.s2, e.ent, e.world)
}

// project maps a world point on the z=0 plane to the screen
func (e *Engine) project(x, y float64) render.Projection {
	return e.camera.Project(vmath.Vec3F{X: x, Y: y}, e.w, e.h)
}

func (e *Engine) drawParticles(c *render.Canvas, t float64) {
	sinY, cosY := math.Sincos(math.Sin(t*0.05) * 0.05)
	sinX, cosX := math.Sincos(math.Cos(t*0.04) * 0.02)
	stops := append([]render.Stop(nil), glowStops...)

	for i := range e.field.Points {
		p := &e.field.Points[i]
		pos := vmath.V3FRotateY(p.Pos, sinY, cosY)
		pos.Y, pos.Z = pos.Y*cosX-pos.Z*sinX, pos.Y*sinX+pos.Z*cosX

		proj := e.camera.Project(pos, e.w, e.h)
		if !proj.Visible() {
			continue
		}
		breathe := p.Breathe(t)
		r := render.PointScale(proj.W, p.Size*breathe*particleSpan)
		if r <= 0 {
			continue
		}
		for k := range stops {
			stops[k].Color = p.Color
		}
		c.RadialGradient(proj.X, proj.Y, 0, r, stops, 0.74*breathe, render.BlendAdd)
	}
}

// drawHUD paints the overlay and rebuilds the hit regions for this frame
func (e *Engine) drawHUD(c *render.Canvas, t float64) {
	e.hits.Reset()
	e.drawBackdrop(c, t)

	screens := make([]screenPoint, len(e.world))
	for ci, w := range e.world {
		p := e.project(w.X, w.Y)
		screens[ci] = screenPoint{x: p.X, y: p.Y, visible: p.Visible()}
	}

	e.drawBridges(c, screens, t)
	for ci := range screens {
		if screens[ci].visible {
			e.drawCluster(c, ci, screens[ci], t)
		}
	}
}

func (e *Engine) drawBackdrop(c *render.Canvas, t float64) {
	w, h := e.w, e.h
	cx, cy := w*0.5, h*0.52

	c.VerticalGradient([]render.Stop{
		{Offset: 0, Color: render.RGB{R: 10, G: 14, B: 20}, Alpha: 0.56},
		{Offset: 1, Color: render.RGB{R: 4, G: 7, B: 11}, Alpha: 0.3},
	}, 1, render.BlendAlpha)

	shimmerX := cx + math.Sin(t*0.18)*w*0.12
	shimmerY := cy + math.Cos(t*0.15)*h*0.1
	c.RadialGradient(shimmerX, shimmerY, 0, math.Max(w, h)*0.58, []render.Stop{
		{Offset: 0, Color: render.RGB{R: 255, G: 175, B: 130}, Alpha: 0.07},
		{Offset: 0.45, Color: render.RGB{R: 148, G: 163, B: 184}, Alpha: 0.03},
		{Offset: 1, Color: render.RGB{R: 148, G: 163, B: 184}, Alpha: 0},
	}, 0.82*e.ent, render.BlendAlpha)

	extent := math.Min(w, h)
	c.RadialGradient(cx, cy, extent*0.02, extent*(0.28+(1-e.s1)*0.06), []render.Stop{
		{Offset: 0, Color: render.RGB{R: 255, G: 182, B: 138}, Alpha: 0.08},
		{Offset: 0.45, Color: render.RGB{R: 160, G: 178, B: 201}, Alpha: 0.035},
		{Offset: 1, Color: render.RGB{R: 160, G: 178, B: 201}, Alpha: 0},
	}, 0.78*(1-e.s2*0.35), render.BlendAlpha)

	c.RadialGradient(cx, cy, w*0.16, w*0.78, []render.Stop{
		{Offset: 0, Color: render.RGB{R: 3, G: 5, B: 8}, Alpha: 0},
		{Offset: 1, Color: render.RGB{R: 3, G: 5, B: 8}, Alpha: 0.72},
	}, 0.9, render.BlendAlpha)
}

// drawBridges links every visible cluster pair with a dashed curve bent toward the center
func (e *Engine) drawBridges(c *render.Canvas, screens []screenPoint, t float64) {
	macroAlpha := e.ent * (1 - e.s1*0.72)
	if macroAlpha <= 0.02 {
		return
	}
	pair := 0
	for i := range screens {
		a := screens[i]
		if !a.visible {
			continue
		}
		for j := i + 1; j < len(screens); j++ {
			b := screens[j]
			if !b.visible {
				continue
			}
			cpx, cpy := bridgeControl(a, b, e.w, e.h, pair)
			pf := float64(pair)

			c.QuadCurve(a.x, a.y, cpx, cpy, b.x, b.y, render.Stroke{
				Width: 1.15,
				Alpha: macroAlpha * 0.15,
				Gradient: []render.Stop{
					{Offset: 0, Color: e.accents[i], Alpha: 0.9},
					{Offset: 0.5, Color: bridgeMid, Alpha: 0.46},
					{Offset: 1, Color: e.accents[j], Alpha: 0.9},
				},
				Dash:       [2]float64{2, 8},
				DashOffset: t*16 + pf*5,
			})
			c.QuadCurve(a.x, a.y, cpx, cpy, b.x, b.y, render.Stroke{
				Width: 0.7,
				Color: bridgeMid,
				Alpha: macroAlpha * 0.06 * 0.34,
			})

			pt := vmath.TravelPhase(t, 0.06+pf*0.007, pair, 0.23)
			px, py := vmath.QuadPoint(pt, a.x, a.y, cpx, cpy, b.x, b.y)
			c.RadialGradient(px, py, 0, 6.2, []render.Stop{
				{Offset: 0, Color: render.RGBWhite, Alpha: 0.82},
				{Offset: 0.28, Color: e.accents[i], Alpha: 0.35},
				{Offset: 1, Color: e.accents[i], Alpha: 0},
			}, macroAlpha*0.5, render.BlendAlpha)
			pair++
		}
	}
}

// bridgeControl is the control point of a bridge: the midpoint pulled 40% toward the overlay
// center plus an alternating perpendicular bend capped at 110px
func bridgeControl(a, b screenPoint, w, h float64, pair int) (float64, float64) {
	dist := vmath.Dist(a.x, a.y, b.x, b.y)
	perpX, perpY := vmath.Perpendicular(a.x, a.y, b.x, b.y)
	mx, my := (a.x+b.x)*0.5, (a.y+b.y)*0.5
	bend := math.Min(110, dist*0.35) * alternate(pair)
	return mx + (w*0.5-mx)*0.4 + perpX*bend, my + (h*0.52-my)*0.4 + perpY*bend
}

func alternate(i int) float64 {
	if i%2 == 0 {
		return 1
	}
	return -1
}

// curveControl bends a link sideways by curvature times its length
func curveControl(x0, y0, x1, y1, curvature float64, i int) (float64, float64) {
	dist := vmath.Dist(x0, y0, x1, y1)
	perpX, perpY := vmath.Perpendicular(x0, y0, x1, y1)
	curv := dist * curvature * alternate(i)
	return (x0+x1)*0.5 + perpX*curv, (y0+y1)*0.5 + perpY*curv
}

// clusterScore is the cluster's share of the headline index
func (e *Engine) clusterScore(id int) float64 {
	if v, ok := e.nri[id]; ok {
		return v
	}
	if e.catalog.NRI.Score != 0 {
		return e.catalog.NRI.Score
	}
	return 67
}

func (e *Engine) drawCluster(c *render.Canvas, ci int, sp screenPoint, t float64) {
	cluster := e.clusters[ci]
	col := e.accents[ci]
	s1, s2, ent := e.s1, e.s2, e.ent
	cif := float64(ci)

	pulse := 1 + math.Sin(t*0.72+cif*1.85)*0.1
	vis := ent * (1 - s1*0.16)

	outerR := 94 * pulse * (1 - s1*0.24)
	c.RadialGradient(sp.x, sp.y, 0, outerR, []render.Stop{
		{Offset: 0, Color: col, Alpha: 0.35},
		{Offset: 0.42, Color: col, Alpha: 0.11},
		{Offset: 1, Color: col, Alpha: 0},
	}, vis*0.18, render.BlendAlpha)

	c.Ring(sp.x, sp.y, 16+math.Sin(t*0.55+cif)*1.8, 1.1, col, vis*0.3*0.7, render.BlendAlpha)

	c.RadialGradient(sp.x, sp.y, 0, 12.5*pulse, []render.Stop{
		{Offset: 0, Color: render.RGBWhite, Alpha: 0.92},
		{Offset: 0.25, Color: col, Alpha: 0.62},
		{Offset: 1, Color: col, Alpha: 0},
	}, vis*0.62, render.BlendAlpha)

	c.Disc(sp.x, sp.y, 2.35*pulse, render.RGBWhite, vis*0.92, render.BlendAlpha)

	if s1 < 0.98 {
		box := render.ClusterPill{
			X:        sp.x,
			Y:        sp.y - 60,
			Title:    cluster.Label,
			Score:    e.clusterScore(cluster.ID),
			SubCount: len(cluster.SubTopics),
			Accent:   col,
			Risk:     string(cluster.RiskLevel),
			Alpha:    (1 - vmath.SmoothStep(0, 0.95, s1)) * ent,
		}.Draw(c)
		e.hits.Push(box, func() { e.opts.OnCluster(cluster) })
	}

	if s1 < 0.06 {
		return
	}

	base := e.world[ci]
	for si, sub := range cluster.SubTopics {
		wx, wy := layout.SubWorld(base, sub, si, t, s1)
		p := e.project(wx, wy)
		if !p.Visible() {
			continue
		}
		alpha := s1 * ent * (1 - s2*0.42)
		if alpha <= 0.01 {
			continue
		}
		sif := float64(si)

		cpx, cpy := curveControl(sp.x, sp.y, p.X, p.Y, 0.16, si)
		c.QuadCurve(sp.x, sp.y, cpx, cpy, p.X, p.Y, render.Stroke{
			Width:      1.05,
			Color:      col,
			Alpha:      alpha * 0.15 * 0.92,
			Dash:       [2]float64{2, 7},
			DashOffset: t*14 + sif*4,
		})

		pt := vmath.TravelPhase(t, 0.11+sif*0.024, si, 0.27)
		px, py := vmath.QuadPoint(pt, sp.x, sp.y, cpx, cpy, p.X, p.Y)
		c.RadialGradient(px, py, 0, 5.2, []render.Stop{
			{Offset: 0, Color: col, Alpha: 0.86},
			{Offset: 0.38, Color: col, Alpha: 0.2},
			{Offset: 1, Color: col, Alpha: 0},
		}, alpha*0.48, render.BlendAlpha)

		subPulse := 1 + math.Sin(t*0.92+sif*1.8)*0.09
		c.RadialGradient(p.X, p.Y, 0, 21*subPulse, []render.Stop{
			{Offset: 0, Color: col, Alpha: 0.35},
			{Offset: 0.5, Color: col, Alpha: 0.06},
			{Offset: 1, Color: col, Alpha: 0},
		}, alpha*0.22, render.BlendAlpha)
		c.Disc(p.X, p.Y, 1.9, subDotColor, alpha*0.84, render.BlendAlpha)

		if la := alpha * (1 - vmath.SmoothStep(0.72, 0.94, s2)); la > 0.03 {
			box := render.SubPill{X: p.X, Y: p.Y + 14, Text: sub.Label, Accent: col, Alpha: la}.Draw(c)
			e.hits.Push(box, func() { e.opts.OnSub(sub, cluster) })
		}

		if s2 < 0.04 {
			continue
		}
		e.drawMicros(c, ci, si, p.X, p.Y, t)
	}
}

func (e *Engine) drawMicros(c *render.Canvas, ci, si int, sx, sy, t float64) {
	cluster := e.clusters[ci]
	sub := cluster.SubTopics[si]
	col := e.accents[ci]
	alpha := e.s2 * e.ent
	if alpha <= 0.01 {
		return
	}

	for mi, mic := range sub.Micro {
		wx, wy := layout.MicroWorld(e.world[ci], sub, mic, mi, t, e.s1, e.s2)
		p := e.project(wx, wy)
		if !p.Visible() {
			continue
		}

		cpx, cpy := curveControl(sx, sy, p.X, p.Y, 0.12, mi)
		c.QuadCurve(sx, sy, cpx, cpy, p.X, p.Y, render.Stroke{Width: 0.65, Color: col, Alpha: alpha * 0.1 * 0.85})

		pt := vmath.TravelPhase(t, 0.085, mi, 0.33)
		px, py := vmath.QuadPoint(pt, sx, sy, cpx, cpy, p.X, p.Y)
		c.Glow(px, py, 3.2, col, alpha*0.7*0.36, render.BlendAlpha)
		c.Disc(p.X, p.Y, 1.35, col, alpha*0.58*0.58, render.BlendAlpha)

		open := func() { e.opts.OnMicro(mic, sub, cluster) }
		e.hits.Push(render.Rect{X: p.X - 8, Y: p.Y - 8, W: 16, H: 16}, open)

		if la := alpha * vmath.SmoothStep(0.24, 0.62, e.s2); la > 0.03 {
			box := render.MicroTag{X: p.X, Y: p.Y, Text: mic.Label, Accent: col, Alpha: la}.Draw(c)
			e.hits.Push(box, open)
		}
	}
}

// drawOffline leaves the notice centered on an otherwise empty canvas
func (e *Engine) drawOffline() {
	c := e.surface.Canvas()
	c.Resize(e.w, e.h, e.surface.PixelRatio())
	c.Clear(clearColor)
	c.Text(e.w*0.5, e.h*0.5, OfflineReadout, render.TextStyle{Color: offlineText, Alpha: 1, Align: render.AlignCenter})
}
