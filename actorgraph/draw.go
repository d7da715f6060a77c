package actorgraph

import (
	"math"
	"time"

	"github.com/lixenwraith/nri-constellation/blend"
	"github.com/lixenwraith/nri-constellation/interact"
	"github.com/lixenwraith/nri-constellation/layout"
	"github.com/lixenwraith/nri-constellation/render"
	"github.com/lixenwraith/nri-constellation/vmath"
)

// panPixels converts pan units to logical pixels so a drag tracks the pointer at unit zoom
const panPixels = 1 / interact.PanSpeed

// panReach caps the pan at this share of the shorter surface side, so some of the graph stays on screen
const panReach = 0.45

var (
	backgroundColor = render.RGB{R: 7, G: 10, B: 15}
	glowColor       = render.RGB{R: 255, G: 153, B: 102}
	nameColor       = render.RGB{R: 244, G: 247, B: 251}
	nameDimColor    = render.RGB{R: 169, G: 179, B: 195}
	reachColor      = render.RGB{R: 169, G: 179, B: 195}
	reachDimColor   = render.RGB{R: 127, G: 138, B: 156}
)

// placed is an actor's position for one frame after dataset, view and camera blending
type placed struct {
	anchor layout.Anchor // blended flat anchor in layout space
	lx, ly float64       // layout-space position after the view blend
	x, y   float64       // screen position
	scale  float64       // perspective times zoom
	depth  float64       // 0 far, 1 near
	ok     bool
}

type itemKind uint8

const (
	itemCurve itemKind = iota
	itemParticle
	itemAnchor
)

// drawItem is one depth-sortable primitive
type drawItem struct {
	depth float64
	kind  itemKind
	index int
	prev  bool
}

func (d drawItem) DrawDepth() float64 { return d.depth }

// layerPass is one dataset's draw state for a frame
type layerPass struct {
	rt        *runtime
	places    []placed
	curveMult float64
	partMult  float64
	nodeMult  float64
	active    int
}

type frameScratch struct {
	prev, cur []placed
	items     []drawItem
}

// frame renders one tick and reschedules itself
func (e *Engine) frame(now time.Time) {
	if e.closed {
		return
	}
	dt := math.Min(0.04, math.Max(0, now.Sub(e.lastTick).Seconds()))
	e.lastTick = now
	e.zoom.Ease(interact.ZoomEase)

	e.render(now, dt)
	e.frameID = e.surface.RequestFrame(e.frame)
}

// render draws the whole scene for now, advancing particles by dt
func (e *Engine) render(now time.Time, dt float64) {
	c := e.surface.Canvas()
	t := blend.Seconds(e.epoch, now)
	b := e.datasetBlend(now)
	vb := e.viewValue(now)
	if !e.reduced() {
		e.projector.Yaw = math.Sin(t*0.11) * 0.35 * vb
	}

	e.drawBackground(c)

	var passes [2]layerPass
	n := 0
	if e.previous != nil && b < 1 {
		e.scratch.prev = e.placeAll(e.scratch.prev, e.previous, nil, 1, vb)
		passes[n] = layerPass{
			rt:        e.previous,
			places:    e.scratch.prev,
			curveMult: (1 - b) * 0.62,
			partMult:  (1 - b) * 0.72,
			nodeMult:  (1 - b) * 0.62,
			active:    interact.None,
		}
		n++
	} else if b >= 1 {
		e.previous = nil
	}
	if e.active != nil {
		e.scratch.cur = e.placeAll(e.scratch.cur, e.active, e.previous, b, vb)
		passes[n] = layerPass{
			rt:        e.active,
			places:    e.scratch.cur,
			curveMult: 0.42 + b*0.58,
			partMult:  0.45 + b*0.55,
			nodeMult:  0.5 + b*0.5,
			active:    e.focus.Active(),
		}
		n++
	}

	items := e.scratch.items[:0]
	for pi := 0; pi < n; pi++ {
		items = appendItems(items, &passes[pi], pi == 0 && n == 2)
	}
	if vb > 0 {
		render.DepthSort(items)
	}
	e.scratch.items = items

	pt := t
	if e.reduced() {
		pt = 0
	}
	for _, it := range items {
		p := &passes[1]
		if it.prev || n == 1 {
			p = &passes[0]
		}
		switch it.kind {
		case itemCurve:
			e.drawCurve(c, p, it.index, vb)
		case itemParticle:
			e.drawParticle(c, p, it.index, dt, pt, vb)
		case itemAnchor:
			e.drawAnchor(c, p, it.index, t, vb)
		}
	}
}

// appendItems lists a pass's primitives in flat paint order: curves, particles, anchors
func appendItems(items []drawItem, p *layerPass, prev bool) []drawItem {
	rt := p.rt
	if p.curveMult > 0.01 {
		for i, edge := range rt.Connections {
			a, b := p.places[edge.From], p.places[edge.To]
			if !a.ok || !b.ok {
				continue
			}
			items = append(items, drawItem{depth: math.Min(a.depth, b.depth) - 0.002, kind: itemCurve, index: i, prev: prev})
		}
	}
	if p.partMult > 0.01 {
		for i := range rt.Particles {
			a := rt.Particles[i].Actor
			if a < 0 || a >= len(p.places) || !p.places[a].ok {
				continue
			}
			items = append(items, drawItem{depth: p.places[a].depth - 0.001, kind: itemParticle, index: i, prev: prev})
		}
	}
	if p.nodeMult > 0.01 {
		for i := range rt.Actors {
			if i < len(p.places) && p.places[i].ok {
				items = append(items, drawItem{depth: p.places[i].depth, kind: itemAnchor, index: i, prev: prev})
			}
		}
	}
	return items
}

func (e *Engine) drawBackground(c *render.Canvas) {
	c.Clear(backgroundColor)
	extent := math.Min(e.w, e.h)
	cx, cy := e.view(e.cx, e.cy)
	z := e.zoom.Current
	c.RadialGradient(cx, cy, 10, extent*0.62*z, []render.Stop{
		{Offset: 0, Color: glowColor, Alpha: 0.13},
		{Offset: 0.45, Color: glowColor, Alpha: 0.05},
		{Offset: 1, Color: glowColor, Alpha: 0},
	}, 1, render.BlendAlpha)
	for i := 1; i <= 4; i++ {
		r := (extent*0.14 + float64(i)*extent*0.075) * z
		c.Ring(cx, cy, r, 1, render.RGBWhite, 0.06, render.BlendAlpha)
	}
}

// view maps a layout-space point through zoom and pan to the screen
func (e *Engine) view(x, y float64) (float64, float64) {
	z := e.zoom.Current
	return e.cx + (x-e.cx-e.pan.X*panPixels)*z, e.cy + (y-e.cy-e.pan.Y*panPixels)*z
}

// placeAll resolves every actor of rt; from is the dataset being faded out, b the dataset blend
func (e *Engine) placeAll(buf []placed, rt, from *runtime, b, vb float64) []placed {
	buf = buf[:0]
	for i := range rt.Actors {
		buf = append(buf, e.place(rt, from, i, b, vb))
	}
	return buf
}

// place blends an actor between its previous and current dataset slot, then between flat and cone
func (e *Engine) place(rt, from *runtime, i int, b, vb float64) placed {
	if !rt.valid(i) {
		return placed{}
	}
	target := rt.Anchors[i]
	cone := rt.ConeAnchors[i]
	anchor := target

	if from != nil && b < 1 {
		if j, ok := from.ByName[rt.Actors[i].Name]; ok && from.valid(j) {
			anchor = layout.LerpAnchor(from.Anchors[j], target, b)
			src := from.ConeAnchors[j]
			cone.X3 = vmath.Lerp(src.X3, cone.X3, b)
			cone.Y3 = vmath.Lerp(src.Y3, cone.Y3, b)
			cone.Z3 = vmath.Lerp(src.Z3, cone.Z3, b)
		} else {
			dx, dy := layout.EntryOffset(i, rt.Actors[i].Name)
			anchor.X = vmath.Lerp(e.cx+dx, target.X, b)
			anchor.Y = vmath.Lerp(e.cy+dy, target.Y, b)
			cone.X3 *= b
			cone.Z3 *= b
		}
	}

	p := placed{anchor: anchor, lx: anchor.X, ly: anchor.Y, scale: 1, depth: 0.5, ok: true}
	if vb > 0 {
		proj := e.projector.Project(cone.X3, cone.Y3, cone.Z3)
		p.lx = vmath.Lerp(anchor.X, proj.X, vb)
		p.ly = vmath.Lerp(anchor.Y, proj.Y, vb)
		p.scale = vmath.Lerp(1, proj.Scale, vb)
		p.depth = vmath.Lerp(0.5, proj.Depth, vb)
	}
	p.x, p.y = e.view(p.lx, p.ly)
	p.scale *= e.zoom.Current
	if !finiteAll(p.x, p.y, p.scale) {
		return placed{}
	}
	return p
}

func finiteAll(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// depthFade dims far elements while the cone view is blended in
func depthFade(depth, vb float64) float64 {
	return vmath.Lerp(1, 0.35+0.65*depth, vb)
}

func (e *Engine) drawCurve(c *render.Canvas, p *layerPass, index int, vb float64) {
	edge := p.rt.Connections[index]
	from, to := p.places[edge.From], p.places[edge.To]

	midX, midY := (from.x+to.x)*0.5, (from.y+to.y)*0.5
	cx, cy := e.view(e.cx, e.cy)
	ctrlX := midX + (cx-midX)*0.24
	ctrlY := midY + (cy-midY)*0.24
	if vb > 0 {
		lift := vmath.Dist(from.x, from.y, to.x, to.y) * 0.22
		ctrlX = vmath.Lerp(ctrlX, midX, vb)
		ctrlY = vmath.Lerp(ctrlY, midY-lift, vb)
	}

	emphasized := p.active == interact.None || edge.Touches(p.active)
	alpha, width := 0.05, 0.6
	if emphasized {
		alpha = 0.22 + edge.Weight*0.18
		width = 0.7 + edge.Weight*1.2
	}
	depth := (from.depth + to.depth) * 0.5
	c.QuadCurve(from.x, from.y, ctrlX, ctrlY, to.x, to.y, render.Stroke{
		Width: width * vmath.Lerp(1, 0.6+0.4*depth, vb),
		Color: render.RGBWhite,
		Alpha: alpha * p.curveMult * depthFade(depth, vb),
	})
}

func (e *Engine) drawParticle(c *render.Canvas, p *layerPass, index int, dt, now, vb float64) {
	pt := &p.rt.Particles[index]
	pl := p.places[pt.Actor]
	if !e.reduced() {
		pt.Advance(dt)
	}

	anchor := pl.anchor
	anchor.X, anchor.Y = pl.lx, pl.ly
	x, y := pt.Position(anchor, e.cx, e.cy, now)
	x, y = e.view(x, y)

	boost := 1.0
	if p.active != interact.None && p.active != pt.Actor {
		boost = 0.32
	}
	alpha := pt.Alpha * boost * p.partMult * depthFade(pl.depth, vb)
	c.Disc(x, y, pt.Size*pl.scale, p.rt.Colors[pt.Actor], alpha, render.BlendAlpha)
}

func (e *Engine) drawAnchor(c *render.Canvas, p *layerPass, index int, t, vb float64) {
	rt := p.rt
	pl := p.places[index]
	actor := rt.Actors[index]
	col := rt.Colors[index]
	mult := p.nodeMult * depthFade(pl.depth, vb)

	label := rt.Labels.Decide(actor.Name, index, p.active)
	node := pl.anchor.NodeRadius * pl.scale

	haloAlpha := 0.11
	switch {
	case label.Active:
		haloAlpha = 0.22
	case label.Dimmed:
		haloAlpha = 0.05
	}
	halo := node + (8+rt.NodeScale*2.4)*pl.scale + math.Sin(t*2+pl.anchor.Drift)*1.6
	c.Disc(pl.x, pl.y, halo, col, haloAlpha*mult, render.BlendAlpha)

	ringAlpha := 0.86
	if label.Dimmed {
		ringAlpha = 0.36
	}
	c.Disc(pl.x, pl.y, node+3.4*pl.scale, render.RGBWhite, ringAlpha*mult, render.BlendAlpha)

	if label.Dimmed {
		c.Disc(pl.x, pl.y, node, render.RGBWhite, 0.2*mult, render.BlendAlpha)
	} else {
		c.Disc(pl.x, pl.y, node, col, mult, render.BlendAlpha)
	}

	e.drawLabel(c, rt, index, pl, label, mult)
}

func (e *Engine) drawLabel(c *render.Canvas, rt *runtime, index int, pl placed, label render.Label, mult float64) {
	n := vmath.Finite(rt.Influence.At(index), 0.5)
	offset := (20 + n*11 + (1-rt.NodeScale)*5) * pl.scale
	tx := pl.x + math.Cos(pl.anchor.Angle)*offset
	ty := pl.y + math.Sin(pl.anchor.Angle)*offset

	align := render.AlignLeft
	if tx < pl.x {
		align = render.AlignRight
	}
	_, cellH := c.CellSize()

	nameY := ty
	if label.ShowReach {
		nameY -= float64(cellH) * 0.5
	}
	name := render.TextStyle{Color: nameColor, Alpha: 0.92 * mult, Bold: label.Active, Align: align}
	if label.Dimmed {
		name.Color, name.Alpha = nameDimColor, 0.44*mult
	}
	c.Text(tx, nameY, label.Text, name)

	if label.ShowReach {
		reach := render.TextStyle{Color: reachColor, Alpha: 0.86 * mult, Align: align}
		if label.Dimmed {
			reach.Color, reach.Alpha = reachDimColor, 0.5*mult
		}
		c.Text(tx, nameY+float64(cellH), rt.Actors[index].Reach, reach)
	}
}
