package actorgraph

import (
	"github.com/lixenwraith/nri-constellation/layout"
	"github.com/lixenwraith/nri-constellation/model"
	"github.com/lixenwraith/nri-constellation/particle"
	"github.com/lixenwraith/nri-constellation/render"
)

// fallbackColor is used for actors with a missing or malformed color
var fallbackColor = render.RGB{R: 148, G: 163, B: 184}

// runtime is a fully derived snapshot of one dataset at one surface size
// It is rebuilt, never patched, so particle and anchor indices always match Actors
type runtime struct {
	Base        *model.Dataset
	Actors      []model.Actor
	Connections []model.ActorConnection
	Influence   *layout.Influence
	NodeScale   float64
	Anchors     []layout.Anchor
	ConeAnchors []layout.ConeAnchor
	Particles   []particle.ActorParticle
	ByName      map[string]int
	Colors      []render.RGB
	Labels      render.LabelPolicy
}

// buildRuntime derives anchors, cone anchors and particles for base at w×h
func buildRuntime(base *model.Dataset, w, h float64) *runtime {
	if base == nil {
		base = &model.Dataset{}
	}
	actors := base.Actors
	connections := make([]model.ActorConnection, 0, len(base.Connections))
	for _, c := range base.Connections {
		if c.From < 0 || c.To < 0 || c.From >= len(actors) || c.To >= len(actors) {
			continue
		}
		connections = append(connections, c)
	}

	in := layout.NewInfluence(actors)
	scale := layout.NodeScale(len(actors))
	anchors := layout.BuildAnchors(actors, w, h, in.At, scale)

	rt := &runtime{
		Base:        base,
		Actors:      actors,
		Connections: connections,
		Influence:   in,
		NodeScale:   scale,
		Anchors:     anchors,
		ConeAnchors: layout.BuildConeAnchors(anchors, in.At, w, h),
		Particles:   particle.ActorParticles(anchors, in.At, scale),
		ByName:      make(map[string]int, len(actors)),
		Colors:      make([]render.RGB, len(actors)),
		Labels:      render.NewLabelPolicy(len(actors)),
	}
	for i, a := range actors {
		rt.ByName[a.Name] = i
		rt.Colors[i] = render.Hex(a.Color, fallbackColor)
	}
	return rt
}

func (rt *runtime) valid(i int) bool {
	return rt != nil && i >= 0 && i < len(rt.Actors) && i < len(rt.Anchors)
}
