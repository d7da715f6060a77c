package particle

import (
	"math"
	"testing"

	"github.com/lixenwraith/nri-constellation/layout"
	"github.com/lixenwraith/nri-constellation/model"
)

func TestActorCount(t *testing.T) {
	tests := []struct {
		n, scale float64
		want     int
	}{
		{0, 1, int(math.Round(190 * 1.14))},
		{1, 1, int(math.Round(420 * 1.14))},
		{0.5, 0.74, int(math.Round(305 * (0.8 + 0.74*0.34)))},
	}
	for _, tt := range tests {
		if got := ActorCount(tt.n, tt.scale); got != tt.want {
			t.Errorf("ActorCount(%v, %v) = %d, want %d", tt.n, tt.scale, got, tt.want)
		}
	}
}

func TestActorParticlesDeterministic(t *testing.T) {
	actors := model.Default().OverallDataset().Actors
	in := layout.NewInfluence(actors)
	scale := layout.NodeScale(len(actors))
	anchors := layout.BuildAnchors(actors, 800, 600, in.At, scale)

	a := ActorParticles(anchors, in.At, scale)
	b := ActorParticles(anchors, in.At, scale)
	if len(a) != len(b) || len(a) == 0 {
		t.Fatalf("lengths %d %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs", i)
		}
		p := a[i]
		if p.Actor < 0 || p.Actor >= len(actors) {
			t.Fatalf("particle %d owner %d out of range", i, p.Actor)
		}
		if p.Lane < 0 || p.Lane > 1 || p.Alpha < 0.07 || p.Alpha > 0.31 {
			t.Errorf("particle %d attributes out of band: %+v", i, p)
		}
		if p.Orbit > anchors[p.Actor].RingRadius*1.2+1e-9 {
			t.Errorf("particle %d orbit %v beyond ring %v", i, p.Orbit, anchors[p.Actor].RingRadius)
		}
	}
}

func TestActorParticleAdvanceWraps(t *testing.T) {
	p := ActorParticle{Theta: 6.2, Speed: 1}
	p.Advance(0.5)
	if p.Theta < 0 || p.Theta >= 2*math.Pi {
		t.Errorf("theta %v not wrapped", p.Theta)
	}
}

func TestActorParticleLanePull(t *testing.T) {
	anchor := layout.Anchor{X: 100, Y: 100}
	p := ActorParticle{Lane: 1, Orbit: 30}
	x, y := p.Position(anchor, 400, 300, 1.3)
	if math.Abs(x-400) > 1e-9 || math.Abs(y-300) > 1e-9 {
		t.Errorf("full lane should sit on center, got %v,%v", x, y)
	}
}

func TestLODAndStage(t *testing.T) {
	tests := []struct {
		zoom   float64
		s1, s2 float64
		stage  Stage
	}{
		{0.35, 0, 0, StageMacro},
		{1.0, 0, 0, StageMacro},
		{1.4, -1, 0, StageSub},
		{2.5, 1, -1, StageSub},
		{3.0, 1, -1, StageMicro},
		{4.8, 1, 1, StageMicro},
	}
	for _, tt := range tests {
		s1, s2 := LOD(tt.zoom)
		if tt.s1 >= 0 && s1 != tt.s1 {
			t.Errorf("zoom %v: s1 = %v, want %v", tt.zoom, s1, tt.s1)
		}
		if tt.s2 >= 0 && s2 != tt.s2 {
			t.Errorf("zoom %v: s2 = %v, want %v", tt.zoom, s2, tt.s2)
		}
		if got := StageFor(tt.zoom); got != tt.stage {
			t.Errorf("zoom %v: stage %s, want %s", tt.zoom, got, tt.stage)
		}
	}
}

func TestGenerateRoundRobin(t *testing.T) {
	f := Generate(model.Clusters, DefaultCount)
	if len(f.Points) != DefaultCount {
		t.Fatalf("got %d points", len(f.Points))
	}
	for i, p := range f.Points {
		if p.Cluster != i%len(model.Clusters) {
			t.Fatalf("point %d in cluster %d", i, p.Cluster)
		}
		c := model.Clusters[p.Cluster]
		if p.Sub < 0 || p.Sub >= len(c.SubTopics) {
			t.Fatalf("point %d sub %d", i, p.Sub)
		}
		if p.Micro < 0 || p.Micro >= len(c.SubTopics[p.Sub].Micro) {
			t.Fatalf("point %d micro %d", i, p.Micro)
		}
		if p.OrbitSpeed == 0 || math.Abs(p.OrbitSpeed) > 0.07+1e-9 {
			t.Errorf("point %d orbit speed %v", i, p.OrbitSpeed)
		}
		if p.Size < 0.24 || p.Size > 2 {
			t.Errorf("point %d size %v", i, p.Size)
		}
	}
	if empty := Generate(nil, 10); len(empty.Points) != 0 {
		t.Error("no clusters should yield no points")
	}
}

func TestGenerateTintsTowardCoolWhite(t *testing.T) {
	clusters := []model.Cluster{{Color: "not a color"}, {Color: "#ff0000"}}
	f := Generate(clusters, 40)
	for i, p := range f.Points {
		if p.Cluster == 0 && p.Color != coolWhite {
			t.Errorf("point %d with a malformed cluster color = %v, want %v", i, p.Color, coolWhite)
		}
		if p.Cluster == 1 && (p.Color.G == 0 || p.Color == coolWhite) {
			t.Errorf("point %d red cluster color = %v", i, p.Color)
		}
	}
}

func TestUpdateCollapsesToMacroCloud(t *testing.T) {
	f := Generate(model.Clusters, 300)
	world := layout.ClusterWorld(layout.BuildMacroAnchors(len(model.Clusters)), model.Clusters, 0, 0)
	f.Update(0, 0, 0, 1, world)
	for i, p := range f.Points {
		base := world[p.Cluster]
		// at time 0 the orbit is identity and drift is bounded by DriftAmp
		d := math.Hypot(p.Pos.X-base.X, p.Pos.Y-base.Y)
		if d > macroRadius+p.DriftAmp*2+1e-6 {
			t.Errorf("point %d at %v from its cluster", i, d)
		}
		if math.IsNaN(p.Pos.Z) {
			t.Fatalf("point %d NaN", i)
		}
	}
}
