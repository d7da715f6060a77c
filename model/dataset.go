package model

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/lixenwraith/nri-constellation/vmath"
)

// OverallKey is the dataset key of the unscoped actor network
const OverallKey = "__all__"

// NarrativeOption identifies one sub-topic as an actor-network scope
type NarrativeOption struct {
	Key     string
	Cluster *Cluster
	Sub     *SubTopic
}

// Dataset is one actor/connection set handed to the actor graph
// Context is nil for the overall view
type Dataset struct {
	Key         string
	Label       string
	Meta        string
	Actors      []Actor
	Connections []ActorConnection
	Context     *NarrativeOption
}

// Degree counts connections touching index
func (d *Dataset) Degree(index int) int {
	n := 0
	for _, c := range d.Connections {
		if c.Touches(index) {
			n++
		}
	}
	return n
}

// StrongestLinks returns up to n "Name (Strength)" descriptions of index's heaviest edges
func (d *Dataset) StrongestLinks(index, n int) []string {
	var touching []ActorConnection
	for _, c := range d.Connections {
		if c.Touches(index) {
			touching = append(touching, c)
		}
	}
	touching = SortByWeight(touching)
	if len(touching) > n {
		touching = touching[:n]
	}
	out := make([]string, 0, len(touching))
	for _, c := range touching {
		other := c.Other(index)
		if other < 0 || other >= len(d.Actors) {
			continue
		}
		out = append(out, fmt.Sprintf("%s (%s)", d.Actors[other].Name, StrengthLabel(c.Weight)))
	}
	return out
}

// ScopeLabel describes the dataset's narrative scope
func (d *Dataset) ScopeLabel() string {
	if d.Context == nil || d.Context.Cluster == nil || d.Context.Sub == nil {
		return "Overall constellation"
	}
	return d.Context.Cluster.Label + " -> " + d.Context.Sub.Label
}

// Catalog is a data source for datasets: clusters, actors and base links
type Catalog struct {
	Clusters []Cluster
	Actors   []Actor
	Links    []ActorLink
	NRI      NRIHeadline
}

// Default returns the built-in mock catalog
func Default() *Catalog {
	return &Catalog{
		Clusters: Clusters,
		Actors:   Actors,
		Links:    BaseConnections,
		NRI:      NRI,
	}
}

// OverallDataset is every actor with unscaled base links
func (c *Catalog) OverallDataset() *Dataset {
	actors := make([]Actor, len(c.Actors))
	copy(actors, c.Actors)
	return &Dataset{
		Key:         OverallKey,
		Label:       "Overall View",
		Meta:        "Overview: weighted influence map",
		Actors:      actors,
		Connections: ResolveConnections(actors, c.Links, nil),
	}
}

// NarrativeOptions lists one scope per sub-topic in cluster order
func (c *Catalog) NarrativeOptions() []NarrativeOption {
	var out []NarrativeOption
	for ci := range c.Clusters {
		cl := &c.Clusters[ci]
		for si := range cl.SubTopics {
			sub := &cl.SubTopics[si]
			out = append(out, NarrativeOption{Key: sub.ID, Cluster: cl, Sub: sub})
		}
	}
	return out
}

// Datasets returns the overall dataset followed by every narrative-scoped dataset
func (c *Catalog) Datasets() []*Dataset {
	out := []*Dataset{c.OverallDataset()}
	for _, opt := range c.NarrativeOptions() {
		out = append(out, c.NarrativeDataset(opt))
	}
	return out
}

// Lookup finds a dataset by key, falling back to the overall view
func (c *Catalog) Lookup(key string) *Dataset {
	if key == "" || key == OverallKey {
		return c.OverallDataset()
	}
	for _, opt := range c.NarrativeOptions() {
		if opt.Key == key {
			return c.NarrativeDataset(opt)
		}
	}
	return c.OverallDataset()
}

// NarrativeDataset ranks actors by their affinity to the scope's sources and keeps the relevant ones
func (c *Catalog) NarrativeDataset(opt NarrativeOption) *Dataset {
	scores := c.narrativeScores(opt)

	type ranked struct {
		actor Actor
		score float64
	}
	list := make([]ranked, len(c.Actors))
	for i, a := range c.Actors {
		list[i] = ranked{actor: a, score: scores[a.Name]}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].score > list[j].score })

	topScore := 1.0
	if len(list) > 0 && list[0].score != 0 {
		topScore = list[0].score
	}
	minActors := min(10, len(list))
	maxActors := min(15, len(list))

	var chosen []ranked
	for i, e := range list {
		if e.score >= topScore*0.16 || i < minActors {
			chosen = append(chosen, e)
		}
	}
	if len(chosen) > maxActors {
		chosen = chosen[:maxActors]
	}
	if len(chosen) < minActors {
		chosen = list[:minActors]
	}

	actors := make([]Actor, len(chosen))
	best := 0.1
	for i, e := range chosen {
		a := e.actor
		score := e.score
		a.Relevance = &score
		actors[i] = a
		best = max(best, relevanceOrMin(a.Relevance))
	}

	relevance := make(map[string]float64, len(actors))
	for _, a := range actors {
		relevance[a.Name] = vmath.Clamp(relevanceOrMin(a.Relevance)/best, 0.2, 1)
	}

	label, meta := "", ""
	if opt.Sub != nil {
		label = opt.Sub.Label
	}
	if opt.Cluster != nil {
		meta = fmt.Sprintf("%s | %s | narrative-scoped actor constellation", opt.Cluster.Label, label)
	}

	optCopy := opt
	return &Dataset{
		Key:         opt.Key,
		Label:       label,
		Meta:        meta,
		Actors:      actors,
		Connections: ResolveConnections(actors, c.Links, relevance),
		Context:     &optCopy,
	}
}

func relevanceOrMin(r *float64) float64 {
	if r == nil || *r == 0 {
		return 0.1
	}
	return *r
}

// --- Scope scoring ---

type sourceHint struct {
	pattern *regexp.Regexp
	weight  float64
}

var actorSourceHints = map[string][]sourceHint{
	"Arbeiterkammer Wien": {
		{regexp.MustCompile(`arbeiterkammer|\bak\b`), 1.5},
		{regexp.MustCompile(`konsument|watchdog|regulator`), 0.7},
	},
	"Kronen Zeitung":            {{regexp.MustCompile(`kronen|krone|heute|boulevard`), 1.35}},
	"ORF Wien":                  {{regexp.MustCompile(`\borf\b|broadcast|wien heute|stadt wien`), 1.28}},
	"Der Standard":              {{regexp.MustCompile(`standard|presse|kurier|quality`), 1.2}},
	"r/Wien Community":          {{regexp.MustCompile(`reddit|r/wien|forum`), 1.45}},
	"FB Bezirksgruppen":         {{regexp.MustCompile(`facebook|\bfb\b|nextdoor|bezirksgruppe|bezirk`), 1.4}},
	"VKI":                       {{regexp.MustCompile(`\bvki\b|verbraucher|consumer`), 1.45}},
	"Telegram Channels":         {{regexp.MustCompile(`telegram|\btg\b`), 1.5}},
	"E-Control":                 {{regexp.MustCompile(`e-control|regulator|energy control`), 1.4}},
	"Wiener Stadtwerke":         {{regexp.MustCompile(`wien energie|stadt wien|wiener stadtwerke|utility`), 1.35}},
	"Klimaschutzministerium":    {{regexp.MustCompile(`klima|ministerium|bmk|foerder|co2`), 1.3}},
	"Futurezone":                {{regexp.MustCompile(`futurezone|tech blogs|tb|technik`), 1.34}},
	"Mietervereinigung Wien":    {{regexp.MustCompile(`mieter|miet|vereinigung|fernwaerme`), 1.32}},
	"Bezirkszeitung Wien":       {{regexp.MustCompile(`bezirkszeitung|bz|bezirke|bezirk`), 1.3}},
	"LinkedIn Energy Voices":    {{regexp.MustCompile(`linkedin|\bin\b|professional|netzwerk`), 1.28}},
	"TikTok Wien News":          {{regexp.MustCompile(`tiktok|tik|video|viral`), 1.36}},
	"YouTube Kommentar-Cluster": {{regexp.MustCompile(`youtube|kommentar|video`), 1.3}},
	"Finanzmarktaufsicht":       {{regexp.MustCompile(`fma|finanz|aufsicht`), 1.26}},
}

func (c *Catalog) narrativeScores(opt NarrativeOption) map[string]float64 {
	scores := make(map[string]float64, len(c.Actors))
	for _, a := range c.Actors {
		scores[a.Name] = 0.2
	}
	if opt.Sub == nil {
		return scores
	}

	for _, src := range opt.Sub.Sources {
		text := strings.ToLower(src.Name + " " + src.Label)
		for _, a := range c.Actors {
			for _, hint := range actorSourceHints[a.Name] {
				if hint.pattern.MatchString(text) {
					scores[a.Name] += src.Share * hint.weight
					break
				}
			}
		}
	}

	boost := func(name string, delta float64) {
		if _, ok := scores[name]; ok {
			scores[name] += delta
		}
	}

	switch opt.Sub.Sentiment {
	case SentimentNeg:
		boost("Arbeiterkammer Wien", 7.5)
		boost("VKI", 6.5)
		boost("Kronen Zeitung", 4.2)
		boost("Telegram Channels", 3.4)
	case SentimentPos:
		boost("ORF Wien", 5.2)
		boost("Der Standard", 4.8)
		boost("FB Bezirksgruppen", 2.2)
	default:
		boost("r/Wien Community", 2.9)
		boost("FB Bezirksgruppen", 2.4)
	}

	if opt.Cluster != nil {
		label := strings.ToLower(opt.Cluster.Label)
		if strings.Contains(label, "preis") {
			boost("Arbeiterkammer Wien", 2.4)
			boost("VKI", 2.1)
		}
		if strings.Contains(label, "wärme") || strings.Contains(label, "waerme") || strings.Contains(label, "infra") {
			boost("ORF Wien", 1.9)
			boost("Kronen Zeitung", 1.6)
		}
		if strings.Contains(label, "versorgung") || strings.Contains(label, "innovation") {
			boost("Der Standard", 1.7)
			boost("r/Wien Community", 1.5)
		}
	}

	return scores
}
