// Package model holds the read-only narrative data consumed by the visualization engines
package model

// RiskLevel is the coarse risk bucket of a cluster
type RiskLevel string

const (
	RiskRed     RiskLevel = "red"
	RiskAmber   RiskLevel = "amber"
	RiskNeutral RiskLevel = "neutral"
)

// Sentiment is the categorical sentiment of a sub-topic
type Sentiment string

const (
	SentimentPos   Sentiment = "pos"
	SentimentNeg   Sentiment = "neg"
	SentimentMixed Sentiment = "mixed"
)

// Volatility of a sub-topic
type Volatility string

const (
	VolatilityHigh Volatility = "high"
	VolatilityMed  Volatility = "med"
	VolatilityLow  Volatility = "low"
)

// Trend direction of a sub-topic
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Cluster is the macro level of the narrative hierarchy
type Cluster struct {
	ID         int        `json:"id"`
	Label      string     `json:"label"`
	Color      string     `json:"color"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	ReportText string     `json:"reportText"`
	RiskText   string     `json:"riskText"`
	RiskLevel  RiskLevel  `json:"riskLevel"`
	SubTopics  []SubTopic `json:"subTopics"`
}

// SubTopic is the middle level; offsets are relative to the parent cluster
type SubTopic struct {
	ID          string           `json:"id"`
	Label       string           `json:"label"`
	OffX        float64          `json:"offX"`
	OffY        float64          `json:"offY"`
	Score       float64          `json:"score"`
	Sentiment   Sentiment        `json:"sentiment"`
	Volatility  Volatility       `json:"vol"`
	Trend       Trend            `json:"trend"`
	Explanation string           `json:"explanation"`
	Micro       []MicroNarrative `json:"micro"`
	Sources     []SourceShare    `json:"sources"`
}

// MicroNarrative is the leaf level; offsets are relative to the parent sub-topic
type MicroNarrative struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	OffX  float64 `json:"offX"`
	OffY  float64 `json:"offY"`
	Desc  string  `json:"desc"`
}

// SourceShare is an independent display weight, shares of one sub-topic need not sum to 100
type SourceShare struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Share float64 `json:"share"`
}

// Actor is a discourse participant keyed by Name
// Relevance is optional and only set on narrative-scoped datasets
type Actor struct {
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Reach     string   `json:"reach"`
	Color     string   `json:"color"`
	Initials  string   `json:"initial"`
	Relevance *float64 `json:"relevance,omitempty"`
}

// ActorLink is an unresolved, name-keyed connection
type ActorLink struct {
	A      string  `json:"a"`
	B      string  `json:"b"`
	Weight float64 `json:"weight"`
}

// ActorConnection is a link resolved to indices of a dataset's actor slice
type ActorConnection struct {
	From   int
	To     int
	Weight float64
}

// Touches reports whether the connection has index as an endpoint
func (c ActorConnection) Touches(index int) bool {
	return c.From == index || c.To == index
}

// Other returns the endpoint opposite index
func (c ActorConnection) Other(index int) int {
	if c.From == index {
		return c.To
	}
	return c.From
}

// NRIHeadline is the dashboard-wide Narrative Risk Index
type NRIHeadline struct {
	Score float64
	Delta float64
}
