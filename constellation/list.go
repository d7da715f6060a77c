package constellation

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/nri-constellation/model"
	"github.com/lixenwraith/nri-constellation/render"
)

// ListTitle heads the text fallback of the map
const ListTitle = "Top-Narrative"

// sparkTrails are the seven-sample trend lines, 0 top and 20 bottom
var sparkTrails = map[model.Trend][]float64{
	model.TrendUp:   {18, 14, 16, 9, 11, 5, 1},
	model.TrendDown: {4, 7, 4, 11, 14, 16, 18},
	model.TrendFlat: {9, 4, 14, 4, 14, 7, 9},
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// ListRow is one line of the list view; Sub is -1 on cluster headings
type ListRow struct {
	Cluster   int
	Sub       int
	Label     string
	Arrow     string
	Sentiment string
	Spark     string
	Accent    render.RGB
	Tone      render.RGB
}

// List is the narrative list that stands in for the map
type List struct {
	Title   string
	Summary string
	Rows    []ListRow
}

// Tone colors for sentiment
var (
	TonePositive = render.RGB{R: 0x22, G: 0xc5, B: 0x5e}
	ToneNegative = render.RGB{R: 0xef, G: 0x44, B: 0x44}
	ToneNeutral  = render.RGB{R: 0x94, G: 0xa3, B: 0xb8}
)

// ListView flattens clusters and their sub-topics into display rows
func ListView(clusters []model.Cluster) List {
	total := 0
	for _, c := range clusters {
		total += len(c.SubTopics)
	}
	l := List{
		Title:   ListTitle,
		Summary: fmt.Sprintf("%d Narrative | %d Cluster", total, len(clusters)),
	}
	for ci, c := range clusters {
		accent := render.Hex(c.Color, ToneNeutral)
		l.Rows = append(l.Rows, ListRow{Cluster: ci, Sub: -1, Label: strings.ToUpper(c.Label), Accent: accent})
		for si, sub := range c.SubTopics {
			row := ListRow{Cluster: ci, Sub: si, Label: sub.Label, Accent: accent, Tone: sentimentTone(sub.Score)}
			row.Arrow, row.Sentiment, row.Spark = sentimentMarks(sub.Sentiment)
			l.Rows = append(l.Rows, row)
		}
	}
	return l
}

// sentimentMarks returns arrow, label and sparkline for a categorical sentiment
func sentimentMarks(s model.Sentiment) (arrow, label, spark string) {
	switch s {
	case model.SentimentPos:
		return "↗", "Positiv", Sparkline(model.TrendUp)
	case model.SentimentNeg:
		return "↘", "Negativ", Sparkline(model.TrendDown)
	}
	return "→", "Gemischt", Sparkline(model.TrendFlat)
}

func sentimentTone(score float64) render.RGB {
	switch {
	case score > 0.3:
		return TonePositive
	case score < -0.3:
		return ToneNegative
	}
	return ToneNeutral
}

// Sparkline renders a trend as block glyphs
func Sparkline(trend model.Trend) string {
	trail, ok := sparkTrails[trend]
	if !ok {
		trail = sparkTrails[model.TrendFlat]
	}
	var b strings.Builder
	top := float64(len(sparkBlocks) - 1)
	for _, y := range trail {
		level := int(math.Round((20 - y) / 20 * top))
		b.WriteRune(sparkBlocks[max(0, min(level, len(sparkBlocks)-1))])
	}
	return b.String()
}

// Lookup resolves a row back to its cluster and optional sub-topic
func (l List) Lookup(clusters []model.Cluster, row int) (model.Cluster, *model.SubTopic, bool) {
	if row < 0 || row >= len(l.Rows) {
		return model.Cluster{}, nil, false
	}
	r := l.Rows[row]
	if r.Cluster < 0 || r.Cluster >= len(clusters) {
		return model.Cluster{}, nil, false
	}
	c := clusters[r.Cluster]
	if r.Sub < 0 || r.Sub >= len(c.SubTopics) {
		return c, nil, true
	}
	return c, &c.SubTopics[r.Sub], true
}

// String lays the list out as plain text, width columns wide
func (l List) String() string {
	return l.Format(72)
}

// Format lays the list out as plain text, width columns wide
func (l List) Format(width int) string {
	var b strings.Builder
	pad := max(1, width-runewidth.StringWidth(l.Title)-runewidth.StringWidth(l.Summary))
	fmt.Fprintf(&b, "%s%s%s\n", l.Title, strings.Repeat(" ", pad), l.Summary)
	b.WriteString(strings.Repeat("─", max(1, width)))
	b.WriteByte('\n')

	for _, r := range l.Rows {
		if r.Sub < 0 {
			fmt.Fprintf(&b, "\n%s\n", r.Label)
			continue
		}
		label := runewidth.FillRight(runewidth.Truncate(r.Label, 34, "…"), 34)
		fmt.Fprintf(&b, "  %s %s  %-8s %s\n", label, r.Arrow, r.Sentiment, r.Spark)
	}
	return b.String()
}
