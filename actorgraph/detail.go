package actorgraph

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/nri-constellation/model"
)

// ConnectionLimit is the number of rows in the connections table
const ConnectionLimit = 8

// NoConnections is shown when a scope has no resolved connections
const NoConnections = "No significant actor connections for this narrative scope."

// ConnectionRow is one line of the connections table
type ConnectionRow struct {
	From     string
	To       string
	Weight   float64
	Strength string
}

// TopConnections returns up to limit connections of ds, heaviest first
func TopConnections(ds *model.Dataset, limit int) []ConnectionRow {
	if ds == nil {
		return nil
	}
	sorted := model.SortByWeight(ds.Connections)
	rows := make([]ConnectionRow, 0, min(limit, len(sorted)))
	for _, c := range sorted {
		if len(rows) == limit {
			break
		}
		if c.From < 0 || c.To < 0 || c.From >= len(ds.Actors) || c.To >= len(ds.Actors) {
			continue
		}
		rows = append(rows, ConnectionRow{
			From:     ds.Actors[c.From].Name,
			To:       ds.Actors[c.To].Name,
			Weight:   c.Weight,
			Strength: model.StrengthLabel(c.Weight),
		})
	}
	return rows
}

// Detail is the actor summary shown in the detail pane after a click
func Detail(ds *model.Dataset, index int) string {
	if ds == nil || index < 0 || index >= len(ds.Actors) {
		return ""
	}
	a := ds.Actors[index]
	related := "No direct connection data"
	if links := ds.StrongestLinks(index, 3); len(links) > 0 {
		related = strings.Join(links, ", ")
	}
	return fmt.Sprintf("%s with a reach of %s. Current scope: %s. Strongest links: %s.",
		a.Role, a.Reach, ds.ScopeLabel(), related)
}
