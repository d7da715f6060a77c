package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/nri-constellation/actorgraph"
	"github.com/lixenwraith/nri-constellation/constellation"
	"github.com/lixenwraith/nri-constellation/model"
)

func (a *app) scopesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "List narrative scopes and their actor counts",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			banner(w, "narrative scopes")

			headers := []string{"Key", "Scope", "Actors", "Links"}
			var rows [][]string
			for _, ds := range a.catalog.Datasets() {
				rows = append(rows, []string{
					ds.Key,
					ds.ScopeLabel(),
					strconv.Itoa(len(ds.Actors)),
					strconv.Itoa(len(ds.Connections)),
				})
			}
			table(w, headers, rows)
			fmt.Fprintf(w, "\n  %d scopes, NRI %.0f (%+.1f)\n", len(rows), a.catalog.NRI.Score, a.catalog.NRI.Delta)
		},
	}
}

func (a *app) connectionsCmd() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "connections",
		Short: "Show the strongest actor connections of a scope",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			ds := a.catalog.Lookup(scope)
			banner(w, "connections: "+ds.ScopeLabel())

			rows := actorgraph.TopConnections(ds, actorgraph.ConnectionLimit)
			if len(rows) == 0 {
				fmt.Fprintln(w, "  "+actorgraph.NoConnections)
				return
			}
			var cells [][]string
			for _, r := range rows {
				cells = append(cells, []string{
					r.From,
					r.To,
					fmt.Sprintf("%.2f", r.Weight),
					strengthColor(r.Strength),
				})
			}
			table(w, []string{"From", "To", "Weight", "Strength"}, cells)
		},
	}
	cmd.Flags().StringVar(&scope, "scope", model.OverallKey, "narrative scope key (see `nri scopes`)")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the narrative list",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), constellation.ListView(a.catalog.Clusters).Format(width))
		},
	}
	cmd.Flags().IntVar(&width, "width", 72, "line width")
	return cmd
}
