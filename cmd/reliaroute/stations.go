package main

import (
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/reliaroute/core"
)

func newStationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stations [filter]",
		Short: "List stations, optionally filtered by name or stop_id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			feed, err := a.loadFeed()
			if err != nil {
				return err
			}
			var filter string
			if len(args) == 1 {
				filter = strings.ToLower(args[0])
			}

			net := feed.Network
			ids := make([]core.StationID, 0, net.NumStations())
			for id := core.StationID(0); int(id) < net.NumStations(); id++ {
				name := feed.DisplayName(id)
				if filter != "" &&
					!strings.Contains(strings.ToLower(name), filter) &&
					!strings.Contains(strings.ToLower(net.Station(id).Name), filter) {
					continue
				}
				ids = append(ids, id)
			}
			sort.SliceStable(ids, func(i, j int) bool {
				return feed.DisplayName(ids[i]) < feed.DisplayName(ids[j])
			})

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"stop_id", "Name", "Routes", "Walks"})
			for _, id := range ids {
				routes, walks := 0, 0
				for _, sid := range net.Station(id).Stops {
					stop := net.Stop(sid)
					if stop.IsRoute() {
						routes++
					} else {
						walks = len(stop.Neighbors)
					}
				}
				t.AppendRow(table.Row{net.Station(id).Name, feed.DisplayName(id), routes, walks})
			}
			t.Render()

			return nil
		},
	}
}
