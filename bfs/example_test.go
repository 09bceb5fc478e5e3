package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/reliaroute/bfs"
	"github.com/katalvlaran/reliaroute/builder"
)

// ExampleRides counts the vehicles needed to reach each station of a small
// network where a walk links two lines.
func ExampleRides() {
	f, err := builder.Build(nil,
		builder.Line("red", "Airport", "Central", "Bay"),
		builder.Walk("Bay", "Cove"),
		builder.Line("blue", "Cove", "Dock"),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	res, err := bfs.Rides(f.Network, f.Station("Airport"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, id := range res.Order {
		fmt.Printf("%s: %d\n", f.Network.Station(id).Name, res.Rides[id])
	}
	// Output:
	// Airport: 0
	// Central: 1
	// Bay: 1
	// Cove: 1
	// Dock: 2
}
