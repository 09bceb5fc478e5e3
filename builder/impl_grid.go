// SPDX-License-Identifier: MIT
// Package: reliaroute/builder
//
// impl_grid.go - Grid constructor.

package builder

import (
	"fmt"

	"github.com/katalvlaran/reliaroute/core"
)

// Grid adds rows×cols stations named "r,c" (row-major) and serves them with
// one route per row and per column in each direction:
//
//	"E{r}" west to east   "W{r}" east to west
//	"S{c}" north to south "N{c}" south to north
//
// Requires rows ≥ 2 and cols ≥ 2.
// Complexity: O(R*C) stations, O(4*R*C) stops.
func Grid(rows, cols int) Constructor {
	return func(f *Fixture, cfg builderConfig) error {
		if rows < 2 || cols < 2 {
			return builderErrorf(methodGrid, "rows=%d cols=%d: %w", rows, cols, ErrTooFewStations)
		}
		ids := make([][]core.StationID, rows)
		for r := 0; r < rows; r++ {
			ids[r] = make([]core.StationID, cols)
			for c := 0; c < cols; c++ {
				id, err := f.station(fmt.Sprintf("%d,%d", r, c))
				if err != nil {
					return builderErrorf(methodGrid, "station %d,%d: %w", r, c, err)
				}
				ids[r][c] = id
			}
		}

		link := func(route string, line []core.StationID) error {
			if err := f.route(cfg, route, line, cfg.hops(len(line)-1, cfg.hop)); err != nil {
				return builderErrorf(methodGrid, "route %q: %w", route, err)
			}
			return nil
		}
		for r := 0; r < rows; r++ {
			if err := link(fmt.Sprintf("E%d", r), ids[r]); err != nil {
				return err
			}
			if err := link(fmt.Sprintf("W%d", r), reversed(ids[r])); err != nil {
				return err
			}
		}
		for c := 0; c < cols; c++ {
			col := make([]core.StationID, rows)
			for r := range col {
				col[r] = ids[r][c]
			}
			if err := link(fmt.Sprintf("S%d", c), col); err != nil {
				return err
			}
			if err := link(fmt.Sprintf("N%d", c), reversed(col)); err != nil {
				return err
			}
		}

		return nil
	}
}

func reversed(ids []core.StationID) []core.StationID {
	out := make([]core.StationID, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}

	return out
}
