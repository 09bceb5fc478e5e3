// SPDX-License-Identifier: MIT
// Package: reliaroute/builder
//
// impl_corridor.go - Corridor constructor.

package builder

import (
	"fmt"

	"github.com/katalvlaran/reliaroute/core"
)

// Corridor links lines parallel routes "L0".."L{lines-1}" from station
// "origin" to station "dest". Line w runs through its own stations
// "s{w}_0".."s{w}_{length-1}" with hops lineSkew*w seconds slower than line 0,
// and station i of every line is walkable from station i of the next line.
//
// Requires lines ≥ 1 and length ≥ 1.
// Complexity: O(lines*length) stations and stops, O(lines*length*trips) arrivals.
func Corridor(lines, length int) Constructor {
	return func(f *Fixture, cfg builderConfig) error {
		if lines < 1 || length < 1 {
			return builderErrorf(methodCorridor, "lines=%d length=%d: %w", lines, length, ErrTooFewStations)
		}
		origin, err := f.station("origin")
		if err != nil {
			return builderErrorf(methodCorridor, "origin: %w", err)
		}
		dest, err := f.station("dest")
		if err != nil {
			return builderErrorf(methodCorridor, "dest: %w", err)
		}

		var prev []core.StationID
		for w := 0; w < lines; w++ {
			ids := make([]core.StationID, 0, length+2)
			ids = append(ids, origin)
			for i := 0; i < length; i++ {
				id, err := f.station(fmt.Sprintf("s%d_%d", w, i))
				if err != nil {
					return builderErrorf(methodCorridor, "line %d: %w", w, err)
				}
				ids = append(ids, id)
			}
			ids = append(ids, dest)

			route := fmt.Sprintf("L%d", w)
			travel := cfg.hops(len(ids)-1, cfg.hop+lineSkew*int64(w))
			if err = f.route(cfg, route, ids, travel); err != nil {
				return builderErrorf(methodCorridor, "route %q: %w", route, err)
			}

			inner := ids[1 : len(ids)-1]
			for i := range prev {
				if err = f.Network.ConnectWalk(prev[i], inner[i], cfg.walk); err != nil {
					return builderErrorf(methodCorridor, "walk %d/%d: %w: %w", w, i, ErrConstructFailed, err)
				}
			}
			prev = inner
		}

		return nil
	}
}
