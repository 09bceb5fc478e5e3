// SPDX-License-Identifier: MIT
// Package: reliaroute/builder
//
// impl_line.go - Line and Walk constructors.

package builder

import "github.com/katalvlaran/reliaroute/core"

// Line links route over the named stations, adding stations on first use.
// Requires at least two stations.
func Line(route string, stations ...string) Constructor {
	return func(f *Fixture, cfg builderConfig) error {
		if len(stations) < 2 {
			return builderErrorf(methodLine, "%d stations: %w", len(stations), ErrTooFewStations)
		}
		ids := make([]core.StationID, len(stations))
		for i, name := range stations {
			id, err := f.station(name)
			if err != nil {
				return builderErrorf(methodLine, "station %q: %w", name, err)
			}
			ids[i] = id
		}
		if err := f.route(cfg, route, ids, cfg.hops(len(ids)-1, cfg.hop)); err != nil {
			return builderErrorf(methodLine, "route %q: %w", route, err)
		}

		return nil
	}
}

// Walk connects two named stations on foot in both directions.
func Walk(a, b string) Constructor {
	return func(f *Fixture, cfg builderConfig) error {
		ida, err := f.station(a)
		if err != nil {
			return builderErrorf(methodWalk, "station %q: %w", a, err)
		}
		idb, err := f.station(b)
		if err != nil {
			return builderErrorf(methodWalk, "station %q: %w", b, err)
		}
		if err = f.Network.ConnectWalk(ida, idb, cfg.walk); err != nil {
			return builderErrorf(methodWalk, "%q-%q: %w: %w", a, b, ErrConstructFailed, err)
		}

		return nil
	}
}
