// SPDX-License-Identifier: MIT
// Package: reliaroute/builder
//
// Package builder assembles synthetic transit networks together with their
// timetables, for tests, examples and benchmarks.
//
// A Fixture pairs a *core.Network with the *timetable.Schedule that serves it.
// Build creates an empty fixture, resolves the builder options and applies the
// constructors in order:
//
//	f, err := builder.Build(
//		[]builder.BuilderOption{builder.WithSeed(7), builder.WithJitter(30)},
//		builder.Grid(4, 4),
//		builder.Walk("0,0", "1,1"),
//	)
//
// Constructors:
//
//	- Line(route, stations...)  one route over named stations.
//	- Walk(a, b)                a symmetric walking link.
//	- Corridor(lines, length)   parallel lines from "origin" to "dest",
//	                            walkable side by side.
//	- Grid(rows, cols)          "r,c" stations served by one route per
//	                            row and column in each direction.
//
// Every route runs trips from the service start to the service end at a fixed
// headway; every trip of a route has the same hop times. Without an RNG the
// output is fully deterministic; with WithSeed the hop jitter and the trip
// offsets are drawn from the seeded source, so equal seeds give equal fixtures.
//
// Errors (sentinel):
//
//	- ErrTooFewStations  size parameters below the constructor minimum.
//	- ErrConstructFailed nil constructor, or a core/timetable rejection.
package builder
