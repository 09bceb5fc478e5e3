// Package reliaroute plans public-transport itineraries that arrive by a
// deadline and only use transfers that are likely to hold.
//
// The search runs backwards from the destination in rounds, propagating
// arrival labels along routes, walking links and station transfers. Each
// transfer is gated by the probability that the arriving vehicle is on time
// enough to make the connection; itineraries whose accumulated probability
// falls below a threshold are discarded and earlier connections are tried.
// Alternatives are found by repeating the search with each route of the best
// itinerary blacklisted.
//
// Subpackages:
//
//	core/      - stations, stops and the label arrays of the search
//	timetable/ - scheduled arrivals, clock parsing and delay models
//	search/    - the reverse round-based search and diversification
//	delays/    - empirical delay distributions from GTFS-Realtime feeds
//	gtfs/      - loading a GTFS static feed into a network and schedule
//	dijkstra/  - static travel-time lower bounds
//	bfs/       - fewest boardings between stations
//	builder/   - synthetic networks for tests and benchmarks
//	config/    - YAML configuration with validation
//	cmd/reliaroute - the command-line planner
package reliaroute
