// Package core provides the transit network used by the reverse itinerary search:
// an index-addressed arena of stations and stops, plus the per-search label state
// that the search relaxes in place.
//
// The Network N = (S, P) holds:
//
//   - Stations: physical locations, addressed by StationID.
//   - Stops: a station's presence on one scheduled route (RouteStop) or the station's
//     endpoint of the walking network (WalkingStop), addressed by StopID.
//
// The network is built already reversed. A RouteStop points at the stop one hop
// EARLIER in real-world travel (Prev) together with the static travel time of that
// hop, so a search that starts at the real-world destination walks Prev pointers
// towards the real-world origin while adding time.
//
// Why an arena?
//
//   - Stations own stops, stops point back to their station, and labels point at the
//     node that produced them. Integer handles keep those cross references cheap and
//     free of ownership cycles.
//   - Topology (Network) and mutable search state (Labels) are separate values. Every
//     search invocation, including each diversification sub-search, allocates fresh
//     Labels over the same immutable Network.
//
// Building a network:
//
//	AddStation(name string) (StationID, error)                           // idempotent per name
//	LinkRoute(route string, stations []StationID, travel []int64) ([]StopID, error)
//	WalkingStop(station StationID) (StopID, error)                       // create or reuse
//	ConnectWalk(a, b StationID, duration int64) error                    // symmetric edge
//
// Querying:
//
//	Station(id) *Station, Stop(id) *Stop          // O(1), panic on bad handle (hot path)
//	StationByName(name) (StationID, bool)         // O(1)
//	RouteStops(route) ([]StopID, error)           // real-world order
//	Routes() []string, StationNames() []string    // sorted, deterministic
//
// Labels:
//
//	NewLabels(n *Network) *Labels                 // every label at Infinity
//	UpdateStation / UpdateStop                    // unconditional overwrite of the triple
//	Reset()                                       // back to Infinity
//
// Update methods never check for improvement. Callers decide when a candidate is
// better; this keeps pruning rules in one place (the search controller).
//
// Concurrency: a Network is safe for concurrent reads once built. Labels belong to a
// single search invocation and are not synchronized.
package core
