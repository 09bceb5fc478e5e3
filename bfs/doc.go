// Package bfs counts the fewest vehicles needed to travel from one station of
// a transit network to every other station.
//
// What
//
//   - Explores stations in non-decreasing number of rides from a start station.
//   - Boarding a route and riding it any number of stops costs one ride;
//     walking costs nothing, so walk-connected stations share a layer.
//   - Returns a Result containing:
//   - Order:  stations in the order they were settled
//   - Rides:  per station, the fewest rides from the start (-1 if unreached)
//   - Parent: per station, the station it was reached from
//   - Supports an OnVisit hook (may abort with an error), a ride limit and a
//     route filter.
//
// Why
//
//	Rides - 1 is the least number of transfers any itinerary between two
//	stations needs, whatever the timetable says.
//
// Algorithm
//
//	0-1 BFS over stations with a double-ended queue: walking links are
//	pushed to the front, rides to the back. A station is settled the first
//	time it is popped.
//
// Determinism
//
//	Stops are scanned in station order and route stops in sequence order, so
//	Order and Parent are reproducible for equal networks.
//
// Complexity (S = stations, P = stops, L = longest route)
//
//   - Time:   O(S + P*L)
//   - Memory: O(S)
//
// Errors
//
//   - ErrNilNetwork       if the network pointer is nil.
//   - ErrStationNotFound  if the start station does not exist.
//   - ErrOptionViolation  if an Option is invalid (e.g. negative MaxRides).
//   - Wrapped OnVisit errors and context errors.
package bfs
