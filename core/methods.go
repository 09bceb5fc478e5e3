// File: methods.go
// Role: Network construction (stations, routes, walking edges).
// Determinism:
//   - Handles are assigned sequentially in call order.
//   - A station's Stops keep creation order.

package core

import "fmt"

// AddStation inserts a station if missing and returns its handle (idempotent per name).
//
// Errors:
//   - ErrEmptyName: if name == "".
//
// Complexity: O(1) amortized.
func (n *Network) AddStation(name string) (StationID, error) {
	if name == "" {
		return NoStation, ErrEmptyName
	}
	if id, ok := n.byName[name]; ok {
		return id, nil
	}
	id := StationID(len(n.stations))
	n.stations = append(n.stations, Station{ID: id, Name: name})
	n.byName[name] = id

	return id, nil
}

// LinkRoute creates one RouteStop per entry of stations, in real-world travel order,
// and wires each stop to the one before it.
//
// travel[i] is the scheduled duration from stations[i] to stations[i+1]; it becomes
// the TravelTime of the stop at stations[i+1]. The first stop has Prev == NoStop.
// The same station may appear more than once (loop routes); each occurrence gets its
// own stop.
//
// Errors:
//   - ErrEmptyName: route == "".
//   - ErrDuplicateRoute: route already linked.
//   - ErrRouteLength: len(stations) < 2 or len(travel) != len(stations)-1.
//   - ErrStationNotFound: an entry does not address a station.
//   - ErrBadDuration: a travel time ≤ 0.
//
// Complexity: O(len(stations)).
func (n *Network) LinkRoute(route string, stations []StationID, travel []int64) ([]StopID, error) {
	if route == "" {
		return nil, ErrEmptyName
	}
	if _, ok := n.routes[route]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateRoute, route)
	}
	if len(stations) < 2 || len(travel) != len(stations)-1 {
		return nil, fmt.Errorf("%w: %d stations, %d travel times", ErrRouteLength, len(stations), len(travel))
	}
	// Validate everything before touching the arena so a failed call leaves no partial route.
	for _, st := range stations {
		if !n.HasStation(st) {
			return nil, fmt.Errorf("%w: %d", ErrStationNotFound, st)
		}
	}
	for i, d := range travel {
		if d <= 0 {
			return nil, fmt.Errorf("%w: route %q hop %d travel=%d", ErrBadDuration, route, i, d)
		}
	}

	ids := make([]StopID, len(stations))
	prev := NoStop
	for i, st := range stations {
		id := StopID(len(n.stops))
		stop := Stop{
			ID:      id,
			Kind:    RouteStop,
			Station: st,
			Route:   route,
			Seq:     i,
			Prev:    prev,
		}
		if i > 0 {
			stop.TravelTime = travel[i-1]
		}
		n.stops = append(n.stops, stop)
		n.stations[st].Stops = append(n.stations[st].Stops, id)
		ids[i] = id
		prev = id
	}
	n.routes[route] = ids

	return append([]StopID(nil), ids...), nil
}

// WalkingStop returns the station's WalkingStop, creating it on first use.
//
// Errors:
//   - ErrStationNotFound: station does not exist.
//
// Complexity: O(1) amortized.
func (n *Network) WalkingStop(station StationID) (StopID, error) {
	if !n.HasStation(station) {
		return NoStop, fmt.Errorf("%w: %d", ErrStationNotFound, station)
	}
	if id, ok := n.walking[station]; ok {
		return id, nil
	}
	id := StopID(len(n.stops))
	n.stops = append(n.stops, Stop{ID: id, Kind: WalkingStop, Station: station, Prev: NoStop})
	n.stations[station].Stops = append(n.stations[station].Stops, id)
	n.walking[station] = id

	return id, nil
}

// AddWalk adds a symmetric walking edge between two WalkingStops.
// An existing edge between the same pair keeps the shorter duration.
//
// Errors:
//   - ErrStopNotFound, ErrNotWalkingStop, ErrBadDuration.
func (n *Network) AddWalk(a, b StopID, duration int64) error {
	for _, id := range [2]StopID{a, b} {
		if !n.HasStop(id) {
			return fmt.Errorf("%w: %d", ErrStopNotFound, id)
		}
		if n.stops[id].Kind != WalkingStop {
			return fmt.Errorf("%w: %d", ErrNotWalkingStop, id)
		}
	}
	if duration <= 0 {
		return fmt.Errorf("%w: walk %d-%d duration=%d", ErrBadDuration, a, b, duration)
	}
	if a == b {
		return nil
	}
	n.setWalk(a, b, duration)
	n.setWalk(b, a, duration)

	return nil
}

// ConnectWalk links two stations on foot, creating their WalkingStops as needed.
func (n *Network) ConnectWalk(a, b StationID, duration int64) error {
	wa, err := n.WalkingStop(a)
	if err != nil {
		return err
	}
	wb, err := n.WalkingStop(b)
	if err != nil {
		return err
	}

	return n.AddWalk(wa, wb, duration)
}

// setWalk inserts or shortens the directed neighbor entry from → to.
func (n *Network) setWalk(from, to StopID, duration int64) {
	nb := n.stops[from].Neighbors
	for i := range nb {
		if nb[i].To == to {
			if duration < nb[i].Duration {
				nb[i].Duration = duration
			}
			return
		}
	}
	n.stops[from].Neighbors = append(nb, Walk{To: to, Duration: duration})
}
