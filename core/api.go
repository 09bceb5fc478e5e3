// File: api.go
// Role: Read-only getters over a built Network.
// Policy:
//   - No mutation here.
//   - Enumerations (Routes, StationNames) are sorted for reproducible output.

package core

import "sort"

// NumStations returns the number of stations in the arena.
// Complexity: O(1)
func (n *Network) NumStations() int { return len(n.stations) }

// NumStops returns the number of stops in the arena.
// Complexity: O(1)
func (n *Network) NumStops() int { return len(n.stops) }

// HasStation reports whether id addresses a station.
func (n *Network) HasStation(id StationID) bool {
	return id >= 0 && int(id) < len(n.stations)
}

// HasStop reports whether id addresses a stop.
func (n *Network) HasStop(id StopID) bool {
	return id >= 0 && int(id) < len(n.stops)
}

// Station returns the station addressed by id.
//
// The returned pointer aliases the arena and must be treated as read-only.
// It panics if id is out of range; use HasStation to check untrusted handles.
// Complexity: O(1)
func (n *Network) Station(id StationID) *Station { return &n.stations[id] }

// Stop returns the stop addressed by id.
//
// The returned pointer aliases the arena and must be treated as read-only.
// It panics if id is out of range; use HasStop to check untrusted handles.
// Complexity: O(1)
func (n *Network) Stop(id StopID) *Stop { return &n.stops[id] }

// StationByName resolves a station name to its handle.
func (n *Network) StationByName(name string) (StationID, bool) {
	id, ok := n.byName[name]
	return id, ok
}

// StationNames returns every station name, sorted ascending.
// Complexity: O(S log S)
func (n *Network) StationNames() []string {
	names := make([]string, 0, len(n.stations))
	for i := range n.stations {
		names = append(names, n.stations[i].Name)
	}
	sort.Strings(names)

	return names
}

// Routes returns every linked route name, sorted ascending.
// Complexity: O(R log R)
func (n *Network) Routes() []string {
	names := make([]string, 0, len(n.routes))
	for name := range n.routes {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// RouteStops returns a copy of the route's stops in real-world order.
func (n *Network) RouteStops(route string) ([]StopID, error) {
	ids, ok := n.routes[route]
	if !ok {
		return nil, ErrStopNotFound
	}
	out := make([]StopID, len(ids))
	copy(out, ids)

	return out, nil
}

// WalkingStopOf returns the station's WalkingStop, if it has one.
func (n *Network) WalkingStopOf(station StationID) (StopID, bool) {
	id, ok := n.walking[station]
	return id, ok
}
