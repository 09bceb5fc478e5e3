// Package core defines the Station and Stop entities of the transit network,
// their integer handles, and the sentinel errors returned while building a Network.
//
// Errors:
//
//	ErrEmptyName        - station or route name is the empty string.
//	ErrStationNotFound  - a StationID does not address a station.
//	ErrStopNotFound     - a StopID does not address a stop.
//	ErrNotWalkingStop   - a walking operation was given a RouteStop.
//	ErrBadDuration      - travel or walking duration is not strictly positive.
//	ErrRouteLength      - route has fewer than two stations or mismatched travel times.
//	ErrDuplicateRoute   - route name already linked.
package core

import (
	"errors"
	"math"
)

// Sentinel errors for network construction and lookups.
var (
	// ErrEmptyName indicates that a station or route name is empty.
	ErrEmptyName = errors.New("core: name is empty")

	// ErrStationNotFound indicates an operation referenced a non-existent station.
	ErrStationNotFound = errors.New("core: station not found")

	// ErrStopNotFound indicates an operation referenced a non-existent stop.
	ErrStopNotFound = errors.New("core: stop not found")

	// ErrNotWalkingStop indicates a walking edge endpoint is not a WalkingStop.
	ErrNotWalkingStop = errors.New("core: stop is not a walking stop")

	// ErrBadDuration indicates a travel or walking duration that is not strictly positive.
	ErrBadDuration = errors.New("core: duration must be positive")

	// ErrRouteLength indicates a route with fewer than two stations, or a travel-time
	// slice whose length is not len(stations)-1.
	ErrRouteLength = errors.New("core: bad route length")

	// ErrDuplicateRoute indicates a route name that was already linked.
	ErrDuplicateRoute = errors.New("core: route already exists")
)

// Infinity is the arrival label of an entity that has not been reached.
const Infinity int64 = math.MaxInt64

// StationID addresses a Station inside its Network.
type StationID int

// StopID addresses a Stop inside its Network.
type StopID int

// Sentinel handles.
const (
	NoStation StationID = -1
	NoStop    StopID    = -1
)

// StopKind discriminates the two stop variants.
type StopKind uint8

const (
	// RouteStop is a station's presence on one scheduled route.
	RouteStop StopKind = iota

	// WalkingStop is a station's endpoint of the walking network.
	WalkingStop
)

// String returns a short human-readable kind name.
func (k StopKind) String() string {
	switch k {
	case RouteStop:
		return "route"
	case WalkingStop:
		return "walk"
	default:
		return "unknown"
	}
}

// Station is a physical location. Stops lists the attached stops in creation
// order, which is also the deterministic iteration order used by the search.
type Station struct {
	ID    StationID
	Name  string
	Stops []StopID
}

// Walk is one walking edge from a WalkingStop to a neighboring WalkingStop.
type Walk struct {
	To       StopID
	Duration int64
}

// Stop is a tagged union over RouteStop and WalkingStop.
//
// Common fields: ID, Kind, Station.
// RouteStop fields: Route, Seq (0-based position in real-world order), Prev (the
// stop one hop earlier in real-world travel, NoStop for the first stop of the
// route) and TravelTime (static scheduled duration of the hop Prev → this stop).
// WalkingStop fields: Neighbors.
type Stop struct {
	ID      StopID
	Kind    StopKind
	Station StationID

	Route      string
	Seq        int
	Prev       StopID
	TravelTime int64

	Neighbors []Walk
}

// IsRoute reports whether s is a RouteStop.
func (s *Stop) IsRoute() bool { return s.Kind == RouteStop }

// IsWalking reports whether s is a WalkingStop.
func (s *Stop) IsWalking() bool { return s.Kind == WalkingStop }

// Network is the immutable-after-build topology of the reversed transit graph.
//
// stations and stops are arenas indexed by StationID and StopID.
// byName maps a station name to its handle; routes maps a route name to its stops
// in real-world order; walking maps a station to its single WalkingStop.
type Network struct {
	stations []Station
	stops    []Stop

	byName  map[string]StationID
	routes  map[string][]StopID
	walking map[StationID]StopID
}

// NewNetwork creates an empty Network.
// Complexity: O(1)
func NewNetwork() *Network {
	return &Network{
		byName:  make(map[string]StationID),
		routes:  make(map[string][]StopID),
		walking: make(map[StationID]StopID),
	}
}
