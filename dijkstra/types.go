// Package dijkstra computes static travel-time lower bounds on a transit network.
//
// MinTravel runs Dijkstra's algorithm from the destination station over the
// reversed network and returns, for every station, the least ride-plus-walk
// time to the destination when timetables, waiting and transfer times are
// ignored. No itinerary found by the search can be faster, so the bound
// separates "not connected" from "no departure early enough".
//
// Edges, in reversed direction:
//
//	- a route stop to the stop one hop earlier (Prev), weight TravelTime,
//	- a walking stop to each neighbor, weight Duration,
//	- every stop of a station shares the station's distance (transfers are free).
//
// Complexity:
//
//	- Time:  O((S + P) log S)   S = stations, P = stops
//	- Space: O(S + P)           lazy decrease-key heap
//
// Errors (sentinel):
//
//	- ErrNilNetwork       if the network pointer is nil.
//	- ErrStationNotFound  if the destination is not a station of the network.
//	- ErrBadMaxTravel     if WithMaxTravel received a negative value.
package dijkstra

import (
	"errors"

	"github.com/katalvlaran/reliaroute/core"
)

// Sentinel errors returned by MinTravel.
var (
	// ErrNilNetwork indicates that a nil *core.Network was passed.
	ErrNilNetwork = errors.New("dijkstra: network is nil")

	// ErrStationNotFound indicates a destination outside the network.
	ErrStationNotFound = errors.New("dijkstra: station not found")

	// ErrBadMaxTravel indicates a negative exploration cap.
	ErrBadMaxTravel = errors.New("dijkstra: MaxTravel must be non-negative")
)

// Options configures MinTravel.
//
// Destination – station every distance is measured to (required).
// ReturnPath  – if true, also return the next station toward the destination.
// MaxTravel   – stations farther than this stay at core.Infinity.
// Blacklist   – a route whose hops are ignored ("" for none).
type Options struct {
	Destination core.StationID
	ReturnPath  bool
	MaxTravel   int64
	Blacklist   string

	err error
}

// Option represents a functional option for configuring MinTravel.
type Option func(*Options)

// Destination sets the station distances are measured to.
func Destination(id core.StationID) Option {
	return func(o *Options) { o.Destination = id }
}

// WithReturnPath enables the next-hop slice in the result.
func WithReturnPath() Option {
	return func(o *Options) { o.ReturnPath = true }
}

// WithMaxTravel caps exploration at max seconds.
func WithMaxTravel(max int64) Option {
	return func(o *Options) {
		if max < 0 {
			o.err = ErrBadMaxTravel
			return
		}
		o.MaxTravel = max
	}
}

// WithBlacklist ignores the hops of one route.
func WithBlacklist(route string) Option {
	return func(o *Options) { o.Blacklist = route }
}

// DefaultOptions returns Options with defaults:
//   - Destination: core.NoStation (must be set).
//   - ReturnPath:  false.
//   - MaxTravel:   core.Infinity (explore everything reachable).
//   - Blacklist:   "" (every route usable).
func DefaultOptions() Options {
	return Options{
		Destination: core.NoStation,
		MaxTravel:   core.Infinity,
	}
}
