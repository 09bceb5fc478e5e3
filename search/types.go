// Package search defines options, hooks and sentinel errors for the reverse
// itinerary search.
//
// Errors:
//
//	ErrNilNetwork        - network pointer is nil.
//	ErrNilOracle         - schedule oracle is nil.
//	ErrStationNotFound   - origin or destination does not address a station.
//	ErrSameStation       - origin and destination are the same station.
//	ErrBadThreshold      - reliability threshold outside [0, 1] or NaN.
//	ErrBadTransferTime   - negative transfer time.
//	ErrBadSolutionCount  - fewer than one requested itinerary.
//	ErrBadHorizon        - negative search horizon.
//	ErrNonMonotonic      - an accepted update would raise a label.
//	ErrNoConvergence     - the round loop exceeded its round cap.
//	ErrBrokenChain       - predecessor chain is cyclic or dangling.
package search

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/reliaroute/core"
)

// Sentinel errors returned by the search.
var (
	// ErrNilNetwork indicates a nil *core.Network.
	ErrNilNetwork = errors.New("search: network is nil")

	// ErrNilOracle indicates a nil schedule oracle.
	ErrNilOracle = errors.New("search: oracle is nil")

	// ErrStationNotFound indicates an origin or destination handle outside the network.
	ErrStationNotFound = errors.New("search: station not found")

	// ErrSameStation indicates origin == destination.
	ErrSameStation = errors.New("search: origin and destination are the same station")

	// ErrBadThreshold indicates a reliability threshold outside [0, 1].
	ErrBadThreshold = errors.New("search: threshold must be within [0, 1]")

	// ErrBadTransferTime indicates a negative transfer time.
	ErrBadTransferTime = errors.New("search: transfer time must be non-negative")

	// ErrBadSolutionCount indicates a requested itinerary count below one.
	ErrBadSolutionCount = errors.New("search: solution count must be at least 1")

	// ErrBadHorizon indicates a negative horizon.
	ErrBadHorizon = errors.New("search: horizon must be non-negative")

	// ErrNonMonotonic indicates an update that would raise an arrival label.
	ErrNonMonotonic = errors.New("search: non-monotonic label update")

	// ErrNoConvergence indicates that the round loop hit its round cap.
	ErrNoConvergence = errors.New("search: round loop did not converge")

	// ErrBrokenChain indicates a predecessor chain that is cyclic or points nowhere.
	ErrBrokenChain = errors.New("search: broken predecessor chain")
)

// TransferTime is the default time needed to change between two stops of a station.
const TransferTime int64 = 120

// Phase identifies where a label update happened.
type Phase uint8

const (
	// PhaseSeed is the initialization of the start station.
	PhaseSeed Phase = iota

	// PhaseRoutes is the backward ripple along marked routes.
	PhaseRoutes

	// PhaseWalks is the walking closure.
	PhaseWalks

	// PhaseStations is station transfer propagation.
	PhaseStations
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSeed:
		return "seed"
	case PhaseRoutes:
		return "routes"
	case PhaseWalks:
		return "walks"
	case PhaseStations:
		return "stations"
	default:
		return "unknown"
	}
}

// Update describes one accepted label update. It is passed to the OnUpdate hook.
//
// Exactly one of Station and Stop is set; the other is NoStation / NoStop.
// Bound is the live solution bound at the time of the update.
type Update struct {
	Round     int
	Phase     Phase
	Blacklist string
	Station   core.StationID
	Stop      core.StopID
	Old       int64
	New       int64
	Success   float64
	Bound     int64
}

// Options configures one search.
//
// Origin and Destination are real-world endpoints. The reversed search starts at
// Destination and finishes at Origin.
type Options struct {
	Origin       core.StationID
	Destination  core.StationID
	ArriveBy     int64   // real-world target arrival, seconds since service-day midnight
	Threshold    float64 // minimum accumulated transfer success, in [0, 1]
	Solutions    int     // requested itinerary count
	TransferTime int64   // station transfer penalty
	Horizon      int64   // max reversed label explored; core.Infinity disables
	MaxRounds    int     // round cap per invocation; 0 derives it from the network size

	Logger   *slog.Logger
	OnUpdate func(Update)

	err error
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// Origin sets the real-world origin station (the reversed search's target).
func Origin(id core.StationID) Option {
	return func(o *Options) { o.Origin = id }
}

// Destination sets the real-world destination station (the reversed search's start).
func Destination(id core.StationID) Option {
	return func(o *Options) { o.Destination = id }
}

// ArriveBy sets the real-world target arrival time.
func ArriveBy(t int64) Option {
	return func(o *Options) { o.ArriveBy = t }
}

// WithThreshold sets the minimum accumulated transfer success probability.
// Values outside [0, 1] surface as ErrBadThreshold when the search is built.
func WithThreshold(p float64) Option {
	return func(o *Options) {
		if math.IsNaN(p) || p < 0 || p > 1 {
			o.err = fmt.Errorf("%w: %v", ErrBadThreshold, p)
			return
		}
		o.Threshold = p
	}
}

// WithSolutions sets how many itineraries the search tries to return.
func WithSolutions(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: %d", ErrBadSolutionCount, n)
			return
		}
		o.Solutions = n
	}
}

// WithTransferTime overrides the station transfer penalty (default TransferTime).
func WithTransferTime(d int64) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: %d", ErrBadTransferTime, d)
			return
		}
		o.TransferTime = d
	}
}

// WithHorizon limits how far back in time the search explores: no label above h
// is accepted, i.e. nothing departs before ArriveBy - h.
func WithHorizon(h int64) Option {
	return func(o *Options) {
		if h < 0 {
			o.err = fmt.Errorf("%w: %d", ErrBadHorizon, h)
			return
		}
		o.Horizon = h
	}
}

// WithMaxRounds caps the rounds of each invocation. n ≤ 0 restores the derived default.
func WithMaxRounds(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.MaxRounds = n
	}
}

// WithLogger enables debug logging of rounds, captures and diversification.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnUpdate registers a callback invoked after every accepted label update.
func WithOnUpdate(fn func(Update)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnUpdate = fn
		}
	}
}

// DefaultOptions returns Options with defaults:
//   - Origin, Destination: NoStation (must be set).
//   - ArriveBy:     0.
//   - Threshold:    0 (every transfer with positive slack is accepted).
//   - Solutions:    1.
//   - TransferTime: TransferTime (120).
//   - Horizon:      core.Infinity.
//   - MaxRounds:    0 (derived).
//   - Logger:       a logger that discards everything.
//   - OnUpdate:     no-op.
func DefaultOptions() Options {
	return Options{
		Origin:       core.NoStation,
		Destination:  core.NoStation,
		Solutions:    1,
		TransferTime: TransferTime,
		Horizon:      core.Infinity,
		Logger:       slog.New(slog.DiscardHandler),
		OnUpdate:     func(Update) {},
	}
}
