package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/reliaroute/core"
)

// Sentinel errors for Rides.
var (
	// ErrNilNetwork is returned if a nil network pointer is passed.
	ErrNilNetwork = errors.New("bfs: network is nil")

	// ErrStationNotFound is returned when the start station is absent.
	ErrStationNotFound = errors.New("bfs: station not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNoPath is returned by PathTo for an unreached station.
	ErrNoPath = errors.New("bfs: station not reached")
)

// Option configures Rides via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks of one traversal.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when a station is settled. If it returns an error,
	// the traversal aborts and propagates that error.
	OnVisit func(id core.StationID, rides int) error

	// MaxRides, if > 0, stops exploring beyond this many rides.
	MaxRides int

	// FilterRoute skips routes for which it returns false.
	FilterRoute func(route string) bool

	err error
}

// DefaultOptions returns Options with background context, a no-op hook, no
// ride limit and every route allowed.
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		OnVisit:     func(core.StationID, int) error { return nil },
		FilterRoute: func(string) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback run when a station is settled.
func WithOnVisit(fn func(id core.StationID, rides int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxRides limits the number of rides explored.
//
//	d > 0:  limit to d rides
//	d == 0: no limit
//	d < 0:  ErrOptionViolation
func WithMaxRides(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxRides cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxRides = d
	}
}

// WithFilterRoute skips every route for which fn returns false.
func WithFilterRoute(fn func(route string) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterRoute = fn
		}
	}
}

// Result holds the outcome of a traversal.
type Result struct {
	Start  core.StationID
	Order  []core.StationID
	Rides  []int
	Parent []core.StationID
}

// Reached reports whether id was reached from the start.
func (r *Result) Reached(id core.StationID) bool {
	return int(id) >= 0 && int(id) < len(r.Rides) && r.Rides[id] >= 0
}

// PathTo reconstructs the stations from the start to dest where a ride or walk
// begins or ends.
func (r *Result) PathTo(dest core.StationID) ([]core.StationID, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: %d", ErrNoPath, dest)
	}
	path := []core.StationID{}
	for cur := dest; cur != core.NoStation; cur = r.Parent[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
