// Package delays turns GTFS-Realtime trip updates into a reliability model for the
// schedule oracle.
//
// A Recorder collects observed arrival delays per GTFS route_id from TripUpdate
// feeds. Model freezes the observations into an Empirical DelayModel: the
// probability that a vehicle is not later than a given slack is the fraction of
// observed delays ≤ slack for that route. Routes with too few observations fall
// back to all observations; with none at all the model is Punctual.
//
// Skipped:
//
//	– trips whose TripDescriptor is CANCELED,
//	– stop time updates marked SKIPPED or NO_DATA,
//	– updates with neither an arrival nor a departure delay,
//	– trips whose route cannot be resolved (no route_id, no TripRoutes entry).
//
// A Recorder is safe for concurrent use.
package delays

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// ErrDecode is returned by ObserveBytes when the payload is not a FeedMessage.
var ErrDecode = errors.New("delays: cannot decode feed message")

// DefaultMinSamples is the per-route sample count below which the global
// distribution is used instead.
const DefaultMinSamples = 20

// Recorder accumulates observed delays in seconds, keyed by GTFS route_id.
type Recorder struct {
	mu         sync.Mutex
	tripRoutes map[string]string
	minSamples int
	byRoute    map[string][]int64
	all        []int64
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithTripRoutes resolves trip_id → route_id for feeds whose TripDescriptor
// omits route_id. The map is read, never modified.
func WithTripRoutes(m map[string]string) Option {
	return func(r *Recorder) {
		if m != nil {
			r.tripRoutes = m
		}
	}
}

// WithMinSamples sets the per-route fallback threshold (default DefaultMinSamples).
func WithMinSamples(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.minSamples = n
		}
	}
}

// NewRecorder returns an empty Recorder.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		tripRoutes: map[string]string{},
		minSamples: DefaultMinSamples,
		byRoute:    map[string][]int64{},
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ObserveBytes decodes a serialized FeedMessage and records it.
func (r *Recorder) ObserveBytes(b []byte) (int, error) {
	var fm gtfsrt.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return r.Observe(&fm), nil
}

// Observe records every usable delay of the feed and returns how many were recorded.
func (r *Recorder) Observe(fm *gtfsrt.FeedMessage) int {
	if fm == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range fm.GetEntity() {
		tu := e.GetTripUpdate()
		if tu == nil {
			continue
		}
		trip := tu.GetTrip()
		if trip.GetScheduleRelationship() == gtfsrt.TripDescriptor_CANCELED {
			continue
		}
		route := trip.GetRouteId()
		if route == "" {
			route = r.tripRoutes[trip.GetTripId()]
		}
		if route == "" {
			continue
		}
		for _, stu := range tu.GetStopTimeUpdate() {
			d, ok := stopDelay(stu)
			if !ok {
				continue
			}
			r.byRoute[route] = append(r.byRoute[route], d)
			r.all = append(r.all, d)
			n++
		}
	}

	return n
}

// stopDelay returns the arrival delay of the update, or its departure delay when
// no arrival delay is present.
func stopDelay(stu *gtfsrt.TripUpdate_StopTimeUpdate) (int64, bool) {
	switch stu.GetScheduleRelationship() {
	case gtfsrt.TripUpdate_StopTimeUpdate_SKIPPED, gtfsrt.TripUpdate_StopTimeUpdate_NO_DATA:
		return 0, false
	}
	if a := stu.GetArrival(); a != nil && a.Delay != nil {
		return int64(a.GetDelay()), true
	}
	if d := stu.GetDeparture(); d != nil && d.Delay != nil {
		return int64(d.GetDelay()), true
	}
	return 0, false
}

// Samples returns the number of delays recorded for route ("" for all routes).
func (r *Recorder) Samples(route string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if route == "" {
		return len(r.all)
	}
	return len(r.byRoute[route])
}

// Routes returns the routes with at least one observation, sorted.
func (r *Recorder) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.byRoute))
	for route := range r.byRoute {
		out = append(out, route)
	}
	sort.Strings(out)

	return out
}

// Model freezes the current observations into an Empirical model. Later
// observations do not affect the returned model.
func (r *Recorder) Model() *Empirical {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := &Empirical{
		byRoute:    make(map[string][]int64, len(r.byRoute)),
		global:     sortedCopy(r.all),
		minSamples: r.minSamples,
	}
	for route, ds := range r.byRoute {
		m.byRoute[route] = sortedCopy(ds)
	}

	return m
}

func sortedCopy(ds []int64) []int64 {
	out := make([]int64, len(ds))
	copy(out, ds)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
