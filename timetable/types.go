package timetable

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/reliaroute/core"
)

// ErrBadClock is returned by ParseClock for malformed "HH:MM:SS" values.
var ErrBadClock = errors.New("timetable: malformed clock time")

// PatternSeparator joins a GTFS route_id and a pattern ordinal.
const PatternSeparator = "#"

// Oracle answers schedule queries for the reverse search.
//
// PreviousArrival returns the latest scheduled arrival of stop's route at stop's
// station at or before t, and its index; the index is -1 (and the time undefined)
// when none exists. StopArrivalTime returns the arrival at a given index.
// AssertSafeTransfer returns the accumulated success probability of taking the
// connection at idx with the given wait time after prior, and whether it meets
// threshold.
type Oracle interface {
	PreviousArrival(stop *core.Stop, t int64) (int64, int)
	StopArrivalTime(stop *core.Stop, idx int) int64
	AssertSafeTransfer(stop *core.Stop, idx int, wait int64, threshold, prior float64) (float64, bool)
}

// DelayModel estimates P(delay ≤ slack) for a vehicle of the given route.
type DelayModel interface {
	OnTime(route string, slack int64) float64
}

// Punctual is a DelayModel for vehicles that always run on time.
type Punctual struct{}

// OnTime returns 1 for non-negative slack, 0 otherwise.
func (Punctual) OnTime(_ string, slack int64) float64 {
	if slack < 0 {
		return 0
	}
	return 1
}

// Exponential models delays as exponentially distributed with mean Mean seconds.
// A zero or negative Mean degrades to Punctual.
type Exponential struct {
	Mean float64
}

// OnTime returns 1 - exp(-slack/Mean) for slack ≥ 0.
func (e Exponential) OnTime(route string, slack int64) float64 {
	if e.Mean <= 0 {
		return Punctual{}.OnTime(route, slack)
	}
	if slack < 0 {
		return 0
	}
	return 1 - math.Exp(-float64(slack)/e.Mean)
}

// Option configures a Schedule.
type Option func(*Schedule)

// WithDelayModel sets the reliability model (default Punctual).
func WithDelayModel(m DelayModel) Option {
	return func(s *Schedule) {
		if m != nil {
			s.model = m
		}
	}
}

// PatternName names the n-th stop pattern of a GTFS route; pattern 0 keeps the bare id.
func PatternName(routeID string, n int) string {
	if n == 0 {
		return routeID
	}
	return routeID + PatternSeparator + strconv.Itoa(n)
}

// BaseRoute strips a pattern suffix added by PatternName.
func BaseRoute(route string) string {
	if i := strings.LastIndex(route, PatternSeparator); i > 0 {
		return route[:i]
	}
	return route
}
