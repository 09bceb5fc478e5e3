package timetable

import (
	"sort"

	"github.com/katalvlaran/reliaroute/core"
)

// Schedule is an in-memory Oracle.
//
// arrivals[stop] is kept sorted ascending so PreviousArrival is a binary search.
// Arrivals are keyed by route stop, not by (route, station): a loop route visits
// a station more than once and every visit has its own times.
// A Schedule is built once and then read by any number of searches; it is not
// synchronized for concurrent writers.
type Schedule struct {
	arrivals map[core.StopID][]int64
	model    DelayModel
}

// Compile-time check.
var _ Oracle = (*Schedule)(nil)

// NewSchedule returns an empty Schedule using the Punctual model unless overridden.
func NewSchedule(opts ...Option) *Schedule {
	s := &Schedule{
		arrivals: make(map[core.StopID][]int64),
		model:    Punctual{},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SetDelayModel replaces the reliability model. A nil model is ignored.
func (s *Schedule) SetDelayModel(m DelayModel) {
	if m != nil {
		s.model = m
	}
}

// DelayModel returns the reliability model in use.
func (s *Schedule) DelayModel() DelayModel { return s.model }

// AddArrival records one scheduled arrival at route stop at real-world time t.
// Insertion keeps the slice sorted; duplicates are kept (two vehicles may share a time).
// Complexity: O(log k + k) for k arrivals already recorded at the stop.
func (s *Schedule) AddArrival(stop core.StopID, t int64) {
	times := s.arrivals[stop]
	i := sort.Search(len(times), func(i int) bool { return times[i] > t })
	times = append(times, 0)
	copy(times[i+1:], times[i:])
	times[i] = t
	s.arrivals[stop] = times
}

// Arrivals returns a copy of the sorted arrivals at route stop.
func (s *Schedule) Arrivals(stop core.StopID) []int64 {
	times := s.arrivals[stop]
	out := make([]int64, len(times))
	copy(out, times)

	return out
}

// Len returns the number of recorded arrivals.
func (s *Schedule) Len() int {
	n := 0
	for _, times := range s.arrivals {
		n += len(times)
	}
	return n
}

// PreviousArrival implements Oracle. Walking stops have no schedule and always yield -1.
// Complexity: O(log k)
func (s *Schedule) PreviousArrival(stop *core.Stop, t int64) (int64, int) {
	if stop == nil || !stop.IsRoute() {
		return 0, -1
	}
	times := s.arrivals[stop.ID]
	i := sort.Search(len(times), func(i int) bool { return times[i] > t }) - 1
	if i < 0 {
		return 0, -1
	}

	return times[i], i
}

// StopArrivalTime implements Oracle. It returns 0 for an index outside the schedule.
func (s *Schedule) StopArrivalTime(stop *core.Stop, idx int) int64 {
	if stop == nil {
		return 0
	}
	times := s.arrivals[stop.ID]
	if idx < 0 || idx >= len(times) {
		return 0
	}

	return times[idx]
}

// AssertSafeTransfer implements Oracle.
//
// The accumulated probability is prior × P(delay ≤ wait) under the delay model of
// the stop's route; the transfer is safe iff that value is ≥ threshold. An index
// outside the schedule is never safe.
func (s *Schedule) AssertSafeTransfer(stop *core.Stop, idx int, wait int64, threshold, prior float64) (float64, bool) {
	if stop == nil {
		return 0, false
	}
	times := s.arrivals[stop.ID]
	if idx < 0 || idx >= len(times) {
		return 0, false
	}
	acc := prior * s.model.OnTime(stop.Route, wait)

	return acc, acc >= threshold
}
