package delays

import (
	"sort"

	"github.com/katalvlaran/reliaroute/timetable"
)

// Empirical is a timetable.DelayModel backed by observed delays.
type Empirical struct {
	byRoute    map[string][]int64 // sorted ascending
	global     []int64            // sorted ascending
	minSamples int
}

var _ timetable.DelayModel = (*Empirical)(nil)

// OnTime returns the fraction of observed delays ≤ slack for the route's GTFS
// route_id. Pattern suffixes are stripped with timetable.BaseRoute.
func (e *Empirical) OnTime(route string, slack int64) float64 {
	if slack < 0 {
		return 0
	}
	ds := e.samples(route)
	if len(ds) == 0 {
		return timetable.Punctual{}.OnTime(route, slack)
	}
	k := sort.Search(len(ds), func(i int) bool { return ds[i] > slack })

	return float64(k) / float64(len(ds))
}

// Percentile returns the delay not exceeded by fraction q of the route's
// observations, q in [0, 1]. It returns 0 when nothing was observed.
func (e *Empirical) Percentile(route string, q float64) int64 {
	ds := e.samples(route)
	if len(ds) == 0 {
		return 0
	}
	switch {
	case q <= 0:
		return ds[0]
	case q >= 1:
		return ds[len(ds)-1]
	}
	i := int(q*float64(len(ds)) + 0.5)
	if i > 0 {
		i--
	}
	return ds[i]
}

func (e *Empirical) samples(route string) []int64 {
	ds := e.byRoute[timetable.BaseRoute(route)]
	if len(ds) < e.minSamples {
		return e.global
	}
	return ds
}
