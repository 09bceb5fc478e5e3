package search

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/reliaroute/core"
)

// Step is one stop visited by an itinerary, in real-world order.
//
// Time is the real-world time at the stop: the scheduled departure for a boarding
// stop, the scheduled arrival for an alighting stop, the walking clock otherwise.
// Alight is true for the last stop of a leg. Guarded is true when the transfer
// safety test was applied at this stop; Wait is then the slack before the next leg.
type Step struct {
	Station core.StationID
	Stop    core.StopID
	Kind    core.StopKind
	Route   string
	Time    int64
	Wait    int64
	Success float64
	Alight  bool
	Guarded bool
}

// Leg is a maximal run of steps on one route, or on foot.
type Leg struct {
	Kind   core.StopKind
	Route  string
	From   core.StationID
	To     core.StationID
	Depart int64
	Arrive int64
	Steps  []Step
}

// Path is an immutable itinerary snapshot.
//
// Bound is the reversed label of the real-world origin station at capture time; a
// smaller Bound means a later feasible departure.
type Path struct {
	Steps     []Step
	Routes    []string
	Departure int64
	Arrival   int64
	Duration  int64
	Success   float64
	Bound     int64
}

// Legs groups the steps into rides and walks.
func (p Path) Legs() []Leg {
	var (
		legs  []Leg
		start int
	)
	for i := range p.Steps {
		last := i == len(p.Steps)-1
		if !p.Steps[i].Alight && !last {
			continue
		}
		run := p.Steps[start : i+1]
		legs = append(legs, Leg{
			Kind:   run[0].Kind,
			Route:  run[0].Route,
			From:   run[0].Station,
			To:     run[len(run)-1].Station,
			Depart: run[0].Time,
			Arrive: run[len(run)-1].Time,
			Steps:  append([]Step(nil), run...),
		})
		start = i + 1
	}

	return legs
}

// Transfers returns the number of vehicle changes.
func (p Path) Transfers() int {
	rides := 0
	for _, l := range p.Legs() {
		if l.Kind == core.RouteStop {
			rides++
		}
	}
	if rides == 0 {
		return 0
	}
	return rides - 1
}

// Uses reports whether the path rides route.
func (p Path) Uses(route string) bool {
	for _, r := range p.Routes {
		if r == route {
			return true
		}
	}
	return false
}

// signature identifies the stop sequence and times, for de-duplication.
func (p Path) signature() string {
	var b strings.Builder
	for _, s := range p.Steps {
		fmt.Fprintf(&b, "%d@%d;", s.Stop, s.Time)
	}
	return b.String()
}

// BuildPath reconstructs the itinerary ending at target by following predecessors
// from target's label back to the search start.
//
// arriveBy converts reversed labels into real-world times.
//
// Errors:
//   - ErrBrokenChain: target unreached, a dangling reference, or a cycle.
//
// Complexity: O(len(path)), bounded by S + P.
func BuildPath(net *core.Network, labels *core.Labels, target core.StationID, arriveBy int64) (Path, error) {
	tl := labels.Station(target)
	if !tl.Reached() {
		return Path{}, fmt.Errorf("%w: station %d unreached", ErrBrokenChain, target)
	}

	path := Path{Bound: tl.Arrival, Success: tl.Success}
	limit := net.NumStations() + net.NumStops() + 1
	seen := make(map[core.Ref]struct{}, 16)
	ref := tl.Pred

	for ref.Kind != core.RefNone {
		if len(seen) > limit {
			return Path{}, fmt.Errorf("%w: chain longer than %d", ErrBrokenChain, limit)
		}
		if _, dup := seen[ref]; dup {
			return Path{}, fmt.Errorf("%w: cycle at %v", ErrBrokenChain, ref)
		}
		seen[ref] = struct{}{}

		switch ref.Kind {
		case core.RefStation:
			id := ref.Station()
			if !net.HasStation(id) {
				return Path{}, fmt.Errorf("%w: station %d", ErrBrokenChain, id)
			}
			ref = labels.Station(id).Pred
		case core.RefStop:
			id := ref.Stop()
			if !net.HasStop(id) {
				return Path{}, fmt.Errorf("%w: stop %d", ErrBrokenChain, id)
			}
			stop := net.Stop(id)
			l := labels.Stop(id)
			if !l.Reached() {
				return Path{}, fmt.Errorf("%w: stop %d unreached", ErrBrokenChain, id)
			}
			step := Step{
				Station: stop.Station,
				Stop:    id,
				Kind:    stop.Kind,
				Route:   stop.Route,
				Time:    arriveBy - l.Arrival,
				Success: l.Success,
				Alight:  l.Pred.Kind == core.RefStation,
			}
			if step.Alight && stop.IsRoute() {
				step.Guarded = true
				step.Wait = l.Arrival - labels.Station(l.Pred.Station()).Arrival
			}
			path.Steps = append(path.Steps, step)
			if stop.IsRoute() && !path.Uses(stop.Route) {
				path.Routes = append(path.Routes, stop.Route)
			}
			ref = l.Pred
		default:
			return Path{}, fmt.Errorf("%w: bad reference kind %d", ErrBrokenChain, ref.Kind)
		}
	}

	if len(path.Steps) > 0 {
		path.Departure = path.Steps[0].Time
		path.Arrival = path.Steps[len(path.Steps)-1].Time
		path.Duration = path.Arrival - path.Departure
	}

	return path, nil
}
