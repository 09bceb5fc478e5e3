// File: phases.go
// Role: One search invocation: seeding, the round loop and its three phases.
// Policy:
//   - Labels are only written through setStation / setStop, which refuse increases.
//   - A stop update needs a strictly smaller label; a station may be rewritten at
//     an equal label when its predecessor or success changes.
//   - Nothing at or above the live solution bound, or above the horizon, is accepted
//     (the target station itself may reach the bound exactly).

package search

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/reliaroute/core"
	"github.com/katalvlaran/reliaroute/timetable"
)

// runner holds the mutable state of a single invocation.
type runner struct {
	net       *core.Network
	oracle    timetable.Oracle
	opts      Options
	maxRounds int
	log       *slog.Logger

	labels    *core.Labels
	marks     *MarkSet
	solutions *SolutionSet

	start  core.StationID // real-world destination
	target core.StationID // real-world origin
	round  int
	phase  Phase
}

func (s *Search) newRunner(blacklist string) *runner {
	log := s.opts.Logger
	if blacklist != "" {
		log = log.With(slog.String("blacklist", blacklist))
	}
	return &runner{
		net:       s.net,
		oracle:    s.oracle,
		opts:      s.opts,
		maxRounds: s.maxRounds,
		log:       log,
		labels:    core.NewLabels(s.net),
		marks:     NewMarkSet(blacklist),
		solutions: NewSolutionSet(s.opts.Origin),
		start:     s.opts.Destination,
		target:    s.opts.Origin,
	}
}

// process seeds the start station and repeats rounds until no mark is pending.
func (r *runner) process() error {
	if err := r.seed(); err != nil {
		return err
	}
	for !r.marks.Empty() {
		r.round++
		if r.round > r.maxRounds {
			return fmt.Errorf("%w: %d rounds", ErrNoConvergence, r.maxRounds)
		}
		if err := r.step(); err != nil {
			return err
		}
	}
	r.log.Debug("converged",
		slog.Int("rounds", r.round),
		slog.Int("solutions", r.solutions.Len()),
		slog.Int64("bound", r.solutions.Bound()))

	return nil
}

// step runs one round: routes, then the walking closure, then stations.
func (r *runner) step() error {
	routes, walks, stations := r.marks.Counts()
	r.log.Debug("round",
		slog.Int("round", r.round),
		slog.Int("routes", routes),
		slog.Int("walks", walks),
		slog.Int("stations", stations))

	if err := r.propagateRoutes(); err != nil {
		return err
	}
	if err := r.propagateWalks(); err != nil {
		return err
	}
	return r.propagateStations()
}

// seed labels the start station at reversed time 0 and boards every stop attached
// to it: route stops through the latest safe connection at or before ArriveBy,
// walking stops directly.
func (r *runner) seed() error {
	r.phase = PhaseSeed
	if err := r.setStation(r.start, 0, core.NoRef, 1); err != nil {
		return err
	}
	from := core.StationRef(r.start)
	for _, id := range r.net.Station(r.start).Stops {
		stop := r.net.Stop(id)
		switch stop.Kind {
		case core.RouteStop:
			if !r.boardable(stop) {
				continue
			}
			label, acc, wait, ok := r.board(stop, r.opts.ArriveBy, 0, 1)
			if !ok || wait < 0 || !r.admitStop(label) {
				continue
			}
			if err := r.setStop(id, label, from, acc); err != nil {
				return err
			}
			r.marks.MarkRoute(stop)
		case core.WalkingStop:
			if err := r.setStop(id, 0, from, 1); err != nil {
				return err
			}
			r.marks.MarkWalk(id)
		}
	}

	return nil
}

// propagateRoutes ripples every marked route backward along Prev.
//
// The walk starts at the route's representative (highest marked sequence). A hop
// that improves its predecessor continues the ripple; a hop that does not still
// moves on while marked stops remain further down the route.
func (r *runner) propagateRoutes() error {
	r.phase = PhaseRoutes
	for _, route := range r.marks.Routes() {
		rep, low, ok := r.marks.Representative(route)
		if !ok {
			continue
		}
		cur := r.net.Stop(rep)
		for cur.Prev != core.NoStop {
			prev := r.net.Stop(cur.Prev)
			l := r.labels.Stop(cur.ID)
			if l.Reached() {
				cand := core.AddTime(l.Arrival, cur.TravelTime)
				if r.admitStop(cand) && cand < r.labels.Stop(prev.ID).Arrival {
					if err := r.setStop(prev.ID, cand, core.StopRef(cur.ID), l.Success); err != nil {
						return err
					}
					r.marks.MarkStation(prev.Station)
					cur = prev
					continue
				}
			}
			if prev.Seq < low {
				break
			}
			cur = prev
		}
	}
	r.marks.FlushRoutes()

	return nil
}

// propagateWalks drains the walk worklist to a local fixed point.
func (r *runner) propagateWalks() error {
	r.phase = PhaseWalks
	for !r.marks.WalkEmpty() {
		id := r.marks.PopWalk()
		l := r.labels.Stop(id)
		if !l.Reached() {
			continue
		}
		for _, w := range r.net.Stop(id).Neighbors {
			cand := core.AddTime(l.Arrival, w.Duration)
			if !r.admitStop(cand) || cand >= r.labels.Stop(w.To).Arrival {
				continue
			}
			if err := r.setStop(w.To, cand, core.StopRef(id), l.Success); err != nil {
				return err
			}
			r.marks.MarkWalk(w.To)
			r.marks.MarkStation(r.net.Stop(w.To).Station)
		}
	}

	return nil
}

// propagateStations relabels every marked station from its earliest stop and, on
// change, transfers onto the station's other stops. The target station captures a
// path instead: nothing beyond it can beat the bound it just set.
func (r *runner) propagateStations() error {
	r.phase = PhaseStations
	for _, sid := range r.marks.Stations() {
		if sid == r.start {
			continue
		}
		earliest, ok := r.earliestStop(sid)
		if !ok {
			continue
		}
		el := r.labels.Stop(earliest)
		cand := core.AddTime(el.Arrival, r.opts.TransferTime)
		pred := core.StopRef(earliest)
		cur := r.labels.Station(sid)
		if cand > cur.Arrival || !r.admitStation(cand) {
			continue
		}
		if cand == cur.Arrival && pred == cur.Pred && el.Success == cur.Success {
			continue
		}
		if err := r.setStation(sid, cand, pred, el.Success); err != nil {
			return err
		}
		if sid == r.target {
			if err := r.capture(); err != nil {
				return err
			}
			continue
		}
		if err := r.transfer(sid, earliest); err != nil {
			return err
		}
	}
	r.marks.FlushStations()

	return nil
}

// earliestStop returns the reached stop of the station with the smallest label,
// ignoring stops that were labeled from the station itself. Ties go to the lowest
// StopID.
func (r *runner) earliestStop(sid core.StationID) (core.StopID, bool) {
	self := core.StationRef(sid)
	best, bestLabel := core.NoStop, core.Infinity
	for _, id := range r.net.Station(sid).Stops {
		l := r.labels.Stop(id)
		if !l.Reached() || l.Pred == self {
			continue
		}
		if l.Arrival < bestLabel || (l.Arrival == bestLabel && id < best) {
			best, bestLabel = id, l.Arrival
		}
	}

	return best, best != core.NoStop
}

// transfer pushes the station's fresh label onto its other stops.
func (r *runner) transfer(sid core.StationID, earliest core.StopID) error {
	sl := r.labels.Station(sid)
	rw := r.opts.ArriveBy - sl.Arrival
	from := core.StationRef(sid)
	for _, id := range r.net.Station(sid).Stops {
		if id == earliest {
			continue
		}
		stop := r.net.Stop(id)
		switch stop.Kind {
		case core.RouteStop:
			if !r.boardable(stop) {
				continue
			}
			label, acc, wait, ok := r.board(stop, rw, sl.Arrival, sl.Success)
			if !ok || wait <= 0 || !r.admitStop(label) {
				continue
			}
			if err := r.setStop(id, label, from, acc); err != nil {
				return err
			}
			r.marks.MarkRoute(stop)
		case core.WalkingStop:
			if sl.Arrival >= r.labels.Stop(id).Arrival || !r.admitStop(sl.Arrival) {
				continue
			}
			if err := r.setStop(id, sl.Arrival, from, sl.Success); err != nil {
				return err
			}
			r.marks.MarkWalk(id)
		}
	}

	return nil
}

// boardable reports whether a vehicle of the stop's route can be left at the stop:
// the route is not blacklisted and the stop is not the first of its route.
func (r *runner) boardable(stop *core.Stop) bool {
	return stop.Prev != core.NoStop && !r.marks.Blacklisted(stop.Route)
}

// board finds the latest connection of stop at or before real-world time rw whose
// transfer is safe, walking back through earlier connections while they could
// still improve the stop. base is the reversed label the wait is added to and
// prior the success accumulated so far.
//
// It returns the candidate label, the accumulated success, the wait, and false
// when no safe improving connection exists.
func (r *runner) board(stop *core.Stop, rw, base int64, prior float64) (int64, float64, int64, bool) {
	t, idx := r.oracle.PreviousArrival(stop, rw)
	if idx < 0 {
		return 0, 0, 0, false
	}
	cur := r.labels.Stop(stop.ID).Arrival
	wait := rw - t
	acc, safe := r.oracle.AssertSafeTransfer(stop, idx, wait, r.opts.Threshold, prior)
	for idx--; !safe && core.AddTime(base, wait) < cur && idx >= 0; idx-- {
		wait = rw - r.oracle.StopArrivalTime(stop, idx)
		acc, safe = r.oracle.AssertSafeTransfer(stop, idx, wait, r.opts.Threshold, prior)
	}
	label := core.AddTime(base, wait)
	if !safe || label >= cur {
		return 0, 0, 0, false
	}

	return label, acc, wait, true
}

// capture records the path currently ending at the target station.
func (r *runner) capture() error {
	p, err := BuildPath(r.net, r.labels, r.target, r.opts.ArriveBy)
	if err != nil {
		return err
	}
	r.solutions.Save(p)
	r.log.Debug("solution",
		slog.Int("round", r.round),
		slog.Int64("departure", p.Departure),
		slog.Int64("arrival", p.Arrival),
		slog.Float64("success", p.Success),
		slog.Any("routes", p.Routes))

	return nil
}

func (r *runner) admitStop(label int64) bool {
	return label < r.solutions.Bound() && label <= r.opts.Horizon
}

func (r *runner) admitStation(label int64) bool {
	return label <= r.solutions.Bound() && label <= r.opts.Horizon
}

func (r *runner) setStation(id core.StationID, arrival int64, pred core.Ref, success float64) error {
	old := r.labels.Station(id).Arrival
	if arrival > old {
		return fmt.Errorf("%w: station %d %d -> %d", ErrNonMonotonic, id, old, arrival)
	}
	bound := r.solutions.Bound()
	r.labels.UpdateStation(id, arrival, pred, success)
	r.opts.OnUpdate(Update{
		Round:     r.round,
		Phase:     r.phase,
		Blacklist: r.marks.Blacklist(),
		Station:   id,
		Stop:      core.NoStop,
		Old:       old,
		New:       arrival,
		Success:   success,
		Bound:     bound,
	})

	return nil
}

func (r *runner) setStop(id core.StopID, arrival int64, pred core.Ref, success float64) error {
	old := r.labels.Stop(id).Arrival
	if arrival >= old {
		return fmt.Errorf("%w: stop %d %d -> %d", ErrNonMonotonic, id, old, arrival)
	}
	bound := r.solutions.Bound()
	r.labels.UpdateStop(id, arrival, pred, success)
	r.opts.OnUpdate(Update{
		Round:     r.round,
		Phase:     r.phase,
		Blacklist: r.marks.Blacklist(),
		Station:   core.NoStation,
		Stop:      id,
		Old:       old,
		New:       arrival,
		Success:   success,
		Bound:     bound,
	})

	return nil
}
