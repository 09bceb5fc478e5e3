package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/reliaroute/core"
)

// walker encapsulates mutable traversal state.
type walker struct {
	net     *core.Network
	opts    Options
	ctx     context.Context
	deque   []core.StationID
	settled []bool
	res     *Result
	routes  map[string][]core.StopID
}

// Rides runs the fewest-rides traversal of net from start.
// Returns ErrNilNetwork, ErrStationNotFound, ErrOptionViolation, a wrapped
// OnVisit error, or the context error.
func Rides(net *core.Network, start core.StationID, opts ...Option) (*Result, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !net.HasStation(start) {
		return nil, fmt.Errorf("%w: %d", ErrStationNotFound, start)
	}

	n := net.NumStations()
	w := &walker{
		net:     net,
		opts:    o,
		ctx:     o.Ctx,
		deque:   make([]core.StationID, 0, n),
		settled: make([]bool, n),
		routes:  make(map[string][]core.StopID),
		res: &Result{
			Start:  start,
			Order:  make([]core.StationID, 0, n),
			Rides:  make([]int, n),
			Parent: make([]core.StationID, n),
		},
	}
	for i := range w.res.Rides {
		w.res.Rides[i] = -1
		w.res.Parent[i] = core.NoStation
	}
	w.res.Rides[start] = 0
	w.deque = append(w.deque, start)

	return w.res, w.loop()
}

// loop settles stations until the deque is empty, an error, or cancellation.
func (w *walker) loop() error {
	for len(w.deque) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		u := w.deque[0]
		w.deque = w.deque[1:]
		if w.settled[u] {
			continue
		}
		w.settled[u] = true
		w.res.Order = append(w.res.Order, u)
		if err := w.opts.OnVisit(u, w.res.Rides[u]); err != nil {
			return fmt.Errorf("bfs: OnVisit error at station %d: %w", u, err)
		}
		w.expand(u)
	}

	return nil
}

// expand relaxes the walks and rides leaving u.
func (w *walker) expand(u core.StationID) {
	d := w.res.Rides[u]
	for _, sid := range w.net.Station(u).Stops {
		stop := w.net.Stop(sid)
		switch stop.Kind {
		case core.WalkingStop:
			for _, nb := range stop.Neighbors {
				w.relax(u, w.net.Stop(nb.To).Station, d, true)
			}
		case core.RouteStop:
			if !w.opts.FilterRoute(stop.Route) {
				continue
			}
			if w.opts.MaxRides > 0 && d+1 > w.opts.MaxRides {
				continue
			}
			for _, later := range w.routeStops(stop.Route)[stop.Seq+1:] {
				w.relax(u, w.net.Stop(later).Station, d+1, false)
			}
		}
	}
}

// relax records v at rides d if that improves it; walks go to the front.
func (w *walker) relax(u, v core.StationID, d int, front bool) {
	if w.settled[v] || (w.res.Rides[v] >= 0 && w.res.Rides[v] <= d) {
		return
	}
	w.res.Rides[v] = d
	w.res.Parent[v] = u
	if front {
		w.deque = append([]core.StationID{v}, w.deque...)
		return
	}
	w.deque = append(w.deque, v)
}

func (w *walker) routeStops(route string) []core.StopID {
	if stops, ok := w.routes[route]; ok {
		return stops
	}
	stops, _ := w.net.RouteStops(route)
	w.routes[route] = stops

	return stops
}
