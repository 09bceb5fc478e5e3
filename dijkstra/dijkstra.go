package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/reliaroute/core"
)

// MinTravel returns, for every station, the static lower bound of travel time
// to the destination in seconds (core.Infinity if unreachable).
//
// next is nil unless WithReturnPath was given; otherwise next[s] is the station
// that follows s on one fastest static connection, core.NoStation for the
// destination and unreachable stations.
//
// Preconditions and validation (in order):
//  1. Option errors (ErrBadMaxTravel).
//  2. net must be non-nil (ErrNilNetwork).
//  3. net must contain Destination (ErrStationNotFound).
func MinTravel(net *core.Network, opts ...Option) (dist []int64, next []core.StationID, err error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, nil, cfg.err
	}
	if net == nil {
		return nil, nil, ErrNilNetwork
	}
	if !net.HasStation(cfg.Destination) {
		return nil, nil, fmt.Errorf("%w: %d", ErrStationNotFound, cfg.Destination)
	}

	r := &runner{
		net:     net,
		options: cfg,
		dist:    make([]int64, net.NumStations()),
		visited: make([]bool, net.NumStations()),
		pq:      make(nodePQ, 0, net.NumStations()),
	}
	if cfg.ReturnPath {
		r.next = make([]core.StationID, net.NumStations())
	}
	r.init()
	r.process()

	return r.dist, r.next, nil
}

// runner holds the mutable state for one execution.
type runner struct {
	net     *core.Network
	options Options
	dist    []int64
	next    []core.StationID
	visited []bool
	pq      nodePQ
}

func (r *runner) init() {
	for i := range r.dist {
		r.dist[i] = core.Infinity
		if r.next != nil {
			r.next[i] = core.NoStation
		}
	}
	r.dist[r.options.Destination] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.options.Destination, dist: 0})
}

// process pops stations in order of distance until the heap is empty or the
// cap is exceeded. Stale heap entries are skipped.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		if r.visited[u] {
			continue
		}
		if item.dist > r.options.MaxTravel {
			break
		}
		r.visited[u] = true
		r.relax(u)
	}
}

// relax follows every stop of station u one hop backwards in real-world time.
func (r *runner) relax(u core.StationID) {
	for _, sid := range r.net.Station(u).Stops {
		stop := r.net.Stop(sid)
		switch stop.Kind {
		case core.RouteStop:
			if stop.Prev == core.NoStop || stop.Route == r.options.Blacklist {
				continue
			}
			r.improve(u, r.net.Stop(stop.Prev).Station, stop.TravelTime)
		case core.WalkingStop:
			for _, w := range stop.Neighbors {
				r.improve(u, r.net.Stop(w.To).Station, w.Duration)
			}
		}
	}
}

func (r *runner) improve(u, v core.StationID, w int64) {
	d := core.AddTime(r.dist[u], w)
	if d > r.options.MaxTravel || d >= r.dist[v] {
		return
	}
	r.dist[v] = d
	if r.next != nil {
		r.next[v] = u
	}
	heap.Push(&r.pq, &nodeItem{id: v, dist: d})
}

// nodeItem is a station and its tentative distance.
type nodeItem struct {
	id   core.StationID
	dist int64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, ties by station ID.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
