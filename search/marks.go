// File: marks.go
// Role: Per-round dirty tracking (routes, walking stops, stations) with a route blacklist.
// Determinism:
//   - Routes and stations are drained in first-mark order.
//   - The walk worklist is FIFO; a stop is queued at most once until popped.

package search

import "github.com/katalvlaran/reliaroute/core"

// routeMark is the pending work of one route for the current round.
//
// rep is the marked stop with the highest sequence number. The backward ripple
// starts there and keeps going at least down to the lowest marked sequence low,
// so one walk covers every stop marked on the route this round.
type routeMark struct {
	rep core.StopID
	seq int
	low int
}

// MarkSet tracks exactly which entities need reprocessing.
type MarkSet struct {
	blacklist string

	routes     map[string]routeMark
	routeOrder []string

	walkQueue []core.StopID
	walkSet   map[core.StopID]struct{}

	stations     map[core.StationID]struct{}
	stationOrder []core.StationID
}

// NewMarkSet returns an empty MarkSet. A non-empty blacklist route is invisible:
// MarkRoute ignores its stops.
func NewMarkSet(blacklist string) *MarkSet {
	return &MarkSet{
		blacklist: blacklist,
		routes:    make(map[string]routeMark),
		walkSet:   make(map[core.StopID]struct{}),
		stations:  make(map[core.StationID]struct{}),
	}
}

// Blacklist returns the suppressed route, or "".
func (m *MarkSet) Blacklist() string { return m.blacklist }

// Blacklisted reports whether route is suppressed.
func (m *MarkSet) Blacklisted(route string) bool {
	return m.blacklist != "" && route == m.blacklist
}

// MarkRoute records stop as pending work for its route.
// It returns false, and does nothing, for walking stops and blacklisted routes.
func (m *MarkSet) MarkRoute(stop *core.Stop) bool {
	if stop == nil || !stop.IsRoute() || m.Blacklisted(stop.Route) {
		return false
	}
	cur, ok := m.routes[stop.Route]
	if !ok {
		m.routes[stop.Route] = routeMark{rep: stop.ID, seq: stop.Seq, low: stop.Seq}
		m.routeOrder = append(m.routeOrder, stop.Route)
		return true
	}
	if stop.Seq > cur.seq {
		cur.rep, cur.seq = stop.ID, stop.Seq
	}
	if stop.Seq < cur.low {
		cur.low = stop.Seq
	}
	m.routes[stop.Route] = cur

	return true
}

// Routes returns the marked routes in first-mark order.
func (m *MarkSet) Routes() []string {
	return append([]string(nil), m.routeOrder...)
}

// Representative returns the route's representative stop and the lowest marked
// sequence number.
func (m *MarkSet) Representative(route string) (core.StopID, int, bool) {
	rm, ok := m.routes[route]
	if !ok {
		return core.NoStop, 0, false
	}
	return rm.rep, rm.low, true
}

// FlushRoutes clears all route marks.
func (m *MarkSet) FlushRoutes() {
	clear(m.routes)
	m.routeOrder = m.routeOrder[:0]
}

// MarkWalk queues a walking stop unless it is already queued.
func (m *MarkSet) MarkWalk(id core.StopID) bool {
	if _, ok := m.walkSet[id]; ok {
		return false
	}
	m.walkSet[id] = struct{}{}
	m.walkQueue = append(m.walkQueue, id)

	return true
}

// PopWalk dequeues the oldest walking stop. It returns NoStop when empty.
func (m *MarkSet) PopWalk() core.StopID {
	if len(m.walkQueue) == 0 {
		return core.NoStop
	}
	id := m.walkQueue[0]
	m.walkQueue = m.walkQueue[1:]
	delete(m.walkSet, id)

	return id
}

// WalkEmpty reports whether the walk worklist is drained.
func (m *MarkSet) WalkEmpty() bool { return len(m.walkQueue) == 0 }

// MarkStation adds a station to the pending set (idempotent).
func (m *MarkSet) MarkStation(id core.StationID) bool {
	if _, ok := m.stations[id]; ok {
		return false
	}
	m.stations[id] = struct{}{}
	m.stationOrder = append(m.stationOrder, id)

	return true
}

// Stations returns the marked stations in first-mark order.
func (m *MarkSet) Stations() []core.StationID {
	return append([]core.StationID(nil), m.stationOrder...)
}

// FlushStations clears all station marks.
func (m *MarkSet) FlushStations() {
	clear(m.stations)
	m.stationOrder = m.stationOrder[:0]
}

// Counts returns the number of marked routes, queued walking stops and marked stations.
func (m *MarkSet) Counts() (routes, walks, stations int) {
	return len(m.routeOrder), len(m.walkQueue), len(m.stationOrder)
}

// Empty reports whether no route, walk or station mark is pending.
func (m *MarkSet) Empty() bool {
	return len(m.routeOrder) == 0 && len(m.walkQueue) == 0 && len(m.stationOrder) == 0
}
