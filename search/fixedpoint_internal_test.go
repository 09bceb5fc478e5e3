package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/reliaroute/core"
	"github.com/katalvlaran/reliaroute/timetable"
)

// buildGrid links a small network with two transfers and a walking shortcut.
func buildGrid(t *testing.T) (*core.Network, *timetable.Schedule, core.StationID, core.StationID) {
	t.Helper()
	n := core.NewNetwork()
	s := timetable.NewSchedule()
	st := func(name string) core.StationID {
		id, err := n.AddStation(name)
		require.NoError(t, err)
		return id
	}
	a, x, y, b := st("A"), st("X"), st("Y"), st("B")

	link := func(route string, stations []core.StationID, trips ...[]int64) {
		travel := make([]int64, len(stations)-1)
		for i := range travel {
			travel[i] = trips[0][i+1] - trips[0][i]
		}
		stops, err := n.LinkRoute(route, stations, travel)
		require.NoError(t, err)
		for _, trip := range trips {
			for i, at := range trip {
				s.AddArrival(stops[i], at)
			}
		}
	}
	link("R1", []core.StationID{a, x}, []int64{100, 200}, []int64{300, 400})
	link("R2", []core.StationID{x, y, b}, []int64{450, 500, 600}, []int64{650, 700, 800})
	link("R3", []core.StationID{a, y}, []int64{250, 420})
	require.NoError(t, n.ConnectWalk(x, y, 200))

	return n, s, a, b
}

// TestFixedPoint re-runs every phase with everything marked after convergence and
// expects no label to move.
func TestFixedPoint(t *testing.T) {
	n, sched, a, b := buildGrid(t)
	s, err := New(n, sched, Origin(a), Destination(b), ArriveBy(900))
	require.NoError(t, err)

	r := s.newRunner("")
	require.NoError(t, r.process())
	require.True(t, r.marks.Empty())
	require.Positive(t, r.solutions.Len())

	moved := 0
	r.opts.OnUpdate = func(Update) { moved++ }
	for i := 0; i < n.NumStops(); i++ {
		stop := n.Stop(core.StopID(i))
		if stop.IsRoute() {
			r.marks.MarkRoute(stop)
		} else {
			r.marks.MarkWalk(stop.ID)
		}
	}
	for i := 0; i < n.NumStations(); i++ {
		r.marks.MarkStation(core.StationID(i))
	}
	before := make([]core.Label, n.NumStops())
	for i := range before {
		before[i] = r.labels.Stop(core.StopID(i))
	}

	require.NoError(t, r.step())
	require.Zero(t, moved)
	require.True(t, r.marks.Empty())
	for i := 0; i < n.NumStops(); i++ {
		require.Equal(t, before[i], r.labels.Stop(core.StopID(i)))
	}
}

// TestSetStopRefusesIncrease guards the strict monotonicity of stop labels.
func TestSetStopRefusesIncrease(t *testing.T) {
	n, sched, a, b := buildGrid(t)
	s, err := New(n, sched, Origin(a), Destination(b), ArriveBy(900))
	require.NoError(t, err)

	r := s.newRunner("")
	require.NoError(t, r.setStop(0, 100, core.NoRef, 1))
	require.ErrorIs(t, r.setStop(0, 100, core.NoRef, 1), ErrNonMonotonic)
	require.ErrorIs(t, r.setStop(0, 150, core.NoRef, 1), ErrNonMonotonic)
	require.NoError(t, r.setStop(0, 90, core.NoRef, 1))

	require.NoError(t, r.setStation(a, 100, core.NoRef, 1))
	require.NoError(t, r.setStation(a, 100, core.StopRef(0), 1))
	require.ErrorIs(t, r.setStation(a, 101, core.NoRef, 1), ErrNonMonotonic)
}
