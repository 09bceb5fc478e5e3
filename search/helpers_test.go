package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/reliaroute/core"
	"github.com/katalvlaran/reliaroute/timetable"
)

// fixture wires a network and a schedule together by station name.
type fixture struct {
	net   *core.Network
	sched *timetable.Schedule
	ids   map[string]core.StationID
}

func newFixture(t testing.TB, opts ...timetable.Option) *fixture {
	t.Helper()
	return &fixture{
		net:   core.NewNetwork(),
		sched: timetable.NewSchedule(opts...),
		ids:   make(map[string]core.StationID),
	}
}

// id returns the station handle, creating the station on first use.
func (f *fixture) id(t testing.TB, name string) core.StationID {
	t.Helper()
	if id, ok := f.ids[name]; ok {
		return id
	}
	id, err := f.net.AddStation(name)
	require.NoError(t, err)
	f.ids[name] = id

	return id
}

// line links route over stations using the hop times of the first trip, then
// records every trip. Each trip lists one real-world time per station.
func (f *fixture) line(t testing.TB, route string, stations []string, trips ...[]int64) []core.StopID {
	t.Helper()
	require.NotEmpty(t, trips)
	ids := make([]core.StationID, len(stations))
	for i, name := range stations {
		ids[i] = f.id(t, name)
	}
	travel := make([]int64, len(stations)-1)
	for i := range travel {
		travel[i] = trips[0][i+1] - trips[0][i]
	}
	stops, err := f.net.LinkRoute(route, ids, travel)
	require.NoError(t, err)
	for _, trip := range trips {
		require.Len(t, trip, len(stations))
		for i, at := range trip {
			f.sched.AddArrival(stops[i], at)
		}
	}

	return stops
}

func (f *fixture) walk(t testing.TB, a, b string, d int64) {
	t.Helper()
	require.NoError(t, f.net.ConnectWalk(f.id(t, a), f.id(t, b), d))
}

// stepModel is a DelayModel that is certain once slack reaches min and hopeless before.
type stepModel struct{ min int64 }

func (m stepModel) OnTime(_ string, slack int64) float64 {
	if slack >= m.min {
		return 1
	}
	return 0
}

// unsafeOracle reports every transfer as unsafe.
type unsafeOracle struct{ *timetable.Schedule }

func (unsafeOracle) AssertSafeTransfer(*core.Stop, int, int64, float64, float64) (float64, bool) {
	return 0, false
}

// city is a small network with transfers, parallel routes and walking links.
func city(t testing.TB) *fixture {
	t.Helper()
	f := newFixture(t)
	f.line(t, "R1", []string{"A", "X", "B"},
		[]int64{500, 560, 640},
		[]int64{600, 660, 740})
	f.line(t, "R2", []string{"A", "C", "D", "B"},
		[]int64{520, 580, 640, 700})
	f.line(t, "R3", []string{"X", "D"},
		[]int64{570, 610},
		[]int64{670, 710})
	f.walk(t, "C", "X", 120)
	f.walk(t, "D", "B", 300)

	return f
}
