package gtfs_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/reliaroute/core"
	"github.com/katalvlaran/reliaroute/gtfs"
	"github.com/katalvlaran/reliaroute/search"
	"github.com/katalvlaran/reliaroute/timetable"
)

// sampleFeed is a small feed with a parent station (P), two patterns of route R1,
// one trip of R2 departing from the parent's second platform, and a walking
// transfer from B to D.
var sampleFeed = map[string]string{
	"stops.txt": `stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station
P,Central,40.0100,-105.0000,1,
P1,Central platform 1,40.0100,-105.0000,0,P
P2,Central platform 2,40.0100,-105.0000,0,P
A,Airport,40.0000,-105.0000,0,
B,Bay,40.0200,-105.0000,0,
C,Cove,40.0220,-105.0000,0,
D,Dock,40.1000,-105.0000,0,
E,Central entrance,40.0101,-105.0000,2,P
`,
	"routes.txt": `route_id,route_short_name,route_long_name,route_type
R1,1,Airport Line,3
R2,,Harbour Line,3
`,
	"trips.txt": `route_id,service_id,trip_id
R1,wk,t1
R1,wk,t2
R1,wk,t3
R2,wk,t4
R2,wk,t5
`,
	"stop_times.txt": `trip_id,arrival_time,departure_time,stop_id,stop_sequence
t1,08:00:00,08:00:00,A,1
t1,08:10:00,08:10:00,P1,2
t1,08:20:00,08:20:00,B,3
t2,09:00:00,09:00:00,A,1
t2,09:12:00,09:12:00,P1,2
t2,09:20:00,09:20:00,B,3
t3,10:05:00,10:05:00,P1,2
t3,10:00:00,10:00:00,A,1
t4,08:30:00,08:30:00,P2,1
t4,08:50:00,08:50:00,D,2
t5,09:30:00,09:30:00,P2,1
t5,,,D,2
`,
	"transfers.txt": `from_stop_id,to_stop_id,transfer_type,min_transfer_time
B,D,2,3000
A,D,3,
`,
}

func zipFeed(t *testing.T, files map[string]string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return bytes.NewReader(buf.Bytes())
}

func load(t *testing.T, files map[string]string, opts ...gtfs.Option) *gtfs.Feed {
	t.Helper()
	r := zipFeed(t, files)
	feed, err := gtfs.Load(r, r.Size(), opts...)
	require.NoError(t, err)
	return feed
}

func clock(t *testing.T, s string) int64 {
	t.Helper()
	v, err := timetable.ParseClock(s)
	require.NoError(t, err)
	return v
}

func TestLoad_Stations(t *testing.T) {
	feed := load(t, sampleFeed)
	net := feed.Network

	assert.Equal(t, 5, net.NumStations(), "platforms join their parent, entrances are dropped")
	assert.Equal(t, []string{"A", "B", "C", "D", "P"}, net.StationNames())

	p, err := feed.Resolve("P")
	require.NoError(t, err)
	byName, err := feed.Resolve("central")
	require.NoError(t, err)
	assert.Equal(t, p, byName)
	assert.Equal(t, "Central", feed.DisplayName(p))

	_, err = feed.Resolve("Nowhere")
	assert.ErrorIs(t, err, gtfs.ErrStationNotFound)
}

func TestLoad_Patterns(t *testing.T) {
	feed := load(t, sampleFeed)
	net := feed.Network

	assert.Equal(t, []string{"R1", "R1#1", "R2"}, net.Routes())

	ids, err := net.RouteStops("R1")
	require.NoError(t, err)
	require.Len(t, ids, 3)
	travel := []int64{net.Stop(ids[0]).TravelTime, net.Stop(ids[1]).TravelTime, net.Stop(ids[2]).TravelTime}
	assert.Equal(t, []int64{0, 720, 600}, travel, "median hop times")

	assert.Equal(t, []int64{clock(t, "08:00:00"), clock(t, "09:00:00")}, feed.Schedule.Arrivals(stopOf(t, net, "R1", 0)))
	assert.Equal(t, []int64{clock(t, "10:05:00")}, feed.Schedule.Arrivals(stopOf(t, net, "R1#1", 1)))
	assert.Equal(t, []int64{clock(t, "08:30:00")}, feed.Schedule.Arrivals(stopOf(t, net, "R2", 0)),
		"t5 has one timed stop and is skipped")

	assert.Equal(t, "R2", feed.TripRoutes["t4"])
	assert.Equal(t, "1", feed.RouteName("R1#1"))
	assert.Equal(t, "Harbour Line", feed.RouteName("R2"))
}

// stopOf returns the stop at position seq of route.
func stopOf(t *testing.T, net *core.Network, route string, seq int) core.StopID {
	t.Helper()
	ids, err := net.RouteStops(route)
	require.NoError(t, err)
	require.Greater(t, len(ids), seq)

	return ids[seq]
}

// loopFeed runs one circular trip Dock → Airport → Dock.
var loopFeed = map[string]string{
	"stops.txt": `stop_id,stop_name,stop_lat,stop_lon
D,Dock,40.1000,-105.0000
A,Airport,40.0000,-105.0000
`,
	"trips.txt": `route_id,service_id,trip_id
R3,wk,t6
`,
	"stop_times.txt": `trip_id,arrival_time,departure_time,stop_id,stop_sequence
t6,07:00:00,07:00:00,D,1
t6,07:30:00,07:30:00,A,2
t6,08:00:00,08:00:00,D,3
`,
}

func TestLoad_LoopTrip(t *testing.T) {
	feed := load(t, loopFeed)
	net := feed.Network

	ids, err := net.RouteStops("R3")
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Equal(t, net.Stop(ids[0]).Station, net.Stop(ids[2]).Station)
	assert.Equal(t, []int64{clock(t, "07:00:00")}, feed.Schedule.Arrivals(ids[0]))
	assert.Equal(t, []int64{clock(t, "08:00:00")}, feed.Schedule.Arrivals(ids[2]))

	a, _ := feed.Resolve("A")
	d, _ := feed.Resolve("D")
	plan := func(arriveBy string) []search.Path {
		paths, err := search.Run(net, feed.Schedule,
			search.Origin(a), search.Destination(d), search.ArriveBy(clock(t, arriveBy)))
		require.NoError(t, err)
		return paths
	}
	assert.Empty(t, plan("07:45:00"), "the loop reaches Dock again only at 08:00")

	paths := plan("08:15:00")
	require.Len(t, paths, 1)
	assert.Equal(t, "07:30:00", timetable.FormatClock(paths[0].Departure))
	assert.Equal(t, "08:00:00", timetable.FormatClock(paths[0].Arrival))
}

func TestLoad_Walking(t *testing.T) {
	feed := load(t, sampleFeed)
	net := feed.Network
	b, _ := feed.Resolve("B")
	c, _ := feed.Resolve("C")
	d, _ := feed.Resolve("D")

	wb, ok := net.WalkingStopOf(b)
	require.True(t, ok)
	wc, _ := net.WalkingStopOf(c)
	wd, _ := net.WalkingStopOf(d)

	got := map[core.StopID]int64{}
	for _, w := range net.Stop(wb).Neighbors {
		got[w.To] = w.Duration
	}
	assert.Equal(t, int64(3000), got[wd], "min_transfer_time")
	// 0.002° of latitude is about 222 m, 186 s at 1.2 m/s.
	assert.InDelta(t, 186, got[wc], 2)

	a, _ := feed.Resolve("A")
	_, ok = net.WalkingStopOf(a)
	assert.False(t, ok, "transfer_type 3 and distant stations get no walk")

	feed = load(t, sampleFeed, gtfs.WithMaxWalkMeters(0))
	c, _ = feed.Resolve("C")
	_, ok = feed.Network.WalkingStopOf(c)
	assert.False(t, ok)
}

func TestLoad_PlanEndToEnd(t *testing.T) {
	feed := load(t, sampleFeed)
	a, _ := feed.Resolve("Airport")
	d, _ := feed.Resolve("Dock")

	paths, err := search.Run(feed.Network, feed.Schedule,
		search.Origin(a), search.Destination(d),
		search.ArriveBy(clock(t, "09:00:00")),
		search.WithThreshold(0.9),
	)
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	best := paths[0]
	assert.Equal(t, []string{"R1", "R2"}, best.Routes)
	assert.Equal(t, "08:00:00", timetable.FormatClock(best.Departure))
	assert.Equal(t, "08:50:00", timetable.FormatClock(best.Arrival))
}

func TestLoad_Errors(t *testing.T) {
	without := func(name string) map[string]string {
		out := map[string]string{}
		for k, v := range sampleFeed {
			if k != name {
				out[k] = v
			}
		}
		return out
	}
	with := func(name, body string) map[string]string {
		out := without(name)
		out[name] = body
		return out
	}

	cases := []struct {
		name  string
		files map[string]string
		want  error
	}{
		{"no stops", without("stops.txt"), gtfs.ErrMissingFile},
		{"no stop_times", without("stop_times.txt"), gtfs.ErrMissingFile},
		{"no trip column", with("trips.txt", "route_id,service_id\nR1,wk\n"), gtfs.ErrMissingColumn},
		{"bad clock", with("stop_times.txt", "trip_id,arrival_time,stop_id,stop_sequence\nt1,8h,A,1\n"), gtfs.ErrBadRow},
		{"unknown stop", with("stop_times.txt", "trip_id,arrival_time,stop_id,stop_sequence\nt1,08:00:00,Z,1\n"), gtfs.ErrUnknownStop},
		{"bad location type", with("stops.txt", "stop_id,location_type\nA,x\n"), gtfs.ErrBadRow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := zipFeed(t, tc.files)
			_, err := gtfs.Load(r, r.Size())
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := gtfs.Load(strings.NewReader("not a zip"), 9)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	r := zipFeed(t, sampleFeed)
	buf := make([]byte, r.Size())
	_, err := r.ReadAt(buf, 0)
	require.NoError(t, err)

	name := filepath.Join(t.TempDir(), "feed.zip")
	require.NoError(t, os.WriteFile(name, buf, 0o600))

	feed, err := gtfs.LoadFile(name)
	require.NoError(t, err)
	assert.Equal(t, 5, feed.Network.NumStations())

	_, err = gtfs.LoadFile(filepath.Join(t.TempDir(), "missing.zip"))
	assert.Error(t, err)
}
