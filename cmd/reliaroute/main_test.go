package main

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

var feedFiles = map[string]string{
	"stops.txt": `stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station
P,Central,40.0100,-105.0000,1,
P1,Central platform 1,40.0100,-105.0000,0,P
P2,Central platform 2,40.0100,-105.0000,0,P
A,Airport,40.0000,-105.0000,0,
D,Dock,40.1000,-105.0000,0,
`,
	"routes.txt": `route_id,route_short_name
R1,1
R2,2
`,
	"trips.txt": `route_id,service_id,trip_id
R1,wk,t1
R2,wk,t2
`,
	"stop_times.txt": `trip_id,arrival_time,departure_time,stop_id,stop_sequence
t1,08:00:00,08:00:00,A,1
t1,08:10:00,08:10:00,P1,2
t2,08:30:00,08:30:00,P2,1
t2,08:50:00,08:50:00,D,2
`,
}

func writeFeed(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range feedFiles {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	name := filepath.Join(dir, "gtfs.zip")
	require.NoError(t, os.WriteFile(name, buf.Bytes(), 0o600))
	return name
}

// writeRealtime stores a TripUpdates feed where R1 runs 5 to 25 minutes late.
func writeRealtime(t *testing.T, dir string) string {
	t.Helper()
	var updates []*gtfsrt.TripUpdate_StopTimeUpdate
	for _, d := range []int32{300, 600, 900, 1500} {
		updates = append(updates, &gtfsrt.TripUpdate_StopTimeUpdate{
			StopId:  proto.String("P1"),
			Arrival: &gtfsrt.TripUpdate_StopTimeEvent{Delay: proto.Int32(d)},
		})
	}
	fm := &gtfsrt.FeedMessage{
		Header: &gtfsrt.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: []*gtfsrt.FeedEntity{{
			Id: proto.String("1"),
			TripUpdate: &gtfsrt.TripUpdate{
				Trip:           &gtfsrt.TripDescriptor{TripId: proto.String("t1")},
				StopTimeUpdate: updates,
			},
		}},
	}
	b, err := proto.Marshal(fm)
	require.NoError(t, err)

	name := filepath.Join(dir, "tu.pb")
	require.NoError(t, os.WriteFile(name, b, 0o600))
	return name
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPlan(t *testing.T) {
	feed := writeFeed(t, t.TempDir())

	out, err := execute(t, "plan", "--feed", feed, "--from", "Airport", "--to", "D", "--arrive-by", "09:00:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Airport")
	assert.Contains(t, out, "Central")
	assert.Contains(t, out, "Dock")
	assert.Contains(t, out, "08:00:00")
	assert.Contains(t, out, "08:50:00")
	assert.Contains(t, out, "1 transfers")
	assert.NotContains(t, out, "p90 delay", "no realtime feed, no delay column")
}

func TestPlan_RealtimeDelaysBlockTransfer(t *testing.T) {
	dir := t.TempDir()
	feed := writeFeed(t, dir)
	rt := writeRealtime(t, dir)

	// R1 reaches Central at 08:10 and R2 leaves at 08:30: three of the four
	// observed delays fit into the 18 minutes of slack. R2 has no observations of
	// its own and uses the same samples, all within its 40 minutes to the deadline.
	out, err := execute(t, "plan", "--feed", feed, "--rt", rt,
		"--from", "A", "--to", "D", "--arrive-by", "09:30:00", "--threshold", "0.9")
	require.NoError(t, err)
	assert.Contains(t, out, "No itinerary")
	assert.Contains(t, out, "without waiting takes 00:30:00")
	assert.Contains(t, out, "fewest boardings needed is 1")

	out, err = execute(t, "plan", "--feed", feed, "--rt", rt,
		"--from", "A", "--to", "D", "--arrive-by", "09:30:00", "--threshold", "0.7")
	require.NoError(t, err)
	assert.Contains(t, out, "08:50:00")
	// Every ride shows the 90th percentile of 5, 10, 15 and 25 minutes.
	assert.Contains(t, out, "p90 delay")
	assert.Contains(t, out, "00:25:00")
}

func TestPlan_Disconnected(t *testing.T) {
	feed := writeFeed(t, t.TempDir())

	out, err := execute(t, "plan", "--feed", feed, "--from", "D", "--to", "A", "--arrive-by", "23:00:00")
	require.NoError(t, err)
	assert.Contains(t, out, "not connected")
}

func TestPlan_Errors(t *testing.T) {
	feed := writeFeed(t, t.TempDir())

	_, err := execute(t, "plan", "--from", "A", "--to", "D", "--arrive-by", "09:00:00")
	assert.ErrorContains(t, err, "no GTFS feed")

	_, err = execute(t, "plan", "--feed", feed, "--from", "Nowhere", "--to", "D", "--arrive-by", "09:00:00")
	assert.ErrorContains(t, err, "--from")

	_, err = execute(t, "plan", "--feed", feed, "--from", "A", "--to", "D", "--arrive-by", "9am")
	assert.ErrorContains(t, err, "--arrive-by")

	_, err = execute(t, "plan", "--feed", feed, "--from", "A", "--to", "D")
	assert.Error(t, err, "arrive-by is required")
}

func TestStations(t *testing.T) {
	feed := writeFeed(t, t.TempDir())

	out, err := execute(t, "stations", "--feed", feed)
	require.NoError(t, err)
	assert.Contains(t, out, "Airport")
	assert.Contains(t, out, "Central")
	assert.NotContains(t, out, "platform")

	out, err = execute(t, "stations", "dock", "--feed", feed)
	require.NoError(t, err)
	assert.Contains(t, out, "Dock")
	assert.NotContains(t, out, "Airport")
}
