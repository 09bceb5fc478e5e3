package delays_test

import (
	"testing"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/katalvlaran/reliaroute/delays"
	"github.com/katalvlaran/reliaroute/timetable"
)

type stu struct {
	rel       gtfsrt.TripUpdate_StopTimeUpdate_ScheduleRelationship
	arrival   *int32
	departure *int32
}

func tripUpdate(id, tripID, routeID string, canceled bool, updates ...stu) *gtfsrt.FeedEntity {
	rel := gtfsrt.TripDescriptor_SCHEDULED
	if canceled {
		rel = gtfsrt.TripDescriptor_CANCELED
	}
	trip := &gtfsrt.TripDescriptor{
		TripId:               proto.String(tripID),
		ScheduleRelationship: &rel,
	}
	if routeID != "" {
		trip.RouteId = proto.String(routeID)
	}

	out := make([]*gtfsrt.TripUpdate_StopTimeUpdate, 0, len(updates))
	for i, u := range updates {
		r := u.rel
		su := &gtfsrt.TripUpdate_StopTimeUpdate{
			ScheduleRelationship: &r,
			StopSequence:         proto.Uint32(uint32(i + 1)),
			StopId:               proto.String("s"),
		}
		if u.arrival != nil {
			su.Arrival = &gtfsrt.TripUpdate_StopTimeEvent{Delay: u.arrival}
		}
		if u.departure != nil {
			su.Departure = &gtfsrt.TripUpdate_StopTimeEvent{Delay: u.departure}
		}
		out = append(out, su)
	}

	return &gtfsrt.FeedEntity{
		Id: proto.String(id),
		TripUpdate: &gtfsrt.TripUpdate{
			Trip:           trip,
			StopTimeUpdate: out,
		},
	}
}

func feed(entities ...*gtfsrt.FeedEntity) *gtfsrt.FeedMessage {
	return &gtfsrt.FeedMessage{
		Header: &gtfsrt.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Incrementality:      gtfsrt.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(1700000000),
		},
		Entity: entities,
	}
}

func arr(d int32) stu {
	return stu{rel: gtfsrt.TripUpdate_StopTimeUpdate_SCHEDULED, arrival: proto.Int32(d)}
}

func TestObserve_Filters(t *testing.T) {
	r := delays.NewRecorder(delays.WithTripRoutes(map[string]string{"t2": "B"}))
	fm := feed(
		tripUpdate("1", "t1", "A", false,
			arr(30),
			stu{rel: gtfsrt.TripUpdate_StopTimeUpdate_SCHEDULED, departure: proto.Int32(45)},
			stu{rel: gtfsrt.TripUpdate_StopTimeUpdate_SKIPPED, arrival: proto.Int32(999)},
			stu{rel: gtfsrt.TripUpdate_StopTimeUpdate_NO_DATA},
			stu{rel: gtfsrt.TripUpdate_StopTimeUpdate_SCHEDULED},
		),
		tripUpdate("2", "t2", "", false, arr(60)),
		tripUpdate("3", "t3", "", false, arr(60)),
		tripUpdate("4", "t4", "A", true, arr(600)),
	)

	assert.Equal(t, 3, r.Observe(fm))
	assert.Equal(t, 2, r.Samples("A"))
	assert.Equal(t, 1, r.Samples("B"))
	assert.Equal(t, 3, r.Samples(""))
	assert.Equal(t, []string{"A", "B"}, r.Routes())
	assert.Equal(t, 0, r.Observe(nil))
}

func TestObserveBytes(t *testing.T) {
	b, err := proto.Marshal(feed(tripUpdate("1", "t1", "A", false, arr(10), arr(20))))
	require.NoError(t, err)

	r := delays.NewRecorder()
	n, err := r.ObserveBytes(b)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = r.ObserveBytes([]byte{0xff, 0xff, 0xff})
	assert.ErrorIs(t, err, delays.ErrDecode)
}

func TestModel_EmpiricalCDF(t *testing.T) {
	r := delays.NewRecorder(delays.WithMinSamples(4))
	r.Observe(feed(
		tripUpdate("1", "t1", "A", false, arr(-30), arr(0), arr(60), arr(120)),
		tripUpdate("2", "t2", "B", false, arr(300)),
	))
	m := r.Model()

	assert.InDelta(t, 0.5, m.OnTime("A", 0), 1e-9)
	assert.InDelta(t, 0.75, m.OnTime("A", 60), 1e-9)
	assert.InDelta(t, 1.0, m.OnTime("A", 120), 1e-9)
	assert.InDelta(t, 0.75, m.OnTime("A"+timetable.PatternSeparator+"2", 60), 1e-9, "pattern suffix is stripped")
	assert.Equal(t, 0.0, m.OnTime("A", -1))

	// B has a single sample, below the minimum: the global five are used.
	assert.InDelta(t, 0.8, m.OnTime("B", 120), 1e-9)
	assert.InDelta(t, 0.8, m.OnTime("unknown", 120), 1e-9)

	assert.Equal(t, int64(-30), m.Percentile("A", 0))
	assert.Equal(t, int64(0), m.Percentile("A", 0.5))
	assert.Equal(t, int64(120), m.Percentile("A", 1))
}

func TestModel_EmptyIsPunctual(t *testing.T) {
	m := delays.NewRecorder().Model()
	assert.Equal(t, 1.0, m.OnTime("A", 0))
	assert.Equal(t, 0.0, m.OnTime("A", -5))
	assert.Equal(t, int64(0), m.Percentile("A", 0.9))
}

func TestModel_IsSnapshot(t *testing.T) {
	r := delays.NewRecorder(delays.WithMinSamples(1))
	r.Observe(feed(tripUpdate("1", "t1", "A", false, arr(0))))
	m := r.Model()
	r.Observe(feed(tripUpdate("2", "t2", "A", false, arr(500))))

	assert.Equal(t, 1.0, m.OnTime("A", 0))
	assert.InDelta(t, 0.5, r.Model().OnTime("A", 0), 1e-9)
}

func TestModel_DrivesSchedule(t *testing.T) {
	r := delays.NewRecorder(delays.WithMinSamples(1))
	r.Observe(feed(tripUpdate("1", "t1", "R", false, arr(0), arr(0), arr(90), arr(200))))

	s := timetable.NewSchedule(timetable.WithDelayModel(r.Model()))
	assert.InDelta(t, 0.75, s.DelayModel().OnTime("R", 100), 1e-9)
}
