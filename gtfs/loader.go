package gtfs

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/reliaroute/core"
	"github.com/katalvlaran/reliaroute/timetable"
)

// LoadFile loads a GTFS zip archive from disk.
func LoadFile(name string, opts ...Option) (*Feed, error) {
	zr, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("gtfs: open %s: %w", name, err)
	}
	defer zr.Close()

	return load(&zr.Reader, opts)
}

// Load loads a GTFS zip archive of the given size.
func Load(r io.ReaderAt, size int64, opts ...Option) (*Feed, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("gtfs: read archive: %w", err)
	}

	return load(zr, opts)
}

// table is one CSV file held in memory with its header index.
type table struct {
	name string
	head map[string]int
	rows [][]string
}

func readTable(f *zip.File, required ...string) (*table, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("gtfs: open %s: %w", f.Name, err)
	}
	defer rc.Close()

	cr := csv.NewReader(rc)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rec, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadRow, f.Name, err)
	}

	t := &table{name: path.Base(f.Name), head: map[string]int{}}
	if len(rec) == 0 {
		return t, checkColumns(t, required)
	}
	for i, h := range rec[0] {
		h = strings.TrimPrefix(h, "\ufeff")
		t.head[strings.ToLower(strings.TrimSpace(h))] = i
	}
	t.rows = rec[1:]

	return t, checkColumns(t, required)
}

func checkColumns(t *table, required []string) error {
	for _, col := range required {
		if _, ok := t.head[col]; !ok {
			return fmt.Errorf("%w: %s.%s", ErrMissingColumn, t.name, col)
		}
	}
	return nil
}

// get returns the trimmed value of col in row, "" when absent.
func (t *table) get(row []string, col string) string {
	i, ok := t.head[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

type stopRow struct {
	id, name, parent string
	locType          int
	lat, lon         float64
	hasCoord         bool
}

type stopTime struct {
	seq     int
	station core.StationID
	t       int64
}

type pattern struct {
	name     string
	stations []core.StationID
	trips    [][]int64
}

// builder carries the state of one load.
type builder struct {
	opts  Options
	files map[string]*zip.File
	feed  *Feed

	stopStation map[string]core.StationID
	coords      map[core.StationID][2]float64 // lat, lon
}

func load(zr *zip.Reader, opts []Option) (*Feed, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &builder{
		opts:  o,
		files: map[string]*zip.File{},
		feed: &Feed{
			Network:      core.NewNetwork(),
			Schedule:     timetable.NewSchedule(o.Schedule...),
			DisplayNames: map[core.StationID]string{},
			RouteNames:   map[string]string{},
			TripRoutes:   map[string]string{},
		},
		stopStation: map[string]core.StationID{},
		coords:      map[core.StationID][2]float64{},
	}
	for _, f := range zr.File {
		b.files[strings.ToLower(path.Base(f.Name))] = f
	}

	steps := []func() error{b.loadStops, b.loadRoutes, b.loadTrips, b.loadStopTimes, b.loadTransfers, b.linkNearby}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	net := b.feed.Network
	o.Logger.Info("gtfs feed loaded",
		"stations", net.NumStations(),
		"stops", net.NumStops(),
		"routes", len(net.Routes()),
		"arrivals", b.feed.Schedule.Len(),
	)

	return b.feed, nil
}

func (b *builder) open(name string, required bool, cols ...string) (*table, error) {
	f, ok := b.files[name]
	if !ok {
		if required {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, name)
		}
		return nil, nil
	}
	return readTable(f, cols...)
}

func (b *builder) loadStops() error {
	t, err := b.open("stops.txt", true, "stop_id")
	if err != nil {
		return err
	}

	rows := make([]stopRow, 0, len(t.rows))
	byID := make(map[string]int, len(t.rows))
	for _, row := range t.rows {
		r := stopRow{
			id:     t.get(row, "stop_id"),
			name:   t.get(row, "stop_name"),
			parent: t.get(row, "parent_station"),
		}
		if r.id == "" {
			continue
		}
		if v := t.get(row, "location_type"); v != "" {
			if r.locType, err = strconv.Atoi(v); err != nil {
				return fmt.Errorf("%w: stops.txt location_type %q", ErrBadRow, v)
			}
		}
		lat, latErr := strconv.ParseFloat(t.get(row, "stop_lat"), 64)
		lon, lonErr := strconv.ParseFloat(t.get(row, "stop_lon"), 64)
		if latErr == nil && lonErr == nil {
			r.lat, r.lon, r.hasCoord = lat, lon, true
		}
		byID[r.id] = len(rows)
		rows = append(rows, r)
	}

	net := b.feed.Network
	for _, r := range rows {
		if r.locType > 1 {
			continue
		}
		key := r
		if r.locType == 0 && r.parent != "" {
			if i, ok := byID[r.parent]; ok {
				key = rows[i]
			}
		}
		sid, err := net.AddStation(key.id)
		if err != nil {
			return fmt.Errorf("gtfs: station %s: %w", key.id, err)
		}
		b.stopStation[r.id] = sid
		if _, named := b.feed.DisplayNames[sid]; !named || key.id == r.id {
			name := key.name
			if name == "" {
				name = r.name
			}
			b.feed.DisplayNames[sid] = name
		}
		if _, ok := b.coords[sid]; !ok {
			switch {
			case key.hasCoord:
				b.coords[sid] = [2]float64{key.lat, key.lon}
			case r.hasCoord:
				b.coords[sid] = [2]float64{r.lat, r.lon}
			}
		}
	}

	return nil
}

func (b *builder) loadRoutes() error {
	t, err := b.open("routes.txt", false, "route_id")
	if err != nil || t == nil {
		return err
	}
	for _, row := range t.rows {
		id := t.get(row, "route_id")
		name := t.get(row, "route_short_name")
		if name == "" {
			name = t.get(row, "route_long_name")
		}
		if id != "" && name != "" {
			b.feed.RouteNames[id] = name
		}
	}

	return nil
}

func (b *builder) loadTrips() error {
	t, err := b.open("trips.txt", true, "trip_id", "route_id")
	if err != nil {
		return err
	}
	for _, row := range t.rows {
		trip, route := t.get(row, "trip_id"), t.get(row, "route_id")
		if trip != "" && route != "" {
			b.feed.TripRoutes[trip] = route
		}
	}

	return nil
}

func (b *builder) loadStopTimes() error {
	t, err := b.open("stop_times.txt", true, "trip_id", "stop_id", "stop_sequence")
	if err != nil {
		return err
	}

	byTrip := map[string][]stopTime{}
	for line, row := range t.rows {
		trip := t.get(row, "trip_id")
		if _, ok := b.feed.TripRoutes[trip]; !ok {
			continue
		}
		clock := t.get(row, "arrival_time")
		if clock == "" {
			clock = t.get(row, "departure_time")
		}
		if clock == "" {
			continue
		}
		at, err := timetable.ParseClock(clock)
		if err != nil {
			return fmt.Errorf("%w: stop_times.txt line %d: %v", ErrBadRow, line+2, err)
		}
		seq, err := strconv.Atoi(t.get(row, "stop_sequence"))
		if err != nil {
			return fmt.Errorf("%w: stop_times.txt line %d: stop_sequence", ErrBadRow, line+2)
		}
		stopID := t.get(row, "stop_id")
		sid, ok := b.stopStation[stopID]
		if !ok {
			return fmt.Errorf("%w: %q at stop_times.txt line %d", ErrUnknownStop, stopID, line+2)
		}
		byTrip[trip] = append(byTrip[trip], stopTime{seq: seq, station: sid, t: at})
	}

	trips := make([]string, 0, len(byTrip))
	for trip := range byTrip {
		trips = append(trips, trip)
	}
	sort.Strings(trips)

	var (
		order    []*pattern
		patterns = map[string]*pattern{}
		perRoute = map[string]int{}
	)
	for _, trip := range trips {
		stations, times, ok := tripShape(byTrip[trip])
		if !ok {
			b.opts.Logger.Warn("gtfs trip skipped", "trip", trip)
			continue
		}
		route := b.feed.TripRoutes[trip]
		key := patternKey(route, stations)
		p, seen := patterns[key]
		if !seen {
			p = &pattern{name: timetable.PatternName(route, perRoute[route]), stations: stations}
			perRoute[route]++
			patterns[key] = p
			order = append(order, p)
		}
		p.trips = append(p.trips, times)
	}

	for _, p := range order {
		stops, err := b.feed.Network.LinkRoute(p.name, p.stations, medianHops(p.trips))
		if err != nil {
			return fmt.Errorf("gtfs: route %s: %w", p.name, err)
		}
		for _, times := range p.trips {
			for i, at := range times {
				b.feed.Schedule.AddArrival(stops[i], at)
			}
		}
	}

	return nil
}

// tripShape orders a trip's stop times and collapses consecutive visits of the
// same station. It reports false for trips that cannot form a route.
func tripShape(sts []stopTime) ([]core.StationID, []int64, bool) {
	sort.SliceStable(sts, func(i, j int) bool { return sts[i].seq < sts[j].seq })

	stations := make([]core.StationID, 0, len(sts))
	times := make([]int64, 0, len(sts))
	for _, st := range sts {
		if n := len(stations); n > 0 {
			if st.t < times[n-1] {
				return nil, nil, false
			}
			if stations[n-1] == st.station {
				continue
			}
		}
		stations = append(stations, st.station)
		times = append(times, st.t)
	}

	return stations, times, len(stations) >= 2
}

func patternKey(route string, stations []core.StationID) string {
	var sb strings.Builder
	sb.WriteString(route)
	for _, s := range stations {
		sb.WriteByte('|')
		sb.WriteString(strconv.Itoa(int(s)))
	}
	return sb.String()
}

// medianHops returns the median travel time of every hop, at least one second.
func medianHops(trips [][]int64) []int64 {
	hops := make([]int64, len(trips[0])-1)
	sample := make([]int64, len(trips))
	for h := range hops {
		for i, times := range trips {
			sample[i] = times[h+1] - times[h]
		}
		sort.Slice(sample, func(i, j int) bool { return sample[i] < sample[j] })
		hops[h] = max(sample[len(sample)/2], 1)
	}

	return hops
}

func (b *builder) loadTransfers() error {
	t, err := b.open("transfers.txt", false, "from_stop_id", "to_stop_id")
	if err != nil || t == nil {
		return err
	}

	for line, row := range t.rows {
		if t.get(row, "transfer_type") == "3" {
			continue
		}
		from, okFrom := b.stopStation[t.get(row, "from_stop_id")]
		to, okTo := b.stopStation[t.get(row, "to_stop_id")]
		if !okFrom || !okTo || from == to {
			continue
		}

		var d int64
		if v := t.get(row, "min_transfer_time"); v != "" {
			if d, err = strconv.ParseInt(v, 10, 64); err != nil {
				return fmt.Errorf("%w: transfers.txt line %d: min_transfer_time", ErrBadRow, line+2)
			}
		}
		if d <= 0 {
			a, okA := b.coords[from]
			c, okC := b.coords[to]
			if !okA || !okC {
				continue
			}
			d = b.walkSeconds(haversine(a, c))
		}
		if err := b.feed.Network.ConnectWalk(from, to, d); err != nil {
			return fmt.Errorf("gtfs: transfer: %w", err)
		}
	}

	return nil
}

// linkNearby connects every pair of stations within MaxWalkMeters.
func (b *builder) linkNearby() error {
	if b.opts.MaxWalkMeters <= 0 {
		return nil
	}

	ids := make([]core.StationID, 0, len(b.coords))
	for id := range b.coords {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		li, lj := b.coords[ids[i]][0], b.coords[ids[j]][0]
		if li != lj {
			return li < lj
		}
		return ids[i] < ids[j]
	})

	window := latitudeSpan(b.opts.MaxWalkMeters)
	links := 0
	for i, a := range ids {
		pa := b.coords[a]
		for _, c := range ids[i+1:] {
			pc := b.coords[c]
			if pc[0]-pa[0] > window {
				break
			}
			d := haversine(pa, pc)
			if d > b.opts.MaxWalkMeters {
				continue
			}
			if err := b.feed.Network.ConnectWalk(a, c, b.walkSeconds(d)); err != nil {
				return fmt.Errorf("gtfs: walk: %w", err)
			}
			links++
		}
	}
	b.opts.Logger.Debug("gtfs walking links", "pairs", links, "radius_m", b.opts.MaxWalkMeters)

	return nil
}

func (b *builder) walkSeconds(meters float64) int64 {
	return walkSeconds(meters, b.opts.WalkSpeed)
}
