// Package gtfs loads a GTFS static feed into a reversed transit network and the
// schedule oracle that the search runs on.
//
// Mapping:
//
//	stops.txt       → stations: a platform joins its parent_station, a stop without
//	                  parent is its own station; entrances, generic nodes and
//	                  boarding areas (location_type 2-4) are ignored.
//	trips.txt       → trip_id → route_id (Feed.TripRoutes, also used by delays).
//	stop_times.txt  → one core route per distinct stop pattern of a GTFS route,
//	                  named route_id, route_id#1, route_id#2 ... in first-seen order;
//	                  hop times are the median over the pattern's trips; every trip's
//	                  arrival at every stop is added to the Schedule.
//	transfers.txt   → walking transfers (optional; min_transfer_time, or coordinates).
//	routes.txt      → route_short_name for display (optional).
//
// Stations within MaxWalkMeters of each other are linked on foot at WalkSpeed.
// Walking transfers are symmetric.
//
// Stop times without arrival_time and departure_time are left out of the pattern.
// Trips with fewer than two timed stations, or with times running backwards, are
// skipped and logged.
package gtfs

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/katalvlaran/reliaroute/core"
	"github.com/katalvlaran/reliaroute/timetable"
)

// Sentinel errors.
var (
	// ErrMissingFile is returned when a required feed file is absent.
	ErrMissingFile = errors.New("gtfs: required file missing")

	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("gtfs: required column missing")

	// ErrBadRow is returned for values that cannot be parsed.
	ErrBadRow = errors.New("gtfs: malformed row")

	// ErrUnknownStop is returned when stop_times.txt references an unknown stop_id.
	ErrUnknownStop = errors.New("gtfs: unknown stop")

	// ErrStationNotFound is returned by Resolve when nothing matches.
	ErrStationNotFound = errors.New("gtfs: station not found")

	// ErrAmbiguousStation is returned by Resolve when a name matches several stations.
	ErrAmbiguousStation = errors.New("gtfs: ambiguous station name")
)

const (
	// DefaultMaxWalkMeters links stations up to this distance on foot.
	DefaultMaxWalkMeters = 400.0

	// DefaultWalkSpeed is the walking speed in meters per second.
	DefaultWalkSpeed = 1.2
)

// Options tunes the loader.
type Options struct {
	// MaxWalkMeters bounds coordinate-derived walks; 0 disables them.
	MaxWalkMeters float64

	// WalkSpeed in m/s converts distances into walking seconds.
	WalkSpeed float64

	// Schedule options, e.g. timetable.WithDelayModel.
	Schedule []timetable.Option

	Logger *slog.Logger
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the loader defaults.
func DefaultOptions() Options {
	return Options{
		MaxWalkMeters: DefaultMaxWalkMeters,
		WalkSpeed:     DefaultWalkSpeed,
		Logger:        slog.New(slog.DiscardHandler),
	}
}

// WithMaxWalkMeters sets the walking radius; 0 disables coordinate walks.
func WithMaxWalkMeters(m float64) Option {
	return func(o *Options) {
		if m >= 0 {
			o.MaxWalkMeters = m
		}
	}
}

// WithWalkSpeed sets the walking speed (m/s); non-positive values are ignored.
func WithWalkSpeed(mps float64) Option {
	return func(o *Options) {
		if mps > 0 {
			o.WalkSpeed = mps
		}
	}
}

// WithScheduleOptions forwards options to timetable.NewSchedule.
func WithScheduleOptions(opts ...timetable.Option) Option {
	return func(o *Options) { o.Schedule = append(o.Schedule, opts...) }
}

// WithLogger sets the loader's logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Feed is a loaded GTFS feed.
//
// Network station names are GTFS station stop_ids; DisplayNames holds stop_name.
type Feed struct {
	Network  *core.Network
	Schedule *timetable.Schedule

	DisplayNames map[core.StationID]string
	RouteNames   map[string]string // route_id → route_short_name
	TripRoutes   map[string]string // trip_id → route_id
}

// DisplayName returns the stop_name of a station, or its stop_id when unnamed.
func (f *Feed) DisplayName(id core.StationID) string {
	if name := f.DisplayNames[id]; name != "" {
		return name
	}
	return f.Network.Station(id).Name
}

// RouteName returns the short name of a core route (pattern suffix stripped),
// or the route_id itself.
func (f *Feed) RouteName(route string) string {
	base := timetable.BaseRoute(route)
	if name := f.RouteNames[base]; name != "" {
		return name
	}
	return base
}

// Resolve finds a station by exact stop_id, then by case-insensitive stop_name.
func (f *Feed) Resolve(query string) (core.StationID, error) {
	if id, ok := f.Network.StationByName(query); ok {
		return id, nil
	}
	found := core.NoStation
	for id := core.StationID(0); int(id) < f.Network.NumStations(); id++ {
		if !strings.EqualFold(f.DisplayNames[id], query) {
			continue
		}
		if found != core.NoStation {
			return core.NoStation, fmt.Errorf("%w: %q", ErrAmbiguousStation, query)
		}
		found = id
	}
	if found == core.NoStation {
		return core.NoStation, fmt.Errorf("%w: %q", ErrStationNotFound, query)
	}

	return found, nil
}
