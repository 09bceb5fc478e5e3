// SPDX-License-Identifier: MIT
// Package: reliaroute/builder
//
// api.go - Fixture, Build and the helpers shared by the constructors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/reliaroute/core"
	"github.com/katalvlaran/reliaroute/timetable"
)

// Fixture is a network together with the schedule of its routes.
type Fixture struct {
	Network  *core.Network
	Schedule *timetable.Schedule

	routes int // routes linked so far; seeds the deterministic offsets
}

// Station returns the handle of the named station, or core.NoStation.
func (f *Fixture) Station(name string) core.StationID {
	if id, ok := f.Network.StationByName(name); ok {
		return id
	}

	return core.NoStation
}

// Arrivals returns the scheduled times of route at its seq-th stop, or nil.
func (f *Fixture) Arrivals(route string, seq int) []int64 {
	stops, err := f.Network.RouteStops(route)
	if err != nil || seq < 0 || seq >= len(stops) {
		return nil
	}

	return f.Schedule.Arrivals(stops[seq])
}

// Constructor mutates a fixture using the resolved builder configuration.
// Constructors validate their parameters and return sentinel errors; they
// never panic.
type Constructor func(f *Fixture, cfg builderConfig) error

// Build creates an empty fixture, resolves bopts and applies cons in order.
// The first constructor error is returned wrapped as "Build: %w".
func Build(bopts []BuilderOption, cons ...Constructor) (*Fixture, error) {
	cfg := newBuilderConfig(bopts...)
	f := &Fixture{
		Network:  core.NewNetwork(),
		Schedule: timetable.NewSchedule(timetable.WithDelayModel(cfg.model)),
	}

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(f, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	return f, nil
}

// station returns the named station, adding it on first use.
func (f *Fixture) station(name string) (core.StationID, error) {
	if id, ok := f.Network.StationByName(name); ok {
		return id, nil
	}
	id, err := f.Network.AddStation(name)
	if err != nil {
		return core.NoStation, fmt.Errorf("%w: %w", ErrConstructFailed, err)
	}

	return id, nil
}

// route links route over ids with the given hop times and records one trip
// per headway inside the service window.
func (f *Fixture) route(cfg builderConfig, route string, ids []core.StationID, travel []int64) error {
	stops, err := f.Network.LinkRoute(route, ids, travel)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConstructFailed, err)
	}
	start := cfg.first + cfg.offset(f.routes)
	f.routes++

	for dep := start; dep <= cfg.last; dep += cfg.headway {
		at := dep
		for i, sid := range stops {
			f.Schedule.AddArrival(sid, at)
			if i < len(travel) {
				at += travel[i]
			}
		}
	}

	return nil
}
