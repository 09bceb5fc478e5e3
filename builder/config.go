// SPDX-License-Identifier: MIT
// Package: reliaroute/builder
//
// config.go - resolved builder knobs and their deterministic defaults.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/reliaroute/timetable"
)

// builderConfig is passed by value to constructors.
type builderConfig struct {
	rng *rand.Rand // nil means no randomness

	hop    int64 // base seconds between consecutive stations
	jitter int64 // max extra seconds drawn per hop (needs rng)
	walk   int64 // walking link seconds

	first   int64 // first departure, seconds since midnight
	last    int64 // no departure after this
	headway int64 // seconds between trips of one route

	model timetable.DelayModel
}

const (
	defaultHop     = int64(120)
	defaultWalk    = int64(180)
	defaultFirst   = int64(6 * 3600)
	defaultLast    = int64(10 * 3600)
	defaultHeadway = int64(600)
	lineSkew       = int64(7)  // extra hop seconds per corridor line
	offsetStep     = int64(60) // deterministic trip offset per route
)

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		hop:     defaultHop,
		walk:    defaultWalk,
		first:   defaultFirst,
		last:    defaultLast,
		headway: defaultHeadway,
		model:   timetable.Punctual{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// hops returns n hop durations of base seconds plus the drawn jitter.
func (c builderConfig) hops(n int, base int64) []int64 {
	travel := make([]int64, n)
	for i := range travel {
		travel[i] = base
		if c.rng != nil && c.jitter > 0 {
			travel[i] += c.rng.Int63n(c.jitter + 1)
		}
	}

	return travel
}

// offset shifts the first trip of the k-th route within one headway.
func (c builderConfig) offset(k int) int64 {
	if c.rng != nil {
		return c.rng.Int63n(c.headway)
	}

	return (int64(k) * offsetStep) % c.headway
}
