// SPDX-License-Identifier: MIT
// Package: reliaroute/builder
//
// options.go - functional options for Build.
//
// Option constructors validate and panic on meaningless inputs; the resulting
// options are applied in order, later ones overriding earlier ones.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/reliaroute/timetable"
)

// BuilderOption customizes the configuration shared by all constructors of
// one Build call.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for jitter and trip offsets. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a seeded RNG, so equal seeds build equal fixtures.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithHop sets the base seconds between consecutive stations. Panics if < 1.
func WithHop(seconds int64) BuilderOption {
	if seconds < 1 {
		panic("builder: WithHop(seconds<1)")
	}
	return func(c *builderConfig) { c.hop = seconds }
}

// WithJitter adds up to max random seconds to every hop. It has no effect
// without WithSeed or WithRand. Panics if max < 0.
func WithJitter(max int64) BuilderOption {
	if max < 0 {
		panic("builder: WithJitter(max<0)")
	}
	return func(c *builderConfig) { c.jitter = max }
}

// WithWalk sets the duration of walking links. Panics if < 1.
func WithWalk(seconds int64) BuilderOption {
	if seconds < 1 {
		panic("builder: WithWalk(seconds<1)")
	}
	return func(c *builderConfig) { c.walk = seconds }
}

// WithService sets the departure window [first, last] and the headway of
// every route. Panics if first < 0, last < first or headway < 1.
func WithService(first, last, headway int64) BuilderOption {
	if first < 0 || last < first || headway < 1 {
		panic("builder: WithService(invalid window)")
	}
	return func(c *builderConfig) {
		c.first, c.last, c.headway = first, last, headway
	}
}

// WithDelayModel sets the delay model of the fixture's schedule. Panics on nil.
func WithDelayModel(m timetable.DelayModel) BuilderOption {
	if m == nil {
		panic("builder: WithDelayModel(nil)")
	}
	return func(c *builderConfig) { c.model = m }
}
