package search

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/reliaroute/core"
	"github.com/katalvlaran/reliaroute/timetable"
)

// Search is a configured reverse itinerary search over one network and oracle.
// The network and oracle are only read; each Run allocates its own labels.
type Search struct {
	net       *core.Network
	oracle    timetable.Oracle
	opts      Options
	maxRounds int
}

// New validates the options and returns a ready Search.
//
// Preconditions and validation (in order):
//  1. Every option is well-formed (ErrBadThreshold, ErrBadSolutionCount,
//     ErrBadTransferTime, ErrBadHorizon).
//  2. net is non-nil (ErrNilNetwork).
//  3. oracle is non-nil (ErrNilOracle).
//  4. Origin and Destination address stations (ErrStationNotFound).
//  5. Origin != Destination (ErrSameStation).
func New(net *core.Network, oracle timetable.Oracle, opts ...Option) (*Search, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if net == nil {
		return nil, ErrNilNetwork
	}
	if oracle == nil {
		return nil, ErrNilOracle
	}
	if !net.HasStation(cfg.Origin) {
		return nil, fmt.Errorf("%w: origin %d", ErrStationNotFound, cfg.Origin)
	}
	if !net.HasStation(cfg.Destination) {
		return nil, fmt.Errorf("%w: destination %d", ErrStationNotFound, cfg.Destination)
	}
	if cfg.Origin == cfg.Destination {
		return nil, fmt.Errorf("%w: %d", ErrSameStation, cfg.Origin)
	}

	maxRounds := cfg.MaxRounds
	if maxRounds == 0 {
		maxRounds = 4*(net.NumStations()+net.NumStops()) + 16
	}

	return &Search{net: net, oracle: oracle, opts: cfg, maxRounds: maxRounds}, nil
}

// Run is shorthand for New followed by (*Search).Run.
func Run(net *core.Network, oracle timetable.Oracle, opts ...Option) ([]Path, error) {
	s, err := New(net, oracle, opts...)
	if err != nil {
		return nil, err
	}
	return s.Run()
}

// Options returns the effective options.
func (s *Search) Options() Options { return s.opts }

// Run executes the search and returns up to Options.Solutions paths, best-first.
//
// The top-level invocation runs to its fixed point and ranks its captures. If fewer
// paths than requested were found, it re-runs once per route of its best path with
// that route blacklisted; those sub-searches never recurse themselves, and the
// requested count is re-checked before each one. Sub-search results follow the
// top-level results in the order the sub-searches ran. Paths with identical stops
// and times are reported once.
//
// An unreachable origin is not an error: the result is simply empty.
func (s *Search) Run() ([]Path, error) {
	c := &collector{seen: make(map[string]struct{})}
	if err := s.solve("", true, c); err != nil {
		return nil, err
	}
	if len(c.paths) > s.opts.Solutions {
		c.paths = c.paths[:s.opts.Solutions]
	}

	return c.paths, nil
}

// solve runs one invocation with the given blacklist and, when recurse is set,
// the depth-1 diversification below it.
func (s *Search) solve(blacklist string, recurse bool, c *collector) error {
	r := s.newRunner(blacklist)
	if err := r.process(); err != nil {
		return err
	}
	r.solutions.Sort()
	c.add(r.solutions.Paths())

	best, ok := r.solutions.Best()
	if !recurse || !ok {
		return nil
	}
	for _, route := range best.Routes {
		if len(c.paths) >= s.opts.Solutions {
			r.log.Debug("diversification stopped", slog.Int("found", len(c.paths)))
			break
		}
		r.log.Debug("diversifying", slog.String("without", route), slog.Int("found", len(c.paths)))
		if err := s.solve(route, false, c); err != nil {
			return fmt.Errorf("search: without route %q: %w", route, err)
		}
	}

	return nil
}

// collector gathers paths across invocations, dropping duplicates.
type collector struct {
	paths []Path
	seen  map[string]struct{}
}

func (c *collector) add(paths []Path) {
	for _, p := range paths {
		sig := p.signature()
		if _, dup := c.seen[sig]; dup {
			continue
		}
		c.seen[sig] = struct{}{}
		c.paths = append(c.paths, p)
	}
}
