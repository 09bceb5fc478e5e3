// File: solutions.go
// Role: Completed itineraries of one search invocation and the live pruning bound.
// Policy:
//   - Save appends unconditionally and only ever lowers the bound.
//   - Sort is stable; after it the bound equals the best path's Bound.

package search

import (
	"sort"

	"github.com/katalvlaran/reliaroute/core"
)

// SolutionSet accumulates paths that reach the target station.
type SolutionSet struct {
	target core.StationID
	best   int64
	paths  []Path
}

// NewSolutionSet returns an empty set for target with an infinite bound.
func NewSolutionSet(target core.StationID) *SolutionSet {
	return &SolutionSet{target: target, best: core.Infinity}
}

// Target returns the station whose labels produce solutions.
func (s *SolutionSet) Target() core.StationID { return s.target }

// Bound returns the live best-known target label.
func (s *SolutionSet) Bound() int64 { return s.best }

// Save appends p and tightens the bound to p.Bound if that is smaller.
func (s *SolutionSet) Save(p Path) {
	s.paths = append(s.paths, p)
	if p.Bound < s.best {
		s.best = p.Bound
	}
}

// Len returns the number of saved paths.
func (s *SolutionSet) Len() int { return len(s.paths) }

// Sort ranks the paths best-first: smaller Bound (later departure), then earlier
// real-world arrival, then higher success probability, then fewer steps. Equal
// paths keep capture order.
func (s *SolutionSet) Sort() {
	sort.SliceStable(s.paths, func(i, j int) bool {
		a, b := s.paths[i], s.paths[j]
		if a.Bound != b.Bound {
			return a.Bound < b.Bound
		}
		if a.Arrival != b.Arrival {
			return a.Arrival < b.Arrival
		}
		if a.Success != b.Success {
			return a.Success > b.Success
		}
		return len(a.Steps) < len(b.Steps)
	})
	if len(s.paths) > 0 {
		s.best = s.paths[0].Bound
	}
}

// Paths returns a copy of the saved paths in their current order.
func (s *SolutionSet) Paths() []Path {
	return append([]Path(nil), s.paths...)
}

// Best returns the first path and true, or false if the set is empty.
func (s *SolutionSet) Best() (Path, bool) {
	if len(s.paths) == 0 {
		return Path{}, false
	}
	return s.paths[0], true
}
