// File: labels.go
// Role: Per-invocation mutable label state over a Network.
// Policy:
//   - Update* overwrite unconditionally; the caller owns every pruning decision.
//   - Reset restores the freshly allocated state so a Labels value can be reused.

package core

// RefKind tags what a Ref points at.
type RefKind uint8

const (
	// RefNone marks an absent predecessor (the search start, or an unreached entity).
	RefNone RefKind = iota

	// RefStation marks a predecessor station.
	RefStation

	// RefStop marks a predecessor stop.
	RefStop
)

// Ref is a tagged handle to either a station or a stop.
type Ref struct {
	Kind RefKind
	ID   int
}

// NoRef is the absent predecessor.
var NoRef = Ref{Kind: RefNone, ID: -1}

// StationRef wraps a station handle.
func StationRef(id StationID) Ref { return Ref{Kind: RefStation, ID: int(id)} }

// StopRef wraps a stop handle.
func StopRef(id StopID) Ref { return Ref{Kind: RefStop, ID: int(id)} }

// Station returns the referenced station handle, or NoStation.
func (r Ref) Station() StationID {
	if r.Kind != RefStation {
		return NoStation
	}
	return StationID(r.ID)
}

// Stop returns the referenced stop handle, or NoStop.
func (r Ref) Stop() StopID {
	if r.Kind != RefStop {
		return NoStop
	}
	return StopID(r.ID)
}

// Label is the triple relaxed by the search: best known reversed arrival time,
// the node that produced it, and the accumulated transfer success probability.
type Label struct {
	Arrival int64
	Pred    Ref
	Success float64
}

// Reached reports whether the label has been set at least once.
func (l Label) Reached() bool { return l.Arrival != Infinity }

var unreached = Label{Arrival: Infinity, Pred: NoRef}

// Labels holds one Label per station and per stop of a Network.
type Labels struct {
	stations []Label
	stops    []Label
}

// NewLabels allocates labels for every station and stop of n, all unreached.
// Complexity: O(S + P)
func NewLabels(n *Network) *Labels {
	l := &Labels{
		stations: make([]Label, n.NumStations()),
		stops:    make([]Label, n.NumStops()),
	}
	l.Reset()

	return l
}

// Reset marks every label unreached.
func (l *Labels) Reset() {
	for i := range l.stations {
		l.stations[i] = unreached
	}
	for i := range l.stops {
		l.stops[i] = unreached
	}
}

// Station returns the label of station id.
func (l *Labels) Station(id StationID) Label { return l.stations[id] }

// Stop returns the label of stop id.
func (l *Labels) Stop(id StopID) Label { return l.stops[id] }

// UpdateStation overwrites the station's label triple.
func (l *Labels) UpdateStation(id StationID, arrival int64, pred Ref, success float64) {
	l.stations[id] = Label{Arrival: arrival, Pred: pred, Success: success}
}

// UpdateStop overwrites the stop's label triple.
func (l *Labels) UpdateStop(id StopID, arrival int64, pred Ref, success float64) {
	l.stops[id] = Label{Arrival: arrival, Pred: pred, Success: success}
}

// AddTime adds d to a reversed time, saturating at Infinity.
func AddTime(t, d int64) int64 {
	if t == Infinity || d >= Infinity-t {
		return Infinity
	}
	return t + d
}
