// Package search computes reliable, time-optimal itineraries with a reverse,
// round-based label-propagation search, and diversifies them by route blacklisting.
//
// What & why:
//
//	The search runs on a time-reversed network (see package core). Reversed time 0 is
//	the caller's real-world arrival deadline (ArriveBy); a larger reversed label is an
//	earlier real-world instant. Starting at the real-world destination, the search
//	pushes labels towards the real-world origin and thereby finds the LATEST
//	departure that still reaches the destination in time, with every transfer
//	passing a probabilistic safety gate.
//
// Round loop (one invocation):
//
//	seed    start station ← (0, none, 1); route stops board the latest safe
//	        connection at or before ArriveBy; the walking stop gets label 0.
//	repeat until no route, walk or station mark is pending:
//	  A. routes    ripple each marked route backward along Prev:
//	               prev ← cur + travel while that beats prev and the bound.
//	  B. walks     drain the walk worklist: neighbor ← stop + duration.
//	  C. stations  station ← earliest stop + TransferTime; on change, route stops
//	               board the latest safe connection before the station's real-world
//	               time (earlier connections are tried while they can still
//	               improve), walking stops inherit the station label. Relabeling
//	               the target station captures a Path.
//
// Pruning:
//
//	– Local:  a candidate must be strictly smaller than the current label.
//	– Bound:  a candidate must be strictly smaller than the best captured target
//	          label (the target itself may equal it).
//	– Horizon (optional): no label above WithHorizon(h) is accepted.
//
// Safety gate:
//
//	Every boarding asks the Oracle for AssertSafeTransfer(stop, idx, wait, threshold,
//	prior), where prior is the success accumulated at the station. A transfer is
//	accepted only when the oracle reports it safe and, away from the start station,
//	the wait is strictly positive. Walking legs are never gated.
//
// Diversification:
//
//	After the top-level invocation converges and its paths are ranked, if fewer than
//	WithSolutions(n) paths were found, the search is re-run once per route of the
//	best path with that route blacklisted. Sub-searches start from fresh labels,
//	share only the network and the oracle, and never recurse. The count is re-checked
//	before every sub-search.
//
// Determinism:
//
//	Routes and stations are processed in first-mark order, walking stops FIFO, and
//	the earliest stop of a station is the smallest label with ties going to the
//	lowest StopID. Identical inputs yield identical paths.
//
// Options:
//
//	Origin(id), Destination(id)   real-world endpoints (required).
//	ArriveBy(t)                   real-world deadline, seconds since midnight.
//	WithThreshold(p)              minimum accumulated success, p ∈ [0, 1].
//	WithSolutions(n)              requested itinerary count, n ≥ 1.
//	WithTransferTime(d)           station transfer penalty (default 120).
//	WithHorizon(h)                search window in seconds before ArriveBy.
//	WithMaxRounds(n)              round cap guarding against non-convergence.
//	WithLogger(l), WithOnUpdate(fn)  observability.
//
// Complexity (one invocation, S stations, P stops, C connections per stop):
//
//	– Time:  O(R · (P + W + P·log C)) for R rounds and W walking edges; R is bounded
//	         by the number of label improvements and is small in practice.
//	– Space: O(S + P) labels plus marks.
//
// Example:
//
//	paths, err := search.Run(net, sched,
//	    search.Origin(a), search.Destination(b),
//	    search.ArriveBy(9*3600),
//	    search.WithThreshold(0.9),
//	    search.WithSolutions(3),
//	)
package search
