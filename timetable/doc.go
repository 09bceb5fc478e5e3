// Package timetable provides the schedule oracle consumed by the reverse search:
// "latest scheduled arrival at or before T" lookups and the transfer-safety test.
//
// Overview:
//
//   - Oracle is the narrow contract the search depends on. Every time passed to or
//     returned from an Oracle is a REAL-WORLD time (seconds since service-day
//     midnight), never a reversed label.
//   - Schedule is an in-memory Oracle keyed by route stop. Each stop holds the
//     sorted arrival times of its route's vehicles at that position of the route,
//     so the two visits of a loop route to one station never share times.
//   - DelayModel turns a wait time ("slack") into the probability that the incoming
//     vehicle is not later than the slack. Schedule multiplies that probability into
//     the accumulated success of the itinerary and compares it with the threshold.
//
// Reliability models:
//
//   - Punctual:    vehicles are never late; any slack ≥ 0 is certain.
//   - Exponential: delays are exponentially distributed with the given mean.
//   - Any other DelayModel, e.g. the empirical model built by package delays from
//     GTFS-Realtime observations.
//
// Route patterns:
//
// A GTFS route may run several stop patterns; each becomes its own network route
// named PatternName(routeID, n). BaseRoute recovers the GTFS route_id so delay
// statistics collected per route_id apply to every pattern.
//
// Example:
//
//	s := timetable.NewSchedule(timetable.WithDelayModel(timetable.Exponential{Mean: 60}))
//	s.AddArrival(stopAtB, 9*3600)
//	t, idx := s.PreviousArrival(net.Stop(stopAtB), 9*3600+300) // t = 32400, idx = 0
//	p, ok := s.AssertSafeTransfer(net.Stop(stopAtB), idx, 300, 0.9, 1)
package timetable
