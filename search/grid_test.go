package search_test

import (
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/reliaroute/builder"
	"github.com/katalvlaran/reliaroute/core"
	"github.com/katalvlaran/reliaroute/dijkstra"
	"github.com/katalvlaran/reliaroute/search"
	"github.com/katalvlaran/reliaroute/timetable"
)

// TestRandomGrids checks the result invariants on seeded grid cities: every
// itinerary is on time, safe enough, no faster than the static lower bound,
// and labels only ever improve.
func (s *SearchSuite) TestRandomGrids() {
	t := s.T()
	const (
		arriveBy  = 9 * 3600
		threshold = 0.6
	)

	for seed := int64(1); seed <= 5; seed++ {
		f, err := builder.Build(
			[]builder.BuilderOption{
				builder.WithSeed(seed),
				builder.WithJitter(40),
				builder.WithDelayModel(timetable.Exponential{Mean: 60}),
			},
			builder.Grid(4, 4),
			builder.Walk("1,1", "2,2"),
		)
		require.NoError(t, err)
		from, to := f.Station("0,0"), f.Station("3,3")

		lower, _, err := dijkstra.MinTravel(f.Network, dijkstra.Destination(to))
		require.NoError(t, err)

		var updates []search.Update
		paths, err := search.Run(f.Network, f.Schedule,
			search.Origin(from), search.Destination(to),
			search.ArriveBy(arriveBy),
			search.WithThreshold(threshold),
			search.WithSolutions(3),
			search.WithOnUpdate(func(u search.Update) { updates = append(updates, u) }))
		require.NoError(t, err, "seed %d", seed)
		require.NotEmpty(t, paths, "seed %d", seed)

		for _, p := range paths {
			require.LessOrEqual(t, p.Arrival, int64(arriveBy), "seed %d", seed)
			require.GreaterOrEqual(t, p.Success, threshold, "seed %d", seed)
			require.GreaterOrEqual(t, p.Duration, lower[from], "seed %d", seed)
			require.Equal(t, from, p.Steps[0].Station)
			require.Equal(t, to, p.Steps[len(p.Steps)-1].Station)
		}
		for _, u := range updates {
			if u.Stop != core.NoStop {
				require.Less(t, u.New, u.Old, "seed %d stop %d", seed, u.Stop)
			} else {
				require.LessOrEqual(t, u.New, u.Old, "seed %d station %d", seed, u.Station)
			}
		}
	}
}
