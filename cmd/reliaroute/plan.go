package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/reliaroute/bfs"
	"github.com/katalvlaran/reliaroute/core"
	"github.com/katalvlaran/reliaroute/delays"
	"github.com/katalvlaran/reliaroute/dijkstra"
	"github.com/katalvlaran/reliaroute/gtfs"
	"github.com/katalvlaran/reliaroute/search"
	"github.com/katalvlaran/reliaroute/timetable"
)

// maxParallelFetch bounds concurrent realtime downloads.
const maxParallelFetch = 4

type planFlags struct {
	from, to     string
	arriveBy     string
	realtime     []string
	threshold    float64
	solutions    int
	transferTime int64
}

func newPlanCmd(a *app) *cobra.Command {
	var pf planFlags
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan itineraries that arrive by a deadline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.plan(cmd, pf)
		},
	}

	f := cmd.Flags()
	f.StringVar(&pf.from, "from", "", "origin stop_id or stop name (required)")
	f.StringVar(&pf.to, "to", "", "destination stop_id or stop name (required)")
	f.StringVar(&pf.arriveBy, "arrive-by", "", "latest arrival, HH:MM:SS (required)")
	f.StringSliceVar(&pf.realtime, "rt", nil, "GTFS-Realtime TripUpdates URL or file (overrides feed.realtime)")
	f.Float64Var(&pf.threshold, "threshold", 0, "minimum transfer success probability (overrides search.threshold)")
	f.IntVar(&pf.solutions, "solutions", 0, "number of itineraries (overrides search.solutions)")
	f.Int64Var(&pf.transferTime, "transfer-time", 0, "station transfer seconds (overrides search.transfer_time)")

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("arrive-by")

	return cmd
}

func (a *app) plan(cmd *cobra.Command, pf planFlags) error {
	flags := cmd.Flags()
	sc := a.cfg.Search
	if flags.Changed("threshold") {
		sc.Threshold = pf.threshold
	}
	if flags.Changed("solutions") {
		sc.Solutions = pf.solutions
	}
	if flags.Changed("transfer-time") {
		sc.TransferTime = pf.transferTime
	}
	sources := a.cfg.Feed.Realtime
	if flags.Changed("rt") {
		sources = pf.realtime
	}

	arriveBy, err := timetable.ParseClock(pf.arriveBy)
	if err != nil {
		return fmt.Errorf("--arrive-by: %w", err)
	}

	feed, err := a.loadFeed()
	if err != nil {
		return err
	}
	from, err := feed.Resolve(pf.from)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := feed.Resolve(pf.to)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	var model *delays.Empirical
	if len(sources) > 0 {
		if model, err = a.observe(cmd.Context(), feed, sources); err != nil {
			return err
		}
		feed.Schedule.SetDelayModel(model)
	}

	opts := []search.Option{
		search.Origin(from),
		search.Destination(to),
		search.ArriveBy(arriveBy),
		search.WithThreshold(sc.Threshold),
		search.WithSolutions(sc.Solutions),
		search.WithTransferTime(sc.TransferTime),
		search.WithLogger(a.log),
	}
	if sc.MaxRounds > 0 {
		opts = append(opts, search.WithMaxRounds(sc.MaxRounds))
	}
	paths, err := search.Run(feed.Network, feed.Schedule, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(paths) == 0 {
		fmt.Fprintf(out, "No itinerary from %s reaches %s by %s at p >= %.2f\n",
			feed.DisplayName(from), feed.DisplayName(to), timetable.FormatClock(arriveBy), sc.Threshold)
		return explainEmpty(out, feed, from, to)
	}
	renderPaths(out, feed, paths, model)

	return nil
}

// observe fetches every realtime source concurrently and freezes the observed
// delays into a model.
func (a *app) observe(ctx context.Context, feed *gtfs.Feed, sources []string) (*delays.Empirical, error) {
	rec := delays.NewRecorder(
		delays.WithTripRoutes(feed.TripRoutes),
		delays.WithMinSamples(a.cfg.Feed.MinSamples),
	)
	fetch := newFetcher()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetch)
	for _, src := range sources {
		g.Go(func() error {
			b, err := fetch.fetch(gCtx, src)
			if err != nil {
				return fmt.Errorf("realtime %s: %w", src, err)
			}
			n, err := rec.ObserveBytes(b)
			if err != nil {
				return fmt.Errorf("realtime %s: %w", src, err)
			}
			a.log.Info("realtime feed observed", "source", src, "delays", n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	a.log.Debug("delay model built", "samples", rec.Samples(""), "routes", len(rec.Routes()))

	return rec.Model(), nil
}

// explainEmpty tells a disconnected pair apart from one that merely lacks a
// suitable departure, and reports the static lower bounds of the latter.
func explainEmpty(w io.Writer, feed *gtfs.Feed, from, to core.StationID) error {
	dist, _, err := dijkstra.MinTravel(feed.Network, dijkstra.Destination(to))
	if err != nil {
		return err
	}
	if dist[from] == core.Infinity {
		fmt.Fprintln(w, "The stations are not connected by any route or walk.")
		return nil
	}
	rides, err := bfs.Rides(feed.Network, from)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "The fastest connection without waiting takes %s; the fewest boardings needed is %d.\n",
		timetable.FormatClock(dist[from]), rides.Rides[to])

	return nil
}

// renderPaths prints one row per leg. With an observed delay model every ride
// also shows the delay its route does not exceed nine times out of ten.
func renderPaths(w io.Writer, feed *gtfs.Feed, paths []search.Path, model *delays.Empirical) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	header := table.Row{"#", "Leg", "From", "Depart", "To", "Arrive"}
	if model != nil {
		header = append(header, "p90 delay")
	}
	t.AppendHeader(header)

	for i, p := range paths {
		if i > 0 {
			t.AppendSeparator()
		}
		for _, leg := range p.Legs() {
			mode := "walk"
			if leg.Kind == core.RouteStop {
				mode = feed.RouteName(leg.Route)
			}
			row := table.Row{
				i + 1, mode,
				feed.DisplayName(leg.From), timetable.FormatClock(leg.Depart),
				feed.DisplayName(leg.To), timetable.FormatClock(leg.Arrive),
			}
			if model != nil {
				delay := ""
				if leg.Kind == core.RouteStop {
					delay = timetable.FormatClock(model.Percentile(leg.Route, 0.9))
				}
				row = append(row, delay)
			}
			t.AppendRow(row)
		}
		total := table.Row{
			i + 1, "total", "", timetable.FormatClock(p.Duration),
			fmt.Sprintf("%d transfers", p.Transfers()), fmt.Sprintf("p=%.3f", p.Success),
		}
		if model != nil {
			total = append(total, "")
		}
		t.AppendRow(total)
	}
	t.Render()
}
