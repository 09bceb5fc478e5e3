package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/reliaroute/config"
	"github.com/katalvlaran/reliaroute/gtfs"
)

// app is the state shared by subcommands once the root has run.
type app struct {
	configPath string
	feedPath   string

	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "reliaroute",
		Short: "Reliable itinerary planning over GTFS feeds",
		Long: "reliaroute finds the latest departures that still reach a destination by a deadline,\n" +
			"refusing transfers whose success probability falls below a threshold.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.Version = version

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "YAML configuration file")
	f.StringVar(&a.feedPath, "feed", "", "GTFS static zip (overrides feed.static)")

	root.AddCommand(newPlanCmd(a), newStationsCmd(a))

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.feedPath != "" {
		cfg.Feed.Static = a.feedPath
	}
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	return nil
}

func (a *app) loadFeed() (*gtfs.Feed, error) {
	if a.cfg.Feed.Static == "" {
		return nil, errors.New("no GTFS feed: set --feed or feed.static")
	}

	return gtfs.LoadFile(a.cfg.Feed.Static,
		gtfs.WithMaxWalkMeters(a.cfg.Walking.MaxMeters),
		gtfs.WithWalkSpeed(a.cfg.Walking.SpeedMPS),
		gtfs.WithLogger(a.log),
	)
}
