// reliaroute plans reliable transit itineraries over a GTFS feed.
//
// Usage:
//
//	reliaroute plan --from=<stop> --to=<stop> --arrive-by=HH:MM:SS [--feed=gtfs.zip] [--rt=<url|path>]...
//	reliaroute stations [filter] [--feed=gtfs.zip]
//
// Configuration is read from --config (YAML); flags override it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
