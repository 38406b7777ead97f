// Command stdout fetches the configured spreadsheet once and prints the
// reformatted mapping.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JonMunkholm/sheetfetch/internal/config"
	"github.com/JonMunkholm/sheetfetch/internal/core"
	"github.com/JonMunkholm/sheetfetch/internal/logging"
	"github.com/JonMunkholm/sheetfetch/internal/render"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes the error message and, for pipeline failures, what to do
// about it.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, err.Error())
	if msg := core.MapError(err); msg.Code != "" && msg.Code != "ERR000" {
		fmt.Fprintf(w, "hint: %s (%s)\n", msg.Action, msg.Code)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("stdout", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "table", "output format: table, json or yaml")
	supported := fs.Bool("supported", true, "include the list of supported columns")
	sourceURL := fs.String("url", "", "source CSV URL (overrides SPREADSHEET_URL)")
	timeout := fs.Duration("timeout", 0, "fetch timeout (overrides SOURCE_TIMEOUT)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := render.ParseFormat(*format)
	if err != nil {
		return err
	}

	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(stderr, cfg.Logging.Level, cfg.Logging.Format)

	if *sourceURL != "" {
		cfg.Source.URL = *sourceURL
	}
	if *timeout > 0 {
		cfg.Source.Timeout = *timeout
	}
	opts := cfg.Reformat.Options()
	opts.TrackSupported = *supported

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline := core.NewPipeline(
		core.NewHTTPFetcher(cfg.Source.FetcherConfig()),
		core.NewReformatter(opts),
	)

	res := <-pipeline.Start(ctx)
	if res.Err != nil {
		slog.Debug("fetch failed", "run_id", res.RunID, "code", core.MapError(res.Err).Code)
		return res.Err
	}
	slog.Debug("fetch completed",
		"run_id", res.RunID,
		"rows", res.Rows,
		"source", res.Source,
		"fetch", res.FetchDuration.Round(time.Millisecond),
		"duration", res.Duration.Round(time.Millisecond),
	)

	return render.Render(stdout, res.Mapping, f)
}
