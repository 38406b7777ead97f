package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/sheetfetch/internal/config"
	"github.com/JonMunkholm/sheetfetch/internal/core"
	"github.com/JonMunkholm/sheetfetch/internal/logging"
	"github.com/JonMunkholm/sheetfetch/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"source", cfg.String(),
		"track_supported", cfg.Reformat.TrackSupported,
		"max_concurrent_fetches", cfg.Server.MaxConcurrentFetches,
	)
	if cfg.Source.URL == "" {
		slog.Warn("SPREADSHEET_URL is not set; every fetch will fail until it is")
	}

	pipeline := core.NewPipeline(
		core.NewHTTPFetcher(cfg.Source.FetcherConfig()),
		core.NewReformatter(cfg.Reformat.Options()),
	)
	server := web.NewServer(pipeline, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		if err := server.WaitForFetches(shutdownCtx); err != nil {
			slog.Warn("fetches did not complete in time", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
