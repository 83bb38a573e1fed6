package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/davidstraka/sp500-data/internal/config"
	"github.com/davidstraka/sp500-data/internal/fetch"
	"github.com/davidstraka/sp500-data/internal/index"
	"github.com/davidstraka/sp500-data/internal/store"
	"github.com/davidstraka/sp500-data/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/pipelines.yaml", "path to config file")
	flag.Parse()

	cfg := loadConfig(*configPath)

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Logging.SlogLevel(),
	}))
	slog.SetDefault(logger)

	runID := uuid.New()
	logger = logger.With("run_id", runID.String())

	logger.Info("starting weightings pipeline",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	ctx := context.Background()

	client := fetch.NewClient(
		fetch.WithTimeout(cfg.Weightings.Timeout),
		fetch.WithLogger(logger),
	)

	logger.Info("downloading holdings spreadsheet", "url", cfg.Weightings.URL)
	raw, err := client.Get(ctx, cfg.Weightings.URL)
	if err != nil {
		logger.Error("failed to download holdings spreadsheet", "error", err)
		os.Exit(1)
	}

	rows, err := index.ExtractWeightings(raw, index.WeightingsOptions{
		SkipFirst:  cfg.Weightings.SkipFirst,
		RowsToRead: cfg.Weightings.RowsToRead,
		Normalise:  cfg.Weightings.Normalise,
	})
	if err != nil {
		logger.Error("failed to extract weightings", "error", err)
		os.Exit(1)
	}

	// Quick sanity check: log the head of the dataset.
	for i, row := range rows {
		if i >= 5 {
			break
		}
		logger.Info("weightings head", "ticker", row.Ticker, "weight", row.Weight)
	}

	if err := store.WriteWeightings(cfg.Weightings.OutputPath, rows); err != nil {
		logger.Error("failed to write weightings csv", "error", err)
		os.Exit(1)
	}

	logger.Info("weightings saved",
		"rows", len(rows),
		"path", cfg.Weightings.OutputPath,
	)
}

// loadConfig loads the config file, falling back to pure defaults when the
// file does not exist so the binary runs with no arguments.
func loadConfig(path string) *config.Config {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.Default()
	}

	cfg, err := config.LoadAndValidate(path)
	if err != nil {
		slog.Error("failed to load config", "path", path, "error", err)
		os.Exit(1)
	}
	return cfg
}
