package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/davidstraka/sp500-data/internal/config"
	"github.com/davidstraka/sp500-data/internal/database"
	"github.com/davidstraka/sp500-data/internal/fetch"
	"github.com/davidstraka/sp500-data/internal/index"
	"github.com/davidstraka/sp500-data/internal/prices"
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

	logger.Info("starting prices pipeline",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals; a long run is hundreds of paced requests.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	client := fetch.NewClient(
		fetch.WithTimeout(cfg.Prices.Timeout),
		fetch.WithLogger(logger),
		fetch.WithRateLimitMarker(cfg.Prices.RateLimitMarker),
	)

	logger.Info("resolving constituent list", "url", cfg.Prices.WikiURL)
	symbols, err := index.Constituents(ctx, client, cfg.Prices.WikiURL)
	if err != nil {
		logger.Error("failed to resolve constituents", "error", err)
		os.Exit(1)
	}
	logger.Info("constituents resolved", "symbols", len(symbols))

	dl := prices.NewDownloader(
		client,
		cfg.Prices.QuoteURLTemplate,
		prices.IntervalPacer(cfg.Prices.RequestDelay),
		logger,
	)

	records, skipped, err := dl.Run(ctx, symbols)
	if err != nil {
		logger.Error("download failed", "error", err, "skipped", len(skipped))
		os.Exit(1)
	}

	if err := store.WritePrices(cfg.Prices.OutputPath, records); err != nil {
		logger.Error("failed to write parquet file", "error", err)
		os.Exit(1)
	}

	sizeMB, err := store.FileSizeMB(cfg.Prices.OutputPath)
	if err != nil {
		logger.Error("failed to stat output file", "error", err)
		os.Exit(1)
	}

	logger.Info("price history saved",
		"rows", len(records),
		"tickers", uniqueSymbols(records),
		"skipped", len(skipped),
		"path", cfg.Prices.OutputPath,
		"size_mb", fmt.Sprintf("%.1f", sizeMB),
	)

	if cfg.Database.Enabled() {
		loadIntoDatabase(ctx, cfg, runID, records, logger)
	}
}

// loadIntoDatabase bulk-loads the dataset into the configured Postgres sink.
func loadIntoDatabase(ctx context.Context, cfg *config.Config, runID uuid.UUID, records []prices.Record, logger *slog.Logger) {
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	n, err := database.ReplaceDailyClose(ctx, pool, runID, records)
	if err != nil {
		logger.Error("failed to load price history into database", "error", err)
		os.Exit(1)
	}

	logger.Info("price history loaded into database", "rows", n)
}

func uniqueSymbols(records []prices.Record) int {
	seen := make(map[string]bool)
	for _, r := range records {
		seen[r.Symbol] = true
	}
	return len(seen)
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
