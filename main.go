package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"watchertracker/internal/config"
	"watchertracker/internal/fetcher"
	"watchertracker/internal/logging"
	"watchertracker/internal/runner"
	"watchertracker/internal/stocktwits"
	"watchertracker/internal/symbols"
	"watchertracker/internal/trend"
)

func main() {
	symbolsPath := pflag.String("symbols", "", "path to the symbols file (overrides SYMBOLS_FILE)")
	trendPath := pflag.String("out", "", "path to the trend CSV file (overrides TREND_FILE)")
	pflag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *symbolsPath != "" {
		cfg.SymbolsFile = *symbolsPath
	}
	if *trendPath != "" {
		cfg.TrendFile = *trendPath
	}

	slog.SetDefault(logging.New(cfg.LogLevel))

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals: a cancelled run aborts without writing a row
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("received interrupt signal, aborting run")
		cancel()
	}()

	// A missing symbols file is fatal before any fetch happens
	syms, err := symbols.Load(cfg.SymbolsFile)
	if err != nil {
		slog.Error("failed to load symbols", "path", cfg.SymbolsFile, "error", err)
		os.Exit(1)
	}
	if len(syms) == 0 {
		slog.Warn("no symbols to track, nothing to do", "path", cfg.SymbolsFile)
		return
	}

	// One fetcher per listed symbol
	fetchers := make([]fetcher.Fetcher, 0, len(syms))
	for _, sym := range syms {
		fetchers = append(fetchers, stocktwits.NewWatcherFetcher(
			sym,
			cfg.StocktwitsBaseURL,
			cfg.RequestTimeout,
		))
	}

	// Fetch sequentially and append exactly one dated row
	rec := trend.NewRecorder(cfg.TrendFile)
	if err := runner.Run(ctx, fetchers, rec); err != nil {
		slog.Error("run failed", "trend_file", cfg.TrendFile, "error", err)
		os.Exit(1)
	}

	slog.Info("run complete", "symbols", len(syms), "trend_file", cfg.TrendFile)
}
