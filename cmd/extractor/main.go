// Command extractor runs one extraction and aggregation pass from the
// command line, without the HTTP server. Useful for cron jobs and for
// debugging the browser sequence with a visible window.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"esteirarank/internal/config"
	"esteirarank/internal/infrastructure"
	"esteirarank/internal/services"
)

func main() {
	var (
		headless   = flag.Bool("headless", true, "run the browser headless")
		dataDir    = flag.String("data-dir", "", "override the data directory")
		skipScrape = flag.Bool("skip-scrape", false, "aggregate existing exports without opening a browser")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg.Portal.Headless = *headless
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	rankings := services.NewRankingService(cfg, logger)

	ctx := context.Background()
	if *skipScrape {
		if err := rankings.GenerateAll(ctx); err != nil {
			logger.Error("aggregation failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("rankings rebuilt from existing exports")
		return
	}

	pipeline := services.NewPipelineService(cfg, logger, rankings)
	result, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("pipeline failed",
			slog.String("run_id", result.RunID),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("pipeline finished",
		slog.String("run_id", result.RunID),
		slog.String("duration", result.Duration))
}
