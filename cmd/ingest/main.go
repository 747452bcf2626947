// The ingest command runs one batch of the price pipeline: it fetches the
// configured symbols from the market-data provider and upserts their bars
// into Postgres. Scheduling repeated runs is the job of an external
// scheduler (cron, Airflow); each invocation is bounded and re-triggerable.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"stock_ingest/internal/app/di"
	"stock_ingest/internal/feature/prices/usecase"
	symboladapters "stock_ingest/internal/feature/symbols/adapters"
	"stock_ingest/internal/platform/config"
	"stock_ingest/internal/platform/db"
	platformredis "stock_ingest/internal/platform/redis"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Optional .env for local development; deployed runs use real env vars.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	gdb, err := db.Open(cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		return 1
	}
	if cfg.Pipeline.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			slog.Error("failed to migrate database", "error", err)
			return 1
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Pipeline.RunTimeout)
	defer cancel()

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = platformredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			// The cache is an optimization, not a dependency.
			slog.Warn("continuing without quote cache", "error", err)
			rdb = nil
		}
	}

	symbols := cfg.Pipeline.Symbols
	if len(symbols) == 0 {
		symbols, err = symboladapters.NewSymbolRepository(gdb).ListActiveCodes(ctx)
		if err != nil {
			slog.Error("failed to load symbols", "error", err)
			return 1
		}
	}
	if len(symbols) == 0 {
		slog.Error("no symbols to ingest: set STOCK_SYMBOLS or seed the symbol catalog")
		return 1
	}

	pipeline := di.NewPipeline(cfg, gdb, rdb)

	result, err := pipeline.Run(ctx, symbols)
	if result != nil {
		for _, o := range result.Outcomes {
			if o.Err != nil {
				slog.Error("symbol failed", "symbol", o.Symbol, "class", o.Class, "error", o.Err)
			}
		}
		slog.Info("run summary",
			"run_id", result.RunID,
			"succeeded", result.Succeeded(),
			"failed", result.Failed(),
			"written", result.Written(),
			"duration", result.Duration(),
		)
	}
	if err != nil {
		if errors.Is(err, usecase.ErrNoSymbolsSucceeded) {
			slog.Error("all symbols failed to process", "error", err)
		} else {
			slog.Error("run failed", "error", err)
		}
		return 1
	}
	return 0
}
