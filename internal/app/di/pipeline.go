package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	pricesadapters "stock_ingest/internal/feature/prices/adapters"
	"stock_ingest/internal/feature/prices/usecase"
	"stock_ingest/internal/platform/cache"
	"stock_ingest/internal/platform/config"
	"stock_ingest/internal/shared/ratelimiter"
	"stock_ingest/internal/shared/retry"
)

// NewPipeline wires the full ingest pipeline from configuration: provider
// client, rate limiter, retry policy, price repository, and (when rdb is
// non-nil) the latest-quote cache.
func NewPipeline(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *usecase.Pipeline {
	source := NewMarketData(cfg.Provider)
	prices := pricesadapters.NewPriceRepository(db)
	limiter := ratelimiter.NewIntervalLimiter(ratelimiter.PerMinute(cfg.Pipeline.CallsPerMinute))
	policy := retry.NewPolicy(cfg.Pipeline.MaxAttempts, cfg.Pipeline.RetryBaseDelay, cfg.Pipeline.RetryMaxDelay)

	opts := []usecase.PipelineOption{}
	if rdb != nil {
		opts = append(opts, usecase.WithQuoteCache(cache.NewQuoteCache(rdb, cfg.Redis.TTL, "")))
	}
	return usecase.NewPipeline(source, prices, limiter, policy, opts...)
}
