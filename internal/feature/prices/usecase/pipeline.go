package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"stock_ingest/internal/feature/prices/domain"
	"stock_ingest/internal/feature/prices/domain/entity"
	"stock_ingest/internal/shared/retry"
)

// ErrNoSymbolsSucceeded is returned by Run when symbols were given and every
// single one failed. Partial failure is not a run failure.
var ErrNoSymbolsSucceeded = errors.New("no symbols succeeded")

// ErrRunInProgress is returned when Run is called while another run on the
// same pipeline has not finished. Cross-process exclusivity stays with the
// scheduler; this only guards the shared rate-limiter state in-process.
var ErrRunInProgress = errors.New("run already in progress")

// MarketDataSource fetches the raw time series for one symbol.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type MarketDataSource interface {
	FetchSeries(ctx context.Context, symbol string) ([]entity.RawPoint, error)
}

// PriceRepository persists one symbol's batch of records atomically and
// reports how many rows were written.
type PriceRepository interface {
	UpsertBatch(ctx context.Context, records []entity.PriceRecord) (int64, error)
}

// RateLimiter gates external calls against the shared provider quota.
type RateLimiter interface {
	Acquire(ctx context.Context) error
}

// QuoteCache mirrors the most recent bar per symbol for cheap reads.
// Optional: a nil cache disables mirroring.
type QuoteCache interface {
	SetLatest(ctx context.Context, symbol string, rec entity.PriceRecord) error
}

// Pipeline runs the fetch, rate-limit, retry, normalize, upsert sequence over a
// symbol list. Symbols are processed strictly sequentially: the provider
// quota is a global constraint, so parallel fetches would gain nothing.
type Pipeline struct {
	source  MarketDataSource
	prices  PriceRepository
	limiter RateLimiter
	retry   *retry.Policy
	quotes  QuoteCache
	norm    *Normalizer
	logger  *slog.Logger
	running atomic.Bool
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithQuoteCache enables best-effort latest-bar mirroring after each
// symbol's batch commits.
func WithQuoteCache(quotes QuoteCache) PipelineOption {
	return func(p *Pipeline) { p.quotes = quotes }
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline creates a Pipeline from its collaborators.
func NewPipeline(source MarketDataSource, prices PriceRepository, limiter RateLimiter, policy *retry.Policy, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		source:  source,
		prices:  prices,
		limiter: limiter,
		retry:   policy,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.norm = NewNormalizer(p.logger)
	return p
}

// Run processes symbols in the given order and returns the finalized
// RunResult. One symbol's failure is recorded and the run continues; the
// returned error is non-nil only when another run is in progress or when
// symbols were given and none succeeded.
func (p *Pipeline) Run(ctx context.Context, symbols []string) (*RunResult, error) {
	if !p.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer p.running.Store(false)

	result := &RunResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Outcomes:  make([]SymbolOutcome, 0, len(symbols)),
	}

	p.logger.Info("run started", "run_id", result.RunID, "symbols", len(symbols))

	for _, symbol := range symbols {
		result.Outcomes = append(result.Outcomes, p.processSymbol(ctx, symbol))
	}

	result.FinishedAt = time.Now().UTC()

	if len(symbols) > 0 && result.Succeeded() == 0 {
		return result, ErrNoSymbolsSucceeded
	}
	return result, nil
}

// processSymbol handles one symbol end to end. The rate-limiter gate sits
// inside the retried operation, so each retry waits out its backoff first
// and then re-acquires a quota slot before hitting the provider again.
func (p *Pipeline) processSymbol(ctx context.Context, symbol string) SymbolOutcome {
	var points []entity.RawPoint
	err := p.retry.Do(ctx, func(ctx context.Context) error {
		if err := p.limiter.Acquire(ctx); err != nil {
			return err
		}
		var ferr error
		points, ferr = p.source.FetchSeries(ctx, symbol)
		return ferr
	})
	if err != nil {
		p.logger.Error("fetch failed", "symbol", symbol, "error", err)
		return SymbolOutcome{Symbol: symbol, Err: err, Class: domain.Classify(err)}
	}

	records, dropped := p.norm.Normalize(symbol, points)

	written, err := p.prices.UpsertBatch(ctx, records)
	if err != nil {
		p.logger.Error("upsert failed", "symbol", symbol, "records", len(records), "error", err)
		return SymbolOutcome{Symbol: symbol, PointsDropped: dropped, Err: err, Class: domain.ClassStorage}
	}

	// Points arrive sorted ascending, so the last record is the freshest bar.
	if p.quotes != nil && len(records) > 0 {
		latest := records[len(records)-1]
		if err := p.quotes.SetLatest(ctx, latest.Symbol, latest); err != nil {
			p.logger.Warn("quote cache refresh failed", "symbol", symbol, "error", err)
		}
	}

	p.logger.Info("symbol ingested", "symbol", symbol, "written", written, "dropped", dropped)
	return SymbolOutcome{Symbol: symbol, RecordsWritten: written, PointsDropped: dropped}
}
