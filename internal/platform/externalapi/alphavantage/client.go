package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"

	"stock_ingest/internal/feature/prices/domain"
	"stock_ingest/internal/feature/prices/domain/entity"
	"stock_ingest/internal/feature/prices/usecase"
	"stock_ingest/internal/platform/externalapi/alphavantage/dto"
)

// Client fetches time-series price data from the Alpha Vantage API.
//
// Errors are classified for the retry layer: transport failures, HTTP 5xx
// and 429, and the provider's in-body rate-limit notes are transient; other
// 4xx responses and in-body error messages are permanent.
type Client struct {
	cfg    Config
	client *http.Client
}

var _ usecase.MarketDataSource = (*Client)(nil)

// NewClient creates a Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// FetchSeries retrieves the bounded history window for one symbol and
// returns its bars as raw points sorted by timestamp ascending. A response
// without a time series and without an error note is a valid empty result.
func (c *Client) FetchSeries(ctx context.Context, symbol string) ([]entity.RawPoint, error) {
	q := url.Values{}
	q.Set("function", c.cfg.Function)
	q.Set("symbol", symbol)
	q.Set("apikey", c.cfg.APIKey)
	if c.cfg.Function == FuncIntraday {
		q.Set("interval", c.cfg.Interval)
	}
	if c.cfg.OutputSize != "" {
		q.Set("outputsize", c.cfg.OutputSize)
	}

	u := fmt.Sprintf("%s/query?%s", c.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, domain.Transient(fmt.Errorf("request %s: %w", symbol, err))
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	switch {
	case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500:
		return nil, domain.Transient(fmt.Errorf("alphavantage http %d", res.StatusCode))
	case res.StatusCode >= 400:
		return nil, domain.Permanent(fmt.Errorf("alphavantage http %d", res.StatusCode))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, domain.Transient(fmt.Errorf("read response: %w", err))
	}

	var env dto.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.ErrorMessage != "" {
		return nil, domain.Permanent(fmt.Errorf("alphavantage: %s", env.ErrorMessage))
	}
	// The quota note comes back as HTTP 200; without this check it would
	// look like a symbol with no data.
	if env.Note != "" {
		return nil, domain.Transient(fmt.Errorf("alphavantage rate limit: %s", env.Note))
	}
	if env.Information != "" {
		return nil, domain.Transient(fmt.Errorf("alphavantage rate limit: %s", env.Information))
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	raw, ok := payload[c.cfg.seriesKey()]
	if !ok {
		slog.Warn("no time series in response", "symbol", symbol, "key", c.cfg.seriesKey())
		return nil, nil
	}

	var series map[string]dto.Bar
	if err := json.Unmarshal(raw, &series); err != nil {
		return nil, fmt.Errorf("decode time series: %w", err)
	}

	// Provider timestamps are fixed-width, so lexicographic order is
	// chronological.
	stamps := make([]string, 0, len(series))
	for ts := range series {
		stamps = append(stamps, ts)
	}
	sort.Strings(stamps)

	points := make([]entity.RawPoint, 0, len(stamps))
	for _, ts := range stamps {
		bar := series[ts]
		points = append(points, entity.RawPoint{
			Timestamp: ts,
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Close:     bar.Close,
			Volume:    bar.Volume,
		})
	}
	return points, nil
}
