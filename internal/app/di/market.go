// Package di provides dependency injection factories for creating application components.
package di

import (
	"stock_ingest/internal/platform/config"
	"stock_ingest/internal/platform/externalapi/alphavantage"
	infrahttp "stock_ingest/internal/platform/http"
)

// NewMarketData creates a fully configured Alpha Vantage client with HTTP client.
func NewMarketData(cfg config.ProviderConfig) *alphavantage.Client {
	avCfg := alphavantage.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Function:   cfg.Function,
		Interval:   cfg.Interval,
		OutputSize: cfg.OutputSize,
		Timeout:    cfg.Timeout,
	}
	httpClient := infrahttp.NewHTTPClient(avCfg.Timeout)
	return alphavantage.NewClient(avCfg, httpClient)
}
