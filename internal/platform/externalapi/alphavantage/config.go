// Package alphavantage provides a client for the Alpha Vantage stock
// market API.
package alphavantage

import (
	"fmt"
	"time"
)

// Supported time-series functions.
const (
	FuncIntraday = "TIME_SERIES_INTRADAY"
	FuncDaily    = "TIME_SERIES_DAILY"
)

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey     string        // API key for authentication
	BaseURL    string        // Base URL for the API (e.g., "https://www.alphavantage.co")
	Function   string        // Time-series function (FuncIntraday or FuncDaily)
	Interval   string        // Bar interval for intraday series (e.g., "60min")
	OutputSize string        // "compact" (latest 100 bars) or "full"
	Timeout    time.Duration // HTTP request timeout
}

// seriesKey returns the top-level JSON key under which the provider nests
// the bar data for the configured function.
func (c Config) seriesKey() string {
	if c.Function == FuncDaily {
		return "Time Series (Daily)"
	}
	return fmt.Sprintf("Time Series (%s)", c.Interval)
}
