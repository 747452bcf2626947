// Package entity defines the domain models for the prices feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord represents one canonical OHLCV (Open, High, Low, Close, Volume)
// bar for a stock symbol. The (Symbol, Timestamp) pair is the natural key:
// storage keeps at most one row per pair, and a later write for the same pair
// overwrites the price fields.
type PriceRecord struct {
	Symbol    string          // Stock ticker symbol, upper case (e.g., "AAPL", "MSFT")
	Timestamp time.Time       // Start of the bar period, UTC
	Open      decimal.Decimal // Opening price
	High      decimal.Decimal // Highest price during this period
	Low       decimal.Decimal // Lowest price during this period
	Close     decimal.Decimal // Closing price
	Volume    int64           // Trading volume
}
