// Package usecase implements the ingest pipeline for price records: it
// turns a symbol list into rate-limited provider fetches, normalizes the
// raw responses, and upserts the result.
package usecase

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stock_ingest/internal/feature/prices/domain/entity"
)

// timestampLayouts are tried in order when parsing a provider timestamp.
// Intraday series carry date-times, daily series bare dates; both are
// timezone-naive and interpreted as UTC.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalizer converts raw provider points into canonical price records.
// Malformed points are dropped with a warning; they never fail the batch.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a Normalizer. A nil logger falls back to
// slog.Default().
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize maps points to well-formed records for symbol and reports how
// many points were dropped. An empty result is a valid outcome: the
// provider may simply have no new data.
func (n *Normalizer) Normalize(symbol string, points []entity.RawPoint) ([]entity.PriceRecord, int) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	records := make([]entity.PriceRecord, 0, len(points))
	dropped := 0
	for _, p := range points {
		rec, err := n.normalizeOne(symbol, p)
		if err != nil {
			dropped++
			n.logger.Warn("dropping malformed point",
				"symbol", symbol,
				"timestamp", p.Timestamp,
				"error", err,
			)
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}

func (n *Normalizer) normalizeOne(symbol string, p entity.RawPoint) (entity.PriceRecord, error) {
	ts, err := parseTimestamp(p.Timestamp)
	if err != nil {
		return entity.PriceRecord{}, err
	}

	open, err := parsePrice("open", p.Open)
	if err != nil {
		return entity.PriceRecord{}, err
	}
	high, err := parsePrice("high", p.High)
	if err != nil {
		return entity.PriceRecord{}, err
	}
	low, err := parsePrice("low", p.Low)
	if err != nil {
		return entity.PriceRecord{}, err
	}
	closePrice, err := parsePrice("close", p.Close)
	if err != nil {
		return entity.PriceRecord{}, err
	}

	volume, err := parseVolume(p.Volume)
	if err != nil {
		return entity.PriceRecord{}, err
	}

	return entity.PriceRecord{
		Symbol:    symbol,
		Timestamp: ts,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePrice,
		Volume:    volume,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, &fieldError{field: "timestamp", reason: "missing"}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, &fieldError{field: "timestamp", value: s, reason: "unparsable"}
}

func parsePrice(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, &fieldError{field: field, reason: "missing"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, &fieldError{field: field, value: s, reason: "unparsable"}
	}
	if d.IsNegative() {
		return decimal.Decimal{}, &fieldError{field: field, value: s, reason: "negative"}
	}
	return d, nil
}

func parseVolume(s string) (int64, error) {
	if s == "" {
		return 0, &fieldError{field: "volume", reason: "missing"}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &fieldError{field: "volume", value: s, reason: "unparsable"}
	}
	if v < 0 {
		return 0, &fieldError{field: "volume", value: s, reason: "negative"}
	}
	return v, nil
}

// fieldError describes why a single point was rejected.
type fieldError struct {
	field  string
	value  string
	reason string
}

func (e *fieldError) Error() string {
	if e.value == "" {
		return e.field + " " + e.reason
	}
	return e.field + " " + e.reason + ": " + strconv.Quote(e.value)
}
