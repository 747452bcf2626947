package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stock_ingest/internal/feature/prices/domain/entity"
)

func validPoint(ts string) entity.RawPoint {
	return entity.RawPoint{
		Timestamp: ts,
		Open:      "150.00",
		High:      "155.00",
		Low:       "149.00",
		Close:     "154.50",
		Volume:    "1000000",
	}
}

func TestNormalizer_Normalize_ValidPoints(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil)

	records, dropped := n.Normalize("AAPL", []entity.RawPoint{
		validPoint("2025-01-15 15:00:00"),
		validPoint("2025-01-15 16:00:00"),
	})

	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	rec := records[0]
	if rec.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", rec.Symbol)
	}
	want := time.Date(2025, 1, 15, 15, 0, 0, 0, time.UTC)
	if !rec.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", rec.Timestamp, want)
	}
	if !rec.Open.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("Open = %v, want 150.00", rec.Open)
	}
	if !rec.Close.Equal(decimal.RequireFromString("154.50")) {
		t.Errorf("Close = %v, want 154.50", rec.Close)
	}
	if rec.Volume != 1000000 {
		t.Errorf("Volume = %d, want 1000000", rec.Volume)
	}
}

func TestNormalizer_Normalize_DateOnlyTimestamp(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil)

	records, dropped := n.Normalize("AAPL", []entity.RawPoint{validPoint("2025-01-15")})

	if dropped != 0 || len(records) != 1 {
		t.Fatalf("got %d records with %d dropped, want 1 and 0", len(records), dropped)
	}
	want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if !records[0].Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", records[0].Timestamp, want)
	}
}

func TestNormalizer_Normalize_UppercasesSymbol(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil)

	records, _ := n.Normalize(" aapl ", []entity.RawPoint{validPoint("2025-01-15")})

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", records[0].Symbol)
	}
}

func TestNormalizer_Normalize_DropsMalformedPoints(t *testing.T) {
	t.Parallel()

	malform := func(mutate func(*entity.RawPoint)) entity.RawPoint {
		p := validPoint("2025-01-15 15:00:00")
		mutate(&p)
		return p
	}

	tests := []struct {
		name  string
		point entity.RawPoint
	}{
		{"missing timestamp", malform(func(p *entity.RawPoint) { p.Timestamp = "" })},
		{"unparsable timestamp", malform(func(p *entity.RawPoint) { p.Timestamp = "not-a-date" })},
		{"missing open", malform(func(p *entity.RawPoint) { p.Open = "" })},
		{"unparsable high", malform(func(p *entity.RawPoint) { p.High = "abc" })},
		{"negative low", malform(func(p *entity.RawPoint) { p.Low = "-1.50" })},
		{"unparsable close", malform(func(p *entity.RawPoint) { p.Close = "154,50" })},
		{"missing volume", malform(func(p *entity.RawPoint) { p.Volume = "" })},
		{"fractional volume", malform(func(p *entity.RawPoint) { p.Volume = "100.5" })},
		{"negative volume", malform(func(p *entity.RawPoint) { p.Volume = "-100" })},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := NewNormalizer(nil)

			records, dropped := n.Normalize("AAPL", []entity.RawPoint{tt.point})

			if dropped != 1 {
				t.Errorf("dropped = %d, want 1", dropped)
			}
			if len(records) != 0 {
				t.Errorf("got %d records, want 0", len(records))
			}
		})
	}
}

func TestNormalizer_Normalize_OneBadAmongFive(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil)

	points := []entity.RawPoint{
		validPoint("2025-01-15 11:00:00"),
		validPoint("2025-01-15 12:00:00"),
		{Timestamp: "2025-01-15 13:00:00", Open: "garbage", High: "1", Low: "1", Close: "1", Volume: "1"},
		validPoint("2025-01-15 14:00:00"),
		validPoint("2025-01-15 15:00:00"),
	}

	records, dropped := n.Normalize("AAPL", points)

	if len(records) != 4 {
		t.Errorf("got %d records, want 4", len(records))
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
}

func TestNormalizer_Normalize_EmptyInput(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil)

	records, dropped := n.Normalize("AAPL", nil)

	if len(records) != 0 || dropped != 0 {
		t.Errorf("got %d records with %d dropped, want 0 and 0", len(records), dropped)
	}
}

func TestNormalizer_Normalize_PassesThroughInvertedHighLow(t *testing.T) {
	t.Parallel()

	// Upstream data sometimes violates high >= low; values pass through
	// untouched as long as they are numeric.
	n := NewNormalizer(nil)

	p := validPoint("2025-01-15 15:00:00")
	p.High = "100.00"
	p.Low = "200.00"

	records, dropped := n.Normalize("AAPL", []entity.RawPoint{p})

	if dropped != 0 || len(records) != 1 {
		t.Fatalf("got %d records with %d dropped, want 1 and 0", len(records), dropped)
	}
	if !records[0].High.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("High = %v, want 100.00", records[0].High)
	}
	if !records[0].Low.Equal(decimal.RequireFromString("200.00")) {
		t.Errorf("Low = %v, want 200.00", records[0].Low)
	}
}
