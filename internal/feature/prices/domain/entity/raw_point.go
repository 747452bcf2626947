package entity

// RawPoint is a single bar exactly as the market-data provider returned it:
// the bar timestamp plus OHLCV values as unparsed strings. A field the
// provider omitted is an empty string. Nothing is validated here; that is
// the normalizer's job.
type RawPoint struct {
	Timestamp string
	Open      string
	High      string
	Low       string
	Close     string
	Volume    string
}
