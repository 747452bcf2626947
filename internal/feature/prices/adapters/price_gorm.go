// Package adapters provides the storage implementation for the prices
// feature.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_ingest/internal/feature/prices/domain/entity"
	"stock_ingest/internal/feature/prices/usecase"
)

type priceGorm struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*priceGorm)(nil)

// NewPriceRepository creates the gorm-backed price repository.
func NewPriceRepository(db *gorm.DB) *priceGorm {
	return &priceGorm{db: db}
}

// PriceModel is the stock_prices table row. (symbol, timestamp) is the
// natural key; the composite unique index enforces it in storage, so the
// upsert never needs a read-before-write.
type PriceModel struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:32;not null;uniqueIndex:price_sym_time,priority:1"`
	Timestamp time.Time `gorm:"not null;uniqueIndex:price_sym_time,priority:2"`

	Open   decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	High   decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Low    decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Close  decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Volume int64           `gorm:"not null;default:0"`

	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (PriceModel) TableName() string {
	return "stock_prices"
}

func toModel(e entity.PriceRecord) PriceModel {
	return PriceModel{
		Symbol:    e.Symbol,
		Timestamp: e.Timestamp,
		Open:      e.Open,
		High:      e.High,
		Low:       e.Low,
		Close:     e.Close,
		Volume:    e.Volume,
	}
}

// UpsertBatch writes one symbol's records as a single transaction: new
// (symbol, timestamp) rows are inserted, existing ones get their OHLCV
// fields and updated_at overwritten in place. Returns the number of rows
// written. On error the whole batch is rolled back, which keeps a failed
// symbol safely retryable on the next run.
func (r *priceGorm) UpsertBatch(ctx context.Context, records []entity.PriceRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	ms := make([]PriceModel, 0, len(records))
	for _, e := range records {
		ms = append(ms, toModel(e))
	}

	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "timestamp"}},
			DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume", "updated_at"}),
		}).Create(&ms)
		if res.Error != nil {
			return res.Error
		}
		written = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("upsert batch: %w", err)
	}
	return written, nil
}
