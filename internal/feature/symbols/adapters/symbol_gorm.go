// Package adapters provides the repository implementation for the symbols
// feature.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"stock_ingest/internal/feature/symbols/domain/entity"
	"stock_ingest/internal/feature/symbols/domain/repository"
)

type symbolGorm struct {
	db *gorm.DB
}

var _ repository.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository creates the gorm-backed symbol catalog repository.
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// ListActive returns all active symbols ordered by sort_key.
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// ListActiveCodes returns only the codes of active symbols ordered by
// sort_key.
func (r *symbolGorm) ListActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}
