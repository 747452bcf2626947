// Package db opens the gorm Postgres connection used by the pipeline.
package db

import (
	"fmt"
	"log/slog"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	pricesadapters "stock_ingest/internal/feature/prices/adapters"
	symbolentity "stock_ingest/internal/feature/symbols/domain/entity"
	"stock_ingest/internal/platform/config"
)

const (
	connectWindow = 60 * time.Second
	connectPause  = 3 * time.Second
)

// Open connects to Postgres, retrying within a fixed window so a database
// that is still starting up does not fail the run immediately.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.DSN()

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(connectWindow)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("connect to database after %s: %w", connectWindow, err)
		}
		slog.Warn("database connect failed, retrying", "error", err)
		time.Sleep(connectPause)
	}
}

// Migrate creates or updates the tables the pipeline writes and reads.
// Opt-in: production schemas are expected to be managed externally.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&pricesadapters.PriceModel{},
		&symbolentity.Symbol{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
