// Package entity defines the domain models for the symbols feature.
package entity

import "time"

// Symbol represents one entry of the ticker catalog. When no explicit
// symbol list is configured, the active catalog entries in sort-key order
// become the run's symbol list.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Market    string    `gorm:"size:100;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
