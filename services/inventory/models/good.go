package models

import (
	"time"

	"github.com/google/uuid"
)

// ValidCategories enumerates the catalog categories a good may belong to.
var ValidCategories = []string{"food", "clothes", "accessories", "electronics"}

// Good is a catalog entry with its stock counter. CountInStock never goes
// below zero: decrements are rejected, not clamped.
type Good struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	Category     string    `gorm:"type:varchar(20);not null" json:"category"`
	PricePerItem float64   `gorm:"not null" json:"price_per_item"`
	Description  string    `json:"description"`
	CountInStock int       `gorm:"not null;default:0" json:"count_in_stock"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CategoryValid reports whether category is one of the known values.
func CategoryValid(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}
