package domain

import (
	"time"
)

// StockInfo is the persisted catalog entry for a listed symbol.
type StockInfo struct {
	Code         string    `gorm:"primaryKey" json:"code"`
	Name         string    `json:"name"`
	IconPath     string    `json:"icon_path"`
	IsActive     bool      `json:"is_active" gorm:"index"`   // Still listed
	IsFavorite   bool      `json:"is_favorite" gorm:"index"` // User favorite status
	LastSyncedAt time.Time `json:"last_synced_at"`           // Last icon sync time
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AppConfig represents user-specific configuration (Key-Value)
type AppConfig struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
