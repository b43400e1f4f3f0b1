package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"stockdash/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage caches the symbol catalog locally so the dashboard keeps its
// autocomplete when the catalog endpoint is unreachable.
type Storage struct {
	db *gorm.DB
}

// NewStorage creates a new SQLite storage instance
func NewStorage() (*Storage, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve DB path: %w", err)
	}

	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migration
	if err := db.AutoMigrate(&domain.StockInfo{}, &domain.AppConfig{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// getDBPath resolves the database file path based on OS
func getDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "StockDash", "data", "stockdash.db"), nil
}

// ======================================================================================
// Stock Operations
// ======================================================================================

// UpsertStock creates or updates symbol metadata
func (s *Storage) UpsertStock(info *domain.StockInfo) error {
	return s.db.Save(info).Error
}

// GetStock retrieves symbol metadata by short code
func (s *Storage) GetStock(code string) (*domain.StockInfo, error) {
	var info domain.StockInfo
	err := s.db.First(&info, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Not found is not an error
	}
	return &info, err
}

// ListActiveStocks retrieves all active symbols in code order
func (s *Storage) ListActiveStocks() ([]*domain.StockInfo, error) {
	var stocks []*domain.StockInfo
	err := s.db.Where("is_active = ?", true).Order("code").Find(&stocks).Error
	return stocks, err
}

// ToggleFavorite toggles the favorite status of a symbol
func (s *Storage) ToggleFavorite(code string) (bool, error) {
	var info domain.StockInfo
	if err := s.db.First(&info, "code = ?", code).Error; err != nil {
		return false, err
	}

	info.IsFavorite = !info.IsFavorite
	err := s.db.Save(&info).Error
	return info.IsFavorite, err
}

// DeleteStock deletes a symbol from the database
func (s *Storage) DeleteStock(code string) error {
	return s.db.Where("code = ?", code).Delete(&domain.StockInfo{}).Error
}

// ======================================================================================
// Config Operations
// ======================================================================================

// SaveConfig saves a user configuration
func (s *Storage) SaveConfig(key, value string) error {
	config := domain.AppConfig{
		Key:   key,
		Value: value,
	}
	return s.db.Save(&config).Error
}

// LoadConfigMap loads all user configurations as a map
func (s *Storage) LoadConfigMap() (map[string]string, error) {
	var configs []domain.AppConfig
	if err := s.db.Find(&configs).Error; err != nil {
		return nil, err
	}

	result := make(map[string]string)
	for _, cfg := range configs {
		result[cfg.Key] = cfg.Value
	}
	return result, nil
}
