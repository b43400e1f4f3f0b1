package storage

import (
	"os"
	"testing"
	"time"

	"stockdash/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *Storage {
	dbName := "test.db"
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(&domain.StockInfo{}, &domain.AppConfig{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		os.Remove(dbName)
	})

	return &Storage{db: db}
}

func TestUpsertAndGetStock(t *testing.T) {
	s := setupTestDB(t)

	info := &domain.StockInfo{
		Code:      "005930",
		Name:      "Samsung Electronics",
		IsActive:  true,
		UpdatedAt: time.Now(),
	}

	// 1. Create
	if err := s.UpsertStock(info); err != nil {
		t.Fatalf("UpsertStock failed: %v", err)
	}

	// 2. Get
	fetched, err := s.GetStock("005930")
	if err != nil {
		t.Fatalf("GetStock failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("fetched stock is nil")
	}
	if fetched.Name != "Samsung Electronics" {
		t.Errorf("expected Samsung Electronics, got %s", fetched.Name)
	}
}

func TestUpdateStock(t *testing.T) {
	s := setupTestDB(t)
	info := &domain.StockInfo{Code: "000660", Name: "Before"}
	s.UpsertStock(info)

	// Update
	info.Name = "After"
	if err := s.UpsertStock(info); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	fetched, _ := s.GetStock("000660")
	if fetched.Name != "After" {
		t.Errorf("expected name 'After', got '%s'", fetched.Name)
	}
}

func TestListActiveStocks(t *testing.T) {
	s := setupTestDB(t)
	s.UpsertStock(&domain.StockInfo{Code: "005930", Name: "Samsung", IsActive: true})
	s.UpsertStock(&domain.StockInfo{Code: "000660", Name: "SK Hynix", IsActive: true})
	s.UpsertStock(&domain.StockInfo{Code: "999999", Name: "Delisted", IsActive: false})

	stocks, err := s.ListActiveStocks()
	if err != nil {
		t.Fatalf("ListActiveStocks failed: %v", err)
	}
	if len(stocks) != 2 {
		t.Fatalf("expected 2 active stocks, got %d", len(stocks))
	}
	// Code order
	if stocks[0].Code != "000660" || stocks[1].Code != "005930" {
		t.Errorf("unexpected order: %v, %v", stocks[0].Code, stocks[1].Code)
	}
}

func TestToggleFavorite(t *testing.T) {
	s := setupTestDB(t)
	s.UpsertStock(&domain.StockInfo{Code: "005930", IsFavorite: false})

	isFav, err := s.ToggleFavorite("005930")
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if !isFav {
		t.Error("expected IsFavorite to be true")
	}

	isFav, _ = s.ToggleFavorite("005930")
	if isFav {
		t.Error("expected IsFavorite to be false")
	}
}

func TestDeleteStock(t *testing.T) {
	s := setupTestDB(t)
	s.UpsertStock(&domain.StockInfo{Code: "005930", Name: "Delete Me"})

	if err := s.DeleteStock("005930"); err != nil {
		t.Fatalf("DeleteStock failed: %v", err)
	}

	fetched, err := s.GetStock("005930")
	if err != nil {
		t.Fatalf("GetStock after delete failed: %v", err)
	}
	if fetched != nil {
		t.Error("expected stock to be deleted, but found record")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	s := setupTestDB(t)

	if err := s.SaveConfig("last_code", "005930"); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	m, err := s.LoadConfigMap()
	if err != nil {
		t.Fatalf("LoadConfigMap failed: %v", err)
	}
	if m["last_code"] != "005930" {
		t.Errorf("expected 005930, got %s", m["last_code"])
	}
}
