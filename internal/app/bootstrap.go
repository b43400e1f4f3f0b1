package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"stockdash/internal/domain"
	"stockdash/internal/infra"
	"stockdash/internal/infra/storage"
	"stockdash/internal/search"
)

// Bootstrap orchestrates the application startup sequence. Catalog and Repo
// are the interface seams the load/sync paths consume; Initialize binds them
// to the HTTP client and the sqlite store.
type Bootstrap struct {
	Config     *infra.Config
	Repo       domain.StockRepository
	Catalog    domain.CatalogProvider
	Downloader *infra.IconDownloader
	Index      *search.Index
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (DB, Dir, etc.)
func (b *Bootstrap) Initialize() error {
	slog.Info("🚀 Bootstrapping StockDash...")

	// 1. Load Config
	cfg, err := infra.LoadConfig("configs/config.yaml")
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize Storage (DB)
	store, err := storage.NewStorage()
	if err != nil {
		return err
	}
	b.Repo = store
	slog.Info("✅ Database initialized")

	// 4. Catalog client + Icon Downloader
	b.Catalog = infra.NewCatalogClient(cfg.Feed.CatalogURL)

	downloader, err := infra.NewIconDownloader()
	if err != nil {
		return err
	}
	b.Downloader = downloader
	slog.Info("✅ Icon downloader ready")

	return nil
}

// LoadCatalog builds the symbol search index. The remote catalog is the
// source of truth; on failure the sqlite cache from the previous run keeps
// the autocomplete usable offline.
func (b *Bootstrap) LoadCatalog(ctx context.Context) error {
	if b.Catalog == nil {
		return domain.ErrCatalogUnavailable
	}

	entries, err := b.Catalog.Load(ctx)
	if err != nil {
		slog.Warn("Catalog fetch failed, falling back to local cache", slog.Any("error", err))
		cached := b.cachedCatalog()
		if len(cached) == 0 {
			return domain.ErrCatalogUnavailable
		}
		b.Index = search.NewIndex(cached)
		slog.Info("✅ Catalog loaded from cache", slog.Int("symbols", len(cached)))
		return nil
	}

	b.Index = search.NewIndex(entries)
	slog.Info("✅ Catalog loaded", slog.Int("symbols", len(entries)))

	// Refresh the cache for the next offline start.
	go b.cacheCatalog(entries)
	return nil
}

// cachedCatalog rebuilds catalog entries from the persisted symbol metadata.
func (b *Bootstrap) cachedCatalog() []domain.SymbolEntry {
	if b.Repo == nil {
		return nil
	}
	stocks, err := b.Repo.ListActiveStocks()
	if err != nil {
		slog.Error("Catalog cache read failed", slog.Any("error", err))
		return nil
	}
	entries := make([]domain.SymbolEntry, 0, len(stocks))
	for _, st := range stocks {
		entries = append(entries, domain.SymbolEntry{Name: st.Name, ShortCode: st.Code})
	}
	return entries
}

func (b *Bootstrap) cacheCatalog(entries []domain.SymbolEntry) {
	for _, e := range entries {
		info := &domain.StockInfo{
			Code:      e.ShortCode,
			Name:      e.Name,
			IsActive:  true,
			UpdatedAt: time.Now(),
		}
		if existing, _ := b.Repo.GetStock(e.ShortCode); existing != nil {
			info.IsFavorite = existing.IsFavorite
			info.IconPath = existing.IconPath
			info.LastSyncedAt = existing.LastSyncedAt
		}
		if err := b.Repo.UpsertStock(info); err != nil {
			slog.Error("Failed to cache symbol", slog.String("code", e.ShortCode), slog.Any("error", err))
		}
	}
}

// SyncAssets downloads logos for the tracked symbols in the background
// This simulates the "Loading Screen" logic
func (b *Bootstrap) SyncAssets(ctx context.Context) {
	slog.Info("🔄 Starting asset synchronization...")

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 5) // Limit concurrent downloads

	for _, code := range b.Config.Feed.Symbols {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}: // Acquire
			}
			defer func() { <-semaphore }() // Release

			stock, _ := b.Repo.GetStock(code)
			if stock == nil {
				stock = &domain.StockInfo{Code: code, Name: code, IsActive: true}
			}
			if stock.IconPath != "" {
				return // already synced
			}

			path, err := b.Downloader.DownloadIcon(code)
			if err != nil {
				slog.Warn("Failed to download icon", slog.String("code", code), slog.Any("error", err))
				return
			}
			if path != "" {
				stock.IconPath = path
				stock.LastSyncedAt = time.Now()
				if err := b.Repo.UpsertStock(stock); err != nil {
					slog.Error("Failed to record icon path", slog.String("code", code), slog.Any("error", err))
				}
			}
		}(code)
	}

	wg.Wait()
	slog.Info("✨ Asset synchronization completed")
}
