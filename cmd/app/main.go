package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"stockdash/internal/app"
	"stockdash/internal/domain"
	"stockdash/internal/engine"
	"stockdash/internal/event"
	"stockdash/internal/feed"
	"stockdash/internal/infra"
	"stockdash/internal/infra/kis"
	"stockdash/internal/render"
	"stockdash/internal/search"
	"stockdash/internal/service"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	// 1. Pprof Server (for performance profiling)
	go func() {
		// Localhost only for security
		slog.Info("🕵️ Pprof server started on localhost:6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Error("Pprof server failed", slog.Any("error", err))
		}
	}()

	// 2. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := bootstrap.Config

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Symbol catalog + background asset sync
	if err := bootstrap.LoadCatalog(ctx); err != nil {
		// Autocomplete degrades; raw codes still connect.
		slog.Warn("Running without symbol catalog", slog.Any("error", err))
	}
	go bootstrap.SyncAssets(ctx)

	// 5. Render surface and views
	surface := render.NewMemorySurface()
	flasher := render.NewFlasher(surface, infra.GlobalMetrics)
	if cfg.UI.FlashCooldownMS > 0 {
		flasher.SetCooldown(time.Duration(cfg.UI.FlashCooldownMS) * time.Millisecond)
	}

	event.Warmup()

	// Per-channel sequence and generation counters. Each session bumps its
	// own generation on connect/disconnect so the dispatcher can discard
	// frames a superseded connection left in flight.
	var seq, detailGen, heatmapGen atomic.Uint64

	var detailView *service.DetailView
	var heatmapView *service.HeatmapView

	detailSession := kis.NewDetailSession(cfg.Feed.DetailWSURL, nil, &seq, &detailGen,
		func(state kis.State, detail string) {
			if detailView != nil {
				detailView.SetStatus(state.String())
			}
			slog.Info("Detail session state", slog.String("state", state.String()), slog.String("detail", detail))
		})
	heatmapSession := kis.NewHeatmapSession(cfg.Feed.HeatmapWSURL, cfg.Feed.Symbols, nil, &seq, &heatmapGen,
		func(state kis.State, detail string) {
			slog.Info("Heatmap session state", slog.String("state", state.String()), slog.String("detail", detail))
		})

	detailView = service.NewDetailView(surface, flasher, detailSession)
	detailView.SetTapeDepth(cfg.UI.TapeDepth)
	heatmapView = service.NewHeatmapView(surface, heatmapSession, func(reason string) {
		// Theme membership changed server-side. Incremental diffing is not
		// attempted; a full restart of the shared stream re-seeds the grid.
		slog.Info("Theme change announced, reloading heatmap", slog.String("reason", reason))
		heatmapSession.Disconnect()
		if err := heatmapView.Start(ctx); err != nil {
			slog.Error("Heatmap reload failed", slog.Any("error", err))
		}
	})

	// 6. Engine (single-goroutine hotpath)
	dispatcher := engine.NewDispatcher(1024, map[event.Channel]engine.ChannelRoute{
		event.ChannelDetail:  {Router: feed.NewRouter(detailView.Handlers(), infra.GlobalMetrics), Gen: &detailGen},
		event.ChannelHeatmap: {Router: feed.NewRouter(heatmapView.Handlers(), infra.GlobalMetrics), Gen: &heatmapGen},
	}, flasher)
	detailSession.SetInbox(dispatcher.Inbox())
	heatmapSession.SetInbox(dispatcher.Inbox())

	go dispatcher.Run(ctx)
	slog.InfoContext(ctx, "✅ Dispatcher (Hotpath) started")

	// 7. Seed the heatmap from cached symbol metadata, then connect streams
	heatmapView.Seed(seedBlocks(bootstrap, cfg.Feed.Symbols))
	if err := heatmapView.Start(ctx); err != nil {
		slog.Error("Failed to start heatmap stream", slog.Any("error", err))
	}
	defer heatmapView.Close()

	// Symbol input path: queries and commits run through the autocomplete
	// controller; the first tracked symbol opens the detail view on start.
	searchBox := service.NewSearchBox(surface, bootstrap.Index, cfg.UI.QueryLimit)
	if len(cfg.Feed.Symbols) > 0 {
		code := cfg.Feed.Symbols[0]
		searchBox.SetQuery(code)
		entry, ok := searchBox.HandleKey(search.KeyEnter)
		if !ok {
			// Not in the catalog; connect with the raw code anyway.
			entry = domain.SymbolEntry{Name: code, ShortCode: code}
		}
		if err := detailView.ShowStock(ctx, entry); err != nil {
			slog.Error("Failed to open detail view", slog.String("code", entry.ShortCode), slog.Any("error", err))
		}
		defer detailView.Close()
	}

	slog.InfoContext(ctx, "✨ StockDash fully operational. Press Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	slog.InfoContext(ctx, "👋 Shutting down gracefully...")
}

// seedBlocks builds the initial heatmap block set for the tracked codes.
// Names come from the cached catalog when available; rates start at zero and
// correct themselves on the first stock_update.
func seedBlocks(b *app.Bootstrap, codes []string) []domain.ThemeBlock {
	blocks := make([]domain.ThemeBlock, 0, len(codes))
	for _, code := range codes {
		name := code
		if stock, _ := b.Repo.GetStock(code); stock != nil && stock.Name != "" {
			name = stock.Name
		}
		blocks = append(blocks, domain.ThemeBlock{Code: code, Name: name})
	}
	return blocks
}
