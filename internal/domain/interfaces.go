package domain

import "context"

// FeedSession defines the interface for streaming-feed connectors.
type FeedSession interface {
	Connect(ctx context.Context, code string) error
	Disconnect()
	IsConnected() bool
}

// CatalogProvider defines how the symbol catalog is obtained.
type CatalogProvider interface {
	Load(ctx context.Context) ([]SymbolEntry, error)
}

// StockRepository defines how to access persisted symbol metadata.
type StockRepository interface {
	UpsertStock(info *StockInfo) error
	GetStock(code string) (*StockInfo, error)
	ListActiveStocks() ([]*StockInfo, error)
}
