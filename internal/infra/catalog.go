package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stockdash/internal/domain"
)

// catalogResponse is the symbol catalog payload shape.
type catalogResponse struct {
	Results []struct {
		Name      string `json:"name"`
		ShortCode string `json:"short_code"`
	} `json:"results"`
}

// CatalogClient fetches the symbol catalog over HTTP. The catalog is loaded
// once at startup; failure degrades autocomplete to unavailable without
// touching connectivity.
type CatalogClient struct {
	url        string
	httpClient *http.Client
}

// NewCatalogClient creates a catalog client for the given URL.
func NewCatalogClient(url string) *CatalogClient {
	return &CatalogClient{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Load fetches and decodes the catalog. Entries with an empty short code
// are skipped.
func (c *CatalogClient) Load(ctx context.Context) ([]domain.SymbolEntry, error) {
	if c.url == "" {
		return nil, domain.ErrCatalogUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewNetworkError("catalog fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch: bad status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, domain.NewNetworkError("catalog read", err)
	}

	var decoded catalogResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("catalog decode: %w", err)
	}

	entries := make([]domain.SymbolEntry, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		if r.ShortCode == "" {
			continue
		}
		entries = append(entries, domain.SymbolEntry{Name: r.Name, ShortCode: r.ShortCode})
	}
	return entries, nil
}
