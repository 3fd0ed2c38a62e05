// Package avito provides a resilient Avito marketplace API client abstracted
// behind interfaces for testability. The client layers a typed method surface
// over a retrying request executor, which in turn drives a pooled HTTP
// transport and a client-credentials token manager.
package avito

import (
	"context"
)

// SearchCriteria defines the parameters for a listing search. Zero-valued
// optional fields are omitted from the request entirely rather than sent
// as empty values.
type SearchCriteria struct {
	Query      string
	CategoryID int
	LocationID int
	PriceFrom  int
	PriceTo    int
	SortBy     string // default "date"
	Page       int    // default 1
	PerPage    int    // default 50
}

// SearchResult holds one page of listing search results.
type SearchResult struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
}

// MarketClient defines the typed method surface for the marketplace API.
type MarketClient interface {
	Search(ctx context.Context, criteria SearchCriteria) (*SearchResult, error)
	// GetItem returns (nil, nil) when the listing is unavailable.
	GetItem(ctx context.Context, itemID string) (*Item, error)
	GetItemStats(ctx context.Context, itemID string) (*ItemStats, error)
	Categories(ctx context.Context) ([]Category, error)
	Locations(ctx context.Context, query string) ([]Location, error)
}

// TokenProvider defines the interface for obtaining bearer tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
