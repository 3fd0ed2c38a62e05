package avito

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	defaultSort    = "date"
	defaultPerPage = 50
)

// Requester abstracts the executor for the market client.
type Requester interface {
	Execute(ctx context.Context, method, endpoint string, query url.Values, body any) (json.RawMessage, error)
}

// Market implements MarketClient as thin typed wrappers over the executor.
type Market struct {
	exec Requester
}

// NewMarket creates a market client on top of exec.
func NewMarket(exec Requester) *Market {
	return &Market{exec: exec}
}

// Search queries listings. Unset optional criteria fields are omitted from
// the request rather than sent as empty values.
func (m *Market) Search(ctx context.Context, criteria SearchCriteria) (*SearchResult, error) {
	page := criteria.Page
	if page <= 0 {
		page = 1
	}
	perPage := criteria.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	sortBy := criteria.SortBy
	if sortBy == "" {
		sortBy = defaultSort
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("sort_by", sortBy)

	if criteria.CategoryID > 0 {
		params.Set("category_id", strconv.Itoa(criteria.CategoryID))
	}
	if criteria.LocationID > 0 {
		params.Set("location_id", strconv.Itoa(criteria.LocationID))
	}
	if criteria.Query != "" {
		params.Set("query", criteria.Query)
	}
	if criteria.PriceFrom > 0 {
		params.Set("price_from", strconv.Itoa(criteria.PriceFrom))
	}
	if criteria.PriceTo > 0 {
		params.Set("price_to", strconv.Itoa(criteria.PriceTo))
	}

	raw, err := m.exec.Execute(ctx, http.MethodGet, "/items", params, nil)
	if err != nil {
		return nil, err
	}

	var result SearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return &result, nil
}

// GetItem fetches listing detail. A 2xx response with an empty or null body
// means the listing is unavailable; callers get (nil, nil) for that case.
func (m *Market) GetItem(ctx context.Context, itemID string) (*Item, error) {
	raw, err := m.exec.Execute(ctx, http.MethodGet, "/items/"+itemID, nil, nil)
	if err != nil {
		return nil, err
	}

	if emptyJSON(raw) {
		return nil, nil
	}

	var item Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("parsing item response: %w", err)
	}
	if item.ID == "" {
		item.ID = itemID
	}
	return &item, nil
}

// GetItemStats fetches view/contact counters for a listing.
func (m *Market) GetItemStats(ctx context.Context, itemID string) (*ItemStats, error) {
	raw, err := m.exec.Execute(ctx, http.MethodGet, "/items/"+itemID+"/stats", nil, nil)
	if err != nil {
		return nil, err
	}

	var stats ItemStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("parsing item stats response: %w", err)
	}
	return &stats, nil
}

// Categories fetches the category list.
func (m *Market) Categories(ctx context.Context) ([]Category, error) {
	raw, err := m.exec.Execute(ctx, http.MethodGet, "/categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var categories []Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("parsing categories response: %w", err)
	}
	return categories, nil
}

// Locations searches locations matching query.
func (m *Market) Locations(ctx context.Context, query string) ([]Location, error) {
	params := url.Values{}
	params.Set("query", query)

	raw, err := m.exec.Execute(ctx, http.MethodGet, "/locations", params, nil)
	if err != nil {
		return nil, err
	}

	var locations []Location
	if err := json.Unmarshal(raw, &locations); err != nil {
		return nil, fmt.Errorf("parsing locations response: %w", err)
	}
	return locations, nil
}

func emptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}
	switch string(trimmed) {
	case "null", "{}":
		return true
	}
	return false
}
