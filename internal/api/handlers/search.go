package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/temirkanov/avito-watch/internal/avito"
)

// Searcher is the slice of the market client the search endpoint uses.
type Searcher interface {
	Search(ctx context.Context, criteria avito.SearchCriteria) (*avito.SearchResult, error)
}

// SearchHandler proxies listing searches to the marketplace API.
type SearchHandler struct {
	market Searcher
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(market Searcher) *SearchHandler {
	return &SearchHandler{market: market}
}

// SearchInput is the request body for the search endpoint.
type SearchInput struct {
	Body struct {
		Query      string `json:"query,omitempty" doc:"Search keywords" example:"iphone 13"`
		CategoryID int    `json:"category_id,omitempty" minimum:"1" doc:"Category ID filter"`
		LocationID int    `json:"location_id,omitempty" minimum:"1" doc:"Location ID filter"`
		PriceFrom  int    `json:"price_from,omitempty" minimum:"1" doc:"Minimum price"`
		PriceTo    int    `json:"price_to,omitempty" minimum:"1" doc:"Maximum price"`
		SortBy     string `json:"sort_by,omitempty" doc:"Sort order (default date)" example:"date"`
		Page       int    `json:"page,omitempty" minimum:"1" doc:"Result page (default 1)"`
		PerPage    int    `json:"per_page,omitempty" minimum:"1" doc:"Page size (default 50)"`
	}
}

// SearchOutput is the response body for the search endpoint.
type SearchOutput struct {
	Body struct {
		Items []avito.Item `json:"items" doc:"Matching listings"`
		Total int          `json:"total" doc:"Total matching listings"`
	}
}

// Search runs a single-page listing search.
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	result, err := h.market.Search(ctx, avito.SearchCriteria{
		Query:      input.Body.Query,
		CategoryID: input.Body.CategoryID,
		LocationID: input.Body.LocationID,
		PriceFrom:  input.Body.PriceFrom,
		PriceTo:    input.Body.PriceTo,
		SortBy:     input.Body.SortBy,
		Page:       input.Body.Page,
		PerPage:    input.Body.PerPage,
	})
	if err != nil {
		return nil, mapMarketError(err)
	}

	out := &SearchOutput{}
	out.Body.Items = result.Items
	if out.Body.Items == nil {
		out.Body.Items = []avito.Item{}
	}
	out.Body.Total = result.Total
	return out, nil
}

// RegisterSearchRoutes registers search endpoints with the Huma API.
func RegisterSearchRoutes(api huma.API, h *SearchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-listings",
		Method:      http.MethodPost,
		Path:        "/api/v1/search",
		Summary:     "Search marketplace listings",
		Description: "Proxies a single-page search to the marketplace API.",
		Tags:        []string{"search"},
		Errors:      []int{http.StatusBadGateway, http.StatusGatewayTimeout},
	}, h.Search)
}
