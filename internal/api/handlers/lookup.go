package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/temirkanov/avito-watch/internal/avito"
)

// Lookup is the slice of the market client the reference endpoints use.
type Lookup interface {
	Categories(ctx context.Context) ([]avito.Category, error)
	Locations(ctx context.Context, query string) ([]avito.Location, error)
}

// LookupHandler serves category and location reference data.
type LookupHandler struct {
	market Lookup
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(market Lookup) *LookupHandler {
	return &LookupHandler{market: market}
}

// CategoriesOutput lists marketplace categories.
type CategoriesOutput struct {
	Body struct {
		Categories []avito.Category `json:"categories"`
	}
}

// Categories returns the marketplace category list.
func (h *LookupHandler) Categories(ctx context.Context, _ *struct{}) (*CategoriesOutput, error) {
	categories, err := h.market.Categories(ctx)
	if err != nil {
		return nil, mapMarketError(err)
	}

	out := &CategoriesOutput{}
	out.Body.Categories = categories
	if out.Body.Categories == nil {
		out.Body.Categories = []avito.Category{}
	}
	return out, nil
}

// LocationsInput carries the location search query.
type LocationsInput struct {
	Query string `query:"query" minLength:"1" doc:"Location name to search" example:"Москва"`
}

// LocationsOutput lists matching locations.
type LocationsOutput struct {
	Body struct {
		Locations []avito.Location `json:"locations"`
	}
}

// Locations searches marketplace locations by name.
func (h *LookupHandler) Locations(ctx context.Context, input *LocationsInput) (*LocationsOutput, error) {
	locations, err := h.market.Locations(ctx, input.Query)
	if err != nil {
		return nil, mapMarketError(err)
	}

	out := &LocationsOutput{}
	out.Body.Locations = locations
	if out.Body.Locations == nil {
		out.Body.Locations = []avito.Location{}
	}
	return out, nil
}

// RegisterLookupRoutes registers reference-data endpoints with the Huma API.
func RegisterLookupRoutes(api huma.API, h *LookupHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List marketplace categories",
		Tags:        []string{"lookup"},
		Errors:      []int{http.StatusBadGateway, http.StatusGatewayTimeout},
	}, h.Categories)

	huma.Register(api, huma.Operation{
		OperationID: "search-locations",
		Method:      http.MethodGet,
		Path:        "/api/v1/locations",
		Summary:     "Search marketplace locations",
		Tags:        []string{"lookup"},
		Errors:      []int{http.StatusBadGateway, http.StatusGatewayTimeout},
	}, h.Locations)
}
