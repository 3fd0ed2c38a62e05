package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/temirkanov/avito-watch/internal/avito"
	"github.com/temirkanov/avito-watch/internal/watch"
)

// ItemFetcher is the slice of the market client the tracking endpoints use.
type ItemFetcher interface {
	GetItem(ctx context.Context, itemID string) (*avito.Item, error)
}

// ItemsHandler handles tracked-item operations for the chat frontend.
type ItemsHandler struct {
	registry *watch.Registry
	market   ItemFetcher
}

// NewItemsHandler creates a new ItemsHandler.
func NewItemsHandler(registry *watch.Registry, market ItemFetcher) *ItemsHandler {
	return &ItemsHandler{registry: registry, market: market}
}

// ListItemsInput identifies the user whose items to list.
type ListItemsInput struct {
	UserID int64 `path:"user_id" doc:"Chat user ID"`
}

// ListItemsOutput is the tracked-item list response.
type ListItemsOutput struct {
	Body struct {
		Items []watch.TrackedItem `json:"items" doc:"Tracked items in insertion order"`
	}
}

// List returns a user's tracked items.
func (h *ItemsHandler) List(_ context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	out := &ListItemsOutput{}
	out.Body.Items = h.registry.List(input.UserID)
	if out.Body.Items == nil {
		out.Body.Items = []watch.TrackedItem{}
	}
	return out, nil
}

// TrackInput is the request to start tracking a listing.
type TrackInput struct {
	UserID int64 `path:"user_id" doc:"Chat user ID"`
	Body   struct {
		ItemID string `json:"item_id" minLength:"1" doc:"Listing ID to track" example:"183716401"`
	}
}

// TrackOutput confirms tracking with the starting price.
type TrackOutput struct {
	Body struct {
		ItemID string  `json:"item_id" doc:"Tracked listing ID"`
		Title  string  `json:"title,omitempty" doc:"Listing title"`
		Price  float64 `json:"price" doc:"Price at tracking start"`
	}
}

// Track fetches the listing's current price and registers it for the user.
func (h *ItemsHandler) Track(ctx context.Context, input *TrackInput) (*TrackOutput, error) {
	item, err := h.market.GetItem(ctx, input.Body.ItemID)
	if err != nil {
		return nil, mapMarketError(err)
	}
	if item == nil {
		return nil, huma.Error404NotFound("listing not found: " + input.Body.ItemID)
	}

	if err := h.registry.Add(input.UserID, item.ID, item.Price); err != nil {
		switch {
		case errors.Is(err, watch.ErrWatchLimit):
			return nil, huma.Error409Conflict("watch limit reached, remove a listing first")
		case errors.Is(err, watch.ErrDuplicate):
			return nil, huma.Error409Conflict("listing is already tracked")
		case errors.Is(err, watch.ErrInvalidPrice):
			return nil, huma.Error422UnprocessableEntity("listing has no usable price")
		default:
			return nil, huma.Error500InternalServerError(err.Error())
		}
	}

	out := &TrackOutput{}
	out.Body.ItemID = item.ID
	out.Body.Title = item.Title
	out.Body.Price = item.Price
	return out, nil
}

// UntrackInput identifies the tracked item to remove.
type UntrackInput struct {
	UserID int64  `path:"user_id" doc:"Chat user ID"`
	ItemID string `path:"item_id" doc:"Listing ID to untrack"`
}

// UntrackOutput confirms removal.
type UntrackOutput struct {
	Body struct {
		Removed bool `json:"removed" doc:"Whether the listing was tracked"`
	}
}

// Untrack stops tracking a listing for the user.
func (h *ItemsHandler) Untrack(_ context.Context, input *UntrackInput) (*UntrackOutput, error) {
	if !h.registry.Remove(input.UserID, input.ItemID) {
		return nil, huma.Error404NotFound("listing is not tracked: " + input.ItemID)
	}

	out := &UntrackOutput{}
	out.Body.Removed = true
	return out, nil
}

// RegisterItemRoutes registers tracked-item endpoints with the Huma API.
func RegisterItemRoutes(api huma.API, h *ItemsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-tracked-items",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{user_id}/items",
		Summary:     "List tracked listings",
		Tags:        []string{"items"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "track-item",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{user_id}/items",
		Summary:     "Start tracking a listing",
		Description: "Fetches the listing's current price and adds it to the user's watch set.",
		Tags:        []string{"items"},
		Errors: []int{
			http.StatusNotFound,
			http.StatusConflict,
			http.StatusUnprocessableEntity,
			http.StatusBadGateway,
			http.StatusGatewayTimeout,
		},
	}, h.Track)

	huma.Register(api, huma.Operation{
		OperationID: "untrack-item",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{user_id}/items/{item_id}",
		Summary:     "Stop tracking a listing",
		Tags:        []string{"items"},
		Errors:      []int{http.StatusNotFound},
	}, h.Untrack)
}
