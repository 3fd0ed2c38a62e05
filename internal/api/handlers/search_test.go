package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirkanov/avito-watch/internal/api/handlers"
	"github.com/temirkanov/avito-watch/internal/avito"
)

// fakeSearcher records the criteria and returns a canned result.
type fakeSearcher struct {
	result   *avito.SearchResult
	err      error
	criteria avito.SearchCriteria
}

func (f *fakeSearcher) Search(_ context.Context, criteria avito.SearchCriteria) (*avito.SearchResult, error) {
	f.criteria = criteria
	return f.result, f.err
}

func newSearchAPI(t *testing.T, searcher *fakeSearcher) humatest.TestAPI {
	t.Helper()

	_, api := humatest.New(t)
	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(searcher))
	return api
}

func TestSearchHandler_Search(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{result: &avito.SearchResult{
		Items: []avito.Item{
			{ID: "101", Title: "iPhone 13", Price: 45000, Location: "Москва"},
		},
		Total: 1,
	}}

	api := newSearchAPI(t, searcher)

	resp := api.Post("/api/v1/search", map[string]any{
		"query":       "iphone",
		"category_id": 24,
		"location_id": 637640,
		"price_from":  10000,
		"price_to":    60000,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"iPhone 13"`)
	assert.Contains(t, resp.Body.String(), `"total":1`)

	assert.Equal(t, "iphone", searcher.criteria.Query)
	assert.Equal(t, 24, searcher.criteria.CategoryID)
	assert.Equal(t, 637640, searcher.criteria.LocationID)
	assert.Equal(t, 10000, searcher.criteria.PriceFrom)
	assert.Equal(t, 60000, searcher.criteria.PriceTo)
}

func TestSearchHandler_EmptyResult(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{result: &avito.SearchResult{}}

	api := newSearchAPI(t, searcher)

	resp := api.Post("/api/v1/search", map[string]any{"query": "nothing"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"items":[]`)
}

func TestSearchHandler_UpstreamErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "retries exhausted",
			err:        &avito.RetryExhaustedError{Endpoint: "/items", Attempts: 3},
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "upstream rejected request",
			err:        &avito.APIError{Status: http.StatusBadRequest, Body: "bad query"},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "credentials rejected",
			err:        &avito.AuthError{Status: http.StatusForbidden, Body: "invalid_client"},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newSearchAPI(t, &fakeSearcher{err: tt.err})

			resp := api.Post("/api/v1/search", map[string]any{"query": "x"})
			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}
