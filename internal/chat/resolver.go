package chat

import (
	"context"
	"strings"

	"github.com/temirkanov/avito-watch/internal/avito"
)

// Resolver turns human category and location names from chat input into the
// ids the search endpoint expects.
type Resolver struct {
	market avito.MarketClient
}

// NewResolver creates a resolver backed by the market client.
func NewResolver(market avito.MarketClient) *Resolver {
	return &Resolver{market: market}
}

// Criteria builds search criteria from a parsed query, resolving names along
// the way. Unresolvable names are dropped so the search still runs without
// that filter instead of failing outright.
func (r *Resolver) Criteria(ctx context.Context, q SearchQuery) (avito.SearchCriteria, error) {
	criteria := avito.SearchCriteria{
		Query:     q.Query,
		PriceFrom: q.PriceFrom,
		PriceTo:   q.PriceTo,
	}

	if q.Category != "" {
		id, err := r.categoryID(ctx, q.Category)
		if err != nil {
			return avito.SearchCriteria{}, err
		}
		criteria.CategoryID = id
	}

	if q.Location != "" {
		id, err := r.locationID(ctx, q.Location)
		if err != nil {
			return avito.SearchCriteria{}, err
		}
		criteria.LocationID = id
	}

	return criteria, nil
}

func (r *Resolver) categoryID(ctx context.Context, name string) (int, error) {
	categories, err := r.market.Categories(ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c.ID, nil
		}
	}
	return 0, nil
}

func (r *Resolver) locationID(ctx context.Context, name string) (int, error) {
	locations, err := r.market.Locations(ctx, name)
	if err != nil {
		return 0, err
	}
	for _, l := range locations {
		if strings.EqualFold(l.Name, name) {
			return l.ID, nil
		}
	}
	return 0, nil
}
