// Package notify defines the outbound notification events the core emits
// and the delivery implementations for them.
package notify

import "context"

// Direction indicates which way a price moved.
type Direction string

// Direction constants.
const (
	DirectionIncreased Direction = "increased"
	DirectionDecreased Direction = "decreased"
)

// PriceChange is emitted when a tracked listing's price moved beyond the
// user's threshold.
type PriceChange struct {
	UserID    int64     `json:"user_id"`
	ItemID    string    `json:"item_id"`
	Title     string    `json:"title,omitempty"`
	OldPrice  float64   `json:"old_price"`
	NewPrice  float64   `json:"new_price"`
	PctChange float64   `json:"pct_change"`
	Direction Direction `json:"direction"`
}

// ItemRemoval is emitted when a tracked listing has vanished and was
// dropped from the registry.
type ItemRemoval struct {
	UserID int64  `json:"user_id"`
	ItemID string `json:"item_id"`
}

// Notifier delivers notification events to the presentation layer.
type Notifier interface {
	PriceChanged(ctx context.Context, event PriceChange) error
	ItemRemoved(ctx context.Context, event ItemRemoval) error
}
