package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier logs and discards events. It is used when no delivery
// backend is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards events with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// PriceChanged logs and discards a price-change event.
func (n *NoOpNotifier) PriceChanged(_ context.Context, event PriceChange) error {
	n.log.Debug("price change discarded (no backend configured)",
		"user_id", event.UserID,
		"item_id", event.ItemID,
		"pct_change", event.PctChange,
	)
	return nil
}

// ItemRemoved logs and discards a removal event.
func (n *NoOpNotifier) ItemRemoved(_ context.Context, event ItemRemoval) error {
	n.log.Debug("item removal discarded (no backend configured)",
		"user_id", event.UserID,
		"item_id", event.ItemID,
	)
	return nil
}
