package notify

import "context"

// ChanNotifier publishes events onto a buffered channel. Embedders (and
// tests) consume Events directly instead of going through a webhook.
type ChanNotifier struct {
	events chan any
}

// NewChanNotifier creates a channel notifier with the given buffer size.
func NewChanNotifier(buffer int) *ChanNotifier {
	return &ChanNotifier{events: make(chan any, buffer)}
}

// Events returns the receive side of the event channel. Values are
// PriceChange or ItemRemoval.
func (n *ChanNotifier) Events() <-chan any {
	return n.events
}

// PriceChanged publishes a price-change event, dropping it if the buffer is
// full rather than stalling the poll cycle.
func (n *ChanNotifier) PriceChanged(ctx context.Context, event PriceChange) error {
	return n.send(ctx, event)
}

// ItemRemoved publishes a removal event.
func (n *ChanNotifier) ItemRemoved(ctx context.Context, event ItemRemoval) error {
	return n.send(ctx, event)
}

func (n *ChanNotifier) send(ctx context.Context, event any) error {
	select {
	case n.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil // full buffer: drop instead of blocking the cycle
	}
}
