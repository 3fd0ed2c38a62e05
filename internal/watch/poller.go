package watch

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/temirkanov/avito-watch/internal/avito"
	"github.com/temirkanov/avito-watch/internal/metrics"
	"github.com/temirkanov/avito-watch/internal/notify"
)

// ItemFetcher is the slice of the market client the poller needs.
type ItemFetcher interface {
	GetItem(ctx context.Context, itemID string) (*avito.Item, error)
}

// Poller re-fetches every tracked item once per cycle, compares prices
// against the last notified price, and emits notification events when the
// percentage delta crosses the threshold.
type Poller struct {
	market    ItemFetcher
	registry  *Registry
	notifier  notify.Notifier
	threshold float64
	log       *slog.Logger
}

// PollerOption configures the Poller.
type PollerOption func(*Poller)

// WithPollerLogger sets a custom logger.
func WithPollerLogger(l *slog.Logger) PollerOption {
	return func(p *Poller) {
		p.log = l
	}
}

// NewPoller creates a poller firing events at the given absolute percentage
// threshold.
func NewPoller(
	market ItemFetcher,
	registry *Registry,
	notifier notify.Notifier,
	threshold float64,
	opts ...PollerOption,
) *Poller {
	p := &Poller{
		market:    market,
		registry:  registry,
		notifier:  notifier,
		threshold: threshold,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunCycle processes one full pass over all tracked items. Per-item failures
// are logged and do not abort the rest of the cycle; the cycle always runs
// to completion.
func (p *Poller) RunCycle(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.PollCycleDuration.Observe(time.Since(start).Seconds())
	}()

	entries := p.registry.Snapshot()
	if len(entries) == 0 {
		return
	}

	p.log.Debug("poll cycle starting", "items", len(entries))

	for _, entry := range entries {
		if ctx.Err() != nil {
			p.log.Warn("poll cycle interrupted", "error", ctx.Err())
			return
		}
		p.checkItem(ctx, entry)
	}

	p.log.Debug("poll cycle complete",
		"items", len(entries),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (p *Poller) checkItem(ctx context.Context, entry Entry) {
	metrics.PollItemsCheckedTotal.Inc()

	item, err := p.market.GetItem(ctx, entry.ItemID)
	if err != nil {
		metrics.PollFailuresTotal.Inc()
		p.log.Error("price check failed",
			"item_id", entry.ItemID,
			"user_id", entry.UserID,
			"error", err,
		)
		return
	}

	if item == nil {
		p.removeVanished(ctx, entry)
		return
	}

	p.evaluatePrice(ctx, entry, item)
}

func (p *Poller) removeVanished(ctx context.Context, entry Entry) {
	if !p.registry.Remove(entry.UserID, entry.ItemID) {
		return // removed by the user mid-cycle
	}

	p.log.Info("listing vanished, untracked",
		"item_id", entry.ItemID,
		"user_id", entry.UserID,
	)

	event := notify.ItemRemoval{
		UserID: entry.UserID,
		ItemID: entry.ItemID,
	}
	if err := p.notifier.ItemRemoved(ctx, event); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		p.log.Error("removal notification failed",
			"item_id", entry.ItemID,
			"user_id", entry.UserID,
			"error", err,
		)
		return
	}
	metrics.NotificationsSentTotal.WithLabelValues("item_removed").Inc()
}

func (p *Poller) evaluatePrice(ctx context.Context, entry Entry, item *avito.Item) {
	if item.Price == entry.LastPrice {
		return
	}

	pctChange := (item.Price - entry.LastPrice) / entry.LastPrice * 100
	if math.Abs(pctChange) < p.threshold {
		// Below threshold the stored price stays put, so drift keeps
		// accumulating against the last notified price.
		return
	}

	direction := notify.DirectionIncreased
	if item.Price < entry.LastPrice {
		direction = notify.DirectionDecreased
	}

	event := notify.PriceChange{
		UserID:    entry.UserID,
		ItemID:    entry.ItemID,
		Title:     item.Title,
		OldPrice:  entry.LastPrice,
		NewPrice:  item.Price,
		PctChange: pctChange,
		Direction: direction,
	}

	if err := p.notifier.PriceChanged(ctx, event); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		p.log.Error("price notification failed",
			"item_id", entry.ItemID,
			"user_id", entry.UserID,
			"error", err,
		)
		return
	}

	metrics.NotificationsSentTotal.WithLabelValues("price_changed").Inc()
	p.registry.UpdatePrice(entry.UserID, entry.ItemID, item.Price)

	p.log.Info("price change notified",
		"item_id", entry.ItemID,
		"user_id", entry.UserID,
		"old_price", entry.LastPrice,
		"new_price", item.Price,
		"pct_change", pctChange,
	)
}
