package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Event kind values carried in the webhook envelope.
const (
	kindPriceChanged = "price_changed"
	kindItemRemoved  = "item_removed"
)

// WebhookNotifier delivers events by POSTing JSON envelopes to a configured
// URL. The chat frontend subscribes this way and turns the events into
// user-visible messages.
type WebhookNotifier struct {
	url     string
	headers map[string]string
	client  *http.Client
}

// WebhookOption configures a WebhookNotifier.
type WebhookOption func(*WebhookNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) WebhookOption {
	return func(n *WebhookNotifier) {
		n.client = c
	}
}

// WithHeaders sets extra headers attached to every delivery.
func WithHeaders(headers map[string]string) WebhookOption {
	return func(n *WebhookNotifier) {
		n.headers = headers
	}
}

// NewWebhookNotifier creates a webhook notifier targeting url.
func NewWebhookNotifier(url string, opts ...WebhookOption) *WebhookNotifier {
	n := &WebhookNotifier{
		url:    url,
		client: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// envelope wraps an event with its kind for the receiving side.
type envelope struct {
	Kind  string `json:"kind"`
	Event any    `json:"event"`
}

// PriceChanged delivers a price-change event.
func (n *WebhookNotifier) PriceChanged(ctx context.Context, event PriceChange) error {
	return n.post(ctx, envelope{Kind: kindPriceChanged, Event: event})
}

// ItemRemoved delivers a removal event.
func (n *WebhookNotifier) ItemRemoved(ctx context.Context, event ItemRemoval) error {
	return n.post(ctx, envelope{Kind: kindItemRemoved, Event: event})
}

func (n *WebhookNotifier) post(ctx context.Context, env envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		n.url,
		bytes.NewReader(payload),
	)
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range n.headers {
		req.Header.Set(k, v)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck // best-effort error detail
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
