package main

import "errors"

// KnownMetrics is the set of metric names exported by avito-watch plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"avitowatch_http_request_duration_seconds": true,
	"avitowatch_http_requests_total":           true,

	// Health metrics.
	"avitowatch_healthz_up": true,
	"avitowatch_readyz_up":  true,

	// Marketplace client metrics.
	"avitowatch_api_attempts_total":    true,
	"avitowatch_api_retries_total":     true,
	"avitowatch_token_refreshes_total": true,

	// Poll loop metrics.
	"avitowatch_poll_cycle_duration_seconds": true,
	"avitowatch_poll_items_checked_total":    true,
	"avitowatch_poll_failures_total":         true,
	"avitowatch_tracked_items":               true,

	// Notification metrics.
	"avitowatch_notifications_sent_total":    true,
	"avitowatch_notification_failures_total": true,

	// Recording rules.
	"avitowatch:http_requests:rate5m":      true,
	"avitowatch:http_errors:rate5m":        true,
	"avitowatch:api_attempts:rate5m":       true,
	"avitowatch:api_retries:rate5m":        true,
	"avitowatch:poll_failures:rate5m":      true,
	"avitowatch:notifications_sent:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
