// Package config handles loading and validating the application
// configuration from YAML files with environment variable substitution.
// Credentials are expected to arrive via ${VAR} references, never inline.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Avito         AvitoConfig         `yaml:"avito"`
	Watch         WatchConfig         `yaml:"watch"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// AvitoConfig defines marketplace API client settings.
type AvitoConfig struct {
	BaseURL        string        `yaml:"base_url"`
	AuthURL        string        `yaml:"auth_url"`
	ClientID       string        `yaml:"client_id"`
	ClientSecret   string        `yaml:"client_secret"`
	AccessToken    string        `yaml:"access_token"` // optional pre-issued token
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
}

// WatchConfig defines price-watch behavior.
type WatchConfig struct {
	CheckInterval        time.Duration `yaml:"check_interval"`
	InitialDelay         time.Duration `yaml:"initial_delay"`
	MaxItemsPerUser      int           `yaml:"max_items_per_user"`
	PriceChangeThreshold float64       `yaml:"price_change_threshold"`
}

// NotificationsConfig defines notification delivery targets.
type NotificationsConfig struct {
	Webhook WebhookConfig `yaml:"webhook"`
}

// WebhookConfig defines webhook delivery settings.
type WebhookConfig struct {
	Enabled bool              `yaml:"enabled"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyAvitoDefaults(&cfg.Avito)
	applyWatchDefaults(&cfg.Watch)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyAvitoDefaults(a *AvitoConfig) {
	if a.BaseURL == "" {
		a.BaseURL = "https://api.avito.ru"
	}
	if a.AuthURL == "" {
		a.AuthURL = a.BaseURL + "/token"
	}
	if a.RequestTimeout == 0 {
		a.RequestTimeout = 30 * time.Second
	}
	if a.MaxRetries == 0 {
		a.MaxRetries = 3
	}
	if a.RetryDelay == 0 {
		a.RetryDelay = 5 * time.Second
	}
}

func applyWatchDefaults(w *WatchConfig) {
	if w.CheckInterval == 0 {
		w.CheckInterval = 5 * time.Minute
	}
	if w.InitialDelay == 0 {
		w.InitialDelay = 10 * time.Second
	}
	if w.MaxItemsPerUser == 0 {
		w.MaxItemsPerUser = 10
	}
	if w.PriceChangeThreshold == 0 {
		w.PriceChangeThreshold = 5.0
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Avito.ClientID == "" {
		errs = append(errs, fmt.Errorf("avito.client_id is required"))
	}
	if cfg.Avito.ClientSecret == "" {
		errs = append(errs, fmt.Errorf("avito.client_secret is required"))
	}
	if cfg.Watch.PriceChangeThreshold < 0 {
		errs = append(errs, fmt.Errorf("watch.price_change_threshold must not be negative"))
	}
	if cfg.Notifications.Webhook.Enabled && cfg.Notifications.Webhook.URL == "" {
		errs = append(errs, fmt.Errorf("notifications.webhook.url is required when webhook is enabled"))
	}

	return errors.Join(errs...)
}
