package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
avito:
  client_id: my-client-id
  client_secret: my-client-secret
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "my-client-id", cfg.Avito.ClientID)
				assert.Equal(t, "my-client-secret", cfg.Avito.ClientSecret)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
avito:
  client_id: id
  client_secret: secret
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, "https://api.avito.ru", cfg.Avito.BaseURL)
				assert.Equal(t, "https://api.avito.ru/token", cfg.Avito.AuthURL)
				assert.Equal(t, 30*time.Second, cfg.Avito.RequestTimeout)
				assert.Equal(t, 3, cfg.Avito.MaxRetries)
				assert.Equal(t, 5*time.Second, cfg.Avito.RetryDelay)
				assert.Equal(t, 5*time.Minute, cfg.Watch.CheckInterval)
				assert.Equal(t, 10*time.Second, cfg.Watch.InitialDelay)
				assert.Equal(t, 10, cfg.Watch.MaxItemsPerUser)
				assert.Equal(t, 5.0, cfg.Watch.PriceChangeThreshold)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "auth url derived from custom base url",
			yaml: `
avito:
  base_url: https://staging.avito.test
  client_id: id
  client_secret: secret
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "https://staging.avito.test/token", cfg.Avito.AuthURL)
			},
		},
		{
			name: "env var substitution",
			yaml: `
avito:
  client_id: id
  client_secret: "${TEST_AVITO_SECRET}"
`,
			envVars: map[string]string{
				"TEST_AVITO_SECRET": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Avito.ClientSecret)
			},
		},
		{
			name: "missing required avito.client_id",
			yaml: `
avito:
  client_secret: secret
`,
			wantErr: "avito.client_id is required",
		},
		{
			name: "missing required avito.client_secret",
			yaml: `
avito:
  client_id: id
`,
			wantErr: "avito.client_secret is required",
		},
		{
			name: "negative threshold rejected",
			yaml: `
avito:
  client_id: id
  client_secret: secret
watch:
  price_change_threshold: -1.5
`,
			wantErr: "watch.price_change_threshold must not be negative",
		},
		{
			name: "webhook enabled without url",
			yaml: `
avito:
  client_id: id
  client_secret: secret
notifications:
  webhook:
    enabled: true
`,
			wantErr: "notifications.webhook.url is required when webhook is enabled",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
  write_timeout: 60s
avito:
  base_url: https://api.avito.ru
  client_id: id
  client_secret: secret
  access_token: pre-issued
  request_timeout: 15s
  max_retries: 5
  retry_delay: 2s
watch:
  check_interval: 10m
  initial_delay: 30s
  max_items_per_user: 25
  price_change_threshold: 2.5
notifications:
  webhook:
    enabled: true
    url: https://hooks.example.com/avito
    headers:
      X-Auth-Token: abc
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "pre-issued", cfg.Avito.AccessToken)
				assert.Equal(t, 15*time.Second, cfg.Avito.RequestTimeout)
				assert.Equal(t, 5, cfg.Avito.MaxRetries)
				assert.Equal(t, 2*time.Second, cfg.Avito.RetryDelay)
				assert.Equal(t, 10*time.Minute, cfg.Watch.CheckInterval)
				assert.Equal(t, 30*time.Second, cfg.Watch.InitialDelay)
				assert.Equal(t, 25, cfg.Watch.MaxItemsPerUser)
				assert.Equal(t, 2.5, cfg.Watch.PriceChangeThreshold)
				assert.True(t, cfg.Notifications.Webhook.Enabled)
				assert.Equal(t, "https://hooks.example.com/avito", cfg.Notifications.Webhook.URL)
				assert.Equal(t, "abc", cfg.Notifications.Webhook.Headers["X-Auth-Token"])
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
