package cmd

import (
	"fmt"
	"log/slog"

	"github.com/temirkanov/avito-watch/internal/avito"
	"github.com/temirkanov/avito-watch/internal/config"
)

// newMarket builds the full client stack (token manager, transport,
// executor, typed client) from config. The returned cleanup releases the
// transport's connection pool.
func newMarket(cfg *config.Config, log *slog.Logger) (*avito.Market, func()) {
	tokenOpts := []avito.TokenOption{
		avito.WithAuthTimeout(cfg.Avito.RequestTimeout),
	}
	if cfg.Avito.AccessToken != "" {
		tokenOpts = append(tokenOpts, avito.WithInitialToken(cfg.Avito.AccessToken))
	}

	tokens := avito.NewTokenManager(
		cfg.Avito.AuthURL,
		cfg.Avito.ClientID,
		cfg.Avito.ClientSecret,
		tokenOpts...,
	)

	transport := avito.NewTransport(cfg.Avito.BaseURL, tokens, cfg.Avito.RequestTimeout)

	exec := avito.NewExecutor(transport, tokens,
		avito.WithMaxRetries(cfg.Avito.MaxRetries),
		avito.WithRetryDelay(cfg.Avito.RetryDelay),
		avito.WithLogger(log),
	)

	return avito.NewMarket(exec), transport.Close
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
