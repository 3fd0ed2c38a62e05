package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/temirkanov/avito-watch/internal/api/handlers"
	"github.com/temirkanov/avito-watch/internal/api/middleware"
	"github.com/temirkanov/avito-watch/internal/notify"
	"github.com/temirkanov/avito-watch/internal/watch"
	"github.com/temirkanov/avito-watch/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the price-watch service",
	Long: "Starts the poll loop and the HTTP API the chat frontend drives.\n" +
		"Tracked state lives in memory for the lifetime of the process.",
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	market, closeTransport := newMarket(cfg, log)
	defer closeTransport()

	registry := watch.NewRegistry(cfg.Watch.MaxItemsPerUser)

	var notifier notify.Notifier = notify.NewNoOpNotifier(log)
	if cfg.Notifications.Webhook.Enabled {
		notifier = notify.NewWebhookNotifier(
			cfg.Notifications.Webhook.URL,
			notify.WithHeaders(cfg.Notifications.Webhook.Headers),
		)
	}

	poller := watch.NewPoller(
		market,
		registry,
		notifier,
		cfg.Watch.PriceChangeThreshold,
		watch.WithPollerLogger(log),
	)

	scheduler, err := watch.NewScheduler(
		poller,
		cfg.Watch.CheckInterval,
		cfg.Watch.InitialDelay,
		log,
	)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(
		middleware.Recovery(log),
		middleware.RequestLog(log),
		middleware.Metrics(),
	)

	health := handlers.NewHealthHandler()
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("avito-watch API", Version))
	handlers.RegisterItemRoutes(api, handlers.NewItemsHandler(registry, market))
	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(market))
	handlers.RegisterLookupRoutes(api, handlers.NewLookupHandler(market))
	handlers.RegisterChatRoutes(api, handlers.NewChatHandler(registry, market))

	scheduler.Start()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	// Let an in-flight poll cycle finish before tearing down the transport.
	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("stopped")
	return nil
}
