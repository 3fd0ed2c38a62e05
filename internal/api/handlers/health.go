// Package handlers implements the HTTP surface the chat frontend drives.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz returns 200 once the process is serving. There is no backing store
// to probe; the marketplace API is reached lazily and its failures are
// surfaced per request, so readiness equals liveness here.
func (*HealthHandler) Readyz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
