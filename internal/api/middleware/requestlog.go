package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// contextKeyRequestID is the echo context key the request ID is stored
// under, so handlers can tag their own log lines with it.
const contextKeyRequestID = "request_id"

// RequestLog returns Echo middleware that emits one structured log line per
// request. Clients may supply their own ID via X-Request-ID; otherwise one
// is minted, and either way it is echoed back in the response header.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			reqID := ensureRequestID(c)

			err := next(c)

			log.Info("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}

func ensureRequestID(c echo.Context) string {
	reqID := c.Request().Header.Get(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}

	c.Set(contextKeyRequestID, reqID)
	c.Response().Header().Set(requestIDHeader, reqID)

	return reqID
}
