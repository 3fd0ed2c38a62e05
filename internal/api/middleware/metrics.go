// Package middleware provides Echo middleware for avito-watch.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/temirkanov/avito-watch/internal/metrics"
)

// healthGauges maps probe paths to the 0/1 gauge they drive. Probe and
// scrape paths stay out of the request histogram and counter entirely.
var healthGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

func operationalPath(path string) bool {
	if _, ok := healthGauges[path]; ok {
		return true
	}
	return path == "/metrics"
}

// Metrics returns Echo middleware that records request duration and status
// for API traffic, and up/down gauges for the health probes.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			if operationalPath(path) {
				err := next(c)
				if gauge, ok := healthGauges[path]; ok {
					setProbeGauge(gauge, c.Response().Status)
				}
				return err
			}

			start := time.Now()
			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, status).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, status).
				Inc()

			return err
		}
	}
}

func setProbeGauge(gauge prometheus.Gauge, status int) {
	if status >= 200 && status < 300 {
		gauge.Set(1)
	} else {
		gauge.Set(0)
	}
}
