package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// avito-watch operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "avito-watch-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "avito-watch-alerts",
					Rules: []Rule{
						{
							Alert: "AvitoWatchDown",
							Expr:  `absent(up{job="avito-watch"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Avito Watch is down",
								"description": "The avito-watch job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "AvitoWatchReadinessDown",
							Expr:  `avitowatch_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Avito Watch readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "AvitoWatchHighErrorRate",
							Expr:  `avitowatch:http_errors:rate5m / avitowatch:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Avito Watch",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "AvitoWatchPollFailures",
							Expr:  `avitowatch:poll_failures:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Poll loop failures are elevated",
								"description": "Per-item poll failures are occurring at more than 0.1/s for the last 5 minutes.",
							},
						},
						{
							Alert: "AvitoWatchRetryStorm",
							Expr:  `avitowatch:api_retries:rate5m > 1`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Marketplace API retries are sustained",
								"description": "API requests have been retrying at more than 1/s for 10 minutes. The marketplace API may be degraded.",
							},
						},
						{
							Alert: "AvitoWatchTokenChurn",
							Expr:  `rate(avitowatch_token_refreshes_total[15m]) > 0.05`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Auth token is churning",
								"description": "Tokens are being refreshed far more often than their lifetime implies. Credentials may be rejected upstream.",
							},
						},
						{
							Alert: "AvitoWatchNotificationFailures",
							Expr:  `increase(avitowatch_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more price change notifications have failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
