package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "avito-watch-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "avito-watch-recording",
					Rules: []Rule{
						{
							Record: "avitowatch:http_requests:rate5m",
							Expr:   `sum(rate(avitowatch_http_requests_total[5m]))`,
						},
						{
							Record: "avitowatch:http_errors:rate5m",
							Expr:   `sum(rate(avitowatch_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "avitowatch:api_attempts:rate5m",
							Expr:   `rate(avitowatch_api_attempts_total[5m])`,
						},
						{
							Record: "avitowatch:api_retries:rate5m",
							Expr:   `sum(rate(avitowatch_api_retries_total[5m]))`,
						},
						{
							Record: "avitowatch:poll_failures:rate5m",
							Expr:   `rate(avitowatch_poll_failures_total[5m])`,
						},
						{
							Record: "avitowatch:notifications_sent:rate5m",
							Expr:   `sum(rate(avitowatch_notifications_sent_total[5m]))`,
						},
					},
				},
			},
		},
	}
}
