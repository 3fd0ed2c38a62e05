package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// NotificationsSent returns a timeseries panel showing the notification
// send rate broken down by event kind.
func NotificationsSent() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Notifications Sent").
		Description("Notifications sent per second, by event kind").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(avitowatch_notifications_sent_total{job="avito-watch"}[5m])) by (kind)`,
			"{{kind}}", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// NotificationFailures returns a timeseries panel showing the rate of
// failed notification deliveries.
func NotificationFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Notification Failures").
		Description("Failed notification deliveries per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`rate(avitowatch_notification_failures_total{job="avito-watch"}[5m])`,
			"failures/s", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.05, 0.5)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
