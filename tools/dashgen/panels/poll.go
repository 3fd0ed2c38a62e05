package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CycleDuration returns a timeseries panel showing poll cycle duration
// percentiles.
func CycleDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Poll Cycle Duration").
		Description("Poll cycle duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(avitowatch_poll_cycle_duration_seconds_bucket{job="avito-watch"}[5m])) by (le))`,
			"p50",
			"A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(avitowatch_poll_cycle_duration_seconds_bucket{job="avito-watch"}[5m])) by (le))`,
			"p95",
			"B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ItemsChecked returns a timeseries panel showing the rate of watched
// items checked per poll cycle.
func ItemsChecked() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Items Checked").
		Description("Watched listings checked per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`rate(avitowatch_poll_items_checked_total{job="avito-watch"}[5m])`,
			"items/s", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// PollFailures returns a timeseries panel showing the per-item poll
// failure rate.
func PollFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Poll Failures").
		Description("Per-item poll failures per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`avitowatch:poll_failures:rate5m`, "failures/s", "A")).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.1, 1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
