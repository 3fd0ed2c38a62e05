package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APIAttempts returns a timeseries panel showing the marketplace API
// request attempt rate.
func APIAttempts() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Attempts").
		Description("Marketplace API request attempts per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`avitowatch:api_attempts:rate5m`, "attempts/s", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// APIRetries returns a timeseries panel showing the retry rate broken
// down by reason.
func APIRetries() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Retries by Reason").
		Description("Marketplace API retries per second, by retry reason").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(avitowatch_api_retries_total{job="avito-watch"}[5m])) by (reason)`,
			"{{reason}}", "A",
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

// TokenRefreshes returns a timeseries panel showing the auth token
// refresh rate. A sustained non-zero rate means credentials are
// bouncing.
func TokenRefreshes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Token Refreshes").
		Description("Auth token refreshes per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`rate(avitowatch_token_refreshes_total{job="avito-watch"}[5m])`,
			"refreshes/s", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.05, 0.5)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
