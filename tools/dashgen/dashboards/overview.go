// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/temirkanov/avito-watch/tools/dashgen/panels"
)

// BuildOverview constructs the Avito Watch Overview dashboard with all
// metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Avito Watch Overview").
		Uid("avito-watch-overview").
		Tags([]string{"avito-watch", "price-watch"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.TrackedItemsStat()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Marketplace API.
	b.WithRow(dashboard.NewRowBuilder("Marketplace API").
		WithPanel(panels.APIAttempts()).
		WithPanel(panels.APIRetries()).
		WithPanel(panels.TokenRefreshes()))

	// Row 4: Poll Loop.
	b.WithRow(dashboard.NewRowBuilder("Poll Loop").
		WithPanel(panels.CycleDuration()).
		WithPanel(panels.ItemsChecked()).
		WithPanel(panels.PollFailures()))

	// Row 5: Notifications.
	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationsSent()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
