// Package validate checks generated dashboards against the set of
// metrics the service actually exports, catching typos in PromQL
// expressions before they ship.
package validate

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation findings. Errors fail validation,
// warnings do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation passed.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Dashboard checks every PromQL target in the dashboard: expressions
// must parse, and every metric selector must name a known metric.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var result Result

	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			for i := range p.RowPanel.Panels {
				checkPanel(&p.RowPanel.Panels[i], known, &result)
			}
		}
		if p.Panel != nil {
			checkPanel(p.Panel, known, &result)
		}
	}

	return result
}

// Rules checks every rule expression in a group set.
func Rules(groups []RuleExprSource, known map[string]bool) Result {
	var result Result
	for _, g := range groups {
		checkExpr(g.Name, g.Expr, known, &result)
	}
	return result
}

// RuleExprSource names a single rule expression for validation.
type RuleExprSource struct {
	Name string
	Expr string
}

func checkPanel(p *dashboard.Panel, known map[string]bool, result *Result) {
	title := "(untitled)"
	if p.Title != nil {
		title = *p.Title
	}

	if len(p.Targets) == 0 {
		result.warnf("panel %q has no targets", title)
		return
	}

	for _, target := range p.Targets {
		expr := targetExpr(target)
		if expr == "" {
			result.warnf("panel %q has a non-Prometheus target", title)
			continue
		}
		checkExpr(fmt.Sprintf("panel %q", title), expr, known, result)
	}
}

func checkExpr(source, expr string, known map[string]bool, result *Result) {
	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		result.errorf("%s: invalid PromQL %q: %v", source, expr, err)
		return
	}

	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		if vs, ok := node.(*parser.VectorSelector); ok && vs.Name != "" {
			if !knownMetric(vs.Name, known) {
				result.errorf("%s: unknown metric %q", source, vs.Name)
			}
		}
		return nil
	})
}

// knownMetric reports whether name is in the known set, accounting for
// the series suffixes histograms and summaries expose.
func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

func targetExpr(target any) string {
	switch q := target.(type) {
	case prometheus.Dataquery:
		return q.Expr
	case *prometheus.Dataquery:
		return q.Expr
	default:
		return ""
	}
}
