// Command dashgen generates the Grafana dashboard and Prometheus rule
// files under deploy/ from Go builders, so the monitoring artifacts
// stay in lockstep with the metrics the service exports.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/temirkanov/avito-watch/tools/dashgen/dashboards"
	"github.com/temirkanov/avito-watch/tools/dashgen/rules"
	"github.com/temirkanov/avito-watch/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by tools/dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, validateOnly bool) error {
	dash, err := dashboards.BuildOverview().Build()
	if err != nil {
		return fmt.Errorf("building overview dashboard: %w", err)
	}

	result := validate.Dashboard(dash, KnownMetrics)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if !result.Ok() {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "error: %s\n", e)
		}
		return fmt.Errorf("dashboard validation failed with %d error(s)", len(result.Errors))
	}

	recording := rules.RecordingRules()
	alerts := rules.AlertRules()

	var exprs []validate.RuleExprSource
	for _, g := range append(recording.Spec.Groups, alerts.Spec.Groups...) {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = "alert " + r.Alert
			}
			exprs = append(exprs, validate.RuleExprSource{Name: name, Expr: r.Expr})
		}
	}
	if result := validate.Rules(exprs, KnownMetrics); !result.Ok() {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "error: %s\n", e)
		}
		return fmt.Errorf("rule validation failed with %d error(s)", len(result.Errors))
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	if cfg.DashboardEnabled {
		dashJSON, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling dashboard: %w", err)
		}
		dashJSON = append(dashJSON, '\n')

		path := filepath.Join(cfg.OutputDir, "grafana", "data", "avito-watch-overview.json")
		if err := writeFile(path, dashJSON); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}

	if cfg.RulesEnabled {
		for _, out := range []struct {
			name string
			cr   rules.PrometheusRule
		}{
			{"avito-watch-recording-rules.yaml", recording},
			{"avito-watch-alerts.yaml", alerts},
		} {
			data, err := yaml.Marshal(out.cr)
			if err != nil {
				return fmt.Errorf("marshaling %s: %w", out.name, err)
			}
			data = append([]byte(generatedHeader), data...)

			path := filepath.Join(cfg.OutputDir, "prometheus", out.name)
			if err := writeFile(path, data); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
		}
	}

	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
