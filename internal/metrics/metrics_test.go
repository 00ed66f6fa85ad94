package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metricLoop:
		for _, m := range family.GetMetric() {
			for _, pair := range m.GetLabel() {
				if labels[pair.GetName()] != pair.GetValue() {
					continue metricLoop
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestAPICallsSeparatesTransports(t *testing.T) {
	APICalls.WithLabelValues("mcp", "compute_roi", "success").Inc()
	APICalls.WithLabelValues("http", "/api/v1/roi", "success").Inc()
	APICalls.WithLabelValues("http", "/api/v1/roi", "success").Inc()

	tests := []struct {
		labels map[string]string
		want   float64
	}{
		{map[string]string{"transport": "mcp", "endpoint": "compute_roi", "status": "success"}, 1},
		{map[string]string{"transport": "http", "endpoint": "/api/v1/roi", "status": "success"}, 2},
		{map[string]string{"transport": "http", "endpoint": "compute_roi", "status": "success"}, 0},
	}
	for _, tt := range tests {
		if got := counterValue(t, "api_calls_total", tt.labels); got != tt.want {
			t.Errorf("api_calls_total%v = %v, want %v", tt.labels, got, tt.want)
		}
	}
}

func TestToolAndCacheCounters(t *testing.T) {
	ToolCalls.WithLabelValues("parse_currency", "parse_error").Inc()
	CalculationErrors.WithLabelValues("parse_currency", "parse").Inc()
	CacheLookups.WithLabelValues("memory", "hit").Inc()

	checks := []struct {
		name   string
		labels map[string]string
	}{
		{"tool_calls_total", map[string]string{"tool_name": "parse_currency", "status": "parse_error"}},
		{"calculation_errors_total", map[string]string{"tool_name": "parse_currency", "error_type": "parse"}},
		{"cache_lookups_total", map[string]string{"backend": "memory", "result": "hit"}},
	}
	for _, c := range checks {
		if got := counterValue(t, c.name, c.labels); got != 1 {
			t.Errorf("%s%v = %v, want 1", c.name, c.labels, got)
		}
	}
}
