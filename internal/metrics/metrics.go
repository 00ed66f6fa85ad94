package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов инструментов по итогу: success или <тип>_error
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Tool invocations by outcome (success, validation_error, parse_error, calculation_error)",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Failed tool calls by error type (validation, parse, calculation)",
		},
		[]string{"tool_name", "error_type"},
	)

	// APICalls счетчик запросов по транспорту: mcp (инструменты) и http (маршруты echo)
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_calls_total",
			Help: "Requests by transport (mcp tool or http route), endpoint and status",
		},
		[]string{"transport", "endpoint", "status"},
	)

	// CacheLookups счетчик обращений к кешу расчетов
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "ROI cache lookups by backend and result",
		},
		[]string{"backend", "result"},
	)
)
