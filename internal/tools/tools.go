package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/cloud-ru/mba-roi-go/internal/cache"
	"github.com/cloud-ru/mba-roi-go/internal/calculations"
	"github.com/cloud-ru/mba-roi-go/internal/config"
	"github.com/cloud-ru/mba-roi-go/internal/currency"
	"github.com/cloud-ru/mba-roi-go/internal/metrics"
	"github.com/cloud-ru/mba-roi-go/internal/validators"
	"github.com/cloud-ru/mba-roi-go/pkg/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	ComputeROITool     = "compute_roi"
	BuildScheduleTool  = "build_schedule"
	DashboardTool      = "mba_dashboard"
	FormatCurrencyTool = "format_currency"
	ParseCurrencyTool  = "parse_currency"
)

// ErrUnknownTool возвращается при вызове незарегистрированного инструмента
var ErrUnknownTool = errors.New("unknown tool")

// ToolHandler представляет обработчик инструмента MCP
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Registry набор инструментов по имени
type Registry map[string]ToolHandler

// NewRegistry регистрирует все инструменты калькулятора
func NewRegistry(cfg *config.Config, tracer trace.Tracer, roiCache *cache.ROICache) Registry {
	return Registry{
		ComputeROITool:     ComputeROIHandler(cfg, tracer, roiCache),
		BuildScheduleTool:  BuildScheduleHandler(cfg, tracer),
		DashboardTool:      DashboardHandler(cfg, tracer),
		FormatCurrencyTool: FormatCurrencyHandler(tracer),
		ParseCurrencyTool:  ParseCurrencyHandler(tracer),
	}
}

// Names возвращает отсортированный список имен инструментов
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call вызывает инструмент по имени
func (r Registry) Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	handler, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if params == nil {
		params = map[string]interface{}{}
	}
	return handler(ctx, params)
}

// ROIResponse ответ compute_roi: числа для клиента и готовая панель показателей
type ROIResponse struct {
	Result  *calculations.ROIResult `json:"result"`
	Metrics []calculations.Metric   `json:"metrics"`
}

// ScheduleResponse ответ build_schedule
type ScheduleResponse struct {
	EMI      float64                           `json:"emi"`
	Schedule calculations.AmortizationSchedule `json:"schedule"`
	Table    []calculations.FormattedRow       `json:"table"`
}

// FormatResponse ответ format_currency
type FormatResponse struct {
	Formatted string `json:"formatted"`
}

// ParseResponse ответ parse_currency
type ParseResponse struct {
	Value float64 `json:"value"`
}

// ComputeROIHandler обрабатывает запрос на расчет окупаемости MBA
func ComputeROIHandler(cfg *config.Config, tracer trace.Tracer, roiCache *cache.ROICache) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ComputeROITool

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		in, err := InputsFromParams(params)
		if err != nil {
			return nil, fail(span, toolName, "validation", err)
		}
		span.SetAttributes(inputAttributes(in)...)

		if err := validators.CheckInputs(cfg, in); err != nil {
			return nil, fail(span, toolName, "validation", err)
		}

		result, err := roiCache.ComputeROI(ctx, in)
		if err != nil {
			return nil, fail(span, toolName, "calculation", err)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("emi", utils.Round2(result.EMI)),
			attribute.Float64("roi_percentage", utils.Round2(result.ROIPercentage)),
			attribute.Bool("break_even_achieved", result.BreakEvenAchieved),
		)
		succeed(toolName)

		return &ROIResponse{Result: result, Metrics: result.Summary()}, nil
	}
}

// BuildScheduleHandler обрабатывает запрос на годовой график погашения.
// Если emi не передан, берется платеж, рассчитанный по параметрам кредита.
func BuildScheduleHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := BuildScheduleTool

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		in, err := InputsFromParams(params)
		if err != nil {
			return nil, fail(span, toolName, "validation", err)
		}
		span.SetAttributes(inputAttributes(in)...)

		if err := validators.CheckInputs(cfg, in); err != nil {
			return nil, fail(span, toolName, "validation", err)
		}

		emi := calculations.EMI(in.TotalCost(), in.LoanInterest, in.LoanTerm)
		if _, ok := params["emi"]; ok {
			emi, err = amountParam(params, "emi")
			if err != nil {
				return nil, fail(span, toolName, "validation", err)
			}
		}
		span.SetAttributes(attribute.Float64("emi", emi))

		schedule, err := calculations.BuildSchedule(in, emi)
		if err != nil {
			return nil, fail(span, toolName, "calculation", err)
		}

		span.SetAttributes(attribute.Bool("success", true), attribute.Int("rows", len(schedule)))
		succeed(toolName)

		return &ScheduleResponse{EMI: emi, Schedule: schedule, Table: schedule.Table()}, nil
	}
}

// DashboardHandler собирает всю панель: показатели, график зарплат и таблицу погашения
func DashboardHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := DashboardTool

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		in, err := InputsFromParams(params)
		if err != nil {
			return nil, fail(span, toolName, "validation", err)
		}
		span.SetAttributes(inputAttributes(in)...)

		if err := validators.CheckInputs(cfg, in); err != nil {
			return nil, fail(span, toolName, "validation", err)
		}

		dashboard, err := calculations.BuildDashboard(in)
		if err != nil {
			return nil, fail(span, toolName, "calculation", err)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("roi_percentage", utils.Round2(dashboard.Result.ROIPercentage)),
		)
		succeed(toolName)

		return dashboard, nil
	}
}

// FormatCurrencyHandler форматирует сумму в рупиях либо процент (kind=percent)
func FormatCurrencyHandler(tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := FormatCurrencyTool

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		amount, err := amountParam(params, "amount")
		if err != nil {
			return nil, fail(span, toolName, "validation", err)
		}
		kind := "currency"
		if raw, ok := params["kind"]; ok {
			if kind, ok = raw.(string); !ok {
				return nil, fail(span, toolName, "validation", invalidParam("kind", "expected a string"))
			}
		}
		span.SetAttributes(attribute.Float64("amount", amount), attribute.String("kind", kind))

		var formatted string
		switch kind {
		case "currency":
			formatted = currency.Format(amount)
		case "percent":
			formatted = currency.FormatPercent(amount)
		default:
			return nil, fail(span, toolName, "validation", invalidParam("kind", "expected currency or percent"))
		}

		span.SetAttributes(attribute.Bool("success", true))
		succeed(toolName)

		return &FormatResponse{Formatted: formatted}, nil
	}
}

// ParseCurrencyHandler разбирает строку вида "₹21,50,000" в число
func ParseCurrencyHandler(tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ParseCurrencyTool

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		text, ok := params["text"].(string)
		if !ok {
			return nil, fail(span, toolName, "validation", invalidParam("text", "expected a string"))
		}
		span.SetAttributes(attribute.String("text", text))

		value, err := currency.Parse(text)
		if err != nil {
			return nil, fail(span, toolName, "parse", err)
		}

		span.SetAttributes(attribute.Bool("success", true), attribute.Float64("value", value))
		succeed(toolName)

		return &ParseResponse{Value: value}, nil
	}
}

func fail(span trace.Span, toolName, errorType string, err error) error {
	span.SetAttributes(attribute.String("error", errorType+"_error"))
	metrics.ToolCalls.WithLabelValues(toolName, errorType+"_error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, errorType).Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "error").Inc()

	if errorType == "calculation" {
		return fmt.Errorf("calculation failed: %w", err)
	}
	return fmt.Errorf("invalid parameters: %w", err)
}

func succeed(toolName string) {
	metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "success").Inc()
}

func inputAttributes(in calculations.ROIInputs) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Float64("total_fees", in.TotalFees),
		attribute.Float64("pre_salary", in.PreSalary),
		attribute.Float64("post_salary", in.PostSalary),
		attribute.Int("duration", in.Duration),
		attribute.Float64("loan_interest", in.LoanInterest),
		attribute.Int("loan_term", in.LoanTerm),
	}
}
