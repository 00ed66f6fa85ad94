// Package server отдает калькулятор окупаемости по HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cloud-ru/mba-roi-go/internal/calculations"
	"github.com/cloud-ru/mba-roi-go/internal/currency"
	"github.com/cloud-ru/mba-roi-go/internal/logging"
	"github.com/cloud-ru/mba-roi-go/internal/metrics"
	"github.com/cloud-ru/mba-roi-go/internal/tools"
)

// Server HTTP адаптер калькулятора поверх echo
type Server struct {
	e      *echo.Echo
	tools  tools.Registry
	logger *slog.Logger
}

// New создает сервер и регистрирует маршруты
func New(registry tools.Registry, logger *slog.Logger) *Server {
	s := &Server{
		e:      echo.New(),
		tools:  registry,
		logger: logging.WithComponent(logger, logging.ComponentHTTP),
	}
	s.e.HideBanner = true
	s.e.HidePort = true
	s.e.Use(middleware.Recover(), s.requestLogger())

	s.e.GET("/health", s.Health)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.e.Group("/api/v1")
	api.GET("/defaults", s.Defaults)
	api.POST("/roi", s.callTool(tools.ComputeROITool))
	api.POST("/schedule", s.callTool(tools.BuildScheduleTool))
	api.POST("/dashboard", s.callTool(tools.DashboardTool))
	api.POST("/tools/:name", s.Tool)

	return s
}

// ServeHTTP позволяет использовать сервер как http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Start блокируется до остановки сервера. После Shutdown возвращает nil.
func (s *Server) Start(addr string) error {
	s.logger.Info("listening", "addr", addr)
	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// Health отвечает статусом сервиса и списком инструментов
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
		"tools":  s.tools.Names(),
	})
}

type defaultsResponse struct {
	Inputs    calculations.ROIInputs `json:"inputs"`
	Formatted map[string]string      `json:"formatted"`
}

// Defaults значения формы дашборда: числа и строки для полей ввода
func (s *Server) Defaults(c echo.Context) error {
	in := calculations.DashboardDefaults()
	return c.JSON(http.StatusOK, defaultsResponse{
		Inputs: in,
		Formatted: map[string]string{
			"total_fees":      currency.Format(in.TotalFees),
			"pre_salary":      currency.Format(in.PreSalary),
			"post_salary":     currency.Format(in.PostSalary),
			"living_expenses": currency.Format(in.LivingExpenses),
			"scholarship":     currency.Format(in.Scholarship),
			"loan_interest":   currency.FormatPercent(in.LoanInterest),
			"salary_growth":   currency.FormatPercent(in.SalaryGrowth * 100),
			"post_growth":     currency.FormatPercent(in.PostGrowth * 100),
		},
	})
}

// Tool вызывает инструмент по имени из пути
func (s *Server) Tool(c echo.Context) error {
	return s.dispatch(c, c.Param("name"))
}

func (s *Server) callTool(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return s.dispatch(c, name)
	}
}

func (s *Server) dispatch(c echo.Context, name string) error {
	params := map[string]interface{}{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}

	out, err := s.tools.Call(c.Request().Context(), name, params)
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func statusFor(err error) int {
	var cfgErr *calculations.ConfigurationError
	var parseErr *currency.ParseError
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		return http.StatusNotFound
	case errors.As(err, &cfgErr), errors.As(err, &parseErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			status := "success"
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusBadRequest {
				status = "error"
				level = slog.LevelWarn
			}
			metrics.APICalls.WithLabelValues("http", v.RoutePath, status).Inc()

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Int64(logging.FieldDurationMS, v.Latency.Milliseconds()),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String(logging.FieldError, v.Error.Error()))
			}
			s.logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
