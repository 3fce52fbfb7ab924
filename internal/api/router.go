package api

import (
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/edusaas/portal-gate/docs"
	"github.com/edusaas/portal-gate/internal/api/handler"
	"github.com/edusaas/portal-gate/internal/api/middleware"
	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/ports"
	"github.com/edusaas/portal-gate/pkg/telemetry"
)

// Dependencies are the services the HTTP API is built on.
type Dependencies struct {
	Sessions    ports.SessionService
	Status      ports.StatusService
	SessionTTL  time.Duration
	JWTSecret   string
	Readiness   map[string]handler.DependencyCheck
	ServiceName string
	Log         zerolog.Logger
	// Metrics receives the HTTP metrics. Nil uses the default registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echo.WrapMiddleware(telemetry.HTTPMiddleware(deps.ServiceName)))
	e.Use(httpMetrics(deps.Metrics))

	// --- Operational endpoints (no session required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", metricsHandler(deps.Metrics))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	sessionHandler := handler.NewSessionHandler(deps.Sessions, deps.SessionTTL)
	gateHandler := handler.NewGateHandler(deps.Status)

	v1 := e.Group("/v1")
	v1.POST("/sessions", sessionHandler.Open)
	v1.GET("/status", gateHandler.Status)

	authed := v1.Group("", middleware.Session(deps.JWTSecret, deps.Sessions))
	authed.GET("/navigate", gateHandler.Navigate)
	authed.GET("/tenant", gateHandler.Tenant)
	authed.POST("/tenant/refresh", gateHandler.RefreshTenant, middleware.RBAC(domain.RoleAdmin))
	authed.POST("/status/refresh", gateHandler.RefreshStatus, middleware.Superuser())

	authed.GET("/session/principal", sessionHandler.GetPrincipal)
	authed.PUT("/session/principal", sessionHandler.PutPrincipal)
	authed.PATCH("/session/principal", sessionHandler.PatchPrincipal)
	authed.DELETE("/session/principal", sessionHandler.DeletePrincipal)
	authed.GET("/session/theme", sessionHandler.GetTheme)
	authed.PUT("/session/theme", sessionHandler.PutTheme)

	return e
}

func httpMetrics(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Subsystem: "portal_gate_http",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/health")
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
