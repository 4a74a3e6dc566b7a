package app

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"energyskill/backend/services/energy-skill/internal/clients"
	"energyskill/backend/services/energy-skill/internal/config"
	httpserver "energyskill/backend/services/energy-skill/internal/http"
	"energyskill/backend/services/energy-skill/internal/http/handlers"
	"energyskill/backend/services/energy-skill/internal/http/middleware"
	"energyskill/backend/services/energy-skill/internal/observability"
	"energyskill/backend/services/energy-skill/internal/service"
)

// App wires energy-skill dependencies.
type App struct {
	server  *httpserver.Server
	handler http.Handler
	logger  *zap.Logger
}

// New constructs application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)

	var httpClient clients.HTTPDoer = clients.NewDefaultHTTPClient(cfg.HTTPTimeout())
	if cfg.Breaker.Enabled {
		httpClient = clients.NewBreakerDoer("givenergy", httpClient, cfg.BreakerSettings(), logger)
	}

	givenergy := clients.NewGivEnergyClient(cfg.GivEnergy.APIURL, cfg.GivEnergy.ControlURL, httpClient, metrics, logger)
	resolver := service.NewResolver(givenergy, logger)
	router := service.NewIntentRouter(resolver, metrics, logger)

	routes := httpserver.Routes{
		Skill:  handlers.NewSkillHandler(router, logger),
		Health: handlers.NewHealthHandler(),
	}
	if cfg.Metrics.Enabled {
		routes.Metrics = observability.Handler(registry)
	}

	handler := middleware.Chain(
		httpserver.NewRouter(routes),
		middleware.RequestIDMiddleware,
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
	)

	return &App{
		server:  httpserver.NewServer(cfg.HTTPAddress(), handler, logger),
		handler: handler,
		logger:  logger,
	}, nil
}

// Handler returns the fully wired HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run starts serving HTTP traffic.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources (none yet).
func (a *App) Close() {}
