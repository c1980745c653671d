package main

import (
	"github.com/Bethel-nz/foodprint/app/middleware"
	"github.com/Bethel-nz/foodprint/app/router"
	"github.com/Bethel-nz/foodprint/app/server"
	"github.com/Bethel-nz/foodprint/handlers"
	"github.com/Bethel-nz/foodprint/internal/logger"
	"github.com/Bethel-nz/foodprint/internal/metrics"
	"github.com/Bethel-nz/foodprint/internal/types"
)

// newApplication is the application factory handed to the launcher.
func newApplication(cfg *types.AppConfig, log logger.Logger) (*server.Application, error) {
	app := server.NewApplication().
		WithLogger(log).
		WithConfig(cfg).
		Use(middleware.RequestID, middleware.Logger(log), middleware.Recoverer, middleware.CORS(cfg.CORSOrigins))

	if cfg.MetricsEnabled {
		app.WithMetrics(metrics.New())
	}

	routes := router.NewRouter()
	setupMainRoutes(routes, handlers.NewHealth(cfg.Environment, app.Health))
	app.WithRouter(routes)

	if err := app.Err(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// setupMainRoutes configures main application routes
func setupMainRoutes(r *router.RouterGroup, h *handlers.Health) {
	r.GET("/health", h.HealthCheck)
	r.GET("/livez", h.Liveness)
	r.GET("/readyz", h.Readiness)
}
