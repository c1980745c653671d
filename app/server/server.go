package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/Bethel-nz/foodprint/app/router"
	"github.com/Bethel-nz/foodprint/internal/health"
	"github.com/Bethel-nz/foodprint/internal/logger"
	"github.com/Bethel-nz/foodprint/internal/metrics"
	"github.com/Bethel-nz/foodprint/internal/types"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// Application holds application-wide dependencies and configuration.
type Application struct {
	Config           *types.AppConfig
	Log              logger.Logger
	Handler          http.Handler
	DB               *pgxpool.Pool
	Cache            *redis.Client
	Health           *health.Checker
	Metrics          *metrics.Metrics
	GlobalMiddleware []func(http.Handler) http.Handler

	routes *router.RouterGroup
	err    error
}

// NewApplication creates a new instance of Application.
func NewApplication() *Application {
	return &Application{
		Log:              logger.NewNop(),
		Health:           health.NewChecker(),
		GlobalMiddleware: make([]func(http.Handler) http.Handler, 0),
	}
}

// Err returns the first error recorded while building the application.
func (app *Application) Err() error {
	return app.err
}

func (app *Application) fail(err error) {
	if app.err == nil {
		app.err = err
	}
}

// WithConfig attaches the configuration and, when DatabaseURL or RedisURL is
// set, the matching readiness dependency.
func (app *Application) WithConfig(cfg *types.AppConfig) *Application {
	if cfg == nil {
		app.fail(errors.New("nil configuration"))
		return app
	}
	app.Config = cfg

	if cfg.DatabaseURL != "" {
		app.WithDatabase(cfg.DatabaseURL)
	}
	if cfg.RedisURL != "" {
		app.WithCache(cfg.RedisURL)
	}
	return app
}

// WithLogger replaces the default no-op logger.
func (app *Application) WithLogger(log logger.Logger) *Application {
	if log != nil {
		app.Log = log
	}
	return app
}

// WithDatabase creates a pgx pool for dsn and registers it as a readiness
// check. Connections are opened lazily.
func (app *Application) WithDatabase(dsn string) *Application {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		app.fail(fmt.Errorf("parse database url: %w", err))
		return app
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		app.fail(fmt.Errorf("create pgx pool: %w", err))
		return app
	}

	app.DB = pool
	app.Health.Register("postgres", health.Postgres(pool))
	return app
}

// WithCache creates a Redis client and registers it as a readiness check.
// addr is either a redis:// URL or a host:port pair.
func (app *Application) WithCache(addr string) *Application {
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			app.fail(fmt.Errorf("parse redis url: %w", err))
			return app
		}
		opts = parsed
	}

	app.Cache = redis.NewClient(opts)
	app.Health.Register("redis", health.Redis(app.Cache))
	return app
}

// Use appends global middleware to the application.
func (app *Application) Use(middleware ...func(http.Handler) http.Handler) *Application {
	app.GlobalMiddleware = append(app.GlobalMiddleware, middleware...)
	return app
}

// WithMetrics records request metrics for every request and serves them on
// GET /metrics. Call it before WithRouter.
func (app *Application) WithMetrics(m *metrics.Metrics) *Application {
	app.Metrics = m
	return app.Use(m.Middleware)
}

// WithRouter compiles routes and wraps them in the global middleware.
func (app *Application) WithRouter(routes *router.RouterGroup) *Application {
	app.routes = routes
	app.Handler = app.compile(false)
	return app
}

// compile builds the handler tree. Debug mode adds the profiler next to the
// routes, so both sit behind the global middleware.
func (app *Application) compile(debug bool) http.Handler {
	handler := http.Handler(router.Handler(app.routes))
	if app.Metrics != nil {
		handler = withMetricsEndpoint(handler, app.Metrics)
	}
	if debug {
		handler = withProfiler(handler)
	}
	for i := len(app.GlobalMiddleware) - 1; i >= 0; i-- {
		handler = app.GlobalMiddleware[i](handler)
	}
	return handler
}

// Serve serves HTTP on ln until ctx is cancelled, then drains in-flight
// requests within the configured shutdown timeout and releases the database
// pool and cache client. In debug mode profiling endpoints are mounted under
// /debug/pprof/.
func (app *Application) Serve(ctx context.Context, ln net.Listener, debug bool) error {
	if app.err != nil {
		ln.Close()
		return app.err
	}
	if app.Config == nil || app.routes == nil {
		ln.Close()
		return errors.New("application is missing configuration or routes")
	}

	handler := app.Handler
	if debug {
		handler = app.compile(true)
	}

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  app.Config.ReadTimeout,
		WriteTimeout: app.Config.WriteTimeout,
		IdleTimeout:  app.Config.IdleTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Log.Info("Server listening",
			logger.String("address", ln.Addr().String()),
			logger.Bool("debug", debug),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		app.Log.Info("Shutting down server", logger.Duration("timeout", app.Config.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if cerr := app.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}

	if err == nil {
		app.Log.Info("Shutdown completed")
	}
	return err
}

// Close releases the database pool and the cache client.
func (app *Application) Close() error {
	if app.DB != nil {
		app.DB.Close()
	}
	if app.Cache != nil {
		if err := app.Cache.Close(); err != nil {
			return fmt.Errorf("cache close error: %w", err)
		}
	}
	return nil
}
