// Package launcher turns environment configuration and an application
// factory into a running network listener.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"

	"github.com/Bethel-nz/foodprint/internal/config"
	"github.com/Bethel-nz/foodprint/internal/env"
	"github.com/Bethel-nz/foodprint/internal/types"
)

// Runner is an application that can serve on an already bound listener.
type Runner interface {
	// Serve blocks until ctx is cancelled or the listener fails. It owns ln
	// and must close it before returning.
	Serve(ctx context.Context, ln net.Listener, debug bool) error
}

// Factory builds the application. It is called once, after the startup
// banner and before any socket is bound.
type Factory func() (Runner, error)

// Launcher prints the startup banner, builds the application and binds its
// listener.
type Launcher struct {
	out    io.Writer
	listen func(ctx context.Context, network, address string) (net.Listener, error)
}

// New returns a Launcher printing its banner to out. A nil out means stdout.
func New(out io.Writer) *Launcher {
	if out == nil {
		out = os.Stdout
	}
	var lc net.ListenConfig
	return &Launcher{out: out, listen: lc.Listen}
}

// Resolve reads the launcher configuration through lookup. Any parse or
// validation failure is returned as a *ConfigError.
func Resolve(lookup env.LookupFunc) (*types.AppConfig, error) {
	cfg, err := config.LoadConfig(lookup)
	if err != nil {
		return nil, newConfigError(err, lookup)
	}
	return cfg, nil
}

// Launch resolves configuration from lookup and runs the application built
// by factory. Nothing is printed when configuration fails.
func (l *Launcher) Launch(ctx context.Context, lookup env.LookupFunc, factory Factory) error {
	cfg, err := Resolve(lookup)
	if err != nil {
		return err
	}
	return l.Run(ctx, cfg, factory)
}

// Run announces the server, builds the application and serves it on
// cfg.Host:cfg.Port until ctx is cancelled. Startup failures are returned as
// *FactoryError or *BindError and are never retried.
func (l *Launcher) Run(ctx context.Context, cfg *types.AppConfig, factory Factory) error {
	if cfg == nil {
		return &ConfigError{Err: errors.New("missing configuration")}
	}

	l.banner(cfg)

	app, err := build(factory)
	if err != nil {
		return &FactoryError{Err: err}
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	ln, err := l.listen(ctx, "tcp", addr)
	if err != nil {
		return &BindError{Addr: addr, Err: err}
	}

	if err := app.Serve(ctx, ln, cfg.Debug); err != nil {
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	return nil
}

func (l *Launcher) banner(cfg *types.AppConfig) {
	fmt.Fprintln(l.out, "🌱 Starting FoodPrint API server...")
	fmt.Fprintf(l.out, "📍 Server running at: http://%s:%d\n", cfg.Host, cfg.Port)
	fmt.Fprintf(l.out, "🔧 Debug mode: %s\n", displayBool(cfg.Debug))
}

func build(factory Factory) (app Runner, err error) {
	if factory == nil {
		return nil, errors.New("no application factory")
	}

	defer func() {
		if r := recover(); r != nil {
			app, err = nil, fmt.Errorf("panic recovered: %v", r)
		}
	}()

	app, err = factory()
	if err == nil && app == nil {
		err = errors.New("factory returned no application")
	}
	return app, err
}

func displayBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
