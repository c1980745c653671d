// Command api starts the FoodPrint API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Bethel-nz/foodprint/internal/config"
	"github.com/Bethel-nz/foodprint/internal/env"
	"github.com/Bethel-nz/foodprint/internal/launcher"
	"github.com/Bethel-nz/foodprint/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

// run starts the server and blocks until ctx is cancelled. It returns the
// process exit status.
func run(ctx context.Context) int {
	if err := config.LoadEnvFiles(); err != nil {
		fmt.Fprintf(os.Stderr, "foodprint: %v\n", err)
		return 1
	}

	cfg, err := launcher.Resolve(env.OS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "foodprint: %v\n", err)
		return 1
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.Debug})
	if err != nil {
		fmt.Fprintf(os.Stderr, "foodprint: %v\n", err)
		return 1
	}
	defer log.Sync()

	err = launcher.New(os.Stdout).Run(ctx, cfg, func() (launcher.Runner, error) {
		return newApplication(cfg, log)
	})
	if err != nil {
		log.Error("Server stopped with error", logger.Error(err))
		fmt.Fprintf(os.Stderr, "foodprint: %v\n", err)
		return 1
	}
	return 0
}
