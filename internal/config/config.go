package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Bethel-nz/foodprint/internal/env"
	"github.com/Bethel-nz/foodprint/internal/types"
	"github.com/Bethel-nz/foodprint/internal/validator"
	"github.com/joho/godotenv"
)

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 5000
)

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// LoadEnvFiles loads dotenv files into the process environment. ENV_FILE, when
// set, is the only file read and must exist; otherwise .env.local and then
// .env are read when present. Variables already present in the environment
// are never overwritten.
func LoadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// loader remembers the first failed lookup so the config can be built as a
// single literal.
type loader struct {
	lookup env.LookupFunc
	err    error
}

func get[T any](l *loader, e env.Env[T]) T {
	if l.err != nil {
		return e.Fallback
	}
	v, err := e.Get(l.lookup)
	if err != nil {
		l.err = err
		return e.Fallback
	}
	return v
}

// LoadConfig reads environment variables through lookup and returns a
// validated AppConfig. A nil lookup reads the process environment.
func LoadConfig(lookup env.LookupFunc) (*types.AppConfig, error) {
	l := &loader{lookup: lookup}

	cfg := &types.AppConfig{
		Host:  get(l, env.String("FLASK_HOST", DefaultHost)),
		Port:  get(l, env.Int("FLASK_PORT", DefaultPort)),
		Debug: get(l, env.Flag("FLASK_DEBUG", true)),

		Environment:     get(l, env.String("APP_ENV", "development")),
		LogLevel:        strings.ToLower(get(l, env.String("LOG_LEVEL", ""))),
		ReadTimeout:     get(l, env.Duration("SERVER_READ_TIMEOUT", 15*time.Second)),
		WriteTimeout:    get(l, env.Duration("SERVER_WRITE_TIMEOUT", 15*time.Second)),
		IdleTimeout:     get(l, env.Duration("SERVER_IDLE_TIMEOUT", 60*time.Second)),
		ShutdownTimeout: get(l, env.Duration("SHUTDOWN_TIMEOUT", 30*time.Second)),
		CORSOrigins:     get(l, env.Strings("CORS_ALLOWED_ORIGINS", []string{"*"})),
		MetricsEnabled:  get(l, env.Bool("METRICS_ENABLED", true)),

		DatabaseURL: get(l, env.String("DATABASE_URL", "")),
		RedisURL:    get(l, env.String("REDIS_URL", "")),
	}
	if l.err != nil {
		return nil, l.err
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
		if cfg.Debug {
			cfg.LogLevel = "debug"
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants that parsing alone does not enforce.
func Validate(cfg *types.AppConfig) error {
	var v validator.Validator

	v.CheckField(validator.IsInRange(cfg.Port, 0, 65535), "FLASK_PORT", "must be between 0 and 65535")
	v.CheckField(validator.IsOneOf(cfg.LogLevel, logLevels...), "LOG_LEVEL", "must be one of "+strings.Join(logLevels, ", "))
	v.CheckField(cfg.ReadTimeout > 0, "SERVER_READ_TIMEOUT", "must be positive")
	v.CheckField(cfg.WriteTimeout > 0, "SERVER_WRITE_TIMEOUT", "must be positive")
	v.CheckField(cfg.IdleTimeout > 0, "SERVER_IDLE_TIMEOUT", "must be positive")
	v.CheckField(cfg.ShutdownTimeout > 0, "SHUTDOWN_TIMEOUT", "must be positive")
	v.CheckField(validator.NotBlank(cfg.Environment), "APP_ENV", "must not be blank")

	return v.Err()
}
