package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Bethel-nz/foodprint/internal/env"
	"github.com/Bethel-nz/foodprint/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig(env.Map(nil))
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.Host)
		assert.Equal(t, 5000, cfg.Port)
		assert.True(t, cfg.Debug)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
		assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
		assert.Empty(t, cfg.DatabaseURL)
		assert.Empty(t, cfg.RedisURL)
		assert.True(t, cfg.MetricsEnabled)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := LoadConfig(env.Map(map[string]string{
			"FLASK_HOST":           "127.0.0.1",
			"FLASK_PORT":           "9000",
			"FLASK_DEBUG":          "false",
			"SHUTDOWN_TIMEOUT":     "5s",
			"CORS_ALLOWED_ORIGINS": "http://localhost:8081, https://foodprint.app",
		}))
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1", cfg.Host)
		assert.Equal(t, 9000, cfg.Port)
		assert.False(t, cfg.Debug)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, []string{"http://localhost:8081", "https://foodprint.app"}, cfg.CORSOrigins)
	})

	t.Run("invalid port", func(t *testing.T) {
		_, err := LoadConfig(env.Map(map[string]string{"FLASK_PORT": "abc"}))
		var perr *env.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "FLASK_PORT", perr.Key)
	})

	t.Run("port out of range", func(t *testing.T) {
		_, err := LoadConfig(env.Map(map[string]string{"FLASK_PORT": "70000"}))
		var verr *validator.Error
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.FieldErrors, "FLASK_PORT")
	})

	t.Run("invalid duration", func(t *testing.T) {
		_, err := LoadConfig(env.Map(map[string]string{"SERVER_READ_TIMEOUT": "fast"}))
		assert.Error(t, err)
	})

	t.Run("warning log level", func(t *testing.T) {
		cfg, err := LoadConfig(env.Map(map[string]string{"LOG_LEVEL": "WARNING"}))
		require.NoError(t, err)
		assert.Equal(t, "warning", cfg.LogLevel)
	})

	t.Run("metrics toggle", func(t *testing.T) {
		cfg, err := LoadConfig(env.Map(map[string]string{"METRICS_ENABLED": "false"}))
		require.NoError(t, err)
		assert.False(t, cfg.MetricsEnabled)

		_, err = LoadConfig(env.Map(map[string]string{"METRICS_ENABLED": "sometimes"}))
		var perr *env.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "METRICS_ENABLED", perr.Key)
	})

	t.Run("unknown log level", func(t *testing.T) {
		_, err := LoadConfig(env.Map(map[string]string{"LOG_LEVEL": "chatty"}))
		assert.ErrorContains(t, err, "LOG_LEVEL")
	})
}

func TestLoadEnvFiles(t *testing.T) {
	const (
		fileKey   = "FOODPRINT_CONFIG_TEST_FROM_FILE"
		shadowKey = "FOODPRINT_CONFIG_TEST_SHADOWED"
	)

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(fileKey+"=from-file\n"+shadowKey+"=from-file\n"), 0o600))

	t.Setenv("ENV_FILE", path)
	t.Setenv(shadowKey, "from-env")
	t.Cleanup(func() { os.Unsetenv(fileKey) })

	require.NoError(t, LoadEnvFiles())

	assert.Equal(t, "from-file", os.Getenv(fileKey))
	assert.Equal(t, "from-env", os.Getenv(shadowKey))
}

func TestLoadEnvFilesMissing(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

		err := LoadEnvFiles()
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.ErrorContains(t, err, "absent.env")
	})

	t.Run("implicit files", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("ENV_FILE", "")
		assert.NoError(t, LoadEnvFiles())
	})
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
