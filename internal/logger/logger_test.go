package logger_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Bethel-nz/foodprint/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromZap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.FromZap(zap.New(core)).With(logger.String("component", "test"))

	log.Debug("hidden")
	log.Info("visible", logger.Int("port", 5000))
	log.Error("failed", logger.Error(errors.New("boom")))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "visible", entries[0].Message)
	assert.Equal(t, "test", entries[0].ContextMap()["component"])
	assert.EqualValues(t, 5000, entries[0].ContextMap()["port"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := logger.New(logger.Config{Level: "warn", OutputPaths: []string{path}})
	require.NoError(t, err)

	log.Info("filtered")
	log.Warn("kept", logger.Bool("debug", true))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "filtered")
	assert.Contains(t, string(data), `"msg":"kept"`)
	assert.Contains(t, string(data), `"debug":true`)
}

func TestContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.FromZap(zap.New(core))

	ctx := logger.WithContext(context.Background(), log)
	logger.FromContext(ctx).Info("from context")
	assert.Equal(t, 1, logs.Len())

	fallback := logger.FromContext(context.Background())
	require.NotNil(t, fallback)
	fallback.Info("discarded")
	assert.NoError(t, fallback.Sync())
}
