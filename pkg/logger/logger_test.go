package logger

import (
	"path/filepath"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"NodeDashboard/config"
)

func TestLevelOf(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, levelOf("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, levelOf("warn"))
	assert.Equal(t, zapcore.ErrorLevel, levelOf("Error"))
	assert.Equal(t, zapcore.InfoLevel, levelOf("verbose"))
	assert.Equal(t, zapcore.InfoLevel, levelOf(""))
}

func TestHlogLevel(t *testing.T) {
	assert.Equal(t, hlog.LevelDebug, hlogLevel(zapcore.DebugLevel))
	assert.Equal(t, hlog.LevelError, hlogLevel(zapcore.ErrorLevel))
	assert.Equal(t, hlog.LevelInfo, hlogLevel(zapcore.FatalLevel))
}

func TestOpenOutputFallsBackToStdout(t *testing.T) {
	ws, closer, err := openOutput("stdout")
	require.NoError(t, err)
	assert.NotNil(t, ws)
	assert.Nil(t, closer)

	ws, closer, err = openOutput(filepath.Join(t.TempDir(), "missing", "dir", "app.log"))
	assert.Error(t, err)
	assert.NotNil(t, ws)
	assert.Nil(t, closer)

	ws, closer, err = openOutput(filepath.Join(t.TempDir(), "app.log"))
	require.NoError(t, err)
	assert.NotNil(t, ws)
	require.NotNil(t, closer)
	assert.NoError(t, closer.Close())
}

func TestForRunAddsRunFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = prev })

	ForRun(42, "refresh").Info("Dashboard rendered")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(42), fields["run_id"])
	assert.Equal(t, "refresh", fields["trigger"])
}

func TestBaseFields(t *testing.T) {
	fields := baseFields(config.Config{ServiceName: "nodedash", ServiceVersion: "0.1.0"}, "worker")

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	assert.Equal(t, map[string]interface{}{
		"service":   "nodedash",
		"component": "worker",
		"version":   "0.1.0",
	}, enc.Fields)
}
