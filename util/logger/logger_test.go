package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/tranvictor/schoolfactory/util/logger"
)

func TestNewLevels(t *testing.T) {
	l, err := logger.New(false)
	require.NoError(t, err)
	assert.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))

	l, err = logger.New(true)
	require.NoError(t, err)
	assert.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestSetReplacesGlobal(t *testing.T) {
	previous := logger.L()
	t.Cleanup(func() { logger.Set(previous) })

	l, logs := logger.TestObserved(t, zapcore.WarnLevel)
	logger.Set(l)
	logger.L().Infow("ignored")
	logger.L().Warnw("kept", "network", "sepolia")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "kept", entry.Message)
	assert.Equal(t, "sepolia", entry.ContextMap()["network"])
}
