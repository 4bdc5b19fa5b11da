package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromFallsBackToRoot(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetRoot(zap.New(core))
	t.Cleanup(func() { SetRoot(nil) })

	From(context.Background()).Info("root")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "root", logs.All()[0].Message)
}

func TestContextCarriesLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetRoot(zap.NewNop())
	t.Cleanup(func() { SetRoot(nil) })

	ctx := Context(context.Background(), zap.New(core))
	logger, ctx := FromWithFields(ctx, zap.Int("tag", 7))
	logger.Debug("first")

	sub, _ := SubFrom(ctx, "renderer")
	sub.Info("second")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(7), entries[0].ContextMap()["tag"])
	assert.Equal(t, "renderer", entries[1].LoggerName)
	assert.Equal(t, int64(7), entries[1].ContextMap()["tag"])
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { SetRoot(nil) })

	_, err := Init("loud", false)
	assert.Error(t, err)

	logger, err := Init("warn", false)
	require.NoError(t, err)
	assert.Same(t, logger, Root())
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
	assert.NotEmpty(t, SessionID())
}
