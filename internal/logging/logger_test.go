package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("bogus"))
}

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		l, err := New(Config{Level: "debug", Format: format})
		require.NoError(t, err)
		assert.NotNil(t, l)
	}
}

func TestObservedFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromCore(core).Named("store").With(String("pair", "Fibroblasts2Pericytes"))

	l.Info("bundle loaded",
		Int("rows", 3),
		Float64("max", 0.9),
		Bool("filtered", true),
		Duration("took", time.Millisecond),
		Err(errors.New("boom")),
		Any("labels", []string{"Itgb1"}),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "bundle loaded", entry.Message)
	assert.Equal(t, "store", entry.LoggerName)

	ctx := entry.ContextMap()
	assert.Equal(t, "Fibroblasts2Pericytes", ctx["pair"])
	assert.Equal(t, int64(3), ctx["rows"])
	assert.Equal(t, 0.9, ctx["max"])
	assert.Equal(t, true, ctx["filtered"])
	assert.Equal(t, time.Millisecond, ctx["took"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestErrNil(t *testing.T) {
	assert.Equal(t, "<nil>", Err(nil).Value)
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Info("ignored")
	assert.NotNil(t, l.With(String("k", "v")).Named("x"))
	assert.NoError(t, l.Sync())
}
