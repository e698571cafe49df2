package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	t.Cleanup(func() {
		Logger = zap.NewNop().Sugar()
		JSONOutput = false
	})

	require.NoError(t, Initialize(false, VerbosityInfo))
	require.NotNil(t, Logger)
	assert.False(t, JSONOutput)

	require.NoError(t, Initialize(true, VerbosityQuiet))
	assert.True(t, JSONOutput)
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityQuiet, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{7, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestShouldLogTrace(t *testing.T) {
	assert.False(t, ShouldLogTrace(VerbosityDebug))
	assert.True(t, ShouldLogTrace(VerbosityTrace))
	assert.True(t, ShouldLogTrace(VerbosityTrace+1))
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "Quiet", LevelName(VerbosityQuiet))
	assert.Equal(t, "Info (-v)", LevelName(VerbosityInfo))
	assert.Equal(t, "Trace (-vvv)", LevelName(9))
}

func TestConsoleEncoderLine(t *testing.T) {
	enc := newConsoleEncoder()
	buf, err := enc.EncodeEntry(
		zapcore.Entry{Level: zapcore.WarnLevel, LoggerName: "gather", Message: "atom collision"},
		[]zapcore.Field{
			zap.String(FieldAtom, "sdk://pkg/foo"),
			zap.Int(FieldCount, 2),
		},
	)
	require.NoError(t, err)
	assert.Equal(t, "warning: gather: atom collision  atom=sdk://pkg/foo  count=2\n", buf.String())
}

func TestConsoleEncoderInfoHasNoPrefix(t *testing.T) {
	enc := newConsoleEncoder()
	buf, err := enc.EncodeEntry(
		zapcore.Entry{Level: zapcore.InfoLevel, Message: "gathered 12 atoms"},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, "gathered 12 atoms\n", buf.String())
}

func TestNopBeforeInitialize(t *testing.T) {
	// Package-level helpers must be safe before Initialize is ever called.
	assert.NotPanics(t, func() {
		Info("early message")
		Debugw("early", FieldCount, 1)
	})
}
