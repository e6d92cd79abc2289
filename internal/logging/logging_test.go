package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevelMapping(t *testing.T) {
	require.Equal(t, zapcore.ErrorLevel, LevelError.zapLevel())
	require.Equal(t, zapcore.WarnLevel, LevelWarn.zapLevel())
	require.Equal(t, zapcore.InfoLevel, LevelInfo.zapLevel())
	require.Equal(t, zapcore.DebugLevel, LevelDebug.zapLevel())
	require.Equal(t, zapcore.DebugLevel, LevelTrace.zapLevel())
}

func TestNopDiscardsWithoutPanicking(t *testing.T) {
	l := Nop()
	l.Error("boom")
	l.Warn("careful")
	l.Debug("detail")
	require.NoError(t, l.Sync())
}

func TestNewBuildsAtEveryLevel(t *testing.T) {
	for lvl := LevelSilent; lvl <= LevelTrace; lvl++ {
		l := New(lvl)
		require.NotNil(t, l)
		l.Error("probe")
	}
}
