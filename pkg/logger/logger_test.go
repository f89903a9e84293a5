package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitSetsLevel(t *testing.T) {
	require.NoError(t, Init("debug", false))
	require.True(t, Logger().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init("warn", true))
	require.False(t, Logger().Core().Enabled(zapcore.InfoLevel))
	require.True(t, Logger().Core().Enabled(zapcore.WarnLevel))
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	require.NoError(t, Init("chatty", false))
	require.True(t, Logger().Core().Enabled(zapcore.InfoLevel))
	require.False(t, Logger().Core().Enabled(zapcore.DebugLevel))
}

func TestWithModuleNeverNil(t *testing.T) {
	require.NotNil(t, WithModule("alarm"))
}
