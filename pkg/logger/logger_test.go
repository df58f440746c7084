package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observe routes all agents to an in-memory core for the test.
func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	prev := active.Load().Core
	core, logs := observer.New(zapcore.DebugLevel)
	setCore(core)
	t.Cleanup(func() {
		setCore(prev)
		level.SetLevel(zapcore.InfoLevel)
	})
	return logs
}

func TestAgentCreatedBeforeCoreSwap(t *testing.T) {
	early := NewLogAgent("early")
	logs := observe(t)

	early.Info("structured", zap.String("k", "v"))
	early.Infof("printf %d", 1)

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "early", entries[0].LoggerName)
	require.Equal(t, "structured", entries[0].Message)
	require.Equal(t, "v", entries[0].ContextMap()["k"])
	require.Equal(t, "printf 1", entries[1].Message)
}

func TestCallerIsTheCallSite(t *testing.T) {
	log := NewLogAgent("caller")
	logs := observe(t)

	log.Info("structured")
	log.Warnf("printf")

	for _, e := range logs.All() {
		require.True(t, e.Caller.Defined, e.Message)
		require.Equal(t, "logger_test.go", filepath.Base(e.Caller.File), e.Message)
	}
}

func TestWithFieldsFollowSwap(t *testing.T) {
	child := NewLogAgent("with").With(zap.String("request-id", "r1"))
	logs := observe(t)

	child.Info("hello")
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "r1", logs.All()[0].ContextMap()["request-id"])
}

func TestInit(t *testing.T) {
	log := NewLogAgent("init")
	prev := active.Load().Core
	t.Cleanup(func() {
		setCore(prev)
		level.SetLevel(zapcore.InfoLevel)
	})

	require.Error(t, Init("chatty", false))

	require.NoError(t, Init("warn", true))
	require.True(t, prev != active.Load().Core)
	require.False(t, log.Core().Enabled(zapcore.InfoLevel))
	require.True(t, log.Core().Enabled(zapcore.WarnLevel))
}
