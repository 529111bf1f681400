package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/releasekit/internal/execshell"
	"github.com/temirov/releasekit/internal/ui"
)

func TestConsoleCommandEventLoggerRendersLifecycleMessages(t *testing.T) {
	observerCore, observedLogs := observer.New(zap.DebugLevel)
	eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observerCore))

	command := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"status", "--porcelain"}, WorkingDirectory: "/workspace/repo"},
	}

	eventLogger.CommandStarted(command)
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1, StandardError: "boom"})
	eventLogger.CommandExecutionFailed(command, errors.New("not found"))

	logEntries := observedLogs.All()
	require.Len(t, logEntries, 4)
	require.Equal(t, "Reviewing working tree status in /workspace/repo", logEntries[0].Message)
	require.Equal(t, zap.InfoLevel, logEntries[1].Level)
	require.Equal(t, zap.WarnLevel, logEntries[2].Level)
	require.Equal(t, zap.ErrorLevel, logEntries[3].Level)
}
