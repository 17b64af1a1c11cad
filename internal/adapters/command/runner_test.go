package command_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/felixgeelhaar/wpsetup/internal/adapters/command"
	"github.com/felixgeelhaar/wpsetup/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_CapturesStdout(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	runner := command.NewExecRunner()

	result, err := runner.Run(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "hello\n", result.Stdout)
}

func TestExecRunner_NonZeroExitIsNotAnError(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	runner := command.NewExecRunner()

	result, err := runner.Run(context.Background(), "sh", "-c", "exit 3")
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, 3, result.ExitCode)
}

func TestFakeRunner_RecordsCallsAndServesCannedResults(t *testing.T) {
	t.Parallel()

	runner := command.NewFakeRunner()
	runner.Results["wp cache flush"] = ports.CommandResult{Stdout: "Success"}

	result, err := runner.Run(context.Background(), "wp", "cache", "flush")
	require.NoError(t, err)
	assert.Equal(t, "Success", result.Stdout)

	_, err = runner.Run(context.Background(), "wp", "core", "version")
	require.NoError(t, err)

	require.Len(t, runner.Calls, 2)
	assert.Equal(t, []string{"cache", "flush"}, runner.Calls[0].Args)
	assert.Equal(t, "wp", runner.Calls[1].Command)
}
