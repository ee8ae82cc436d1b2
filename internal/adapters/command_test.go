package adapters

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealCommandExecutor_Run(t *testing.T) {
	executor := NewRealCommandExecutor()
	ctx := context.Background()

	t.Run("simple echo captures stdout", func(t *testing.T) {
		result, err := executor.Run(ctx, "", nil, "echo", "hello world")
		require.NoError(t, err)
		assert.Equal(t, 0, result.ExitCode)
		assert.Contains(t, result.Stdout, "hello world")
		assert.False(t, result.TimedOut)
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		cmd, args := "false", []string{}
		if runtime.GOOS == "windows" {
			cmd, args = "cmd", []string{"/c", "exit", "1"}
		}
		result, err := executor.Run(ctx, "", nil, cmd, args...)
		require.NoError(t, err)
		assert.Equal(t, 1, result.ExitCode)
	})

	t.Run("stdout and stderr kept separate", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("sh -c not available on windows")
		}
		result, err := executor.Run(ctx, "", nil, "sh", "-c", "echo out; echo err 1>&2")
		require.NoError(t, err)
		assert.Contains(t, result.Stdout, "out")
		assert.NotContains(t, result.Stdout, "err")
		assert.Contains(t, result.Stderr, "err")
	})

	t.Run("missing binary returns error", func(t *testing.T) {
		_, err := executor.Run(ctx, "", nil, "nonexistentcommand123")
		assert.Error(t, err)
	})

	t.Run("runs in the requested directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		testFile := "test.txt"
		err := os.WriteFile(filepath.Join(tmpDir, testFile), []byte("content"), 0644)
		require.NoError(t, err)

		lsCmd, lsArgs := "ls", []string{"-a"}
		if runtime.GOOS == "windows" {
			lsCmd, lsArgs = "cmd", []string{"/c", "dir", "/b"}
		}

		result, err := executor.Run(ctx, tmpDir, nil, lsCmd, lsArgs...)
		require.NoError(t, err)
		assert.Contains(t, result.Stdout, testFile)
	})

	t.Run("custom environment variables are visible", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("sh -c not available on windows")
		}
		result, err := executor.Run(ctx, "", []string{"CUSTOM_VAR=test_value"}, "sh", "-c", "echo $CUSTOM_VAR")
		require.NoError(t, err)
		assert.Contains(t, result.Stdout, "test_value")
	})

	t.Run("context deadline marks the result as timed out", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("sleep not available on windows")
		}
		deadlineCtx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		result, err := executor.Run(deadlineCtx, "", nil, "sleep", "2")
		require.NoError(t, err)
		assert.True(t, result.TimedOut)
	})
}

func TestRealCommandExecutor_Start(t *testing.T) {
	executor := NewRealCommandExecutor()

	t.Run("start and wait for command", func(t *testing.T) {
		proc, err := executor.Start("echo", "async test")
		require.NoError(t, err)
		assert.NotNil(t, proc)

		err = proc.Wait()
		assert.NoError(t, err)
	})

	t.Run("start command and get PID", func(t *testing.T) {
		sleepCmd, sleepArgs := "sleep", []string{"0.1"}
		if runtime.GOOS == "windows" {
			sleepCmd, sleepArgs = "timeout", []string{"/t", "1", "/nobreak"}
		}

		proc, err := executor.Start(sleepCmd, sleepArgs...)
		require.NoError(t, err)
		assert.NotNil(t, proc)

		assert.Greater(t, proc.Pid(), 0)
		proc.Kill()
	})

	t.Run("start non-existent command", func(t *testing.T) {
		proc, err := executor.Start("nonexistentcommand456")
		assert.Error(t, err)
		assert.Nil(t, proc)
	})
}

func TestRealCommandExecutor_StartInDir(t *testing.T) {
	executor := NewRealCommandExecutor()

	t.Run("start command in directory", func(t *testing.T) {
		tmpDir := t.TempDir()

		pwdCmd := "pwd"
		if runtime.GOOS == "windows" {
			pwdCmd = "cd"
		}

		proc, err := executor.StartInDir(tmpDir, pwdCmd)
		require.NoError(t, err)
		assert.NotNil(t, proc)

		err = proc.Wait()
		assert.NoError(t, err)
	})
}

func TestProcessWrapper(t *testing.T) {
	executor := NewRealCommandExecutor()

	t.Run("kill and wait", func(t *testing.T) {
		sleepCmd, sleepArgs := "sleep", []string{"2"}
		if runtime.GOOS == "windows" {
			sleepCmd, sleepArgs = "timeout", []string{"/t", "2", "/nobreak"}
		}

		proc, err := executor.Start(sleepCmd, sleepArgs...)
		require.NoError(t, err)
		assert.NotNil(t, proc)
		assert.Greater(t, proc.Pid(), 0)

		err = proc.Kill()
		assert.NoError(t, err)

		err = proc.Wait()
		assert.Error(t, err)
	})

	t.Run("pipes available before start", func(t *testing.T) {
		proc := NewProcessWrapper("echo", "test output")
		require.NotNil(t, proc)

		stdout, err := proc.StdoutPipe()
		assert.NoError(t, err)
		assert.NotNil(t, stdout)

		stderr, err := proc.StderrPipe()
		assert.NoError(t, err)
		assert.NotNil(t, stderr)

		stdin, err := proc.StdinPipe()
		assert.NoError(t, err)
		assert.NotNil(t, stdin)

		err = proc.Start()
		assert.NoError(t, err)

		err = proc.Wait()
		assert.NoError(t, err)
	})
}
