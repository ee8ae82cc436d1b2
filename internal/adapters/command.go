package adapters

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
)

// RealCommandExecutor implements interfaces.CommandExecutor using os/exec.
type RealCommandExecutor struct{}

// NewRealCommandExecutor creates a new real command executor.
func NewRealCommandExecutor() *RealCommandExecutor {
	return &RealCommandExecutor{}
}

// Run executes name with args in dir, bounded by ctx, with stdout and
// stderr captured separately. A non-zero exit is reported through
// ExecResult.ExitCode, not returned as an error. If ctx's deadline expires
// first, Run returns a result with TimedOut set and ExitCode -1 and a nil
// error; Run only errors if the process could not be started.
func (e *RealCommandExecutor) Run(ctx context.Context, dir string, env []string, name string, args ...string) (interfaces.ExecResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := interfaces.ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if ctx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		result.ExitCode = -1
		return result, nil
	}

	if err == nil {
		result.ExitCode = 0
		return result, nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	// The process never started (missing binary, permission denied, ...).
	return result, err
}

func (e *RealCommandExecutor) Start(name string, args ...string) (interfaces.Process, error) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &ProcessWrapper{cmd}, nil
}

func (e *RealCommandExecutor) StartInDir(dir string, name string, args ...string) (interfaces.Process, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &ProcessWrapper{cmd}, nil
}
