package mocks

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
)

// Call records one CommandExecutor.Run invocation.
type Call struct {
	Dir  string
	Env  []string
	Name string
	Args []string
}

// CommandExecutor implements interfaces.CommandExecutor, replaying a
// scripted response keyed by the invoked binary name, and falling back to a
// default result otherwise.
type CommandExecutor struct {
	mu    sync.Mutex
	Calls []Call

	Responses     map[string]interfaces.ExecResult
	ResponseErr   map[string]error
	DefaultResult interfaces.ExecResult
	DefaultErr    error

	// AllowStart makes Start/StartInDir succeed with a no-op fakeProcess
	// instead of the default "not scripted" error, for callers (the Update
	// Manager's staged swap) that only need to observe the call was made.
	AllowStart bool
}

// NewCommandExecutor creates an empty scripted executor.
func NewCommandExecutor() *CommandExecutor {
	return &CommandExecutor{
		Responses:   make(map[string]interfaces.ExecResult),
		ResponseErr: make(map[string]error),
	}
}

// SetResponse scripts the result returned every time name is run, until it
// is set again.
func (e *CommandExecutor) SetResponse(name string, result interfaces.ExecResult, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Responses[name] = result
	e.ResponseErr[name] = err
}

func (e *CommandExecutor) Run(ctx context.Context, dir string, env []string, name string, args ...string) (interfaces.ExecResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Calls = append(e.Calls, Call{Dir: dir, Env: env, Name: name, Args: args})

	if result, ok := e.Responses[name]; ok {
		return result, e.ResponseErr[name]
	}
	return e.DefaultResult, e.DefaultErr
}

func (e *CommandExecutor) Start(name string, args ...string) (interfaces.Process, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Calls = append(e.Calls, Call{Name: name, Args: args})
	if e.AllowStart {
		return &fakeProcess{}, nil
	}
	return nil, fmt.Errorf("mocks.CommandExecutor: Start not scripted")
}

func (e *CommandExecutor) StartInDir(dir string, name string, args ...string) (interfaces.Process, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Calls = append(e.Calls, Call{Dir: dir, Name: name, Args: args})
	if e.AllowStart {
		return &fakeProcess{}, nil
	}
	return nil, fmt.Errorf("mocks.CommandExecutor: StartInDir not scripted")
}

// fakeProcess is a no-op interfaces.Process for AllowStart callers that
// never actually wait on or signal the process.
type fakeProcess struct{}

func (p *fakeProcess) Wait() error               { return nil }
func (p *fakeProcess) Kill() error                { return nil }
func (p *fakeProcess) Signal(sig os.Signal) error { return nil }
func (p *fakeProcess) Pid() int                   { return 0 }
func (p *fakeProcess) StdoutPipe() (io.ReadCloser, error) { return nil, fmt.Errorf("fakeProcess: no stdout") }
func (p *fakeProcess) StderrPipe() (io.ReadCloser, error) { return nil, fmt.Errorf("fakeProcess: no stderr") }
func (p *fakeProcess) StdinPipe() (io.WriteCloser, error) { return nil, fmt.Errorf("fakeProcess: no stdin") }

// Invoked reports whether name was run with args as a prefix of its
// argument list.
func (e *CommandExecutor) Invoked(name string, argsPrefix ...string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, call := range e.Calls {
		if call.Name != name || len(call.Args) < len(argsPrefix) {
			continue
		}
		match := true
		for i, a := range argsPrefix {
			if call.Args[i] != a {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

var _ interfaces.CommandExecutor = (*CommandExecutor)(nil)
