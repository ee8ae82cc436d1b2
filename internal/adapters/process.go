package adapters

import (
	"io"
	"os"
	"os/exec"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
)

// ProcessWrapper wraps *exec.Cmd to implement interfaces.Process, used for
// the long-running processes started through CommandExecutor.Start /
// StartInDir (such as the staged update swap's helper script).
type ProcessWrapper struct {
	cmd *exec.Cmd
}

// NewProcessWrapper creates a ProcessWrapper without starting the process.
func NewProcessWrapper(name string, args ...string) *ProcessWrapper {
	cmd := exec.Command(name, args...)
	return &ProcessWrapper{cmd}
}

// Start starts the wrapped process.
func (p *ProcessWrapper) Start() error {
	return p.cmd.Start()
}

func (p *ProcessWrapper) Wait() error {
	return p.cmd.Wait()
}

func (p *ProcessWrapper) Kill() error {
	if p.cmd.Process != nil {
		return p.cmd.Process.Kill()
	}
	return nil
}

func (p *ProcessWrapper) Signal(sig os.Signal) error {
	if p.cmd.Process != nil {
		return p.cmd.Process.Signal(sig)
	}
	return nil
}

func (p *ProcessWrapper) Pid() int {
	if p.cmd.Process != nil {
		return p.cmd.Process.Pid
	}
	return -1
}

func (p *ProcessWrapper) StdoutPipe() (io.ReadCloser, error) {
	return p.cmd.StdoutPipe()
}

func (p *ProcessWrapper) StderrPipe() (io.ReadCloser, error) {
	return p.cmd.StderrPipe()
}

func (p *ProcessWrapper) StdinPipe() (io.WriteCloser, error) {
	return p.cmd.StdinPipe()
}

var _ interfaces.Process = (*ProcessWrapper)(nil)
