// Package interfaces provides the dependency-injection ports shared across
// the config store, environment manager, plugin registry, and update
// manager. Concrete adapters live in internal/adapters; tests substitute
// fakes/mocks behind these same ports.
package interfaces

import (
	"context"
	"io"
	"os"
	"time"
)

// FileSystem interface abstracts file system operations
type FileSystem interface {
	// File operations
	Open(name string) (File, error)
	Create(name string) (File, error)
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error

	// Directory operations
	Mkdir(name string, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	ReadDir(dirname string) ([]os.DirEntry, error)

	// File info operations
	Stat(name string) (os.FileInfo, error)
	Lstat(name string) (os.FileInfo, error)
	Exists(path string) bool
	IsDir(path string) bool

	// Path operations
	Getwd() (string, error)
	Chdir(dir string) error
	TempDir() string

	// File content operations
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm os.FileMode) error

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Chmod is needed by the environment manager to clear read-only bits
	// on descendants before deleting a provisioned environment.
	Chmod(name string, mode os.FileMode) error
}

// File interface abstracts file operations
type File interface {
	io.Reader
	io.Writer
	io.Closer
	io.Seeker

	Name() string
	Stat() (os.FileInfo, error)
	Sync() error
	Truncate(size int64) error
}

// CommandExecutor interface abstracts subprocess execution. Unlike the
// teacher's CombinedOutput-based executor, streams are kept separate so
// callers (notably the Environment Manager) can return distinct stdout and
// stderr per spec.md §4.2's exec_in contract.
type CommandExecutor interface {
	// Run executes name with args in dir (cwd if empty), bounded by the
	// context's deadline, and returns captured stdout/stderr and the exit
	// code. A non-zero exit code is not itself an error, and an expired
	// deadline is reported through ExecResult.TimedOut; Run only returns
	// an error if the process could not be started.
	Run(ctx context.Context, dir string, env []string, name string, args ...string) (ExecResult, error)

	// Start launches a long-running process without waiting.
	Start(name string, args ...string) (Process, error)
	StartInDir(dir string, name string, args ...string) (Process, error)
}

// ExecResult is the outcome of CommandExecutor.Run.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
}

// Process interface abstracts process management
type Process interface {
	Wait() error
	Kill() error
	Signal(sig os.Signal) error
	Pid() int
	StdoutPipe() (io.ReadCloser, error)
	StderrPipe() (io.ReadCloser, error)
	StdinPipe() (io.WriteCloser, error)
}

// HTTPClient abstracts the HTTP calls the Update Manager makes against the
// release index; kept minimal (GET only) since that is all §4.5 needs.
type HTTPClient interface {
	Get(url string) ([]byte, int, error)
}

// Logger abstracts structured logging. The concrete adapter wraps
// go.uber.org/zap's SugaredLogger (see internal/logging); components accept
// this interface rather than importing zap directly, matching the
// dependency-injection style of the rest of this package.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) Logger
}

// Clock abstracts time so the Config Store and Update Manager can be tested
// without real sleeps or wall-clock reads.
type Clock interface {
	Now() time.Time
}
