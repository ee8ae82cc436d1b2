package environment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
	"github.com/fastxteam/fastx-tui/internal/logging"
	"github.com/fastxteam/fastx-tui/internal/mocks"
)

func newTestManager(t *testing.T) (*Manager, *mocks.FileSystem, *mocks.CommandExecutor) {
	t.Helper()
	fs := mocks.NewFileSystem()
	exec := mocks.NewCommandExecutor()
	exec.SetResponse("uv", interfaces.ExecResult{ExitCode: 0}, nil)
	m := NewManager("/env_base", fs, exec, logging.NewNop())
	return m, fs, exec
}

func TestExists_FalseWhenDirectoryAbsent(t *testing.T) {
	m, _, _ := newTestManager(t)
	assert.False(t, m.Exists("Alpha"))
}

func TestExists_TrueWhenInterpreterPresent(t *testing.T) {
	m, fs, _ := newTestManager(t)
	fs.AddFile(m.PythonPath("Alpha"), []byte("#!binary"), time.Now())
	assert.True(t, m.Exists("Alpha"))
}

func TestIsFresh_FalseWhenEnvironmentAbsent(t *testing.T) {
	m, _, _ := newTestManager(t)
	assert.False(t, m.IsFresh("Alpha", "/plugins/Alpha"))
}

func TestIsFresh_TrueWhenManifestsOlderThanEnv(t *testing.T) {
	m, fs, _ := newTestManager(t)
	envTime := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	fs.AddDir(m.EnvPath("Alpha"), envTime)
	fs.AddFile(m.PythonPath("Alpha"), []byte("bin"), envTime)
	fs.AddFile("/plugins/Alpha/pyproject.toml", []byte("[project]\n"), envTime.Add(-time.Hour))

	assert.True(t, m.IsFresh("Alpha", "/plugins/Alpha"))
}

func TestIsFresh_FalseWhenManifestNewerThanEnv(t *testing.T) {
	m, fs, _ := newTestManager(t)
	envTime := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	fs.AddDir(m.EnvPath("Alpha"), envTime)
	fs.AddFile(m.PythonPath("Alpha"), []byte("bin"), envTime)
	fs.AddFile("/plugins/Alpha/pyproject.toml", []byte("[project]\n"), envTime.Add(time.Hour))

	assert.False(t, m.IsFresh("Alpha", "/plugins/Alpha"))
}

func TestEnsure_SkipsWhenFresh(t *testing.T) {
	m, fs, exec := newTestManager(t)
	envTime := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	fs.AddDir(m.EnvPath("Alpha"), envTime)
	fs.AddFile(m.PythonPath("Alpha"), []byte("bin"), envTime)

	require.NoError(t, m.Ensure(context.Background(), "Alpha", "/plugins/Alpha"))
	assert.False(t, exec.Invoked("uv", "venv"))
}

func TestEnsure_CreatesWithUVAndSyncsFromLock(t *testing.T) {
	m, fs, exec := newTestManager(t)
	fs.AddFile("/plugins/Alpha/uv.lock", []byte("lock"), time.Now())
	exec.SetResponse("uv", interfaces.ExecResult{ExitCode: 0}, nil)

	err := m.Ensure(context.Background(), "Alpha", "/plugins/Alpha")
	require.NoError(t, err)
	assert.True(t, exec.Invoked("uv", "venv"))
	assert.True(t, exec.Invoked("uv", "sync"))
}

func TestEnsure_WritesEnvStamp(t *testing.T) {
	m, fs, exec := newTestManager(t)
	fs.AddFile("/plugins/Alpha/uv.lock", []byte("lock"), time.Now())
	exec.SetResponse("uv", interfaces.ExecResult{ExitCode: 0}, nil)

	require.NoError(t, m.Ensure(context.Background(), "Alpha", "/plugins/Alpha"))

	stamp, ok := m.EnvStamp("Alpha")
	require.True(t, ok)
	assert.NotEmpty(t, stamp)
}

func TestEnvStamp_AbsentBeforeProvisioning(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, ok := m.EnvStamp("Alpha")
	assert.False(t, ok)
}

func TestEnsure_FallsBackToVenvModuleWhenUVCreationFails(t *testing.T) {
	fs := mocks.NewFileSystem()
	exec := mocks.NewCommandExecutor()
	m := NewManager("/env_base", fs, exec, logging.NewNop())
	fs.AddFile("/plugins/Alpha/requirements.txt", []byte("requests\n"), time.Now())
	exec.SetResponse("uv", interfaces.ExecResult{ExitCode: 1, Stderr: "no uv"}, nil)

	err := m.Ensure(context.Background(), "Alpha", "/plugins/Alpha")
	require.NoError(t, err)
	assert.True(t, exec.Invoked("python3", "-m", "venv"))
	assert.True(t, exec.Invoked(m.PythonPath("Alpha"), "-m", "pip", "install", "-r"))
}

func TestRemove_ClearsReadOnlyBitsThenDeletes(t *testing.T) {
	m, fs, _ := newTestManager(t)
	fs.AddDir(m.EnvPath("Alpha"), time.Now())
	fs.AddFile(m.PythonPath("Alpha"), []byte("bin"), time.Now())

	require.NoError(t, m.Remove(context.Background(), "Alpha"))
	assert.False(t, m.Exists("Alpha"))

	sawChmod := false
	for _, call := range fs.Calls {
		if call == "Chmod(/env_base/Alpha, -rwxr-xr-x)" {
			sawChmod = true
		}
	}
	assert.True(t, sawChmod, "expected Remove to clear read-only bits before deleting")
}

func TestRemove_NoopWhenAbsent(t *testing.T) {
	m, _, _ := newTestManager(t)
	require.NoError(t, m.Remove(context.Background(), "Alpha"))
}

func TestExecIn_ErrorsWithoutEnvironment(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, err := m.ExecIn(context.Background(), "Alpha", []string{"-c", "print(1)"}, "", time.Second)
	assert.Error(t, err)
}

func TestExecIn_RunsInterpreterWithArgv(t *testing.T) {
	m, fs, exec := newTestManager(t)
	fs.AddFile(m.PythonPath("Alpha"), []byte("bin"), time.Now())
	exec.SetResponse(m.PythonPath("Alpha"), interfaces.ExecResult{ExitCode: 0, Stdout: "1\n"}, nil)

	result, err := m.ExecIn(context.Background(), "Alpha", []string{"-c", "print(1)"}, "/plugins/Alpha", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.True(t, exec.Invoked(m.PythonPath("Alpha"), "-c", "print(1)"))
}
