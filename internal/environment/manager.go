// Package environment implements the Environment Manager (spec.md §4.2):
// one isolated dependency environment per plugin, created with uv when
// available and kept fresh against the plugin's manifest, grounded on
// original_source/core/venv_manager.py's creator/sync preference order.
package environment

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
)

const (
	// ManifestPyproject is the project manifest filename whose presence
	// drives pip/uv installs when no lock file exists.
	ManifestPyproject = "pyproject.toml"
	// ManifestLock is the preferred sync source when present.
	ManifestLock = "uv.lock"
	// ManifestRequirements is the flat fallback manifest.
	ManifestRequirements = "requirements.txt"
)

// Manager provisions and tears down per-plugin environments rooted under
// baseDir.
type Manager struct {
	baseDir string
	fs      interfaces.FileSystem
	exec    interfaces.CommandExecutor
	logger  interfaces.Logger

	uvChecked   bool
	uvAvailable bool
}

// NewManager creates a Manager rooted at baseDir, creating it if absent.
func NewManager(baseDir string, fs interfaces.FileSystem, exec interfaces.CommandExecutor, logger interfaces.Logger) *Manager {
	if !fs.Exists(baseDir) {
		_ = fs.MkdirAll(baseDir, 0755)
	}
	return &Manager{baseDir: baseDir, fs: fs, exec: exec, logger: logger}
}

// EnvPath returns env_base/<plugin_id>.
func (m *Manager) EnvPath(pluginID string) string {
	return filepath.Join(m.baseDir, pluginID)
}

// interpreterSubpath computes the platform-specific interpreter path within
// an environment directory, matching venv_manager.py's
// get_venv_python_path: Scripts\python.exe on Windows, bin/python elsewhere.
func interpreterSubpath() string {
	if runtime.GOOS == "windows" {
		return filepath.Join("Scripts", "python.exe")
	}
	return filepath.Join("bin", "python")
}

// PythonPath returns the expected interpreter path for pluginID's
// environment, whether or not it currently exists.
func (m *Manager) PythonPath(pluginID string) string {
	return filepath.Join(m.EnvPath(pluginID), interpreterSubpath())
}

// Exists is a structural check: the environment directory and its
// interpreter binary are both present.
func (m *Manager) Exists(pluginID string) bool {
	return m.fs.Exists(m.EnvPath(pluginID)) && m.fs.Exists(m.PythonPath(pluginID))
}

var manifestFiles = []string{ManifestPyproject, ManifestLock, ManifestRequirements}

// IsFresh is true iff the environment exists and its directory's mtime is
// newer than every present manifest file's mtime (§4.2, §8 property 5).
func (m *Manager) IsFresh(pluginID, pluginDir string) bool {
	if !m.Exists(pluginID) {
		return false
	}
	envInfo, err := m.fs.Stat(m.EnvPath(pluginID))
	if err != nil {
		return false
	}
	envMtime := envInfo.ModTime()

	for _, name := range manifestFiles {
		path := filepath.Join(pluginDir, name)
		if !m.fs.Exists(path) {
			continue
		}
		info, err := m.fs.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(envMtime) {
			return false
		}
	}
	return true
}

func (m *Manager) detectUV(ctx context.Context) bool {
	if m.uvChecked {
		return m.uvAvailable
	}
	m.uvChecked = true
	result, err := m.exec.Run(ctx, "", nil, "uv", "--version")
	m.uvAvailable = err == nil && result.ExitCode == 0
	if !m.uvAvailable {
		m.logger.Warnw("uv not available, falling back to venv/pip")
	}
	return m.uvAvailable
}

// Ensure provisions pluginID's environment if it is not already fresh,
// preferring uv for both creation and sync, and falling back to the
// stdlib-equivalent venv/pip tool chain on failure (§4.2 algorithm).
func (m *Manager) Ensure(ctx context.Context, pluginID, pluginDir string) error {
	if m.IsFresh(pluginID, pluginDir) {
		m.logger.Debugw("environment already fresh, skipping", "plugin_id", pluginID)
		return nil
	}

	envPath := m.EnvPath(pluginID)
	if m.fs.Exists(envPath) {
		if err := m.Remove(ctx, pluginID); err != nil {
			return fmt.Errorf("%w: removing stale environment for %s: %v", ErrEnvCreateFailed, pluginID, err)
		}
	}

	if err := m.create(ctx, pluginID); err != nil {
		return err
	}
	m.writeStamp(pluginID)
	if err := m.sync(ctx, pluginID, pluginDir); err != nil {
		return err
	}
	m.logger.Infow("environment ready", "plugin_id", pluginID)
	return nil
}

func (m *Manager) create(ctx context.Context, pluginID string) error {
	envPath := m.EnvPath(pluginID)

	if m.detectUV(ctx) {
		result, err := m.exec.Run(ctx, "", nil, "uv", "venv", envPath)
		if err == nil && result.ExitCode == 0 {
			return nil
		}
		m.logger.Warnw("uv venv creation failed, falling back", "plugin_id", pluginID, "stderr", result.Stderr)
	}

	result, err := m.exec.Run(ctx, "", nil, "python3", "-m", "venv", envPath)
	if err != nil || result.ExitCode != 0 {
		return fmt.Errorf("%w: %s: %s", ErrEnvCreateFailed, pluginID, result.Stderr)
	}
	return nil
}

// sync installs dependencies in preference order: lock file, then project
// manifest, then flat requirements (§4.2).
func (m *Manager) sync(ctx context.Context, pluginID, pluginDir string) error {
	lockPath := filepath.Join(pluginDir, ManifestLock)
	pyprojectPath := filepath.Join(pluginDir, ManifestPyproject)
	requirementsPath := filepath.Join(pluginDir, ManifestRequirements)

	switch {
	case m.fs.Exists(lockPath):
		if m.detectUV(ctx) {
			result, err := m.exec.Run(ctx, pluginDir, nil, "uv", "sync")
			if err == nil && result.ExitCode == 0 {
				return nil
			}
			return fmt.Errorf("%w: uv sync for %s: %s", ErrEnvSyncFailed, pluginID, result.Stderr)
		}
		return fmt.Errorf("%w: %s has uv.lock but uv is unavailable", ErrEnvSyncFailed, pluginID)

	case m.fs.Exists(pyprojectPath):
		if deps, err := readDependencies(m.fs, pyprojectPath); err == nil {
			m.logger.Debugw("installing declared dependencies", "plugin_id", pluginID, "dependencies", deps)
		}
		python := m.PythonPath(pluginID)
		result, err := m.exec.Run(ctx, pluginDir, nil, python, "-m", "pip", "install", ".")
		if err != nil || result.ExitCode != 0 {
			return fmt.Errorf("%w: pip install . for %s: %s", ErrEnvSyncFailed, pluginID, result.Stderr)
		}
		return nil

	case m.fs.Exists(requirementsPath):
		python := m.PythonPath(pluginID)
		result, err := m.exec.Run(ctx, pluginDir, nil, python, "-m", "pip", "install", "-r", requirementsPath)
		if err != nil || result.ExitCode != 0 {
			return fmt.Errorf("%w: pip install -r for %s: %s", ErrEnvSyncFailed, pluginID, result.Stderr)
		}
		return nil

	default:
		m.logger.Debugw("no manifest present, nothing to sync", "plugin_id", pluginID)
		return nil
	}
}

type pyprojectManifest struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

func readDependencies(fs interfaces.FileSystem, path string) ([]string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc pyprojectManifest
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Project.Dependencies, nil
}

// Remove deletes pluginID's environment directory, clearing read-only bits
// on descendants first (creators on some platforms mark installed packages
// read-only, per §4.2 and §9).
func (m *Manager) Remove(ctx context.Context, pluginID string) error {
	envPath := m.EnvPath(pluginID)
	if !m.fs.Exists(envPath) {
		return nil
	}

	pending := []string{envPath}
	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		_ = m.fs.Chmod(dir, 0755)
		entries, err := m.fs.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			child := filepath.Join(dir, entry.Name())
			_ = m.fs.Chmod(child, 0755)
			if entry.IsDir() {
				pending = append(pending, child)
			}
		}
	}

	if err := m.fs.RemoveAll(envPath); err != nil {
		return fmt.Errorf("environment: removing %s: %w", pluginID, err)
	}
	return nil
}

// ExecIn runs argv's interpreter subprocess inside pluginID's environment,
// bounded by timeout; a non-zero exit is not itself an error (§4.2).
func (m *Manager) ExecIn(ctx context.Context, pluginID string, argv []string, cwd string, timeout time.Duration) (interfaces.ExecResult, error) {
	if len(argv) == 0 {
		return interfaces.ExecResult{}, fmt.Errorf("environment: ExecIn requires a non-empty argv")
	}
	if !m.Exists(pluginID) {
		return interfaces.ExecResult{}, fmt.Errorf("environment: no environment for %s", pluginID)
	}

	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	python := m.PythonPath(pluginID)
	return m.exec.Run(runCtx, cwd, nil, python, argv...)
}
