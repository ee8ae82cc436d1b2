package environment

import (
	"path/filepath"

	"github.com/google/uuid"
)

// stampFileName names the file holding a pluginID's PluginEnvStamp: an
// opaque tracking token written anew each time the environment is created,
// so logs and the plugin-manager view can tell two provisionings of the
// same plugin apart even when the directory is rebuilt at the same path.
const stampFileName = ".fastxtui-stamp"

// writeStamp generates a fresh tracking token for pluginID's environment.
// Called once per successful create, not per sync, so a re-sync of an
// existing environment keeps its stamp.
func (m *Manager) writeStamp(pluginID string) {
	token := uuid.New().String()
	if err := m.fs.WriteFile(filepath.Join(m.EnvPath(pluginID), stampFileName), []byte(token), 0644); err != nil {
		m.logger.Warnw("failed to write environment stamp", "plugin_id", pluginID, "error", err)
	}
}

// EnvStamp returns pluginID's tracking token, if its environment has one.
func (m *Manager) EnvStamp(pluginID string) (string, bool) {
	data, err := m.fs.ReadFile(filepath.Join(m.EnvPath(pluginID), stampFileName))
	if err != nil {
		return "", false
	}
	return string(data), true
}
