package configstore

import (
	"encoding/json"
	"fmt"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
)

// RegisterPluginSchema records the JSON Schema fragment a plugin declared
// via interfaces.ConfigSchemaProvider, so subsequent SetPlugin/UpdatePlugin
// calls for that plugin are validated against it (§4.1: "plugin configs are
// validated against the schema the plugin declares, when it declares one").
// Plugins that do not implement ConfigSchemaProvider are never registered
// here and their settings pass through unvalidated.
func (s *Store) RegisterPluginSchema(pluginName string, fields []interfaces.PluginConfigField) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pluginSchemas == nil {
		s.pluginSchemas = make(map[string]string)
	}
	s.pluginSchemas[pluginName] = pluginFieldsToSchema(fields)
}

// GetPlugin returns the plugin's settings object (key = plugin name, value
// = JSON object per §6's ConfigEntry) if present.
func (s *Store) GetPlugin(pluginName string) (map[string]interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, found, err := s.read(pluginName, typePlugin)
	if err != nil {
		s.degraded = true
		return nil, false
	}
	if !found {
		return nil, false
	}
	obj, ok := value.(map[string]interface{})
	if !ok {
		return nil, false
	}
	return obj, true
}

// SetPlugin replaces the plugin's entire settings object, validating it
// against the plugin's declared schema when one was registered.
func (s *Store) SetPlugin(pluginName string, settings map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if schema, known := s.pluginSchemas[pluginName]; known {
		if reasons := validateValue(schema, settings); len(reasons) > 0 {
			return &ConfigInvalidError{Key: pluginName, Reasons: reasons}
		}
	}
	return s.upsert(pluginName, typePlugin, settings)
}

// UpdatePlugin merges updates into the plugin's existing settings object
// (creating it if absent) and re-validates the merged whole before writing,
// so a partial update can never leave a store entry that a fresh read would
// fail schema validation against.
func (s *Store) UpdatePlugin(pluginName string, updates map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := map[string]interface{}{}
	if value, found, err := s.read(pluginName, typePlugin); err != nil {
		s.degraded = true
		return err
	} else if found {
		if obj, ok := value.(map[string]interface{}); ok {
			existing = obj
		}
	}
	merged := make(map[string]interface{}, len(existing)+len(updates))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}

	if schema, known := s.pluginSchemas[pluginName]; known {
		if reasons := validateValue(schema, merged); len(reasons) > 0 {
			return &ConfigInvalidError{Key: pluginName, Reasons: reasons}
		}
	}
	return s.upsert(pluginName, typePlugin, merged)
}

// PluginAuditID returns the opaque tracking token for pluginName's config
// entry, if one is stored (§6 ConfigEntry audit fields).
func (s *Store) PluginAuditID(pluginName string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.AuditID(pluginName, typePlugin)
}

// RemovePlugin deletes the plugin's settings entry entirely, used by
// Lifecycle Controller's uninstall flow (§4.6).
func (s *Store) RemovePlugin(pluginName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(pluginName)
}

// ListPluginConfigs returns every plugin's settings object keyed by plugin
// name (§4.1's list_plugin_configs).
func (s *Store) ListPluginConfigs() (map[string]map[string]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT key, value FROM configs WHERE type = ?`, typePlugin)
	if err != nil {
		s.degraded = true
		return nil, fmt.Errorf("%w: %v", ErrConfigIOError, err)
	}
	defer rows.Close()

	out := make(map[string]map[string]interface{})
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			s.degraded = true
			return nil, fmt.Errorf("%w: %v", ErrConfigIOError, err)
		}
		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			s.degraded = true
			return nil, fmt.Errorf("%w: decoding %q: %v", ErrConfigIOError, key, err)
		}
		out[key] = decoded
	}
	return out, nil
}
