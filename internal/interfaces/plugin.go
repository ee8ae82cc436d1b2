package interfaces

import "context"

// Plugin is the capability set every FastX-Tui plugin must satisfy. It is
// modeled as an interface rather than a base class: the registry discovers
// conformers by capability, not by an inheritance chain.
type Plugin interface {
	// GetInfo returns the plugin's validated metadata. Must be pure: no I/O,
	// no side effects, safe to call before Initialize.
	GetInfo() PluginInfo

	// Register contributes menu nodes and actions to the shared graph. Every
	// ID passed to the registerer is tracked by the caller for later
	// removal; Register must not retain a reference to anything that lets
	// it reach back into the registry itself.
	Register(registerer MenuRegisterer) error

	// Initialize is called once, after the plugin's environment is ready
	// and before Register.
	Initialize(ctx context.Context, config ConfigPort) error

	// Cleanup is called on disable, reload, and uninstall.
	Cleanup(ctx context.Context) error
}

// ConfigSchemaProvider is an optional capability: a plugin implementing it
// declares the shape of its own plugin-scoped configuration.
type ConfigSchemaProvider interface {
	GetConfigSchema() []PluginConfigField
}

// ManualProvider is an optional capability: a plugin implementing it
// supplies free-form help text, surfaced verbatim by the (out-of-scope)
// help viewer.
type ManualProvider interface {
	GetManual() string
}

// PluginConfigField describes one entry of a plugin's declared config
// schema, mirroring original_source/models/plugin_schema.py's
// PluginConfigSchema.
type PluginConfigField struct {
	Key         string        `json:"key" yaml:"key"`
	Type        string        `json:"type" yaml:"type"` // string|number|integer|boolean|array|object
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Default     interface{}   `json:"default" yaml:"default"`
	Required    bool          `json:"required" yaml:"required"`
	Options     []interface{} `json:"options,omitempty" yaml:"options,omitempty"`
	Min         *float64      `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64      `json:"max,omitempty" yaml:"max,omitempty"`
}

// PluginInfo is the validated metadata of spec.md §3/§6. Version must match
// ^\d+\.\d+\.\d+$; homepage and repository, when present, must be valid URLs.
type PluginInfo struct {
	Name         string   `json:"name" yaml:"name"`
	Version      string   `json:"version" yaml:"version"`
	Author       string   `json:"author,omitempty" yaml:"author,omitempty"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Homepage     string   `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Repository   string   `json:"repository,omitempty" yaml:"repository,omitempty"`
	License      string   `json:"license,omitempty" yaml:"license,omitempty"`
	Category     string   `json:"category,omitempty" yaml:"category,omitempty"`
	Tags         []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Enabled      bool     `json:"enabled" yaml:"enabled"`
}

// MenuRegisterer is the narrow surface a plugin's Register method receives.
// It deliberately excludes navigation, removal, and lookup so a plugin can
// only add to the graph, never read or mutate entries it does not own.
type MenuRegisterer interface {
	RegisterNode(node MenuNodeSpec) error
	RegisterAction(action ActionItemSpec) error
	AddChild(parentID, childID string) error
}

// MenuNodeSpec is the plugin-facing description of a submenu; the menu
// package's concrete MenuNode adds the fields (is_system, ordered children)
// that only the host may set.
type MenuNodeSpec struct {
	ID          string
	Name        string
	Description string
	Icon        string
}

// ActionItemSpec is the plugin-facing description of a leaf action.
type ActionItemSpec struct {
	ID             string
	Name           string
	Description    string
	Icon           string
	Kind           string // "shell" or "native"
	Payload        string // shell command, or a key resolved against a NativeActionRegistry
	TimeoutSeconds int
	Enabled        bool
}

// ConfigPort is the explicit dependency a plugin is given instead of a
// reference to the host's Config Store, binding (store, plugin name) ahead
// of time and handed to the plugin through Initialize.
type ConfigPort interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}) error
	All() map[string]interface{}
}
