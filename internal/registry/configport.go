package registry

import "github.com/fastxteam/fastx-tui/internal/interfaces"

// pluginConfigStore is the narrow configstore.Store surface configPort
// needs, kept here instead of importing internal/configstore directly so
// the registry package only depends on interfaces.
type pluginConfigStore interface {
	GetPlugin(name string) (map[string]interface{}, bool)
	SetPlugin(name string, settings map[string]interface{}) error
	RemovePlugin(name string) error
}

// configPort binds a plugin's config access to (store, pluginID), replacing
// the source's runtime monkey-patching of a plugin's config methods with
// plain constructor injection (spec.md §9).
type configPort struct {
	store      pluginConfigStore
	pluginName string
}

// newConfigPort constructs the ConfigPort a plugin receives from
// Initialize; the plugin never sees the store itself.
func newConfigPort(store pluginConfigStore, pluginName string) interfaces.ConfigPort {
	return &configPort{store: store, pluginName: pluginName}
}

func (p *configPort) Get(key string) (interface{}, bool) {
	settings, ok := p.store.GetPlugin(p.pluginName)
	if !ok {
		return nil, false
	}
	value, ok := settings[key]
	return value, ok
}

func (p *configPort) Set(key string, value interface{}) error {
	settings, ok := p.store.GetPlugin(p.pluginName)
	if !ok {
		settings = map[string]interface{}{}
	}
	settings[key] = value
	return p.store.SetPlugin(p.pluginName, settings)
}

func (p *configPort) All() map[string]interface{} {
	settings, ok := p.store.GetPlugin(p.pluginName)
	if !ok {
		return map[string]interface{}{}
	}
	out := make(map[string]interface{}, len(settings))
	for k, v := range settings {
		out[k] = v
	}
	return out
}
