// Package example is a compiled-in plugin demonstrating the three menu
// registration patterns original_source/plugins/example_plugin.py shows:
// a dedicated submenu attached to main_menu, a single action attached
// directly to main_menu, and an action attached into an existing system
// submenu.
package example

import (
	"context"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
	"github.com/fastxteam/fastx-tui/internal/menu"
)

const (
	submenuID        = "example_plugin_submenu"
	helloActionID    = "example_plugin_hello"
	infoActionID     = "example_plugin_info"
	mainMenuActionID = "example_plugin_main_menu_command"
	systemActionID   = "example_plugin_system_tool_command"

	systemToolsMenuID = "system_tools_menu"
)

// Plugin demonstrates interfaces.Plugin's full capability set, including
// the optional ConfigSchemaProvider and ManualProvider capabilities.
type Plugin struct {
	config interfaces.ConfigPort
}

// New constructs the example plugin. The registry's Catalog calls this via
// a zero-argument interfaces.Plugin constructor; config is supplied later
// through Initialize, matching every other plugin's lifecycle.
func New() interfaces.Plugin {
	return &Plugin{}
}

func (p *Plugin) GetInfo() interfaces.PluginInfo {
	return interfaces.PluginInfo{
		Name:        "Demo Plugin",
		Version:     "0.1.0",
		Author:      "fastx-tui",
		Description: "Demonstrates the three ways a plugin can contribute to the menu graph",
		Category:    "example",
		Enabled:     true,
	}
}

func (p *Plugin) Initialize(ctx context.Context, config interfaces.ConfigPort) error {
	p.config = config
	return nil
}

func (p *Plugin) Cleanup(ctx context.Context) error {
	return nil
}

// Register contributes, in order: its own submenu (attached to
// main_menu), a standalone action on main_menu, and an action attached
// into the host's existing system_tools_menu.
func (p *Plugin) Register(reg interfaces.MenuRegisterer) error {
	if err := p.createOwnSubmenu(reg); err != nil {
		return err
	}
	if err := p.addToMainMenu(reg); err != nil {
		return err
	}
	return p.addToExistingSubmenu(reg)
}

func (p *Plugin) createOwnSubmenu(reg interfaces.MenuRegisterer) error {
	if err := reg.RegisterNode(interfaces.MenuNodeSpec{
		ID:          submenuID,
		Name:        "Demo Plugin Menu",
		Description: "The example plugin's dedicated submenu",
		Icon:        "plug",
	}); err != nil {
		return err
	}

	if err := reg.RegisterAction(interfaces.ActionItemSpec{
		ID:          helloActionID,
		Name:        "Plugin Hello",
		Description: "A greeting command in the plugin's own submenu",
		Kind:        "shell",
		Payload:     `echo "Hello from the plugin's own submenu!"`,
		Enabled:     true,
	}); err != nil {
		return err
	}
	if err := reg.RegisterAction(interfaces.ActionItemSpec{
		ID:          infoActionID,
		Name:        "Plugin Info",
		Description: "Shows the plugin's own version string",
		Kind:        "shell",
		Payload:     `echo "Demo Plugin v0.1.0 - dynamic menu registration demo"`,
		Enabled:     true,
	}); err != nil {
		return err
	}

	if err := reg.AddChild(submenuID, helloActionID); err != nil {
		return err
	}
	if err := reg.AddChild(submenuID, infoActionID); err != nil {
		return err
	}

	return reg.AddChild(menu.MainMenuID, submenuID)
}

func (p *Plugin) addToMainMenu(reg interfaces.MenuRegisterer) error {
	if err := reg.RegisterAction(interfaces.ActionItemSpec{
		ID:          mainMenuActionID,
		Name:        "Main Menu Command",
		Description: "A plugin command attached directly to the main menu",
		Icon:        "star",
		Kind:        "shell",
		Payload:     `echo "Hello from the main menu command!"`,
		Enabled:     true,
	}); err != nil {
		return err
	}
	return reg.AddChild(menu.MainMenuID, mainMenuActionID)
}

func (p *Plugin) addToExistingSubmenu(reg interfaces.MenuRegisterer) error {
	if err := reg.RegisterAction(interfaces.ActionItemSpec{
		ID:          systemActionID,
		Name:        "System Tool Command",
		Description: "A plugin command attached into the host's system tools menu",
		Icon:        "wrench",
		Kind:        "shell",
		Payload:     `echo "Hello from the system tools command!"`,
		Enabled:     true,
	}); err != nil {
		return err
	}
	return reg.AddChild(systemToolsMenuID, systemActionID)
}

// GetConfigSchema declares one example setting, exercising the
// ConfigSchemaProvider capability the Plugin Registry checks for during
// Load (§4.3).
func (p *Plugin) GetConfigSchema() []interfaces.PluginConfigField {
	return []interfaces.PluginConfigField{
		{
			Key:         "greeting",
			Type:        "string",
			Description: "Greeting used by Plugin Hello",
			Default:     "Hello",
			Required:    false,
		},
	}
}

// GetManual exercises the ManualProvider capability.
func (p *Plugin) GetManual() string {
	return "Demo Plugin shows the three ways a plugin can contribute menu entries: " +
		"its own submenu, a direct main-menu action, and an action attached into an " +
		"existing system submenu."
}
