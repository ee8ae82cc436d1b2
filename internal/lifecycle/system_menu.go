package lifecycle

import "github.com/fastxteam/fastx-tui/internal/menu"

// System menu/action IDs, mirroring original_source/core/app_manager.py's
// _init_menu fixed structure (system/file/python tool submenus plus the
// always-present clear/help/exit actions) and its _rebuild_plugin_menu
// exclusion list.
const (
	SystemToolsMenuID = "system_tools_menu"
	FileToolsMenuID   = "file_tools_menu"
	PythonToolsMenuID = "python_tools_menu"
	PluginsMenuID     = "plugins_menu"

	ActionClearScreen   = "clear_screen"
	ActionShowHelp      = "show_help"
	ActionExitApp       = "exit_app"
	ActionShowConfig    = "show_config"
	ActionPluginManager = "plugin_manager"
)

type systemAction struct {
	id, name, description, icon, payload string
}

var systemToolsActions = []systemAction{
	{"system_info", "System Info", "Show detailed system information", "info", "system_info"},
	{"network_info", "Network Info", "Show network configuration", "net", "network_info"},
	{"process_list", "Process List", "List running processes", "list", "process_list"},
	{"disk_space", "Disk Space", "Show disk usage", "disk", "disk_space"},
	{"system_uptime", "System Uptime", "Show how long the system has been running", "clock", "system_uptime"},
}

var fileToolsActions = []systemAction{
	{"list_directory", "List Directory", "List directory contents", "dir", "list_directory"},
	{"file_tree", "File Tree", "Show a filesystem tree", "tree", "file_tree"},
	{"search_files", "Search Files", "Search the filesystem for files", "search", "search_files"},
}

var pythonToolsActions = []systemAction{
	{"python_info", "Python Info", "Show the Python environment in use", "py", "python_info"},
	{"python_packages", "Python Packages", "List installed Python packages", "pkg", "python_packages"},
	{"check_imports", "Check Imports", "Check Python module imports", "check", "check_imports"},
}

// buildSystemMenu registers the host's fixed menu structure: three tool
// submenus under main_menu, the always-present clear/help/config/plugin-
// manager/exit actions, and an empty plugins_menu awaiting plugin
// contributions. All entities created here are IsSystem — never removed or
// re-registered by RebuildSubtree.
func buildSystemMenu(graph *menu.Graph) error {
	submenus := []struct {
		id, name, description, icon string
		actions                     []systemAction
	}{
		{SystemToolsMenuID, "System Tools", "System information and management tools", "sys", systemToolsActions},
		{FileToolsMenuID, "File Tools", "File management and inspection tools", "file", fileToolsActions},
		{PythonToolsMenuID, "Python Tools", "Python development and runtime tools", "py", pythonToolsActions},
	}

	for _, sub := range submenus {
		if err := registerSystemNode(graph, sub.id, sub.name, sub.description, sub.icon); err != nil {
			return err
		}
		for _, a := range sub.actions {
			if err := registerSystemAction(graph, a); err != nil {
				return err
			}
			if err := graph.AddChild(sub.id, a.id); err != nil {
				return err
			}
		}
		if err := graph.AddChild(menu.MainMenuID, sub.id); err != nil {
			return err
		}
	}

	fixedActions := []systemAction{
		{ActionClearScreen, "Clear Screen", "Clear the terminal screen", "clear", "clear_screen"},
		{ActionShowHelp, "Help", "Show help information", "help", "show_help"},
		{ActionShowConfig, "Settings", "Show and edit configuration", "gear", "show_config"},
		{ActionPluginManager, "Plugin Manager", "Manage installed plugins", "plug", "plugin_manager"},
		{ActionExitApp, "Exit", "Safely exit the application", "exit", "exit_app"},
	}
	for _, a := range fixedActions {
		if err := registerSystemAction(graph, a); err != nil {
			return err
		}
		if err := graph.AddChild(menu.MainMenuID, a.id); err != nil {
			return err
		}
	}

	return registerSystemNode(graph, PluginsMenuID, "Plugins", "Commands contributed by installed plugins", "plug")
}

func registerSystemNode(graph *menu.Graph, id, name, description, icon string) error {
	return graph.RegisterNode(menu.MenuNode{
		ID: id, Name: name, Description: description, Icon: icon, Kind: menu.KindSub, IsSystem: true,
	})
}

func registerSystemAction(graph *menu.Graph, a systemAction) error {
	return graph.RegisterAction(menu.ActionItem{
		ID: a.id, Name: a.name, Description: a.description, Icon: a.icon,
		Kind: menu.ActionShell, Payload: a.payload, Enabled: true, IsSystem: true,
	})
}
