package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// App is the CLI bootstrap: it wires the host components together and
// exposes them as cobra subcommands, matching the teacher's
// App{rootCmd}/setupCommands layout.
type App struct {
	rootCmd *cobra.Command
	stdout  io.Writer
	stderr  io.Writer
}

// NewApp creates the CLI application.
func NewApp() *App {
	app := &App{stdout: os.Stdout, stderr: os.Stderr}
	app.setupCommands()
	return app
}

// Execute runs the application.
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

func (a *App) setupCommands() {
	a.rootCmd = &cobra.Command{
		Use:     "fastxtui",
		Short:   "A plugin-extensible interactive terminal application",
		Version: version,
	}

	a.rootCmd.AddCommand(a.newStartCmd())
	a.rootCmd.AddCommand(a.newPluginCmd())
	a.rootCmd.AddCommand(a.newConfigCmd())
	a.rootCmd.AddCommand(a.newUpdateCmd())
}

func (a *App) newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Discover and load plugins, then print the resulting menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHost()
			if err != nil {
				return err
			}
			defer h.close()

			result, err := h.startup(context.Background())
			if err != nil {
				return fmt.Errorf("startup: %w", err)
			}

			fmt.Fprintf(a.stdout, "loaded: %v\n", result.Loaded)
			fmt.Fprintf(a.stdout, "disabled: %v\n", result.Disabled)
			if len(result.Failed) > 0 {
				fmt.Fprintf(a.stdout, "failed: %v\n", result.Failed)
			}
			return nil
		},
	}
}

func (a *App) newPluginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugin",
		Short: "Manage installed plugins",
	}
	cmd.AddCommand(a.newPluginListCmd())
	cmd.AddCommand(a.newPluginLifecycleCmd("enable", "Enable a disabled plugin"))
	cmd.AddCommand(a.newPluginLifecycleCmd("disable", "Disable a loaded plugin"))
	cmd.AddCommand(a.newPluginLifecycleCmd("reload", "Reload a plugin, refreshing its environment"))
	cmd.AddCommand(a.newPluginLifecycleCmd("uninstall", "Uninstall a plugin"))
	return cmd
}

func (a *App) newPluginListCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known plugins and their state",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHost()
			if err != nil {
				return err
			}
			defer h.close()

			if _, err := h.startup(cmd.Context()); err != nil {
				return fmt.Errorf("startup: %w", err)
			}
			for _, s := range h.registry.List() {
				fmt.Fprintf(a.stdout, "%s\tloaded=%v\tenabled=%v", s.Name, s.Loaded, s.Enabled)
				if verbose {
					if auditID, ok := h.store.PluginAuditID(s.Name); ok {
						fmt.Fprintf(a.stdout, "\taudit=%s", auditID)
					}
					if stamp, ok := h.envStamp(s.Name); ok {
						fmt.Fprintf(a.stdout, "\tenv=%s", stamp)
					}
				}
				fmt.Fprintln(a.stdout)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&verbose, "verbose", false, "also print each plugin's config/environment tracking tokens")
	return cmd
}

func (a *App) newPluginLifecycleCmd(verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <plugin-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHost()
			if err != nil {
				return err
			}
			defer h.close()

			ctx := cmd.Context()
			if _, err := h.startup(ctx); err != nil {
				return fmt.Errorf("startup: %w", err)
			}

			id := args[0]
			switch verb {
			case "enable":
				err = h.ctrl.EnablePlugin(ctx, id)
			case "disable":
				err = h.ctrl.DisablePlugin(ctx, id)
			case "reload":
				err = h.ctrl.ReloadPlugin(ctx, id)
			case "uninstall":
				err = h.ctrl.UninstallPlugin(ctx, id)
			}
			if err != nil {
				return fmt.Errorf("%s %s: %w", verb, id, err)
			}
			fmt.Fprintf(a.stdout, "%s: %s ok\n", id, verb)
			return nil
		},
	}
}

func (a *App) newConfigCmd() *cobra.Command {
	var asPreference bool

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a config value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHost()
			if err != nil {
				return err
			}
			defer h.close()

			var value interface{}
			var ok bool
			if asPreference {
				value, ok = h.store.GetPref(args[0])
			} else {
				value, ok = h.store.GetApp(args[0])
			}
			if !ok {
				return fmt.Errorf("config: %s not set", args[0])
			}
			fmt.Fprintf(a.stdout, "%v\n", value)
			return nil
		},
	}
	getCmd.Flags().BoolVar(&asPreference, "preference", false, "read from the preference namespace instead of app")

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect application configuration",
	}
	cmd.AddCommand(getCmd)
	return cmd
}

func (a *App) newUpdateCmd() *cobra.Command {
	var force bool

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check for a new release",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHost()
			if err != nil {
				return err
			}
			defer h.close()

			result, err := h.updater.Check(cmd.Context(), force)
			if err != nil {
				return err
			}
			if result.UpdateAvailable {
				fmt.Fprintln(a.stdout, h.updater.Describe())
			} else {
				fmt.Fprintln(a.stdout, "already up to date")
			}
			return nil
		},
	}
	checkCmd.Flags().BoolVar(&force, "force", false, "bypass the throttle interval")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent releases",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHost()
			if err != nil {
				return err
			}
			defer h.close()

			releases, err := h.updater.ListVersions(10)
			if err != nil {
				return err
			}
			for _, r := range releases {
				fmt.Fprintf(a.stdout, "%s\t%s\n", r.Version(), r.Name)
			}
			return nil
		},
	}

	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Download and stage the latest checked release",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHost()
			if err != nil {
				return err
			}
			defer h.close()

			exePath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolving current executable: %w", err)
			}
			result, err := h.updater.Update(cmd.Context(), exePath)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "staged update via %s\n", result.HelperPath)
			return nil
		},
	}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check for and apply updates",
	}
	cmd.AddCommand(checkCmd, listCmd, applyCmd)
	return cmd
}
