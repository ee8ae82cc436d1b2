// Package lifecycle implements the Lifecycle Controller (spec.md §4.6):
// the composition root that wires Config Store, Environment Manager,
// Plugin Registry, Menu Graph, and Router into the user-visible
// Startup/Enable/Disable/Reload/Uninstall operations, grounded on the
// teacher's internal/manager/manager.go composition style.
package lifecycle

import (
	"context"
	"sort"
	"sync"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
	"github.com/fastxteam/fastx-tui/internal/menu"
	"github.com/fastxteam/fastx-tui/internal/registry"
	"github.com/fastxteam/fastx-tui/internal/router"
	"github.com/fastxteam/fastx-tui/internal/update"
)

// appConfig is the narrow configstore.Store surface Startup needs to read
// auto_check_updates.
type appConfig interface {
	GetApp(key string) (interface{}, bool)
}

// Controller composes the host's components. Graph and Router are mutated
// only here, behind one mutex (§5: "mutated only by the Lifecycle
// Controller, serializing plugin-lifecycle operations with a single
// mutex"); the Registry separately serializes per-plugin-ID operations.
type Controller struct {
	registry *registry.Registry
	graph    *menu.Graph
	router   *router.Router
	config   appConfig
	updater  *update.Manager
	logger   interfaces.Logger

	mu      sync.Mutex
	watcher *registry.Watcher
	sweeper *update.Sweeper
}

// New constructs a Controller. graph and router are typically freshly
// created (menu.NewGraph, router.New); reg must be wired to the same
// Config Store and Environment Manager the caller uses elsewhere.
func New(reg *registry.Registry, graph *menu.Graph, rtr *router.Router, config appConfig, updater *update.Manager, logger interfaces.Logger) *Controller {
	return &Controller{registry: reg, graph: graph, router: rtr, config: config, updater: updater, logger: logger}
}

// Graph returns the controller's Menu Graph, for read-only consumption by
// the (out-of-scope) view layer.
func (c *Controller) Graph() *menu.Graph { return c.graph }

// Router returns the controller's Router, for read-only consumption by the
// (out-of-scope) view layer.
func (c *Controller) Router() *router.Router { return c.router }

func (c *Controller) handlerFor(id string, isNode bool) (string, interface{}) {
	if isNode {
		return router.KindMenu, nil
	}
	return router.KindCommand, nil
}

func (c *Controller) rebuildRouter() {
	c.router.RebuildFromGraph(c.graph, c.handlerFor)
}

// Startup implements §4.6's Startup operation: discover plugins, load every
// enabled one, build the fixed system menu, attach plugins_menu,
// register_all on loaded plugins, rebuild the subtree and router, and
// (if configured) kick off an async update check whose result is a hint
// flag for the view layer, never a blocking call.
func (c *Controller) Startup(ctx context.Context) (*StartupResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := buildSystemMenu(c.graph); err != nil {
		return nil, err
	}

	candidates, err := c.registry.Discover()
	if err != nil {
		return nil, err
	}

	result := &StartupResult{}
	for _, candidate := range candidates {
		skipped, loadErr := c.registry.Load(ctx, candidate.ID)
		if loadErr != nil {
			result.Failed = append(result.Failed, candidate.ID)
			c.logger.Warnw("plugin failed to load at startup", "plugin_id", candidate.ID, "error", loadErr)
			continue
		}
		if skipped {
			result.Disabled = append(result.Disabled, candidate.ID)
			continue
		}
		result.Loaded = append(result.Loaded, candidate.ID)
	}

	c.registry.RegisterAll(c.graph)
	c.rebuildSubtreeLocked()
	c.rebuildRouter()

	if c.autoCheckEnabled() && c.updater != nil {
		go func() {
			if _, err := c.updater.Check(ctx, false); err != nil {
				c.logger.Warnw("background update check failed", "error", err)
			}
		}()
		result.UpdateCheckStarted = true

		c.sweeper = update.NewSweeper(c.updater)
		if err := c.sweeper.Start(ctx); err != nil {
			c.logger.Warnw("failed to start update sweeper", "error", err)
			c.sweeper = nil
		}
	}

	if watcher, err := c.registry.Watch(); err != nil {
		c.logger.Warnw("failed to start plugins directory watcher", "error", err)
	} else {
		c.watcher = watcher
		go c.watchLoop(ctx)
	}

	return result, nil
}

// watchLoop re-runs discovery each time the plugins directory watcher
// reports a create/remove/rename under a FastX-Tui-Plugin-* entry, picking
// up plugins dropped in or removed while the host is running (§4.3
// supplemental: live discovery) without requiring a restart.
func (c *Controller) watchLoop(ctx context.Context) {
	for range c.watcher.Events() {
		c.syncDiscovered(ctx)
	}
}

func (c *Controller) syncDiscovered(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	candidates, err := c.registry.Discover()
	if err != nil {
		c.logger.Warnw("live discovery scan failed", "error", err)
		return
	}

	for _, candidate := range candidates {
		p, known := c.registry.Get(candidate.ID)
		if known && p.State != registry.StateDiscovered {
			continue
		}
		if _, err := c.registry.Load(ctx, candidate.ID); err != nil {
			c.logger.Warnw("live-discovered plugin failed to load", "plugin_id", candidate.ID, "error", err)
		}
	}

	c.registry.RegisterAll(c.graph)
	c.rebuildSubtreeLocked()
	c.rebuildRouter()
}

// Shutdown stops the plugins directory watcher and update sweeper started
// by Startup, if any. Safe to call even when Startup never started them.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watcher != nil {
		_ = c.watcher.Close()
		c.watcher = nil
	}
	if c.sweeper != nil {
		c.sweeper.Stop()
		c.sweeper = nil
	}
}

func (c *Controller) autoCheckEnabled() bool {
	if c.config == nil {
		return false
	}
	raw, ok := c.config.GetApp("auto_check_updates")
	if !ok {
		return false
	}
	enabled, _ := raw.(bool)
	return enabled
}

// StartupResult summarizes Startup's outcome for the caller/logs.
type StartupResult struct {
	Loaded             []string
	Disabled           []string
	Failed             []string
	UpdateCheckStarted bool
}

// EnablePlugin implements §4.6's Enable plugin operation.
func (c *Controller) EnablePlugin(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.registry.Enable(ctx, c.graph, id); err != nil {
		return err
	}
	c.rebuildSubtreeLocked()
	c.rebuildRouter()
	return nil
}

// DisablePlugin implements §4.6's Disable plugin operation. The
// environment is retained.
func (c *Controller) DisablePlugin(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.registry.Disable(ctx, c.graph, id); err != nil {
		return err
	}
	c.rebuildSubtreeLocked()
	c.rebuildRouter()
	return nil
}

// ReloadPlugin implements §4.6's Reload plugin operation: the only path
// that forcibly refreshes the environment.
func (c *Controller) ReloadPlugin(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.registry.RemoveEnvironment(ctx, id); err != nil {
		c.logger.Warnw("failed to remove environment before reload", "plugin_id", id, "error", err)
	}

	if err := c.registry.Reload(ctx, c.graph, id); err != nil {
		return err
	}
	c.rebuildSubtreeLocked()
	c.rebuildRouter()
	return nil
}

// UninstallPlugin implements §4.6's Uninstall plugin operation: the
// Registry removes the plugin's config, environment, and on-disk
// directory before the Controller rebuilds the subtree and router.
func (c *Controller) UninstallPlugin(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.registry.Uninstall(ctx, c.graph, id); err != nil {
		return err
	}
	c.rebuildSubtreeLocked()
	c.rebuildRouter()
	return nil
}

// RebuildSubtree implements §4.6's Rebuild plugin subtree operation:
// clears plugins_menu's children, then attaches every non-system entity
// (i.e. everything a plugin contributed) as a direct child of
// plugins_menu, matching original_source/core/app_manager.py's
// _rebuild_plugin_menu (every plugin-registered node or action, not just
// the top-level ones a plugin attached directly, becomes a child of
// plugins_menu; the graph's DAG shape allows an entity to also remain a
// child of its own plugin-internal parent). If plugins_menu ends up
// non-empty it is attached to main_menu; otherwise detached. The
// operation is idempotent.
func (c *Controller) RebuildSubtree() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rebuildSubtreeLocked()
}

func (c *Controller) rebuildSubtreeLocked() {
	_ = c.graph.ClearChildren(PluginsMenuID)

	nodes := c.graph.AllNodes()
	actions := c.graph.AllActions()

	var ids []string
	for id, node := range nodes {
		if node.IsSystem || id == PluginsMenuID {
			continue
		}
		ids = append(ids, id)
	}
	for id, action := range actions {
		if action.IsSystem {
			continue
		}
		ids = append(ids, id)
	}
	// AllNodes/AllActions return freshly built maps, so iteration order is
	// randomized per call; sort before attaching so two consecutive
	// rebuilds (and a disable/enable round trip) produce the same
	// plugins_menu.Children order (§4.6, §8).
	sort.Strings(ids)

	nonEmpty := false
	for _, id := range ids {
		if err := c.graph.AddChild(PluginsMenuID, id); err == nil {
			nonEmpty = true
		}
	}

	if nonEmpty {
		_ = c.graph.AddChild(menu.MainMenuID, PluginsMenuID)
	} else {
		_ = c.graph.DetachChild(menu.MainMenuID, PluginsMenuID)
	}
}
