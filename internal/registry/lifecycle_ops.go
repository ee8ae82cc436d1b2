package registry

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fastxteam/fastx-tui/internal/menu"
)

// removeFromGraph strips every ID id previously registered from graph,
// ignoring ErrUnknownID for IDs a collision already prevented from being
// added.
func (r *Registry) removeFromGraph(graph *menu.Graph, id string) {
	for _, regID := range r.RegisteredIDsOf(id) {
		_ = graph.RemoveItem(regID)
	}
	r.mu.Lock()
	if p, ok := r.plugins[id]; ok {
		p.RegisteredIDs = nil
	}
	r.mu.Unlock()
}

// registerOne runs RegisterAll's per-plugin body for a single already-loaded
// plugin, used by Enable and Reload so they don't re-register every other
// plugin in the graph.
func (r *Registry) registerOne(graph *menu.Graph, id string) error {
	r.mu.RLock()
	p, ok := r.plugins[id]
	r.mu.RUnlock()
	if !ok || p.instance == nil {
		return ErrPluginNotFound
	}

	recorder := menu.NewRecorder(graph)
	tracker := &trackingRegisterer{Recorder: recorder}
	err := p.instance.Register(tracker)

	for _, collision := range recorder.Collisions() {
		r.logger.Warnw("plugin ID collision on register", "plugin_id", id, "conflict_id", collision)
	}
	if tracker.mainMenuAttachments > 1 {
		r.logger.Warnw("plugin exceeded advisory main-menu budget", "plugin_id", id, "attachments", tracker.mainMenuAttachments)
	}

	r.mu.Lock()
	p.RegisteredIDs = recorder.Recorded()
	if err != nil {
		p.State = StateFailed
		p.LastError = &PluginLoadFailedError{PluginID: id, Reason: "register: " + err.Error()}
	} else {
		p.State = StateRegistered
	}
	r.mu.Unlock()
	return err
}

// Disable runs Cleanup, removes id's contributed graph entries, persists
// enabled=false, and marks the plugin StateDisabled while keeping its
// in-memory instance (§4.3 disable/enable is a round trip, not an
// uninstall).
func (r *Registry) Disable(ctx context.Context, graph *menu.Graph, id string) error {
	lock := r.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	if err := r.Cleanup(ctx, id); err != nil {
		r.logger.Warnw("plugin cleanup returned error during disable", "plugin_id", id, "error", err)
	}
	r.removeFromGraph(graph, id)

	settings, _ := r.config.GetPlugin(id)
	if settings == nil {
		settings = map[string]interface{}{}
	}
	settings["enabled"] = false
	if err := r.config.SetPlugin(id, settings); err != nil {
		return err
	}

	r.setState(id, StateDisabled, nil)
	return nil
}

// Enable persists enabled=true and re-runs the full Load→Register pipeline
// for id, restoring it to StateRegistered.
func (r *Registry) Enable(ctx context.Context, graph *menu.Graph, id string) error {
	lock := r.lockFor(id)
	lock.Lock()

	settings, _ := r.config.GetPlugin(id)
	if settings == nil {
		settings = map[string]interface{}{}
	}
	settings["enabled"] = true
	if err := r.config.SetPlugin(id, settings); err != nil {
		lock.Unlock()
		return err
	}
	lock.Unlock()

	if _, err := r.Load(ctx, id); err != nil {
		return err
	}
	return r.registerOne(graph, id)
}

// Reload runs Cleanup, drops the in-process instance, and re-executes the
// full Load→Register pipeline, picking up a new binary or manifest without
// an uninstall/reinstall round trip (§4.3, S4).
func (r *Registry) Reload(ctx context.Context, graph *menu.Graph, id string) error {
	lock := r.lockFor(id)
	lock.Lock()

	if err := r.Cleanup(ctx, id); err != nil {
		r.logger.Warnw("plugin cleanup returned error during reload", "plugin_id", id, "error", err)
	}
	r.removeFromGraph(graph, id)

	r.mu.Lock()
	if p, ok := r.plugins[id]; ok {
		p.instance = nil
		p.State = StateDiscovered
	}
	r.mu.Unlock()
	lock.Unlock()

	if _, err := r.Load(ctx, id); err != nil {
		return err
	}
	return r.registerOne(graph, id)
}

// Uninstall runs Cleanup, strips id's graph entries, removes its persisted
// plugin config, provisioned environment, and on-disk plugin directory
// (§4.6: "remove the plugin directory on disk (handle read-only)"), and
// forgets the plugin entirely. Once this returns, a subsequent Discover
// must not see id again.
func (r *Registry) Uninstall(ctx context.Context, graph *menu.Graph, id string) error {
	lock := r.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	if err := r.Cleanup(ctx, id); err != nil {
		r.logger.Warnw("plugin cleanup returned error during uninstall", "plugin_id", id, "error", err)
	}
	r.removeFromGraph(graph, id)

	if err := r.env.Remove(ctx, id); err != nil {
		r.logger.Warnw("failed to remove plugin environment", "plugin_id", id, "error", err)
	}
	if err := r.removePluginDir(id); err != nil {
		r.logger.Warnw("failed to remove plugin directory", "plugin_id", id, "error", err)
	}
	if err := r.config.RemovePlugin(id); err != nil {
		r.logger.Warnw("failed to remove plugin config", "plugin_id", id, "error", err)
	}

	r.setState(id, StateRemoved, nil)
	r.Forget(id)
	return nil
}

// removePluginDir deletes id's directory under pluginsDir, clearing
// read-only bits on its immediate entries first, mirroring
// environment.Manager.Remove's read-only-safe removal.
func (r *Registry) removePluginDir(id string) error {
	r.mu.RLock()
	p, ok := r.plugins[id]
	r.mu.RUnlock()
	if !ok || p.Path == "" || !r.fs.Exists(p.Path) {
		return nil
	}

	entries, err := r.fs.ReadDir(p.Path)
	if err == nil {
		for _, entry := range entries {
			_ = r.fs.Chmod(filepath.Join(p.Path, entry.Name()), 0755)
		}
	}
	_ = r.fs.Chmod(p.Path, 0755)

	if err := r.fs.RemoveAll(p.Path); err != nil {
		return fmt.Errorf("registry: removing plugin directory %s: %w", p.Path, err)
	}
	return nil
}
