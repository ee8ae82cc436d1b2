// Package registry implements the Plugin Registry (spec.md §4.3): filesystem
// discovery of plugin candidates, their load/register state machine, and
// the per-plugin lifecycle operations the Lifecycle Controller composes.
// Grounded on the teacher's internal/plugin/manager.go (LoadedPlugin shape,
// search-path discovery, two-phase discover/load pipeline), adapted from
// hashicorp/go-plugin RPC isolation to the in-process Catalog decided in
// Open Question 1.
package registry

import (
	"context"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/fastxteam/fastx-tui/internal/environment"
	"github.com/fastxteam/fastx-tui/internal/interfaces"
	"github.com/fastxteam/fastx-tui/internal/menu"
)

// CandidatePrefix is the literal directory-naming contract (spec.md §6).
const CandidatePrefix = "FastX-Tui-Plugin-"

var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// PluginCandidate is a filesystem entry discovery yields without loading
// it (spec.md §3).
type PluginCandidate struct {
	ID   string // directory name with CandidatePrefix stripped
	Path string // full path to the plugin's directory
}

// LoadedPlugin is the registry's authoritative record for one plugin.
type LoadedPlugin struct {
	ID            string
	Path          string
	Info          interfaces.PluginInfo
	State         State
	LastError     error
	RegisteredIDs []string

	instance interfaces.Plugin
}

// Summary is the public listing shape (§4.3 list()).
type Summary struct {
	Name      string
	Loaded    bool
	Enabled   bool
	Info      *interfaces.PluginInfo
	LastError error
}

// Registry discovers, loads, and tracks plugins.
type Registry struct {
	pluginsDir string
	fs         interfaces.FileSystem
	env        *environment.Manager
	catalog    *Catalog
	config     pluginConfigStore
	logger     interfaces.Logger

	mu      sync.RWMutex
	plugins map[string]*LoadedPlugin

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// New creates a Registry scanning pluginsDir.
func New(pluginsDir string, fs interfaces.FileSystem, env *environment.Manager, catalog *Catalog, config pluginConfigStore, logger interfaces.Logger) *Registry {
	return &Registry{
		pluginsDir: pluginsDir,
		fs:         fs,
		env:        env,
		catalog:    catalog,
		config:     config,
		logger:     logger,
		plugins:    make(map[string]*LoadedPlugin),
		locks:      make(map[string]*sync.Mutex),
	}
}

// lockFor serializes transitions on a single plugin ID (§5: "a second
// mutating operation on the same plugin ID blocks until the first
// returns").
func (r *Registry) lockFor(id string) *sync.Mutex {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()
	l, ok := r.locks[id]
	if !ok {
		l = &sync.Mutex{}
		r.locks[id] = l
	}
	return l
}

// Discover performs one filesystem scan for FastX-Tui-Plugin-* directories,
// in deterministic name-sort order (§4.3).
func (r *Registry) Discover() ([]PluginCandidate, error) {
	entries, err := r.fs.ReadDir(r.pluginsDir)
	if err != nil {
		return nil, err
	}

	var candidates []PluginCandidate
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), CandidatePrefix) {
			continue
		}
		candidates = append(candidates, PluginCandidate{
			ID:   strings.TrimPrefix(entry.Name(), CandidatePrefix),
			Path: joinPath(r.pluginsDir, entry.Name()),
		})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	r.mu.Lock()
	for _, c := range candidates {
		if _, known := r.plugins[c.ID]; !known {
			r.plugins[c.ID] = &LoadedPlugin{ID: c.ID, Path: c.Path, State: StateDiscovered}
		}
	}
	r.mu.Unlock()

	return candidates, nil
}

func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}

func validatePluginInfo(info interfaces.PluginInfo) []string {
	var reasons []string
	if info.Name == "" {
		reasons = append(reasons, "name is required")
	}
	if !semverPattern.MatchString(info.Version) {
		reasons = append(reasons, "version must match ^\\d+\\.\\d+\\.\\d+$")
	}
	for field, value := range map[string]string{"homepage": info.Homepage, "repository": info.Repository} {
		if value == "" {
			continue
		}
		if u, err := url.ParseRequestURI(value); err != nil || u.Scheme == "" || u.Host == "" {
			reasons = append(reasons, field+" is not a valid URL")
		}
	}
	return reasons
}

// Load runs the full pipeline for id: ensure env → instantiate from the
// Catalog → validate metadata → Initialize. A plugin whose stored config
// disables it yields a no-op without provisioning an environment or
// instantiating (§4.3 "A disabled plugin yields a Skipped result").
func (r *Registry) Load(ctx context.Context, id string) (skipped bool, err error) {
	lock := r.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	r.mu.RLock()
	p, known := r.plugins[id]
	r.mu.RUnlock()
	if !known {
		return false, ErrPluginNotFound
	}

	if !r.isEnabled(id) {
		r.setState(id, StateDisabled, nil)
		return true, nil
	}

	if err := r.env.Ensure(ctx, id, p.Path); err != nil {
		loadErr := &PluginLoadFailedError{PluginID: id, Reason: "environment: " + err.Error()}
		r.setState(id, StateFailed, loadErr)
		return false, loadErr
	}
	r.setState(id, StateEnvReady, nil)

	ctor, ok := r.catalog.Lookup(CandidatePrefix + id)
	if !ok {
		loadErr := &PluginLoadFailedError{PluginID: id, Reason: "no compiled-in constructor registered in Catalog"}
		r.setState(id, StateFailed, loadErr)
		return false, loadErr
	}
	instance := ctor()
	info := instance.GetInfo()

	if reasons := validatePluginInfo(info); len(reasons) > 0 {
		loadErr := &PluginLoadFailedError{PluginID: id, Reason: strings.Join(reasons, "; ")}
		r.setState(id, StateFailed, loadErr)
		return false, loadErr
	}

	if schemaProvider, ok := instance.(interfaces.ConfigSchemaProvider); ok {
		if registrar, ok := r.config.(interface {
			RegisterPluginSchema(string, []interfaces.PluginConfigField)
		}); ok {
			registrar.RegisterPluginSchema(id, schemaProvider.GetConfigSchema())
		}
	}

	port := newConfigPort(r.config, id)
	if err := instance.Initialize(ctx, port); err != nil {
		loadErr := &PluginLoadFailedError{PluginID: id, Reason: "initialize: " + err.Error()}
		r.setState(id, StateFailed, loadErr)
		return false, loadErr
	}

	r.mu.Lock()
	p.Info = info
	p.instance = instance
	p.State = StateLoaded
	p.LastError = nil
	r.mu.Unlock()

	return false, nil
}

func (r *Registry) isEnabled(id string) bool {
	settings, ok := r.config.GetPlugin(id)
	if !ok {
		return true
	}
	enabled, ok := settings["enabled"].(bool)
	if !ok {
		return true
	}
	return enabled
}

func (r *Registry) setState(id string, state State, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.plugins[id]; ok {
		p.State = state
		p.LastError = err
	}
}

// trackingRegisterer wraps a menu.Recorder to additionally count how many
// submenus a plugin directly attaches to main_menu, for the advisory
// main-menu budget (spec.md §4.3 "may contribute at most one submenu...
// advisory counter warns on overflow but does not abort").
type trackingRegisterer struct {
	*menu.Recorder
	mainMenuAttachments int
}

func (t *trackingRegisterer) AddChild(parentID, childID string) error {
	if parentID == menu.MainMenuID {
		t.mainMenuAttachments++
	}
	return t.Recorder.AddChild(parentID, childID)
}

// RegisterAll invokes Register(graph) for every loaded plugin in discovery
// order, tracking each plugin's contributed IDs for later removal and
// logging (but not aborting on) ID collisions (§4.3, Open Question 3).
func (r *Registry) RegisterAll(graph *menu.Graph) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.plugins))
	for id, p := range r.plugins {
		if p.State == StateLoaded {
			ids = append(ids, id)
		}
	}
	r.mu.RUnlock()
	sort.Strings(ids)

	for _, id := range ids {
		r.mu.RLock()
		p := r.plugins[id]
		r.mu.RUnlock()

		recorder := menu.NewRecorder(graph)
		tracker := &trackingRegisterer{Recorder: recorder}
		err := p.instance.Register(tracker)

		for _, collision := range recorder.Collisions() {
			r.logger.Warnw("plugin ID collision during register_all", "plugin_id", id, "conflict_id", collision)
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
	}
}

// Cleanup calls the plugin's Cleanup hook; callers (Lifecycle Controller)
// are responsible for removing RegisteredIDs from the graph/router.
func (r *Registry) Cleanup(ctx context.Context, id string) error {
	r.mu.RLock()
	p, ok := r.plugins[id]
	r.mu.RUnlock()
	if !ok || p.instance == nil {
		return nil
	}
	return p.instance.Cleanup(ctx)
}

// RemoveEnvironment deletes id's provisioned environment, independent of
// any graph/config mutation. Used by the Lifecycle Controller's Reload
// operation to force a fresh environment before re-running Load.
func (r *Registry) RemoveEnvironment(ctx context.Context, id string) error {
	return r.env.Remove(ctx, id)
}

// Watch starts an fsnotify watch on the registry's plugins directory (§4.3
// supplemental: live discovery). Callers should re-run Discover/Load on
// every event the returned Watcher reports.
func (r *Registry) Watch() (*Watcher, error) {
	return WatchPluginsDir(r.pluginsDir)
}

// Get returns the registry's record for id.
func (r *Registry) Get(id string) (*LoadedPlugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[id]
	return p, ok
}

// List returns a summary of every known plugin (§4.3 list()).
func (r *Registry) List() []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Summary, 0, len(r.plugins))
	for id, p := range r.plugins {
		summary := Summary{
			Name:      id,
			Loaded:    p.State == StateLoaded || p.State == StateRegistered,
			Enabled:   r.isEnabled(id),
			LastError: p.LastError,
		}
		if p.State == StateLoaded || p.State == StateRegistered {
			info := p.Info
			summary.Info = &info
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Forget drops id from the registry entirely (used by uninstall, after
// Cleanup and environment/config removal have already run).
func (r *Registry) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plugins, id)
}

// RegisteredIDsOf returns the set of graph IDs id contributed, or nil if
// unknown.
func (r *Registry) RegisteredIDsOf(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[id]
	if !ok {
		return nil
	}
	out := make([]string, len(p.RegisteredIDs))
	copy(out, p.RegisteredIDs)
	return out
}
