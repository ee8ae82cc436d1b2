package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fastxteam/fastx-tui/internal/adapters"
	"github.com/fastxteam/fastx-tui/internal/clock"
	"github.com/fastxteam/fastx-tui/internal/configstore"
	"github.com/fastxteam/fastx-tui/internal/environment"
	"github.com/fastxteam/fastx-tui/internal/interfaces"
	"github.com/fastxteam/fastx-tui/internal/lifecycle"
	"github.com/fastxteam/fastx-tui/internal/logging"
	"github.com/fastxteam/fastx-tui/internal/menu"
	"github.com/fastxteam/fastx-tui/internal/registry"
	"github.com/fastxteam/fastx-tui/internal/router"
	"github.com/fastxteam/fastx-tui/internal/update"
	"github.com/fastxteam/fastx-tui/plugins/example"
)

const (
	configDirName = ".fastx-tui"
	dbFileName    = "fastxtui.db"
	pluginsDir    = "plugins"
	envsDir       = "envs"
	updateRepo    = "fastxteam/FastX-Tui"
)

// host bundles every wired component a command needs, plus its own
// shutdown.
type host struct {
	store    *configstore.Store
	registry *registry.Registry
	env      *environment.Manager
	graph    *menu.Graph
	router   *router.Router
	updater  *update.Manager
	ctrl     *lifecycle.Controller
	logger   interfaces.Logger

	close func() error
}

// envStamp returns pluginID's environment tracking token, if provisioned.
func (h *host) envStamp(pluginID string) (string, bool) {
	return h.env.EnvStamp(pluginID)
}

// newHost wires the Config Store, Environment Manager, Plugin Registry,
// Menu Graph, Router, Update Manager, and Lifecycle Controller against
// ~/.fastx-tui, matching config_manager.py's config_dir convention.
func newHost() (*host, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	configDir := filepath.Join(home, configDirName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}

	logger, err := logging.New("info")
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	realClock := clock.Real{}
	fs := adapters.NewRealFileSystem()
	exec := adapters.NewRealCommandExecutor()
	httpClient := adapters.NewRealHTTPClient(30 * time.Second)

	store, err := configstore.Open(filepath.Join(configDir, dbFileName), realClock, logger)
	if err != nil {
		return nil, fmt.Errorf("opening config store: %w", err)
	}

	envManager := environment.NewManager(filepath.Join(configDir, envsDir), fs, exec, logger)

	catalog := registry.NewCatalog()
	catalog.Register(registry.CandidatePrefix+"Example", example.New)

	pluginsPath := filepath.Join(configDir, pluginsDir)
	if err := os.MkdirAll(pluginsPath, 0755); err != nil {
		store.Close()
		return nil, fmt.Errorf("creating plugins dir: %w", err)
	}
	reg := registry.New(pluginsPath, fs, envManager, catalog, store, logger)

	currentVersion := version
	updater := update.New(currentVersion, updateRepo, httpClient, fs, exec, realClock, store, logger)

	graph := menu.NewGraph()
	rtr := router.New()
	ctrl := lifecycle.New(reg, graph, rtr, store, updater, logger)

	return &host{
		store:    store,
		registry: reg,
		env:      envManager,
		graph:    graph,
		router:   rtr,
		updater:  updater,
		ctrl:     ctrl,
		logger:   logger,
		close: func() error {
			ctrl.Shutdown()
			return store.Close()
		},
	}, nil
}

func (h *host) startup(ctx context.Context) (*lifecycle.StartupResult, error) {
	return h.ctrl.Startup(ctx)
}
