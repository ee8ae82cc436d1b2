package registry

import (
	"sort"
	"sync"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
)

// Constructor builds a fresh Plugin instance. Plugins register themselves
// into a Catalog rather than being dynamically loaded from disk (Open
// Question 1: in-process plugins are compiled-in Go packages keyed by the
// `FastX-Tui-Plugin-<Name>` directory name they ship their manifest under).
type Constructor func() interfaces.Plugin

// Catalog is a constructor-injected registry of compiled-in plugins,
// deliberately not a package-level global so tests can build an isolated
// Catalog per case.
type Catalog struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{constructors: make(map[string]Constructor)}
}

// Register associates dirName (the plugin's `FastX-Tui-Plugin-<Name>`
// directory name) with a constructor. The host calls this while wiring
// (cmd/fastxtui's newHost registers each compiled-in plugin's New), never
// through a package-level global.
func (c *Catalog) Register(dirName string, ctor Constructor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.constructors[dirName] = ctor
}

// Lookup returns the constructor registered for dirName, if any.
func (c *Catalog) Lookup(dirName string) (Constructor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ctor, ok := c.constructors[dirName]
	return ctor, ok
}

// Names returns every registered directory name, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.constructors))
	for name := range c.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
