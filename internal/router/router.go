// Package router implements the flat Route registry that mirrors the Menu
// Graph for view lookup (§4.4). The graph is authoritative for navigation
// structure; the router is authoritative for "how to render this ID".
package router

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	KindMenu    = "menu"
	KindCommand = "command"
)

var ErrRouteNotFound = errors.New("router: no route registered for id")

// ViewHandler is the handler shape a menu route's renderer must satisfy.
// It mirrors bubbletea's own Model interface so the (out-of-scope) TUI
// surface can plug a real bubbletea model straight into a Route without an
// adapter layer; this package never constructs one itself.
type ViewHandler = tea.Model

// CommandHandler is the handler shape a command route invokes; it receives
// no view-layer state, matching ActionItem's payload being either a shell
// command or a native function reference resolved elsewhere.
type CommandHandler func() error

// Route is the flat, router-owned mirror of one Menu Graph entity.
type Route struct {
	ID       string
	ParentID string // empty for the root route
	Kind     string // KindMenu | KindCommand
	Handler  interface{}
	IsSystem bool
}

// Router is a flat map[id]Route. Upserts are idempotent no-ops for system
// routes once registered once (§4.4: "system routes are never
// re-registered mid-life").
type Router struct {
	mu     sync.RWMutex
	routes map[string]Route
}

// New creates an empty Router.
func New() *Router {
	return &Router{routes: make(map[string]Route)}
}

// RegisterRoute upserts route. If an existing route with the same ID is
// marked IsSystem, the call is a no-op: system routes are registered once,
// at startup, and never replaced.
func (r *Router) RegisterRoute(route Route) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.routes[route.ID]; ok && existing.IsSystem {
		return
	}
	r.routes[route.ID] = route
}

// GetRoute looks up a route by ID.
func (r *Router) GetRoute(id string) (Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, ok := r.routes[id]
	if !ok {
		return Route{}, ErrRouteNotFound
	}
	return route, nil
}

// RemoveRoute deletes a non-system route; removing a system route or an
// unknown ID is a silent no-op, mirroring the Menu Graph's RemoveItem.
func (r *Router) RemoveRoute(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.routes[id]; ok && existing.IsSystem {
		return
	}
	delete(r.routes, id)
}

// Breadcrumb walks the parent_id chain from id up to the root route,
// returning IDs ordered root-first.
func (r *Router) Breadcrumb(id string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var chain []string
	seen := make(map[string]bool)
	current := id
	for current != "" {
		if seen[current] {
			break // defensive: a malformed parent chain must not hang the view layer
		}
		seen[current] = true
		route, ok := r.routes[current]
		if !ok {
			return nil, ErrRouteNotFound
		}
		chain = append(chain, current)
		current = route.ParentID
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// All returns a copy of every registered route, keyed by ID.
func (r *Router) All() map[string]Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Route, len(r.routes))
	for id, route := range r.routes {
		out[id] = route
	}
	return out
}
