// Package menu implements the Menu Graph: the authoritative directed
// acyclic structure of menus (MenuNode) and actions (ActionItem), addressed
// by stable string IDs, plus the navigation stack over it.
package menu

import (
	"errors"
	"sync"
)

// MainMenuID is the one node with Kind == KindMain; created at startup and
// never removed.
const MainMenuID = "main_menu"

const (
	KindMain = "main"
	KindSub  = "sub"

	ActionShell  = "shell"
	ActionNative = "native"
)

var (
	ErrDuplicateID = errors.New("menu: id already registered")
	ErrUnknownID   = errors.New("menu: id not registered")
	ErrNotAMenu    = errors.New("menu: parent is not a menu node")
	ErrCycle       = errors.New("menu: would introduce a cycle")
	ErrSystemNode  = errors.New("menu: refusing to remove a system node")
)

// MenuNode is a submenu: an ordered list of child IDs resolved against the
// graph at navigation time.
type MenuNode struct {
	ID          string
	Name        string
	Description string
	Kind        string // KindMain | KindSub
	Icon        string
	Children    []string
	IsSystem    bool
}

// ActionItem is a leaf: an executable operation with no children.
type ActionItem struct {
	ID             string
	Name           string
	Description    string
	Icon           string
	Kind           string // ActionShell | ActionNative
	Payload        string
	TimeoutSeconds int
	Enabled        bool
	IsSystem       bool
}

// ChildEntity is the resolved form of one entry in a MenuNode's children:
// exactly one of Node or Action is set.
type ChildEntity struct {
	ID     string
	Node   *MenuNode
	Action *ActionItem
}

// Graph is the Menu Graph. Safe for concurrent use; the Lifecycle
// Controller is the only component that mutates it (§5), but reads may
// come from the view layer concurrently with a background rebuild.
type Graph struct {
	mu      sync.RWMutex
	nodes   map[string]*MenuNode
	actions map[string]*ActionItem
	stack   []string
}

// NewGraph creates a graph with the one mandatory system node, main_menu.
func NewGraph() *Graph {
	g := &Graph{
		nodes:   make(map[string]*MenuNode),
		actions: make(map[string]*ActionItem),
	}
	g.nodes[MainMenuID] = &MenuNode{
		ID:       MainMenuID,
		Name:     "Main Menu",
		Kind:     KindMain,
		IsSystem: true,
		Children: []string{},
	}
	g.stack = []string{MainMenuID}
	return g
}

func (g *Graph) idTaken(id string) bool {
	if _, ok := g.nodes[id]; ok {
		return true
	}
	if _, ok := g.actions[id]; ok {
		return true
	}
	return false
}

// RegisterNode adds a submenu. node.Kind defaults to KindSub if empty.
// MainMenuID is already present, so it cannot be registered again; any
// other Kind value, KindMain included, is stored as given and not checked.
func (g *Graph) RegisterNode(node MenuNode) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idTaken(node.ID) {
		return ErrDuplicateID
	}
	cp := node
	if cp.Kind == "" {
		cp.Kind = KindSub
	}
	if cp.Children == nil {
		cp.Children = []string{}
	}
	g.nodes[node.ID] = &cp
	return nil
}

// RegisterAction adds a leaf.
func (g *Graph) RegisterAction(action ActionItem) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idTaken(action.ID) {
		return ErrDuplicateID
	}
	cp := action
	g.actions[action.ID] = &cp
	return nil
}

// AddChild attaches childID under parentID. Rejects an unknown parent or
// child, a non-menu parent, or an edge that would introduce a cycle.
// Duplicate children are a silent no-op (first wins).
func (g *Graph) AddChild(parentID, childID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	parent, ok := g.nodes[parentID]
	if !ok {
		return ErrUnknownID
	}
	if !g.idTaken(childID) {
		return ErrUnknownID
	}
	for _, existing := range parent.Children {
		if existing == childID {
			return nil
		}
	}
	if g.wouldCycle(parentID, childID) {
		return ErrCycle
	}
	parent.Children = append(parent.Children, childID)
	return nil
}

// ClearChildren empties parentID's children list without touching the
// children themselves; used by the Lifecycle Controller when rebuilding
// plugins_menu from scratch each time the plugin subtree changes.
func (g *Graph) ClearChildren(parentID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	node, ok := g.nodes[parentID]
	if !ok {
		return ErrUnknownID
	}
	node.Children = []string{}
	return nil
}

// DetachChild removes childID from parentID's children list without
// deleting childID itself, used to unlink plugins_menu from main_menu when
// it becomes empty.
func (g *Graph) DetachChild(parentID, childID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	node, ok := g.nodes[parentID]
	if !ok {
		return ErrUnknownID
	}
	node.Children = removeString(node.Children, childID)
	return nil
}

// wouldCycle reports whether adding parentID -> childID would create a
// cycle, i.e. parentID is already reachable from childID (or they're equal).
func (g *Graph) wouldCycle(parentID, childID string) bool {
	if parentID == childID {
		return true
	}
	visited := make(map[string]bool)
	var dfs func(id string) bool
	dfs = func(id string) bool {
		if id == parentID {
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		node, ok := g.nodes[id]
		if !ok {
			return false
		}
		for _, child := range node.Children {
			if dfs(child) {
				return true
			}
		}
		return false
	}
	return dfs(childID)
}

// RemoveItem deletes a node or action and detaches it from every parent
// that references it. Unknown IDs are a silent no-op. System entities
// cannot be removed.
func (g *Graph) RemoveItem(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if node, ok := g.nodes[id]; ok {
		if node.IsSystem {
			return ErrSystemNode
		}
		delete(g.nodes, id)
	} else if action, ok := g.actions[id]; ok {
		if action.IsSystem {
			return ErrSystemNode
		}
		delete(g.actions, id)
	} else {
		return nil
	}

	for _, n := range g.nodes {
		n.Children = removeString(n.Children, id)
	}
	return nil
}

func removeString(s []string, target string) []string {
	out := s[:0]
	for _, v := range s {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}

// ChildrenOf returns the resolved, enabled children of id in insertion
// order. Disabled actions are omitted; menu nodes have no enabled flag and
// are always included. A child ID that no longer resolves (stale after a
// partial removal) is skipped rather than erroring.
func (g *Graph) ChildrenOf(id string) ([]ChildEntity, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	node, ok := g.nodes[id]
	if !ok {
		return nil, ErrUnknownID
	}

	result := make([]ChildEntity, 0, len(node.Children))
	for _, childID := range node.Children {
		if n, ok := g.nodes[childID]; ok {
			result = append(result, ChildEntity{ID: childID, Node: n})
			continue
		}
		if a, ok := g.actions[childID]; ok {
			if !a.Enabled {
				continue
			}
			result = append(result, ChildEntity{ID: childID, Action: a})
		}
	}
	return result, nil
}

// GetNode returns a copy of the node, if any.
func (g *Graph) GetNode(id string) (MenuNode, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return MenuNode{}, false
	}
	return *n, true
}

// GetAction returns a copy of the action, if any.
func (g *Graph) GetAction(id string) (ActionItem, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	a, ok := g.actions[id]
	if !ok {
		return ActionItem{}, false
	}
	return *a, true
}

// NavigateTo pushes id onto the navigation stack. Navigating to the
// current node is a no-op (it does not push a duplicate stack frame).
func (g *Graph) NavigateTo(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[id]; !ok {
		return ErrUnknownID
	}
	if g.stack[len(g.stack)-1] == id {
		return nil
	}
	g.stack = append(g.stack, id)
	return nil
}

// GoBack pops the navigation stack and returns the new current node. The
// root (main_menu) is never popped past.
func (g *Graph) GoBack() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.stack) > 1 {
		g.stack = g.stack[:len(g.stack)-1]
	}
	return g.stack[len(g.stack)-1]
}

// Current returns the node currently at the top of the navigation stack.
func (g *Graph) Current() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.stack[len(g.stack)-1]
}

// AllNodes and AllActions support Router rebuilds; both return copies.
func (g *Graph) AllNodes() map[string]MenuNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string]MenuNode, len(g.nodes))
	for id, n := range g.nodes {
		out[id] = *n
	}
	return out
}

func (g *Graph) AllActions() map[string]ActionItem {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string]ActionItem, len(g.actions))
	for id, a := range g.actions {
		out[id] = *a
	}
	return out
}
