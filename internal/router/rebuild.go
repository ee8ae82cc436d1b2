package router

import "github.com/fastxteam/fastx-tui/internal/menu"

// RebuildFromGraph walks g and upserts one Route per registered node and
// action (attached or not), computing each entry's ParentID from the graph's children lists
// so Breadcrumb can walk it. System entities are marked IsSystem so a
// subsequent rebuild's RegisterRoute calls for them are no-ops, matching
// §4.4's "system routes are never re-registered mid-life."
//
// handlerFor supplies the Kind/Handler pair for a given ID; the router has
// no opinion on what a handler looks like beyond the ViewHandler/
// CommandHandler shapes it exports.
func (r *Router) RebuildFromGraph(g *menu.Graph, handlerFor func(id string, isNode bool) (kind string, handler interface{})) {
	nodes := g.AllNodes()
	actions := g.AllActions()

	parentOf := make(map[string]string)
	for parentID, node := range nodes {
		for _, childID := range node.Children {
			parentOf[childID] = parentID
		}
	}

	for id, node := range nodes {
		kind, handler := handlerFor(id, true)
		r.RegisterRoute(Route{
			ID:       id,
			ParentID: parentOf[id],
			Kind:     kind,
			Handler:  handler,
			IsSystem: node.IsSystem,
		})
	}
	for id, action := range actions {
		kind, handler := handlerFor(id, false)
		r.RegisterRoute(Route{
			ID:       id,
			ParentID: parentOf[id],
			Kind:     kind,
			Handler:  handler,
			IsSystem: action.IsSystem,
		})
	}
}
