package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastxteam/fastx-tui/internal/menu"
)

func TestRegisterRoute_SystemRouteIsIdempotent(t *testing.T) {
	r := New()
	r.RegisterRoute(Route{ID: "main_menu", Kind: KindMenu, IsSystem: true, Handler: "first"})
	r.RegisterRoute(Route{ID: "main_menu", Kind: KindMenu, IsSystem: true, Handler: "second"})

	route, err := r.GetRoute("main_menu")
	require.NoError(t, err)
	assert.Equal(t, "first", route.Handler)
}

func TestRegisterRoute_NonSystemRouteOverwrites(t *testing.T) {
	r := New()
	r.RegisterRoute(Route{ID: "plugins_menu", Kind: KindMenu, Handler: "first"})
	r.RegisterRoute(Route{ID: "plugins_menu", Kind: KindMenu, Handler: "second"})

	route, err := r.GetRoute("plugins_menu")
	require.NoError(t, err)
	assert.Equal(t, "second", route.Handler)
}

func TestGetRoute_NotFound(t *testing.T) {
	r := New()
	_, err := r.GetRoute("missing")
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestRemoveRoute_RefusesSystemRoutesSilently(t *testing.T) {
	r := New()
	r.RegisterRoute(Route{ID: "main_menu", IsSystem: true})
	r.RemoveRoute("main_menu")

	_, err := r.GetRoute("main_menu")
	assert.NoError(t, err)
}

func TestBreadcrumb_WalksParentChain(t *testing.T) {
	r := New()
	r.RegisterRoute(Route{ID: "main_menu", ParentID: "", IsSystem: true})
	r.RegisterRoute(Route{ID: "plugins_menu", ParentID: "main_menu"})
	r.RegisterRoute(Route{ID: "alpha_hello", ParentID: "plugins_menu"})

	crumb, err := r.Breadcrumb("alpha_hello")
	require.NoError(t, err)
	assert.Equal(t, []string{"main_menu", "plugins_menu", "alpha_hello"}, crumb)
}

func TestBreadcrumb_UnknownIDErrors(t *testing.T) {
	r := New()
	_, err := r.Breadcrumb("missing")
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestRebuildFromGraph_ComputesParentsAndPreservesSystemRoutes(t *testing.T) {
	g := menu.NewGraph()
	require.NoError(t, g.RegisterNode(menu.MenuNode{ID: "plugins_menu"}))
	require.NoError(t, g.RegisterAction(menu.ActionItem{ID: "alpha_hello", Enabled: true}))
	require.NoError(t, g.AddChild(menu.MainMenuID, "plugins_menu"))
	require.NoError(t, g.AddChild("plugins_menu", "alpha_hello"))

	r := New()
	handlerFor := func(id string, isNode bool) (string, interface{}) {
		if isNode {
			return KindMenu, nil
		}
		return KindCommand, nil
	}
	r.RebuildFromGraph(g, handlerFor)

	crumb, err := r.Breadcrumb("alpha_hello")
	require.NoError(t, err)
	assert.Equal(t, []string{menu.MainMenuID, "plugins_menu", "alpha_hello"}, crumb)

	mainRoute, err := r.GetRoute(menu.MainMenuID)
	require.NoError(t, err)
	assert.True(t, mainRoute.IsSystem)

	// Rebuilding again must not touch the system route's handler.
	r.RegisterRoute(Route{ID: menu.MainMenuID, IsSystem: true, Handler: "replacement"})
	mainRoute, err = r.GetRoute(menu.MainMenuID)
	require.NoError(t, err)
	assert.Nil(t, mainRoute.Handler)
}
