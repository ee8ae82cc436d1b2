package configstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastxteam/fastx-tui/internal/clock"
	"github.com/fastxteam/fastx-tui/internal/interfaces"
	"github.com/fastxteam/fastx-tui/internal/logging"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.db")
	s, err := Open(path, clock.NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_SeedsSchemaDefaults(t *testing.T) {
	s := newTestStore(t)

	theme, ok := s.GetApp("theme")
	require.True(t, ok)
	assert.Equal(t, "dark", theme)

	cap, ok := s.GetPref("search_history_cap")
	require.True(t, ok)
	assert.Equal(t, float64(20), cap)
}

func TestSetApp_GetApp_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetApp("theme", "light"))
	value, ok := s.GetApp("theme")
	require.True(t, ok)
	assert.Equal(t, "light", value)
}

func TestSetApp_RejectsInvalidEnum(t *testing.T) {
	s := newTestStore(t)

	err := s.SetApp("theme", "solarized")
	require.Error(t, err)
	assert.True(t, IsConfigInvalid(err))

	// store left unchanged
	value, ok := s.GetApp("theme")
	require.True(t, ok)
	assert.Equal(t, "dark", value)
}

func TestSetApp_UnknownKeyStoredWithoutValidation(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetApp("custom_experimental_flag", "anything"))
	value, ok := s.GetApp("custom_experimental_flag")
	require.True(t, ok)
	assert.Equal(t, "anything", value)
}

func TestPushSearchHistory_EnforcesCapDroppingOldest(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetPref("search_history_cap", float64(3)))

	for _, term := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.PushSearchHistory(term))
	}

	raw, ok := s.GetPref("search_history")
	require.True(t, ok)
	list, ok := raw.([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"b", "c", "d"}, list)
}

func TestPlugin_SetGetUpdateRemove(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetPlugin("Alpha", map[string]interface{}{"greeting": "hi"}))
	settings, ok := s.GetPlugin("Alpha")
	require.True(t, ok)
	assert.Equal(t, "hi", settings["greeting"])

	require.NoError(t, s.UpdatePlugin("Alpha", map[string]interface{}{"volume": float64(5)}))
	settings, ok = s.GetPlugin("Alpha")
	require.True(t, ok)
	assert.Equal(t, "hi", settings["greeting"])
	assert.Equal(t, float64(5), settings["volume"])

	all, err := s.ListPluginConfigs()
	require.NoError(t, err)
	assert.Contains(t, all, "Alpha")

	require.NoError(t, s.RemovePlugin("Alpha"))
	_, ok = s.GetPlugin("Alpha")
	assert.False(t, ok)
}

func TestPluginAuditID_StableAcrossUpdates(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetPlugin("Alpha", map[string]interface{}{"greeting": "hi"}))
	first, ok := s.PluginAuditID("Alpha")
	require.True(t, ok)
	assert.NotEmpty(t, first)

	require.NoError(t, s.UpdatePlugin("Alpha", map[string]interface{}{"volume": float64(5)}))
	second, ok := s.PluginAuditID("Alpha")
	require.True(t, ok)
	assert.Equal(t, first, second)

	require.NoError(t, s.RemovePlugin("Alpha"))
	_, ok = s.PluginAuditID("Alpha")
	assert.False(t, ok)
}

func TestPlugin_SetValidatesAgainstRegisteredSchema(t *testing.T) {
	s := newTestStore(t)
	s.RegisterPluginSchema("Alpha", []interfaces.PluginConfigField{
		{Key: "volume", Type: "integer", Required: true},
	})

	err := s.SetPlugin("Alpha", map[string]interface{}{"volume": "not-a-number"})
	require.Error(t, err)
	assert.True(t, IsConfigInvalid(err))

	require.NoError(t, s.SetPlugin("Alpha", map[string]interface{}{"volume": float64(3)}))
}

func TestResetToDefaults_RestoresSchemaDefaults(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetApp("theme", "light"))
	require.NoError(t, s.SetPref("recents_cap", float64(50)))

	require.NoError(t, s.ResetToDefaults())

	theme, ok := s.GetApp("theme")
	require.True(t, ok)
	assert.Equal(t, "dark", theme)

	recentsCap, ok := s.GetPref("recents_cap")
	require.True(t, ok)
	assert.Equal(t, float64(10), recentsCap)
}

func TestExportImport_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetApp("theme", "light"))
	require.NoError(t, s.SetPlugin("Alpha", map[string]interface{}{"greeting": "hi"}))

	data, err := s.Export()
	require.NoError(t, err)

	require.NoError(t, s.ResetToDefaults())
	theme, _ := s.GetApp("theme")
	assert.Equal(t, "dark", theme)

	require.NoError(t, s.Import(data))

	theme, ok := s.GetApp("theme")
	require.True(t, ok)
	assert.Equal(t, "light", theme)

	settings, ok := s.GetPlugin("Alpha")
	require.True(t, ok)
	assert.Equal(t, "hi", settings["greeting"])
}

func TestImport_InvalidValueLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetApp("theme", "light"))

	bad := []byte("app:\n  theme: not-a-real-theme\npreference: {}\nplugin: {}\n")
	err := s.Import(bad)
	require.Error(t, err)
	assert.True(t, IsConfigInvalid(err))

	theme, ok := s.GetApp("theme")
	require.True(t, ok)
	assert.Equal(t, "light", theme)
}

func TestReconcileNamespace_DiscardsCorruptNamespaceOnOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.db")
	clk := clock.NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	logger := logging.NewNop()

	s, err := Open(path, clk, logger)
	require.NoError(t, err)
	require.NoError(t, s.SetApp("theme", "light"))
	_, execErr := s.db.Exec(
		`UPDATE configs SET value = ? WHERE key = ? AND type = ?`,
		`"not-a-valid-theme"`, "theme", typeApp,
	)
	require.NoError(t, execErr)
	require.NoError(t, s.Close())

	s2, err := Open(path, clk, logger)
	require.NoError(t, err)
	defer s2.Close()

	theme, ok := s2.GetApp("theme")
	require.True(t, ok)
	assert.Equal(t, "dark", theme)
}
