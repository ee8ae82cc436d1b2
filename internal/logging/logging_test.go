package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		logger, err := New(level)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}

func TestZapLogger_With(t *testing.T) {
	base := NewNop()
	scoped := base.With("plugin", "example")
	assert.NotNil(t, scoped)

	// With must not panic and must return something still satisfying the
	// Logger port.
	scoped.Infow("registered", "node_count", 3)
}

func TestNewDevelopment(t *testing.T) {
	logger, err := NewDevelopment()
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Debugw("startup", "stage", "test")
}

func TestNewNop_DoesNotPanic(t *testing.T) {
	logger := NewNop()
	logger.Debugw("msg")
	logger.Infow("msg")
	logger.Warnw("msg")
	logger.Errorw("msg")
	assert.NoError(t, logger.Sync())
}
