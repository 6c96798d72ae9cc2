package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexup/codexup/internal/config"
)

func defaultTestConfig(t *testing.T) config.Config {
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestNewUpdaterFromDefaults(t *testing.T) {
	u, err := newUpdater(defaultTestConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "codex", u.Command)
}

func TestNewUpdaterRejectsUnknownSource(t *testing.T) {
	cfg := defaultTestConfig(t)
	cfg.Source = "sourceforge"

	_, err := newUpdater(cfg)
	assert.Error(t, err)
}
