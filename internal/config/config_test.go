package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresURL(t *testing.T) {
	t.Setenv("NIGHTSCOUT_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoURL)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NIGHTSCOUT_URL", "https://h.com")
	t.Setenv("CGM_DB_PATH", "")
	t.Setenv("CGM_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://h.com", cfg.NightscoutURL)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NIGHTSCOUT_URL", "https://h.com")
	t.Setenv("CGM_DB_PATH", "/tmp/custom.db")
	t.Setenv("CGM_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}
