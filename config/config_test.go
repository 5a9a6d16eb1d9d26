package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5250, cfg.Server.Port)
	assert.Equal(t, "get_client_data", cfg.Upstream.QueryID)
	assert.Equal(t, 30, cfg.Upstream.Timeout)
	assert.Equal(t, 60, cfg.Refresh.IntervalMinutes)
	assert.Equal(t, "database/leasedash.db", cfg.Database.Path)
	assert.Equal(t, 100, cfg.BatchProcessing.MaxBatchSize)
	assert.Equal(t, 2, cfg.BatchProcessing.ProcessorCount)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("REFRESH_INTERVAL_MINUTES", "15")
	t.Setenv("UPSTREAM_SESSION_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15, cfg.Refresh.IntervalMinutes)
	assert.Equal(t, "secret", cfg.Upstream.SessionKey)
}
