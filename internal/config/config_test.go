package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nishasharma303/NitiVimarsh/internal/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL",
		"NITIVIMARSH_MAX_CONCURRENT", "NITIVIMARSH_SIMULATION_TIMEOUT",
		"NITIVIMARSH_GRAPH_FILE", "NITIVIMARSH_BASELINE_FILE", "NITIVIMARSH_SETTINGS_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(4), cfg.Server.MaxConcurrent)
	assert.Equal(t, 60*time.Second, cfg.Server.SimulationTimeout)
	assert.False(t, cfg.UsePostgres())
	assert.Empty(t, cfg.Paths.GraphFile)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/nitivimarsh?sslmode=disable")
	t.Setenv("NITIVIMARSH_MAX_CONCURRENT", "8")
	t.Setenv("NITIVIMARSH_SIMULATION_TIMEOUT", "90s")
	t.Setenv("NITIVIMARSH_GRAPH_FILE", "/etc/nitivimarsh/graph.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int64(8), cfg.Server.MaxConcurrent)
	assert.Equal(t, 90*time.Second, cfg.Server.SimulationTimeout)
	assert.True(t, cfg.UsePostgres())
	assert.Equal(t, "/etc/nitivimarsh/graph.yaml", cfg.Paths.GraphFile)
}

func TestLoadRejectsBadLimits(t *testing.T) {
	clearEnv(t)
	t.Setenv("NITIVIMARSH_MAX_CONCURRENT", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))
}

func TestMalformedNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("NITIVIMARSH_MAX_CONCURRENT", "many")
	t.Setenv("NITIVIMARSH_SIMULATION_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(4), cfg.Server.MaxConcurrent)
	assert.Equal(t, 60*time.Second, cfg.Server.SimulationTimeout)
}
