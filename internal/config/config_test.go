package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no config.yaml present

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "models", cfg.Serving.ModelDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Scorer.LowDeposit)
	assert.Equal(t, 4, cfg.Scorer.ShortLead)
	assert.InDelta(t, 500.0, cfg.Scorer.DepositThreshold, 1e-9)
	assert.Equal(t, 30, cfg.Scorer.LeadDaysThreshold)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONTRACTRISK_STORE_DRIVER", "postgres")
	t.Setenv("CONTRACTRISK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.Error(t, InitLogger(LogConfig{Level: "not-a-level"}))
}
