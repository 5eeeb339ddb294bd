package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayoungbuilds/storeops-admin/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "StoreOps", cfg.StoreName)
	assert.Equal(t, 180, cfg.OrderCount)
	assert.Equal(t, 48, cfg.ItemCount)
	assert.Equal(t, "2026-02-02", cfg.SeedDate)
	assert.Zero(t, cfg.FailureRate)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("STOREOPS_STORE_NAME", "Corner Cafe")
	t.Setenv("STOREOPS_ORDER_COUNT", "12")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "Corner Cafe", cfg.StoreName)
	assert.Equal(t, 12, cfg.OrderCount)
}
