package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerBaseURL)
	assert.Equal(t, "storefront.db", c.CacheDSN)
	assert.Equal(t, 60*time.Second, c.StoreStatusInterval)
	assert.Equal(t, 15*time.Second, c.OrdersPollInterval)
	assert.Equal(t, 10*time.Second, c.HTTPTimeout)
	assert.Equal(t, int64(3500), c.DeliveryFee)
	assert.Empty(t, c.StartupQuery)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerBaseURL)
	assert.Equal(t, 60*time.Second, cfg.StoreStatusInterval)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-a", "https://api.bobadragon.mx", "-i", "30", "-q", "payment_status=success"}

	cfg := LoadConfig()

	assert.Equal(t, "https://api.bobadragon.mx", cfg.ServerBaseURL)
	assert.Equal(t, 30*time.Second, cfg.StoreStatusInterval)
	assert.Equal(t, "payment_status=success", cfg.StartupQuery)
}
