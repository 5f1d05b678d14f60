package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/config"
)

func TestGetConfigValue(t *testing.T) {
	cfg := config.Default()
	cfg.Server.URL = "https://pfa.example.com"
	cfg.Server.Organization = "acme"

	tests := []struct {
		key  string
		want string
	}{
		{"server.url", "https://pfa.example.com"},
		{"server.organization", "acme"},
		{"output.default_format", "table"},
		{"logging.level", "info"},
		{"cache.enabled", "true"},
		{"cache.ttl_seconds", "300"},
		{"list.overscan", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := getConfigValue(cfg, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := getConfigValue(cfg, "server.password")
	assert.Error(t, err)
}

func TestSetConfigValue(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, setConfigValue(cfg, "server.url", "https://other.example.com"))
	assert.Equal(t, "https://other.example.com", cfg.Server.URL)

	require.NoError(t, setConfigValue(cfg, "cache.enabled", "false"))
	assert.False(t, cfg.Cache.Enabled)

	require.NoError(t, setConfigValue(cfg, "list.overscan", "25"))
	assert.Equal(t, 25, cfg.List.Overscan)

	assert.Error(t, setConfigValue(cfg, "cache.enabled", "maybe"))
	assert.Error(t, setConfigValue(cfg, "list.overscan", "lots"))
	assert.Error(t, setConfigValue(cfg, "no.such.key", "x"))
}

func TestSetThenValidateRejectsBadValues(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, setConfigValue(cfg, "output.default_format", "xml"))
	assert.Error(t, cfg.Validate())
}

func TestParseCacheTTLFlag(t *testing.T) {
	seconds, err := parseCacheTTLFlag("5m")
	require.NoError(t, err)
	assert.Equal(t, 300, seconds)

	// Zero defers to the configured TTL.
	seconds, err = parseCacheTTLFlag("0")
	require.NoError(t, err)
	assert.Equal(t, 0, seconds)

	seconds, err = parseCacheTTLFlag("0s")
	require.NoError(t, err)
	assert.Equal(t, 0, seconds)

	_, err = parseCacheTTLFlag("-10")
	assert.Error(t, err)

	_, err = parseCacheTTLFlag("whenever")
	assert.Error(t, err)
}
