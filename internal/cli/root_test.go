package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PFADMIN_HOME", t.TempDir())
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	cmd := NewRootCmd("0.0.0-test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "pfadmin")
	assert.Contains(t, out, "browse")
	assert.Contains(t, out, "audit")
	assert.Contains(t, out, "rollback")
}

func TestRootCmd_RejectsBadCacheTTL(t *testing.T) {
	_, err := execute(t, "--cache-ttl", "never", "cache", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --cache-ttl")
}

func TestRootCmd_FlagOverridesReachConfig(t *testing.T) {
	flagTest := &cobra.Command{Use: "flagtest", RunE: func(*cobra.Command, []string) error { return nil }}

	cmd := NewRootCmd("0.0.0-test")
	cmd.AddCommand(flagTest)

	t.Setenv("PFADMIN_HOME", t.TempDir())
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	cmd.SetArgs([]string{
		"flagtest",
		"--server", "https://flag.example.com",
		"--org", "flagorg",
		"--cache-ttl", "2m",
		"--skip-version-check",
	})
	require.NoError(t, cmd.Execute())

	cfg := config.GetGlobalConfig()
	assert.Equal(t, "https://flag.example.com", cfg.Server.URL)
	assert.Equal(t, "flagorg", cfg.Server.Organization)
	assert.Equal(t, 120, cfg.Cache.TTLSeconds)
	assert.True(t, cfg.Server.SkipVersionCheck)
}

func TestCacheStatusCmd(t *testing.T) {
	out, err := execute(t, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache:")
	assert.Contains(t, out, "Entries:")
}

func TestConfigInitAndGet(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PFADMIN_HOME", home)
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	cmd := NewRootCmd("0.0.0-test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--global"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Created")

	// Re-running without --force refuses to overwrite.
	cmd = NewRootCmd("0.0.0-test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--global"})
	assert.Error(t, cmd.Execute())

	config.ResetGlobalConfigForTest()
	out.Reset()
	cmd = NewRootCmd("0.0.0-test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "get", "server.url"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), config.DefaultServerURL)
}

func TestRootCmd_CacheTTLZeroKeepsConfiguredTTL(t *testing.T) {
	out, err := execute(t, "--cache-ttl", "0", "config", "get", "cache.ttl_seconds")
	require.NoError(t, err)
	assert.Contains(t, out, "300")

	cfg := config.GetGlobalConfig()
	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
}
