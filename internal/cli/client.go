package cli

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api/cache"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/config"
)

// buildClient constructs an API client from the merged configuration and
// runs the server version handshake unless it was skipped.
func buildClient(cmd *cobra.Command) (*api.Client, error) {
	cfg := config.GetGlobalConfig()

	client := api.New(cfg.Server.URL,
		api.WithToken(cfg.ResolveToken()),
		api.WithOrganization(cfg.Server.Organization),
		api.WithHTTPClient(&http.Client{Timeout: cfg.Server.Timeout()}),
	)

	if !cfg.Server.SkipVersionCheck {
		if err := client.CheckServerVersion(cmd.Context()); err != nil {
			return nil, fmt.Errorf("server at %s: %w (use --skip-version-check to override)",
				cfg.Server.URL, err)
		}
	}

	return client, nil
}

// buildCacheStore opens the response cache per configuration and
// environment. A disabled cache still returns a usable no-op store.
func buildCacheStore() (*cache.FileStore, error) {
	cfg := config.GetGlobalConfig()

	enabled := cfg.Cache.Enabled && cache.GetCacheEnabledFromEnv()
	if !enabled {
		return cache.NewFileStore("", false, 0)
	}

	dir := cache.GetCacheDirFromEnv()
	if dir == "" {
		var err error
		dir, err = config.GetCacheDir()
		if err != nil {
			return nil, err
		}
	}

	return cache.NewFileStore(dir, true, cfg.Cache.TTLSeconds)
}

// parseCacheTTLFlag validates the --cache-ttl flag value. Zero means "use
// the configured TTL" and bypasses range validation.
func parseCacheTTLFlag(value string) (int, error) {
	if n, err := strconv.Atoi(value); err == nil && n == 0 {
		return 0, nil
	}
	if d, err := time.ParseDuration(value); err == nil && d == 0 {
		return 0, nil
	}
	seconds, err := cache.ParseTTL(value)
	if err != nil {
		return 0, fmt.Errorf("invalid --cache-ttl: %w", err)
	}
	return seconds, nil
}
