package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/config"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the pfadmin CLI. It wires
// up configuration resolution, logging, tracing, and the subcommands
// (browse, audit, webhook, import, rollback, cache, config).
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "pfadmin",
		Short:   "Terminal console for PFA data management",
		Long:    "pfadmin: browse, audit, and manage master data on a PFA server from the terminal",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cacheTTL, _ := cmd.Flags().GetString("cache-ttl")
			if cacheTTL != "" {
				if _, err := parseCacheTTLFlag(cacheTTL); err != nil {
					return err
				}
			}

			projectFlag, _ := cmd.Flags().GetString("project-dir")
			startDir, err := os.Getwd()
			if err != nil {
				startDir = "."
			}
			projectDir := config.ResolveProjectDir(cmd.Context(), projectFlag, startDir)
			config.SetResolvedProjectDir(projectDir)

			cfg := config.NewWithProjectDir(cmd.Context(), projectDir)
			applyFlagOverrides(cmd, cfg)
			if validateErr := cfg.Validate(); validateErr != nil {
				return fmt.Errorf("invalid configuration: %w", validateErr)
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logResult != nil {
				return logResult.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("server", "", "server base URL (overrides config)")
	cmd.PersistentFlags().String("org", "", "organization to operate on (overrides config)")
	cmd.PersistentFlags().String("project-dir", "", "project directory containing a .pfadmin/ config overlay")
	cmd.PersistentFlags().Bool("skip-version-check", false, "skip the server version compatibility check")
	cmd.PersistentFlags().
		String("cache-ttl", "", "response cache TTL, as seconds or a duration like 5m (overrides config)")

	cmd.AddCommand(
		newBrowseCmd(),
		newAuditCmd(),
		newWebhookCmd(),
		newImportCmd(),
		newRollbackCmd(),
		newCacheCmd(),
		newConfigCmd(),
	)

	return cmd
}

// applyFlagOverrides copies persistent flag values onto the loaded config
// so every command sees one merged view.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.Server.URL = server
	}
	if org, _ := cmd.Flags().GetString("org"); org != "" {
		cfg.Server.Organization = org
	}
	if skip, _ := cmd.Flags().GetBool("skip-version-check"); skip {
		cfg.Server.SkipVersionCheck = true
	}
	if ttl, _ := cmd.Flags().GetString("cache-ttl"); ttl != "" {
		// Zero keeps the configured TTL.
		if seconds, err := parseCacheTTLFlag(ttl); err == nil && seconds > 0 {
			cfg.Cache.TTLSeconds = seconds
		}
	}
}

const rootCmdExample = `  # Browse project records interactively
  pfadmin browse projects

  # Browse against a specific server and organization
  pfadmin browse projects --server https://pfa.example.com --org acme

  # Search the audit log
  pfadmin audit "price changed last week"

  # Dump records as JSON for scripting
  pfadmin browse projects --output json

  # Validate and import a CSV file
  pfadmin import projects ./projects.csv

  # Roll a record back to an earlier version
  pfadmin rollback projects p-1042 --to-version 3

  # Manage webhook subscriptions
  pfadmin webhook

  # Show cache status
  pfadmin cache status

  # Initialize configuration
  pfadmin config init`
