package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/config"
)

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pfadmin configuration",
	}

	cmd.AddCommand(newConfigInitCmd(), newConfigGetCmd(), newConfigSetCmd(), newConfigListCmd())
	return cmd
}

// newConfigInitCmd creates the config init command. When run inside a
// project (a directory with a .pfadmin/ ancestor, without --global), it
// writes a project-local config.yaml plus a .gitignore. Otherwise it
// writes the global ~/.pfadmin/config.yaml.
func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Example: `  # Create project-local configuration (inside a project)
  pfadmin config init

  # Create global configuration
  pfadmin config init --global

  # Overwrite an existing configuration
  pfadmin config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir := config.GetResolvedProjectDir()

			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}
			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "force global configuration init even inside a project")

	return cmd
}

// initProjectConfig writes projectDir/config.yaml and a .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", configPath, err)
		}
	}

	if err := config.Default().SaveToFile(configPath); err != nil {
		return fmt.Errorf("failed to write project config: %w", err)
	}
	if _, err := config.EnsureGitignore(projectDir); err != nil {
		return fmt.Errorf("failed to write project .gitignore: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configPath)
	return nil
}

// initGlobalConfig writes the global config file.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	path, err := config.GetConfigFilePath()
	if err != nil {
		return err
	}

	if !force {
		if _, statErr := os.Stat(path); statErr == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		} else if !os.IsNotExist(statErr) {
			return fmt.Errorf("cannot access config path %s: %w", path, statErr)
		}
	}

	if err := config.Default().SaveToFile(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Example: `  pfadmin config get server.url
  pfadmin config get list.overscan`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := getConfigValue(config.GetGlobalConfig(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one configuration value and save the config file",
		Example: `  pfadmin config set server.url https://pfa.example.com
  pfadmin config set output.default_format json
  pfadmin config set list.overscan 20`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetGlobalConfig()

			if err := setConfigValue(cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("rejected: %w", err)
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the merged configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()

			// Never print the token.
			redacted := *cfg
			if redacted.Server.Token != "" {
				redacted.Server.Token = "(set)"
			}

			data, err := yaml.Marshal(&redacted)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// getConfigValue resolves a dotted key to its current value.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "server.url":
		return cfg.Server.URL, nil
	case "server.organization":
		return cfg.Server.Organization, nil
	case "output.default_format":
		return cfg.Output.DefaultFormat, nil
	case "logging.level":
		return cfg.Logging.Level, nil
	case "logging.format":
		return cfg.Logging.Format, nil
	case "logging.file":
		return cfg.Logging.File, nil
	case "cache.enabled":
		return strconv.FormatBool(cfg.Cache.Enabled), nil
	case "cache.ttl_seconds":
		return strconv.Itoa(cfg.Cache.TTLSeconds), nil
	case "list.overscan":
		return strconv.Itoa(cfg.List.Overscan), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue applies a dotted key assignment to cfg.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "server.url":
		cfg.Server.URL = value
	case "server.organization":
		cfg.Server.Organization = value
	case "output.default_format":
		cfg.Output.DefaultFormat = value
	case "logging.level":
		cfg.Logging.Level = value
	case "logging.format":
		cfg.Logging.Format = value
	case "logging.file":
		cfg.Logging.File = value
	case "cache.enabled":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cache.enabled must be true or false: %w", err)
		}
		cfg.Cache.Enabled = enabled
	case "cache.ttl_seconds":
		ttl, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cache.ttl_seconds must be an integer: %w", err)
		}
		cfg.Cache.TTLSeconds = ttl
	case "list.overscan":
		overscan, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("list.overscan must be an integer: %w", err)
		}
		cfg.List.Overscan = overscan
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
