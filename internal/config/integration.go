package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// GlobalConfig holds the global configuration instance.
var GlobalConfig *Config        //nolint:gochecknoglobals // Singleton pattern for configuration
var globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects globalConfigInit flag
var globalConfigInit bool       //nolint:gochecknoglobals // Tracks if global config has been initialized

// InitGlobalConfig initializes the global configuration.
func InitGlobalConfig() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	if globalConfigInit {
		return
	}

	GlobalConfig = New()
	globalConfigInit = true
}

// SetGlobalConfig replaces the global configuration. Used after project
// overlays have been merged so later lookups see the merged values.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	GlobalConfig = cfg
	globalConfigInit = true
}

// ResetGlobalConfigForTest resets the global config for testing purposes.
func ResetGlobalConfigForTest() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	GlobalConfig = nil
	globalConfigInit = false
}

// GetGlobalConfig returns the global configuration, initializing it if needed.
func GetGlobalConfig() *Config {
	InitGlobalConfig()

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return GlobalConfig
}

// GetDefaultOutputFormat returns the configured default output format.
func GetDefaultOutputFormat() string {
	cfg := GetGlobalConfig()
	return cfg.Output.DefaultFormat
}

// GetLogLevel returns the configured log level.
func GetLogLevel() string {
	cfg := GetGlobalConfig()
	return cfg.Logging.Level
}

// GetLogFile returns the configured log file path.
func GetLogFile() string {
	cfg := GetGlobalConfig()
	return cfg.Logging.File
}

// GetListOverscan returns the configured list overscan row count.
func GetListOverscan() int {
	cfg := GetGlobalConfig()
	return cfg.List.Overscan
}

// GetConfigDir returns the path to the pfadmin configuration directory.
func GetConfigDir() (string, error) {
	if pfaHome := os.Getenv("PFADMIN_HOME"); pfaHome != "" {
		return pfaHome, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pfadmin"), nil
}

// GetConfigFilePath returns the path of the global config file.
func GetConfigFilePath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// GetCacheDir returns the response cache directory. A configured override
// wins over the default ~/.pfadmin/cache location.
func GetCacheDir() (string, error) {
	cfg := GetGlobalConfig()
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "cache"), nil
}

// EnsureConfigDir ensures the pfadmin configuration directory exists.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// EnsureCacheDir ensures the response cache directory exists.
func EnsureCacheDir() error {
	dir, err := GetCacheDir()
	if err != nil {
		return err
	}
	if mkdirErr := os.MkdirAll(dir, 0700); mkdirErr != nil {
		return fmt.Errorf("failed to create cache directory %q: %w", dir, mkdirErr)
	}
	return nil
}

// EnsureLogDir ensures the directory for the configured log file exists.
// If no log file is configured, it does nothing.
func EnsureLogDir() error {
	cfg := GetGlobalConfig()
	if cfg.Logging.File == "" {
		return nil
	}
	logDir := filepath.Dir(cfg.Logging.File)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}

// EnsureSubDirs creates the standard configuration subdirectories under the
// user's config directory and ensures the log directory exists.
func EnsureSubDirs() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	if err := EnsureCacheDir(); err != nil {
		return err
	}
	return EnsureLogDir()
}
