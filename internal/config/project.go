package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/logging"
)

// projectDirName is the project-local configuration directory.
const projectDirName = ".pfadmin"

// resolvedProjectDir holds the resolved project directory path for use
// by other config functions during the lifetime of a CLI invocation.
var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the resolved project directory for use by other config functions.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the stored resolved project directory.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// FindProjectDir walks up from startDir looking for a .pfadmin directory
// and returns its path. Returns the empty string when none is found before
// the filesystem root.
func FindProjectDir(startDir string) string {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	current := absDir
	for {
		candidate := filepath.Join(current, projectDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root.
			return ""
		}
		current = parent
	}
}

// ResolveProjectDir determines the project-local .pfadmin directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. PFADMIN_PROJECT_DIR env var
//  3. walk-up from startDir
//
// Returns the path to $PROJECT/.pfadmin/ or empty string if no project
// found. Does NOT create the directory. Returned path is always absolute
// (or empty).
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv("PFADMIN_PROJECT_DIR"); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	return FindProjectDir(startDir)
}

// NewWithProjectDir creates a Config by loading global config then
// shallow-merging project-local config on top. If projectDir is empty,
// behaves identically to New().
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, "config.yaml")
	if _, err := os.Stat(overlayPath); err != nil {
		// Missing project config is not an error, use global defaults.
		return cfg
	}

	cfgCopy := New()
	if err := ShallowMergeYAML(cfgCopy, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global defaults")
		return cfg
	}

	return cfgCopy
}

// toAbsProjectDir converts dir to an absolute path and appends ".pfadmin".
// If the path already ends with ".pfadmin", it is returned as-is (after
// resolving to an absolute path) to prevent double-append.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == projectDirName {
		return abs
	}

	return filepath.Join(abs, projectDirName)
}
