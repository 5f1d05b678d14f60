package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// TTL configuration constants and defaults.
const (
	// DefaultTTLSeconds is the default cache TTL (5 minutes). Admin data
	// changes often enough that long TTLs would show stale records.
	DefaultTTLSeconds = 300

	// MinTTLSeconds is the minimum allowed TTL.
	MinTTLSeconds = 1

	// MaxTTLSeconds is the maximum allowed TTL (1 day).
	MaxTTLSeconds = 86400

	// EnvTTLSeconds is the environment variable for overriding TTL.
	EnvTTLSeconds = "PFADMIN_CACHE_TTL"

	// EnvCacheEnabled is the environment variable for enabling/disabling cache.
	EnvCacheEnabled = "PFADMIN_CACHE_ENABLED"

	// EnvCacheDir is the environment variable for the cache directory.
	EnvCacheDir = "PFADMIN_CACHE_DIR"

	minutesPerHour = 60
	hoursPerDay    = 24
)

// ErrInvalidTTL reports a TTL outside the allowed range.
var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// GetTTLFromEnv reads the TTL from the environment or returns the default.
// Unparseable or out-of-range values fall back to the default.
func GetTTLFromEnv() int {
	envVal := os.Getenv(EnvTTLSeconds)
	if envVal == "" {
		return DefaultTTLSeconds
	}

	ttl, err := ParseTTL(envVal)
	if err != nil {
		return DefaultTTLSeconds
	}
	return ttl
}

// GetCacheEnabledFromEnv reads the cache-enabled flag from the environment.
// The cache is on unless explicitly disabled.
func GetCacheEnabledFromEnv() bool {
	envVal := os.Getenv(EnvCacheEnabled)
	if envVal == "" {
		return true
	}

	enabled, err := strconv.ParseBool(envVal)
	if err != nil {
		return true
	}
	return enabled
}

// GetCacheDirFromEnv reads the cache directory override from the
// environment. Empty means the caller should use the default.
func GetCacheDirFromEnv() string {
	return os.Getenv(EnvCacheDir)
}

// ParseTTL parses a TTL given as integer seconds ("300") or as a Go
// duration string ("5m", "1h30m").
func ParseTTL(s string) (int, error) {
	if seconds, err := strconv.Atoi(s); err == nil {
		if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
			return 0, fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
		}
		return seconds, nil
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid TTL format: %w", err)
	}

	seconds := int(duration.Seconds())
	if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return seconds, nil
}

// FormatDuration renders a duration compactly for status output.
// Examples: "45s", "30m", "1h30m", "2d".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	if d < hoursPerDay*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}
