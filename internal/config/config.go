package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Default values applied by New().
const (
	DefaultServerURL      = "http://localhost:8080"
	DefaultOutputFormat   = "table"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultCacheTTL       = 5 * time.Minute
	DefaultOverscan       = 10
	DefaultRequestTimeout = 60 * time.Second
)

// Validation limits.
const (
	MaxOverscan = 1000
	MinOverscan = 0
)

// Configuration validation errors.
var (
	ErrServerURLRequired    = errors.New("server url is required")
	ErrOutputFormatInvalid  = errors.New("output format must be 'table' or 'json'")
	ErrOverscanOutOfRange   = errors.New("list overscan must be between 0 and 1000")
	ErrCacheTTLNegative     = errors.New("cache ttl cannot be negative")
	ErrEntityColumnsMissing = errors.New("entity config must list at least one column")
)

// ServerConfig holds the connection settings for the data-management server.
type ServerConfig struct {
	// URL is the base URL of the server, e.g. "https://pfa.example.com".
	URL string `yaml:"url"                          json:"url"`
	// Token is the bearer token used for authentication. Prefer the
	// PFADMIN_TOKEN environment variable over storing it here.
	Token string `yaml:"token,omitempty"              json:"token,omitempty"`
	// Organization is the tenant identifier sent with every request.
	Organization string `yaml:"organization,omitempty"       json:"organization,omitempty"`
	// SkipVersionCheck disables the startup server version handshake.
	SkipVersionCheck bool `yaml:"skip_version_check,omitempty" json:"skip_version_check,omitempty"`
	// TimeoutSeconds overrides the per-request timeout. 0 means the default.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"    json:"timeout_seconds,omitempty"`
}

// Timeout returns the configured request timeout, defaulting when unset.
func (s ServerConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// OutputConfig controls non-interactive rendering.
type OutputConfig struct {
	// DefaultFormat is used when --output is not given: "table" or "json".
	DefaultFormat string `yaml:"default_format" json:"default_format"`
}

// Validate checks the output section.
func (o OutputConfig) Validate() error {
	switch o.DefaultFormat {
	case "table", "json":
		return nil
	default:
		return fmt.Errorf("%w: got %q", ErrOutputFormatInvalid, o.DefaultFormat)
	}
}

// LoggingConfig holds the logging section of the configuration file.
type LoggingConfig struct {
	// Level is the zerolog level name ("debug", "info", "warn", "error").
	Level string `yaml:"level"          json:"level"`
	// Format is "console" or "json".
	Format string `yaml:"format"         json:"format"`
	// File, when set, appends logs to this path in addition to stderr.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

// CacheConfig controls the local response cache.
type CacheConfig struct {
	// Enabled toggles the cache entirely.
	Enabled bool `yaml:"enabled"               json:"enabled"`
	// TTLSeconds is how long cached responses stay fresh.
	TTLSeconds int `yaml:"ttl_seconds,omitempty" json:"ttl_seconds,omitempty"`
	// Dir overrides the cache directory. Empty means ~/.pfadmin/cache.
	Dir string `yaml:"dir,omitempty"         json:"dir,omitempty"`
}

// TTL returns the cache entry lifetime, defaulting when unset.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return DefaultCacheTTL
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// Validate checks the cache section.
func (c CacheConfig) Validate() error {
	if c.TTLSeconds < 0 {
		return fmt.Errorf("%w: got %d", ErrCacheTTLNegative, c.TTLSeconds)
	}
	return nil
}

// ListConfig tunes the interactive record lists.
type ListConfig struct {
	// Overscan is the number of extra rows rendered above and below the
	// visible range so scrolling never shows a blank edge.
	Overscan int `yaml:"overscan" json:"overscan"`
}

// Validate checks the list section.
func (l ListConfig) Validate() error {
	if l.Overscan < MinOverscan || l.Overscan > MaxOverscan {
		return fmt.Errorf("%w: got %d", ErrOverscanOutOfRange, l.Overscan)
	}
	return nil
}

// EntityConfig customizes how one entity is displayed and searched.
type EntityConfig struct {
	// Label is the human-readable name shown in headers.
	Label string `yaml:"label,omitempty"         json:"label,omitempty"`
	// Columns lists the record fields shown in the browse table, in order.
	Columns []string `yaml:"columns"                 json:"columns"`
	// SearchFields lists the fields the filter matches against. Empty
	// means the filter uses Columns.
	SearchFields []string `yaml:"search_fields,omitempty" json:"search_fields,omitempty"`
}

// Validate checks one entity section.
func (e EntityConfig) Validate() error {
	if len(e.Columns) == 0 {
		return ErrEntityColumnsMissing
	}
	return nil
}

// Config is the full pfadmin configuration, loaded from
// ~/.pfadmin/config.yaml with optional project-local overrides.
type Config struct {
	Server   ServerConfig            `yaml:"server"             json:"server"`
	Output   OutputConfig            `yaml:"output"             json:"output"`
	Logging  LoggingConfig           `yaml:"logging"            json:"logging"`
	Cache    CacheConfig             `yaml:"cache"              json:"cache"`
	List     ListConfig              `yaml:"list"               json:"list"`
	Entities map[string]EntityConfig `yaml:"entities,omitempty" json:"entities,omitempty"`
}

// New returns a Config populated with defaults and, when the global config
// file exists, the values loaded from it. A missing file is not an error.
func New() *Config {
	cfg := Default()

	path, err := GetConfigFilePath()
	if err != nil {
		return cfg
	}

	if loadErr := cfg.LoadFromFile(path); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
		// Not the global logger: New can run while the logger lock is held.
		stderrLog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		stderrLog.Warn().
			Str("component", "config").
			Err(loadErr).
			Str("path", path).
			Msg("failed to load config file, using defaults")
		return Default()
	}

	return cfg
}

// Default returns a Config with only the built-in defaults applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL: DefaultServerURL,
		},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: int(DefaultCacheTTL / time.Second),
		},
		List: ListConfig{
			Overscan: DefaultOverscan,
		},
	}
}

// LoadFromFile reads a YAML config file into the receiver. Fields absent
// from the file keep their current values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return nil
}

// SaveToFile writes the configuration as YAML to path, creating the parent
// directory if needed. The file is written 0600 because it may hold a token.
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(path), 0700); mkdirErr != nil {
		return fmt.Errorf("creating config directory: %w", mkdirErr)
	}

	if writeErr := os.WriteFile(path, data, 0600); writeErr != nil {
		return fmt.Errorf("writing config file %s: %w", path, writeErr)
	}

	return nil
}

// Save writes the configuration to the global config file path.
func (c *Config) Save() error {
	path, err := GetConfigFilePath()
	if err != nil {
		return err
	}
	return c.SaveToFile(path)
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return ErrServerURLRequired
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.List.Validate(); err != nil {
		return err
	}
	for name, entity := range c.Entities {
		if err := entity.Validate(); err != nil {
			return fmt.Errorf("entity %q: %w", name, err)
		}
	}
	return nil
}

// EntityFor returns the display settings for the named entity. When no
// section exists, a generic fallback showing id and name is returned.
func (c *Config) EntityFor(name string) EntityConfig {
	if entity, ok := c.Entities[name]; ok {
		return entity
	}
	return EntityConfig{
		Label:   name,
		Columns: []string{"id", "name"},
	}
}

// Token resolves the API token, preferring the PFADMIN_TOKEN environment
// variable over the config file so tokens need not be written to disk.
func (c *Config) ResolveToken() string {
	if env := os.Getenv("PFADMIN_TOKEN"); env != "" {
		return env
	}
	return c.Server.Token
}
