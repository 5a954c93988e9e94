package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = ".yt-list.yml"

// Environment variables that override values from the configuration file
const (
	EnvURL        = "YT_LIST_URL"
	EnvUser       = "YT_LIST_USER"
	EnvPassword   = "YT_LIST_PASSWORD"
	EnvDateFormat = "YT_LIST_DATE_FORMAT"
)

// DefaultTimeout is used for both the connect and the read timeout when none is configured.
// One second is what the wiki plugin always used; slow trackers will time out.
const DefaultTimeout = time.Second

// Config represents the tracker connection and rendering configuration
type Config struct {
	URL        string         `yaml:"url"`
	User       string         `yaml:"user"`
	Password   string         `yaml:"password"`
	DateFormat string         `yaml:"date_format"`
	Timezone   string         `yaml:"timezone,omitempty"`
	Timeouts   TimeoutsConfig `yaml:"timeouts,omitempty"`
	Output     OutputConfig   `yaml:"output,omitempty"`
}

// TimeoutsConfig represents transport timeouts
type TimeoutsConfig struct {
	Connect time.Duration `yaml:"connect,omitempty"`
	Read    time.Duration `yaml:"read,omitempty"`
}

// OutputConfig represents output settings
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
	// Columns are shown by list and view when none are requested
	Columns []string `yaml:"columns,omitempty"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DateFormat: "%Y-%m-%d",
		Timezone:   "UTC",
		Timeouts: TimeoutsConfig{
			Connect: DefaultTimeout,
			Read:    DefaultTimeout,
		},
		Output: OutputConfig{
			Format: "dokuwiki",
		},
	}
}

// LoadFrom loads configuration from the given path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file at %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// LoadOrDefault loads the configuration file if one exists, otherwise it returns
// the defaults with environment overrides applied. Commands that can run on
// environment variables alone use this.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return LoadFrom(path)
	}
	if configPath := findConfigFile(); configPath != "" {
		return LoadFrom(configPath)
	}

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides configured values with non-empty environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvURL); v != "" {
		c.URL = v
	}
	if v := os.Getenv(EnvUser); v != "" {
		c.User = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		c.Password = v
	}
	if v := os.Getenv(EnvDateFormat); v != "" {
		c.DateFormat = v
	}
}

// Save saves configuration to file. The file holds a password, so it is
// written readable by the owner only.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in current and parent directories
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// BaseURL returns the tracker URL without a trailing slash
func (c *Config) BaseURL() string {
	return NormalizeBaseURL(c.URL)
}

// NormalizeBaseURL strips a single trailing slash from u
func NormalizeBaseURL(u string) string {
	return strings.TrimSuffix(u, "/")
}

// HasCredentials reports whether url, user and password are all set
func (c *Config) HasCredentials() bool {
	return c.URL != "" && c.User != "" && c.Password != ""
}

// Location returns the configured timezone, falling back to UTC
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("tracker url is required")
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid tracker url '%s': %w", c.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid tracker url '%s': scheme must be http or https", c.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid tracker url '%s': host is missing", c.URL)
	}

	if c.User == "" {
		return fmt.Errorf("user is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}

	if c.DateFormat == "" {
		return fmt.Errorf("date_format is required")
	}

	if c.Timeouts.Connect < 0 || c.Timeouts.Read < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}
