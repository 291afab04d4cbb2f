package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "countries.yaml"

// Config holds all country explorer configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the REST Countries client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout bounds a single request. Empty or "0" means no timeout.
	Timeout string `yaml:"timeout"`
}

// DisplayConfig configures rendering.
type DisplayConfig struct {
	DefaultSort string `yaml:"default_sort"` // name, population
	Locale      string `yaml:"locale"`       // BCP 47 tag used for name collation
	DarkMode    bool   `yaml:"dark_mode"`
	FlagWidth   int    `yaml:"flag_width"` // columns used by the flag preview
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://restcountries.com/v3.1",
			Timeout: "0",
		},
		Display: DisplayConfig{
			DefaultSort: "name",
			Locale:      "en",
			FlagWidth:   32,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   filepath.Join(".countries", "logs"),
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; existing variables are not overwritten.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("COUNTRIES_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("COUNTRIES_TIMEOUT"); v != "" {
		c.API.Timeout = v
	}
	if v := os.Getenv("COUNTRIES_LOCALE"); v != "" {
		c.Display.Locale = v
	}
	if os.Getenv("COUNTRIES_DARK_MODE") == "1" {
		c.Display.DarkMode = true
	}
	if os.Getenv("COUNTRIES_DEBUG") == "1" {
		c.Logging.DebugMode = true
	}
}

// GetTimeout returns the request timeout. Zero means none.
func (c *Config) GetTimeout() time.Duration {
	if c.API.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// ValidSorts lists the sort keys offered by the selector.
var ValidSorts = []string{"name", "population"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base_url: %q", c.API.BaseURL)
	}

	if c.API.Timeout != "" {
		if d, err := time.ParseDuration(c.API.Timeout); err != nil || d < 0 {
			return fmt.Errorf("invalid api timeout: %q", c.API.Timeout)
		}
	}

	validSort := false
	for _, s := range ValidSorts {
		if c.Display.DefaultSort == s {
			validSort = true
			break
		}
	}
	if !validSort {
		return fmt.Errorf("invalid default_sort: %s (valid: %v)", c.Display.DefaultSort, ValidSorts)
	}

	if c.Display.FlagWidth < 0 {
		return fmt.Errorf("flag_width must not be negative")
	}

	return nil
}
