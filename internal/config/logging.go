package config

import "countryexplorer/internal/logging"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`       // debug, info, warn, error
	DebugMode  bool            `yaml:"debug_mode"`  // Master toggle - false = no logging
	JSONFormat bool            `yaml:"json_format"` // Structured JSON lines instead of console text
	Dir        string          `yaml:"dir"`
	Categories map[string]bool `yaml:"categories"` // Per-category toggles
}

// ToLogging converts to the logging package's config.
func (c LoggingConfig) ToLogging() logging.Config {
	return logging.Config{
		DebugMode:  c.DebugMode,
		Level:      c.Level,
		JSONFormat: c.JSONFormat,
		Dir:        c.Dir,
		Categories: c.Categories,
	}
}
