// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Data    DataConfig
	UI      UIConfig
	Logging LoggingConfig
}

// DataConfig holds settings for the CSV table store.
type DataConfig struct {
	// Dir pins the data directory. When empty the directory is discovered
	// relative to the working directory.
	Dir string `env:"ESPORTS_DATA_DIR" envAlt:"DATA_DIR"`

	// DirName is the directory name searched for during discovery (default: data)
	DirName string `env:"ESPORTS_DATA_DIR_NAME" default:"data"`

	// Delimiter is the single-byte field separator (default: ,)
	Delimiter string `env:"ESPORTS_DELIMITER" default:","`

	// AuditFile is the file mutations are recorded to (default: audit.csv)
	AuditFile string `env:"ESPORTS_AUDIT_FILE" default:"audit.csv"`

	// AuditEnabled controls whether mutations are recorded (default: true)
	AuditEnabled bool `env:"ESPORTS_AUDIT_ENABLED" default:"true"`

	// Operator names who is making changes in the audit log
	Operator string `env:"ESPORTS_OPERATOR" envAlt:"USER"`
}

// UIConfig holds terminal frontend settings.
type UIConfig struct {
	// Mode selects the frontend: tui or plain (default: tui)
	Mode string `env:"UI_MODE" default:"tui"`

	// AltScreen runs the TUI in the terminal's alternate screen (default: true)
	AltScreen bool `env:"UI_ALT_SCREEN" default:"true"`

	// MessageDelay is how long status messages stay up in plain mode (default: 2s)
	MessageDelay time.Duration `env:"UI_MESSAGE_DELAY" default:"2s"`

	// MaxColumnWidth caps rendered column widths (default: 30)
	MaxColumnWidth int `env:"UI_MAX_COLUMN_WIDTH" default:"30"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// File receives log output; "-" means stderr (default: esports.log)
	File string `env:"LOG_FILE" default:"esports.log"`
}

// DelimiterByte returns the configured delimiter as a byte.
// Validate guarantees it is exactly one byte long.
func (c *DataConfig) DelimiterByte() byte {
	if c.Delimiter == "" {
		return ','
	}
	return c.Delimiter[0]
}

// LogToStderr reports whether logs should bypass the log file.
func (c *LoggingConfig) LogToStderr() bool {
	return c.File == "" || c.File == "-"
}
