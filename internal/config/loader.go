package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Returns an error if required values are missing or validation fails.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration and panics on error.
// Use this only in main() where early termination is desired.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		// Skip unexported fields
		if !fieldVal.CanSet() {
			continue
		}

		// Recurse into nested structs
		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Time{}) {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		// Get tags
		envName := field.Tag.Get("env")
		envAlt := field.Tag.Get("envAlt")
		defaultVal := field.Tag.Get("default")
		required := field.Tag.Get("required") == "true"

		if envName == "" {
			continue
		}

		// Try primary env var, then alternate
		value := os.Getenv(envName)
		if value == "" && envAlt != "" {
			value = os.Getenv(envAlt)
		}

		// Apply default if not set
		if value == "" {
			if required {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = defaultVal
		}

		if value == "" {
			continue
		}

		// Set the field value
		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		// Handle time.Duration specially
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.Set(reflect.ValueOf(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer: %w", err)
			}
			field.SetInt(i)
		}

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			// Split comma-separated values, trim whitespace
			parts := strings.Split(value, ",")
			result := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					result = append(result, p)
				}
			}
			field.Set(reflect.ValueOf(result))
		} else {
			return fmt.Errorf("unsupported slice type: %s", field.Type().Elem().Kind())
		}

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Data validation
	if c.Data.Dir == "" && c.Data.DirName == "" {
		errs = append(errs, "ESPORTS_DATA_DIR_NAME must not be empty when ESPORTS_DATA_DIR is unset")
	}
	if len(c.Data.Delimiter) != 1 {
		errs = append(errs, fmt.Sprintf("ESPORTS_DELIMITER (%q) must be exactly one byte", c.Data.Delimiter))
	} else if c.Data.Delimiter == `"` || c.Data.Delimiter == "\n" || c.Data.Delimiter == "\r" {
		errs = append(errs, fmt.Sprintf("ESPORTS_DELIMITER (%q) cannot be a quote or line break", c.Data.Delimiter))
	}
	if c.Data.AuditEnabled && strings.TrimSpace(c.Data.AuditFile) == "" {
		errs = append(errs, "ESPORTS_AUDIT_FILE is required when ESPORTS_AUDIT_ENABLED is true")
	}

	// UI validation
	validModes := map[string]bool{"tui": true, "plain": true}
	if !validModes[strings.ToLower(c.UI.Mode)] {
		errs = append(errs, fmt.Sprintf("UI_MODE (%q) must be one of: tui, plain", c.UI.Mode))
	}
	if c.UI.MessageDelay < 0 {
		errs = append(errs, "UI_MESSAGE_DELAY must be non-negative")
	}
	if c.UI.MaxColumnWidth < 4 {
		errs = append(errs, fmt.Sprintf("UI_MAX_COLUMN_WIDTH (%d) must be at least 4", c.UI.MaxColumnWidth))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	dir := c.Data.Dir
	if dir == "" {
		dir = "[discover:" + c.Data.DirName + "]"
	}
	b.WriteString(fmt.Sprintf("Data: {Dir: %q, Delimiter: %q, AuditFile: %q, AuditEnabled: %v}, ",
		dir, c.Data.Delimiter, c.Data.AuditFile, c.Data.AuditEnabled))
	b.WriteString(fmt.Sprintf("UI: {Mode: %q, AltScreen: %v, MessageDelay: %s, MaxColumnWidth: %d}, ",
		c.UI.Mode, c.UI.AltScreen, c.UI.MessageDelay, c.UI.MaxColumnWidth))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q, File: %q}",
		c.Logging.Level, c.Logging.Format, c.Logging.File))
	b.WriteString("}")
	return b.String()
}
