package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOMDb(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOMDb() error {
	if !strings.HasPrefix(c.OMDb.BaseURL, "http://") && !strings.HasPrefix(c.OMDb.BaseURL, "https://") {
		return fmt.Errorf("omdb.base_url must be an http(s) URL, got %q", c.OMDb.BaseURL)
	}
	if c.OMDb.TimeoutSeconds < 0 {
		return errors.New("omdb.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend: unsupported value %q (want %q or %q)", c.Storage.Backend, BackendFile, BackendSQLite)
	}
	if strings.ContainsAny(c.Storage.Slot, `/\`) {
		return fmt.Errorf("storage.slot must be a plain name, got %q", c.Storage.Slot)
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.DebounceMillis < 0 {
		return errors.New("search.debounce_ms must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 {
		return errors.New("logging.max_size_mb and logging.max_backups must not be negative")
	}
	return nil
}
