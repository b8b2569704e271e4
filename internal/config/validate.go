package config

import (
	"fmt"
	"os"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0 (got %s)", c.Server.ShutdownTimeout)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Cache.OptionsSize <= 0 {
		return fmt.Errorf("cache.options_size must be > 0 (got %d)", c.Cache.OptionsSize)
	}

	if dir := c.Lexicon.DataDir; dir != "" {
		fi, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("lexicon.data_dir: %w", err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("lexicon.data_dir %s is not a directory", dir)
		}
	}

	return nil
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
