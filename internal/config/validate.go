package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Translation credentials are
// deliberately not required here; they are checked by the translator at
// construction so fetch-only workflows run without a key.
func (c *Config) Validate() error {
	if err := c.validateHTTP(); err != nil {
		return err
	}
	if err := c.validateYtDlp(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateHTTP() error {
	if c.HTTP.ConnectTimeoutSeconds < 0 {
		return errors.New("http.connect_timeout_seconds must not be negative")
	}
	if c.HTTP.ReadTimeoutSeconds < 0 {
		return errors.New("http.read_timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateYtDlp() error {
	if !c.YtDlp.Enabled {
		return nil
	}
	if c.YtDlp.Binary == "" {
		return errors.New("ytdlp.binary must be set when ytdlp.enabled is true")
	}
	if c.YtDlp.TimeoutSeconds < 0 {
		return errors.New("ytdlp.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.TimeoutSeconds < 0 {
		return errors.New("llm.timeout_seconds must not be negative")
	}
	if c.LLM.BaseURL != "" && !strings.Contains(c.LLM.BaseURL, "://") {
		return fmt.Errorf("llm.base_url %q is not a URL", c.LLM.BaseURL)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Path) == "" {
		return errors.New("cache.path must be set when cache.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported (console or json)", c.Logging.Format)
	}
	return nil
}
