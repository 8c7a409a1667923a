package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateURLs(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateHTTP(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateURLs() error {
	for key, value := range map[string]string{
		"tmdb.base_url":          c.TMDB.BaseURL,
		"tmdb.image_base_url":    c.TMDB.ImageBaseURL,
		"schedule.base_url":      c.Schedule.BaseURL,
		"match_service.base_url": c.MatchService.BaseURL,
	} {
		if value == "" {
			continue
		}
		parsed, err := url.Parse(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", key, value)
		}
		if parsed.Host == "" {
			return fmt.Errorf("%s must include a host, got %q", key, value)
		}
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.Concurrency < 1 {
		return errors.New("matching.concurrency must be positive")
	}
	if c.Matching.Concurrency > 32 {
		return errors.New("matching.concurrency must be at most 32")
	}
	return nil
}

func (c *Config) validateHTTP() error {
	if err := ensurePositiveMap(map[string]int{
		"http.timeout_seconds": c.HTTP.TimeoutSeconds,
		"http.retry_attempts":  c.HTTP.RetryAttempts,
		"http.retry_delay_ms":  c.HTTP.RetryDelayMS,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("logging.color: unsupported value %q", c.Logging.Color)
	}
	if err := ensureNonNegativeMap(map[string]int{
		"logging.max_size_mb":  c.Logging.MaxSizeMB,
		"logging.max_backups":  c.Logging.MaxBackups,
		"logging.max_age_days": c.Logging.MaxAgeDays,
	}); err != nil {
		return err
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

func ensureNonNegativeMap(values map[string]int) error {
	for key, value := range values {
		if value < 0 {
			return fmt.Errorf("%s must be zero or positive", key)
		}
	}
	return nil
}
