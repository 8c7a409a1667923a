package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey       string `toml:"api_key"`
	BearerToken  string `toml:"bearer_token"`
	BaseURL      string `toml:"base_url"`
	Language     string `toml:"language"`
	ImageBaseURL string `toml:"image_base_url"`
	PosterSize   string `toml:"poster_size"`
}

// Schedule contains configuration for the theatre schedule source.
type Schedule struct {
	BaseURL       string `toml:"base_url"`
	ShowtimesPath string `toml:"showtimes_path"`
	AreasPath     string `toml:"areas_path"`
	AreaID        string `toml:"area_id"`
	Timezone      string `toml:"timezone"`
}

// MatchService contains configuration for the structured showtime match service.
type MatchService struct {
	BaseURL string `toml:"base_url"`
}

// Matching contains configuration for catalog matching sessions.
type Matching struct {
	Concurrency    int  `toml:"concurrency"`
	SearchFallback bool `toml:"search_fallback"`
}

// HTTP contains shared outbound HTTP settings.
type HTTP struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	RetryAttempts  int    `toml:"retry_attempts"`
	RetryDelayMS   int    `toml:"retry_delay_ms"`
	UserAgent      string `toml:"user_agent"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format     string `toml:"format"`
	Level      string `toml:"level"`
	Color      string `toml:"color"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// Config encapsulates all configuration values for kinomatch.
//
// Configuration sections by subsystem:
//   - TMDB: title search against The Movie Database
//   - Schedule: theatre schedule source and its timezone
//   - MatchService: structured lookup of catalog matches by event ID
//   - Matching: session concurrency and search fallback
//   - HTTP: timeouts and retry policy for every outbound client
//   - Logging: log format, level, and rotated file output
type Config struct {
	TMDB         TMDB         `toml:"tmdb"`
	Schedule     Schedule     `toml:"schedule"`
	MatchService MatchService `toml:"match_service"`
	Matching     Matching     `toml:"matching"`
	HTTP         HTTP         `toml:"http"`
	Logging      Logging      `toml:"logging"`

	env envSource
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/kinomatch/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error; defaults and environment values are used instead.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	env, err := loadEnv(filepath.Dir(resolvedPath), ".")
	if err != nil {
		return nil, "", false, err
	}
	cfg.env = env

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("kinomatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Location returns the timezone used to interpret schedule times that carry
// no offset.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Schedule.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("schedule.timezone: %w", err)
	}
	return loc, nil
}

// HTTPTimeout returns the per-request timeout for outbound clients.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// RetryDelay returns the base delay between retried requests.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.HTTP.RetryDelayMS) * time.Millisecond
}

// HasTMDBCredentials reports whether a TMDB API key or bearer token is configured.
func (c *Config) HasTMDBCredentials() bool {
	return strings.TrimSpace(c.TMDB.APIKey) != "" || strings.TrimSpace(c.TMDB.BearerToken) != ""
}

// RequireCatalog ensures at least one catalog source is configured for matching.
func (c *Config) RequireCatalog() error {
	if strings.TrimSpace(c.MatchService.BaseURL) != "" {
		return nil
	}
	if c.Matching.SearchFallback && c.HasTMDBCredentials() {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/kinomatch/config.toml"
	}
	return fmt.Errorf("matching needs match_service.base_url or TMDB credentials with matching.search_fallback enabled. Set TMDB_API_KEY or edit %s (create with 'kinomatch config init')", defaultPath)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
