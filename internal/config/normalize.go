package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTMDB()
	c.normalizeSchedule()
	c.MatchService.BaseURL = strings.TrimRight(strings.TrimSpace(c.MatchService.BaseURL), "/")
	if c.Matching.Concurrency == 0 {
		c.Matching.Concurrency = defaultMatchConcurrency
	}
	c.normalizeHTTP()
	return c.normalizeLogging()
}

func (c *Config) normalizeTMDB() {
	if c.TMDB.APIKey == "" {
		if value, ok := c.env.lookup("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = value
		}
	}
	if c.TMDB.BearerToken == "" {
		if value, ok := c.env.lookup("TMDB_BEARER_TOKEN"); ok {
			c.TMDB.BearerToken = value
		}
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BearerToken = strings.TrimSpace(c.TMDB.BearerToken)
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.ImageBaseURL), "/")
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = defaultTMDBImageBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
	c.TMDB.PosterSize = strings.TrimSpace(c.TMDB.PosterSize)
	if c.TMDB.PosterSize == "" {
		c.TMDB.PosterSize = defaultTMDBPosterSize
	}
}

func (c *Config) normalizeSchedule() {
	c.Schedule.BaseURL = strings.TrimRight(strings.TrimSpace(c.Schedule.BaseURL), "/")
	if c.Schedule.BaseURL == "" {
		c.Schedule.BaseURL = defaultScheduleBaseURL
	}
	c.Schedule.ShowtimesPath = ensureLeadingSlash(c.Schedule.ShowtimesPath, defaultShowtimesPath)
	c.Schedule.AreasPath = ensureLeadingSlash(c.Schedule.AreasPath, defaultAreasPath)
	c.Schedule.AreaID = strings.TrimSpace(c.Schedule.AreaID)
	c.Schedule.Timezone = strings.TrimSpace(c.Schedule.Timezone)
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = defaultScheduleTimezone
	}
}

func (c *Config) normalizeHTTP() {
	if c.HTTP.TimeoutSeconds == 0 {
		c.HTTP.TimeoutSeconds = defaultHTTPTimeoutSeconds
	}
	if c.HTTP.RetryAttempts == 0 {
		c.HTTP.RetryAttempts = defaultHTTPRetryAttempts
	}
	if c.HTTP.RetryDelayMS == 0 {
		c.HTTP.RetryDelayMS = defaultHTTPRetryDelayMS
	}
	c.HTTP.UserAgent = strings.TrimSpace(c.HTTP.UserAgent)
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = defaultUserAgent
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "":
		c.Logging.Format = defaultLogFormat
	case "text":
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Color = strings.ToLower(strings.TrimSpace(c.Logging.Color))
	if c.Logging.Color == "" {
		c.Logging.Color = defaultLogColor
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		file, err := expandPath(strings.TrimSpace(c.Logging.File))
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = file
	}
	return nil
}

func ensureLeadingSlash(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if !strings.HasPrefix(value, "/") {
		return "/" + value
	}
	return value
}
