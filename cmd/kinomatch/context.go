package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"kinomatch/internal/catalog"
	"kinomatch/internal/catalog/tmdb"
	"kinomatch/internal/config"
	"kinomatch/internal/logging"
	"kinomatch/internal/matching"
	"kinomatch/internal/schedule"
	"kinomatch/internal/services/httpx"
)

const (
	lookupCacheTTL = 10 * time.Minute
	searchCacheTTL = 10 * time.Minute
	searchSpacing  = 250 * time.Millisecond
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
				cfg.Logging.Level = strings.ToLower(level)
				if err := cfg.Validate(); err != nil {
					c.configErr = fmt.Errorf("--log-level: %w", err)
					return
				}
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) httpClient(cfg *config.Config, logger *slog.Logger) *httpx.Client {
	attempts := uint(1)
	if cfg.HTTP.RetryAttempts > 0 {
		attempts = uint(cfg.HTTP.RetryAttempts)
	}
	return httpx.New(
		httpx.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout()}),
		httpx.WithRetry(attempts, cfg.RetryDelay()),
		httpx.WithUserAgent(cfg.HTTP.UserAgent),
		httpx.WithLogger(logger),
	)
}

func (c *commandContext) scheduleClient(cfg *config.Config, logger *slog.Logger) (*schedule.Client, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return schedule.NewClient(cfg.Schedule.BaseURL,
		schedule.WithHTTPClient(c.httpClient(cfg, logger)),
		schedule.WithPaths(cfg.Schedule.ShowtimesPath, cfg.Schedule.AreasPath),
		schedule.WithLocation(loc),
		schedule.WithLogger(logger),
	), nil
}

// matchSources builds the structured lookup and the search fallback enabled
// by cfg. Either may be nil, but not both.
func (c *commandContext) matchSources(cfg *config.Config, logger *slog.Logger) (matching.Lookup, matching.Searcher, error) {
	if err := cfg.RequireCatalog(); err != nil {
		return nil, nil, err
	}
	client := c.httpClient(cfg, logger)

	var lookup matching.Lookup
	if base := strings.TrimSpace(cfg.MatchService.BaseURL); base != "" {
		lookup = matching.NewCachedLookup(catalog.NewMatchClient(base,
			catalog.WithMatchHTTPClient(client),
			catalog.WithMatchLogger(logger),
		), lookupCacheTTL)
	}

	var search matching.Searcher
	if cfg.Matching.SearchFallback && cfg.HasTMDBCredentials() {
		tmdbClient, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
			tmdb.WithHTTPClient(client),
			tmdb.WithBearerToken(cfg.TMDB.BearerToken),
			tmdb.WithLogger(logger),
		)
		if err != nil {
			logger.Warn("tmdb client initialization failed",
				logging.Error(err),
				logging.String(logging.FieldEventType, "tmdb_client_init_failed"),
				logging.String(logging.FieldErrorHint, "verify tmdb.api_key or TMDB_API_KEY"),
				logging.String(logging.FieldImpact, "title search fallback disabled"),
			)
		} else {
			search = matching.NewCachedSearcher(tmdbClient, searchCacheTTL, searchSpacing)
		}
	}

	if lookup == nil && search == nil {
		return nil, nil, errors.New("no catalog source available: match service unset and TMDB search could not be initialized")
	}
	return lookup, search, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
