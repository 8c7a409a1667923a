package testsupport

import (
	"path/filepath"
	"testing"

	"kinomatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp directory per test.
// Catalog credentials are set so matching commands pass RequireCatalog.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.TMDB.APIKey = "test"
	cfgVal.Schedule.Timezone = "UTC"
	cfgVal.HTTP.RetryDelayMS = 1
	cfgVal.Logging.Color = "never"
	cfgVal.Logging.File = filepath.Join(base, "logs", "kinomatch.log")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithTMDB points the TMDB client at baseURL using the given key.
func WithTMDB(baseURL, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.BaseURL = baseURL
		b.cfg.TMDB.APIKey = key
	}
}

// WithMatchService sets the match service base URL.
func WithMatchService(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.MatchService.BaseURL = baseURL
	}
}

// WithSchedule points the schedule client at baseURL and sets the default area.
func WithSchedule(baseURL, areaID string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Schedule.BaseURL = baseURL
		b.cfg.Schedule.AreaID = areaID
	}
}

// WithoutSearchFallback disables the TMDB title search fallback.
func WithoutSearchFallback() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.SearchFallback = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Logging.File))
}
