package config

const (
	defaultTMDBLanguage       = "en-US"
	defaultTMDBBaseURL        = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL   = "https://image.tmdb.org/t/p"
	defaultTMDBPosterSize     = "w342"
	defaultScheduleBaseURL    = "https://www.finnkino.fi/xml"
	defaultShowtimesPath      = "/Schedule/"
	defaultAreasPath          = "/TheatreAreas/"
	defaultScheduleTimezone   = "Europe/Helsinki"
	defaultMatchConcurrency   = 4
	defaultHTTPTimeoutSeconds = 10
	defaultHTTPRetryAttempts  = 3
	defaultHTTPRetryDelayMS   = 200
	defaultUserAgent          = "kinomatch/dev"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogColor           = "auto"
	defaultLogMaxSizeMB       = 20
	defaultLogMaxBackups      = 5
	defaultLogMaxAgeDays      = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		TMDB: TMDB{
			BaseURL:      defaultTMDBBaseURL,
			Language:     defaultTMDBLanguage,
			ImageBaseURL: defaultTMDBImageBaseURL,
			PosterSize:   defaultTMDBPosterSize,
		},
		Schedule: Schedule{
			BaseURL:       defaultScheduleBaseURL,
			ShowtimesPath: defaultShowtimesPath,
			AreasPath:     defaultAreasPath,
			Timezone:      defaultScheduleTimezone,
		},
		Matching: Matching{
			Concurrency:    defaultMatchConcurrency,
			SearchFallback: true,
		},
		HTTP: HTTP{
			TimeoutSeconds: defaultHTTPTimeoutSeconds,
			RetryAttempts:  defaultHTTPRetryAttempts,
			RetryDelayMS:   defaultHTTPRetryDelayMS,
			UserAgent:      defaultUserAgent,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			Color:      defaultLogColor,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}
