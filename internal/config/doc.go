// Package config loads, normalizes, and validates kinomatch configuration data.
//
// It supplies repository defaults, reads TOML files, and honours environment
// fallbacks such as TMDB_API_KEY and TMDB_BEARER_TOKEN, including values kept
// in a .env file beside the config or in the working directory. The Config
// type centralizes the schedule source, catalog services, matching, HTTP, and
// logging knobs so the CLI can build every client from one value.
//
// Always obtain settings through this package so downstream code receives
// trimmed URLs, canonical log formats, and clear validation errors.
package config
