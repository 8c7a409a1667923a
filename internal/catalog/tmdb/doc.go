// Package tmdb provides the minimal TMDB API client used for catalog title
// search.
//
// It authenticates with a v3 API key, a v4 bearer token, or both, and exposes
// movie search with an optional release-year filter plus movie detail
// retrieval. Search adapts results to catalog.Candidate so the matcher can
// treat TMDB like any other catalog source. Options allow tests to supply a
// custom fetch helper without modifying production code.
package tmdb
