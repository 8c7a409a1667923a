// Package matching links normalized showtimes to catalog entries.
//
// The rules are pure: TitleKeys folds a showtime's or candidate's titles into
// comparison keys, Compare classifies a candidate as an exact, partial, or
// non-match and applies the production-year tolerance, and Resolve walks the
// structured lookup response and the free-text search fallback to pick the
// first accepted candidate.
//
// Session owns the per-selection result cache. Lookups are single-flight per
// showtime ID, tagged with the selection generation at dispatch, and their
// results are discarded when the selection has moved on. Success results
// survive a selection change for keys that remain selected; empty and error
// results are retried on the next request.
package matching
