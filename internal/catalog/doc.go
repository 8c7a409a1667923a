// Package catalog models movie catalog candidates and fetches structured
// showtime matches.
//
// Candidate decoding tolerates the camelCase and snake_case spellings emitted
// by different catalog backends, and genres given either as names or as
// {id, name} objects. MatchClient queries the match service for the catalog
// entries linked to a schedule event; the tmdb subpackage covers free-text
// title search.
package catalog
