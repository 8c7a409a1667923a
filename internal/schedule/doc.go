// Package schedule turns theatre schedule payloads into canonical showtimes.
//
// Payloads arrive as JSON or Finnkino-style XML and are decoded into a generic
// tree (maps, slices, scalars). ExtractShowArray locates the list of show
// records inside that tree, however deeply it is wrapped, and Normalize maps
// each record onto Showtime through the ordered alias tables in aliases.go.
// Records missing a title or a parseable start time are dropped silently;
// normalization never fails.
//
// Client fetches schedules and theatre areas over HTTP and runs them through
// the same pipeline.
package schedule
