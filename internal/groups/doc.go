// Package groups derives read-only facts for group scheduling views: the
// viewer's membership status, the next scheduled showtime, and per-group
// summaries built from the row shapes the group service returns.
package groups
