// Package services defines shared utilities consumed by the catalog,
// schedule, and matching packages.
//
// Key responsibilities:
//   - Context helpers that stamp session and correlation identifiers for
//     logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     as transient (retryable) or terminal.
//   - The httpx subpackage, a retrying HTTP fetcher shared by every external
//     source client.
//
// Use these helpers when wiring new integrations so error classification and
// observability stay uniform across sources.
package services
