// Package logging assembles structured slog loggers and formatting helpers used
// across kinomatch.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing (including rotated log files), and exposes context-aware helpers so
// matching code can tag log lines with session and correlation IDs. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
