// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the application so
// that log lines from the orchestrator, the tool layer, and the calendar
// gateway can be correlated consistently.
package logging
