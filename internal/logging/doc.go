// Package logging builds slog loggers with a compact console handler and a
// JSON handler, fanning output to stderr and an optional session log file.
package logging
