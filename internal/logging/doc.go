// Package logging constructs the slog loggers used across stylus.
//
// Two output formats exist: a compact console format for interactive use
// and JSON for log collection. Attr helpers re-export the slog constructors
// so call sites stay terse, and NewComponentLogger standardizes the
// component attribute every subsystem logs under.
package logging
