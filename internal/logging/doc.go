// Package logging assembles the structured slog loggers used across
// moviescores.
//
// The interactive session owns the terminal, so loggers normally write to a
// rotating file managed by lumberjack. The package also provides attribute
// helpers, component loggers and a no-op logger for tests and wiring code that
// cannot fail.
package logging
