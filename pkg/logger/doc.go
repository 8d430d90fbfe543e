// Package logger builds configured log/slog loggers for the toolkit.
//
// Components in this module accept a *slog.Logger through their options and
// fall back to slog.Default() when none is provided; this package is the
// factory applications use to construct that logger from environment-driven
// configuration.
package logger
