// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// It serves two roles. It reports the diagnostics of the namedlogs packages
// and commands, and through [Logger.Sink] it is the stock output backend for
// calls forwarded by namespace handles.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("factory ready", slog.Int("loggers", 2))
//
// # Configuration
//
// Options are applied at creation time, or later with [Logger.Wrap]:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions use a default logger writing to standard
// error, reconfigured with [Config].
//
// # Levels
//
// Six levels are defined, from most to least verbose: [LevelTrace],
// [LevelDebug], [LevelLog], [LevelInfo], [LevelWarn] and [LevelError].
//
// # Sinks
//
// A [Sink] accepts the free-form arguments of forwarded calls. A leading
// string is used as the message and the remaining arguments become
// attributes:
//
//	ctx = logs.WithSink(ctx, log.Make(os.Stderr).Sink(ctx))
//
// # Output Formats
//
// Two output formats are supported: [FormatText] (default) and
// [FormatJSON]. With [WithPretty], either is colorized when the output is a
// terminal.
package log
