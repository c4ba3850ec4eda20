// Package cli contains the command line interface for namedlogs.
//
// # Usage
//
// The active pattern spec comes from --namespaces, the NAMED_LOGS
// environment variable, or the configuration file, in that order of
// precedence. The global level comes from --level or NAMED_LOGS_LEVEL.
//
//	namedlogs [flags] [match] [namespace ...]
//	namedlogs env [--enable=NS,...] [--disable=NS,...] [--export]
//	namedlogs init [--force]
//	namedlogs watch [file]
//	namedlogs explore [namespace ...]
//	namedlogs emit [--at LEVEL] [--metrics] message [namespace ...]
//
// Namespaces are also read from each --source file, or from stdin with
// --source=-, one or more per line separated by commas or whitespace.
//
// # Commands
//
//   - match: report which namespaces the pattern enables, and at what level.
//     The default command. --where filters results with an expression over
//     namespace, enabled, matched, level and severity. --format selects
//     table, json or yaml output.
//   - env: print a spec derived from the active one with namespaces
//     enabled or disabled.
//   - init: write the current flags and configuration to the
//     configuration file.
//   - watch: re-evaluate known namespaces whenever the configuration file
//     changes.
//   - explore: edit the pattern interactively, with history and namespace
//     completion.
//   - emit: forward a message at a level through each namespace handle and
//     print the records the pattern lets through. --metrics appends the
//     dispatch counters in Prometheus text format.
//
// # Configuration File
//
// The configuration file is YAML, read from $XDG_CONFIG_HOME/namedlogs/
// config.yaml. Top-level keys set flags of the same name, with hyphens or
// underscores:
//
//	namespaces: "app:*,-app:noisy"
//	level: info
//	log_format: json
//	levels:
//	  "app:db": trace
//	known:
//	  - "app:http"
//
// The levels and known keys are read by the commands themselves.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, log, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o namedlogs .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/namedlogs/pprof)
//
// # Examples
//
//	# Which of these namespaces does the environment enable?
//	NAMED_LOGS='app:*,-app:noisy' namedlogs app:db app:noisy worker
//
//	# Only enabled namespaces, as JSON
//	namedlogs -s names.txt match -w enabled -o json
//
//	# What would app:db print at debug?
//	namedlogs -n 'app:*' -l debug emit -a debug "hello" app:db
//
//	# Add worker to the active spec
//	eval "$(namedlogs env -x -e worker)"
package cli
