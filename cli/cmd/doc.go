// Package cmd implements the namedlogs subcommands.
//
// Commands read their shared state from the [context.Context] bound by the
// cli package: the parsed [kong.Context], the configured [logs.Factory], the
// effective [config.Config], the namespace source files and the output
// writer.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
