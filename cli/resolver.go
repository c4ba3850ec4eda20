package cli

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/namedlogs/log"
)

// resolve is a [kong.ConfigurationLoader] that reads flag values from the
// YAML configuration file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The document is converted as follows:
//   - Top-level keys name flags, with hyphens or underscores
//     (log_level and log-level both set --log-level)
//   - Nested mappings are flattened by joining keys with underscores, so
//     {log: {level: debug}} also sets --log-level
//   - Numbers are passed to Kong as strings
//   - Sequences set repeated or slice flags
//
// A file that cannot be parsed is ignored with a warning. Command-line flags
// override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Warn("ignoring invalid configuration file", slog.Any("error", err))

		return yamlResolver{}, nil
	}

	cfg := make(yamlResolver)
	flatten(cfg, "", doc)

	return cfg, nil
}

// yamlResolver implements [kong.Resolver] for YAML configuration files.
type yamlResolver map[string]any

// Validate implements [kong.Resolver].
func (r yamlResolver) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r yamlResolver) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil //nolint:nilnil
}

// flatten stores the leaves of doc in cfg, keyed by their path joined with
// underscores.
func flatten(cfg yamlResolver, prefix string, doc map[string]any) {
	for key, value := range doc {
		if prefix != "" {
			key = prefix + "_" + key
		}

		if nested, ok := value.(map[string]any); ok {
			flatten(cfg, key, nested)

			continue
		}

		cfg[key] = native(value)
	}
}

// native converts a decoded YAML value to the form Kong parses.
func native(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = native(item)
		}

		return items
	}

	return value
}
