// Package config reads and writes the namedlogs configuration file and
// applies it to a [logs.Factory].
//
// The file is YAML. Besides the fields of [Config], it may hold the value of
// any command-line flag keyed by the flag's name, with hyphens or
// underscores:
//
//	namespaces: "app:*,-app:noisy"
//	level: info
//	levels:
//	  "app:db": trace
//	known: [app:db, app:http, app:noisy]
//	log_format: json
package config

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/namedlogs/logs"
	"github.com/ardnew/namedlogs/pkg"
)

// FileMode is the permission mode of written configuration files.
const FileMode fs.FileMode = 0o600

// Config is the namespace configuration of a process.
type Config struct {
	// Namespaces is the pattern spec enabling namespaces, in the syntax of
	// the NAMED_LOGS environment variable. Empty disables every namespace.
	Namespaces string `yaml:"namespaces,omitempty"`
	// Level is the global level, by name or number. Empty keeps the
	// factory's current level.
	Level string `yaml:"level,omitempty"`
	// Levels overrides the level of individual namespace handles.
	Levels map[string]string `yaml:"levels,omitempty"`
	// Known lists namespaces of interest that may not have a handle yet.
	Known []string `yaml:"known,omitempty"`
}

// Load decodes a Config from r. Empty input yields the zero Config. Keys
// that are not fields of Config are ignored.
func Load(r io.Reader) (Config, error) {
	var c Config

	data, err := io.ReadAll(r)
	if err != nil {
		return c, pkg.ErrReadConfig.Wrap(err)
	}

	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, pkg.ErrParseConfig.Wrap(err)
	}

	return c, c.Validate()
}

// LoadFile decodes the Config stored at path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, pkg.ErrReadConfig.Wrap(err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return c, pkg.MakeError(err).Wrapf("%s", path)
	}

	return c, nil
}

// Validate reports an [pkg.ErrInvalidLevel] error for every level that does
// not resolve.
func (c Config) Validate() error {
	var errs []error

	if c.Level != "" {
		if _, ok := logs.ParseLevel(c.Level); !ok {
			errs = append(errs, pkg.ErrInvalidLevel.Wrapf("level %q", c.Level))
		}
	}

	for _, ns := range slices.Sorted(maps.Keys(c.Levels)) {
		if _, ok := logs.ParseLevel(c.Levels[ns]); !ok {
			errs = append(errs,
				pkg.ErrInvalidLevel.Wrapf("levels[%s] %q", ns, c.Levels[ns]))
		}
	}

	return errors.Join(errs...)
}

// Apply configures f: the pattern spec and global level first, as if read
// from the environment, then the per-namespace level overrides.
func (c Config) Apply(f *logs.Factory) error {
	if err := c.Validate(); err != nil {
		return err
	}

	f.Configure(c.Namespaces, c.Level)

	for ns, s := range c.Levels {
		level, _ := logs.ParseLevel(s)
		f.Get(ns).SetLevel(level)
	}

	return nil
}

// NamespaceList returns the sorted, de-duplicated union of Known, the keys of
// Levels, and extra.
func (c Config) NamespaceList(extra ...string) []string {
	names := slices.Concat(c.Known, slices.Collect(maps.Keys(c.Levels)), extra)
	names = slices.DeleteFunc(names, func(s string) bool {
		return strings.TrimSpace(s) == ""
	})

	slices.Sort(names)

	return slices.Compact(names)
}

// Marshal encodes c as YAML.
func (c Config) Marshal(ctx context.Context) ([]byte, error) {
	return marshal(ctx, c)
}

// Document returns the file contents of c merged with flag values keyed by
// flag name. Hyphens in flag names become underscores, and the fields of c
// take precedence over flags of the same name.
func (c Config) Document(flags map[string]any) map[string]any {
	doc := make(map[string]any, len(flags)+4)

	for name, value := range flags {
		doc[strings.ReplaceAll(name, "-", "_")] = value
	}

	if c.Namespaces != "" {
		doc["namespaces"] = c.Namespaces
	}

	if c.Level != "" {
		doc["level"] = c.Level
	}

	if len(c.Levels) > 0 {
		doc["levels"] = c.Levels
	}

	if len(c.Known) > 0 {
		doc["known"] = c.Known
	}

	return doc
}

// WriteFile writes c to path, creating its directory. An existing file is
// replaced only if force is set.
func (c Config) WriteFile(ctx context.Context, path string, force bool) error {
	return Write(ctx, path, c, force)
}

// Write encodes v as YAML to path, creating its directory. An existing file
// is replaced only if force is set.
func Write(ctx context.Context, path string, v any, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return pkg.ErrConfigExists.Wrapf("%s", path)
		}
	}

	data, err := marshal(ctx, v)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), pkg.DirMode); err != nil {
		return pkg.ErrWriteConfig.Wrap(err)
	}

	if err := os.WriteFile(path, data, FileMode); err != nil {
		return pkg.ErrWriteConfig.Wrap(err)
	}

	return nil
}

func marshal(ctx context.Context, v any) ([]byte, error) {
	data, err := yaml.MarshalContext(ctx, v, yaml.Indent(2))
	if err != nil {
		return nil, pkg.ErrMarshal.Wrap(err)
	}

	return data, nil
}
