package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/hashicorp/go-multierror"

	"github.com/ardnew/namedlogs/config"
	"github.com/ardnew/namedlogs/logs"
	"github.com/ardnew/namedlogs/namespace"
	"github.com/ardnew/namedlogs/pkg"
)

type (
	contextKey     struct{}
	factoryKey     struct{}
	configKey      struct{}
	outputKey      struct{}
	sourceFilesKey struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithFactory returns a new context.Context containing the factory that
// commands evaluate namespaces against.
func WithFactory(ctx context.Context, f *logs.Factory) context.Context {
	return context.WithValue(ctx, factoryKey{}, f)
}

// factoryFrom returns the factory stored by WithFactory, or the package
// default factory.
func factoryFrom(ctx context.Context) *logs.Factory {
	if f, ok := ctx.Value(factoryKey{}).(*logs.Factory); ok && f != nil {
		return f
	}

	return logs.Default()
}

// WithConfig returns a new context.Context containing the effective
// configuration: the configuration file overlaid with flag values.
func WithConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) config.Config {
	cfg, _ := ctx.Value(configKey{}).(config.Config)

	return cfg
}

// WithOutput returns a new context.Context directing command output to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

// outputFrom returns the writer stored by WithOutput, or os.Stdout.
func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// SourceFiles reads the namespace source files in order. Close closes the
// opened files but never stdin.
type SourceFiles interface {
	io.ReadCloser
	IsZero() bool
	HasStdin() bool
}

type sourceFiles struct {
	io.Reader

	files    []*os.File
	count    int
	hasStdin bool
}

// Close closes every opened source file.
func (s *sourceFiles) Close() error {
	var result *multierror.Error

	for _, file := range s.files {
		if err := file.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	s.files = nil

	return result.ErrorOrNil()
}

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return s.count == 0 && !s.hasStdin }

// HasStdin reports whether stdin is one of the sources.
func (s *sourceFiles) HasStdin() bool { return s.hasStdin }

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context containing an [io.Reader] that
// reads from the given source files.
//
// Readers are deduplicated by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single stdin reader,
// placed last so it reads after all regular files.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, buildSourceFiles(sources))
}

func buildSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	readers := make([]io.Reader, 0, len(sources)+1)
	seen := make(map[fileKey]struct{})

	stdinKey := fileKey{}
	if info, err := os.Stdin.Stat(); err == nil {
		stdinKey, _ = makeFileKey(info)
	}

	for _, src := range sources {
		if src == stdinSource {
			srcs.hasStdin = true

			continue
		}

		file, key, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		// Stdin named by its device path is read once, last.
		if key == stdinKey && stdinKey != (fileKey{}) {
			_ = file.Close()
			srcs.hasStdin = true

			continue
		}

		srcs.files = append(srcs.files, file)
		readers = append(readers, file)
	}

	srcs.count = len(readers)

	if srcs.hasStdin {
		readers = append(readers, os.Stdin)
	}

	if len(readers) == 0 {
		return nil
	}

	srcs.Reader = io.MultiReader(readers...)

	return &srcs
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
func openUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (*os.File, fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fileKey{}, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, fileKey{}, false
	}

	if _, exists := seen[key]; exists {
		return nil, key, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, key, false
	}

	return file, key, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// sourceFilesFrom retrieves the reader stored in ctx by WithSourceFiles.
// Returns nil if no reader was stored.
func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}

// sourceNamespaces reads the namespace names listed in the source files.
// Names are separated by whitespace or commas.
func sourceNamespaces(ctx context.Context) ([]string, error) {
	src := sourceFilesFrom(ctx)
	if src == nil || src.IsZero() {
		return nil, nil
	}

	data, err := io.ReadAll(src)
	if cerr := src.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return nil, pkg.ErrReadSource.Wrap(err)
	}

	var names []string
	for tok := range namespace.Tokens(string(data)) {
		names = append(names, tok)
	}

	return names, nil
}
