package config

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/namedlogs/log"
	"github.com/ardnew/namedlogs/pkg"
)

// Settle is how long Watch waits after the last change event before
// reloading, so that a burst of events from one save triggers one reload.
//
//nolint:gochecknoglobals
var Settle = 100 * time.Millisecond

// Watch calls fn with the result of [LoadFile] each time the file at path
// changes, until ctx is done. fn is not called for the initial contents.
//
// Writes, creates, renames and removals all trigger a reload; after a rename
// or removal the watch is re-established, so editors that save by replacing
// the file are followed. A removal that is not followed by a replacement is
// reported to fn as an error wrapping [fs.ErrNotExist].
//
// Watch returns nil when ctx is done, or an [pkg.ErrWatchConfig] error if
// the watch cannot be established.
func Watch(ctx context.Context, path string, fn func(Config, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return pkg.ErrWatchConfig.Wrap(err)
	}

	defer func() {
		if err := watcher.Close(); err != nil {
			log.WarnContext(ctx, "close config watcher", slog.Any("error", err))
		}
	}()

	if err := watcher.Add(path); err != nil {
		return pkg.ErrWatchConfig.Wrapf("%s: %w", path, err)
	}

	log.DebugContext(ctx, "watching config", slog.String("path", path))

	settle := time.NewTimer(Settle)
	settle.Stop()

	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}

			log.TraceContext(ctx, "config event",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()),
			)

			settle.Reset(Settle)

		case <-settle.C:
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				fn(Config{}, pkg.ErrReadConfig.Wrap(err))

				continue
			}

			// Re-adding an existing watch is a no-op; after a replacing save
			// it follows the new file.
			if err := watcher.Add(path); err != nil {
				log.WarnContext(ctx, "re-add config watch",
					slog.String("path", path),
					slog.Any("error", err),
				)
			}

			fn(LoadFile(path))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.WarnContext(ctx, "config watcher", slog.Any("error", err))
		}
	}
}
