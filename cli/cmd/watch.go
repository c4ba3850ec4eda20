package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ardnew/namedlogs/config"
	"github.com/ardnew/namedlogs/log"
	"github.com/ardnew/namedlogs/logs"
)

// Watch re-evaluates namespaces each time a configuration file changes.
type Watch struct {
	File    string   `arg:"" default:"${config}" help:"Configuration file to watch" name:"file" optional:"" type:"path"`
	Include []string `help:"Additional namespaces to evaluate" short:"i"`
}

// Run executes the watch command. It returns when ctx is done.
func (w *Watch) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	out := outputFrom(ctx)

	cfg, err := config.LoadFile(w.File)
	if err != nil {
		return ErrWatchConfig.With(slog.String("file", w.File)).Wrap(err)
	}

	if err := w.render(out, cfg); err != nil {
		return ErrApplyConfig.With(slog.String("file", w.File)).Wrap(err)
	}

	err = config.Watch(ctx, w.File, func(cfg config.Config, err error) {
		if err == nil {
			err = w.render(out, cfg)
		}

		if err != nil {
			log.WarnContext(ctx, "reload failed",
				slog.String("file", w.File),
				slog.Any("error", err),
			)
		}
	})
	if err != nil {
		return ErrWatchConfig.With(slog.String("file", w.File)).Wrap(err)
	}

	return nil
}

// render applies cfg to a new factory and writes the resulting table.
func (w *Watch) render(out io.Writer, cfg config.Config) error {
	f := logs.New(logs.WithLogger(log.Default()))
	if err := cfg.Apply(f); err != nil {
		return err
	}

	results := Evaluate(f, cfg.NamespaceList(w.Include...))

	_, err := fmt.Fprintf(out, "# %s %s (level %s)\n%s\n",
		time.Now().Format(time.TimeOnly), w.File, f.Level(),
		RenderTable(out, results))

	return err
}
