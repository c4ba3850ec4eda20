package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/ardnew/namedlogs/cli/cmd/explore"
	"github.com/ardnew/namedlogs/log"
	"github.com/ardnew/namedlogs/logs"
	"github.com/ardnew/namedlogs/pkg"
)

// Explore edits the pattern interactively, showing which namespaces it
// enables.
type Explore struct {
	Namespaces []string `arg:"" help:"Namespaces to show, in addition to sources and known namespaces" name:"namespace" optional:""`

	NoHistory bool `help:"Do not load or save the pattern history"`
}

// Run executes the explore command. The last committed pattern is printed
// as a shell assignment on exit.
func (e *Explore) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := sourceNamespaces(ctx)
	if err != nil {
		return ErrReadSource.Wrap(err)
	}

	cfg := configFrom(ctx)
	names := cfg.NamespaceList(slices.Concat(e.Namespaces, sources)...)

	history := explore.NewHistory("")
	if !e.NoHistory {
		history = explore.NewHistory(e.historyPath(ctx))
		if err := history.Load(); err != nil {
			log.WarnContext(ctx, "load history", slog.Any("error", err))
		}
	}

	spec, err := explore.Run(ctx, cfg.Namespaces, names, history, log.Default())
	if err != nil {
		return ErrExplore.Wrap(err)
	}

	if spec == "" {
		return nil
	}

	_, err = fmt.Fprintf(outputFrom(ctx), "%s=%s\n", logs.EnvNamespaces, shellQuote(spec))

	return err
}

func (e *Explore) historyPath(ctx context.Context) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok && dir != "" {
			return filepath.Join(dir, pkg.HistoryFile)
		}
	}

	return pkg.CachePath(pkg.HistoryFile)
}
