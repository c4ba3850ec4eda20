package cmd

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/ardnew/namedlogs/log"
	"github.com/ardnew/namedlogs/logs"
	"github.com/ardnew/namedlogs/metrics"
)

// Emit forwards a message through the handle of each namespace, printing the
// records that the active pattern lets through.
type Emit struct {
	Message    string   `arg:"" help:"Message to forward"`
	Namespaces []string `arg:"" help:"Namespaces to forward through, in addition to sources and known namespaces" name:"namespace" optional:""`

	At      string `default:"info" enum:"error,warn,info,log,debug,trace" help:"Level of the forwarded call (${enum})" short:"a"`
	Metrics bool   `help:"Print dispatch counters in Prometheus text format" short:"m"`
}

// Run executes the emit command.
func (e *Emit) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := sourceNamespaces(ctx)
	if err != nil {
		return ErrReadSource.Wrap(err)
	}

	cfg := configFrom(ctx)
	names := cfg.NamespaceList(slices.Concat(e.Namespaces, sources)...)

	registry := prometheus.NewRegistry()

	hook, err := metrics.New(registry)
	if err != nil {
		return ErrEmit.Wrap(err)
	}

	f := logs.New(logs.WithLogger(log.Default()), logs.WithHooks(hook))
	if err := cfg.Apply(f); err != nil {
		return ErrApplyConfig.Wrap(err)
	}

	out := outputFrom(ctx)

	// Records are gated by the namespace handles only.
	sink := log.Default().Wrap(log.WithOutput(out), log.WithLevel(log.LevelTrace))
	ctx = logs.WithSink(ctx, sink.Sink(ctx))

	level, _ := logs.ParseLevel(e.At)
	for _, name := range names {
		forward(ctx, f.Get(name), level, e.Message, slog.String("namespace", name))
	}

	log.DebugContext(ctx, "emit",
		slog.Int("namespaces", len(names)),
		slog.String("level", level.String()),
	)

	if !e.Metrics {
		return nil
	}

	return writeMetrics(out, registry)
}

// forward calls the method of h for level.
func forward(ctx context.Context, h logs.Handle, level logs.Level, data ...any) {
	switch level {
	case logs.LevelError:
		h.ErrorContext(ctx, data...)
	case logs.LevelWarn:
		h.WarnContext(ctx, data...)
	case logs.LevelInfo:
		h.InfoContext(ctx, data...)
	case logs.LevelLog:
		h.LogContext(ctx, data...)
	case logs.LevelDebug:
		h.DebugContext(ctx, data...)
	default:
		h.TraceContext(ctx, data...)
	}
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return ErrEmit.Wrap(err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return ErrEmit.Wrap(err)
		}
	}

	return nil
}
