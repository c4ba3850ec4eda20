package logs

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"

	"github.com/ardnew/namedlogs/log"
	"github.com/ardnew/namedlogs/namespace"
)

// Environment variables read by [Factory.LoadEnv].
const (
	EnvNamespaces = "NAMED_LOGS"
	EnvLevel      = "NAMED_LOGS_LEVEL"
)

// Factory mints and owns the [*Logger] of every namespace it is asked for.
//
// A Factory holds the namespace rules, the global level, and the registry of
// handles. Handles are created on first request and live as long as the
// factory. All methods are safe for concurrent use.
type Factory struct {
	mu      sync.RWMutex
	rules   namespace.Rules
	loggers map[string]*Logger

	level   atomic.Int64
	hooks   []Hook
	onError func(error)
	logger  log.Logger
}

// New returns a Factory with every namespace disabled and the global level
// set to [DefaultLevel], modified by opts.
func New(opts ...Option) *Factory {
	o := apply(options{level: DefaultLevel}, opts...)

	f := &Factory{
		loggers: make(map[string]*Logger),
		hooks:   o.hooks,
		onError: o.onError,
		logger:  o.logger,
	}
	f.level.Store(int64(o.level))

	if f.onError == nil {
		f.onError = func(err error) {
			f.logger.Warn("dispatch hook failed", slog.Any("error", err))
		}
	}

	if o.pattern != nil {
		f.Enable(*o.pattern)
	}

	return f
}

// Get returns the handle for ns, creating it on first request.
//
// A new handle starts at the current global level; later changes to the
// global level do not alter it. Its enabled flag is computed from the
// current rules.
func (f *Factory) Get(ns string) *Logger {
	f.mu.RLock()
	l, ok := f.loggers[ns]
	f.mu.RUnlock()

	if ok {
		return l
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if l, ok := f.loggers[ns]; ok {
		return l
	}

	l = &Logger{namespace: ns, factory: f}
	l.level.Store(f.level.Load())
	l.enabled.Store(f.rules.Enabled(ns))
	f.loggers[ns] = l

	f.logger.Trace("logger created",
		slog.String("namespace", ns),
		slog.Bool("enabled", l.enabled.Load()),
		slog.String("level", l.Level().String()),
	)

	return l
}

// Enable replaces the namespace rules with the given pattern specs, joined
// with commas, and recomputes the enabled flag of every existing handle.
//
// With no specs, or only empty ones, every namespace is enabled ("*").
func (f *Factory) Enable(specs ...string) {
	spec := strings.Join(
		slices.DeleteFunc(slices.Clone(specs), func(s string) bool {
			return s == ""
		}),
		",",
	)
	if spec == "" {
		spec = namespace.Wildcard
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.rules = namespace.Compile(spec)

	for ns, l := range f.loggers {
		l.enabled.Store(f.rules.Enabled(ns))
	}

	f.logger.Debug("namespaces enabled",
		slog.String("pattern", spec),
		slog.Int("loggers", len(f.loggers)),
	)
}

// Disable clears the namespace rules and disables every existing handle.
func (f *Factory) Disable() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rules = namespace.Rules{}

	for _, l := range f.loggers {
		l.enabled.Store(false)
	}

	f.logger.Debug("namespaces disabled",
		slog.Int("loggers", len(f.loggers)),
	)
}

// Enabled reports whether ns is enabled by the current rules, whether or
// not a handle exists for it.
func (f *Factory) Enabled(ns string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.rules.Enabled(ns)
}

// Rules returns the current namespace rules.
func (f *Factory) Rules() namespace.Rules {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.rules
}

// Level returns the global level.
func (f *Factory) Level() Level {
	return Level(f.level.Load())
}

// SetLevel sets the global level. It loosens the gate of every handle whose
// own level is lower, without changing those handles' levels.
func (f *Factory) SetLevel(level Level) {
	f.level.Store(int64(level))

	f.logger.Debug("global level set", slog.String("level", level.String()))
}

// Namespaces returns the namespaces of all existing handles, sorted.
func (f *Factory) Namespaces() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.loggers))
	for ns := range f.loggers {
		names = append(names, ns)
	}

	slices.Sort(names)

	return names
}

// Configure applies a pattern spec and a level name the way the environment
// is applied at startup: a non-empty spec enables, an empty one disables
// everything, and a non-empty level that does not resolve keeps the current
// global level.
func (f *Factory) Configure(spec, level string) {
	if spec != "" {
		f.Enable(spec)
	} else {
		f.Disable()
	}

	if level != "" {
		f.SetLevel(ParseLevelOr(level, f.Level()))
	}
}

// LoadEnv configures f from the [EnvNamespaces] and [EnvLevel] variables
// using lookup, typically [os.LookupEnv].
func (f *Factory) LoadEnv(lookup func(string) (string, bool)) {
	spec, _ := lookup(EnvNamespaces)
	level, _ := lookup(EnvLevel)

	f.Configure(spec, level)
}

// fire runs every hook for a forwarded call. Failures are combined and
// passed to the error handler.
func (f *Factory) fire(ns string, level Level) {
	if len(f.hooks) == 0 {
		return
	}

	var merr *multierror.Error

	for _, hook := range f.hooks {
		if err := hook.Fire(ns, level); err != nil {
			merr = multierror.Append(
				merr,
				fmt.Errorf("%s %s: %w", ns, level, err),
			)
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		f.onError(err)
	}
}
