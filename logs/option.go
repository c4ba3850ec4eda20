package logs

import "github.com/ardnew/namedlogs/log"

// Option applies a configuration option to a [Factory] under construction.
type Option func(options) options

type options struct {
	logger  log.Logger
	onError func(error)
	pattern *string
	hooks   []Hook
	level   Level
}

// apply applies multiple options to an options value.
func apply(o options, opts ...Option) options {
	for _, opt := range opts {
		o = opt(o)
	}

	return o
}

// WithLevel sets the initial global level. The default is [DefaultLevel].
func WithLevel(level Level) Option {
	return func(o options) options {
		o.level = level

		return o
	}
}

// WithPattern enables namespaces matching spec at construction, as if by
// [Factory.Enable]. Without it, every namespace starts disabled.
func WithPattern(spec string) Option {
	return func(o options) options {
		o.pattern = &spec

		return o
	}
}

// WithHooks appends hooks fired after every forwarded call.
func WithHooks(hooks ...Hook) Option {
	return func(o options) options {
		o.hooks = append(o.hooks[:len(o.hooks):len(o.hooks)], hooks...)

		return o
	}
}

// WithErrorHandler sets the function receiving hook failures. By default
// they are reported on the factory's diagnostics logger.
func WithErrorHandler(fn func(error)) Option {
	return func(o options) options {
		o.onError = fn

		return o
	}
}

// WithLogger sets the logger receiving the factory's own diagnostics. The
// zero [log.Logger], which is the default, discards them.
func WithLogger(logger log.Logger) Option {
	return func(o options) options {
		o.logger = logger

		return o
	}
}
