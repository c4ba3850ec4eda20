package logs

import (
	"os"
	"sync/atomic"

	"github.com/ardnew/namedlogs/slot"
)

// Registry holds the factory installed by the host application and hands out
// handles on behalf of code that must not construct one itself.
type Registry struct {
	factory   atomic.Pointer[FactoryFunc]
	slot      *slot.Slot
	lookupEnv func(string) (string, bool)
}

// NewRegistry returns a Registry with no factory installed.
//
// Installed factories are also published to s, and a factory published to s
// by anyone is used when none was installed on the Registry itself. A nil s
// gives the Registry a private slot. The lookupEnv function resolves
// [FallbackOnEnv] variables; nil means [os.LookupEnv].
func NewRegistry(s *slot.Slot, lookupEnv func(string) (string, bool)) *Registry {
	if s == nil {
		s = &slot.Slot{}
	}

	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	return &Registry{slot: s, lookupEnv: lookupEnv}
}

// Install makes fn the factory of r and publishes it to r's slot. The most
// recent call wins. fn is not validated.
//
// The published value is a func(string) any, a type every copy of this
// package spells the same way, so that a copy built from another version
// can discover fn and assert its handles to its own [Handle].
func (r *Registry) Install(fn FactoryFunc) {
	r.factory.Store(&fn)

	if fn == nil {
		r.slot.Publish(nil)

		return
	}

	r.slot.Publish(func(ns string) any { return fn(ns) })
}

// InstallFactory installs the Get method of f.
func (r *Registry) InstallFactory(f *Factory) {
	r.Install(func(ns string) Handle { return f.Get(ns) })
}

// Factory returns the installed factory: the one installed on r if any,
// otherwise the one published to r's slot.
func (r *Registry) Factory() (FactoryFunc, bool) {
	if fn := r.factory.Load(); fn != nil && *fn != nil {
		return *fn, true
	}

	switch fn := r.slot.Load().(type) {
	case func(string) any:
		if fn != nil {
			return adopt(fn), true
		}
	case FactoryFunc:
		if fn != nil {
			return fn, true
		}
	case func(string) Handle:
		if fn != nil {
			return fn, true
		}
	}

	return nil, false
}

// adopt converts a factory published by any copy of this package. Handles
// that do not implement this copy's [Handle] are replaced with [Noop].
func adopt(fn func(string) any) FactoryFunc {
	return func(ns string) Handle {
		if h, ok := fn(ns).(Handle); ok {
			return h
		}

		return Noop
	}
}

// LogsOption controls what [Registry.Logs] returns while no factory is
// installed.
type LogsOption func(*fallback)

type fallback struct {
	env   string
	proxy bool
}

// FallbackOnProxy selects a deferred handle (enable) or a no-op handle.
func FallbackOnProxy(enable bool) LogsOption {
	return func(fb *fallback) {
		fb.proxy, fb.env = enable, ""
	}
}

// FallbackOnEnv selects a deferred handle only if the environment variable
// name is set to a non-empty value when the handle is requested, and a
// no-op handle otherwise.
func FallbackOnEnv(name string) LogsOption {
	return func(fb *fallback) {
		fb.proxy, fb.env = false, name
	}
}

// Logs returns the handle for ns from the installed factory.
//
// If no factory is installed, it returns [Noop] unless opts request a
// deferred handle. A deferred handle does nothing until a factory is
// installed; on its first use afterwards it obtains the real handle for ns
// and delegates to it from then on.
func (r *Registry) Logs(ns string, opts ...LogsOption) Handle {
	if fn, ok := r.Factory(); ok {
		return fn(ns)
	}

	var fb fallback
	for _, opt := range opts {
		opt(&fb)
	}

	switch {
	case fb.proxy:
		return &deferred{namespace: ns, registry: r}

	case fb.env != "":
		if val, ok := r.lookupEnv(fb.env); ok && val != "" {
			return &deferred{namespace: ns, registry: r}
		}

		return Noop

	default:
		return Noop
	}
}
