// Package logs is a namespace-scoped logging facade.
//
// Call sites obtain a named [Handle] without depending on any output
// backend. The host application decides later which namespaces are enabled,
// how verbose they are, and where their output goes.
//
// # Handles
//
// A [Factory] memoizes one [*Logger] per namespace:
//
//	f := logs.New()
//	db := f.Get("app:db")
//	db.Info("connected", "host", host)
//
// Every call is gated: the handle must be enabled by the factory's namespace
// pattern, and either the handle's own level or the factory's global level
// must admit the call's severity. Gating is recomputed on each call, so
// changes to the pattern or levels apply to handles already held.
//
// # Patterns
//
// Namespaces are enabled with [Factory.Enable] using the syntax of package
// [github.com/ardnew/namedlogs/namespace]:
//
//	f.Enable("app:*,-app:db")
//
// The package-level default factory is configured at startup from the
// NAMED_LOGS and NAMED_LOGS_LEVEL environment variables.
//
// # Sinks
//
// Output is delegated to a [Sink] bound to a [context.Context]. Calls made
// with a context that carries no sink do nothing:
//
//	err := logs.Do(ctx, backend, func(ctx context.Context) error {
//		db.InfoContext(ctx, "forwarded to backend")
//		return work(ctx)
//	})
//
// Context-unaware methods (Info, Warn, ...) use [DefaultContextProvider].
//
// # Hooking
//
// Libraries that must not construct a factory themselves call [Logs]. Once
// the host installs a factory with [Install] or [InstallDefault], Logs
// delegates to it. Before that, Logs returns a no-op handle, or, when asked
// with [FallbackOnProxy] or [FallbackOnEnv], a deferred handle that starts
// forwarding as soon as a factory is installed.
package logs
