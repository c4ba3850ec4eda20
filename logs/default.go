package logs

import (
	"os"

	"github.com/ardnew/namedlogs/slot"
)

//nolint:gochecknoglobals
var (
	defaultFactory  = New()
	defaultRegistry = NewRegistry(slot.Global, os.LookupEnv)
)

func init() {
	defaultFactory.LoadEnv(os.LookupEnv)
}

// Default returns the process-wide factory, configured from the environment
// at startup.
func Default() *Factory { return defaultFactory }

// DefaultRegistry returns the process-wide registry, which publishes to
// [slot.Global].
func DefaultRegistry() *Registry { return defaultRegistry }

// Get returns the handle for ns from the default factory.
func Get(ns string) *Logger { return defaultFactory.Get(ns) }

// Enable applies pattern specs to the default factory.
func Enable(specs ...string) { defaultFactory.Enable(specs...) }

// Disable disables every namespace of the default factory.
func Disable() { defaultFactory.Disable() }

// Enabled reports whether ns is enabled in the default factory.
func Enabled(ns string) bool { return defaultFactory.Enabled(ns) }

// GlobalLevel returns the global level of the default factory.
func GlobalLevel() Level { return defaultFactory.Level() }

// SetGlobalLevel sets the global level of the default factory.
func SetGlobalLevel(level Level) { defaultFactory.SetLevel(level) }

// Install installs fn on the default registry and publishes it globally.
func Install(fn FactoryFunc) { defaultRegistry.Install(fn) }

// InstallDefault installs the default factory on the default registry and
// publishes it globally.
func InstallDefault() { defaultRegistry.InstallFactory(defaultFactory) }

// Logs returns a handle for ns from the default registry.
func Logs(ns string, opts ...LogsOption) Handle {
	return defaultRegistry.Logs(ns, opts...)
}
