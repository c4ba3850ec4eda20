package profile

// Tag is the build tag enabling profiling, also used as the name of the
// default output subdirectory.
const Tag = "pprof"

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Profiler describes one profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty or unsupported Mode disables
	// profiling.
	Mode string
	// Path is the output directory. Empty means the working directory.
	Path string
	// Quiet suppresses the profiler's own start and stop messages.
	Quiet bool
}

// Start begins profiling and returns the Stopper ending it. Start and Stop
// are always safe to call, whether or not profiling is compiled in.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
