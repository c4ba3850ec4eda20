//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/namedlogs/log"
	"github.com/ardnew/namedlogs/pkg"
	"github.com/ardnew/namedlogs/profile"
)

// pprofConfig selects a profiling session spanning the command.
type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Enable profiling"         placeholder:"${enum}" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory"                                 type:"path"`
}

func (*pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      pkg.CachePath(profile.Tag),
	}
}

func (*pprofConfig) group() kong.Group {
	return kong.Group{Key: profile.Tag, Title: "Profiling options"}
}

// start begins the configured session. Stopping it writes the profile to
// Dir.
func (f *pprofConfig) start(ctx context.Context) profile.Stopper {
	p := profile.Profiler{Mode: f.Mode, Path: f.Dir, Quiet: true}

	if p.Mode != "" {
		log.DebugContext(ctx, "profiling",
			slog.String("mode", p.Mode),
			slog.String("dir", p.Path),
		)
	}

	return p.Start()
}
