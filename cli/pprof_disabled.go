//go:build !pprof

package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/namedlogs/profile"
)

// pprofConfig has no flags without the pprof build tag.
type pprofConfig struct{}

func (*pprofConfig) vars() kong.Vars { return nil }

// group is not registered: its Key is empty.
func (*pprofConfig) group() kong.Group { return kong.Group{} }

func (*pprofConfig) start(context.Context) profile.Stopper {
	return profile.Profiler{}.Start()
}
