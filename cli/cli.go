package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ardnew/namedlogs/cli/cmd"
	"github.com/ardnew/namedlogs/config"
	"github.com/ardnew/namedlogs/log"
	"github.com/ardnew/namedlogs/logs"
	"github.com/ardnew/namedlogs/pkg"
)

// CLI is the top-level command-line interface for namedlogs.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Namespaces string   `env:"NAMED_LOGS"       help:"Pattern spec of enabled namespaces"                      placeholder:"SPEC"  short:"n"`
	Level      string   `env:"NAMED_LOGS_LEVEL" help:"Global level, by name or number"                         placeholder:"LEVEL" short:"l"`
	Source     []string `                       help:"Namespace list file(s) or '-' for stdin" name:"source"                      short:"s" type:"existingfile"`

	Match   cmd.Match   `cmd:"" default:"withargs" help:"Evaluate namespaces against the pattern"`
	Env     cmd.Env     `cmd:""                    help:"Compose a pattern spec from the active one"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file"`
	Watch   cmd.Watch   `cmd:""                    help:"Re-evaluate namespaces when a configuration file changes"`
	Explore cmd.Explore `cmd:""                    help:"Edit the pattern interactively"`
	Emit    cmd.Emit    `cmd:""                    help:"Forward a message through namespace handles"`
}

// Run executes the namedlogs CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := pkg.MkdirAll()
	if err != nil {
		return err
	}

	configFilePath := pkg.ConfigPath(pkg.ConfigFile)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	groups := []kong.Group{cli.Log.group()}
	if g := cli.Pprof.group(); g.Key != "" {
		groups = append(groups, g)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(groups),
		// ctx is reassigned below; commands receive the final value.
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	cfg := loadConfig(ctx, configFilePath)

	// Flags carry the environment and config file values they resolved.
	cfg.Namespaces, cfg.Level = cli.Namespaces, cli.Level

	factory := logs.New(logs.WithLogger(log.Default()))
	if err := cfg.Apply(factory); err != nil {
		return cmd.ErrApplyConfig.
			With(slog.String("file", configFilePath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "namespaces configured",
		slog.String("namespaces", cfg.Namespaces),
		slog.String("level", factory.Level().String()),
		slog.Int("overrides", len(cfg.Levels)),
	)

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)
	ctx = cmd.WithFactory(ctx, factory)
	ctx = cmd.WithConfig(ctx, cfg)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx).Stop()

	return ktx.Run()
}

// loadConfig reads the configuration file at path. A missing file is the
// zero Config, and an invalid one is ignored with a warning so that it can
// be replaced with init --force.
func loadConfig(ctx context.Context, path string) config.Config {
	cfg, err := config.LoadFile(path)
	if err == nil {
		return cfg
	}

	if !errors.Is(err, fs.ErrNotExist) {
		log.WarnContext(ctx, "ignoring configuration file",
			slog.String("file", path),
			slog.Any("error", err),
		)
	}

	return config.Config{}
}
