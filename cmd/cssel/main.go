package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssel/config"
	"cssel/misc"
	"cssel/selector"
	"cssel/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// save complete processed configuration if external configuration was provided
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Strict = env.Cfg.Selector.Strict
	if env.Combinator, err = env.Cfg.Selector.Combinator(); err != nil {
		return ctx, fmt.Errorf("unable to resolve default combinator: %w", err)
	}

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	return
}

// Ignore urfave/cli default error handling - cli.Exit() looks non-transparent
// and unnecessary. Subcommands return regular errors.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// allow graceful shutdown on interrupt
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "builds, joins and validates CSS selector strings",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "build",
				Usage:        "Builds a selector from segment flags applied in category order",
				OnUsageError: usageErrorHandler,
				Action:       buildSelector,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tag", Usage: "tag `NAME`, at most one"},
					&cli.StringFlag{Name: "id", Usage: "id `VALUE`, at most one"},
					&cli.StringSliceFlag{Name: "class", Usage: "class `VALUE`, repeatable"},
					&cli.StringSliceFlag{Name: "attr", Usage: "attribute `SPEC` (verbatim, without brackets), repeatable"},
					&cli.StringSliceFlag{Name: "pseudo-class", Usage: "pseudo-class `NAME`, repeatable"},
					&cli.StringFlag{Name: "pseudo-element", Usage: "pseudo-element `NAME`, at most one"},
				},
			},
			{
				Name:         "check",
				Usage:        "Validates selector string(s)",
				OnUsageError: usageErrorHandler,
				Action:       checkSelectors,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "strict", Usage: "stop at the first invalid selector"},
				},
				ArgsUsage: "SELECTOR [SELECTOR...]",
				CustomHelpTemplate: fmt.Sprintf(`%s
SELECTOR:
    selector string to validate; when none are given selectors are read
    from STDIN, one per line
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "join",
				Usage:        "Joins two selectors with a combinator",
				OnUsageError: usageErrorHandler,
				Action:       joinSelectors,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "with", DefaultText: "from configuration",
						Usage: "combinator `NAME` (supported: " + strings.Join(selector.CombinatorNames(), ", ") + ")"},
				},
				ArgsUsage: "LEFT RIGHT",
			},
			{
				Name:         "encode",
				Usage:        "Encodes a YAML value as JSON text",
				OnUsageError: usageErrorHandler,
				Action:       encodeValue,
				ArgsUsage:    "[FILE]",
			},
			{
				Name:         "decode",
				Usage:        "Decodes JSON text into a value with the requested capability set",
				OnUsageError: usageErrorHandler,
				Action:       decodeValue,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "as", Required: true,
						Usage: "capability `SET` to attach (registered: " + strings.Join(capabilityNames(), ", ") + ")"},
				},
				ArgsUsage: "[FILE]",
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s
DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition
of default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
