// Package cli provides the verify-helper command-line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	vherrors "github.com/AndreyAkinshin/verifyhelper/internal/errors"
	"github.com/AndreyAkinshin/verifyhelper/internal/output"
)

// Version is set at build time.
var Version = "dev"

// GlobalOptions holds flags shared by every command.
type GlobalOptions struct {
	Root       string
	ConfigPath string
	Quiet      bool
	Verbose    bool
}

// app carries the state of one CLI invocation.
type app struct {
	globals GlobalOptions
	out     *output.Writer
	stdout  io.Writer
	stderr  io.Writer
}

// Run executes the CLI with the given arguments and returns an exit code.
// SIGINT and SIGTERM cancel the running command.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, args, os.Stdout, os.Stderr, output.New())
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, out *output.Writer) int {
	a := &app{out: out, stdout: stdout, stderr: stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		a.out.ErrorPrefix("%v", err)
		return exitCode(err)
	}
	return vherrors.ExitSuccess
}

// exitCode maps an error to a process exit code. Errors that did not come
// from a command are argument or flag errors reported by cobra.
func exitCode(err error) int {
	var e *vherrors.Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return vherrors.ExitConfigError
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "verify-helper",
		Short: "Dependency-aware verification scheduler for competitive programming libraries",
		Long: `verify-helper runs the verification steps attached to test files,
skips files whose dependency closure has not changed since the last success,
and records per-step results that can be merged across runs and shards.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			a.out.SetQuiet(a.globals.Quiet)
		},
	}
	root.SetVersionTemplate("verify-helper {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return vherrors.ConfigWrap(err, "invalid arguments")
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.globals.Root, "root", "", "repository root (default: nearest directory with .verify-helper or .git)")
	flags.StringVar(&a.globals.ConfigPath, "config", "", "config file (default: <root>/.verify-helper/config.yml)")
	flags.BoolVarP(&a.globals.Quiet, "quiet", "q", false, "print errors only")
	flags.BoolVarP(&a.globals.Verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.runCommand(),
		a.mergeCommand(),
		a.statusCommand(),
		a.versionCommand(),
	)
	return root
}

// positional wraps a cobra positional argument validator so that its errors
// map to the configuration exit code.
func positional(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return vherrors.ConfigWrap(err, "invalid arguments")
		}
		return nil
	}
}
