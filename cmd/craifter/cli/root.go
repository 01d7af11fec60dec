package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/craifter/cli/cmd/craifter/cli/config"
	"github.com/craifter/cli/cmd/craifter/cli/logging"
	"github.com/craifter/cli/cmd/craifter/cli/paths"
	"github.com/craifter/cli/cmd/craifter/cli/router"
	"github.com/craifter/cli/cmd/craifter/cli/session"
	"github.com/craifter/cli/cmd/craifter/cli/settings"
	"github.com/craifter/cli/cmd/craifter/cli/shell"
	"github.com/craifter/cli/cmd/craifter/cli/telemetry"
	"github.com/craifter/cli/cmd/craifter/cli/todo"

	"github.com/spf13/cobra"
)

const usageHelp = `
Run with a command to execute it once, or with no arguments to start the
interactive prompt. Type 'help' for the list of commands. Flags must come
before the command.
`

const accessibilityHelp = `
Environment Variables:
  CRAIFTER_ROOT              Sessions root directory.
  CRAIFTER_SHELL             Shell used to run saved commands.
  CRAIFTER_CONFIRM           Ask before each saved command runs (true/false).
  CRAIFTER_LOG_LEVEL         Log level (debug, info, warn, error).
  CRAIFTER_TELEMETRY_OPTOUT  Set to any value to disable telemetry.
  ACCESSIBLE                 Set to any value (e.g., ACCESSIBLE=1) to enable
                             accessibility mode. This uses simpler text
                             prompts instead of interactive TUI elements.
`

// Version information (can be set at build time)
var (
	Version = "dev"
	Commit  = "unknown"
)

// rootFlags holds the command-line flags of the root command.
type rootFlags struct {
	root    string
	shell   string
	confirm bool
	// confirmSet is true when --confirm was given explicitly.
	confirmSet bool
}

// options is the resolved configuration for one run.
type options struct {
	Root     string
	Shell    string
	Confirm  bool
	Settings *settings.Settings
}

func NewRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "craifter [command]",
		Short: "Session and task management with command playback",
		Long:  "Craifter keeps named sessions of commands and notes and plays them back.\n" + usageHelp + accessibilityHelp,
		Args:  cobra.ArbitraryArgs,
		// Let main.go handle error printing to avoid duplication
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.confirmSet = cmd.Flags().Changed("confirm")
			return run(cmd, args, flags)
		},
	}

	// Everything after the first argument belongs to the routed command line,
	// e.g. "savecommand web ls -la".
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().StringVar(&flags.root, "root", "", "sessions root directory (default $HOME/craifter/sessions)")
	cmd.Flags().StringVar(&flags.shell, "shell", "", "shell used to run saved commands (default /bin/sh)")
	cmd.Flags().BoolVar(&flags.confirm, "confirm", false, "ask before running each saved command")

	cmd.SetVersionTemplate(fmt.Sprintf("craifter {{.Version}} (%s)\n", Commit))

	return cmd
}

// resolveOptions layers flags over environment over settings over defaults,
// creating the sessions root on the way.
func resolveOptions(flags rootFlags) (*options, error) {
	env, err := config.Load()
	if err != nil {
		return nil, err
	}

	root := paths.ExpandHome(firstNonEmpty(flags.root, env.Root, paths.DefaultRoot()))
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create sessions root: %w", err)
	}

	s, err := settings.Load(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	opts := &options{
		Root:     root,
		Shell:    firstNonEmpty(flags.shell, env.Shell, s.Shell),
		Settings: s,
	}
	switch {
	case flags.confirmSet:
		opts.Confirm = flags.confirm
	case env.Confirm != nil:
		opts.Confirm = *env.Confirm
	default:
		opts.Confirm = s.Confirm
	}
	return opts, nil
}

func run(cmd *cobra.Command, args []string, flags rootFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	opts, err := resolveOptions(flags)
	if err != nil {
		return err
	}

	logging.SetLogLevelGetter(func() string { return opts.Settings.LogLevel })
	if err := logging.Init(opts.Root); err != nil {
		fmt.Fprintf(errOut, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()
	ctx = logging.WithComponent(ctx, "cli")

	registry := session.NewRegistry(opts.Root)
	if err := registry.Load(ctx); err != nil {
		// Persisting an empty list now would wipe the index.
		fmt.Fprintf(errOut, "Could not read the session index %s: %v\n", registry.IndexPath(), err)
		return NewSilentError(fmt.Errorf("failed to load sessions: %w", err))
	}
	defer func() {
		if err := registry.Persist(context.WithoutCancel(ctx)); err != nil {
			logging.Error(ctx, "failed to persist session index", slog.String("error", err.Error()))
		}
	}()

	runner := newRunner(ctx, opts, cmd, errOut)

	tc := telemetry.NewClient(Version, opts.Settings.Telemetry)
	defer tc.Close()

	r := router.New(registry, todo.NewList(), runner, out)
	route := func(ctx context.Context, line string) {
		op := r.Route(ctx, line)
		tc.TrackOperation(cmd, string(op))
	}

	logging.Debug(ctx, "craifter started",
		slog.String("root", opts.Root),
		slog.Bool("interactive", len(args) == 0),
		slog.Int("sessions", len(registry.Sessions())),
	)

	if len(args) > 0 {
		route(ctx, strings.Join(args, " "))
		return nil
	}
	return runREPL(ctx, cmd.InOrStdin(), out, route)
}

//nolint:ireturn // wraps the shell runner when confirmation is on
func newRunner(ctx context.Context, opts *options, cmd *cobra.Command, errOut io.Writer) shell.Runner {
	var runner shell.Runner = shell.NewShellRunner(opts.Shell, cmd.InOrStdin(), cmd.OutOrStdout(), errOut)
	if !opts.Confirm {
		return runner
	}

	if canPrompt() {
		return &shell.ConfirmRunner{Next: runner, Confirm: promptRunCommand}
	}

	fmt.Fprintf(errOut, "Warning: %v; saved commands will be skipped.\n", errNoTerminal)
	logging.Warn(ctx, "confirmation unavailable, commands will be skipped")
	return &shell.ConfirmRunner{Next: runner, Confirm: declineCommand}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
