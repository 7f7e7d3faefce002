// Package cmd is the roadtrip command line.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/oakwood-commons/roadtrip/internal/config"
	"github.com/oakwood-commons/roadtrip/internal/notify"
	"github.com/oakwood-commons/roadtrip/internal/ui"
	"github.com/oakwood-commons/roadtrip/pkg/api"
	"github.com/oakwood-commons/roadtrip/pkg/logger"
	"github.com/oakwood-commons/roadtrip/pkg/settings"
	"github.com/oakwood-commons/roadtrip/pkg/tokenstore"
)

// app carries flag values, resolved configuration and the seams tests
// replace.
type app struct {
	configFile string
	apiURL     string
	keyMode    string
	output     string
	debug      bool
	noColor    bool
	quiet      bool

	cfg      config.Config
	notifier *notify.Printer
	color    bool

	in           io.Reader
	stdin        *bufio.Reader
	out          io.Writer
	errOut       io.Writer
	isTerminal   func(w io.Writer) bool
	newStore     func(cfg config.Config) (tokenstore.Store, error)
	readPassword func(prompt string) (string, error)
	runUI        func(ctx context.Context, opts ui.Options) error
	now          func() time.Time
}

func newApp() *app {
	a := &app{
		in:         os.Stdin,
		out:        os.Stdout,
		errOut:     os.Stderr,
		isTerminal: isTerminal,
		newStore:   defaultStore,
		runUI:      ui.Run,
		now:        time.Now,
	}
	a.readPassword = a.promptPassword
	return a
}

func defaultStore(cfg config.Config) (tokenstore.Store, error) {
	path := cfg.Storage.CredentialsFile
	if path == "" {
		var err error
		if path, err = tokenstore.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return tokenstore.NewFileStore(path), nil
}

// UsageError marks invalid flags or arguments. The process exits with 2.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// reportedError wraps an error the notifier already showed to the user.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

// Reported reports whether err was already shown to the user.
func Reported(err error) bool {
	var re reportedError
	return errors.As(err, &re)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   settings.CliBinaryName,
		Short: "Plan road trips from the terminal",
		Long: "roadtrip searches places, checks the weather and nearby attractions, " +
			"calculates routes and manages saved trips against the Road Trip Planner API.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, args)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config-file", "", "path to a YAML config file (default $XDG_CONFIG_HOME/roadtrip/config.yaml)")
	pf.StringVar(&a.apiURL, "api-url", "", "backend API base URL (overrides api.base_url)")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&a.noColor, "no-color", false, "disable color output")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "only print errors and requested data")
	pf.StringVarP(&a.output, "output", "o", settings.OutputTable, "output format: table|json|yaml|toml (tree for 'trips show')")
	pf.StringVar(&a.keyMode, "keymap", "", "keybinding mode for the interactive search: default|emacs|vim|function")
	_ = root.RegisterFlagCompletionFunc("keymap", cobra.FixedCompletions(config.KeyModes, cobra.ShellCompDirectiveNoFileComp))
	_ = root.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		[]string{settings.OutputTable, settings.OutputJSON, settings.OutputYAML, settings.OutputTOML, settings.OutputTree},
		cobra.ShellCompDirectiveNoFileComp))

	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newSearchCmd(a),
		newTripsCmd(a),
		newWeatherCmd(a),
		newRecommendCmd(a),
		newRouteCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup resolves configuration, logging and output settings for every
// subcommand.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := cmd.ValidateRequiredFlags(); err != nil {
		return &UsageError{Err: err}
	}
	if !settings.ValidOutputFormat(a.output) {
		return usageErrorf("invalid --output %q: expected table, json, yaml, toml or tree", a.output)
	}

	cfg, err := config.Load(config.ResolvePath(a.configFile))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-url") {
		cfg.API.BaseURL = a.apiURL
	}
	if cmd.Flags().Changed("keymap") {
		cfg.UI.KeyMode = a.keyMode
	}
	if a.noColor {
		cfg.UI.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return usageErrorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	var level int8
	if a.debug {
		level = -1
	}
	if wantsInteractive(cmd, args) {
		logFile := cfg.Log.File
		if logFile == "" {
			logFile = config.DefaultLogFile()
		}
		if err := logger.SetOutputFile(logFile); err != nil {
			return err
		}
	}
	lgr := logger.Get(level)
	lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

	run := settings.NewCliParams()
	run.MinLogLevel = level
	run.OutputFormat = a.output
	run.IsQuiet = a.quiet
	run.NoColor = cfg.UI.NoColor

	a.color = !cfg.UI.NoColor && a.isTerminal(a.out) && notify.ResolveColors(false)
	a.notifier = notify.NewPrinter(notify.Options{
		Out:     a.errOut,
		Err:     a.errOut,
		NoColor: !a.color,
		Quiet:   a.quiet,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, lgr)
	ctx = settings.IntoContext(ctx, run)
	cmd.SetContext(ctx)
	return nil
}

// client builds an API client. Interactive sessions pass withNotifier false
// so nothing is printed over the TUI.
func (a *app) client(ctx context.Context, withNotifier bool) (*api.Client, error) {
	store, err := a.newStore(a.cfg)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	opts := []api.Option{
		api.WithTimeout(a.cfg.API.Timeout),
		api.WithLogger(*logger.FromContext(ctx)),
	}
	if withNotifier {
		opts = append(opts, api.WithNotifier(a.notifier))
	}
	if a.cfg.API.RateLimit > 0 {
		opts = append(opts, api.WithRateLimit(rate.Limit(a.cfg.API.RateLimit), a.cfg.API.Burst))
	}
	return api.New(a.cfg.API.BaseURL, store, opts...), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && termIsTerminal(int(f.Fd()))
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd(newApp()).ExecuteContext(ctx)
}
