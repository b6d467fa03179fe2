// Package app wires the resolved configuration to one of the run modes:
// the comparison run, the HTTP API, the interactive session, the dashboard,
// or the one-shot outputs (completion scripts, version).
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/fibbench/internal/cli"
	"github.com/agbru/fibbench/internal/config"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/logging"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/server"
	"github.com/agbru/fibbench/internal/tui"
	"github.com/agbru/fibbench/internal/ui"
)

// Application represents one fibbench invocation.
type Application struct {
	Config    config.AppConfig
	Factory   fibonacci.CalculatorFactory
	Log       logging.Logger
	ErrWriter io.Writer

	zlog zerolog.Logger
}

// AppOption customizes an Application before flags are parsed.
type AppOption func(*Application)

// WithFactory replaces the default calculator factory.
func WithFactory(f fibonacci.CalculatorFactory) AppOption {
	return func(a *Application) {
		a.Factory = f
	}
}

// WithLogger sets the structured logger used for diagnostics.
func WithLogger(zl zerolog.Logger) AppOption {
	return func(a *Application) {
		a.zlog = zl
		a.Log = logging.NewZerologAdapter(zl)
	}
}

// New builds an Application from argv. args includes the program name at
// index zero; usage and parse errors go to errWriter.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, o := range opts {
		o(app)
	}

	if app.Factory == nil {
		app.Factory = fibonacci.NewDefaultFactory()
	}
	if app.Log == nil {
		app.zlog = zerolog.New(errWriter).With().Timestamp().Str("component", config.AppName).Logger()
		app.Log = logging.NewZerologAdapter(app.zlog)
	}

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	cfg, err := config.ParseFlags(rest, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	switch {
	case a.Config.Completion != "":
		return a.runCompletion(out)
	case a.Config.ShowVersion:
		return a.runVersion(out)
	}

	switch {
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.Theme)

	switch {
	case a.Config.REPL:
		return a.runREPL(out)
	case a.Config.Serve != "":
		return a.runServe(ctx)
	case a.Config.TUI:
		return a.runTUI(ctx)
	}
	return a.runCalculate(ctx, out)
}

// withRunContext bounds ctx by the configured timeout and by SIGINT and
// SIGTERM. The returned cancel releases both.
func (a *Application) withRunContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List())
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Completion script generation failed: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runVersion prints build information.
func (a *Application) runVersion(out io.Writer) int {
	fmt.Fprintf(out, "%s %s\n", config.AppName, Version)
	fmt.Fprintf(out, "  commit: %s\n", Commit)
	fmt.Fprintf(out, "  built:  %s\n", Date)
	fmt.Fprintf(out, "  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session on stdin/stdout.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		NaiveLimit:  a.Config.NaiveLimit,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runServe starts the HTTP API and blocks until the context is canceled or
// the listener fails. The API has no overall deadline, so only the signal
// part of the run context applies.
func (a *Application) runServe(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	a.Log.Info("starting http api", logging.String("addr", a.Config.Serve))
	srv := server.New(a.Config.Serve, a.Factory, a.Log,
		server.WithTimeout(a.Config.Timeout),
		server.WithNaiveLimit(a.Config.NaiveLimit))
	if err := srv.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runTUI launches the full-screen dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancel := a.withRunContext(ctx)
	defer cancel()

	calculators := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)
	return tui.Run(ctx, calculators, a.Config, Version)
}

// IsHelpError reports whether err came from the --help flag.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
