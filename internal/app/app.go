// Package app wires configuration, backends and front ends together and
// dispatches to the mode selected on the command line.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/fibbridge/internal/cli"
	"github.com/agbru/fibbridge/internal/config"
	apperrors "github.com/agbru/fibbridge/internal/errors"
	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/logging"
	"github.com/agbru/fibbridge/internal/server"
	"github.com/agbru/fibbridge/internal/tui"
	"github.com/agbru/fibbridge/internal/ui"
)

// Application represents the fibbridge application instance.
type Application struct {
	Config    config.AppConfig
	Factory   fibonacci.CalculatorFactory
	ErrWriter io.Writer
	In        io.Reader
	Logger    *logging.ZerologAdapter
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f fibonacci.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader used by the REPL.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
// args includes the program name. Flag errors other than -h are returned as
// apperrors.ConfigError.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = fibonacci.GlobalFactory()
	}

	programName := "fibbridge"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		if IsHelpError(err) {
			return nil, err
		}
		var cfgErr apperrors.ConfigError
		if !errors.As(err, &cfgErr) {
			err = apperrors.ConfigError{Message: err.Error()}
		}
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		err = apperrors.NewConfigError("invalid --log-level %q", cfg.LogLevel)
		fmt.Fprintln(errWriter, err)
		return nil, err
	}
	zerolog.SetGlobalLevel(level)

	app.Config = config.ApplyAdaptiveDefaults(cfg)
	app.Logger = logging.NewConsoleLogger(errWriter, "fibbridge")
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.Serve:
		return a.runServer(ctx)
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.REPL:
		return a.runREPL(out)
	case a.Config.LastDigits > 0:
		return a.runLastDigits(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive line-oriented session.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory.GetAll(), cli.REPLConfig{
		DefaultAlgo:   a.Config.Algo,
		Timeout:       a.Config.Timeout,
		CheckInterval: a.Config.CheckInterval,
		HexOutput:     a.Config.HexOutput,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the interactive terminal UI. The timeout applies to each
// calculation, not to the session.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, a.Factory, tui.Config{
		Algo:    a.Config.Algo,
		Timeout: a.Config.Timeout,
		Options: a.Config.ToCalculationOptions(),
		Version: Version,
	})
}

// runServer starts the HTTP host and blocks until SIGINT or SIGTERM.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	security := server.DefaultSecurityConfig()
	security.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	security.MaxNValue = a.Config.MaxN

	srv := server.NewServer(a.Factory, server.Config{
		Addr:           a.Config.Addr,
		DefaultAlgo:    a.Config.Algo,
		RequestTimeout: a.Config.Timeout,
		Options:        a.Config.ToCalculationOptions(),
		Security:       security,
	}, server.WithLogger(a.Logger))

	if err := srv.Start(ctx); err != nil {
		a.Logger.Error("HTTP host stopped", err, logging.String("addr", a.Config.Addr))
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
