// Package app wires configuration, the benchmark driver and the console
// presenters into the fibbench command.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agbru/fibbench/internal/bench"
	"github.com/agbru/fibbench/internal/config"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/logging"
	"github.com/agbru/fibbench/internal/ui"
)

// Application represents the fibbench application instance.
type Application struct {
	Config    config.AppConfig
	Factory   fibonacci.Factory
	ErrWriter io.Writer
	Logger    *logging.ZerologAdapter

	runnerOpts []bench.Option
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom Factory for the application.
func WithFactory(f fibonacci.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger sets the diagnostics logger. By default a console logger on
// ErrWriter is created when Run starts.
func WithLogger(l *logging.ZerologAdapter) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithRunnerOptions passes options to the benchmark driver.
func WithRunnerOptions(opts ...bench.Option) AppOption {
	return func(a *Application) { a.runnerOpts = append(a.runnerOpts, opts...) }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = fibonacci.NewDefaultFactory()
	}

	programName := "fibbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the benchmarks and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	level := zerolog.WarnLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	outFile, _ := out.(*os.File)
	ui.InitTheme(a.Config.NoColor, outFile)

	if a.Logger == nil {
		a.Logger = logging.NewConsoleLogger(a.ErrWriter, level, a.Config.NoColor || !isTerminal(a.ErrWriter))
	}

	return a.runBenchmarks(ctx, out)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTerminal(f)
}
