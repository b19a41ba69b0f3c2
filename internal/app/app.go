// Package app wires configuration, generators and the three run modes
// (one-shot CLI, interactive explorer, HTTP service) into an Application.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/fibseq/internal/cli"
	"github.com/agbru/fibseq/internal/config"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/sequence"
	"github.com/agbru/fibseq/internal/server"
	"github.com/agbru/fibseq/internal/tui"
	"github.com/agbru/fibseq/internal/ui"
)

// Application represents the fibseq application instance.
type Application struct {
	Config    config.AppConfig
	Factory   *sequence.Factory
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom generator registry.
func WithFactory(f *sequence.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger overrides the zerolog logger built from --log-level.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates an Application by parsing command-line arguments. args[0] is
// the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = sequence.NewDefaultFactory()
	}

	programName := "fibseq"
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

	if app.Logger == nil {
		level, _ := logging.ParseLevel(cfg.LogLevel)
		zerolog.SetGlobalLevel(level)
		app.Logger = logging.NewLogger(errWriter, "fibseq")
	}
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
// The sequence is written to out; everything else goes to ErrWriter.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.Init(a.Config.NoColor)
	a.Logger.Debug("configuration loaded",
		logging.Int("n", a.Config.N),
		logging.String("algo", a.Config.Algo),
		logging.String("format", a.Config.Format),
	)

	switch {
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Serve:
		return a.runServer(ctx)
	default:
		return a.runGenerate(ctx, out)
	}
}

// runCompletion prints a shell completion script.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive explorer.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	return tui.Run(ctx, a.Factory, a.Config)
}

// runServer serves HTTP until SIGINT or SIGTERM.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	srv := server.New(server.Config{
		Addr:     a.Config.Addr,
		MaxN:     a.Config.MaxN,
		Timeout:  a.Config.Timeout,
		Algo:     a.Config.Algo,
		Security: server.DefaultSecurityConfig(),
	}, a.Factory, a.Logger)

	if err := srv.ListenAndServe(ctx); err != nil {
		a.Logger.Error("server failed", err)
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
