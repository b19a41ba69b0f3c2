package app

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/fibseq/internal/cli"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/orchestration"
)

// runGenerate produces one sequence and writes it to out.
func (a *Application) runGenerate(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	generators, err := orchestration.GetGeneratorsToRun(a.Config.Algo, a.Config.N, a.Factory)
	if err != nil {
		return apperrors.HandleGenerationError(err, 0, a.ErrWriter)
	}

	verbose := a.Config.Verbose && !a.Config.Quiet
	var reporter orchestration.ProgressReporter = orchestration.NullProgressReporter{}
	progressOut := io.Discard
	if verbose {
		cli.PrintExecutionConfig(a.Config, a.ErrWriter)
		cli.PrintExecutionMode(generators, a.ErrWriter)
		reporter = cli.CLIProgressReporter{}
		progressOut = a.ErrWriter
	}

	results := orchestration.ExecuteGenerations(ctx, generators, a.Config.N, reporter, progressOut)
	markTimeouts(ctx, results, a.Config.Timeout)
	for _, res := range results {
		if res.Err != nil {
			a.Logger.Debug("generator failed", logging.String("generator", res.Name), logging.Err(res.Err))
			continue
		}
		a.Logger.Debug("generator finished", logging.String("generator", res.Name), logging.Duration("elapsed", res.Duration))
	}

	presenter := cli.CLIResultPresenter{
		Output: cli.OutputConfig{
			OutputFile: a.Config.OutputFile,
			Format:     a.Config.Format,
			Quiet:      a.Config.Quiet,
		},
		Info: a.ErrWriter,
	}
	opts := orchestration.PresentationOptions{
		N:       a.Config.N,
		Format:  a.Config.Format,
		Verbose: a.Config.Verbose,
		Quiet:   a.Config.Quiet,
	}
	return orchestration.AnalyzeResults(results, opts, presenter, out, a.ErrWriter)
}

// markTimeouts replaces context errors with a TimeoutError naming the
// generator once the run's deadline has passed. Signal cancellations are
// left as they are.
func markTimeouts(ctx context.Context, results []orchestration.GenerationResult, limit time.Duration) {
	if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return
	}
	for i := range results {
		if apperrors.IsContextError(results[i].Err) {
			results[i].Err = apperrors.TimeoutError{Operation: "generate " + results[i].Name, Limit: limit}
		}
	}
}
