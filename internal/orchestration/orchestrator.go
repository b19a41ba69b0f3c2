package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/sequence"
)

const tracerName = "github.com/agbru/fibseq/internal/orchestration"

// ProgressBufferMultiplier sizes the progress channel relative to the number
// of generators so that senders never block on a slow reporter.
const ProgressBufferMultiplier = 2

// ExecuteGenerations runs every generator concurrently for n terms and
// collects one result per generator, in input order. Errors are recorded in
// the results rather than aborting the other generators.
func ExecuteGenerations(ctx context.Context, generators []sequence.Generator, n int, progressReporter ProgressReporter, out io.Writer) []GenerationResult {
	var g errgroup.Group
	results := make([]GenerationResult, len(generators))
	progressChan := make(chan ProgressUpdate, len(generators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(generators), out)

	tracer := otel.Tracer(tracerName)
	for i, gen := range generators {
		i, gen := i, gen
		g.Go(func() error {
			spanCtx, span := tracer.Start(ctx, "sequence.generate", trace.WithAttributes(
				attribute.String("generator", gen.Name()),
				attribute.Int("n", n),
			))
			defer span.End()

			start := time.Now()
			seq, err := gen.Generate(spanCtx, n)
			if err != nil {
				err = apperrors.GenerationError{Generator: gen.Name(), Cause: err}
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			results[i] = GenerationResult{Name: gen.Name(), Sequence: seq, Duration: time.Since(start), Err: err}
			progressChan <- ProgressUpdate{Index: i, Name: gen.Name(), Err: err}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeResults sorts results (successes first, then by duration), checks
// that every successful generator produced the same valid sequence and
// presents the winner on out. Diagnostics go to errOut.
//
// Returns the process exit code.
func AnalyzeResults(results []GenerationResult, opts PresentationOptions, presenter ResultPresenter, out, errOut io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	if opts.Verbose && !opts.Quiet && len(results) > 1 {
		presenter.PresentComparisonTable(results, errOut)
	}

	if len(results) == 0 {
		fmt.Fprintln(errOut, "No generator was selected.")
		return apperrors.ExitErrorConfig
	}

	winner := results[0]
	if winner.Err != nil {
		return presenter.HandleError(winner.Err, winner.Duration, errOut)
	}

	for _, res := range results[1:] {
		if res.Err == nil && !sequence.Equal(res.Sequence, winner.Sequence) {
			fmt.Fprintf(errOut, "Global Status: CRITICAL ERROR! %s and %s produced different sequences.\n", winner.Name, res.Name)
			return apperrors.ExitErrorMismatch
		}
	}
	if err := sequence.Verify(winner.Sequence); err != nil {
		fmt.Fprintf(errOut, "Global Status: CRITICAL ERROR! %s produced an invalid sequence: %v\n", winner.Name, err)
		return apperrors.ExitErrorMismatch
	}

	if err := presenter.PresentSequence(winner, opts, out); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	return apperrors.ExitSuccess
}
