package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"
)

// GenerationResult encapsulates the outcome of a single generator run.
type GenerationResult struct {
	// Name is the registry name of the generator (e.g. "big").
	Name string
	// Sequence is the generated prefix. It is nil if an error occurred.
	Sequence []*big.Int
	// Duration is the time taken by the generator.
	Duration time.Duration
	// Err contains any error that occurred during generation.
	Err error
}

// ProgressUpdate reports that one generator finished.
type ProgressUpdate struct {
	// Index is the generator's position in the run.
	Index int
	// Name is the generator's registry name.
	Name string
	// Err is the generator's error, if any.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	N       int
	Format  string
	Verbose bool
	Quiet   bool
}

// ProgressReporter defines the interface for displaying generation progress.
// DisplayProgress runs in its own goroutine until progressChan is closed and
// must call wg.Done before returning.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numGenerators int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numGenerators int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numGenerators int, out io.Writer) {
	f(wg, progressChan, numGenerators, out)
}

// NullProgressReporter drains the progress channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting generation results.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-generator summary.
	PresentComparisonTable(results []GenerationResult, out io.Writer)
	// PresentSequence writes the winning sequence.
	PresentSequence(result GenerationResult, opts PresentationOptions, out io.Writer) error
	// HandleError reports a failed run and returns the exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}
