//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/ui"
)

const (
	// ProgressRefreshRate defines the spinner animation interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 20
)

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with a completion bar until progressChan is
// closed. It calls wg.Done before returning.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numGenerators int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numGenerators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(out)
	s.UpdateSuffix(progressSuffix(agg))
	s.Start()
	for update := range progressChan {
		agg.Update(update)
		s.UpdateSuffix(progressSuffix(agg))
	}
	s.Stop()

	status := ui.Paint(ui.SuccessRole, fmt.Sprintf("%d/%d generators finished", agg.Finished(), agg.NumGenerators()))
	if agg.Failed() > 0 {
		status += ", " + ui.Paint(ui.FailureRole, fmt.Sprintf("%d failed", agg.Failed()))
	}
	fmt.Fprintln(out, status)
}

func progressSuffix(agg *orchestration.ProgressAggregator) string {
	return fmt.Sprintf(" Generating %s %d/%d", progressBar(agg.Fraction(), ProgressBarWidth), agg.Finished(), agg.NumGenerators())
}

// progressBar renders a textual bar for a progress value in [0, 1].
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	return strings.Repeat("█", count) + strings.Repeat("░", length-count)
}
