package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and completion bar.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numGenerators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numGenerators, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for terminal output.
// The sequence goes to the writer handed to PresentSequence; the optional
// summary goes to Info.
type CLIResultPresenter struct {
	Output OutputConfig
	Info   io.Writer
}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable displays generator names, durations and status.
// Padding is computed on the raw text so ANSI codes don't skew alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.GenerationResult, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.HeaderStyle().Render("--- Comparison Summary ---"))

	nameWidth, durWidth := len("Generator"), len("Duration")
	for _, res := range results {
		nameWidth = max(nameWidth, len(res.Name))
		durWidth = max(durWidth, len(format.FormatExecutionDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%s%s   %s%s   %s\n",
		ui.Heading("Generator"), pad(nameWidth-len("Generator")),
		ui.Heading("Duration"), pad(durWidth-len("Duration")),
		ui.Heading("Status"))

	for _, res := range results {
		status := ui.Paint(ui.SuccessRole, "Success")
		if res.Err != nil {
			status = ui.Paint(ui.FailureRole, fmt.Sprintf("Failure (%v)", res.Err))
		}
		duration := format.FormatExecutionDuration(res.Duration)
		fmt.Fprintf(out, "%s%s   %s%s   %s\n",
			ui.Paint(ui.GeneratorRole, res.Name), pad(nameWidth-len(res.Name)),
			ui.Paint(ui.TimingRole, duration), pad(durWidth-len(duration)),
			status)
	}
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// PresentSequence writes the sequence, saves it to a file when configured
// and prints the verbose summary.
func (p CLIResultPresenter) PresentSequence(result orchestration.GenerationResult, opts orchestration.PresentationOptions, out io.Writer) error {
	cfg := p.Output
	if cfg.Format == "" {
		cfg.Format = opts.Format
	}
	if err := DisplaySequence(out, result.Sequence, cfg); err != nil {
		return err
	}
	if err := WriteSequenceToFile(result.Sequence, result.Name, result.Duration, cfg); err != nil {
		return err
	}

	if p.Info == nil || !opts.Verbose || opts.Quiet {
		return nil
	}
	DisplaySummary(p.Info, result.Sequence, result.Name, result.Duration)
	if cfg.OutputFile != "" {
		fmt.Fprintf(p.Info, "%s %s\n", ui.Paint(ui.SuccessRole, "Sequence saved to:"), ui.Paint(ui.DetailRole, cfg.OutputFile))
	}
	return nil
}

// HandleError reports a failed run and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleGenerationError(err, duration, out)
}
