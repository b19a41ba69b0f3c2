// Package cli renders sequences, progress and shell completion for the
// terminal.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Write* functions write data to files on the filesystem.
package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/ui"
)

// OutputConfig holds configuration for sequence output.
type OutputConfig struct {
	// OutputFile is the path to save the sequence (empty for no file output).
	OutputFile string
	// Format is the output format name.
	Format string
	// Quiet suppresses everything but the sequence.
	Quiet bool
}

// DisplaySequence writes seq to out in the configured format followed by a
// newline.
func DisplaySequence(out io.Writer, seq []*big.Int, config OutputConfig) error {
	s, err := format.Format(config.Format, seq)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, s)
	return err
}

// WriteSequenceToFile writes seq to config.OutputFile, preceded by a
// commented header for the list and lines formats.
func WriteSequenceToFile(seq []*big.Int, generator string, duration time.Duration, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "failed to create directory")
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return apperrors.WrapError(err, "failed to create output file")
	}
	defer file.Close()

	if config.Format == format.List || config.Format == format.Lines || config.Format == "" {
		fmt.Fprintf(file, "# Fibonacci Sequence\n")
		fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
		fmt.Fprintf(file, "# Generator: %s\n", generator)
		fmt.Fprintf(file, "# Duration: %s\n", duration)
		fmt.Fprintf(file, "# Terms: %d\n\n", len(seq))
	}
	if err := DisplaySequence(file, seq, config); err != nil {
		return apperrors.WrapError(err, "failed to write output file")
	}
	return nil
}

// DisplaySummary prints generation statistics for verbose mode.
func DisplaySummary(out io.Writer, seq []*big.Int, generator string, duration time.Duration) {
	fmt.Fprintf(out, "\n%s\n", ui.HeaderStyle().Render("--- Summary ---"))
	fmt.Fprintf(out, "Generator:  %s\n", ui.Paint(ui.GeneratorRole, generator))
	fmt.Fprintf(out, "Terms:      %s\n", format.FormatNumberString(fmt.Sprint(len(seq))))
	fmt.Fprintf(out, "Duration:   %s\n", ui.Paint(ui.TimingRole, format.FormatExecutionDuration(duration)))
	if len(seq) > 0 {
		last := seq[len(seq)-1]
		fmt.Fprintf(out, "Last term:  %d digits, %d bits\n", len(last.String()), last.BitLen())
	}
	fmt.Fprintf(out, "Memory:     ~%s retained, %s heap in use\n",
		metrics.FormatBytes(metrics.SequenceFootprint(seq)),
		metrics.FormatBytes(metrics.NewMemoryCollector().Snapshot().HeapAlloc))
}
