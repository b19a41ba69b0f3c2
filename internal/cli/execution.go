package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/agbru/fibseq/internal/config"
	"github.com/agbru/fibseq/internal/sequence"
	"github.com/agbru/fibseq/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "%s\n", ui.HeaderStyle().Render("--- Execution Configuration ---"))
	fmt.Fprintf(out, "Generating the first %s Fibonacci numbers with a timeout of %s.\n",
		ui.Paint(ui.CountRole, fmt.Sprint(cfg.N)), ui.Paint(ui.TimingRole, cfg.Timeout.String()))
	fmt.Fprintf(out, "Environment: %s logical processors, Go %s, CPU features: %s.\n",
		ui.Paint(ui.DetailRole, fmt.Sprint(runtime.NumCPU())), ui.Paint(ui.DetailRole, runtime.Version()),
		cpuFeatures())
	fmt.Fprintf(out, "Output format: %s.\n", ui.Paint(ui.DetailRole, cfg.Format))
}

// cpuFeatures lists the SIMD extensions relevant to big-integer arithmetic.
func cpuFeatures() string {
	var features []string
	switch {
	case cpu.X86.HasAVX512F:
		features = append(features, "avx512")
	case cpu.X86.HasAVX2:
		features = append(features, "avx2")
	}
	if cpu.X86.HasBMI2 {
		features = append(features, "bmi2")
	}
	if cpu.X86.HasADX {
		features = append(features, "adx")
	}
	if cpu.ARM64.HasASIMD {
		features = append(features, "asimd")
	}
	if len(features) == 0 {
		return "none detected"
	}
	return strings.Join(features, ", ")
}

// PrintExecutionMode displays whether one generator runs or several are compared.
func PrintExecutionMode(generators []sequence.Generator, out io.Writer) {
	var modeDesc string
	switch len(generators) {
	case 0:
		modeDesc = "No generator selected"
	case 1:
		modeDesc = fmt.Sprintf("Single run with the %s generator", ui.Paint(ui.GeneratorRole, generators[0].Name()))
	default:
		names := make([]string, len(generators))
		for i, g := range generators {
			names[i] = g.Name()
		}
		modeDesc = fmt.Sprintf("Parallel comparison of %s", strings.Join(names, ", "))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n\n", modeDesc)
}
