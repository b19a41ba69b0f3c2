package cli

import (
	"fmt"
	"io"
	"strings"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/format"
)

// FlagCompletion describes a CLI flag for shell completion generation.
type FlagCompletion struct {
	Long   string   // long flag name without "--"
	Short  string   // short flag without "-"
	Help   string   // description text
	Values []string // suggested values (nil = boolean or free-form)
	IsFile bool     // true if the flag takes a file path
	IsAlgo bool     // true if values come from the generator list
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Help: "Show version information"},
	{Short: "n", Help: "Number of terms to generate"},
	{Long: "algo", Help: "Generator to use", IsAlgo: true},
	{Long: "format", Help: "Output format", Values: format.Names},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true},
	{Long: "quiet", Short: "q", Help: "Print only the sequence"},
	{Long: "verbose", Short: "v", Help: "Print configuration and timings"},
	{Long: "timeout", Help: "Maximum generation time", Values: []string{"1s", "10s", "1m", "5m"}},
	{Long: "tui", Help: "Launch the interactive explorer"},
	{Long: "serve", Help: "Run the HTTP service"},
	{Long: "addr", Help: "Listen address for --serve"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}},
	{Long: "max-n", Help: "Largest accepted N"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh" or
// "fish"). algorithms are the registered generator names.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	algos := append([]string{"auto", "all"}, algorithms...)
	switch shell {
	case "bash":
		return generateBashCompletion(out, algos)
	case "zsh":
		return generateZshCompletion(out, algos)
	case "fish":
		return generateFishCompletion(out, algos)
	default:
		return apperrors.NewConfigError("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

func flagValues(f FlagCompletion, algos []string) []string {
	if f.IsAlgo {
		return algos
	}
	return f.Values
}

func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	return names
}

func generateBashCompletion(out io.Writer, algos []string) error {
	var all []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		names := flagNames(f)
		all = append(all, names...)
		switch {
		case f.IsFile:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"$cur\") )\n            return 0\n            ;;\n", strings.Join(names, "|"))
		case len(flagValues(f, algos)) > 0:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n            return 0\n            ;;\n",
				strings.Join(names, "|"), strings.Join(flagValues(f, algos), " "))
		}
	}

	_, err := fmt.Fprintf(out, `# bash completion for fibseq
_fibseq() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    case "$prev" in
%s    esac

    COMPREPLY=( $(compgen -W "%s" -- "$cur") )
    return 0
}
complete -F _fibseq fibseq
`, cases.String(), strings.Join(all, " "))
	return err
}

func generateZshCompletion(out io.Writer, algos []string) error {
	var args strings.Builder
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			fmt.Fprintf(&args, "    '%s[%s]", name, f.Help)
			switch {
			case f.IsFile:
				args.WriteString(":file:_files")
			case len(flagValues(f, algos)) > 0:
				fmt.Fprintf(&args, ":value:(%s)", strings.Join(flagValues(f, algos), " "))
			}
			args.WriteString("' \\\n")
		}
	}
	_, err := fmt.Fprintf(out, "#compdef fibseq\n\n_arguments \\\n%s    && return 0\n", args.String())
	return err
}

func generateFishCompletion(out io.Writer, algos []string) error {
	fmt.Fprintln(out, "# fish completion for fibseq")
	for _, f := range flagRegistry {
		line := "complete -c fibseq"
		if f.Short != "" {
			line += " -s " + f.Short
		}
		if f.Long != "" {
			line += " -l " + f.Long
		}
		switch {
		case f.IsFile:
			line += " -r -F"
		case len(flagValues(f, algos)) > 0:
			line += fmt.Sprintf(" -x -a '%s'", strings.Join(flagValues(f, algos), " "))
		}
		line += fmt.Sprintf(" -d '%s'", f.Help)
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
