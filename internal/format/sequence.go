package format

import (
	"encoding/json"
	"math/big"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// Output format names accepted by Format.
const (
	List  = "list"
	Lines = "lines"
	JSON  = "json"
	YAML  = "yaml"
)

// Names lists every supported output format.
var Names = []string{List, Lines, JSON, YAML}

// FormatList renders a sequence as a bracketed, comma-separated list:
// "[0, 1, 1, 2]". An empty sequence renders as "[]".
func FormatList(seq []*big.Int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range seq {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}

// FormatLines renders one term per line with no trailing newline.
func FormatLines(seq []*big.Int) string {
	parts := make([]string, len(seq))
	for i, v := range seq {
		parts[i] = v.String()
	}
	return strings.Join(parts, "\n")
}

// Document is the structured form used by the JSON and YAML encodings.
// Terms are decimal strings so that values beyond 2^53 survive JSON readers.
type Document struct {
	Length int      `json:"length" yaml:"length"`
	Terms  []string `json:"terms" yaml:"terms"`
}

// NewDocument builds a Document for seq.
func NewDocument(seq []*big.Int) Document {
	terms := make([]string, len(seq))
	for i, v := range seq {
		terms[i] = v.String()
	}
	return Document{Length: len(seq), Terms: terms}
}

// FormatJSON renders seq as a compact JSON Document.
func FormatJSON(seq []*big.Int) (string, error) {
	data, err := json.Marshal(NewDocument(seq))
	if err != nil {
		return "", apperrors.WrapError(err, "encoding json")
	}
	return string(data), nil
}

// FormatYAML renders seq as a YAML Document without a trailing newline.
func FormatYAML(seq []*big.Int) (string, error) {
	data, err := yaml.Marshal(NewDocument(seq))
	if err != nil {
		return "", apperrors.WrapError(err, "encoding yaml")
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// Format renders seq in the named format. An unknown name is a ConfigError.
func Format(name string, seq []*big.Int) (string, error) {
	switch name {
	case List, "":
		return FormatList(seq), nil
	case Lines:
		return FormatLines(seq), nil
	case JSON:
		return FormatJSON(seq)
	case YAML:
		return FormatYAML(seq)
	default:
		return "", apperrors.NewConfigError("unknown format %q (available: %s)", name, strings.Join(Names, ", "))
	}
}

// IsValid reports whether name is a supported format.
func IsValid(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}
