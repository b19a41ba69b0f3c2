package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Role is one display role rendered either as a raw ANSI escape (CLI) or
// as a lipgloss color (explorer).
type Role struct {
	ANSI  string
	Color lipgloss.TerminalColor
}

// Palette maps every display role of the application to a color.
type Palette struct {
	Name string

	Term      Role // sequence values
	Generator Role // generator names
	Timing    Role // durations and timeouts
	Count     Role // n and term counts
	Detail    Role // paths, environment facts
	Success   Role
	Failure   Role
	Muted     Role // labels, separators
	Frame     Role // explorer borders

	Underline string
	Reset     string
}

func role(ansi256 string, hex string) Role {
	return Role{ANSI: "\033[38;5;" + ansi256 + "m", Color: lipgloss.Color(hex)}
}

var noColor = Role{Color: lipgloss.NoColor{}}

var (
	// Colored is the default palette.
	Colored = Palette{
		Name:      "color",
		Term:      role("252", "#E0E0E0"),
		Generator: role("39", "#00AFFF"),
		Timing:    role("220", "#FFD700"),
		Count:     role("208", "#FF8C00"),
		Detail:    role("245", "#8A8A8A"),
		Success:   role("82", "#9ECE6A"),
		Failure:   role("196", "#FF4444"),
		Muted:     role("241", "#666666"),
		Frame:     role("202", "#FF6600"),
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// Plain disables colors. Used for --no-color and NO_COLOR.
	Plain = Palette{
		Name: "plain",
		Term: noColor, Generator: noColor, Timing: noColor, Count: noColor,
		Detail: noColor, Success: noColor, Failure: noColor, Muted: noColor, Frame: noColor,
	}

	current   = Colored
	currentMu sync.RWMutex
)

// Current returns the active palette.
func Current() Palette {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// Use installs p as the active palette. Tests use it to pin and restore state.
func Use(p Palette) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = p
}

// Init selects Plain when noColor is set or NO_COLOR is present in the
// environment (https://no-color.org/), Colored otherwise.
func Init(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); set || noColor {
		Use(Plain)
		return
	}
	Use(Colored)
}

// Paint wraps s in the ANSI escape of the role picked from the active
// palette. With the plain palette s is returned unchanged.
func Paint(pick func(Palette) Role, s string) string {
	p := Current()
	r := pick(p)
	if r.ANSI == "" {
		return s
	}
	return r.ANSI + s + p.Reset
}

// Role selectors for Paint.
func GeneratorRole(p Palette) Role { return p.Generator }
func TimingRole(p Palette) Role    { return p.Timing }
func CountRole(p Palette) Role     { return p.Count }
func DetailRole(p Palette) Role    { return p.Detail }
func SuccessRole(p Palette) Role   { return p.Success }
func FailureRole(p Palette) Role   { return p.Failure }

// Heading underlines s when colors are enabled.
func Heading(s string) string {
	p := Current()
	if p.Underline == "" {
		return s
	}
	return p.Underline + s + p.Reset
}

// HeaderStyle is the lipgloss style for section banners in verbose output.
func HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Current().Count.Color)
}
