package ui

import (
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	original := Current()
	defer Use(original)

	t.Setenv("NO_COLOR", "")
	Init(true)
	if Current().Name != Plain.Name {
		t.Error("Init(true) should select the plain palette")
	}

	t.Setenv("NO_COLOR", "1")
	Init(false)
	if Current().Name != Plain.Name {
		t.Error("NO_COLOR should select the plain palette")
	}
}

func TestPaint(t *testing.T) {
	original := Current()
	defer Use(original)

	Use(Colored)
	got := Paint(GeneratorRole, "big")
	if got != Colored.Generator.ANSI+"big"+Colored.Reset {
		t.Errorf("Paint with colors = %q", got)
	}
	if got := Heading("Duration"); !strings.HasPrefix(got, "\033[4m") {
		t.Errorf("Heading with colors = %q", got)
	}

	Use(Plain)
	for _, pick := range []func(Palette) Role{GeneratorRole, TimingRole, CountRole, DetailRole, SuccessRole, FailureRole} {
		if got := Paint(pick, "x"); got != "x" {
			t.Errorf("Paint without colors = %q, want %q", got, "x")
		}
	}
	if got := Heading("Duration"); got != "Duration" {
		t.Errorf("Heading without colors = %q", got)
	}
}

func TestColoredPalette_EveryRoleSet(t *testing.T) {
	roles := map[string]Role{
		"term": Colored.Term, "generator": Colored.Generator, "timing": Colored.Timing,
		"count": Colored.Count, "detail": Colored.Detail, "success": Colored.Success,
		"failure": Colored.Failure, "muted": Colored.Muted, "frame": Colored.Frame,
	}
	for name, r := range roles {
		if !strings.HasPrefix(r.ANSI, "\033[38;5;") {
			t.Errorf("%s: expected a 256-color escape, got %q", name, r.ANSI)
		}
		if r.Color == nil {
			t.Errorf("%s: missing lipgloss color", name)
		}
	}
}

func TestHeaderStyle(t *testing.T) {
	original := Current()
	defer Use(original)

	Use(Plain)
	if got := HeaderStyle().Render("Config"); !strings.Contains(got, "Config") {
		t.Errorf("HeaderStyle().Render() = %q", got)
	}
}
