package config

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

var testAlgos = []string{"big", "uint64"}

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	var buf bytes.Buffer
	return ParseConfig("fibseq", args, &buf, testAlgos)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	if cfg.N != DefaultN || cfg.Algo != DefaultAlgo || cfg.Format != "list" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Timeout != DefaultTimeout || cfg.MaxN != DefaultMaxN || cfg.LogLevel != DefaultLogLevel {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := parse(t, "-n", "25", "--algo", "big", "--format", "json", "-o", "out.txt", "-q", "--timeout", "5s")
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	want := AppConfig{
		N: 25, Algo: "big", Format: "json", OutputFile: "out.txt", Quiet: true,
		Timeout: 5 * time.Second, Addr: DefaultAddr, LogLevel: DefaultLogLevel, MaxN: DefaultMaxN,
	}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantValErr bool
		wantCfgErr bool
	}{
		{"negative n", []string{"-n", "-1"}, true, false},
		{"n above max", []string{"-n", "11", "--max-n", "10"}, true, false},
		{"zero max", []string{"--max-n", "0"}, true, false},
		{"non-integer n", []string{"-n", "ten"}, false, true},
		{"unknown algo", []string{"--algo", "slow"}, false, true},
		{"unknown format", []string{"--format", "xml"}, false, true},
		{"unknown log level", []string{"--log-level", "chatty"}, false, true},
		{"tui and serve", []string{"--tui", "--serve"}, false, true},
		{"stray argument", []string{"10"}, false, true},
		{"zero timeout", []string{"--timeout", "0s"}, true, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			var valErr apperrors.ValidationError
			var cfgErr apperrors.ConfigError
			if errors.As(err, &valErr) != tt.wantValErr {
				t.Errorf("ValidationError = %v, want %v (err: %v)", !tt.wantValErr, tt.wantValErr, err)
			}
			if errors.As(err, &cfgErr) != tt.wantCfgErr {
				t.Errorf("ConfigError = %v, want %v (err: %v)", !tt.wantCfgErr, tt.wantCfgErr, err)
			}
			if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d, want %d", apperrors.ExitCodeFor(err), apperrors.ExitErrorConfig)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("fibseq", []string{"--help"}, &buf, testAlgos)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(buf.String(), "Usage: fibseq") {
		t.Errorf("usage not printed: %s", buf.String())
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FIBSEQ_N", "20")
	t.Setenv("FIBSEQ_FORMAT", "lines")
	t.Setenv("FIBSEQ_QUIET", "yes")
	t.Setenv("FIBSEQ_TIMEOUT", "30s")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	if cfg.N != 20 || cfg.Format != "lines" || !cfg.Quiet || cfg.Timeout != 30*time.Second {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestParseConfig_FlagsBeatEnv(t *testing.T) {
	t.Setenv("FIBSEQ_N", "20")
	t.Setenv("FIBSEQ_QUIET", "true")

	cfg, err := parse(t, "-n", "5", "-quiet=false")
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	if cfg.N != 5 {
		t.Errorf("N = %d, want 5 (flag should win)", cfg.N)
	}
	if cfg.Quiet {
		t.Error("Quiet = true, want false (flag should win)")
	}
}

func TestParseConfig_ServeMaxN(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  string
		want int
	}{
		{"cli keeps default", nil, "", DefaultMaxN},
		{"serve lowers default", []string{"--serve"}, "", DefaultServeMaxN},
		{"serve with flag", []string{"--serve", "--max-n", "20000"}, "", 20000},
		{"serve with env", []string{"--serve"}, "12000", 12000},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("FIBSEQ_MAX_N", tt.env)
			}
			cfg, err := parse(t, tt.args...)
			if err != nil {
				t.Fatalf("ParseConfig() error: %v", err)
			}
			if cfg.MaxN != tt.want {
				t.Errorf("MaxN = %d, want %d", cfg.MaxN, tt.want)
			}
		})
	}
}

func TestParseConfig_InvalidEnv(t *testing.T) {
	tests := []struct {
		key, val string
	}{
		{"FIBSEQ_N", "abc"},
		{"FIBSEQ_N", "-4"},
		{"FIBSEQ_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.key+"="+tt.val, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := parse(t); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"TRUE", false, true},
		{"1", false, true},
		{"no", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}
