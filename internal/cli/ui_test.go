package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/fibseq/internal/cli/mocks"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/ui"
)

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	rs := &realSpinner{spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))}

	// Just verify these methods don't panic
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestDisplayProgress(t *testing.T) {
	ui.Use(ui.Plain)
	defer ui.Use(ui.Colored)

	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)

	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()
	newSpinner = func(io.Writer) Spinner { return mockS }

	gomock.InOrder(
		mockS.EXPECT().UpdateSuffix(gomock.Any()),
		mockS.EXPECT().Start(),
		mockS.EXPECT().UpdateSuffix(gomock.Any()).Times(2),
		mockS.EXPECT().Stop(),
	)

	progressChan := make(chan orchestration.ProgressUpdate, 2)
	progressChan <- orchestration.ProgressUpdate{Index: 0, Name: "uint64"}
	progressChan <- orchestration.ProgressUpdate{Index: 1, Name: "big"}
	close(progressChan)

	var wg sync.WaitGroup
	wg.Add(1)
	var out bytes.Buffer
	DisplayProgress(&wg, progressChan, 2, &out)
	wg.Wait()

	if !strings.Contains(out.String(), "2/2 generators finished") {
		t.Errorf("missing completion line, got %q", out.String())
	}
}

func TestDisplayProgress_ZeroGenerators(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan orchestration.ProgressUpdate)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "░░░░"},
		{0.5, "██░░"},
		{1, "████"},
		{2, "████"},
		{-1, "░░░░"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.progress, 4); got != tt.want {
			t.Errorf("progressBar(%v) = %q, want %q", tt.progress, got, tt.want)
		}
	}
}
