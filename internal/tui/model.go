// Package tui implements the interactive sequence explorer launched by --tui.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibseq/internal/config"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/sequence"
)

// PageStep is how far pgup/pgdown move n.
const PageStep = 10

// SequenceMsg carries the outcome of a background generation.
type SequenceMsg struct {
	Generation uint64
	N          int
	Result     orchestration.GenerationResult
	Err        error
}

// ContextCancelledMsg reports that the parent context ended.
type ContextCancelledMsg struct{ Err error }

// Model is the root bubbletea model of the explorer.
type Model struct {
	ctx     context.Context
	factory *sequence.Factory
	algo    string
	timeout time.Duration

	initialN int
	maxN     int
	n        int

	// generation tags requests so stale results are dropped.
	generation uint64
	computing  bool
	result     orchestration.GenerationResult
	err        error
	exitCode   int

	keymap KeyMap
	help   help.Model
	width  int
	height int
}

// NewModel creates an explorer starting at cfg.N.
func NewModel(ctx context.Context, factory *sequence.Factory, cfg config.AppConfig) Model {
	return Model{
		ctx:       ctx,
		factory:   factory,
		algo:      cfg.Algo,
		timeout:   cfg.Timeout,
		initialN:  cfg.N,
		maxN:      cfg.MaxN,
		n:         cfg.N,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		computing: true,
		exitCode:  apperrors.ExitSuccess,
	}
}

// N returns the current prefix length.
func (m Model) N() int { return m.n }

// Init starts the first generation and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.generateCmd(), watchContextCmd(m.ctx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case SequenceMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.computing = false
		m.result = msg.Result
		m.err = msg.Err
		return m, nil

	case ContextCancelledMsg:
		m.exitCode = apperrors.ExitCodeFor(msg.Err)
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keymap.Up):
		return m.setN(m.n + 1)
	case key.Matches(msg, m.keymap.Down):
		return m.setN(m.n - 1)
	case key.Matches(msg, m.keymap.PageUp):
		return m.setN(m.n + PageStep)
	case key.Matches(msg, m.keymap.PageDown):
		return m.setN(m.n - PageStep)
	case key.Matches(msg, m.keymap.Reset):
		return m.setN(m.initialN)
	}
	return m, nil
}

// setN clamps n to [0, maxN] and regenerates when it changed.
func (m Model) setN(n int) (tea.Model, tea.Cmd) {
	n = max(n, 0)
	if m.maxN > 0 {
		n = min(n, m.maxN)
	}
	if n == m.n {
		return m, nil
	}
	m.n = n
	m.generation++
	m.computing = true
	return m, m.generateCmd()
}

// generateCmd runs the configured generators for the current n in the
// background, tagged with the current generation.
func (m Model) generateCmd() tea.Cmd {
	ctx, gen, n := m.ctx, m.generation, m.n
	factory, algo, timeout := m.factory, m.algo, m.timeout

	return func() tea.Msg {
		res, err := generate(ctx, factory, algo, n, timeout)
		return SequenceMsg{Generation: gen, N: n, Result: res, Err: err}
	}
}

// generate runs the orchestration pipeline and captures the winning result.
func generate(ctx context.Context, factory *sequence.Factory, algo string, n int, timeout time.Duration) (orchestration.GenerationResult, error) {
	gens, err := orchestration.GetGeneratorsToRun(algo, n, factory)
	if err != nil {
		return orchestration.GenerationResult{}, err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	results := orchestration.ExecuteGenerations(ctx, gens, n, orchestration.NullProgressReporter{}, io.Discard)
	p := &capturePresenter{}
	var diag bytes.Buffer
	code := orchestration.AnalyzeResults(results, orchestration.PresentationOptions{N: n, Quiet: true}, p, io.Discard, &diag)
	if code != apperrors.ExitSuccess {
		return orchestration.GenerationResult{}, fmt.Errorf("%s", strings.TrimSpace(diag.String()))
	}
	return p.result, nil
}

// capturePresenter keeps the winning result instead of printing it.
type capturePresenter struct {
	result orchestration.GenerationResult
}

func (*capturePresenter) PresentComparisonTable([]orchestration.GenerationResult, io.Writer) {}

func (p *capturePresenter) PresentSequence(res orchestration.GenerationResult, _ orchestration.PresentationOptions, _ io.Writer) error {
	p.result = res
	return nil
}

func (*capturePresenter) HandleError(err error, _ time.Duration, out io.Writer) int {
	fmt.Fprint(out, err.Error())
	return apperrors.ExitCodeFor(err)
}

// View renders the explorer.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	inner := max(width-4, 10)

	title := titleStyle.Render("Fibonacci explorer")
	stats := []string{
		labelStyle.Render("n = ") + valueStyle.Render(fmt.Sprint(m.n)),
	}
	if m.result.Name != "" {
		stats = append(stats,
			labelStyle.Render("generator ")+generatorStyle.Render(m.result.Name),
			labelStyle.Render("time ")+timingStyle.Render(format.FormatExecutionDuration(m.result.Duration)),
		)
	}
	header := title + "  " + strings.Join(stats, labelStyle.Render(" | "))

	var body string
	switch {
	case m.err != nil:
		body = errorStyle.Render("Error: " + m.err.Error())
	case m.computing && m.result.Sequence == nil:
		body = statusStyle.Render("Generating…")
	default:
		body = m.renderSequence(inner)
	}
	if m.computing && m.result.Sequence != nil {
		body = statusStyle.Render("Updating…") + "\n" + body
	}

	style := panelStyle.Width(inner)
	if m.height > 0 {
		style = style.MaxHeight(max(m.height-4, 3))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, style.Render(body), m.help.View(m.keymap))
}

func (m Model) renderSequence(width int) string {
	seq := m.result.Sequence
	lines := []string{termsStyle.Width(width).Render(format.FormatList(seq))}
	if len(seq) > 0 {
		last := lastTerm(seq)
		lines = append(lines,
			"",
			labelStyle.Render("last term ")+valueStyle.Render(fmt.Sprintf("%d digits, %d bits", len(last.String()), last.BitLen())),
			labelStyle.Render("memory    ")+valueStyle.Render(metrics.FormatBytes(metrics.SequenceFootprint(seq))),
			labelStyle.Render("growth    ")+sparklineStyle.Render(RenderSparkline(GrowthSeries(seq, width-10))),
		)
	}
	return strings.Join(lines, "\n")
}

func lastTerm(seq []*big.Int) *big.Int { return seq[len(seq)-1] }

// watchContextCmd waits for ctx to end and reports it.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}

// Run is the entry point for --tui. It blocks until the user quits or ctx
// ends and returns the exit code.
func Run(ctx context.Context, factory *sequence.Factory, cfg config.AppConfig, opts ...tea.ProgramOption) int {
	initTUIStyles()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(NewModel(ctx, factory, cfg), opts...)
	final, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := final.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}
