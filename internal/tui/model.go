package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/fibbridge/internal/errors"
	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/format"
	"github.com/agbru/fibbridge/internal/metrics"
	"github.com/agbru/fibbridge/internal/orchestration"
	"github.com/agbru/fibbridge/internal/sysmon"
)

const (
	// sampleInterval is the refresh period of the header figures.
	sampleInterval = time.Second

	// valueLimit and valueEdges control truncation of values in the history.
	valueLimit = 60
	valueEdges = 20

	progressBarWidth = 30
)

// Config holds the settings of a TUI session.
type Config struct {
	// Algo is the initial backend name or "all".
	Algo string
	// Timeout bounds each calculation.
	Timeout time.Duration
	// Options is passed to the backends.
	Options fibonacci.Options
	// Version is shown in the header.
	Version string
}

// Model is the root bubbletea model.
type Model struct {
	input  textinput.Model
	help   help.Model
	keys   KeyMap
	header HeaderModel

	factory fibonacci.CalculatorFactory
	cfg     Config
	algo    string

	history []HistoryEntry
	inputs  inputHistory
	status  string

	running    bool
	progress   float64
	eta        time.Duration
	generation uint64
	cancel     context.CancelFunc

	parentCtx context.Context
	ref       *programRef
	sampler   func() sysmon.Stats
	memory    *metrics.MemoryCollector

	width  int
	height int
}

// NewModel creates a TUI model over the given backends.
func NewModel(parentCtx context.Context, factory fibonacci.CalculatorFactory, cfg Config) Model {
	ti := textinput.New()
	ti.Prompt = "F(n) › "
	ti.Placeholder = "index, algo <name>, or clear"
	ti.CharLimit = 64
	ti.Focus()

	algo := cfg.Algo
	if algo == "" {
		algo = orchestration.AlgoAll
	}

	return Model{
		input:     ti,
		help:      help.New(),
		keys:      DefaultKeyMap(),
		header:    NewHeaderModel(cfg.Version, algo),
		factory:   factory,
		cfg:       cfg,
		algo:      algo,
		parentCtx: parentCtx,
		ref:       &programRef{},
		sampler:   sysmon.Sample,
		memory:    metrics.NewMemoryCollector(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, sampleCmd(m.sampler, m.memory), tickCmd())
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-lipgloss.Width(m.input.Prompt)-6)
		return m, nil

	case ProgressMsg:
		if m.running && msg.Generation == m.generation {
			m.progress = msg.AverageProgress
			m.eta = msg.ETA
		}
		return m, nil

	case CalculationDoneMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a canceled calculation
		}
		m.finish()
		m.history = append([]HistoryEntry{msg.Entry}, m.history...)
		if len(m.history) > MaxHistory {
			m.history = m.history[:MaxHistory]
		}
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleCmd(m.sampler, m.memory), tickCmd())

	case SysStatsMsg:
		m.header.SetSysStats(sysmon.Stats(msg))
		return m, nil

	case MemStatsMsg:
		m.header.SetMemStats(metrics.MemorySnapshot(msg))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) finish() {
	m.running = false
	m.progress = 0
	m.eta = 0
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if m.running && m.cancel != nil {
			m.cancel()
			m.status = "canceling..."
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.history = nil
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if line, ok := m.inputs.Prev(); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.input.SetValue(m.inputs.Next())
		m.input.CursorEnd()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if line == "" {
			return m, nil
		}
		m.inputs.Add(line)
		return m.handleLine(line)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleLine(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "clear":
		m.history = nil
		m.status = ""
		return m, nil
	case "algo":
		if len(fields) != 2 {
			m.status = "usage: algo <name>"
			return m, nil
		}
		name := strings.ToLower(fields[1])
		if err := orchestration.ValidateAlgo(name, m.factory); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.algo = name
		m.header.SetAlgo(name)
		m.status = "backend set to " + name
		return m, nil
	}

	n, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil || len(fields) != 1 {
		m.status = fmt.Sprintf("not an index or command: %q", line)
		return m, nil
	}
	if m.running {
		m.status = "a calculation is already running (esc cancels it)"
		return m, nil
	}
	return m.startCalculation(n)
}

func (m Model) startCalculation(n uint64) (tea.Model, tea.Cmd) {
	calcs := orchestration.GetCalculatorsToRun(m.algo, m.factory)
	if len(calcs) == 0 {
		m.status = "no backend available for " + m.algo
		return m, nil
	}

	timeout := m.cfg.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(m.parentCtx, timeout)

	m.generation++
	m.cancel = cancel
	m.running = true
	m.progress = 0
	m.status = ""
	return m, calculateCmd(m.ref, ctx, calcs, n, m.algo, m.cfg.Options, m.generation)
}

// calculateCmd runs the backends through the orchestrator and reports the
// outcome as a CalculationDoneMsg.
func calculateCmd(ref *programRef, ctx context.Context, calcs []fibonacci.Calculator, n uint64, algo string, opts fibonacci.Options, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{}
		results := orchestration.ExecuteCalculations(ctx, calcs, n, opts, reporter, io.Discard)
		code := orchestration.AnalyzeComparisonResults(results, orchestration.PresentationOptions{N: n}, presenter, presenter, io.Discard)
		return CalculationDoneMsg{Generation: gen, Entry: presenter.Entry(n, algo, code)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(sampleInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleCmd(sampler func() sysmon.Stats, memory *metrics.MemoryCollector) tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return SysStatsMsg(sampler()) },
		func() tea.Msg { return MemStatsMsg(memory.Snapshot()) },
	)
}

// View renders the whole screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.header.View())
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	limit := len(m.history)
	if m.height > 0 {
		// header, input panel, status, blank line and help take about 8 rows.
		limit = min(limit, max(1, m.height-8))
	}
	for _, e := range m.history[:limit] {
		b.WriteString(renderEntry(e))
		b.WriteString("\n")
	}
	if len(m.history) == 0 {
		b.WriteString(labelStyle.Render("No results yet. Type an index and press enter."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statusLine() string {
	if m.running {
		bar := format.FormatProgressBarWithETA(m.progress, m.eta, progressBarWidth)
		return statusRunStyle.Render("running ") + progressStyle.Render(bar)
	}
	if m.status != "" {
		return labelStyle.Render(m.status)
	}
	return statusIdleStyle.Render("ready")
}

func renderEntry(e HistoryEntry) string {
	if e.Err != nil {
		msg := e.Err.Error()
		switch e.ExitCode {
		case apperrors.ExitErrorTimeout:
			msg = "timed out after " + format.FormatExecutionDuration(e.Duration)
		case apperrors.ExitErrorCanceled:
			msg = "canceled"
		}
		if errors.Is(e.Err, errMismatch) {
			msg = errMismatch.Error()
		}
		return errorStyle.Render(fmt.Sprintf("✗ F(%d): %s", e.N, msg))
	}

	value, _ := format.TruncateDigits(e.Value, valueLimit, valueEdges)
	meta := fmt.Sprintf("  %s digits, %s, %s",
		format.FormatNumberString(strconv.Itoa(len(e.Value))),
		format.FormatExecutionDuration(e.Duration),
		e.Backend)
	if e.Backends > 1 {
		meta += fmt.Sprintf(", %d backends agree", e.Backends)
	}
	return successStyle.Render("✓ ") +
		labelStyle.Render(fmt.Sprintf("F(%d) = ", e.N)) +
		valueStyle.Render(value) +
		labelStyle.Render(meta)
}

// Run starts the TUI and blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, factory fibonacci.CalculatorFactory, cfg Config) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, factory, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	final, err := p.Run()
	if fm, ok := final.(Model); ok && fm.cancel != nil {
		fm.cancel()
	}
	switch {
	case err == nil:
		return apperrors.ExitSuccess
	case errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		return apperrors.ExitCodeFor(ctx.Err())
	default:
		return apperrors.ExitErrorGeneric
	}
}
