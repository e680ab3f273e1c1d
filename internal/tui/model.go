// Package tui is the interactive terminal calculator: an expression input,
// a scrolling results panel and a status line fed by the evaluator's
// operation events.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/darksharpness/int2048/internal/cli"
	apperrors "github.com/darksharpness/int2048/internal/errors"
	"github.com/darksharpness/int2048/internal/eval"
	"github.com/darksharpness/int2048/internal/metrics"
	"github.com/darksharpness/int2048/internal/sysmon"
)

// Layout constants.
const (
	headerHeight  = 1
	statsHeight   = 1
	inputHeight   = 1
	helpHeight    = 1
	panelBorders  = 2
	minBodyHeight = 3
	// memorySampleInterval paces heap readings for the status line.
	memorySampleInterval = time.Second
)

// Options configures a TUI session.
type Options struct {
	// Timeout bounds each expression. Zero means no limit.
	Timeout time.Duration
	// Version is shown in the header.
	Version string
}

// Messages.
type (
	// EvalDoneMsg carries the outcome of one evaluation.
	EvalDoneMsg struct {
		Generation uint64
		Record     cli.Record
	}
	// OperationMsg carries one operation reported by the evaluator.
	OperationMsg struct {
		Op eval.Operation
	}
	// MemStatsMsg carries a heap reading and the machine-wide usage.
	MemStatsMsg struct {
		Snapshot metrics.MemorySnapshot
		System   sysmon.Usage
	}
	// ContextCancelledMsg reports that the session context ended.
	ContextCancelledMsg struct {
		Err error
	}
)

// evaluation holds the state of the expression being evaluated.
type evaluation struct {
	generation uint64
	running    bool
	cancel     context.CancelFunc
}

// Model is the root bubbletea model of the calculator.
type Model struct {
	header HeaderModel
	stats  StatsModel
	input  textinput.Model
	help   help.Model
	keymap KeyMap

	evaluation

	parentCtx context.Context
	ev        *eval.Evaluator
	mem       *metrics.MemoryCollector
	opts      Options
	ref       *programRef

	records []cli.Record
	recall  int // history index while browsing with up/down
	scroll  int // lines scrolled back from the newest

	width, height int
	exitCode      int
}

// NewModel creates a calculator model over ev.
func NewModel(parentCtx context.Context, ev *eval.Evaluator, opts Options) Model {
	input := textinput.New()
	input.Prompt = "int> "
	input.PromptStyle = promptStyle
	input.Placeholder = "expression, e.g. (2+3)*-7 / 4"
	input.Focus()

	return Model{
		header:    NewHeaderModel(opts.Version),
		stats:     NewStatsModel(),
		input:     input,
		help:      help.New(),
		keymap:    DefaultKeyMap(),
		parentCtx: parentCtx,
		ev:        ev,
		mem:       metrics.NewMemoryCollector(),
		opts:      opts,
		ref:       &programRef{},
		exitCode:  apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, sampleMemoryCmd(m.parentCtx, m.mem), watchContextCmd(m.parentCtx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.header.SetWidth(m.width)
		m.stats.SetWidth(m.width)
		m.help.Width = m.width
		m.input.Width = max(m.width-len(m.input.Prompt)-1, 1)
		return m, nil

	case EvalDoneMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.running = false
		m.cancel = nil
		m.records = append(m.records, msg.Record)
		m.recall = len(m.records)
		m.scroll = 0
		m.header.SetLast(msg.Record.Duration)
		m.stats.AddDuration(msg.Record.Duration)
		return m, nil

	case OperationMsg:
		m.stats.Observe(msg.Op)
		return m, nil

	case MemStatsMsg:
		m.stats.UpdateMemory(msg.Snapshot)
		m.stats.UpdateSystem(msg.System)
		return m, tea.Tick(memorySampleInterval, func(time.Time) tea.Msg {
			return sampleMemoryCmd(m.parentCtx, m.mem)()
		})

	case ContextCancelledMsg:
		if m.cancel != nil {
			m.cancel()
		}
		m.exitCode = apperrors.ExitCodeFromError(msg.Err)
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Cancel):
		if m.running && m.cancel != nil {
			m.cancel()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		return m.submit()

	case key.Matches(msg, m.keymap.Clear):
		if m.running {
			return m, nil
		}
		m.ev.Reset()
		m.records = nil
		m.recall, m.scroll = 0, 0
		m.stats.Reset()
		return m, nil

	case key.Matches(msg, m.keymap.HistoryPrev):
		if m.recall > 0 {
			m.recall--
			m.input.SetValue(m.records[m.recall].Expr)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keymap.HistoryNext):
		if m.recall < len(m.records) {
			m.recall++
		}
		if m.recall == len(m.records) {
			m.input.SetValue("")
		} else {
			m.input.SetValue(m.records[m.recall].Expr)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keymap.PageUp):
		m.scroll += max(m.bodyHeight()-1, 1)
		return m, nil

	case key.Matches(msg, m.keymap.PageDown):
		m.scroll = max(m.scroll-max(m.bodyHeight()-1, 1), 0)
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts evaluating the input line. Only one evaluation runs at a
// time since the evaluator is not safe for concurrent use.
func (m Model) submit() (tea.Model, tea.Cmd) {
	expr := strings.TrimSpace(m.input.Value())
	if expr == "" || m.running {
		return m, nil
	}
	switch strings.ToLower(expr) {
	case "exit", "quit":
		return m, tea.Quit
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if m.opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(m.parentCtx, m.opts.Timeout)
	} else {
		ctx, cancel = context.WithCancel(m.parentCtx)
	}
	m.generation++
	m.running = true
	m.cancel = cancel
	m.input.Reset()
	return m, evalCmd(ctx, cancel, m.ev, expr, m.generation)
}

// bodyHeight returns the number of result lines that fit in the panel.
func (m Model) bodyHeight() int {
	h := m.height - headerHeight - statsHeight - inputHeight - helpHeight - panelBorders
	if m.help.ShowAll {
		h -= 3
	}
	return max(h, minBodyHeight)
}

// resultLines renders the history as display lines, oldest first.
func (m Model) resultLines() []string {
	out := cli.OutputConfig{Truncate: true}
	var lines []string
	for _, rec := range m.records {
		lines = append(lines, exprStyle.Render("› "+rec.Expr))
		if rec.Err != nil {
			for _, l := range strings.Split(cli.FormatError(rec), "\n") {
				lines = append(lines, errorStyle.Render(l))
			}
			continue
		}
		lines = append(lines, resultStyle.Render(cli.FormatResult(rec, out))+
			dimStyle.Render("  "+cli.FormatExecutionDuration(rec.Duration)))
	}
	return lines
}

// View renders the calculator.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	lines := m.resultLines()
	height := m.bodyHeight()
	end := max(len(lines)-m.scroll, 0)
	start := max(end-height, 0)
	visible := lines[start:end]
	for len(visible) < height {
		visible = append([]string{""}, visible...)
	}
	body := panelStyle.Width(max(m.width-2, 1)).Render(strings.Join(visible, "\n"))

	status := m.stats.View()
	if m.running {
		status = statusBusyStyle.Render("evaluating… (esc to cancel)  ") + status
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		status,
		m.input.View(),
		m.help.View(m.keymap),
	)
}

// Run is the entry point of the TUI mode. It returns a process exit code.
func Run(ctx context.Context, ev *eval.Evaluator, opts Options) int {
	initTUIStyles()

	model := NewModel(ctx, ev, opts)
	bridge := operationBridge{ref: model.ref}
	ev.Register(bridge)
	defer ev.Unregister(bridge)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if m, ok := finalModel.(Model); ok {
		if m.cancel != nil {
			m.cancel()
		}
		if m.exitCode != apperrors.ExitSuccess {
			return m.exitCode
		}
	}
	if ctx.Err() != nil {
		return apperrors.ExitCodeFromError(ctx.Err())
	}
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// evalCmd evaluates expr off the UI goroutine.
func evalCmd(ctx context.Context, cancel context.CancelFunc, ev *eval.Evaluator, expr string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		defer cancel()
		return EvalDoneMsg{Generation: gen, Record: cli.Evaluate(ctx, ev, expr, nil)}
	}
}

// sampleMemoryCmd takes one heap and system reading. Init issues the
// first; Update schedules the rest.
func sampleMemoryCmd(ctx context.Context, mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg{Snapshot: mc.Snapshot(), System: sysmon.Sample(ctx)}
	}
}

// watchContextCmd waits for the session context to end.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
