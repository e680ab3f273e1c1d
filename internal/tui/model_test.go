package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/darksharpness/int2048/internal/errors"
	"github.com/darksharpness/int2048/internal/eval"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(context.Background(), eval.New(eval.Options{}), Options{Version: "v1.2.3"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	return next.(Model)
}

func typeText(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

// submitAndWait types expr, presses enter and feeds the evaluation result
// back into the model.
func submitAndWait(t *testing.T, m Model, expr string) Model {
	t.Helper()
	m = typeText(m, expr)
	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil || !m.running {
		t.Fatalf("enter on %q did not start an evaluation", expr)
	}
	done, ok := cmd().(EvalDoneMsg)
	if !ok {
		t.Fatalf("evaluation command returned %T", cmd())
	}
	next, _ := m.Update(done)
	return next.(Model)
}

func TestModelEvaluates(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = submitAndWait(t, m, "(2+3)*-7 / 4")
	m = submitAndWait(t, m, "ans * ans")

	if m.running || len(m.records) != 2 {
		t.Fatalf("running=%v records=%d", m.running, len(m.records))
	}
	if got := m.records[1].Result.String(); got != "64" {
		t.Errorf("ans * ans = %s, want 64", got)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	view := m.View()
	for _, want := range []string{"int2048 v1.2.3", "› (2+3)*-7 / 4", "-8", "› ans * ans", "64", "int> "} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestModelShowsErrors(t *testing.T) {
	t.Parallel()
	m := submitAndWait(t, newTestModel(t), "1 / (2 - 2)")
	if m.records[0].Err == nil {
		t.Fatal("division by zero succeeded")
	}
	m = submitAndWait(t, m, "3 +")
	if !strings.Contains(m.View(), "Syntax error: ") {
		t.Errorf("view lacks the syntax error:\n%s", m.View())
	}
}

func TestModelIgnoresEmptyAndBusySubmit(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	if _, cmd := press(m, tea.KeyEnter); cmd != nil {
		t.Error("empty input started an evaluation")
	}
	m = typeText(m, "1+1")
	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("no evaluation started")
	}
	m = typeText(m, "2+2")
	if _, cmd2 := press(m, tea.KeyEnter); cmd2 != nil {
		t.Error("second evaluation started while the first runs")
	}
	cmd()
}

func TestModelHistoryRecall(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = submitAndWait(t, m, "1+1")
	m = submitAndWait(t, m, "2*2")

	m, _ = press(m, tea.KeyUp)
	if m.input.Value() != "2*2" {
		t.Errorf("first up = %q", m.input.Value())
	}
	m, _ = press(m, tea.KeyUp)
	m, _ = press(m, tea.KeyUp)
	if m.input.Value() != "1+1" {
		t.Errorf("up past the oldest = %q", m.input.Value())
	}
	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyDown)
	if m.input.Value() != "" {
		t.Errorf("down past the newest = %q", m.input.Value())
	}
}

func TestModelClear(t *testing.T) {
	t.Parallel()
	m := submitAndWait(t, newTestModel(t), "41+1")
	m, _ = press(m, tea.KeyCtrlL)
	if len(m.records) != 0 {
		t.Error("records kept after clear")
	}
	m = submitAndWait(t, m, "ans")
	if got := m.records[0].Result.String(); got != "0" {
		t.Errorf("ans after clear = %s", got)
	}
}

func TestModelOperationsFeedStats(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	next, _ := m.Update(OperationMsg{Op: eval.Operation{Op: "*", Algorithm: "ntt"}})
	m = next.(Model)
	if !strings.Contains(m.View(), "ntt 1") {
		t.Errorf("view lacks the operation count:\n%s", m.View())
	}
}

func TestModelQuit(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	_, cmd := press(m, tea.KeyCtrlC)
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}

	m = typeText(newTestModel(t), "exit")
	_, cmd = press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("exit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("typing exit did not quit")
	}
}

func TestModelContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewModel(ctx, eval.New(eval.Options{}), Options{})
	msg := watchContextCmd(ctx)()
	next, cmd := m.Update(msg)
	if next.(Model).exitCode != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d", next.(Model).exitCode)
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("cancellation did not quit")
	}
}

func TestModelCancelRunningEvaluation(t *testing.T) {
	t.Parallel()
	m := typeText(newTestModel(t), "shl(1, 10) * 3")
	m, cmd := press(m, tea.KeyEnter)
	m, _ = press(m, tea.KeyEsc)
	done := cmd().(EvalDoneMsg)
	if done.Record.Err == nil {
		t.Fatal("canceled evaluation succeeded")
	}
	next, _ := m.Update(done)
	if next.(Model).running {
		t.Error("still running after the result arrived")
	}
}

func TestModelInitializingView(t *testing.T) {
	t.Parallel()
	m := NewModel(context.Background(), eval.New(eval.Options{}), Options{})
	if m.View() != "Initializing..." {
		t.Errorf("View() before size = %q", m.View())
	}
}
