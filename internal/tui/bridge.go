package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/darksharpness/int2048/internal/eval"
)

// programRef is a shared reference to the tea.Program. Bubbletea copies
// the model on every Update, so the observer needs a pointer that survives
// the copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// operationBridge forwards evaluator operations to the program as
// OperationMsg. Operations run on the evaluation goroutine, never on the
// UI goroutine.
type operationBridge struct {
	ref *programRef
}

var _ eval.Observer = operationBridge{}

func (b operationBridge) OnOperation(op eval.Operation) {
	b.ref.Send(OperationMsg{Op: op})
}
