package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/darksharpness/int2048/internal/eval"
	"github.com/darksharpness/int2048/internal/ui"
)

// OperationPrinter is an eval.Observer that prints one line per arithmetic
// operation. It backs --verbose.
type OperationPrinter struct {
	mu  sync.Mutex
	out io.Writer
}

var _ eval.Observer = (*OperationPrinter)(nil)

func NewOperationPrinter(out io.Writer) *OperationPrinter {
	return &OperationPrinter{out: out}
}

// OnOperation writes the operator, its algorithm, the operand sizes and the
// elapsed time. Rejected operations are printed in the error color.
func (p *OperationPrinter) OnOperation(op eval.Operation) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if op.Err != nil {
		fmt.Fprintf(p.out, "  %s%-6s %-7s %d × %d limbs  rejected: %v%s\n",
			ui.ColorRed(), op.Op, op.Algorithm, op.LhsLimbs, op.RhsLimbs, op.Err, ui.ColorReset())
		return
	}
	fmt.Fprintf(p.out, "  %s%-6s%s %s%-7s%s %d × %d limbs  %s\n",
		ui.ColorYellow(), op.Op, ui.ColorReset(),
		ui.ColorMagenta(), op.Algorithm, ui.ColorReset(),
		op.LhsLimbs, op.RhsLimbs, FormatExecutionDuration(op.Duration))
}
