// Package cli provides the line-oriented front ends of the calculator: the
// interactive REPL, batch evaluation and result output.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/darksharpness/int2048/bigint"
	"github.com/darksharpness/int2048/internal/eval"
	"github.com/darksharpness/int2048/internal/memory"
	"github.com/darksharpness/int2048/internal/ui"
)

// historyShown is the number of entries printed by the history command.
const historyShown = 20

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout bounds each expression. Zero means no per-expression limit.
	Timeout time.Duration
	// MemoryLimit is shown by the status command. Zero means unlimited.
	MemoryLimit uint64
	// Spinner shows an activity indicator during long evaluations.
	Spinner bool
	// Banner prints the welcome banner and help on start.
	Banner bool
	// Output controls how results are printed.
	Output OutputConfig
}

// REPL is an interactive calculator session over an evaluator. ans carries
// the previous result from one line to the next.
type REPL struct {
	config  REPLConfig
	ev      *eval.Evaluator
	in      io.Reader
	out     io.Writer
	history []Record
}

// NewREPL creates a session reading os.Stdin and writing os.Stdout.
func NewREPL(ev *eval.Evaluator, config REPLConfig) *REPL {
	config.Output.Echo = false
	return &REPL{
		config: config,
		ev:     ev,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// History returns the expressions evaluated so far, oldest first.
func (r *REPL) History() []Record {
	return r.history
}

// Start runs the session until exit, end of input or ctx is done. It
// returns ctx's error in the last case and nil otherwise.
func (r *REPL) Start(ctx context.Context) error {
	if r.config.Banner {
		r.printBanner()
		r.printHelp()
		fmt.Fprintln(r.out)
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"int> "+ui.ColorReset())

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			if err := <-readErr; err != nil {
				fmt.Fprintf(r.out, "\n%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !r.processCommand(ctx, line) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// printBanner displays the welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %sint2048 - arbitrary-precision calculator%s       %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sEnter an expression, or one of:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display thresholds and limits\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shistory%s       - List recent expressions\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sreset%s         - Set ans back to 0 and clear history\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s   - Leave the session\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "Operators: + - * / %% ( )   Functions: %s   Previous result: %s\n",
		strings.Join(eval.Functions(), " "), eval.AnsName)
}

// processCommand runs a command or evaluates the line. It returns false
// when the session should end.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	switch strings.ToLower(input) {
	case "help", "h", "?":
		r.printHelp()
	case "status", "st":
		r.cmdStatus()
	case "history":
		r.cmdHistory()
	case "reset":
		r.ev.Reset()
		r.history = nil
		fmt.Fprintf(r.out, "%s%s = 0%s\n", ui.ColorGreen(), eval.AnsName, ui.ColorReset())
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.evaluate(ctx, input)
	}
	return true
}

// evaluate runs one expression under the per-expression timeout.
func (r *REPL) evaluate(ctx context.Context, expr string) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}
	var sp Spinner
	if r.config.Spinner {
		sp = newSpinner(r.out)
	}

	rec := Evaluate(ctx, r.ev, expr, sp)
	r.history = append(r.history, rec)
	if rec.Err != nil {
		DisplayError(r.out, "", rec)
		return
	}
	DisplayResult(r.out, rec, r.config.Output)
}

// cmdStatus displays the active thresholds and limits.
func (r *REPL) cmdStatus() {
	th := bigint.CurrentThresholds()
	limit := "none"
	if r.config.MemoryLimit > 0 {
		limit = memory.FormatBytes(r.config.MemoryLimit)
	}
	timeout := "none"
	if r.config.Timeout > 0 {
		timeout = r.config.Timeout.String()
	}
	ans := r.ev.Ans()

	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Multiplication threshold: %s%d%s limbs\n", ui.ColorCyan(), th.BruteForceMulLimbs, ui.ColorReset())
	fmt.Fprintf(r.out, "  Division threshold:       %s%d%s limbs\n", ui.ColorCyan(), th.BruteForceDivLimbs, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:                  %s%s%s\n", ui.ColorCyan(), timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Memory limit:             %s%s%s\n", ui.ColorCyan(), limit, ui.ColorReset())
	fmt.Fprintf(r.out, "  ans:                      %s%d%s digits\n", ui.ColorCyan(), ans.Digits(), ui.ColorReset())
	fmt.Fprintf(r.out, "  History:                  %s%d%s entries\n", ui.ColorCyan(), len(r.history), ui.ColorReset())
	fmt.Fprintln(r.out)
}

// cmdHistory lists the most recent expressions with their outcome.
func (r *REPL) cmdHistory() {
	if len(r.history) == 0 {
		fmt.Fprintln(r.out, "No history yet.")
		return
	}
	start := max(0, len(r.history)-historyShown)
	for i, rec := range r.history[start:] {
		status := ui.ColorGreen() + "ok" + ui.ColorReset()
		if rec.Err != nil {
			status = ui.ColorRed() + "error" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %3d  %-40s %s  %s\n", start+i+1, abbreviate(rec.Expr, 40), status, FormatExecutionDuration(rec.Duration))
	}
}
