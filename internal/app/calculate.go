package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/darksharpness/int2048/internal/cli"
	apperrors "github.com/darksharpness/int2048/internal/errors"
	"github.com/darksharpness/int2048/internal/eval"
	"github.com/darksharpness/int2048/internal/logging"
	"github.com/darksharpness/int2048/internal/tui"
	"github.com/darksharpness/int2048/internal/ui"
)

// signalContext cancels ctx on SIGINT and SIGTERM.
func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// runContext bounds a non-interactive run by --timeout and the signals.
func (a *Application) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signalContext(ctx)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
}

// runExpr evaluates the -e expression.
func (a *Application) runExpr(ctx context.Context, out io.Writer, ev *eval.Evaluator) int {
	ctx, cancel := a.runContext(ctx)
	defer cancel()

	var sp cli.Spinner
	if a.Interactive && !a.Config.Quiet {
		sp = cli.NewSpinner(a.ErrWriter)
	}
	rec := cli.Evaluate(ctx, ev, a.Config.Expr, sp)
	if rec.Err != nil {
		rec.Err = a.timeoutError(rec.Err)
		cli.DisplayError(a.ErrWriter, "", rec)
		return apperrors.ExitCodeFromError(rec.Err)
	}
	cli.DisplayResult(out, rec, a.outputConfig())
	if err := a.saveRecords(out, []cli.Record{rec}); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runBatch evaluates the -f file, one expression per line. "-" reads the
// application input.
func (a *Application) runBatch(ctx context.Context, out io.Writer, ev *eval.Evaluator) int {
	ctx, cancel := a.runContext(ctx)
	defer cancel()

	in := a.In
	if a.Config.File != "-" {
		f, err := os.Open(a.Config.File)
		if err != nil {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			return apperrors.ExitErrorConfig
		}
		defer f.Close()
		in = f
	}

	cfg := a.outputConfig()
	cfg.Echo = !cfg.Quiet
	records, err := cli.EvalBatch(ctx, in, out, a.ErrWriter, ev, cfg)
	if err != nil {
		err = a.timeoutError(err)
		a.log.Debug("batch finished with errors", logging.Err(err), logging.Int("evaluated", len(records)))
		if apperrors.IsContextError(err) {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		}
	}
	if saveErr := a.saveRecords(out, records); saveErr != nil && err == nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitCodeFromError(err)
}

// runREPL runs the interactive loop. --timeout applies to each expression
// rather than to the session.
func (a *Application) runREPL(ctx context.Context, out io.Writer, ev *eval.Evaluator) int {
	ctx, stop := signalContext(ctx)
	defer stop()

	repl := cli.NewREPL(ev, cli.REPLConfig{
		Timeout:     a.Config.Timeout,
		MemoryLimit: a.Config.MemoryLimitBytes(),
		Spinner:     a.Interactive && !a.Config.Quiet,
		Banner:      a.Interactive && !a.Config.Quiet,
		Output:      a.outputConfig(),
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)

	err := repl.Start(ctx)
	if saveErr := a.saveRecords(out, repl.History()); saveErr != nil && err == nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitCodeFromError(err)
}

// runTUI launches the interactive terminal calculator.
func (a *Application) runTUI(ctx context.Context, ev *eval.Evaluator) int {
	ctx, stop := signalContext(ctx)
	defer stop()
	return tui.Run(ctx, ev, tui.Options{Timeout: a.Config.Timeout, Version: Version})
}

// timeoutError turns an expired --timeout into a TimeoutError.
func (a *Application) timeoutError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: "evaluation", Limit: a.Config.Timeout}
	}
	return err
}

// saveRecords writes records to --output, if set.
func (a *Application) saveRecords(out io.Writer, records []cli.Record) error {
	cfg := a.outputConfig()
	if cfg.OutputFile == "" || len(records) == 0 {
		return nil
	}
	if err := cli.WriteResultsToFile(records, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving results: %v\n", err)
		return err
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "%s✓ Results saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
	}
	return nil
}
