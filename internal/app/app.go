// Package app wires the configuration, the evaluator and the front ends
// (single expression, batch file, REPL, TUI, calibration) into the int2048
// command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/darksharpness/int2048/bigint"
	"github.com/darksharpness/int2048/internal/calibration"
	"github.com/darksharpness/int2048/internal/cli"
	"github.com/darksharpness/int2048/internal/config"
	apperrors "github.com/darksharpness/int2048/internal/errors"
	"github.com/darksharpness/int2048/internal/eval"
	"github.com/darksharpness/int2048/internal/logging"
	"github.com/darksharpness/int2048/internal/memory"
	"github.com/darksharpness/int2048/internal/metrics"
	"github.com/darksharpness/int2048/internal/threshold"
	"github.com/darksharpness/int2048/internal/ui"
)

// Application represents the int2048 application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In feeds the REPL and "-f -".
	In io.Reader
	// Interactive is true when stdin and stdout are terminals. It enables
	// the REPL banner, the spinner and colors.
	Interactive bool
	// ThresholdSource names where the kernel thresholds came from.
	ThresholdSource string

	log *logging.ZerologAdapter
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput replaces os.Stdin as the expression source.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithInteractive overrides terminal detection.
func WithInteractive(interactive bool) AppOption {
	return func(a *Application) { a.Interactive = interactive }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{
		ErrWriter:   errWriter,
		In:          os.Stdin,
		Interactive: isTerminal(os.Stdin) && isTerminal(os.Stdout),
		log:         logging.Nop(),
	}
	for _, opt := range opts {
		opt(app)
	}

	programName := "int2048"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.BruteThreshold != 0 && cfg.DivThreshold != 0:
		app.ThresholdSource = "flags"
	case cfg.Mode() == config.ModeCalibrate:
		app.ThresholdSource = "defaults"
	default:
		if cfgWithProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
			cfg = cfgWithProfile
			app.ThresholdSource = "calibration profile"
		} else {
			app.ThresholdSource = "hardware estimate"
		}
		cfg = config.ApplyAdaptiveThresholds(cfg)
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	switch a.Config.Mode() {
	case config.ModeVersion:
		PrintVersion(out)
		return apperrors.ExitSuccess
	case config.ModeCompletion:
		return a.runCompletion(out)
	}

	noColor := a.Config.NoColor || !a.Interactive
	if err := logging.SetGlobalLevel(a.Config.LogLevel); err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	ui.InitTheme(noColor)
	a.log = logging.NewConsoleLogger(a.ErrWriter, "int2048", noColor)

	if a.Config.Mode() == config.ModeCalibrate {
		return a.runCalibration(ctx, out)
	}

	bigint.SetThresholds(a.Config.Thresholds())
	a.log.Debug("kernel thresholds",
		logging.Int("brute_limbs", a.Config.BruteThreshold),
		logging.Int("div_limbs", a.Config.DivThreshold),
		logging.String("source", a.ThresholdSource))

	ev, finish := a.newEvaluator()
	defer finish()

	switch a.Config.Mode() {
	case config.ModeTUI:
		return a.runTUI(ctx, ev)
	case config.ModeExpr:
		return a.runExpr(ctx, out, ev)
	case config.ModeBatch:
		return a.runBatch(ctx, out, ev)
	}
	return a.runREPL(ctx, out, ev)
}

// newEvaluator builds the evaluator with the observers the flags ask for.
// finish dumps the metrics, if any, once the run is over.
func (a *Application) newEvaluator() (ev *eval.Evaluator, finish func()) {
	ev = eval.New(eval.Options{
		MemoryLimit: a.Config.MemoryLimitBytes(),
		GCMode:      memory.GCModeAuto,
	})
	logger := a.log.Zerolog()
	ev.SetLogger(logger)

	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		ev.Register(eval.NewLoggingObserver(logger))
	}
	if a.Config.Verbose && a.Config.Mode() != config.ModeTUI {
		ev.Register(cli.NewOperationPrinter(a.ErrWriter))
	}
	if m := threshold.NewDynamicThresholdManagerFromConfig(threshold.Config{
		InitialMul: a.Config.BruteThreshold,
		InitialDiv: a.Config.DivThreshold,
		Enabled:    a.Config.Adaptive,
	}); m != nil {
		m.SetLogger(logger)
		ev.Register(m)
	}

	var recorder *metrics.OpRecorder
	if a.Config.Metrics {
		recorder = metrics.NewOpRecorder()
		ev.Register(recorder)
	}
	return ev, func() {
		if recorder == nil {
			return
		}
		if err := recorder.WriteText(a.ErrWriter); err != nil {
			a.log.Error("writing metrics", err)
		}
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runCalibration runs the full calibration mode.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, stop := signalContext(ctx)
	defer stop()
	return calibration.RunCalibration(ctx, out, calibration.Options{
		ProfilePath: a.Config.CalibrationProfile,
		SaveProfile: true,
		Logger:      a.log,
	})
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
