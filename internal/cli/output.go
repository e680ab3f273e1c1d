// # Naming Conventions
//
//   - Display* functions write colored output to an [io.Writer].
//   - Format* functions return a string without performing I/O.
//   - Write* functions write to files on the filesystem.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/darksharpness/int2048/internal/errors"
	"github.com/darksharpness/int2048/internal/format"
	"github.com/darksharpness/int2048/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile receives every record with a header block. Empty disables it.
	OutputFile string
	// Quiet prints bare results.
	Quiet bool
	// Verbose adds digit count, limb count and duration under each result.
	Verbose bool
	// Echo prefixes each result with its expression ("expr = result").
	Echo bool
	// Truncate shortens results longer than TruncationLimit digits.
	Truncate bool
}

// WriteResultsToFile writes records to cfg.OutputFile, creating parent
// directories as needed. It does nothing when no file is configured.
func WriteResultsToFile(records []Record, cfg OutputConfig) (err error) {
	if cfg.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	var total time.Duration
	for _, rec := range records {
		total += rec.Duration
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# int2048 Results\n")
	fmt.Fprintf(&b, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "# Expressions: %d\n", len(records))
	fmt.Fprintf(&b, "# Total duration: %s\n", total)
	for i, rec := range records {
		fmt.Fprintf(&b, "\n# [%d] %s\n", i+1, rec.Expr)
		if rec.Err != nil {
			fmt.Fprintf(&b, "# Error: %v\n", rec.Err)
			continue
		}
		fmt.Fprintf(&b, "# Duration: %s, Digits: %d, Limbs: %d\n", rec.Duration, rec.Result.Digits(), rec.Result.Limbs())
		b.WriteString(rec.Result.String())
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(file, b.String()); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FormatQuietResult returns the bare decimal result, for scripting.
func FormatQuietResult(rec Record) string {
	return rec.Result.String()
}

// FormatResult returns the decimal result, shortened to its edges when cfg
// asks for truncation and the result is long.
func FormatResult(rec Record, cfg OutputConfig) string {
	s := rec.Result.String()
	if !cfg.Truncate {
		return s
	}
	short, cut := format.TruncateDigits(s, TruncationLimit, DisplayEdges)
	if cut {
		return fmt.Sprintf("%s (truncated, %s digits)", short, format.FormatNumberString(fmt.Sprint(rec.Result.Digits())))
	}
	return s
}

// DisplayResult prints a successful record according to cfg.
func DisplayResult(out io.Writer, rec Record, cfg OutputConfig) {
	if cfg.Quiet {
		fmt.Fprintln(out, FormatQuietResult(rec))
		return
	}
	if cfg.Echo {
		fmt.Fprintf(out, "%s%s%s = ", ui.ColorCyan(), rec.Expr, ui.ColorReset())
	}
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorGreen(), FormatResult(rec, cfg), ui.ColorReset())
	if cfg.Verbose {
		fmt.Fprintf(out, "  %s%s digits, %d limbs, %s%s\n", ui.ColorMagenta(),
			format.FormatNumberString(fmt.Sprint(rec.Result.Digits())), rec.Result.Limbs(),
			FormatExecutionDuration(rec.Duration), ui.ColorReset())
	}
}

// FormatError renders a failed record. Syntax errors get the expression and
// a caret under the offending offset.
func FormatError(rec Record) string {
	var se apperrors.SyntaxError
	if errors.As(rec.Err, &se) && se.Input != "" {
		return fmt.Sprintf("Syntax error: %s\n  %s\n  %s^", se.Message, se.Input, strings.Repeat(" ", se.Offset))
	}
	var te apperrors.TimeoutError
	if errors.As(rec.Err, &te) || errors.Is(rec.Err, context.DeadlineExceeded) {
		return fmt.Sprintf("Error: evaluation timed out after %s", FormatExecutionDuration(rec.Duration))
	}
	return fmt.Sprintf("Error: %v", rec.Err)
}

// DisplayError prints a failed record in the error color, prefixed with
// prefix when it is not empty.
func DisplayError(out io.Writer, prefix string, rec Record) {
	msg := FormatError(rec)
	if prefix != "" {
		msg = prefix + ": " + msg
	}
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorRed(), msg, ui.ColorReset())
}
