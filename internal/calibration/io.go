package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/darksharpness/int2048/internal/format"
	"github.com/darksharpness/int2048/internal/ui"
)

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, results []Result, crossover int) {
	t := ui.GetCurrentTheme()
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sLimbs%s\t│ %sBrute%s\t│ %sFFT%s\t\n", t.Underline, t.Reset, t.Underline, t.Reset, t.Underline, t.Reset)
	fmt.Fprintf(tw, "  %s\t┼%s\t┼%s\t\n", strings.Repeat("─", 8), strings.Repeat("─", 12), strings.Repeat("─", 12))
	for _, res := range results {
		bruteColor, fftColor := t.Success, t.Secondary
		if res.TransformWins() {
			bruteColor, fftColor = t.Secondary, t.Success
		}
		highlight := ""
		if res.Limbs == crossover {
			highlight = fmt.Sprintf(" %s(crossover)%s", t.Success, t.Reset)
		}
		fmt.Fprintf(tw, "  %s%d%s\t│ %s%s%s\t│ %s%s%s\t%s\n",
			t.Primary, res.Limbs, t.Reset,
			bruteColor, format.FormatExecutionDuration(res.Brute), t.Reset,
			fftColor, format.FormatExecutionDuration(res.FFT), t.Reset,
			highlight)
	}
	tw.Flush()
}
