package calibration

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/darksharpness/int2048/internal/config"
	apperrors "github.com/darksharpness/int2048/internal/errors"
	"github.com/darksharpness/int2048/internal/fft"
	"github.com/darksharpness/int2048/internal/logging"
	"github.com/darksharpness/int2048/internal/nat"
	"github.com/darksharpness/int2048/internal/ui"
)

// DefaultRepeats is the number of timed runs per size and algorithm; the
// fastest run is kept.
const DefaultRepeats = 3

// Options configures a calibration run.
type Options struct {
	// ProfilePath is where the profile is saved. Empty means the default path.
	ProfilePath string
	// SaveProfile writes the measured thresholds to ProfilePath.
	SaveProfile bool
	// Sizes are the operand lengths to time, in limbs, increasing.
	// Empty means GenerateCandidateSizes().
	Sizes []int
	// Repeats is the number of timed runs per measurement.
	Repeats int
	// Seed makes the operands reproducible.
	Seed uint64
	// Logger receives the per-size timings at debug level and profile
	// write failures. Nil discards them.
	Logger logging.Logger
}

// Result holds the timings of one operand size.
type Result struct {
	Limbs int
	Brute time.Duration
	FFT   time.Duration
}

// TransformWins reports whether the FFT product was faster.
func (r Result) TransformWins() bool { return r.FFT < r.Brute }

// randomNat returns an n-limb magnitude with a nonzero top limb.
func randomNat(r *rand.Rand, n int) nat.Nat {
	x := make(nat.Nat, n)
	for i := range x {
		x[i] = nat.Word(r.Uint64N(nat.Radix))
	}
	if x[n-1] == 0 {
		x[n-1] = 1
	}
	return x
}

// Measure times schoolbook and FFT multiplication of two n-limb operands for
// every n in sizes. It stops between sizes when ctx is done and returns the
// results gathered so far with the context error.
func Measure(ctx context.Context, sizes []int, repeats int, seed uint64) ([]Result, error) {
	if repeats <= 0 {
		repeats = DefaultRepeats
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	results := make([]Result, 0, len(sizes))
	for _, n := range sizes {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		x, y := randomNat(r, n), randomNat(r, n)
		fft.PreWarm(n, n)
		results = append(results, Result{
			Limbs: n,
			Brute: fastest(repeats, func() { nat.MulWith(nat.AlgBrute, x, y) }),
			FFT:   fastest(repeats, func() { nat.MulWith(nat.AlgFFT, x, y) }),
		})
	}
	return results, nil
}

// fastest runs f once untimed, then repeats times, and returns the best time.
func fastest(repeats int, f func()) time.Duration {
	f()
	best := time.Duration(1<<63 - 1)
	for range repeats {
		start := time.Now()
		f()
		best = min(best, time.Since(start))
	}
	return best
}

// FindCrossover returns the smallest measured size from which the FFT wins
// at that size and every larger one. It returns false when the FFT does not
// win at the largest size.
func FindCrossover(results []Result) (int, bool) {
	crossover, found := 0, false
	for i := len(results) - 1; i >= 0; i-- {
		if !results[i].TransformWins() {
			break
		}
		crossover, found = results[i].Limbs, true
	}
	return crossover, found
}

// DivThresholdFor scales a multiplication crossover into a division
// crossover, keeping the ratio between the built-in defaults.
func DivThresholdFor(brute int) int {
	d := nat.DefaultThresholds()
	return max(2, brute*d.BruteForceDivLimbs/d.BruteForceMulLimbs)
}

// RunCalibration measures the multiplication crossover, prints a summary
// to out and optionally saves the profile. It returns a process exit code.
func RunCalibration(ctx context.Context, out io.Writer, opts Options) int {
	t := ui.GetCurrentTheme()
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	sizes := opts.Sizes
	if len(sizes) == 0 {
		sizes = GenerateCandidateSizes()
	}
	fmt.Fprintf(out, "--- Calibration: brute-force / FFT multiplication crossover ---\n")
	fmt.Fprintf(out, "%sTiming %d operand sizes from %d to %d limbs%s\n",
		t.Info, len(sizes), sizes[0], sizes[len(sizes)-1], t.Reset)

	start := time.Now()
	results, err := Measure(ctx, sizes, opts.Repeats, opts.Seed)
	for _, res := range results {
		log.Debug("calibration sample",
			logging.Int("limbs", res.Limbs),
			logging.Duration("brute", res.Brute),
			logging.Duration("fft", res.FFT))
	}
	if err != nil {
		fmt.Fprintf(out, "\n%sCalibration interrupted.%s\n", t.Warning, t.Reset)
		return apperrors.ExitCodeFromError(err)
	}

	brute, found := FindCrossover(results)
	if !found {
		brute = sizes[len(sizes)-1] + 1
		fmt.Fprintf(out, "%sThe transform never won in the measured range; using %d limbs.%s\n",
			t.Warning, brute, t.Reset)
	}
	div := DivThresholdFor(brute)

	printCalibrationResults(out, results, brute)
	fmt.Fprintf(out, "\n%sRecommendation for this machine: %s--brute-threshold %d --div-threshold %d%s\n",
		t.Success, t.Warning, brute, div, t.Reset)

	if opts.SaveProfile {
		profile := NewProfile()
		profile.BruteThreshold = brute
		profile.DivThreshold = div
		profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
		path := opts.ProfilePath
		if path == "" {
			path = GetDefaultProfilePath()
		}
		if err := profile.SaveProfile(path); err != nil {
			log.Error("saving calibration profile", err, logging.String("path", path))
			fmt.Fprintf(out, "%sWarning: failed to save profile: %v%s\n", t.Warning, err, t.Reset)
		} else {
			log.Info("calibration profile saved",
				logging.String("path", path),
				logging.Int("brute_limbs", brute),
				logging.Int("div_limbs", div))
			fmt.Fprintf(out, "%sCalibration profile saved to %s%s\n", t.Success, path, t.Reset)
		}
	}
	return apperrors.ExitSuccess
}

// LoadCachedCalibration fills the thresholds cfg leaves unset from a valid
// profile at path. It reports whether a profile was used.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	profile, ok := LoadOrCreateProfile(path)
	if !ok {
		return cfg, false
	}
	if cfg.BruteThreshold == 0 {
		cfg.BruteThreshold = profile.BruteThreshold
	}
	if cfg.DivThreshold == 0 {
		cfg.DivThreshold = profile.DivThreshold
	}
	return cfg, true
}
