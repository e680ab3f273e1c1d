package calibration

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/darksharpness/int2048/internal/errors"
	"github.com/darksharpness/int2048/internal/logging"
)

func TestCandidateSizes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		estimate, count int
	}{
		{48, 12},
		{48, 6},
		{8, 6},
		{1, 4},
		{1000, 1},
	}
	for _, tt := range tests {
		sizes := candidateSizes(tt.estimate, tt.count)
		if len(sizes) != tt.count {
			t.Errorf("candidateSizes(%d, %d) has %d sizes", tt.estimate, tt.count, len(sizes))
			continue
		}
		if sizes[0] < 4 {
			t.Errorf("candidateSizes(%d, %d) starts below 4: %v", tt.estimate, tt.count, sizes)
		}
		for i := 1; i < len(sizes); i++ {
			if sizes[i] <= sizes[i-1] {
				t.Errorf("candidateSizes(%d, %d) not increasing: %v", tt.estimate, tt.count, sizes)
				break
			}
		}
	}

	sizes := candidateSizes(48, 12)
	if sizes[0] != 12 || sizes[len(sizes)-1] != 192 {
		t.Errorf("candidateSizes(48, 12) = %v, want 12..192", sizes)
	}
}

func TestGenerateCandidateSizes(t *testing.T) {
	t.Parallel()
	full, quick := GenerateCandidateSizes(), GenerateQuickCandidateSizes()
	if len(full) <= len(quick) {
		t.Errorf("full run (%d sizes) should time more than the quick run (%d)", len(full), len(quick))
	}
	est := EstimateOptimalBruteThreshold()
	if full[0] > est || full[len(full)-1] < est {
		t.Errorf("sizes %v do not bracket the estimate %d", full, est)
	}
}

func TestFindCrossover(t *testing.T) {
	t.Parallel()
	r := func(n int, brute, fft time.Duration) Result { return Result{Limbs: n, Brute: brute, FFT: fft} }
	tests := []struct {
		name    string
		results []Result
		want    int
		found   bool
	}{
		{"empty", nil, 0, false},
		{"never wins", []Result{r(8, 1, 2), r(16, 2, 3)}, 0, false},
		{"always wins", []Result{r(8, 3, 2), r(16, 5, 3)}, 8, true},
		{"single crossing", []Result{r(8, 1, 2), r(16, 3, 3), r(32, 9, 5), r(64, 30, 10)}, 32, true},
		{"noise below the crossing", []Result{r(8, 3, 2), r(16, 3, 4), r(32, 9, 5)}, 32, true},
		{"loses at the top", []Result{r(8, 3, 2), r(16, 3, 4)}, 0, false},
	}
	for _, tt := range tests {
		got, found := FindCrossover(tt.results)
		if got != tt.want || found != tt.found {
			t.Errorf("%s: FindCrossover = %d, %v; want %d, %v", tt.name, got, found, tt.want, tt.found)
		}
	}
}

func TestDivThresholdFor(t *testing.T) {
	t.Parallel()
	if got := DivThresholdFor(48); got != 64 {
		t.Errorf("DivThresholdFor(48) = %d, want 64", got)
	}
	if got := DivThresholdFor(1); got != 2 {
		t.Errorf("DivThresholdFor(1) = %d, want 2", got)
	}
}

func TestMeasure(t *testing.T) {
	t.Parallel()
	results, err := Measure(context.Background(), []int{4, 24}, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].Limbs != 4 || results[1].Limbs != 24 {
		t.Fatalf("results = %+v", results)
	}
	for _, res := range results {
		if res.Brute <= 0 && res.FFT <= 0 {
			t.Errorf("no timing recorded for %d limbs", res.Limbs)
		}
	}
}

func TestMeasureCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Measure(ctx, []int{4, 8}, 1, 1)
	if !errors.Is(err, context.Canceled) || len(results) != 0 {
		t.Errorf("Measure on canceled context = %v, %v", results, err)
	}
}

func TestRunCalibration(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")
	var out bytes.Buffer
	code := RunCalibration(context.Background(), &out, Options{
		ProfilePath: path,
		SaveProfile: true,
		Sizes:       []int{4, 8, 16},
		Repeats:     1,
	})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}
	for _, want := range []string{"Calibration Summary", "--brute-threshold", "profile saved"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	profile, err := LoadProfile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !profile.IsValid() || profile.DivThreshold != DivThresholdFor(profile.BruteThreshold) {
		t.Errorf("saved profile = %s", profile)
	}
}

func TestRunCalibrationCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	code := RunCalibration(ctx, &out, Options{Sizes: []int{4}})
	if code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestRunCalibrationLogs(t *testing.T) {
	t.Parallel()
	var logs, out bytes.Buffer
	logger := logging.NewZerologAdapter(zerolog.New(&logs).Level(zerolog.DebugLevel))

	saved := filepath.Join(t.TempDir(), "profile.json")
	code := RunCalibration(context.Background(), &out, Options{
		ProfilePath: saved,
		SaveProfile: true,
		Sizes:       []int{4, 8},
		Repeats:     1,
		Logger:      logger,
	})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}
	for _, want := range []string{`"message":"calibration sample"`, `"limbs":4`, `"limbs":8`, `"message":"calibration profile saved"`} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs missing %s:\n%s", want, logs.String())
		}
	}

	logs.Reset()
	unwritable := filepath.Join(t.TempDir(), "missing", "profile.json")
	code = RunCalibration(context.Background(), &out, Options{
		ProfilePath: unwritable,
		SaveProfile: true,
		Sizes:       []int{4},
		Repeats:     1,
		Logger:      logger,
	})
	if code != apperrors.ExitSuccess {
		t.Fatalf("a failed profile write changed the exit code to %d", code)
	}
	if !strings.Contains(logs.String(), `"level":"error"`) || !strings.Contains(logs.String(), "saving calibration profile") {
		t.Errorf("profile write failure not logged:\n%s", logs.String())
	}
}
