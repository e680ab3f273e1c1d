package cli

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/darksharpness/int2048/internal/cli/mocks"
	"github.com/darksharpness/int2048/internal/eval"
)

// recordingSpinner counts calls; used where the timing decides whether the
// spinner starts at all.
type recordingSpinner struct {
	mu            sync.Mutex
	starts, stops int
	suffix        string
}

func (s *recordingSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts++
}

func (s *recordingSpinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
}

func (s *recordingSpinner) UpdateSuffix(suffix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suffix = suffix
}

func withSpinnerDelay(t *testing.T, d time.Duration) {
	t.Helper()
	old := spinnerDelay
	spinnerDelay = d
	t.Cleanup(func() { spinnerDelay = old })
}

// The spinner tests change package state and do not run in parallel.

func TestEvaluateQuickExpressionSkipsSpinner(t *testing.T) {
	withSpinnerDelay(t, time.Hour)
	ctrl := gomock.NewController(t)
	sp := mocks.NewMockSpinner(ctrl)
	sp.EXPECT().UpdateSuffix(" evaluating 6*7").Times(1)
	sp.EXPECT().Start().Times(0)
	sp.EXPECT().Stop().Times(0)

	rec := Evaluate(context.Background(), eval.New(eval.Options{}), "6*7", sp)
	if rec.Err != nil || rec.Result.String() != "42" {
		t.Fatalf("Evaluate = %v, %v", rec.Result, rec.Err)
	}
	if rec.Expr != "6*7" {
		t.Errorf("Expr = %q", rec.Expr)
	}
}

func TestEvaluateSpinnerBalanced(t *testing.T) {
	withSpinnerDelay(t, 0)
	ev := eval.New(eval.Options{})
	for range 20 {
		sp := &recordingSpinner{}
		rec := Evaluate(context.Background(), ev, "shl(7, 300) * shl(9, 300)", sp)
		if rec.Err != nil {
			t.Fatal(rec.Err)
		}
		if sp.starts != sp.stops || sp.starts > 1 {
			t.Fatalf("spinner started %d times and stopped %d times", sp.starts, sp.stops)
		}
	}
}

func TestEvaluateWithoutSpinner(t *testing.T) {
	t.Parallel()
	rec := Evaluate(context.Background(), eval.New(eval.Options{}), "1/0", nil)
	if rec.Err == nil || rec.Result != nil {
		t.Errorf("Evaluate(1/0) = %v, %v", rec.Result, rec.Err)
	}
}

func TestAbbreviate(t *testing.T) {
	t.Parallel()
	if got := abbreviate("1234567890", 8); got != "12345..." {
		t.Errorf("abbreviate = %q", got)
	}
	if got := abbreviate("123", 8); got != "123" {
		t.Errorf("abbreviate = %q", got)
	}
}
