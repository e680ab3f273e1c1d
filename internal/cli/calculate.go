package cli

import (
	"context"
	"sync"
	"time"

	"github.com/darksharpness/int2048/bigint"
	"github.com/darksharpness/int2048/internal/eval"
)

// Record is the outcome of one evaluated expression.
type Record struct {
	Expr     string
	Result   *bigint.Int
	Duration time.Duration
	Err      error
}

// Evaluate runs expr through ev. When sp is non-nil it is started once the
// evaluation has lasted spinnerDelay and stopped before Evaluate returns.
func Evaluate(ctx context.Context, ev *eval.Evaluator, expr string, sp Spinner) Record {
	done := make(chan struct{})
	var wg sync.WaitGroup
	if sp != nil {
		sp.UpdateSuffix(" evaluating " + abbreviate(expr, 40))
		wg.Add(1)
		go func() {
			defer wg.Done()
			timer := time.NewTimer(spinnerDelay)
			defer timer.Stop()
			select {
			case <-done:
				return
			case <-timer.C:
			}
			sp.Start()
			<-done
			sp.Stop()
		}()
	}

	start := time.Now()
	result, err := ev.Eval(ctx, expr)
	rec := Record{Expr: expr, Result: result, Duration: time.Since(start), Err: err}
	close(done)
	wg.Wait()
	return rec
}

// abbreviate cuts s to at most n bytes, marking the cut with "...".
func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
