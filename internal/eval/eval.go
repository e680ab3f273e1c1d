// Package eval parses and evaluates integer expressions over bigint.Int.
//
// The grammar has the usual precedence and left associativity:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/" | "%") unary }
//	unary   = ("-" | "+") unary | primary
//	primary = integer | "ans" | func "(" expr { "," expr } ")" | "(" expr ")"
//
// Division truncates toward zero and the remainder takes the sign of the
// dividend. shl and shr shift by whole radix-10^8 limbs.
package eval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/darksharpness/int2048/bigint"
	apperrors "github.com/darksharpness/int2048/internal/errors"
	"github.com/darksharpness/int2048/internal/memory"
)

// MaxShiftLimbs bounds the count accepted by shl and shr.
const MaxShiftLimbs = 1 << 28

// AlgLinear names every operation that is not a product or a quotient.
const AlgLinear = "linear"

// ErrShiftRange is returned for a negative or oversized shift count.
var ErrShiftRange = errors.New("shift count out of range")

// Options configures an Evaluator.
type Options struct {
	// MemoryLimit rejects operations whose estimated footprint exceeds it.
	// Zero means unlimited.
	MemoryLimit uint64
	// GCMode controls the collector around very large operations. The empty
	// mode leaves the collector alone.
	GCMode memory.GCMode
}

// Evaluator evaluates expressions one at a time and remembers the last
// result as "ans". It is not safe for concurrent use.
type Evaluator struct {
	ans     *bigint.Int
	budget  memory.Budget
	gcMode  memory.GCMode
	subject *Subject
	logger  zerolog.Logger
	tracer  trace.Tracer
}

// New returns an Evaluator with ans set to 0.
func New(opts Options) *Evaluator {
	return &Evaluator{
		ans:     new(bigint.Int),
		budget:  memory.Budget{Limit: opts.MemoryLimit},
		gcMode:  opts.GCMode,
		subject: NewSubject(),
		logger:  zerolog.Nop(),
		tracer:  otel.Tracer("github.com/darksharpness/int2048/internal/eval"),
	}
}

// SetLogger configures the logger for evaluation events.
func (e *Evaluator) SetLogger(l zerolog.Logger) {
	e.logger = l
}

// Register adds an observer notified after every arithmetic step.
func (e *Evaluator) Register(o Observer) { e.subject.Register(o) }

// Unregister removes an observer added with Register.
func (e *Evaluator) Unregister(o Observer) { e.subject.Unregister(o) }

// Ans returns a copy of the last successful result.
func (e *Evaluator) Ans() *bigint.Int { return new(bigint.Int).Set(e.ans) }

// Reset sets ans back to 0.
func (e *Evaluator) Reset() { e.ans = new(bigint.Int) }

// Eval evaluates src and returns its value. On success the value also
// becomes ans. Errors are apperrors.SyntaxError for malformed text,
// apperrors.EvalError for rejected operations (division by zero, memory
// limit, shift range), the context error when ctx is done, and
// apperrors.CalculationError for a kernel panic.
func (e *Evaluator) Eval(ctx context.Context, src string) (result *bigint.Int, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := e.tracer.Start(ctx, "Eval", trace.WithAttributes(
		attribute.Int("expr.length", len(src)),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			result, err = nil, apperrors.CalculationError{Cause: fmt.Errorf("internal error: %w", cause)}
			e.logger.Error().Err(err).Str("expr", src).Msg("evaluation panicked")
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	start := time.Now()
	root, err := parse(src)
	if err != nil {
		return nil, err
	}
	v, err := e.eval(ctx, root)
	if err != nil {
		return nil, err
	}
	e.ans = v
	span.SetAttributes(attribute.Int("result.limbs", v.Limbs()))
	e.logger.Debug().
		Int("result_limbs", v.Limbs()).
		Dur("duration", time.Since(start)).
		Msg("expression evaluated")
	return new(bigint.Int).Set(v), nil
}

func (e *Evaluator) eval(ctx context.Context, n node) (*bigint.Int, error) {
	switch n := n.(type) {
	case numberLit:
		return n.val, nil
	case ansRef:
		return e.ans, nil
	case unaryExpr:
		x, err := e.eval(ctx, n.x)
		if err != nil {
			return nil, err
		}
		return e.run(ctx, "neg", AlgLinear, x.Limbs(), 0, memory.EstimateLimbsBytes(x.Limbs()), func() *bigint.Int {
			return new(bigint.Int).Neg(x)
		})
	case binaryExpr:
		x, err := e.eval(ctx, n.x)
		if err != nil {
			return nil, err
		}
		y, err := e.eval(ctx, n.y)
		if err != nil {
			return nil, err
		}
		return e.binary(ctx, n.op, x, y)
	case callExpr:
		args := make([]*bigint.Int, len(n.args))
		for i, a := range n.args {
			v, err := e.eval(ctx, a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return e.call(ctx, n.name, args)
	}
	panic(fmt.Sprintf("eval: unexpected node %T", n))
}

func (e *Evaluator) binary(ctx context.Context, op byte, x, y *bigint.Int) (*bigint.Int, error) {
	name := string(op)
	n, m := x.Limbs(), y.Limbs()
	switch op {
	case '+':
		return e.run(ctx, name, AlgLinear, n, m, memory.EstimateLimbsBytes(max(n, m)+1), func() *bigint.Int {
			return new(bigint.Int).Add(x, y)
		})
	case '-':
		return e.run(ctx, name, AlgLinear, n, m, memory.EstimateLimbsBytes(max(n, m)+1), func() *bigint.Int {
			return new(bigint.Int).Sub(x, y)
		})
	case '*':
		return e.run(ctx, name, bigint.MulStrategy(x, y), n, m, memory.EstimateMulBytes(n, m), func() *bigint.Int {
			return new(bigint.Int).Mul(x, y)
		})
	case '/', '%':
		if y.IsZero() {
			return nil, e.reject(ctx, Operation{Op: name, LhsLimbs: n, RhsLimbs: m}, apperrors.ErrDivisionByZero)
		}
		return e.run(ctx, name, bigint.DivStrategy(x, y), n, m, memory.EstimateDivBytes(n, m), func() *bigint.Int {
			q, r := new(bigint.Int).QuoRem(x, y, new(bigint.Int))
			if op == '%' {
				return r
			}
			return q
		})
	}
	panic(fmt.Sprintf("eval: unexpected operator %q", op))
}

func (e *Evaluator) call(ctx context.Context, name string, args []*bigint.Int) (*bigint.Int, error) {
	x := args[0]
	n := x.Limbs()
	linear := func(f func() *bigint.Int) (*bigint.Int, error) {
		return e.run(ctx, name, AlgLinear, n, 0, memory.EstimateLimbsBytes(n+1), f)
	}
	switch name {
	case "inc":
		return linear(func() *bigint.Int { return new(bigint.Int).Inc(x) })
	case "dec":
		return linear(func() *bigint.Int { return new(bigint.Int).Dec(x) })
	case "abs":
		return linear(func() *bigint.Int { return new(bigint.Int).Abs(x) })
	case "neg":
		return linear(func() *bigint.Int { return new(bigint.Int).Neg(x) })
	case "digits":
		return linear(func() *bigint.Int { return bigint.NewInt(int64(x.Digits())) })
	case "cmp":
		y := args[1]
		return e.run(ctx, name, AlgLinear, n, y.Limbs(), 0, func() *bigint.Int {
			return bigint.NewInt(int64(x.Cmp(y)))
		})
	case "shl", "shr":
		k := args[1]
		op := Operation{Op: name, LhsLimbs: n, RhsLimbs: k.Limbs()}
		if k.Sign() < 0 || !k.IsInt64() || k.Int64() > MaxShiftLimbs {
			return nil, e.reject(ctx, op, fmt.Errorf("%w: %s", ErrShiftRange, k))
		}
		shift := int(k.Int64())
		need := memory.EstimateLimbsBytes(max(n-shift, 0))
		if name == "shl" {
			need = memory.EstimateLimbsBytes(n + shift)
		} else {
			shift = -shift
		}
		return e.run(ctx, name, AlgLinear, n, k.Limbs(), need, func() *bigint.Int {
			return new(bigint.Int).ShiftLimbs(x, shift)
		})
	}
	panic(fmt.Sprintf("eval: unexpected function %q", name))
}

// run checks the context and the memory budget, then times f and notifies
// the observers.
func (e *Evaluator) run(ctx context.Context, op, alg string, lhs, rhs int, need uint64, f func() *bigint.Int) (*bigint.Int, error) {
	ev := Operation{Op: op, Algorithm: alg, LhsLimbs: lhs, RhsLimbs: rhs}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.budget.Check(need); err != nil {
		return nil, e.reject(ctx, ev, err)
	}

	gc := memory.NewGCController(e.gcMode, max(lhs, rhs))
	gc.SetLogger(e.logger)
	var z *bigint.Int
	start := time.Now()
	func() {
		gc.Begin()
		defer gc.End()
		z = f()
	}()
	ev.Duration = time.Since(start)
	e.notify(ctx, ev)
	return z, nil
}

func (e *Evaluator) reject(ctx context.Context, ev Operation, cause error) error {
	err := apperrors.EvalError{Op: ev.Op, Cause: cause}
	ev.Err = err
	e.notify(ctx, ev)
	return err
}

func (e *Evaluator) notify(ctx context.Context, ev Operation) {
	trace.SpanFromContext(ctx).AddEvent("operation", trace.WithAttributes(
		attribute.String("op", ev.Op),
		attribute.String("algorithm", ev.Algorithm),
		attribute.Int("lhs.limbs", ev.LhsLimbs),
		attribute.Int("rhs.limbs", ev.RhsLimbs),
	))
	e.subject.OnOperation(ev)
}
