//go:generate mockgen -source=observer.go -destination=mocks/mock_observer.go -package=mocks

package eval

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ─────────────────────────────────────────────────────────────────────────────
// Operation events
// ─────────────────────────────────────────────────────────────────────────────

// Operation describes one arithmetic step performed while evaluating an
// expression.
type Operation struct {
	// Op is the operator symbol ("+", "*", ...) or function name ("shl", ...).
	Op string
	// Algorithm is the kernel strategy that ran: "brute", "fft", "ntt" and
	// "zero" for products, "small", "word", "brute" and "newton" for
	// quotients, "linear" for everything else.
	Algorithm string
	// LhsLimbs and RhsLimbs are the operand sizes in radix-10^8 limbs.
	// RhsLimbs is 0 for unary operations.
	LhsLimbs int
	RhsLimbs int
	// Duration is the wall time of the kernel call.
	Duration time.Duration
	// Err is set when the operation was rejected.
	Err error
}

// Observer receives an event after every arithmetic step.
type Observer interface {
	// OnOperation is called synchronously on the evaluating goroutine.
	OnOperation(op Operation)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(op Operation)

// OnOperation calls f(op).
func (f ObserverFunc) OnOperation(op Operation) { f(op) }

// ─────────────────────────────────────────────────────────────────────────────
// Subject
// ─────────────────────────────────────────────────────────────────────────────

// Subject fans operation events out to registered observers in registration
// order. It is safe for concurrent use.
type Subject struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewSubject creates a subject with no observers.
func NewSubject() *Subject {
	return &Subject{observers: make([]Observer, 0)}
}

// Register adds an observer. A nil observer is ignored.
func (s *Subject) Register(o Observer) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Unregister removes the first registration of o, if any.
func (s *Subject) Unregister(o Observer) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.observers {
		if r == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// OnOperation notifies every observer, so a Subject is itself an Observer.
func (s *Subject) OnOperation(op Operation) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.OnOperation(op)
	}
}

// ObserverCount returns the number of registered observers.
func (s *Subject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging observer
// ─────────────────────────────────────────────────────────────────────────────

// LoggingObserver writes one debug event per operation.
type LoggingObserver struct {
	logger zerolog.Logger
}

// NewLoggingObserver returns an observer logging to l.
func NewLoggingObserver(l zerolog.Logger) *LoggingObserver {
	return &LoggingObserver{logger: l}
}

// OnOperation logs op at debug level, or at warn level when it failed.
func (o *LoggingObserver) OnOperation(op Operation) {
	ev := o.logger.Debug()
	if op.Err != nil {
		ev = o.logger.Warn().Err(op.Err)
	}
	ev.Str("op", op.Op).
		Str("algorithm", op.Algorithm).
		Int("lhs_limbs", op.LhsLimbs).
		Int("rhs_limbs", op.RhsLimbs).
		Dur("duration", op.Duration).
		Msg("operation")
}
