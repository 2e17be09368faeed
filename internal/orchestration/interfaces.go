package orchestration

import (
	"io"

	"github.com/agbru/fibbench/internal/bench"
	"github.com/agbru/fibbench/internal/metrics"
)

// Outcome pairs a measurement with the allocation activity observed while it
// ran.
type Outcome struct {
	Result bench.Result
	Memory metrics.MemoryDelta
}

// Mismatched reports whether the measurement was aborted by a wrong value.
func (o Outcome) Mismatched() bool { return o.Result.Err != nil }

// ProgressReporter shows that a strategy is being measured. Begin and End
// bracket every measurement and are called outside the timed loop.
type ProgressReporter interface {
	Begin(name string, calls int)
	End()
}

// NullProgressReporter is a no-op implementation of ProgressReporter, used
// for quiet mode, non-terminal output and tests.
type NullProgressReporter struct{}

// Begin does nothing.
func (NullProgressReporter) Begin(string, int) {}

// End does nothing.
func (NullProgressReporter) End() {}

// ResultPresenter defines how measurement outcomes are shown to the user.
type ResultPresenter interface {
	// PresentResult displays one completed measurement.
	PresentResult(res bench.Result, out io.Writer)
	// PresentMismatch reports a measurement aborted by an incorrect result.
	PresentMismatch(res bench.Result, out io.Writer)
}

// Observer receives every outcome, after it has been presented. Metrics and
// report writers implement it.
type Observer interface {
	Observe(o Outcome)
}

// ObserverFunc is a function adapter that implements Observer.
type ObserverFunc func(o Outcome)

// Observe calls the underlying function.
func (f ObserverFunc) Observe(o Outcome) { f(o) }
