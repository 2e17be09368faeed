package orchestration

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/fibbench/internal/bench"
	"github.com/agbru/fibbench/internal/config"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/memory"
	"github.com/agbru/fibbench/internal/metrics"
)

// Executor runs benchmarks sequentially on the calling goroutine, so a CPU
// pin taken by the caller covers every measurement.
type Executor struct {
	Runner    *bench.Runner
	Progress  ProgressReporter
	Presenter ResultPresenter
	Observers []Observer
	Logger    zerolog.Logger
}

// ExecuteBenchmarks measures each strategy in order and presents each outcome
// as soon as it is known.
//
// A mismatch is presented and measurement moves on to the next strategy. A
// fatal error or cancellation of ctx stops immediately; rows already written
// stay written.
//
// Parameters:
//   - ctx: Checked between strategies and between timed iterations.
//   - strategies: The strategies to measure, in reporting order.
//   - cfg: The application configuration.
//   - out: The writer for result rows.
//
// Returns:
//   - []Outcome: One entry per strategy measured before any error.
//   - error: The fatal or context error that stopped the run, if any.
func (e *Executor) ExecuteBenchmarks(ctx context.Context, strategies []fibonacci.Strategy, cfg config.AppConfig, out io.Writer) ([]Outcome, error) {
	progress := e.Progress
	if progress == nil {
		progress = NullProgressReporter{}
	}
	collector := metrics.NewMemoryCollector()
	outcomes := make([]Outcome, 0, len(strategies))

	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		bcfg := BenchConfig(cfg, s.Key())

		gc := memory.NewGCController(cfg.GCMode)
		gc.SetLogger(e.Logger)

		progress.Begin(s.Name(), bcfg.Calls())
		before := collector.Snapshot()
		gc.Begin()
		res, err := e.Runner.Run(ctx, s, bcfg)
		gc.End()
		after := collector.Snapshot()
		progress.End()

		if err != nil {
			return outcomes, err
		}

		o := Outcome{Result: res, Memory: before.Delta(after)}
		e.Logger.Debug().
			Str("strategy", res.Name).
			Uint64("alloc_bytes", o.Memory.TotalAlloc).
			Uint32("gc_cycles", gc.Stats().NumGC).
			Msg("measurement finished")

		if o.Mismatched() {
			e.Presenter.PresentMismatch(res, out)
		} else {
			e.Presenter.PresentResult(res, out)
		}
		for _, obs := range e.Observers {
			obs.Observe(o)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

// Summary aggregates the outcomes of a run.
type Summary struct {
	Succeeded  int
	Mismatched int
	// Fastest is the successful outcome with the lowest mean, nil when none
	// succeeded.
	Fastest *Outcome
}

// Summarize computes the Summary of outcomes.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for i := range outcomes {
		o := &outcomes[i]
		if o.Mismatched() {
			s.Mismatched++
			continue
		}
		s.Succeeded++
		if s.Fastest == nil || o.Result.Mean < s.Fastest.Result.Mean {
			s.Fastest = o
		}
	}
	return s
}
