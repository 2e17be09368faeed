// Package bench times a Fibonacci strategy: it establishes ground truth with
// the constant-space iterative strategy, runs an untimed warm-up, then a timed
// phase that is either per-call (a clock read around every call) or batched
// (one clock read around a group of calls, elapsed time divided evenly).
//
// Every returned value is compared with the expected value for its input and
// folded into an accumulator that is carried out in the Result, so no call
// can be discarded as dead code.
package bench

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/logging"
)

const tracerName = "github.com/agbru/fibbench/internal/bench"

// Config describes one measurement.
type Config struct {
	// N is the benchmarked Fibonacci index.
	N uint64
	// Iterations is the number of timed calls. In batched mode the calls are
	// grouped BatchSize at a time and the final batch holds the remainder.
	Iterations int
	// Warmup is the number of untimed calls executed first.
	Warmup int
	// BatchSize selects batched timing when > 1.
	BatchSize int
}

// Batched reports whether the measurement uses batched timing.
func (c Config) Batched() bool { return c.BatchSize > 1 }

// Calls returns the total number of timed strategy calls.
func (c Config) Calls() int { return c.Iterations }

// Batches returns the number of timed batches, counting a short final batch.
func (c Config) Batches() int {
	if !c.Batched() {
		return c.Iterations
	}
	return (c.Iterations + c.BatchSize - 1) / c.BatchSize
}

// Validate rejects configurations that cannot produce a mean.
func (c Config) Validate() error {
	if c.Iterations < 1 {
		return apperrors.NewConfigError("iterations must be >= 1, got %d", c.Iterations)
	}
	if c.Warmup < 0 {
		return apperrors.NewConfigError("warmup must be >= 0, got %d", c.Warmup)
	}
	return nil
}

// Result is the outcome of one measurement. When Err is set the statistics
// are incomplete and must not be reported.
type Result struct {
	Key       string
	Name      string
	N         uint64
	BatchSize int
	// Iterations is the configured number of timed calls.
	Iterations int
	// Completed is the number of timed calls that finished, counting whole
	// batches only.
	Completed int
	// Total is the summed elapsed time of all completed calls or batches.
	Total time.Duration
	// Mean is the mean latency per call in nanoseconds.
	Mean float64
	// Min is the minimum per-call latency observed.
	Min time.Duration
	// Sink folds every returned value together.
	Sink uint64
	// Err is a MismatchError when a call returned a wrong value.
	Err error
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock replaces the monotonic clock. Tests use it to make timings
// deterministic.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithLogger sets the logger used for per-strategy debug output.
func WithLogger(l logging.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithTracer sets the tracer used to wrap each measurement in a span. The
// global otel tracer is used by default.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

// Runner executes measurements. It is not safe for concurrent use.
type Runner struct {
	now    func() time.Time
	logger logging.Logger
	tracer trace.Tracer
}

// NewRunner creates a Runner using time.Now as its clock.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{now: time.Now, logger: logging.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(tracerName)
	}
	return r
}

// inputs returns the indices a measurement rotates over and their expected
// values. Per-call mode uses n only. Batched mode adds n-1 and n+1 where they
// exist and are representable, so consecutive calls never share an input.
func inputs(cfg Config) ([]uint64, []uint64, error) {
	ns := []uint64{cfg.N}
	if cfg.Batched() {
		ns = ns[:0]
		if cfg.N > 0 {
			ns = append(ns, cfg.N-1)
		}
		ns = append(ns, cfg.N)
		if cfg.N < fibonacci.MaxRepresentableN {
			ns = append(ns, cfg.N+1)
		}
	}
	want := make([]uint64, len(ns))
	for i, n := range ns {
		v, err := fibonacci.Iterative(n)
		if err != nil {
			return nil, nil, err
		}
		want[i] = v
	}
	return ns, want, nil
}

// Run measures s under cfg.
//
// A fatal strategy error (overflow, capacity, allocation) is returned as the
// error and the Result must be discarded. A wrong value is recoverable: Run
// stops measuring and returns a Result whose Err is a MismatchError, with a
// nil error. Cancellation of ctx is checked between iterations.
func (r *Runner) Run(ctx context.Context, s fibonacci.Strategy, cfg Config) (Result, error) {
	res := Result{
		Key:        s.Key(),
		Name:       s.Name(),
		N:          cfg.N,
		BatchSize:  cfg.BatchSize,
		Iterations: cfg.Iterations,
	}
	if err := cfg.Validate(); err != nil {
		return res, err
	}

	ctx, span := r.tracer.Start(ctx, "bench.Run", trace.WithAttributes(
		attribute.String("strategy", res.Key),
		attribute.Int64("n", int64(cfg.N)),
		attribute.Int("iterations", cfg.Iterations),
		attribute.Int("batch_size", cfg.BatchSize),
	))
	defer span.End()

	err := r.run(ctx, s, cfg, &res)
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		// The caller reports fatal errors; logging them here would print twice.
		r.logger.Debug("benchmark aborted", logging.String("strategy", res.Name), logging.Err(err))
	case res.Err != nil:
		span.SetStatus(codes.Error, res.Err.Error())
		r.logger.Debug("benchmark result mismatch", logging.String("strategy", res.Name), logging.Err(res.Err))
	default:
		span.SetAttributes(
			attribute.Float64("mean_ns", res.Mean),
			attribute.Int64("min_ns", res.Min.Nanoseconds()),
		)
		r.logger.Debug("benchmark complete",
			logging.String("strategy", res.Name),
			logging.Float64("mean_ns", res.Mean),
			logging.Int("min_ns", int(res.Min.Nanoseconds())),
			logging.Int("calls", cfg.Calls()),
		)
	}
	return res, err
}

func (r *Runner) run(ctx context.Context, s fibonacci.Strategy, cfg Config, res *Result) error {
	ns, want, err := inputs(cfg)
	if err != nil {
		return fmt.Errorf("computing reference for F(%d): %w", cfg.N, err)
	}

	resetter, stateful := s.(fibonacci.Resetter)
	if stateful {
		resetter.Prepare(maxOf(ns))
	}

	var sink uint64

	for i := 0; i < cfg.Warmup; i++ {
		if stateful {
			resetter.Reset()
		}
		v, err := s.Compute(ns[i%len(ns)])
		if err != nil {
			return err
		}
		sink += v
	}

	fastest := time.Duration(math.MaxInt64)
	var total time.Duration

	if !cfg.Batched() {
		for i := 0; i < cfg.Iterations; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if stateful {
				resetter.Reset()
			}
			start := r.now()
			v, err := s.Compute(ns[0])
			d := r.now().Sub(start)
			if err != nil {
				return err
			}
			sink += v
			if v != want[0] {
				res.Sink = sink
				res.Err = apperrors.MismatchError{Strategy: res.Name, N: ns[0], Got: v, Want: want[0]}
				return nil
			}
			total += d
			if d < fastest {
				fastest = d
			}
			res.Completed++
		}
		res.Mean = float64(total.Nanoseconds()) / float64(res.Completed)
	} else {
		got := make([]uint64, cfg.BatchSize)
		for done := 0; done < cfg.Iterations; {
			if err := ctx.Err(); err != nil {
				return err
			}
			batch := got[:min(cfg.BatchSize, cfg.Iterations-done)]
			start := r.now()
			for j := range batch {
				if stateful {
					resetter.Reset()
				}
				v, err := s.Compute(ns[j%len(ns)])
				if err != nil {
					return err
				}
				batch[j] = v
			}
			elapsed := r.now().Sub(start)
			for j, v := range batch {
				sink += v
				if k := j % len(ns); v != want[k] {
					res.Sink = sink
					res.Err = apperrors.MismatchError{Strategy: res.Name, N: ns[k], Got: v, Want: want[k]}
					return nil
				}
			}
			total += elapsed
			if perCall := elapsed / time.Duration(len(batch)); perCall < fastest {
				fastest = perCall
			}
			done += len(batch)
			res.Completed = done
		}
		res.Mean = float64(total.Nanoseconds()) / float64(res.Completed)
	}

	res.Total = total
	res.Min = fastest
	res.Sink = sink
	return nil
}

func maxOf(ns []uint64) uint64 {
	var m uint64
	for _, n := range ns {
		if n > m {
			m = n
		}
	}
	return m
}
