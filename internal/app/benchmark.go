package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/gops/agent"

	"github.com/agbru/fibbench/internal/affinity"
	"github.com/agbru/fibbench/internal/bench"
	"github.com/agbru/fibbench/internal/cli"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/logging"
	"github.com/agbru/fibbench/internal/metrics"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/report"
	"github.com/agbru/fibbench/internal/sysmon"
	"github.com/agbru/fibbench/internal/tracing"
)

// SelfCheck verifies the reference strategy and then every strategy about to
// be measured against F(20) before anything is timed. The first failure is
// returned as a SelfCheckError.
func SelfCheck(strategies []fibonacci.Strategy) error {
	const n = fibonacci.DefaultN
	want := fibonacci.KnownValues[n]
	if got, err := fibonacci.Iterative(n); err != nil || got != want {
		return apperrors.SelfCheckError{Strategy: fibonacci.NameIterative, N: n, Got: got, Want: want, Cause: err}
	}
	for _, s := range strategies {
		if r, ok := s.(fibonacci.Resetter); ok {
			r.Prepare(n)
			r.Reset()
		}
		if got, err := s.Compute(n); err != nil || got != want {
			return apperrors.SelfCheckError{Strategy: s.Name(), N: n, Got: got, Want: want, Cause: err}
		}
	}
	return nil
}

// runBenchmarks orchestrates the execution of one benchmark run.
func (a *Application) runBenchmarks(ctx context.Context, out io.Writer) int {
	start := time.Now()
	cfg := a.Config

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			a.Logger.Error("gops agent not started", err)
		} else {
			defer agent.Close()
		}
	}

	strategies := orchestration.GetStrategiesToRun(cfg, a.Factory)
	if err := SelfCheck(strategies); err != nil {
		return a.fail(err)
	}

	var host sysmon.Host
	if cfg.Verbose || cfg.JSONOutput != "" {
		host = sysmon.DescribeHost()
	}
	rep := report.New(host, report.Settings{
		N: cfg.N, Warmup: cfg.Warmup, BatchSize: cfg.BatchSize, GCMode: cfg.GCMode, PinCPU: cfg.PinCPU,
	})
	a.Logger.Debug("benchmark run starting",
		logging.String("run_id", rep.RunID),
		logging.Uint64("n", cfg.N),
		logging.Int("strategies", len(strategies)),
		logging.Int("batch", cfg.BatchSize),
	)

	if !cfg.Quiet {
		cli.PrintHeader(cfg.N, out)
	}
	if cfg.Verbose {
		cli.PrintExecutionConfig(cfg, host, out)
	}

	runnerOpts := append([]bench.Option{bench.WithLogger(a.Logger)}, a.runnerOpts...)
	if cfg.TraceOutput != "" {
		tp, err := tracing.NewFileProvider(cfg.TraceOutput, rep.RunID)
		if err != nil {
			return a.fail(err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				a.Logger.Error("flushing trace file", err)
			}
		}()
		runnerOpts = append(runnerOpts, bench.WithTracer(tp.Tracer()))
	}

	if cfg.PinCPU >= 0 {
		pinned, err := affinity.Pin(cfg.PinCPU)
		if err != nil {
			return a.fail(apperrors.NewConfigError("pin-cpu: %v", err))
		}
		defer func() {
			if err := pinned.Release(); err != nil {
				a.Logger.Error("releasing cpu pin", err)
			}
		}()
	}

	var recorder *metrics.Recorder
	observers := []orchestration.Observer{
		orchestration.ObserverFunc(func(o orchestration.Outcome) { rep.Add(o.Result, o.Memory) }),
	}
	if cfg.MetricsOutput != "" {
		recorder = metrics.NewRecorder(rep.RunID)
		recorder.SetRunInfo(strconv.Itoa(cfg.BatchSize), cfg.GCMode)
		observers = append(observers, orchestration.ObserverFunc(func(o orchestration.Outcome) {
			observe(recorder, o)
		}))
	}

	exec := &orchestration.Executor{
		Runner:    bench.NewRunner(runnerOpts...),
		Progress:  a.progressReporter(),
		Presenter: cli.CLIResultPresenter{},
		Observers: observers,
		Logger:    a.Logger.Zerolog(),
	}
	outcomes, err := exec.ExecuteBenchmarks(ctx, strategies, cfg, out)
	if err != nil {
		return a.fail(err)
	}

	if cfg.Verbose {
		cli.PresentSummary(outcomes, out)
		cli.DisplayMemoryStats(outcomes, out)
		cli.DisplayLoad(sysmon.Sample(), out)
		cli.DisplayCompletion(time.Since(start), out)
	}

	if cfg.JSONOutput != "" {
		if err := rep.WriteFile(cfg.JSONOutput); err != nil {
			return a.fail(err)
		}
	}
	if recorder != nil {
		if err := recorder.WriteTextfile(cfg.MetricsOutput); err != nil {
			return a.fail(fmt.Errorf("writing metrics: %w", err))
		}
	}

	if s := orchestration.Summarize(outcomes); s.Mismatched > 0 {
		a.Logger.Debug("run finished with incorrect results", logging.Int("mismatched", s.Mismatched))
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}

// observe records one outcome on the metrics recorder.
func observe(r *metrics.Recorder, o orchestration.Outcome) {
	res := o.Result
	r.ObserveMemory(res.Name, o.Memory)
	if o.Mismatched() {
		r.ObserveMismatch(res.Name)
		return
	}
	r.ObserveResult(res.Name, strconv.FormatUint(res.N, 10), res.Mean, res.Min.Nanoseconds(), res.Completed)
}

// progressReporter returns a spinner when -progress is set and stderr is
// interactive, and a no-op reporter otherwise.
func (a *Application) progressReporter() orchestration.ProgressReporter {
	if !a.Config.Progress || a.Config.Quiet || !isTerminal(a.ErrWriter) {
		return orchestration.NullProgressReporter{}
	}
	return cli.NewSpinnerProgressReporter(a.ErrWriter)
}

// fail prints the diagnostic for err on stderr and maps it to an exit code.
func (a *Application) fail(err error) int {
	if apperrors.IsContextError(err) {
		fmt.Fprintf(a.ErrWriter, "Interrupted: %v\n", err)
	} else {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	}
	a.Logger.Debug("run aborted", logging.Err(err))
	return apperrors.ExitCode(err)
}
