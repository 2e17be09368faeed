// Package config parses the benchmark harness configuration from command-line
// flags and FIBBENCH_* environment variables.
//
// Priority: CLI flags > environment variables > defaults. With no flags and no
// environment the harness reproduces the reference run: F(20), all four
// strategies, per-call timing, a warm-up of 100 calls.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "FIBBENCH_"

// GC modes accepted by -gc.
const (
	GCModeOn  = "on"
	GCModeOff = "off"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the Fibonacci index benchmarked.
	N uint64
	// Algo is "all" or a comma-separated list of strategy keys.
	Algo string
	// Iterations overrides the per-strategy count of timed calls when > 0.
	Iterations int
	// Warmup is the number of untimed calls per strategy.
	Warmup int
	// BatchSize selects batched timing when > 1.
	BatchSize int
	// Quiet suppresses the header line.
	Quiet bool
	// Verbose enables debug logs, the host header and the summary table.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// Progress shows a spinner on stderr while each strategy is measured. Its
	// goroutine redraws during timed calls, so it is off by default.
	Progress bool
	// JSONOutput is the path of the JSON report ("" disables it).
	JSONOutput string
	// MetricsOutput is the path of the Prometheus textfile ("" disables it).
	MetricsOutput string
	// TraceOutput is the path of the OpenTelemetry span file ("" disables it).
	TraceOutput string
	// PinCPU pins the benchmarking thread to this CPU when >= 0.
	PinCPU int
	// GCMode is "on" (leave the collector alone) or "off" (disable it during
	// each measurement).
	GCMode string
	// Gops starts the gops diagnostics agent for the duration of the run.
	Gops bool
}

// Default returns the reference configuration.
func Default() AppConfig {
	return AppConfig{
		N:         fibonacci.DefaultN,
		Algo:      "all",
		Warmup:    fibonacci.DefaultWarmup,
		BatchSize: 1,
		PinCPU:    -1,
		GCMode:    GCModeOn,
	}
}

// DefaultIterations maps each strategy key to the iteration count of the
// reference run. Slower strategies get fewer iterations.
var DefaultIterations = map[string]int{
	fibonacci.KeyRecursive:      10_000,
	fibonacci.KeyMemoized:       3_000,
	fibonacci.KeyIterative:      5_000_000,
	fibonacci.KeyIterativeArray: 100_000,
}

// fallbackIterations is used for strategies missing from DefaultIterations.
const fallbackIterations = 10_000

// IterationsFor returns the number of timed calls for a strategy key,
// honoring the global override. Batching groups these calls and does not
// change their number.
func (c AppConfig) IterationsFor(key string) int {
	if c.Iterations > 0 {
		return c.Iterations
	}
	if n, ok := DefaultIterations[key]; ok {
		return n
	}
	return fallbackIterations
}

// Batched reports whether batched timing is selected.
func (c AppConfig) Batched() bool { return c.BatchSize > 1 }

// SelectedAlgos returns the strategy keys named by Algo.
func (c AppConfig) SelectedAlgos(available []string) []string {
	if c.Algo == "" || c.Algo == "all" {
		return available
	}
	var keys []string
	for _, k := range strings.Split(c.Algo, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// ParseConfig parses args into an AppConfig, applies environment overrides
// for flags not given explicitly, and validates the result.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errWriter: Where usage and parse errors are written.
//   - availableAlgos: The registered strategy keys.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for -h, a ConfigError for unknown flags and invalid
//     values.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	cfg := Default()
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(errWriter, "Benchmarks Fibonacci strategies (%s) and prints mean and minimum ns per call.\n\n",
			strings.Join(availableAlgos, ", "))
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEvery flag can also be set with a %s<NAME> environment variable.\n", EnvPrefix)
	}

	fs.Uint64Var(&cfg.N, "n", cfg.N, "Fibonacci index to compute")
	fs.StringVar(&cfg.Algo, "algo", cfg.Algo, "strategies to run: 'all' or a comma-separated list of "+strings.Join(availableAlgos, ", "))
	fs.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "timed calls per strategy; 0 uses per-strategy defaults")
	fs.IntVar(&cfg.Warmup, "warmup", cfg.Warmup, "untimed warm-up calls per strategy")
	fs.IntVar(&cfg.BatchSize, "batch", cfg.BatchSize,
		fmt.Sprintf("calls per timed batch; 1 times every call individually (typical batched value: %d)", fibonacci.DefaultBatchSize))
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "print benchmark rows only")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "shorthand for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "debug logs, host details and a summary table")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "shorthand for -verbose")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	fs.BoolVar(&cfg.Progress, "progress", cfg.Progress, "show a spinner on stderr during measurement (adds a background goroutine)")
	fs.StringVar(&cfg.JSONOutput, "json", cfg.JSONOutput, "write a JSON report to this file")
	fs.StringVar(&cfg.MetricsOutput, "metrics", cfg.MetricsOutput, "write Prometheus metrics in textfile format to this file")
	fs.StringVar(&cfg.TraceOutput, "trace", cfg.TraceOutput, "write one OpenTelemetry span per strategy to this file")
	fs.IntVar(&cfg.PinCPU, "pin-cpu", cfg.PinCPU, "pin the benchmarking thread to this CPU (-1 disables)")
	fs.StringVar(&cfg.GCMode, "gc", cfg.GCMode, "garbage collector during measurement: on or off")
	fs.BoolVar(&cfg.Gops, "gops", cfg.Gops, "start the gops diagnostics agent")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		// The flag package has already printed the error and usage.
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(availableAlgos); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and strategy names.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Iterations < 0 {
		return apperrors.NewConfigError("iterations must be >= 0, got %d", c.Iterations)
	}
	if c.Warmup < 0 {
		return apperrors.NewConfigError("warmup must be >= 0, got %d", c.Warmup)
	}
	if c.BatchSize < 1 {
		return apperrors.NewConfigError("batch must be >= 1, got %d", c.BatchSize)
	}
	if c.GCMode != GCModeOn && c.GCMode != GCModeOff {
		return apperrors.NewConfigError("gc must be %q or %q, got %q", GCModeOn, GCModeOff, c.GCMode)
	}
	selected := c.SelectedAlgos(availableAlgos)
	if len(selected) == 0 {
		return apperrors.NewConfigError("no strategy selected")
	}
	known := make(map[string]bool, len(availableAlgos))
	for _, a := range availableAlgos {
		known[a] = true
	}
	for _, k := range selected {
		if !known[k] {
			return apperrors.NewConfigError("unknown strategy %q (available: %s)", k, strings.Join(availableAlgos, ", "))
		}
	}
	return nil
}
