package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibbench/internal/config"
	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/sysmon"
	"github.com/agbru/fibbench/internal/ui"
)

// PrintHeader writes the line announcing the benchmarked index.
func PrintHeader(n uint64, out io.Writer) {
	fmt.Fprintf(out, "Running Fibonacci benchmarks (n=%d)...\n", n)
}

// PrintExecutionConfig displays the run parameters and the host.
//
// Parameters:
//   - cfg: The application configuration.
//   - host: The host description.
//   - out: The writer for the configuration block.
func PrintExecutionConfig(cfg config.AppConfig, host sysmon.Host, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	mode := "per-call timing"
	if cfg.Batched() {
		mode = fmt.Sprintf("batches of %d calls", cfg.BatchSize)
	}
	fmt.Fprintf(out, "Benchmarking %sF(%d)%s with %s%s%s, %d warm-up calls, GC %s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(), ui.ColorYellow(), mode, ui.ColorReset(), cfg.Warmup, cfg.GCMode)
	model := host.CPUModel
	if model == "" {
		model = "unknown CPU"
	}
	fmt.Fprintf(out, "Environment: %s%s%s, %d logical processors, %s memory, %s %s/%s.\n",
		ui.ColorCyan(), model, ui.ColorReset(), host.LogicalCPUs,
		format.FormatBytes(host.TotalMemory), host.GoVersion, host.GOOS, host.GOARCH)
	if cfg.PinCPU >= 0 {
		fmt.Fprintf(out, "Pinned to CPU %d.\n", cfg.PinCPU)
	}
	fmt.Fprintf(out, "\n")
}

// DisplayMemoryStats shows the allocation activity of each measurement.
func DisplayMemoryStats(outcomes []orchestration.Outcome, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	for _, o := range outcomes {
		fmt.Fprintf(out, "  %-20s %10s in %d allocations, %d GC cycles\n",
			o.Result.Name, format.FormatBytes(o.Memory.TotalAlloc), o.Memory.Mallocs, o.Memory.NumGC)
	}
}

// DisplayLoad prints a one-line system load sample.
func DisplayLoad(s sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "System load: CPU %.1f%%, memory %.1f%%\n", s.CPUPercent, s.MemPercent)
}

// DisplayCompletion prints the total wall time of the run.
func DisplayCompletion(total time.Duration, out io.Writer) {
	fmt.Fprintf(out, "Completed in %s.\n", format.FormatDuration(total))
}
