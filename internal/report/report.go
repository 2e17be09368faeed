// Package report writes a machine-readable JSON record of a benchmark run.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/agbru/fibbench/internal/bench"
	"github.com/agbru/fibbench/internal/metrics"
	"github.com/agbru/fibbench/internal/sysmon"
)

// Result statuses.
const (
	StatusOK       = "ok"
	StatusMismatch = "mismatch"
)

// Settings are the run parameters shared by every entry.
type Settings struct {
	N         uint64 `json:"n"`
	Warmup    int    `json:"warmup"`
	BatchSize int    `json:"batch_size"`
	GCMode    string `json:"gc_mode"`
	PinCPU    int    `json:"pin_cpu"`
}

// Entry is the outcome of one strategy.
type Entry struct {
	Key        string  `json:"key"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	Iterations int     `json:"iterations"`
	Completed  int     `json:"completed"`
	MeanNs     float64 `json:"mean_ns,omitempty"`
	MinNs      int64   `json:"min_ns,omitempty"`
	AllocBytes uint64  `json:"alloc_bytes"`
	Mallocs    uint64  `json:"mallocs"`
	Error      string  `json:"error,omitempty"`
}

// Report is the JSON document.
type Report struct {
	RunID     string      `json:"run_id"`
	Timestamp time.Time   `json:"timestamp"`
	Host      sysmon.Host `json:"host"`
	Settings  Settings    `json:"settings"`
	Results   []Entry     `json:"results"`
}

// New starts a report with a fresh run ID.
func New(host sysmon.Host, settings Settings) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Host:      host,
		Settings:  settings,
		Results:   []Entry{},
	}
}

// Add appends the outcome of one measurement. Statistics of a mismatched
// measurement are omitted.
func (r *Report) Add(res bench.Result, mem metrics.MemoryDelta) {
	e := Entry{
		Key:        res.Key,
		Name:       res.Name,
		Status:     StatusOK,
		Iterations: res.Iterations,
		Completed:  res.Completed,
		AllocBytes: mem.TotalAlloc,
		Mallocs:    mem.Mallocs,
	}
	if res.Err != nil {
		e.Status = StatusMismatch
		e.Error = res.Err.Error()
	} else {
		e.MeanNs = res.Mean
		e.MinNs = res.Min.Nanoseconds()
	}
	r.Results = append(r.Results, e)
}

// Marshal encodes the report as indented JSON.
func (r *Report) Marshal() ([]byte, error) {
	data, err := sonic.ConfigStd.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile writes the report to path.
func (r *Report) WriteFile(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
