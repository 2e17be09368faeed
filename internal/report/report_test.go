package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/agbru/fibbench/internal/bench"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/metrics"
	"github.com/agbru/fibbench/internal/sysmon"
)

func TestReport_WriteFile(t *testing.T) {
	t.Parallel()

	r := New(sysmon.Host{GOOS: "linux", GOARCH: "amd64"}, Settings{N: 20, Warmup: 100, BatchSize: 1, GCMode: "on", PinCPU: -1})
	r.Add(bench.Result{
		Key: "loop", Name: "Fib Loop", Iterations: 10, Completed: 10,
		Mean: 12.5, Min: 9 * time.Nanosecond,
	}, metrics.MemoryDelta{TotalAlloc: 0})
	r.Add(bench.Result{
		Key: "rec", Name: "Fib Rec", Iterations: 10, Completed: 3,
		Err: apperrors.MismatchError{Strategy: "Fib Rec", N: 20, Got: 1, Want: 6765},
	}, metrics.MemoryDelta{TotalAlloc: 64, Mallocs: 2})

	path := filepath.Join(t.TempDir(), "report.json")
	if err := r.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got Report
	if err := sonic.Unmarshal(data, &got); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if _, err := uuid.Parse(got.RunID); err != nil {
		t.Errorf("run_id %q is not a UUID: %v", got.RunID, err)
	}
	if got.Settings.N != 20 || got.Host.GOOS != "linux" {
		t.Errorf("settings or host lost: %+v %+v", got.Settings, got.Host)
	}
	if len(got.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(got.Results))
	}
	if ok := got.Results[0]; ok.Status != StatusOK || ok.MeanNs != 12.5 || ok.MinNs != 9 {
		t.Errorf("unexpected ok entry: %+v", ok)
	}
	if bad := got.Results[1]; bad.Status != StatusMismatch || bad.MeanNs != 0 || bad.Error == "" || bad.AllocBytes != 64 {
		t.Errorf("unexpected mismatch entry: %+v", bad)
	}
}

func TestNew_UniqueRunIDs(t *testing.T) {
	t.Parallel()
	a := New(sysmon.Host{}, Settings{})
	b := New(sysmon.Host{}, Settings{})
	if a.RunID == b.RunID {
		t.Error("run IDs should differ")
	}
}
