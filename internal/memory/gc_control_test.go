package memory

import (
	"runtime/debug"
	"testing"
)

var sink [][]byte

// These tests mutate process-wide collector settings and must not run in
// parallel.

func TestGCController_OffDisablesAndRestores(t *testing.T) {
	before := debug.SetGCPercent(100)
	defer debug.SetGCPercent(before)

	gc := NewGCController("off")
	if !gc.Active() {
		t.Fatal("off mode should be active")
	}
	gc.Begin()
	if got := debug.SetGCPercent(-1); got != -1 {
		t.Errorf("GC percent during measurement = %d, want -1", got)
	}
	gc.End()
	if got := debug.SetGCPercent(100); got != 100 {
		t.Errorf("GC percent after End = %d, want 100", got)
	}
}

func TestGCController_OffRestoresMemoryLimit(t *testing.T) {
	const userLimit = 512 << 20
	before := debug.SetMemoryLimit(userLimit)
	defer debug.SetMemoryLimit(before)

	gc := NewGCController("off")
	for i := 0; i < 2; i++ {
		gc.Begin()
		gc.End()
		if got := debug.SetMemoryLimit(-1); got != userLimit {
			t.Fatalf("memory limit after measurement %d = %d, want %d", i+1, got, userLimit)
		}
	}
}

func TestGCController_OnLeavesCollectorAlone(t *testing.T) {
	before := debug.SetGCPercent(100)
	defer debug.SetGCPercent(before)

	gc := NewGCController("on")
	if gc.Active() {
		t.Fatal("on mode should not be active")
	}
	gc.Begin()
	if got := debug.SetGCPercent(100); got != 100 {
		t.Errorf("GC percent changed to %d", got)
	}
	gc.End()
}

func TestGCController_StatsCountAllocations(t *testing.T) {
	gc := NewGCController("on")
	gc.Begin()
	var keep [][]byte
	for i := 0; i < 100; i++ {
		keep = append(keep, make([]byte, 1024))
	}
	gc.End()
	sink = keep

	st := gc.Stats()
	if st.TotalAlloc < 100*1024 {
		t.Errorf("TotalAlloc = %d, want at least %d", st.TotalAlloc, 100*1024)
	}
	if st.Mallocs == 0 {
		t.Error("Mallocs should be > 0")
	}
}
