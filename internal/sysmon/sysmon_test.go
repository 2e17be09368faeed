package sysmon

import (
	"runtime"
	"testing"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestDescribeHost(t *testing.T) {
	h := DescribeHost()
	if h.GOOS != runtime.GOOS || h.GOARCH != runtime.GOARCH {
		t.Errorf("platform = %s/%s, want %s/%s", h.GOOS, h.GOARCH, runtime.GOOS, runtime.GOARCH)
	}
	if h.GoVersion == "" {
		t.Error("GoVersion should be set")
	}
	if h.GOMAXPROCS < 1 {
		t.Errorf("GOMAXPROCS = %d", h.GOMAXPROCS)
	}
	if h.LogicalCPUs < 0 || h.PhysicalCPUs < 0 {
		t.Errorf("negative CPU counts: %+v", h)
	}
}
