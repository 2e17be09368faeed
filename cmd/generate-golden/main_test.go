package main

import (
	"math"
	"math/big"
	"testing"
)

func TestFibBig_ReferencePoints(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{2, "1"},
		{20, "6765"},
		{92, "7540113804746346429"},
		{93, "12200160415121876738"},
		{94, "19740274219868223167"},
	}
	for _, tt := range tests {
		if got := fibBig(tt.n).String(); got != tt.want {
			t.Errorf("fibBig(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

// F(93) is the last value that fits in a uint64 and F(94) the first that
// does not.
func TestFibBig_Uint64Boundary(t *testing.T) {
	t.Parallel()
	if !fibBig(93).IsUint64() {
		t.Error("F(93) should fit in a uint64")
	}
	if fibBig(94).IsUint64() {
		t.Error("F(94) should not fit in a uint64")
	}
	limit := new(big.Int).SetUint64(math.MaxUint64)
	sum := new(big.Int).Add(fibBig(92), fibBig(93))
	if sum.Cmp(limit) <= 0 {
		t.Errorf("F(92)+F(93) = %s should exceed MaxUint64", sum)
	}
}

// TestBuildGolden checks the uint64 boundary flag and table length.
func TestBuildGolden(t *testing.T) {
	t.Parallel()
	g := buildGolden(100)
	if len(g.Entries) != 101 {
		t.Fatalf("expected 101 entries, got %d", len(g.Entries))
	}
	for _, e := range g.Entries {
		want := e.N <= 93
		if e.FitsUint64 != want {
			t.Errorf("F(%d): FitsUint64 = %v, want %v", e.N, e.FitsUint64, want)
		}
	}
	if g.Entries[20].Value != "6765" {
		t.Errorf("F(20) = %s, want 6765", g.Entries[20].Value)
	}
}
