package fibonacci

import (
	"errors"
	"os"
	"strconv"
	"testing"

	"github.com/bytedance/sonic"

	apperrors "github.com/agbru/fibbench/internal/errors"
)

type goldenEntry struct {
	N          uint64 `json:"n"`
	Value      string `json:"value"`
	FitsUint64 bool   `json:"fits_uint64"`
}

type goldenFile struct {
	Entries []goldenEntry `json:"entries"`
}

func loadGolden(t *testing.T) []goldenEntry {
	t.Helper()
	data, err := os.ReadFile("testdata/fibonacci_golden.json")
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	var g goldenFile
	if err := sonic.Unmarshal(data, &g); err != nil {
		t.Fatalf("decoding golden file: %v", err)
	}
	if len(g.Entries) == 0 {
		t.Fatal("golden file has no entries")
	}
	return g.Entries
}

// TestGolden_LinearStrategies checks the linear-time strategies against the
// golden table on both sides of the uint64 boundary. Run
// `go run ./cmd/generate-golden` to regenerate it.
func TestGolden_LinearStrategies(t *testing.T) {
	t.Parallel()
	entries := loadGolden(t)
	memo := NewMemoStrategy(entries[len(entries)-1].N)
	strategies := []Strategy{
		memo,
		funcStrategy{key: KeyIterative, name: NameIterative, fn: Iterative},
		funcStrategy{key: KeyIterativeArray, name: NameIterativeArray, fn: IterativeArray},
	}

	for _, s := range strategies {
		t.Run(s.Name(), func(t *testing.T) {
			for _, e := range entries {
				if r, ok := s.(Resetter); ok {
					r.Reset()
				}
				got, err := s.Compute(e.N)
				if !e.FitsUint64 {
					var overflow apperrors.OverflowError
					if !errors.As(err, &overflow) {
						t.Errorf("F(%d): expected overflow, got %d, %v", e.N, got, err)
					}
					continue
				}
				if err != nil {
					t.Errorf("F(%d): unexpected error %v", e.N, err)
					continue
				}
				if strconv.FormatUint(got, 10) != e.Value {
					t.Errorf("F(%d) = %d, want %s", e.N, got, e.Value)
				}
			}
		})
	}
}

// TestGolden_Recursive covers naive recursion on the cheap prefix.
func TestGolden_Recursive(t *testing.T) {
	t.Parallel()
	for _, e := range loadGolden(t) {
		if e.N > 25 {
			break
		}
		got, err := Recursive(e.N)
		if err != nil {
			t.Fatalf("F(%d): %v", e.N, err)
		}
		if strconv.FormatUint(got, 10) != e.Value {
			t.Errorf("F(%d) = %d, want %s", e.N, got, e.Value)
		}
	}
}
