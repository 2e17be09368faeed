package fibonacci

import (
	"errors"
	"math"
	"testing"

	apperrors "github.com/agbru/fibbench/internal/errors"
)

// computeFuncs returns every strategy as a plain function, the memoized one
// wrapped with a fresh table per call.
func computeFuncs() map[string]func(uint64) (uint64, error) {
	return map[string]func(uint64) (uint64, error){
		NameRecursive: Recursive,
		NameMemoized: func(n uint64) (uint64, error) {
			return Memoized(n, make([]uint64, n+1))
		},
		NameIterative:      Iterative,
		NameIterativeArray: IterativeArray,
	}
}

func TestStrategies_KnownValues(t *testing.T) {
	t.Parallel()
	for name, fn := range computeFuncs() {
		fn := fn
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			for n, want := range KnownValues {
				got, err := fn(uint64(n))
				if err != nil {
					t.Fatalf("F(%d) returned error: %v", n, err)
				}
				if got != want {
					t.Errorf("F(%d) = %d, want %d", n, got, want)
				}
			}
		})
	}
}

func TestStrategies_Boundaries(t *testing.T) {
	t.Parallel()
	for name, fn := range computeFuncs() {
		fn := fn
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got, err := fn(0); err != nil || got != 0 {
				t.Errorf("F(0) = %d, %v; want 0, nil", got, err)
			}
			if got, err := fn(1); err != nil || got != 1 {
				t.Errorf("F(1) = %d, %v; want 1, nil", got, err)
			}
			if got, err := fn(20); err != nil || got != 6765 {
				t.Errorf("F(20) = %d, %v; want 6765, nil", got, err)
			}
		})
	}
}

func TestStrategies_LargestRepresentable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fn   func(uint64) (uint64, error)
	}{
		{NameMemoized, func(n uint64) (uint64, error) { return Memoized(n, make([]uint64, n+1)) }},
		{NameIterative, Iterative},
		{NameIterativeArray, IterativeArray},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.fn(MaxRepresentableN)
			if err != nil {
				t.Fatalf("F(93) returned error: %v", err)
			}
			if got != F93 {
				t.Errorf("F(93) = %d, want %d", got, F93)
			}
		})
	}
}

func TestStrategies_OverflowIsReported(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fn   func(uint64) (uint64, error)
	}{
		{NameMemoized, func(n uint64) (uint64, error) { return Memoized(n, make([]uint64, n+1)) }},
		{NameIterative, Iterative},
		{NameIterativeArray, IterativeArray},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.fn(MaxRepresentableN + 1)
			var overflow apperrors.OverflowError
			if !errors.As(err, &overflow) {
				t.Fatalf("expected OverflowError, got value %d and error %v", got, err)
			}
			if overflow.Strategy != tt.name {
				t.Errorf("overflow attributed to %q, want %q", overflow.Strategy, tt.name)
			}
			if got != 0 {
				t.Errorf("expected no value on overflow, got %d", got)
			}
			if !apperrors.IsFatal(err) {
				t.Error("overflow must be fatal")
			}
		})
	}
}

// Recursive cannot reach F(94) in reasonable time, so its guard is exercised
// through the shared helper.
func TestCheckedAdd(t *testing.T) {
	t.Parallel()
	if v, err := checkedAdd(math.MaxUint64-1, 1, NameRecursive, 1); err != nil || v != math.MaxUint64 {
		t.Errorf("checkedAdd at the limit = %d, %v", v, err)
	}
	_, err := checkedAdd(math.MaxUint64, 1, NameRecursive, 94)
	var overflow apperrors.OverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("expected OverflowError, got %v", err)
	}
	if overflow.Strategy != NameRecursive || overflow.N != 94 {
		t.Errorf("unexpected overflow details: %+v", overflow)
	}
}

func TestMemoized_CapacityViolation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		n        uint64
		cacheLen int
	}{
		{"index equal to length", 20, 20},
		{"index beyond length", 25, 21},
		{"empty table", 0, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Memoized(tt.n, make([]uint64, tt.cacheLen))
			var capErr apperrors.CapacityError
			if !errors.As(err, &capErr) {
				t.Fatalf("expected CapacityError, got %v", err)
			}
			if capErr.Index != tt.n || capErr.Capacity != tt.cacheLen {
				t.Errorf("unexpected capacity details: %+v", capErr)
			}
		})
	}
}

func TestMemoized_FillsCache(t *testing.T) {
	t.Parallel()
	cache := make([]uint64, 21)
	if _, err := Memoized(20, cache); err != nil {
		t.Fatal(err)
	}
	for i := 2; i <= 20; i++ {
		if cache[i] != KnownValues[i] {
			t.Errorf("cache[%d] = %d, want %d", i, cache[i], KnownValues[i])
		}
	}
}

// A stale entry is returned as-is; this is why the driver resets the table.
func TestMemoized_StaleEntryIsTrusted(t *testing.T) {
	t.Parallel()
	cache := make([]uint64, 21)
	cache[20] = 42
	got, err := Memoized(20, cache)
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Errorf("expected stale value 42, got %d", got)
	}
}

func TestIterativeArray_ResourceLimit(t *testing.T) {
	t.Parallel()
	_, err := IterativeArray(MaxArrayLen)
	var resErr apperrors.ResourceError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected ResourceError, got %v", err)
	}
	if resErr.Limit != MaxArrayLen {
		t.Errorf("limit = %d, want %d", resErr.Limit, MaxArrayLen)
	}
}

func TestMemoStrategy_ResetIsIdempotent(t *testing.T) {
	t.Parallel()
	m := NewMemoStrategy(DefaultN)
	for i := 0; i < 5; i++ {
		m.Reset()
		got, err := m.Compute(DefaultN)
		if err != nil {
			t.Fatal(err)
		}
		if got != 6765 {
			t.Fatalf("run %d: F(20) = %d, want 6765", i, got)
		}
	}
}

func TestMemoStrategy_Prepare(t *testing.T) {
	t.Parallel()
	m := NewMemoStrategy(5)
	if m.Capacity() != 6 {
		t.Errorf("Capacity() = %d, want 6", m.Capacity())
	}
	if _, err := m.Compute(6); err == nil {
		t.Error("expected capacity error for index 6")
	}
	m.Prepare(21)
	if m.Capacity() != 22 {
		t.Errorf("Capacity() after Prepare(21) = %d, want 22", m.Capacity())
	}
	got, err := m.Compute(21)
	if err != nil || got != 10946 {
		t.Errorf("F(21) = %d, %v; want 10946", got, err)
	}
}

func TestDefaultFactory(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	t.Run("List keeps reporting order", func(t *testing.T) {
		t.Parallel()
		want := []string{KeyRecursive, KeyMemoized, KeyIterative, KeyIterativeArray}
		got := factory.List()
		if len(got) != len(want) {
			t.Fatalf("List() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("Get unknown key fails", func(t *testing.T) {
		t.Parallel()
		if _, err := factory.Get("fast"); err == nil {
			t.Error("expected error for unknown key")
		}
	})

	t.Run("Get returns independent memo instances", func(t *testing.T) {
		t.Parallel()
		a, _ := factory.Get(KeyMemoized)
		b, _ := factory.Get(KeyMemoized)
		if a == b {
			t.Error("expected distinct instances")
		}
	})

	t.Run("GetAll agrees on F(20)", func(t *testing.T) {
		t.Parallel()
		for _, s := range factory.GetAll() {
			if r, ok := s.(Resetter); ok {
				r.Reset()
			}
			got, err := s.Compute(20)
			if err != nil || got != 6765 {
				t.Errorf("%s: F(20) = %d, %v", s.Name(), got, err)
			}
		}
	})
}
