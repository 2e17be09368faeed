//go:generate mockgen -source=strategy.go -destination=mocks/mock_strategy.go -package=mocks

package fibonacci

import (
	"fmt"
	"sync"
)

// Strategy is one algorithm for computing a Fibonacci number, in the shape the
// benchmark driver consumes.
type Strategy interface {
	// Key is the short identifier used on the command line (e.g. "loop").
	Key() string
	// Name is the human-readable name printed in reports.
	Name() string
	// Compute returns F(n).
	Compute(n uint64) (uint64, error)
}

// Resetter is implemented by strategies that keep state between calls. The
// driver calls Prepare once with the largest index it will request, and Reset
// before every call so that no call observes another call's cache.
type Resetter interface {
	Prepare(maxN uint64)
	Reset()
}

// funcStrategy adapts a stateless strategy function.
type funcStrategy struct {
	key  string
	name string
	fn   func(uint64) (uint64, error)
}

func (s funcStrategy) Key() string                      { return s.key }
func (s funcStrategy) Name() string                     { return s.name }
func (s funcStrategy) Compute(n uint64) (uint64, error) { return s.fn(n) }

// MemoStrategy runs Memoized over a table it owns. It is not safe for
// concurrent use.
type MemoStrategy struct {
	cache []uint64
}

// NewMemoStrategy returns a MemoStrategy with a table sized for indices up to
// maxN.
func NewMemoStrategy(maxN uint64) *MemoStrategy {
	m := &MemoStrategy{}
	m.Prepare(maxN)
	return m
}

// Key implements Strategy.
func (m *MemoStrategy) Key() string { return KeyMemoized }

// Name implements Strategy.
func (m *MemoStrategy) Name() string { return NameMemoized }

// Compute implements Strategy. It does not clear the table; callers that need
// independent computations call Reset first.
func (m *MemoStrategy) Compute(n uint64) (uint64, error) {
	return Memoized(n, m.cache)
}

// Prepare sizes the table to hold indices 0..maxN and zeroes it.
func (m *MemoStrategy) Prepare(maxN uint64) {
	size := maxN + 1
	if size > MaxArrayLen {
		size = MaxArrayLen
	}
	if uint64(cap(m.cache)) >= size {
		m.cache = m.cache[:size]
	} else {
		m.cache = make([]uint64, size)
	}
	m.Reset()
}

// Reset zeroes the table.
func (m *MemoStrategy) Reset() {
	clear(m.cache)
}

// Capacity returns the table length.
func (m *MemoStrategy) Capacity() int { return len(m.cache) }

// Verify interface compliance.
var (
	_ Strategy = funcStrategy{}
	_ Strategy = (*MemoStrategy)(nil)
	_ Resetter = (*MemoStrategy)(nil)
)

// Factory creates and lists the available strategies.
type Factory interface {
	// List returns the registered keys in reporting order.
	List() []string
	// Get returns the strategy registered under key.
	Get(key string) (Strategy, error)
	// GetAll returns every registered strategy in reporting order.
	GetAll() []Strategy
}

// DefaultFactory is a Factory whose strategies are registered in order.
type DefaultFactory struct {
	mu    sync.RWMutex
	order []string
	byKey map[string]func() Strategy
}

// NewDefaultFactory returns a factory with the four built-in strategies,
// registered in the order the reports list them.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{byKey: make(map[string]func() Strategy)}
	f.Register(KeyRecursive, func() Strategy {
		return funcStrategy{key: KeyRecursive, name: NameRecursive, fn: Recursive}
	})
	f.Register(KeyMemoized, func() Strategy {
		return NewMemoStrategy(DefaultN + 1)
	})
	f.Register(KeyIterative, func() Strategy {
		return funcStrategy{key: KeyIterative, name: NameIterative, fn: Iterative}
	})
	f.Register(KeyIterativeArray, func() Strategy {
		return funcStrategy{key: KeyIterativeArray, name: NameIterativeArray, fn: IterativeArray}
	})
	return f
}

// Register adds or replaces a strategy constructor. A new key is appended to
// the reporting order.
func (f *DefaultFactory) Register(key string, create func() Strategy) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byKey[key]; !exists {
		f.order = append(f.order, key)
	}
	f.byKey[key] = create
}

// List implements Factory.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, len(f.order))
	copy(keys, f.order)
	return keys
}

// Get implements Factory. Each call returns a fresh instance, so stateful
// strategies are never shared between benchmark runs.
func (f *DefaultFactory) Get(key string) (Strategy, error) {
	f.mu.RLock()
	create, ok := f.byKey[key]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", key)
	}
	return create(), nil
}

// GetAll implements Factory.
func (f *DefaultFactory) GetAll() []Strategy {
	keys := f.List()
	all := make([]Strategy, 0, len(keys))
	for _, k := range keys {
		if s, err := f.Get(k); err == nil {
			all = append(all, s)
		}
	}
	return all
}
