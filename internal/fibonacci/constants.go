package fibonacci

// ─────────────────────────────────────────────────────────────────────────────
// Benchmark Defaults
// ─────────────────────────────────────────────────────────────────────────────
//
// These constants reproduce the reference harness: F(20) timed with a warm-up
// of 100 untimed calls per strategy.

const (
	// DefaultN is the Fibonacci index benchmarked when none is configured.
	DefaultN uint64 = 20

	// DefaultWarmup is the number of untimed calls executed before measuring.
	DefaultWarmup = 100

	// DefaultBatchSize is the number of calls timed together in batched mode.
	DefaultBatchSize = 100

	// MaxRepresentableN is the largest index whose Fibonacci number fits in a
	// uint64. F(94) overflows.
	MaxRepresentableN uint64 = 93

	// MaxArrayLen caps the auxiliary buffer of the linear-space strategy.
	// Any index that could produce a representable result needs far less, so
	// requests above it are treated as allocation failures instead of being
	// handed to the runtime allocator.
	MaxArrayLen uint64 = 1 << 24
)

// Strategy keys, in reporting order.
const (
	KeyRecursive      = "rec"
	KeyMemoized       = "memo"
	KeyIterative      = "loop"
	KeyIterativeArray = "loop-memory"
)

// KnownValues holds F(0) through F(20), used as an independent oracle for the
// startup self-check and tests.
var KnownValues = [...]uint64{
	0, 1, 1, 2, 3, 5, 8, 13, 21, 34,
	55, 89, 144, 233, 377, 610, 987, 1597, 2584, 4181,
	6765,
}

// F93 is the largest Fibonacci number representable as a uint64.
const F93 uint64 = 12200160415121876738
