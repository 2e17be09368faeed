// Command generate-golden writes the Fibonacci reference table used by the
// strategy tests. Values are computed with math/big so the table does not
// depend on any of the uint64 strategies it checks.
//
// Usage:
//
//	go run ./cmd/generate-golden -o internal/fibonacci/testdata/fibonacci_golden.json
package main

import (
	"flag"
	"fmt"
	"math"
	"math/big"
	"os"

	"github.com/bytedance/sonic"
)

// goldenEntry is one row of the reference table.
type goldenEntry struct {
	N          uint64 `json:"n"`
	Value      string `json:"value"`
	FitsUint64 bool   `json:"fits_uint64"`
}

// goldenFile is the on-disk layout of the reference table.
type goldenFile struct {
	Description string        `json:"description"`
	Entries     []goldenEntry `json:"entries"`
}

// fibBig returns F(n) with arbitrary precision.
func fibBig(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

func buildGolden(maxN uint64) goldenFile {
	limit := new(big.Int).SetUint64(math.MaxUint64)
	g := goldenFile{
		Description: fmt.Sprintf("Fibonacci reference values F(0)..F(%d) generated with math/big", maxN),
		Entries:     make([]goldenEntry, 0, maxN+1),
	}
	for n := uint64(0); n <= maxN; n++ {
		v := fibBig(n)
		g.Entries = append(g.Entries, goldenEntry{N: n, Value: v.String(), FitsUint64: v.Cmp(limit) <= 0})
	}
	return g
}

func main() {
	out := flag.String("o", "internal/fibonacci/testdata/fibonacci_golden.json", "output file")
	maxN := flag.Uint64("max", 100, "largest index to include")
	flag.Parse()

	data, err := sonic.ConfigStd.MarshalIndent(buildGolden(*maxN), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding golden table: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d entries to %s\n", *maxN+1, *out)
}
