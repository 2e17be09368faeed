// Package logging provides a unified logging interface for the benchmark
// harness. It abstracts the underlying zerolog implementation, allowing
// consistent structured logging across components.
package logging
