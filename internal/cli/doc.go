// Package cli renders benchmark output on the console: the header line, one
// fixed-format row per strategy, mismatch diagnostics, a spinner on stderr
// and, in verbose mode, a summary table.
package cli
