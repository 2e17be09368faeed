// Package orchestration runs the selected strategies one after another through
// the benchmark driver and hands each outcome to the presentation layer. It
// decouples measurement from presentation via the ProgressReporter,
// ResultPresenter and Observer interfaces.
package orchestration
