//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibbench/internal/orchestration"
)

// SpinnerRefreshRate defines the refresh frequency of the spinner. It is kept
// low so the animation goroutine barely competes with the measurement.
const SpinnerRefreshRate = 200 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// SpinnerProgressReporter implements orchestration.ProgressReporter with a
// spinner written to w, normally stderr. End runs before each result row is
// written, so rows and animation never interleave.
type SpinnerProgressReporter struct {
	spinner Spinner
}

// Verify interface compliance.
var _ orchestration.ProgressReporter = (*SpinnerProgressReporter)(nil)

// NewSpinnerProgressReporter creates a reporter drawing on w.
func NewSpinnerProgressReporter(w io.Writer) *SpinnerProgressReporter {
	return &SpinnerProgressReporter{spinner: newSpinner(spinner.WithWriter(w))}
}

// Begin starts the spinner with the strategy name and call count.
func (r *SpinnerProgressReporter) Begin(name string, calls int) {
	r.spinner.UpdateSuffix(fmt.Sprintf(" measuring %s (%d calls)", name, calls))
	r.spinner.Start()
}

// End stops and clears the spinner.
func (r *SpinnerProgressReporter) End() {
	r.spinner.Stop()
}
