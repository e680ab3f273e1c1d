//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/darksharpness/int2048/internal/format"
)

// FormatExecutionDuration formats an evaluation time for display.
func FormatExecutionDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

const (
	// TruncationLimit is the digit count above which interactive output
	// shows only the edges of a result.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept at each end of a
	// truncated result.
	DisplayEdges = 25
	// SpinnerRefreshRate is the spinner frame interval.
	SpinnerRefreshRate = 120 * time.Millisecond
)

// spinnerDelay is how long an evaluation runs before the spinner appears,
// so quick expressions never flicker.
var spinnerDelay = 300 * time.Millisecond

// Spinner abstracts the terminal activity indicator shown while a long
// evaluation runs.
type Spinner interface {
	// Start begins the animation.
	Start()
	// Stop halts the animation and clears its line.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, spinner.WithWriter(out), spinner.WithHiddenCursor(true))
	return &realSpinner{s}
}

// NewSpinner returns the terminal spinner used for long evaluations.
func NewSpinner(out io.Writer) Spinner { return newSpinner(out) }
