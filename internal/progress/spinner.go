package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner is an activity indicator. A disabled Spinner prints nothing, so
// callers never need to branch on terminal state.
type Spinner struct {
	mu      sync.Mutex
	w       io.Writer
	spin    *spinner.Spinner
	symbols ProgressSymbols
	color   bool
	enabled bool
	active  bool
}

// NewSpinner returns a spinner writing to w. It is enabled only when caps
// reports a TTY and enabled is true.
func NewSpinner(w io.Writer, caps TerminalCapabilities, enabled bool) *Spinner {
	symbols := SelectSymbols(caps)
	s := &Spinner{
		w:       w,
		symbols: symbols,
		color:   caps.SupportsColor,
		enabled: enabled && caps.IsTTY,
	}
	if s.enabled {
		s.spin = spinner.New(spinner.CharSets[symbols.SpinnerSet], spinnerInterval,
			spinner.WithWriter(w), spinner.WithHiddenCursor(true))
		if caps.SupportsColor {
			_ = s.spin.Color("cyan")
		}
	}
	return s
}

// Enabled reports whether the spinner draws anything.
func (s *Spinner) Enabled() bool {
	return s.enabled
}

// Start shows message next to the spinner.
func (s *Spinner) Start(message string) {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spin.Suffix = " " + message
	if !s.active {
		s.spin.Start()
		s.active = true
	}
}

// Update replaces the message of a running spinner.
func (s *Spinner) Update(message string) {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spin.Lock()
	s.spin.Suffix = " " + message
	s.spin.Unlock()
}

// Stop hides the spinner without printing a status line.
func (s *Spinner) Stop() {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		s.spin.Stop()
		s.active = false
	}
}

// Success stops the spinner and prints message with a checkmark.
func (s *Spinner) Success(message string) {
	s.finish(s.symbols.Checkmark, color.FgGreen, message)
}

// Fail stops the spinner and prints message with a failure mark.
func (s *Spinner) Fail(message string) {
	s.finish(s.symbols.Failure, color.FgRed, message)
}

func (s *Spinner) finish(symbol string, attr color.Attribute, message string) {
	if !s.enabled {
		return
	}
	s.Stop()
	if s.color {
		symbol = color.New(attr).Sprint(symbol)
	}
	fmt.Fprintf(s.w, "%s %s\n", symbol, message)
}
