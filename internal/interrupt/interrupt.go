// Package interrupt reports the live state of the bot control keys.
package interrupt

// Source reports which control keys are currently pressed. The bot supervisor
// polls a Source at safe points, so implementations must be cheap and safe for
// concurrent use.
type Source interface {
	// PausePressed reports whether the pause key ("-") is down.
	PausePressed() bool
	// ResumePressed reports whether the resume key ("=") is down.
	ResumePressed() bool
	// StopPressed reports whether the stop key (ESC) is down.
	StopPressed() bool
}

// Noop is a Source that never reports a key press.
const Noop = noop(0)

type noop int

var _ Source = Noop

func (noop) PausePressed() bool  { return false }
func (noop) ResumePressed() bool { return false }
func (noop) StopPressed() bool   { return false }
