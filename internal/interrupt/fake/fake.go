package fake

import "sync/atomic"

// Source is a controllable interrupt source. It stands in for the keyboard in
// tests and in environments without global key state.
type Source struct {
	pause  atomic.Bool
	resume atomic.Bool
	stop   atomic.Bool
}

// New creates a Source with no keys pressed.
func New() *Source {
	return &Source{}
}

// PressPause holds the pause key down until Release.
func (s *Source) PressPause() { s.pause.Store(true) }

// PressResume holds the resume key down until Release.
func (s *Source) PressResume() { s.resume.Store(true) }

// PressStop holds the stop key down until Release.
func (s *Source) PressStop() { s.stop.Store(true) }

// Release releases every key.
func (s *Source) Release() {
	s.pause.Store(false)
	s.resume.Store(false)
	s.stop.Store(false)
}

// PausePressed reports whether the pause key is held.
func (s *Source) PausePressed() bool { return s.pause.Load() }

// ResumePressed reports whether the resume key is held.
func (s *Source) ResumePressed() bool { return s.resume.Load() }

// StopPressed reports whether the stop key is held.
func (s *Source) StopPressed() bool { return s.stop.Load() }
