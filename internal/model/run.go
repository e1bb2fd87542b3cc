package model

import "time"

// Run is a single execution of a bot, from start to stop.
type Run struct {
	// ID is the run identifier (ULID).
	ID string
	// Bot is the registry name of the bot that ran.
	Bot string
	// StartedAt is when the run transitioned to running.
	StartedAt time.Time
	// StoppedAt is when the run transitioned to stopped, nil while running.
	StoppedAt *time.Time
	// Progress is the last progress value reported by the bot, in [0,1].
	Progress float64
}
