// Package bot runs screen automation scripts under a pausable, stoppable
// supervisor.
package bot

import (
	"github.com/spacebear01/osbc/internal/model"
	"github.com/spacebear01/osbc/internal/options"
)

// Controller receives user-facing updates from a bot supervisor. Calls may
// come from the bot's worker goroutine, so implementations must be safe for
// concurrent use.
type Controller interface {
	// UpdateStatus is called after every status change.
	UpdateStatus(status model.BotStatus)
	// UpdateProgress is called with the bot's progress in [0, 1].
	UpdateProgress(progress float64)
	// UpdateLog appends a message to the bot's log. When overwrite is true
	// the message replaces the previously emitted line.
	UpdateLog(msg string, overwrite bool)
	// ClearLog discards the bot's log.
	ClearLog()
}

// Script is a bot implementation. The supervisor owns the lifecycle; the
// script provides identity, options and the working loop.
type Script interface {
	// Info describes the bot.
	Info() model.BotInfo
	// CreateOptions declares the options the bot exposes.
	CreateOptions() (options.Schema, error)
	// SaveOptions validates and applies user-provided option values.
	SaveOptions(values options.Values) error
	// MainLoop performs the bot's work. It must call rt.CheckStatus between
	// actions and return promptly once it reports false.
	MainLoop(rt Runtime)
}

// Runtime is the supervisor surface scripts use from their main loop.
type Runtime interface {
	// CheckStatus reports whether the script may keep working. It blocks
	// while the bot is paused.
	CheckStatus() bool
	// UpdateProgress reports the script's progress in [0, 1].
	UpdateProgress(progress float64)
	// Log appends a message to the bot's log.
	Log(msg string)
	// Logf appends a formatted message to the bot's log.
	Logf(format string, args ...interface{})
}

type nopController struct{}

func (nopController) UpdateStatus(model.BotStatus) {}
func (nopController) UpdateProgress(float64)       {}
func (nopController) UpdateLog(string, bool)       {}
func (nopController) ClearLog()                    {}
