package model

import "fmt"

// BotStatus represents the lifecycle state of a bot.
type BotStatus string

const (
	// BotStatusRunning indicates the bot's main loop is executing.
	BotStatusRunning BotStatus = "running"
	// BotStatusPaused indicates the bot is paused and waiting to be resumed.
	BotStatusPaused BotStatus = "paused"
	// BotStatusStopped indicates the bot is not running (initial state).
	BotStatusStopped BotStatus = "stopped"
	// BotStatusConfiguring indicates the user is editing the bot options.
	BotStatusConfiguring BotStatus = "configuring"
)

// BotInfo describes a bot script to users and to the registry.
type BotInfo struct {
	// Name is the registry key for the bot (lowercase, no spaces).
	Name string
	// Title is the human-readable bot name.
	Title string
	// Description is a short explanation of what the bot does.
	Description string
}

// Validate validates the bot information.
func (i *BotInfo) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("name is required: %w", ErrNotValid)
	}

	if i.Title == "" {
		return fmt.Errorf("title is required: %w", ErrNotValid)
	}

	return nil
}
