package lib

import (
	"context"
	"fmt"
	"time"

	"github.com/spacebear01/osbc/internal/app/history"
	"github.com/spacebear01/osbc/internal/app/runbot"
	"github.com/spacebear01/osbc/internal/bot"
	"github.com/spacebear01/osbc/internal/bots"
	"github.com/spacebear01/osbc/internal/controller/record"
	"github.com/spacebear01/osbc/internal/input"
	"github.com/spacebear01/osbc/internal/interrupt"
	"github.com/spacebear01/osbc/internal/options"

	// Bots shipped with osbc register themselves on import.
	_ "github.com/spacebear01/osbc/internal/bots/chopper"
)

// RunBotOpts configures a bot run.
//
// Pass nil to [Client.RunBot] or [Client.RunRegisteredBot] for defaults: no
// option values, no controller, no interrupts and history recording enabled.
type RunBotOpts struct {
	// Values are the option values applied to the bot before it starts.
	// Use [Schema.Defaults] as a starting point.
	Values Values
	// Controller receives status, progress and log updates while the bot
	// runs. Calls may come from the bot's worker goroutine.
	Controller Controller
	// Interrupts reports pause, resume and stop requests. When nil the bot
	// runs until its main loop finishes or ctx is cancelled.
	Interrupts InterruptSource
	// NoHistory disables run history recording for this run.
	NoHistory bool
	// PauseTimeout bounds how long the bot may stay paused before it is
	// stopped. Zero uses the default (1 minute).
	PauseTimeout time.Duration
}

// KeyboardInterrupts returns an interrupt source polling the global keyboard
// hotkeys the osbc CLI uses: "-" pauses, "=" resumes and ESC stops. On
// platforms without global key state it reports nothing.
func KeyboardInterrupts() InterruptSource {
	return interrupt.NewKeyboard()
}

// RunBot configures and runs the given script, blocking until it stops.
//
// The script's SaveOptions is called with opts.Values before the main loop
// starts. When ctx is cancelled the bot is asked to stop and RunBot returns
// once the main loop has drained. Unless opts.NoHistory is set, a run row is
// recorded in the history database.
func (c *Client) RunBot(ctx context.Context, script Script, opts *RunBotOpts) error {
	if script == nil {
		return fmt.Errorf("script is required: %w", ErrNotValid)
	}
	if opts == nil {
		opts = &RunBotOpts{}
	}

	return c.runScript(ctx, scriptAdapter{script: script}, opts)
}

// RunRegisteredBot runs one of the bots shipped with osbc by registry name,
// blocking until it stops. The bot is wired to the real screen and mouse.
//
// Returns an error matching [ErrNotFound] when no bot is registered under
// the given name. See [Client.Bots] for the available names.
func (c *Client) RunRegisteredBot(ctx context.Context, name string, opts *RunBotOpts) error {
	if opts == nil {
		opts = &RunBotOpts{}
	}

	script, err := c.newRegisteredBot(name)
	if err != nil {
		return mapError(err)
	}

	return c.runScript(ctx, script, opts)
}

// Bots returns the information of every registered bot, sorted by name.
func (c *Client) Bots() []BotInfo {
	return fromInternalBotInfoList(bots.Describe())
}

// BotSchema returns the option schema of a registered bot. Use it to
// discover the keys and defaults for [RunBotOpts.Values].
//
// Returns an error matching [ErrNotFound] when no bot is registered under
// the given name.
func (c *Client) BotSchema(name string) (Schema, error) {
	script, err := c.newRegisteredBot(name)
	if err != nil {
		return Schema{}, mapError(err)
	}

	schema, err := script.CreateOptions()
	if err != nil {
		return Schema{}, mapError(fmt.Errorf("could not create options: %w", err))
	}

	return fromInternalSchema(schema), nil
}

// HistoryOpts filters run history queries. Pass nil for all runs.
type HistoryOpts struct {
	// Bot restricts the result to runs of the given bot. Empty means all
	// bots.
	Bot string
}

// History returns past bot runs, newest first.
func (c *Client) History(ctx context.Context, opts *HistoryOpts) ([]Run, error) {
	if opts == nil {
		opts = &HistoryOpts{}
	}

	svc, err := history.NewService(history.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	runs, err := svc.Run(ctx, history.Request{Bot: opts.Bot})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalRunList(runs), nil
}

// runScript wires the controllers and interrupts and runs the script to
// completion.
func (c *Client) runScript(ctx context.Context, script bot.Script, opts *RunBotOpts) error {
	var controller bot.Controller
	if opts.Controller != nil {
		controller = controllerAdapter{controller: opts.Controller}
	}

	if !opts.NoHistory {
		recorder, err := record.NewController(record.ControllerConfig{
			Bot:     script.Info().Name,
			Next:    controller,
			RunRepo: c.repo,
			Logger:  c.logger,
		})
		if err != nil {
			return mapError(fmt.Errorf("could not create history recorder: %w", err))
		}
		controller = recorder
	}

	var interrupts interrupt.Source
	if opts.Interrupts != nil {
		interrupts = opts.Interrupts
	}

	svc, err := runbot.NewService(runbot.ServiceConfig{
		Script:       script,
		Controller:   controller,
		Interrupts:   interrupts,
		Logger:       c.logger,
		PauseTimeout: opts.PauseTimeout,
	})
	if err != nil {
		return mapError(fmt.Errorf("could not create service: %w", err))
	}

	err = svc.Run(ctx, runbot.Request{Values: options.Values(opts.Values)})
	if err != nil {
		return mapError(err)
	}

	return nil
}

// newRegisteredBot builds a registered bot wired to the real screen, OCR and
// mouse backends.
func (c *Client) newRegisteredBot(name string) (bot.Script, error) {
	visionSvc, err := c.newVisionService(&VisionOpts{})
	if err != nil {
		return nil, fmt.Errorf("could not create vision service: %w", err)
	}

	mouse, err := input.NewSystemMouse(input.SystemMouseConfig{Logger: c.logger})
	if err != nil {
		return nil, fmt.Errorf("could not create mouse: %w", err)
	}

	return bots.New(name, bots.Deps{
		Vision: visionSvc,
		Mouse:  mouse,
		Logger: c.logger,
	})
}
