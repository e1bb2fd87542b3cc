// Package record persists bot runs as they happen.
package record

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/spacebear01/osbc/internal/bot"
	"github.com/spacebear01/osbc/internal/log"
	"github.com/spacebear01/osbc/internal/model"
	"github.com/spacebear01/osbc/internal/storage"
)

// ControllerConfig is the configuration for the recording controller.
type ControllerConfig struct {
	// Bot is the name stored on every run row.
	Bot string
	// Next receives every update after it has been recorded. Optional.
	Next    bot.Controller
	RunRepo storage.RunRepository
	Logger  log.Logger
}

func (c *ControllerConfig) defaults() error {
	if c.Bot == "" {
		return fmt.Errorf("bot name is required")
	}

	if c.RunRepo == nil {
		return fmt.Errorf("run repository is required")
	}

	if c.Next == nil {
		c.Next = nopController{}
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "controller.Record", "bot": c.Bot})

	return nil
}

// Controller decorates another controller with run history: a run row is
// created when the bot starts and finalized when it stops. Repository
// failures are logged, they never interrupt the bot.
type Controller struct {
	botName string
	next    bot.Controller
	runRepo storage.RunRepository
	logger  log.Logger

	mu       sync.Mutex
	current  *model.Run
	progress float64
}

var _ bot.Controller = (*Controller)(nil)

// NewController creates a new recording controller.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Controller{
		botName: cfg.Bot,
		next:    cfg.Next,
		runRepo: cfg.RunRepo,
		logger:  cfg.Logger,
	}, nil
}

// UpdateStatus records run boundaries and forwards the status.
func (c *Controller) UpdateStatus(status model.BotStatus) {
	switch status {
	case model.BotStatusRunning:
		c.startRun()
	case model.BotStatusStopped:
		c.finishRun()
	}

	c.next.UpdateStatus(status)
}

// UpdateProgress tracks the latest progress for the run row and forwards it.
func (c *Controller) UpdateProgress(progress float64) {
	c.mu.Lock()
	c.progress = progress
	c.mu.Unlock()

	c.next.UpdateProgress(progress)
}

// UpdateLog forwards the log message.
func (c *Controller) UpdateLog(msg string, overwrite bool) {
	c.next.UpdateLog(msg, overwrite)
}

// ClearLog forwards the log reset.
func (c *Controller) ClearLog() {
	c.next.ClearLog()
}

func (c *Controller) startRun() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A resume after a pause stays on the same run.
	if c.current != nil {
		return
	}

	run := model.Run{
		ID:        ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		Bot:       c.botName,
		StartedAt: time.Now().UTC(),
	}

	if err := c.runRepo.CreateRun(context.Background(), run); err != nil {
		c.logger.Errorf("Could not record run start: %s", err)
		return
	}

	c.current = &run
	c.progress = 0
}

func (c *Controller) finishRun() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return
	}

	now := time.Now().UTC()
	run := *c.current
	run.StoppedAt = &now
	run.Progress = c.progress

	if err := c.runRepo.UpdateRun(context.Background(), run); err != nil {
		c.logger.Errorf("Could not record run end: %s", err)
	}

	c.current = nil
}

type nopController struct{}

func (nopController) UpdateStatus(model.BotStatus) {}
func (nopController) UpdateProgress(float64)       {}
func (nopController) UpdateLog(string, bool)       {}
func (nopController) ClearLog()                    {}
