package bot

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spacebear01/osbc/internal/interrupt"
	"github.com/spacebear01/osbc/internal/log"
	"github.com/spacebear01/osbc/internal/model"
	"github.com/spacebear01/osbc/internal/options"
)

const (
	defaultPauseTick    = time.Second
	defaultPauseTimeout = 60 * time.Second
)

// SupervisorConfig is the configuration of Supervisor.
type SupervisorConfig struct {
	Script     Script
	Controller Controller
	Interrupts interrupt.Source
	Logger     log.Logger
	// PauseTick is the interval between checks while the bot is paused.
	PauseTick time.Duration
	// PauseTimeout is how long the bot may stay paused before it is
	// force-stopped.
	PauseTimeout time.Duration
}

func (c *SupervisorConfig) defaults() error {
	if c.Script == nil {
		return fmt.Errorf("script is required")
	}

	if c.Controller == nil {
		c.Controller = nopController{}
	}

	if c.Interrupts == nil {
		c.Interrupts = interrupt.Noop
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "bot.Supervisor", "bot": c.Script.Info().Name})

	if c.PauseTick <= 0 {
		c.PauseTick = defaultPauseTick
	}

	if c.PauseTimeout <= 0 {
		c.PauseTimeout = defaultPauseTimeout
	}

	if c.PauseTimeout < c.PauseTick {
		return fmt.Errorf("pause timeout must be at least one pause tick")
	}

	return nil
}

// Supervisor owns a bot's lifecycle. It runs the script's main loop on a
// worker goroutine and stops it cooperatively: the script polls CheckStatus
// and exits when it reports false, there is no hard kill.
type Supervisor struct {
	script       Script
	controller   Controller
	interrupts   interrupt.Source
	logger       log.Logger
	pauseTick    time.Duration
	pauseTimeout time.Duration

	mu         sync.Mutex
	status     model.BotStatus
	progress   float64
	configured bool
	done       chan struct{}

	workerActive atomic.Bool
}

var _ Runtime = (*Supervisor)(nil)

// NewSupervisor returns a Supervisor for the given script. The bot starts
// stopped and unconfigured.
func NewSupervisor(config SupervisorConfig) (*Supervisor, error) {
	if err := config.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Supervisor{
		script:       config.Script,
		controller:   config.Controller,
		interrupts:   config.Interrupts,
		logger:       config.Logger,
		pauseTick:    config.PauseTick,
		pauseTimeout: config.PauseTimeout,
		status:       model.BotStatusStopped,
	}, nil
}

// PlayPause starts the bot when it is stopped, pauses it when it is running
// and resumes it when it is paused.
func (s *Supervisor) PlayPause() {
	switch s.Status() {
	case model.BotStatusStopped:
		s.start()
	case model.BotStatusRunning:
		s.Log("Pausing bot...")
		s.SetStatus(model.BotStatusPaused)
	case model.BotStatusPaused:
		s.Log("Resuming bot...")
		s.SetStatus(model.BotStatusRunning)
	case model.BotStatusConfiguring:
		s.logger.Debugf("Play/pause ignored while configuring")
	}
}

func (s *Supervisor) start() {
	// One worker at a time. A freshly stopped bot may still be draining its
	// main loop.
	if !s.workerActive.CompareAndSwap(false, true) {
		s.Log("Bot is still stopping. Please wait.")
		return
	}

	s.controller.ClearLog()

	if !s.Configured() {
		s.workerActive.Store(false)
		s.Log("Options not set. Please set options before starting.")
		return
	}

	s.Log("Starting bot...")
	s.ResetProgress()
	s.SetStatus(model.BotStatusRunning)

	done := make(chan struct{})
	s.mu.Lock()
	s.done = done
	s.mu.Unlock()

	go func() {
		defer func() {
			s.workerActive.Store(false)
			close(done)
		}()
		defer func() {
			if r := recover(); r != nil {
				s.Logf("Bot crashed: %v", r)
				s.SetStatus(model.BotStatusStopped)
			}
		}()

		s.script.MainLoop(s)

		if s.Status() != model.BotStatusStopped {
			s.Log("Bot has finished.")
			s.SetStatus(model.BotStatusStopped)
		}
	}()
}

// Stop requests a stop and resets the progress. The worker keeps running
// until its next CheckStatus call observes the stopped status.
func (s *Supervisor) Stop() {
	s.Log("Manual stop requested. Attempting to stop...")
	if s.Status() != model.BotStatusStopped {
		// Status first: controllers that track runs finalize on the stopped
		// notification with the progress reached so far.
		s.SetStatus(model.BotStatusStopped)
		s.ResetProgress()
	} else {
		s.Log("Bot is already stopped.")
	}
}

// CheckStatus polls the control keys and reports whether the script may keep
// working. It returns immediately while the bot is running. While the bot is
// paused it blocks, checking the keys every pause tick, and force-stops the
// bot when the pause timeout runs out. It returns false once the bot is
// stopped.
func (s *Supervisor) CheckStatus() bool {
	s.checkInterrupt()

	if s.Status() == model.BotStatusStopped {
		s.Log("Bot has been stopped.")
		return false
	}

	if s.Status() == model.BotStatusPaused {
		s.Log("Bot is paused.")

		remaining := int(s.pauseTimeout / s.pauseTick)
		for s.Status() == model.BotStatusPaused {
			s.checkInterrupt()
			time.Sleep(s.pauseTick)

			if s.Status() == model.BotStatusStopped {
				s.Log("Bot has been stopped.")
				return false
			}
			// A resume observed during the sleep wins over an exhausted
			// countdown.
			if s.Status() != model.BotStatusPaused {
				break
			}

			remaining--
			if remaining <= 0 {
				s.Log("Timeout reached, stopping...")
				s.SetStatus(model.BotStatusStopped)
				return false
			}

			s.logOverwrite(fmt.Sprintf("Terminating in %d.", remaining))
		}
	}

	return true
}

func (s *Supervisor) checkInterrupt() {
	if s.interrupts.PausePressed() {
		if s.Status() == model.BotStatusRunning {
			s.Log("Pausing bot...")
			s.SetStatus(model.BotStatusPaused)
		}
	} else if s.interrupts.ResumePressed() {
		if s.Status() == model.BotStatusPaused {
			s.Log("Resuming bot...")
			s.SetStatus(model.BotStatusRunning)
		}
	} else if s.interrupts.StopPressed() {
		s.Stop()
	}
}

// Configure runs the user-provided option values through the script and
// marks the bot as configured on success. The bot must be stopped.
func (s *Supervisor) Configure(values options.Values) error {
	s.mu.Lock()
	if s.status != model.BotStatusStopped {
		s.mu.Unlock()
		return fmt.Errorf("bot must be stopped to change options: %w", model.ErrNotValid)
	}
	s.status = model.BotStatusConfiguring
	s.mu.Unlock()
	s.controller.UpdateStatus(model.BotStatusConfiguring)

	err := s.script.SaveOptions(values)

	s.mu.Lock()
	if err == nil {
		s.configured = true
	}
	s.status = model.BotStatusStopped
	s.mu.Unlock()
	s.controller.UpdateStatus(model.BotStatusStopped)

	if err != nil {
		return fmt.Errorf("saving options: %w", err)
	}

	s.Log("Options set successfully.")
	return nil
}

// SetStatus sets the bot status and notifies the controller.
func (s *Supervisor) SetStatus(status model.BotStatus) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()

	s.logger.Debugf("Bot status set to %s", status)
	s.controller.UpdateStatus(status)
}

// Status returns the current bot status.
func (s *Supervisor) Status() model.BotStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// UpdateProgress sets the bot progress, clamped to [0, 1], and notifies the
// controller.
func (s *Supervisor) UpdateProgress(progress float64) {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	s.mu.Lock()
	s.progress = progress
	s.mu.Unlock()

	s.controller.UpdateProgress(progress)
}

// ResetProgress sets the bot progress back to zero.
func (s *Supervisor) ResetProgress() {
	s.UpdateProgress(0)
}

// Progress returns the current bot progress in [0, 1].
func (s *Supervisor) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Configured reports whether the bot options have been set.
func (s *Supervisor) Configured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configured
}

// Done returns a channel that closes when the current worker goroutine
// exits. When no worker has been started the returned channel is closed.
func (s *Supervisor) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return s.done
}

// Log appends a message to the bot's log.
func (s *Supervisor) Log(msg string) {
	s.logger.Infof("%s", msg)
	s.controller.UpdateLog(msg, false)
}

// Logf appends a formatted message to the bot's log.
func (s *Supervisor) Logf(format string, args ...interface{}) {
	s.Log(fmt.Sprintf(format, args...))
}

// logOverwrite replaces the previously emitted log line, used for the pause
// countdown.
func (s *Supervisor) logOverwrite(msg string) {
	s.logger.Debugf("%s", msg)
	s.controller.UpdateLog(msg, true)
}
