// Package runbot runs a bot script under a supervisor until it finishes or
// the context is cancelled.
package runbot

import (
	"context"
	"fmt"
	"time"

	"github.com/spacebear01/osbc/internal/bot"
	"github.com/spacebear01/osbc/internal/interrupt"
	"github.com/spacebear01/osbc/internal/log"
	"github.com/spacebear01/osbc/internal/options"
)

// ServiceConfig is the configuration for the runbot service.
type ServiceConfig struct {
	Script     bot.Script
	Controller bot.Controller
	Interrupts interrupt.Source
	Logger     log.Logger

	// PauseTick and PauseTimeout tune the supervisor pause loop. Zero values
	// use the supervisor defaults.
	PauseTick    time.Duration
	PauseTimeout time.Duration
}

func (c *ServiceConfig) defaults() error {
	if c.Script == nil {
		return fmt.Errorf("script is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.RunBot"})

	return nil
}

// Service runs a single bot session from options to drained stop.
type Service struct {
	script       bot.Script
	controller   bot.Controller
	interrupts   interrupt.Source
	logger       log.Logger
	pauseTick    time.Duration
	pauseTimeout time.Duration
}

// NewService creates a new runbot service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		script:       cfg.Script,
		controller:   cfg.Controller,
		interrupts:   cfg.Interrupts,
		logger:       cfg.Logger,
		pauseTick:    cfg.PauseTick,
		pauseTimeout: cfg.PauseTimeout,
	}, nil
}

// Request represents the run request parameters.
type Request struct {
	// Values are the bot option values to apply before starting.
	Values options.Values
}

// Run configures the bot, starts it and blocks until the bot stops. When the
// context is cancelled the bot is stopped and drained before returning.
func (s *Service) Run(ctx context.Context, req Request) error {
	sup, err := bot.NewSupervisor(bot.SupervisorConfig{
		Script:       s.script,
		Controller:   s.controller,
		Interrupts:   s.interrupts,
		Logger:       s.logger,
		PauseTick:    s.pauseTick,
		PauseTimeout: s.pauseTimeout,
	})
	if err != nil {
		return fmt.Errorf("could not create supervisor: %w", err)
	}

	if err := sup.Configure(req.Values); err != nil {
		return fmt.Errorf("could not configure bot: %w", err)
	}

	sup.PlayPause()

	select {
	case <-sup.Done():
	case <-ctx.Done():
		s.logger.Debugf("Context cancelled, stopping bot")
		sup.Stop()
		<-sup.Done()
	}

	return nil
}
