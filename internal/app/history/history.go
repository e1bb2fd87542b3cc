// Package history lists past bot runs.
package history

import (
	"context"
	"fmt"

	"github.com/spacebear01/osbc/internal/log"
	"github.com/spacebear01/osbc/internal/model"
	"github.com/spacebear01/osbc/internal/storage"
)

// ServiceConfig is the configuration for the history service.
type ServiceConfig struct {
	Repository storage.RunRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.History"})

	return nil
}

// Service lists past runs with optional filtering.
type Service struct {
	repo   storage.RunRepository
	logger log.Logger
}

// NewService creates a new history service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the history request parameters.
type Request struct {
	// Bot is an optional filter to only show runs of this bot.
	Bot string
}

// Run lists past runs, newest first, optionally filtered by bot name.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Run, error) {
	s.logger.Debugf("listing runs with bot filter: %q", req.Bot)

	runs, err := s.repo.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list runs: %w", err)
	}

	if req.Bot != "" {
		filtered := make([]model.Run, 0, len(runs))
		for _, r := range runs {
			if r.Bot == req.Bot {
				filtered = append(filtered, r)
			}
		}
		runs = filtered
	}

	s.logger.Debugf("listed %d runs", len(runs))

	return runs, nil
}
