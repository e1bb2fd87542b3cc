package storage

import (
	"context"

	"github.com/spacebear01/osbc/internal/model"
)

// RunRepository is the interface for bot run history persistence.
type RunRepository interface {
	CreateRun(ctx context.Context, r model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context) ([]model.Run, error)
	UpdateRun(ctx context.Context, r model.Run) error
}
