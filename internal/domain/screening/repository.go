package screening

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("screening run not found")

// Repository persists runs and their per-resume results. ResultsByRun
// returns results best match first.
type Repository interface {
	CreateRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id uuid.UUID) (Run, error)
	ListRunsByJob(ctx context.Context, jobID uuid.UUID) ([]Run, error)
	UpdateRun(ctx context.Context, r Run) error
	AddResult(ctx context.Context, res Result) error
	ResultsByRun(ctx context.Context, runID uuid.UUID) ([]Result, error)
}
