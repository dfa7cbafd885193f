package resume

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("resume not found")

// Repository stores uploaded resumes per recruiter. ListByUser returns the
// full candidate pool, newest first, and is what a screening run iterates.
type Repository interface {
	Create(ctx context.Context, r Resume) error
	GetByID(ctx context.Context, id uuid.UUID) (Resume, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Resume, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
