package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned for lookups of accounts that do not exist.
var ErrNotFound = errors.New("user not found")

// Repository is the account store. GetByEmail drives login and ExistsByEmail
// the duplicate check on registration, so implementations should index email.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
