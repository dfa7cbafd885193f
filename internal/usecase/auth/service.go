// Package auth implements recruiter account registration and login on top
// of the user repository. Token issuance lives one level up so this service
// stays a pure credential check.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"talentsift/internal/domain/user"
)

// Passwords shorter than this are rejected at registration.
const minPasswordLen = 8

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
	now   func() time.Time
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, now: time.Now}
}

// Register creates the account after checking the address is free. The
// check races with concurrent registrations, so a failed insert is
// re-checked before being reported as internal.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email, ok := cleanEmail(in.Email)
	if !ok || len(strings.TrimSpace(in.Password)) < minPasswordLen {
		return user.User{}, ErrInvalidInput
	}

	switch taken, err := s.users.ExistsByEmail(ctx, email); {
	case err != nil:
		return user.User{}, ErrInternal
	case taken:
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	now := s.now().UTC()
	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if taken, exErr := s.users.ExistsByEmail(ctx, email); exErr == nil && taken {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	u.PasswordHash = ""
	return u, nil
}

// Login reports every failure as ErrInvalidCredentials so callers cannot
// tell an unknown address from a wrong password.
func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email, ok := cleanEmail(in.Email)
	if !ok || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, user.ErrNotFound):
		return user.User{}, ErrInvalidCredentials
	case err != nil:
		return user.User{}, ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return user.User{}, ErrInvalidCredentials
	}

	u.PasswordHash = ""
	return u, nil
}

// cleanEmail trims and lowercases the address so lookups are
// case-insensitive. The second return is false for a blank address.
func cleanEmail(email string) (string, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	return email, email != ""
}
