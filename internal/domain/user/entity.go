package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a recruiter account. Candidates never log in, they exist only as
// uploaded resumes.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
