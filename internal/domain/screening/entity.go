package screening

import (
	"time"

	"github.com/google/uuid"

	"talentsift/internal/domain/matching"
)

type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run is one batch screening of a recruiter's whole resume pool against a
// single job. Counters advance while the run executes; a run only reaches
// RunFailed when it could not execute at all, individual resume failures
// just increment Failed and the run still completes.
type Run struct {
	ID           uuid.UUID
	JobID        uuid.UUID
	UserID       uuid.UUID
	Status       RunStatus
	TotalResumes int
	Processed    int
	Failed       int
	CreatedAt    time.Time
	StartedAt    *time.Time
	FinishedAt   *time.Time
}

// Result is one resume's outcome within a run. Either the match fields are
// populated or Error explains why this resume could not be evaluated.
type Result struct {
	ID              uuid.UUID
	RunID           uuid.UUID
	ResumeID        uuid.UUID
	MatchScore      float64
	MatchPercentage int
	Status          matching.Status
	MatchedKeywords []string
	MissingKeywords []string
	Error           *string
	CreatedAt       time.Time
}
