package job

import (
	"time"

	"github.com/google/uuid"
)

// Source records where a posting came from.
const (
	SourceManual = "manual"
	SourceImport = "import"
	SourceSeed   = "seed"
)

// Job is one job description to screen resumes against. Skills and Keywords
// are the engine's extraction of Description, computed when the posting is
// created or imported and stored with it, so every screening of the same
// posting scores against the same extraction.
type Job struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Company     string
	Location    *string
	Description string
	Skills      []string
	Keywords    []string
	Source      string
	SourceURL   *string
	CreatedAt   time.Time
}
