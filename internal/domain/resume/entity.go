package resume

import (
	"time"

	"github.com/google/uuid"

	"talentsift/internal/domain/matching"
)

// Resume is one uploaded candidate document. RawText is the extracted plain
// text the engine works on, Parsed is the engine's reading of it computed at
// upload time and stored so screenings never re-parse.
type Resume struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	CandidateName  string
	FileName       string
	ContentType    string
	RawText        string
	Parsed         matching.ParsedResume
	CandidateEmail string
	CreatedAt      time.Time
}
