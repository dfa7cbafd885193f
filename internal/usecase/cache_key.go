package usecase

import (
	"fmt"

	"github.com/google/uuid"
)

// Cache keys. Jobs are immutable once stored, so match and keyword entries
// never need invalidation; only the list pages and the status overview are
// cleared when a posting is added.
const (
	StatusCacheKey         = "status:overview"
	SkillsTaxonomyCacheKey = "skills:taxonomy"
)

func JobsListCacheKey(limit, offset int) string {
	return fmt.Sprintf("jobs:list:%d:%d", limit, offset)
}

func JobKeywordsCacheKey(jobID uuid.UUID) string {
	return "jobs:keywords:" + jobID.String()
}

func MatchCacheKey(resumeID, jobID uuid.UUID) string {
	return fmt.Sprintf("match:%s:%s", resumeID, jobID)
}

func ScreeningLockKey(jobID uuid.UUID) string {
	return "screenings:lock:" + jobID.String()
}
