package usecase

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"

	"talentsift/internal/domain/job"
	"talentsift/internal/domain/matching"
	"talentsift/internal/domain/resume"
)

type MatchingUsecase interface {
	MatchStored(ctx context.Context, userID, resumeID, jobID uuid.UUID) (matching.Result, error)
	MatchAdHoc(ctx context.Context, resumeText, jobText string) (matching.ParsedResume, matching.Result, error)
}

type Matching struct {
	resumes resume.Repository
	jobs    job.Repository
	engine  *matching.Engine
	cache   Cache
}

func NewMatchingUsecase(resumes resume.Repository, jobs job.Repository, engine *matching.Engine, cache Cache) *Matching {
	return &Matching{resumes: resumes, jobs: jobs, engine: engine, cache: cache}
}

// MatchStored scores a stored resume against a stored posting. Both sides
// are immutable snapshots, so the evaluation is cached indefinitely. The
// ownership check runs before the cache lookup.
func (u *Matching) MatchStored(ctx context.Context, userID, resumeID, jobID uuid.UUID) (matching.Result, error) {
	if userID == uuid.Nil {
		return matching.Result{}, ErrUnauthorized
	}

	r, err := u.resumes.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			return matching.Result{}, ErrResumeNotFound
		}
		return matching.Result{}, ErrInternal
	}
	if r.UserID != userID {
		return matching.Result{}, ErrResumeNotFound
	}

	key := MatchCacheKey(resumeID, jobID)
	if u.cache != nil {
		var cached matching.Result
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return matching.Result{}, ErrJobNotFound
		}
		return matching.Result{}, ErrInternal
	}

	res := u.engine.MatchExtraction(r.Parsed, matching.Extraction{
		Skills:   j.Skills,
		Keywords: j.Keywords,
	})

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, res, 0)
	}
	return res, nil
}

// MatchAdHoc evaluates raw texts without touching storage, for recruiters
// pasting a resume and a posting side by side.
func (u *Matching) MatchAdHoc(ctx context.Context, resumeText, jobText string) (matching.ParsedResume, matching.Result, error) {
	if utf8.RuneCountInString(matching.NormalizeText(resumeText)) < minTextChars {
		return matching.ParsedResume{}, matching.Result{}, ErrResumeTooShort
	}
	if utf8.RuneCountInString(matching.NormalizeText(jobText)) < minTextChars {
		return matching.ParsedResume{}, matching.Result{}, ErrJobTooShort
	}

	parsed, res := u.engine.MatchText(resumeText, jobText)
	return parsed, res, nil
}
