package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentsift/internal/domain/job"
	"talentsift/internal/importer"
)

var (
	ErrImportInvalidURL    = errors.New("import url invalid")
	ErrImportDomainBlocked = errors.New("import domain not allowed")
	ErrImportEmptyPosting  = errors.New("imported posting has no usable text")
)

// postingFetcher is what the import flow needs from the importer.
type postingFetcher interface {
	Fetch(ctx context.Context, rawURL string) (importer.Posting, error)
}

type JobImportUsecase interface {
	Import(ctx context.Context, userID uuid.UUID, rawURL string) (job.Job, error)
}

type JobImport struct {
	fetch  postingFetcher
	jobs   *Job
	logger *zap.Logger
	now    func() time.Time
}

func NewJobImportUsecase(fetch postingFetcher, jobs *Job, logger *zap.Logger) *JobImport {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobImport{fetch: fetch, jobs: jobs, logger: logger, now: time.Now}
}

func (u *JobImport) Import(ctx context.Context, userID uuid.UUID, rawURL string) (job.Job, error) {
	if userID == uuid.Nil {
		return job.Job{}, ErrUnauthorized
	}

	p, err := u.fetch.Fetch(ctx, rawURL)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrInvalidURL):
			return job.Job{}, ErrImportInvalidURL
		case errors.Is(err, importer.ErrDomainNotAllowed):
			return job.Job{}, ErrImportDomainBlocked
		case errors.Is(err, importer.ErrEmptyPosting):
			return job.Job{}, ErrImportEmptyPosting
		default:
			u.logger.Warn("job import fetch failed",
				zap.String("url", rawURL),
				zap.Error(err),
			)
			return job.Job{}, ErrImportEmptyPosting
		}
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = "Imported posting"
	}

	j := job.Job{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Company:     strings.TrimSpace(p.Company),
		Description: p.Description,
		Source:      job.SourceImport,
		CreatedAt:   u.now().UTC(),
	}
	if loc := strings.TrimSpace(p.Location); loc != "" {
		j.Location = &loc
	}
	if srcURL := strings.TrimSpace(p.URL); srcURL != "" {
		j.SourceURL = &srcURL
	}

	stored, err := u.jobs.store(ctx, j)
	if err != nil {
		if errors.Is(err, ErrJobTooShort) {
			return job.Job{}, ErrImportEmptyPosting
		}
		return job.Job{}, err
	}

	u.logger.Info("job posting imported",
		zap.String("job_id", stored.ID.String()),
		zap.String("title", stored.Title),
		zap.String("url", rawURL),
	)
	return stored, nil
}
