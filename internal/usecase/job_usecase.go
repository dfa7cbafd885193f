package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentsift/internal/domain/job"
	"talentsift/internal/domain/matching"
	"talentsift/internal/search"
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobTooShort = errors.New("job description too short")
)

// searchWindow caps how many recent postings a search ranks over.
const searchWindow = 200

type CreateJobInput struct {
	Title       string
	Company     string
	Location    string
	Description string
}

// JobList is one page of stored postings plus the total count for paging.
type JobList struct {
	Jobs  []job.Job `json:"jobs"`
	Total int       `json:"total"`
}

type JobUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateJobInput) (job.Job, error)
	Get(ctx context.Context, jobID uuid.UUID) (job.Job, error)
	List(ctx context.Context, limit, offset int) (JobList, error)
	Search(ctx context.Context, query string, limit int) ([]job.Job, error)
	Keywords(ctx context.Context, jobID uuid.UUID) (matching.Extraction, error)
}

type Job struct {
	jobs   job.Repository
	engine *matching.Engine
	cache  Cache
	logger *zap.Logger
	now    func() time.Time
}

func NewJobUsecase(jobs job.Repository, engine *matching.Engine, cache Cache, logger *zap.Logger) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Job{jobs: jobs, engine: engine, cache: cache, logger: logger, now: time.Now}
}

func (u *Job) Create(ctx context.Context, userID uuid.UUID, in CreateJobInput) (job.Job, error) {
	if userID == uuid.Nil {
		return job.Job{}, ErrUnauthorized
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return job.Job{}, ErrInvalidInput
	}

	j := job.Job{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Company:     strings.TrimSpace(in.Company),
		Description: in.Description,
		Source:      job.SourceManual,
		CreatedAt:   u.now().UTC(),
	}
	if loc := strings.TrimSpace(in.Location); loc != "" {
		j.Location = &loc
	}
	return u.store(ctx, j)
}

func (u *Job) Get(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (u *Job) List(ctx context.Context, limit, offset int) (JobList, error) {
	if limit == 0 {
		limit = 20
	}
	if limit < 0 || limit > 50 || offset < 0 {
		return JobList{}, ErrInvalidInput
	}

	key := JobsListCacheKey(limit, offset)
	if u.cache != nil {
		var cached JobList
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			u.logger.Debug("job list cache hit", zap.String("key", key))
			return cached, nil
		}
	}

	jobs, err := u.jobs.List(ctx, limit, offset)
	if err != nil {
		return JobList{}, ErrInternal
	}
	total, err := u.jobs.Count(ctx)
	if err != nil {
		return JobList{}, ErrInternal
	}

	out := JobList{Jobs: jobs, Total: total}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, 0)
	}
	return out, nil
}

// Search pulls a window of recent postings and ranks them against the
// query in memory. Results are not cached: the query space is unbounded
// and the window fetch already hits an indexed scan.
func (u *Job) Search(ctx context.Context, query string, limit int) ([]job.Job, error) {
	if limit == 0 {
		limit = 20
	}
	if limit < 0 || limit > 50 {
		return nil, ErrInvalidInput
	}

	qc := search.ProcessQuery(query, u.engine.Taxonomy())
	if qc.Normalized == "" {
		return nil, ErrInvalidInput
	}

	pool, err := u.jobs.List(ctx, searchWindow, 0)
	if err != nil {
		return nil, ErrInternal
	}

	ranked := search.Rank(pool, qc.Variants, u.now().UTC())
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Keywords serves the extraction stored with the posting. Postings never
// change after creation, so the cache entry has no invalidation path.
func (u *Job) Keywords(ctx context.Context, jobID uuid.UUID) (matching.Extraction, error) {
	key := JobKeywordsCacheKey(jobID)
	if u.cache != nil {
		var cached matching.Extraction
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	j, err := u.Get(ctx, jobID)
	if err != nil {
		return matching.Extraction{}, err
	}

	ex := matching.Extraction{Skills: j.Skills, Keywords: j.Keywords}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, ex, 0)
	}
	return ex, nil
}

// store runs the description through the engine, persists the posting and
// drops the stale list pages. Shared by manual creation and the importer.
func (u *Job) store(ctx context.Context, j job.Job) (job.Job, error) {
	normalized := matching.NormalizeText(j.Description)
	if utf8.RuneCountInString(normalized) < minTextChars {
		return job.Job{}, ErrJobTooShort
	}

	ex := u.engine.Extract(normalized)
	j.Skills = ex.Skills
	j.Keywords = ex.Keywords

	if err := u.jobs.Create(ctx, j); err != nil {
		return job.Job{}, ErrInternal
	}
	if u.cache != nil {
		if err := u.cache.InvalidateJobLists(ctx); err != nil {
			u.logger.Warn("job list invalidation failed", zap.Error(err))
		}
	}
	return j, nil
}
