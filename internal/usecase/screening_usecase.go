package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentsift/internal/domain/job"
	"talentsift/internal/domain/screening"
	"talentsift/internal/pipeline"
)

var (
	ErrRunNotFound         = errors.New("screening run not found")
	ErrScreeningInProgress = errors.New("screening already in progress for this job")
)

// screeningLockTTL bounds the duplicate-run guard. The lock is a debounce
// against double submits, not a mutex; it expires on its own and a crashed
// run never wedges the job.
const screeningLockTTL = time.Minute

// runExecutor is the slice of the pipeline runner the usecase drives.
type runExecutor interface {
	Execute(ctx context.Context, runID uuid.UUID, p pipeline.Params) error
}

type ScreeningUsecase interface {
	Start(ctx context.Context, userID, jobID uuid.UUID) (screening.Run, error)
	Get(ctx context.Context, userID, runID uuid.UUID) (screening.Run, []screening.Result, error)
	RunsByJob(ctx context.Context, userID, jobID uuid.UUID) ([]screening.Run, error)
}

type Screening struct {
	runs    screening.Repository
	jobs    job.Repository
	runner  runExecutor
	cache   Cache
	workers int
	logger  *zap.Logger
	now     func() time.Time
}

func NewScreeningUsecase(runs screening.Repository, jobs job.Repository, runner runExecutor, cache Cache, workers int, logger *zap.Logger) *Screening {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screening{
		runs:    runs,
		jobs:    jobs,
		runner:  runner,
		cache:   cache,
		workers: workers,
		logger:  logger,
		now:     time.Now,
	}
}

// Start records a pending run and executes it in the background. The
// response carries the run id; clients follow progress over the socket or
// by polling Get.
func (u *Screening) Start(ctx context.Context, userID, jobID uuid.UUID) (screening.Run, error) {
	if userID == uuid.Nil {
		return screening.Run{}, ErrUnauthorized
	}

	if _, err := u.jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return screening.Run{}, ErrJobNotFound
		}
		return screening.Run{}, ErrInternal
	}

	run := screening.Run{
		ID:        uuid.New(),
		JobID:     jobID,
		UserID:    userID,
		Status:    screening.RunPending,
		CreatedAt: u.now().UTC(),
	}

	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, ScreeningLockKey(jobID), run.ID.String(), screeningLockTTL)
		if err == nil && !ok {
			return screening.Run{}, ErrScreeningInProgress
		}
	}

	if err := u.runs.CreateRun(ctx, run); err != nil {
		return screening.Run{}, ErrInternal
	}

	// The batch outlives the request; detach it from the request context.
	go func() {
		if err := u.runner.Execute(context.Background(), run.ID, pipeline.Params{Workers: u.workers}); err != nil {
			u.logger.Error("screening run execution failed",
				zap.String("run_id", run.ID.String()),
				zap.Error(err),
			)
		}
	}()

	return run, nil
}

func (u *Screening) Get(ctx context.Context, userID, runID uuid.UUID) (screening.Run, []screening.Result, error) {
	if userID == uuid.Nil {
		return screening.Run{}, nil, ErrUnauthorized
	}

	run, err := u.runs.GetRun(ctx, runID)
	if err != nil {
		if errors.Is(err, screening.ErrNotFound) {
			return screening.Run{}, nil, ErrRunNotFound
		}
		return screening.Run{}, nil, ErrInternal
	}
	if run.UserID != userID {
		return screening.Run{}, nil, ErrRunNotFound
	}

	results, err := u.runs.ResultsByRun(ctx, runID)
	if err != nil {
		return screening.Run{}, nil, ErrInternal
	}
	return run, results, nil
}

func (u *Screening) RunsByJob(ctx context.Context, userID, jobID uuid.UUID) ([]screening.Run, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	runs, err := u.runs.ListRunsByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]screening.Run, 0, len(runs))
	for _, r := range runs {
		if r.UserID != userID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
