// Package pipeline executes screening runs: every resume in the run
// owner's pool is matched against the run's job on a worker pool, each
// outcome is stored, and the run row tracks progress through to
// completion.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentsift/internal/domain/job"
	"talentsift/internal/domain/matching"
	"talentsift/internal/domain/resume"
	"talentsift/internal/domain/screening"
)

// Progress writes while a batch is in flight happen once per this many
// results, plus a final write at the end.
const progressEvery = 20

// Notifier receives run lifecycle events. The websocket hub implements it.
type Notifier interface {
	ScreeningCompleted(run screening.Run)
}

type Params struct {
	Workers   int
	RateLimit int
}

type Runner struct {
	engine  *matching.Engine
	jobs    job.Repository
	resumes resume.Repository
	runs    screening.Repository
	notify  Notifier
	logger  *zap.Logger
}

func NewRunner(
	engine *matching.Engine,
	jobs job.Repository,
	resumes resume.Repository,
	runs screening.Repository,
	notify Notifier,
	logger *zap.Logger,
) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		engine:  engine,
		jobs:    jobs,
		resumes: resumes,
		runs:    runs,
		notify:  notify,
		logger:  logger,
	}
}

// Execute drives the run with the given id to a terminal status. Resume
// level problems only increment the run's Failed counter; the run itself
// fails only when it cannot execute at all (missing job, load errors,
// cancellation).
func (r *Runner) Execute(ctx context.Context, runID uuid.UUID, params Params) error {
	run, err := r.runs.GetRun(ctx, runID)
	if err != nil {
		return err
	}

	start := time.Now()
	r.logger.Info("screening run started",
		zap.String("run_id", run.ID.String()),
		zap.String("job_id", run.JobID.String()))

	jb, err := r.jobs.GetByID(ctx, run.JobID)
	if err != nil {
		r.finish(run, screening.RunFailed, start)
		return err
	}

	pool, err := r.resumes.ListByUser(ctx, run.UserID)
	if err != nil {
		r.finish(run, screening.RunFailed, start)
		return err
	}

	now := start.UTC()
	run.Status = screening.RunRunning
	run.StartedAt = &now
	run.TotalResumes = len(pool)
	if err := r.runs.UpdateRun(ctx, run); err != nil {
		return err
	}

	if len(pool) == 0 {
		r.finish(run, screening.RunCompleted, start)
		return nil
	}

	extraction := matching.Extraction{Skills: jb.Skills, Keywords: jb.Keywords}

	workers := params.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(pool) {
		workers = len(pool)
	}

	wp := NewWorkerPool(workers, workers*2)
	if params.RateLimit > 0 {
		wp.SetRateLimit(params.RateLimit)
	}
	results := wp.Run(ctx)

	for _, res := range pool {
		res := res
		wp.Submit(func(ctx context.Context) Result {
			return r.screenResume(ctx, run, res, extraction)
		})
	}
	wp.Close()

	for item := range results {
		if item.Err != nil {
			run.Failed++
			r.logger.Warn("resume screening failed",
				zap.String("run_id", run.ID.String()),
				zap.String("resume_id", item.ResumeID.String()),
				zap.Error(item.Err))
		}
		run.Processed++
		if run.Processed%progressEvery == 0 {
			_ = r.runs.UpdateRun(ctx, run)
		}
	}

	if ctx.Err() != nil {
		r.finish(run, screening.RunFailed, start)
		return ctx.Err()
	}

	r.finish(run, screening.RunCompleted, start)
	return nil
}

func (r *Runner) screenResume(ctx context.Context, run screening.Run, res resume.Resume, extraction matching.Extraction) Result {
	m := r.engine.MatchExtraction(res.Parsed, extraction)

	rec := screening.Result{
		ID:              uuid.New(),
		RunID:           run.ID,
		ResumeID:        res.ID,
		MatchScore:      m.MatchScore,
		MatchPercentage: m.MatchPercentage,
		Status:          m.Status,
		MatchedKeywords: m.MatchedKeywords,
		MissingKeywords: m.MissingKeywords,
		CreatedAt:       time.Now().UTC(),
	}
	if err := r.runs.AddResult(ctx, rec); err != nil {
		return Result{ResumeID: res.ID, Err: err}
	}
	return Result{ResumeID: res.ID, Match: m}
}

// finish closes the run out on a background context so a canceled batch
// still records its terminal status.
func (r *Runner) finish(run screening.Run, status screening.RunStatus, start time.Time) {
	now := time.Now().UTC()
	run.Status = status
	run.FinishedAt = &now

	if err := r.runs.UpdateRun(context.Background(), run); err != nil {
		r.logger.Error("screening run finalize failed",
			zap.String("run_id", run.ID.String()),
			zap.Error(err))
	}

	r.logger.Info("screening run finished",
		zap.String("run_id", run.ID.String()),
		zap.String("status", string(status)),
		zap.Int("total", run.TotalResumes),
		zap.Int("processed", run.Processed),
		zap.Int("failed", run.Failed),
		zap.Duration("duration", time.Since(start)))

	if r.notify != nil {
		r.notify.ScreeningCompleted(run)
	}
}
