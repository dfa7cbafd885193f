package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"talentsift/internal/database"
	"talentsift/internal/domain/matching"
	"talentsift/internal/domain/screening"
)

type PostgresScreeningRepository struct {
	db database.DB
}

func NewPostgresScreeningRepository(db database.DB) *PostgresScreeningRepository {
	return &PostgresScreeningRepository{db: db}
}

func (r *PostgresScreeningRepository) CreateRun(ctx context.Context, run screening.Run) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO screening_runs (id, job_id, user_id, status, total_resumes, processed, failed, created_at, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		run.ID, run.JobID, run.UserID, string(run.Status),
		run.TotalResumes, run.Processed, run.Failed,
		run.CreatedAt, run.StartedAt, run.FinishedAt,
	)
	return err
}

func (r *PostgresScreeningRepository) GetRun(ctx context.Context, id uuid.UUID) (screening.Run, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, job_id, user_id, status, total_resumes, processed, failed, created_at, started_at, finished_at
		 FROM screening_runs
		 WHERE id = $1`,
		id,
	)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return screening.Run{}, screening.ErrNotFound
		}
		return screening.Run{}, err
	}
	return run, nil
}

func (r *PostgresScreeningRepository) ListRunsByJob(ctx context.Context, jobID uuid.UUID) ([]screening.Run, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_id, user_id, status, total_resumes, processed, failed, created_at, started_at, finished_at
		 FROM screening_runs
		 WHERE job_id = $1
		 ORDER BY created_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]screening.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresScreeningRepository) UpdateRun(ctx context.Context, run screening.Run) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE screening_runs
		 SET status = $2, total_resumes = $3, processed = $4, failed = $5, started_at = $6, finished_at = $7
		 WHERE id = $1`,
		run.ID, string(run.Status), run.TotalResumes, run.Processed, run.Failed,
		run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return screening.ErrNotFound
	}
	return nil
}

func (r *PostgresScreeningRepository) AddResult(ctx context.Context, res screening.Result) error {
	matched, err := marshalStrings(res.MatchedKeywords)
	if err != nil {
		return err
	}
	missing, err := marshalStrings(res.MissingKeywords)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO screening_results (id, run_id, resume_id, match_score, match_percentage, status, matched_keywords, missing_keywords, error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		res.ID, res.RunID, res.ResumeID, res.MatchScore, res.MatchPercentage,
		string(res.Status), matched, missing, res.Error, res.CreatedAt,
	)
	return err
}

func (r *PostgresScreeningRepository) ResultsByRun(ctx context.Context, runID uuid.UUID) ([]screening.Result, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, run_id, resume_id, match_score, match_percentage, status, matched_keywords, missing_keywords, error, created_at
		 FROM screening_results
		 WHERE run_id = $1
		 ORDER BY match_percentage DESC, created_at ASC`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]screening.Result, 0)
	for rows.Next() {
		var res screening.Result
		var status string
		var matched, missing []byte
		err := rows.Scan(
			&res.ID, &res.RunID, &res.ResumeID, &res.MatchScore, &res.MatchPercentage,
			&status, &matched, &missing, &res.Error, &res.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		res.Status = matching.Status(status)
		if res.MatchedKeywords, err = unmarshalStrings(matched); err != nil {
			return nil, fmt.Errorf("unmarshal matched keywords: %w", err)
		}
		if res.MissingKeywords, err = unmarshalStrings(missing); err != nil {
			return nil, fmt.Errorf("unmarshal missing keywords: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRun(row database.Row) (screening.Run, error) {
	var run screening.Run
	var status string
	err := row.Scan(
		&run.ID, &run.JobID, &run.UserID, &status,
		&run.TotalResumes, &run.Processed, &run.Failed,
		&run.CreatedAt, &run.StartedAt, &run.FinishedAt,
	)
	if err != nil {
		return screening.Run{}, err
	}
	run.Status = screening.RunStatus(status)
	return run, nil
}
