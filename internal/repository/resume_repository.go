package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"talentsift/internal/database"
	"talentsift/internal/domain/matching"
	"talentsift/internal/domain/resume"
)

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

func (r *PostgresResumeRepository) Create(ctx context.Context, res resume.Resume) error {
	parsed, err := json.Marshal(res.Parsed)
	if err != nil {
		return fmt.Errorf("marshal parsed resume: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO resumes (id, user_id, candidate_name, candidate_email, file_name, content_type, raw_text, parsed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		res.ID, res.UserID, res.CandidateName, res.CandidateEmail,
		res.FileName, res.ContentType, res.RawText, string(parsed), res.CreatedAt,
	)
	return err
}

func (r *PostgresResumeRepository) GetByID(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, candidate_name, candidate_email, file_name, content_type, raw_text, parsed, created_at
		 FROM resumes
		 WHERE id = $1`,
		id,
	)

	res, err := scanResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return resume.Resume{}, resume.ErrNotFound
		}
		return resume.Resume{}, err
	}
	return res, nil
}

func (r *PostgresResumeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, candidate_name, candidate_email, file_name, content_type, raw_text, parsed, created_at
		 FROM resumes
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Resume, 0)
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM resumes WHERE user_id = $1`, userID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanResume(row database.Row) (resume.Resume, error) {
	var res resume.Resume
	var parsed []byte
	err := row.Scan(
		&res.ID, &res.UserID, &res.CandidateName, &res.CandidateEmail,
		&res.FileName, &res.ContentType, &res.RawText, &parsed, &res.CreatedAt,
	)
	if err != nil {
		return resume.Resume{}, err
	}
	if len(parsed) > 0 {
		if err := json.Unmarshal(parsed, &res.Parsed); err != nil {
			return resume.Resume{}, fmt.Errorf("unmarshal parsed resume: %w", err)
		}
	} else {
		res.Parsed = matching.ParsedResume{}
	}
	return res, nil
}
