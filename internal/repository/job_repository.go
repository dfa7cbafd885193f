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
	"talentsift/internal/domain/job"
)

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	skills, err := marshalStrings(j.Skills)
	if err != nil {
		return err
	}
	keywords, err := marshalStrings(j.Keywords)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO jobs (id, user_id, title, company, location, description, skills, keywords, source, source_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		j.ID, j.UserID, j.Title, j.Company, j.Location, j.Description,
		skills, keywords, j.Source, j.SourceURL, j.CreatedAt,
	)
	return err
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, company, location, description, skills, keywords, source, source_url, created_at
		 FROM jobs
		 WHERE id = $1`,
		id,
	)

	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) List(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, company, location, description, skills, keywords, source, source_url, created_at
		 FROM jobs
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Count(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var skills, keywords []byte
	err := row.Scan(
		&j.ID, &j.UserID, &j.Title, &j.Company, &j.Location, &j.Description,
		&skills, &keywords, &j.Source, &j.SourceURL, &j.CreatedAt,
	)
	if err != nil {
		return job.Job{}, err
	}
	if j.Skills, err = unmarshalStrings(skills); err != nil {
		return job.Job{}, fmt.Errorf("unmarshal job skills: %w", err)
	}
	if j.Keywords, err = unmarshalStrings(keywords); err != nil {
		return job.Job{}, fmt.Errorf("unmarshal job keywords: %w", err)
	}
	return j, nil
}

// marshalStrings renders a string slice for a JSONB column, writing nil
// slices as empty arrays so reads never hand back null.
func marshalStrings(vals []string) (string, error) {
	if vals == nil {
		vals = []string{}
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalStrings(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
