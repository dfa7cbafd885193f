package repository

import (
	"context"

	"talentsift/internal/database"
	"talentsift/internal/domain"
)

// PostgresStatusRepository answers the service overview queries: corpus
// sizes, today's run count, and how stored screening results spread over
// the match bands.
type PostgresStatusRepository struct {
	db database.DB
}

func NewPostgresStatusRepository(db database.DB) *PostgresStatusRepository {
	return &PostgresStatusRepository{db: db}
}

func (r *PostgresStatusRepository) TotalResumes(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COALESCE(COUNT(1), 0) FROM resumes`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresStatusRepository) TotalJobs(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COALESCE(COUNT(1), 0) FROM jobs`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresStatusRepository) RunsToday(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(COUNT(1), 0)
		 FROM screening_runs
		 WHERE created_at >= date_trunc('day', now())`,
	)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresStatusRepository) ResultBands(ctx context.Context) ([]domain.BandStat, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(1) AS total
		 FROM screening_results
		 GROUP BY status
		 ORDER BY total DESC, status ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.BandStat, 0)
	for rows.Next() {
		var b domain.BandStat
		if err := rows.Scan(&b.Status, &b.Total); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
