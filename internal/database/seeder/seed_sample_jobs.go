package seeder

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"talentsift/internal/database"
	"talentsift/internal/domain/matching"
)

// SampleJobsSeeder gives a fresh install something to screen against. It
// only runs when the seeded admin account exists and still owns no jobs,
// and it stores each posting with the engine's extraction like the API
// would on create.
type SampleJobsSeeder struct{}

func (SampleJobsSeeder) Name() string { return "sample_jobs" }

func (SampleJobsSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL"))
	if email == "" {
		return nil
	}

	if err := EnsureTableColumns(ctx, db, "jobs", "id", "user_id", "title", "company", "description", "skills", "keywords", "source", "created_at"); err != nil {
		return err
	}

	var ownerID uuid.UUID
	err := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	var existing int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE user_id = $1`, ownerID).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	engine, err := matching.NewEngine(matching.Config{})
	if err != nil {
		return err
	}

	items := []struct {
		Title       string
		Company     string
		Description string
	}{
		{
			Title:   "Senior Backend Engineer",
			Company: "TalentSift Demo",
			Description: "Looking for a senior backend engineer with Go, PostgreSQL and Redis. " +
				"You will build REST APIs, own Docker and Kubernetes deployments and keep our CI/CD pipelines healthy. " +
				"AWS knowledge preferred.",
		},
		{
			Title:   "Data Analyst",
			Company: "TalentSift Demo",
			Description: "Data analyst with SQL, Python and Tableau. " +
				"You will build dashboards, run ETL jobs with Airflow and present findings to stakeholders. " +
				"Excel and pandas a plus.",
		},
	}

	for _, it := range items {
		ex := engine.Extract(matching.NormalizeText(it.Description))
		skills, err := json.Marshal(ex.Skills)
		if err != nil {
			return err
		}
		keywords, err := json.Marshal(ex.Keywords)
		if err != nil {
			return err
		}
		_, err = db.Exec(
			ctx,
			`INSERT INTO jobs (id, user_id, title, company, description, skills, keywords, source)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)`,
			ownerID,
			it.Title,
			it.Company,
			it.Description,
			string(skills),
			string(keywords),
			"seed",
		)
		if err != nil {
			return err
		}
	}
	return nil
}
