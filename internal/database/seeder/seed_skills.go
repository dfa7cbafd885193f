package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"talentsift/internal/database"
	"talentsift/internal/domain/matching"
)

// SkillsSeeder mirrors the engine's default taxonomy into the skills table
// so the API can serve the dictionary the matcher actually uses.
type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "synonyms", "created_at"); err != nil {
		return err
	}

	tx, err := db.SQLDB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, s := range matching.DefaultTaxonomy().Skills() {
		synonyms := s.Synonyms
		if synonyms == nil {
			synonyms = []string{}
		}
		b, err := json.Marshal(synonyms)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO skills (id, name, category, synonyms) VALUES (gen_random_uuid(), $1, $2, $3) ON CONFLICT (name) DO NOTHING`,
			s.Name,
			s.Category,
			string(b),
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
