package repository

import (
	"context"
	"fmt"

	"talentsift/internal/database"
	"talentsift/internal/domain/skill"
)

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) List(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, synonyms, created_at
		 FROM skills
		 ORDER BY category ASC, name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		var synonyms []byte
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &synonyms, &s.CreatedAt); err != nil {
			return nil, err
		}
		if s.Synonyms, err = unmarshalStrings(synonyms); err != nil {
			return nil, fmt.Errorf("unmarshal skill synonyms: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
