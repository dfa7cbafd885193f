package usecase

import (
	"context"

	"github.com/google/uuid"

	"talentsift/internal/domain/skill"
)

type SkillItem struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Synonyms []string  `json:"synonyms"`
}

type SkillGroup struct {
	Category string      `json:"category"`
	Skills   []SkillItem `json:"skills"`
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]SkillGroup, error)
}

type Skill struct {
	repo  skill.Repository
	cache Cache
}

func NewSkillUsecase(repo skill.Repository, cache Cache) *Skill {
	return &Skill{repo: repo, cache: cache}
}

// ListSkills serves the persisted taxonomy grouped by category. The table
// only changes on reseed, so the cache entry simply rides out its TTL.
func (u *Skill) ListSkills(ctx context.Context) ([]SkillGroup, error) {
	if u.cache != nil {
		var cached []SkillGroup
		if hit, err := u.cache.GetJSON(ctx, SkillsTaxonomyCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	// The repository orders by category then name, so grouping is a single
	// linear pass.
	out := make([]SkillGroup, 0)
	for _, it := range items {
		if len(out) == 0 || out[len(out)-1].Category != it.Category {
			out = append(out, SkillGroup{Category: it.Category, Skills: make([]SkillItem, 0, 4)})
		}
		g := &out[len(out)-1]
		g.Skills = append(g.Skills, SkillItem{ID: it.ID, Name: it.Name, Synonyms: it.Synonyms})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, SkillsTaxonomyCacheKey, out, 0)
	}
	return out, nil
}
