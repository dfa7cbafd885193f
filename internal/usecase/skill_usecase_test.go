package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"talentsift/internal/domain/skill"
)

func TestSkill_ListSkills_GroupsByCategory(t *testing.T) {
	repo := fakeSkillRepo{items: []skill.Skill{
		{ID: uuid.New(), Name: "aws", Category: "cloud", Synonyms: []string{"amazon web services"}},
		{ID: uuid.New(), Name: "gcp", Category: "cloud"},
		{ID: uuid.New(), Name: "go", Category: "language", Synonyms: []string{"golang"}},
	}}
	cache := newFakeCache()
	uc := NewSkillUsecase(repo, cache)

	groups, err := uc.ListSkills(context.Background())
	if err != nil {
		t.Fatalf("ListSkills: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].Category != "cloud" || len(groups[0].Skills) != 2 {
		t.Errorf("cloud group = %+v", groups[0])
	}
	if groups[1].Category != "language" || groups[1].Skills[0].Name != "go" {
		t.Errorf("language group = %+v", groups[1])
	}
	if len(groups[0].Skills[0].Synonyms) != 1 {
		t.Errorf("synonyms dropped: %+v", groups[0].Skills[0])
	}
	if !cache.has(SkillsTaxonomyCacheKey) {
		t.Error("taxonomy was not cached")
	}
}

func TestSkill_ListSkills_CacheHit(t *testing.T) {
	cache := newFakeCache()
	cache.seed(t, SkillsTaxonomyCacheKey, []SkillGroup{{Category: "cached", Skills: []SkillItem{{Name: "x"}}}})
	uc := NewSkillUsecase(fakeSkillRepo{err: errors.New("repo must not be hit")}, cache)

	groups, err := uc.ListSkills(context.Background())
	if err != nil {
		t.Fatalf("ListSkills: %v", err)
	}
	if len(groups) != 1 || groups[0].Category != "cached" {
		t.Errorf("expected cached groups, got %+v", groups)
	}
}

func TestSkill_ListSkills_RepoError(t *testing.T) {
	uc := NewSkillUsecase(fakeSkillRepo{err: errors.New("boom")}, nil)

	if _, err := uc.ListSkills(context.Background()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestSkill_ListSkills_Empty(t *testing.T) {
	uc := NewSkillUsecase(fakeSkillRepo{}, nil)

	groups, err := uc.ListSkills(context.Background())
	if err != nil {
		t.Fatalf("ListSkills: %v", err)
	}
	if groups == nil || len(groups) != 0 {
		t.Errorf("empty taxonomy must serialize as [], got %v", groups)
	}
}
