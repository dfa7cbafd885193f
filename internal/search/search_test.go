package search

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"talentsift/internal/domain/job"
	"talentsift/internal/domain/matching"
)

func TestNormalizeQuery(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Golang,  Developer!  ", "golang developer"},
		{"PYTHON", "python"},
		{"react.js", "reactjs"},
		{"   ", ""},
		{"--- ***", ""},
		{"data  engineer\t2024", "data engineer 2024"},
	}
	for _, tc := range cases {
		if got := NormalizeQuery(tc.in); got != tc.want {
			t.Errorf("NormalizeQuery(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}

func TestExpandQuery_TaxonomySynonyms(t *testing.T) {
	tax := matching.DefaultTaxonomy()

	variants := ExpandQuery("golang developer", tax)
	if len(variants) == 0 || variants[0] != "golang developer" {
		t.Fatalf("normalized query must stay the first variant, got %v", variants)
	}
	if !contains(variants, "go developer") {
		t.Errorf("expected canonical substitution \"go developer\" in %v", variants)
	}

	variants = ExpandQuery("postgres", tax)
	if !contains(variants, "postgresql") || !contains(variants, "psql") {
		t.Errorf("expected postgresql synonyms, got %v", variants)
	}

	variants = ExpandQuery("quantum basket weaving", tax)
	if len(variants) != 1 || variants[0] != "quantum basket weaving" {
		t.Errorf("unknown query must not expand, got %v", variants)
	}
}

func TestExpandQuery_TwoWordPrefix(t *testing.T) {
	tax := matching.DefaultTaxonomy()

	variants := ExpandQuery("machine learning engineer", tax)
	if !contains(variants, "ml engineer") {
		t.Errorf("expected two-word prefix substitution \"ml engineer\", got %v", variants)
	}
}

func TestExpandQuery_CapsVariants(t *testing.T) {
	variants := ExpandQuery("go", matching.DefaultTaxonomy())
	if len(variants) > maxVariants {
		t.Errorf("variant list exceeds cap: %d", len(variants))
	}
}

func testJob(title, desc, source string, skills []string, age time.Duration) job.Job {
	return job.Job{
		ID:          uuid.New(),
		Title:       title,
		Company:     "Initech",
		Description: desc,
		Skills:      skills,
		Source:      source,
		CreatedAt:   time.Now().UTC().Add(-age),
	}
}

func TestRank_RelevantFirst(t *testing.T) {
	now := time.Now().UTC()
	frontend := testJob("Frontend Developer", "We build dashboards with React.", job.SourceManual, []string{"react"}, time.Hour)
	backend := testJob("Go Backend Engineer", "Services written in Go against PostgreSQL.", job.SourceManual, []string{"go", "postgresql"}, time.Hour)
	data := testJob("Data Analyst", "Spreadsheets all day.", job.SourceManual, nil, time.Hour)

	ranked := Rank([]job.Job{frontend, backend, data}, []string{"go", "golang"}, now)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 postings, got %d", len(ranked))
	}
	if ranked[0].ID != backend.ID {
		t.Errorf("expected the Go posting first, got %q", ranked[0].Title)
	}
	if ranked[2].ID == backend.ID {
		t.Errorf("relevant posting ranked last")
	}
}

func TestRank_UntouchedQueryKeepsOrder(t *testing.T) {
	now := time.Now().UTC()
	first := testJob("Frontend Developer", "React work.", job.SourceManual, []string{"react"}, time.Hour)
	second := testJob("Backend Engineer", "Go work.", job.SourceManual, []string{"go"}, 2*time.Hour)

	in := []job.Job{first, second}
	ranked := Rank(in, []string{"underwater basket weaving"}, now)
	if ranked[0].ID != first.ID || ranked[1].ID != second.ID {
		t.Errorf("zero-relevance query must keep incoming order")
	}
}

func TestRank_TiesBrokenByFreshnessAndSource(t *testing.T) {
	now := time.Now().UTC()
	stale := testJob("Go Engineer", "Go in production for years.", job.SourceSeed, []string{"go"}, 60*24*time.Hour)
	fresh := testJob("Go Engineer", "Go in production for years.", job.SourceManual, []string{"go"}, time.Hour)

	ranked := Rank([]job.Job{stale, fresh}, []string{"go"}, now)
	if ranked[0].ID != fresh.ID {
		t.Errorf("fresh manual posting should outrank stale seed posting")
	}
}

func TestScoreJob_Breakdown(t *testing.T) {
	now := time.Now().UTC()
	loc := "Austin"
	j := job.Job{
		ID:       uuid.New(),
		Title:    "Go Backend Engineer",
		Company:  "Initech",
		Location: &loc,
		Description: "We run Go services on Kubernetes with PostgreSQL storage. " +
			"You will own design, delivery and operations end to end.",
		Skills:    []string{"go", "kubernetes", "postgresql"},
		Source:    job.SourceManual,
		CreatedAt: now.Add(-time.Hour),
	}

	s := ScoreJob(j, []string{"go"}, now)
	// title hit 3 + skill hit 2 + description hit 1 = 6
	if s.Relevance != 6 {
		t.Errorf("Relevance = %v, want 6", s.Relevance)
	}
	if s.Freshness != 5 {
		t.Errorf("Freshness = %v, want 5", s.Freshness)
	}
	if s.SourceQuality != 3 {
		t.Errorf("SourceQuality = %v, want 3", s.SourceQuality)
	}
	if s.DataQuality != 5 {
		t.Errorf("DataQuality = %v, want 5", s.DataQuality)
	}
	if want := 6*2.0 + 5*1.5 + 3 + 5*0.5; s.Final != want {
		t.Errorf("Final = %v, want %v", s.Final, want)
	}
}
