package search

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"talentsift/internal/domain/job"
)

// Score is the per-posting breakdown. Final blends the components with
// relevance weighted heaviest, then freshness, source and completeness.
type Score struct {
	JobID         uuid.UUID
	Relevance     float64
	Freshness     float64
	SourceQuality float64
	DataQuality   float64
	Final         float64
}

// Manually entered postings outrank imported ones at equal relevance; seed
// data ranks last.
var sourceWeights = map[string]float64{
	job.SourceManual: 3,
	job.SourceImport: 2,
	job.SourceSeed:   1,
}

// Relevance counts variant hits: title hits weigh most, an extracted skill
// hit signals more than a description mention. Capped at 10.
func Relevance(j job.Job, variants []string) float64 {
	if len(variants) == 0 {
		return 0
	}

	title := strings.ToLower(j.Title)
	company := strings.ToLower(j.Company)
	desc := strings.ToLower(j.Description)

	score := 0.0
	for _, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if title != "" && strings.Contains(title, v) {
			score += 3
		}
		for _, s := range j.Skills {
			if s == v {
				score += 2
				break
			}
		}
		if desc != "" && strings.Contains(desc, v) {
			score++
		}
		if company != "" && strings.Contains(company, v) {
			score++
		}
		if score >= 10 {
			return 10
		}
	}
	return score
}

func Freshness(j job.Job, now time.Time) float64 {
	if j.CreatedAt.IsZero() {
		return 0
	}
	age := now.Sub(j.CreatedAt)
	if age < 0 {
		age = 0
	}
	switch {
	case age <= 24*time.Hour:
		return 5
	case age <= 3*24*time.Hour:
		return 4
	case age <= 7*24*time.Hour:
		return 3
	case age <= 14*24*time.Hour:
		return 2
	case age <= 30*24*time.Hour:
		return 1
	default:
		return 0
	}
}

func SourceQuality(source string) float64 {
	if w, ok := sourceWeights[strings.TrimSpace(strings.ToLower(source))]; ok {
		return w
	}
	return 1
}

// DataQuality rewards complete postings: title, company, location, a real
// description and a non-empty skill extraction, one point each.
func DataQuality(j job.Job) float64 {
	score := 0.0
	if strings.TrimSpace(j.Title) != "" {
		score++
	}
	if strings.TrimSpace(j.Company) != "" {
		score++
	}
	if j.Location != nil && strings.TrimSpace(*j.Location) != "" {
		score++
	}
	if len(strings.TrimSpace(j.Description)) > 100 {
		score++
	}
	if len(j.Skills) > 0 {
		score++
	}
	return score
}

func ScoreJob(j job.Job, variants []string, now time.Time) Score {
	rel := Relevance(j, variants)
	fresh := Freshness(j, now)
	src := SourceQuality(j.Source)
	qual := DataQuality(j)

	return Score{
		JobID:         j.ID,
		Relevance:     rel,
		Freshness:     fresh,
		SourceQuality: src,
		DataQuality:   qual,
		Final:         rel*2 + fresh*1.5 + src + qual*0.5,
	}
}

// Rank orders postings best-first for the given query variants. Postings
// the query does not touch at all keep their incoming order at the bottom;
// a query that touches nothing returns the input unchanged.
func Rank(jobs []job.Job, variants []string, now time.Time) []job.Job {
	if len(jobs) == 0 {
		return jobs
	}

	type scored struct {
		idx       int
		relevance float64
		final     float64
	}
	rows := make([]scored, len(jobs))
	anyRelevant := false
	for i := range jobs {
		s := ScoreJob(jobs[i], variants, now)
		rows[i] = scored{idx: i, relevance: s.Relevance, final: s.Final}
		if s.Relevance > 0 {
			anyRelevant = true
		}
	}
	if !anyRelevant {
		return jobs
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if (rows[i].relevance > 0) != (rows[j].relevance > 0) {
			return rows[i].relevance > 0
		}
		return rows[i].final > rows[j].final
	})

	out := make([]job.Job, 0, len(jobs))
	for _, r := range rows {
		out = append(out, jobs[r.idx])
	}
	return out
}
