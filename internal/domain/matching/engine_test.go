package matching

import (
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"
)

const (
	scenarioResume = `Jane Smith
jane@example.com

EXPERIENCE

Backend Engineer at Initech
2019 - 2024
- 5 years of Python and AWS experience

EDUCATION

B.S. Computer Science, 2018
State University`

	scenarioJob = "Looking for Python developer with AWS and Docker skills"
)

func TestMatchScenario(t *testing.T) {
	e := newTestEngine(t)
	parsed, res := e.MatchText(scenarioResume, scenarioJob)

	if want := []string{"python", "aws"}; !reflect.DeepEqual(parsed.Skills, want) {
		t.Errorf("resume skills = %v, want %v", parsed.Skills, want)
	}

	if res.MatchPercentage != 60 {
		t.Errorf("percentage = %d, want 60", res.MatchPercentage)
	}
	if math.Abs(res.MatchScore-0.6) > 1e-9 {
		t.Errorf("score = %v, want 0.6", res.MatchScore)
	}
	if res.Status != StatusLowPriority {
		t.Errorf("status = %q, want %q", res.Status, StatusLowPriority)
	}
	if want := []string{"python", "aws"}; !reflect.DeepEqual(res.MatchedKeywords, want) {
		t.Errorf("matched = %v, want %v", res.MatchedKeywords, want)
	}
	if want := []string{"developer", "docker"}; !reflect.DeepEqual(res.MissingKeywords, want) {
		t.Errorf("missing = %v, want %v", res.MissingKeywords, want)
	}
}

func TestMatchEmptyJobDescription(t *testing.T) {
	e := newTestEngine(t)
	parsed := e.Parse(scenarioResume)

	for _, jd := range []string{"", "   \n\n  ", "the and with for"} {
		res := e.Match(parsed, jd)
		if res.MatchScore != 0 || res.MatchPercentage != 0 {
			t.Errorf("jd %q: score = %v/%d, want 0", jd, res.MatchScore, res.MatchPercentage)
		}
		if res.Status != StatusRejected {
			t.Errorf("jd %q: status = %q, want rejected", jd, res.Status)
		}
		if len(res.MatchedKeywords) != 0 || len(res.MissingKeywords) != 0 {
			t.Errorf("jd %q: keyword lists should be empty, got %+v", jd, res)
		}
		if res.MatchedKeywords == nil || res.MissingKeywords == nil {
			t.Errorf("jd %q: keyword lists should be empty slices, not nil", jd)
		}
	}
}

func TestMatchEmptyResumeProfile(t *testing.T) {
	e := newTestEngine(t)
	res := e.Match(ParsedResume{}, scenarioJob)

	if res.MatchScore != 0 || res.MatchPercentage != 0 {
		t.Errorf("score = %v/%d, want 0", res.MatchScore, res.MatchPercentage)
	}
	if res.Status != StatusRejected {
		t.Errorf("status = %q, want rejected", res.Status)
	}
	if len(res.MatchedKeywords) != 0 {
		t.Errorf("matched = %v, want none", res.MatchedKeywords)
	}
	want := []string{"python", "developer", "aws", "docker"}
	if !reflect.DeepEqual(res.MissingKeywords, want) {
		t.Errorf("missing = %v, want %v", res.MissingKeywords, want)
	}
}

func TestMatchIdenticalText(t *testing.T) {
	e := newTestEngine(t)
	text := "Python developer, Docker, AWS, PostgreSQL, Kubernetes"

	_, res := e.MatchText(text, text)
	if res.MatchPercentage != 100 {
		t.Errorf("percentage = %d, want 100", res.MatchPercentage)
	}
	if res.Status != StatusShortlisted {
		t.Errorf("status = %q, want shortlisted", res.Status)
	}
	if len(res.MissingKeywords) != 0 {
		t.Errorf("missing = %v, want none", res.MissingKeywords)
	}
}

// Matched and missing keywords partition the job's ranked keyword list, in
// the job's order, no matter the resume.
func TestMatchKeywordPartition(t *testing.T) {
	e := newTestEngine(t)
	job := "Senior Go engineer: Kubernetes, Terraform, PostgreSQL, Kafka, gRPC"
	jobKeywords := e.Extract(NormalizeText(job)).Keywords

	parsed := e.Parse("I ship Go services on PostgreSQL and Kafka. contact@example.com")
	res := e.Match(parsed, job)

	recombined := make([]string, 0, len(jobKeywords))
	mi, si := 0, 0
	for _, kw := range jobKeywords {
		switch {
		case mi < len(res.MatchedKeywords) && res.MatchedKeywords[mi] == kw:
			mi++
			recombined = append(recombined, kw)
		case si < len(res.MissingKeywords) && res.MissingKeywords[si] == kw:
			si++
			recombined = append(recombined, kw)
		default:
			t.Fatalf("keyword %q not next in either list (matched %v, missing %v)", kw, res.MatchedKeywords, res.MissingKeywords)
		}
	}
	if mi != len(res.MatchedKeywords) || si != len(res.MissingKeywords) {
		t.Errorf("lists carry extra keywords: matched %v, missing %v, job %v", res.MatchedKeywords, res.MissingKeywords, jobKeywords)
	}
	if !reflect.DeepEqual(recombined, jobKeywords) {
		t.Errorf("partition mismatch: %v vs %v", recombined, jobKeywords)
	}
}

func TestMatchMonotonic(t *testing.T) {
	e := newTestEngine(t)
	base := e.Parse(scenarioResume)
	before := e.Match(base, scenarioJob)

	richer := base
	richer.Skills = append(append([]string{}, base.Skills...), "docker")
	richer.Keywords = append(append([]string{}, base.Keywords...), "docker")
	after := e.Match(richer, scenarioJob)

	if after.MatchScore < before.MatchScore {
		t.Errorf("score dropped after adding a skill: %v -> %v", before.MatchScore, after.MatchScore)
	}
	if after.MatchPercentage <= before.MatchPercentage {
		t.Errorf("percentage should rise here: %d -> %d", before.MatchPercentage, after.MatchPercentage)
	}
}

// A multiword canonical skill covers its component job keywords: a resume
// canonicalized to "machine learning" still matches the job token "learning".
func TestMatchMultiwordSkillCoversTokens(t *testing.T) {
	e := newTestEngine(t)
	resume := ParsedResume{Skills: []string{"machine learning"}, Keywords: []string{}}

	res := e.Match(resume, "machine learning research")
	for _, kw := range []string{"machine", "learning"} {
		found := false
		for _, m := range res.MatchedKeywords {
			if m == kw {
				found = true
			}
		}
		if !found {
			t.Errorf("keyword %q not covered, matched = %v", kw, res.MatchedKeywords)
		}
	}
}

func TestMatchExtractionRatios(t *testing.T) {
	e := newTestEngine(t)
	job := Extraction{
		Skills:   []string{"x", "y", "z"},
		Keywords: []string{"k1", "k2"},
	}
	resume := ParsedResume{Skills: []string{"x"}, Keywords: []string{"k1"}}

	res := e.MatchExtraction(resume, job)
	want := 0.6*(1.0/3.0) + 0.4*0.5
	if math.Abs(res.MatchScore-want) > 1e-9 {
		t.Errorf("score = %v, want %v", res.MatchScore, want)
	}
	if res.MatchPercentage != 40 {
		t.Errorf("percentage = %d, want 40", res.MatchPercentage)
	}
	if res.Status != StatusRejected {
		t.Errorf("status = %q, want rejected", res.Status)
	}
}

func TestMatchConcurrent(t *testing.T) {
	e := newTestEngine(t)
	parsed := e.Parse(scenarioResume)
	want := e.Match(parsed, scenarioJob)

	var wg sync.WaitGroup
	results := make([]Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Match(parsed, scenarioJob)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if !reflect.DeepEqual(got, want) {
			t.Errorf("result %d diverged: %+v vs %+v", i, got, want)
		}
	}
}

func TestNewEngineWeights(t *testing.T) {
	if _, err := NewEngine(Config{}); err != nil {
		t.Fatalf("zero config should use defaults: %v", err)
	}
	if _, err := NewEngine(Config{Weights: Weights{Skill: 0.7, Keyword: 0.3}}); err != nil {
		t.Fatalf("valid weights rejected: %v", err)
	}

	invalid := []Weights{
		{Skill: 0.7, Keyword: 0.2},  // does not sum to 1
		{Skill: 0.5, Keyword: 0.5},  // skill must dominate
		{Skill: 0.4, Keyword: 0.6},  // keyword heavier than skill
		{Skill: 1.2, Keyword: -0.2}, // negative component
	}
	for _, w := range invalid {
		if _, err := NewEngine(Config{Weights: w}); err == nil {
			t.Errorf("weights %+v should be rejected", w)
		}
	}
}

func TestParseNeverFails(t *testing.T) {
	e := newTestEngine(t)
	inputs := []string{"", "\x00\x01\x02", strings.Repeat("word ", 10000), "no structure at all"}
	for _, in := range inputs {
		parsed := e.Parse(in)
		if parsed.Skills == nil || parsed.Keywords == nil {
			t.Errorf("Parse(%.20q) returned nil collections", in)
		}
	}
}
