package matching

import (
	"errors"
	"math"
	"strings"
)

// Default component weights. Skill overlap dominates keyword overlap, the
// two always sum to one.
const (
	defaultSkillWeight   = 0.6
	defaultKeywordWeight = 0.4
)

// Weights blends the two overlap ratios into the final score.
type Weights struct {
	Skill   float64 `json:"skill"`
	Keyword float64 `json:"keyword"`
}

func DefaultWeights() Weights {
	return Weights{Skill: defaultSkillWeight, Keyword: defaultKeywordWeight}
}

func (w Weights) Validate() error {
	if w.Skill <= 0 || w.Keyword <= 0 {
		return errors.New("matching: weights must be positive")
	}
	if math.Abs(w.Skill+w.Keyword-1) > 1e-9 {
		return errors.New("matching: weights must sum to 1")
	}
	if w.Skill <= w.Keyword {
		return errors.New("matching: skill weight must exceed keyword weight")
	}
	return nil
}

type scoreBreakdown struct {
	score      float64
	percentage int
	matched    []string
	missing    []string
}

// scoreProfile compares a parsed resume against an extracted job posting.
//
// A job keyword counts as covered when the resume mentions it as a keyword,
// as a canonical skill, or as a word of a multiword canonical skill, so a
// "machine learning" resume still covers the job keyword "learning". Matched
// keywords keep the job's ranking order and matched plus missing always
// partition the job's keyword list.
func (e *Engine) scoreProfile(resumeKeywords, resumeSkills []string, job Extraction) scoreBreakdown {
	if len(job.Keywords) == 0 {
		return scoreBreakdown{matched: []string{}, missing: []string{}}
	}

	coverage := make(map[string]struct{}, len(resumeKeywords)+2*len(resumeSkills))
	for _, kw := range resumeKeywords {
		coverage[kw] = struct{}{}
	}
	skillSet := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		skillSet[s] = struct{}{}
		coverage[s] = struct{}{}
		if strings.ContainsRune(s, ' ') {
			for _, part := range strings.Fields(s) {
				coverage[part] = struct{}{}
			}
		}
	}

	matched := make([]string, 0, len(job.Keywords))
	missing := make([]string, 0, len(job.Keywords))
	for _, kw := range job.Keywords {
		if _, ok := coverage[kw]; ok {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	skillHits := 0
	for _, s := range job.Skills {
		if _, ok := skillSet[s]; ok {
			skillHits++
		}
	}

	skillRatio := float64(skillHits) / float64(max(1, len(job.Skills)))
	keywordRatio := float64(len(matched)) / float64(max(1, len(job.Keywords)))
	score := e.weights.Skill*skillRatio + e.weights.Keyword*keywordRatio

	return scoreBreakdown{
		score:      score,
		percentage: int(math.Round(clamp01(score) * 100)),
		matched:    matched,
		missing:    missing,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
