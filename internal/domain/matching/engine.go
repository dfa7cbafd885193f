// Package matching scores resumes against job descriptions. The engine is
// deterministic and purely lexical: whitespace normalization, tokenization,
// taxonomy-driven skill canonicalization and weighted overlap scoring. No
// calls leave the process, identical inputs always produce identical output.
package matching

// Config carries the tunable parts of an Engine. The zero value selects the
// default weights, taxonomy and stop-word list.
type Config struct {
	Weights   Weights
	Taxonomy  *Taxonomy
	Stopwords Stopwords
}

// Engine evaluates resumes against job descriptions. Construct it once with
// NewEngine and share it freely, all methods are safe for concurrent use.
type Engine struct {
	weights Weights
	tax     *Taxonomy
	stop    Stopwords
	idx     aliasIndex
}

func NewEngine(cfg Config) (*Engine, error) {
	w := cfg.Weights
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	tax := cfg.Taxonomy
	if tax == nil {
		tax = DefaultTaxonomy()
	}
	stop := cfg.Stopwords
	if stop == nil {
		stop = DefaultStopwords()
	}
	return &Engine{
		weights: w,
		tax:     tax,
		stop:    stop,
		idx:     buildAliasIndex(tax, stop),
	}, nil
}

// Taxonomy returns the skill dictionary the engine was built with.
func (e *Engine) Taxonomy() *Taxonomy { return e.tax }

// Result is one resume-to-job evaluation. MatchedKeywords preserves the
// job's keyword ranking order, and together with MissingKeywords it covers
// the job's keyword list exactly.
type Result struct {
	MatchScore      float64  `json:"match_score"`
	MatchPercentage int      `json:"match_percentage"`
	Status          Status   `json:"status"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

// Match scores an already parsed resume against raw job description text.
// A job description that yields no keywords rejects every resume with a
// zero score, and an empty resume profile scores zero as well.
func (e *Engine) Match(resume ParsedResume, jobDescription string) Result {
	job := e.Extract(NormalizeText(jobDescription))
	return e.match(resume, job)
}

// MatchExtraction scores a parsed resume against a job whose extraction was
// computed earlier, for callers that store extractions alongside postings.
func (e *Engine) MatchExtraction(resume ParsedResume, job Extraction) Result {
	return e.match(resume, job)
}

// MatchText parses the resume text and scores it in one step, returning
// both the parsed profile and the evaluation.
func (e *Engine) MatchText(resumeText, jobDescription string) (ParsedResume, Result) {
	parsed := e.Parse(resumeText)
	return parsed, e.Match(parsed, jobDescription)
}

func (e *Engine) match(resume ParsedResume, job Extraction) Result {
	br := e.scoreProfile(resume.Keywords, resume.Skills, job)
	return Result{
		MatchScore:      br.score,
		MatchPercentage: br.percentage,
		Status:          Classify(br.percentage),
		MatchedKeywords: br.matched,
		MissingKeywords: br.missing,
	}
}
