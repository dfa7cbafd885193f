package matching

// ParsedResume is the engine's full reading of one resume: the extraction
// feeding the scorer plus the structural segments kept for display.
type ParsedResume struct {
	Skills       []string     `json:"skills"`
	Keywords     []string     `json:"keywords"`
	Email        string       `json:"email"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Certificates []string     `json:"certificates"`
}

// Parse normalizes raw resume text, extracts skills and keywords and
// segments the structure. It never fails: degenerate input produces a
// ParsedResume with empty collections.
func (e *Engine) Parse(resumeText string) ParsedResume {
	text := NormalizeText(resumeText)
	ex := e.Extract(text)
	seg := e.Segment(text)
	return ParsedResume{
		Skills:       ex.Skills,
		Keywords:     ex.Keywords,
		Email:        seg.Email,
		Experience:   seg.Experience,
		Education:    seg.Education,
		Certificates: seg.Certificates,
	}
}
