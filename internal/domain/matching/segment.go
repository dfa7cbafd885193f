package matching

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Experience is one work history entry recovered from a resume. Fields the
// heuristics cannot find stay empty, original casing is preserved.
type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is one education entry recovered from a resume.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Field       string `json:"field"`
}

// Segments is the structural view of a resume. Slices are empty, never nil,
// when the resume has no recognizable section.
type Segments struct {
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Certificates []string     `json:"certificates"`
	Email        string       `json:"email"`
}

type section int

const (
	sectionNone section = iota
	sectionExperience
	sectionEducation
	sectionCertificates
)

// sectionHeadings maps a cleaned-up line to the section it opens. Only lines
// consisting solely of a known heading count, a sentence that merely contains
// the word "experience" does not start a zone.
var sectionHeadings = map[string]section{
	"experience":              sectionExperience,
	"work experience":         sectionExperience,
	"work history":            sectionExperience,
	"employment":              sectionExperience,
	"employment history":      sectionExperience,
	"professional experience": sectionExperience,
	"career history":          sectionExperience,

	"education":           sectionEducation,
	"academic background": sectionEducation,
	"qualifications":      sectionEducation,

	"certifications":               sectionCertificates,
	"certificates":                 sectionCertificates,
	"licenses":                     sectionCertificates,
	"licenses and certifications":  sectionCertificates,
	"certifications and licenses":  sectionCertificates,
	"certifications and licensure": sectionCertificates,
}

const monthPattern = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?`
const datePattern = `(?:` + monthPattern + `,?\s*\d{4}|\d{1,2}[-/.]\d{2,4}|\d{4})`

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// A duration is two dates joined by a dash or "to", the right side may
	// be an ongoing marker ("Jan 2020 - Present", "2019 to 2022").
	dateRangeRe = regexp.MustCompile(`(?i)` + datePattern + `\s*(?:[-–—]|to|until)\s*(?:` + datePattern + `|present|current|now)`)

	yearRe = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	degreeRe = regexp.MustCompile(`(?i)(?:\b(?:bachelor|master)(?:'?s)?(?:\s+of\s+[a-z]+)?|\bdoctor(?:ate)?\b|\bassociate(?:'?s)?(?:\s+degree)?|\bdiploma\b|\bmba\b|\bph\.?\s?d\b\.?|\b[bm]\.\s?(?:sc?|a|e)\b\.?|\b(?:bsc|msc|bs|ba)\b|\b[bm]\.?tech\b)`)

	institutionRe = regexp.MustCompile(`(?i)university|college|institute|school|academy|polytechnic`)
)

// Segment splits normalized resume text into experience, education and
// certificate entries plus the first email address found anywhere in the
// text. It never fails: unrecognizable input yields empty sections.
func (e *Engine) Segment(text string) Segments {
	seg := Segments{
		Experience:   []Experience{},
		Education:    []Education{},
		Certificates: []string{},
		Email:        emailRe.FindString(text),
	}

	zones := splitZones(text)
	if lines, ok := zones[sectionExperience]; ok {
		seg.Experience = parseExperienceZone(lines)
	}
	if lines, ok := zones[sectionEducation]; ok {
		seg.Education = parseEducationZone(lines)
	}
	if lines, ok := zones[sectionCertificates]; ok {
		seg.Certificates = parseCertificateZone(lines)
	}
	return seg
}

// splitZones walks the text line by line and buckets everything after a
// recognized heading into that heading's section, up to the next heading.
// Text before the first heading belongs to no zone.
func splitZones(text string) map[section][]string {
	zones := make(map[section][]string, 3)
	current := sectionNone
	for _, line := range strings.Split(text, "\n") {
		if sec, ok := headingFor(line); ok {
			current = sec
			continue
		}
		if current == sectionNone {
			continue
		}
		zones[current] = append(zones[current], line)
	}
	return zones
}

func headingFor(line string) (section, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "#*•- \t")
	s = strings.TrimRight(s, " \t:.*-–—")
	if s == "" {
		return sectionNone, false
	}
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	sec, ok := sectionHeadings[s]
	return sec, ok
}

// --- experience ---

func parseExperienceZone(lines []string) []Experience {
	blocks := splitExperienceBlocks(lines)
	out := make([]Experience, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, parseExperienceBlock(b))
	}
	return out
}

// splitExperienceBlocks groups zone lines into entries. Blank lines always
// separate entries. In dense layouts without blank lines a second date range
// marks the next entry, and the line right above it is pulled along when it
// reads like a job header.
func splitExperienceBlocks(lines []string) [][]string {
	blocks := make([][]string, 0, 4)
	cur := make([]string, 0, 8)
	hasDate := false

	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, cur)
			cur = make([]string, 0, 8)
		}
		hasDate = false
	}

	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" {
			flush()
			continue
		}
		if hasDate && dateRangeRe.MatchString(t) {
			var carry string
			if n := len(cur); n > 0 && looksLikeHeaderLine(cur[n-1]) {
				carry = cur[n-1]
				cur = cur[:n-1]
			}
			flush()
			if carry != "" {
				cur = append(cur, carry)
			}
		}
		if dateRangeRe.MatchString(t) {
			hasDate = true
		}
		cur = append(cur, t)
	}
	flush()
	return blocks
}

func parseExperienceBlock(lines []string) Experience {
	var exp Experience
	for _, ln := range lines {
		if m := dateRangeRe.FindString(ln); m != "" {
			exp.Duration = strings.TrimSpace(m)
			break
		}
	}

	// Header is the first line with content besides a date range.
	header := ""
	rest := lines
	for len(rest) > 0 {
		candidate := stripDates(rest[0])
		rest = rest[1:]
		if candidate != "" {
			header = candidate
			break
		}
	}
	exp.Position, exp.Company = splitJobHeader(header)

	if exp.Company == "" && len(rest) > 0 && looksLikeCompanyLine(rest[0]) {
		exp.Company = strings.TrimSpace(rest[0])
		rest = rest[1:]
	}

	desc := make([]string, 0, len(rest))
	for _, ln := range rest {
		if stripDates(ln) == "" {
			continue
		}
		ln = strings.TrimSpace(strings.TrimLeft(ln, "•*- \t"))
		if ln != "" {
			desc = append(desc, ln)
		}
	}
	exp.Description = strings.Join(desc, " ")
	return exp
}

var jobHeaderSeparators = []string{" at ", " @ ", " | ", " - ", " – ", " • "}

// splitJobHeader breaks "Senior Engineer at Acme" style lines apart. The
// left side is read as the position and the right side as the company,
// which holds for the dominant "title at company" convention.
func splitJobHeader(header string) (position, company string) {
	for _, sep := range jobHeaderSeparators {
		idx := strings.Index(header, sep)
		if idx <= 0 {
			continue
		}
		left := strings.TrimSpace(header[:idx])
		right := strings.TrimSpace(header[idx+len(sep):])
		if left == "" || right == "" {
			continue
		}
		return left, right
	}
	return strings.TrimSpace(header), ""
}

func stripDates(line string) string {
	s := dateRangeRe.ReplaceAllString(line, "")
	return strings.Trim(s, " \t,|•*-–—()")
}

func looksLikeHeaderLine(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "•") || strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "* ") {
		return false
	}
	if dateRangeRe.MatchString(s) {
		return false
	}
	if len(strings.Fields(s)) > 10 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func looksLikeCompanyLine(s string) bool {
	s = strings.TrimSpace(s)
	if !looksLikeHeaderLine(s) {
		return false
	}
	if strings.HasSuffix(s, ".") {
		return false
	}
	return len(strings.Fields(s)) <= 6
}

// --- education ---

func parseEducationZone(lines []string) []Education {
	blocks := splitEducationBlocks(lines)
	out := make([]Education, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, parseEducationBlock(b))
	}
	return out
}

func splitEducationBlocks(lines []string) [][]string {
	blocks := make([][]string, 0, 2)
	cur := make([]string, 0, 4)
	hasDegree := false

	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, cur)
			cur = make([]string, 0, 4)
		}
		hasDegree = false
	}

	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" {
			flush()
			continue
		}
		if hasDegree && degreeRe.MatchString(t) {
			flush()
		}
		if degreeRe.MatchString(t) {
			hasDegree = true
		}
		cur = append(cur, t)
	}
	flush()
	return blocks
}

func parseEducationBlock(lines []string) Education {
	var edu Education
	edu.Year = yearRe.FindString(strings.Join(lines, " "))

	degreeLine := -1
	for i, ln := range lines {
		if loc := degreeRe.FindStringIndex(ln); loc != nil {
			degreeLine = i
			edu.Degree = strings.TrimRight(ln[loc[0]:loc[1]], " ")
			edu.Field = fieldAfterDegree(ln[loc[1]:])
			break
		}
	}

	for _, ln := range lines {
		if institutionRe.MatchString(ln) {
			edu.Institution = cleanEducationLine(ln)
			break
		}
	}
	if edu.Institution == "" {
		for i, ln := range lines {
			if i == degreeLine {
				continue
			}
			if cleaned := cleanEducationLine(ln); cleaned != "" {
				edu.Institution = cleaned
				break
			}
		}
	}
	return edu
}

// fieldAfterDegree recovers the study field from the text following the
// degree itself: "B.S. in Computer Science, 2018" yields "Computer Science".
func fieldAfterDegree(tail string) string {
	s := strings.TrimLeft(tail, " \t,.:;-–—")
	for {
		lower := strings.ToLower(s)
		if lower == "in" || lower == "of" || lower == "degree" {
			return ""
		}
		switch {
		case strings.HasPrefix(lower, "in "):
			s = strings.TrimSpace(s[3:])
		case strings.HasPrefix(lower, "of "):
			s = strings.TrimSpace(s[3:])
		case strings.HasPrefix(lower, "degree "):
			s = strings.TrimSpace(s[7:])
		default:
			if cut := strings.IndexAny(s, ",|("); cut >= 0 {
				s = s[:cut]
			}
			s = yearRe.ReplaceAllString(s, "")
			return strings.Trim(s, " \t,.-–—")
		}
	}
}

func cleanEducationLine(line string) string {
	s := yearRe.ReplaceAllString(line, "")
	s = dateRangeRe.ReplaceAllString(s, "")
	return strings.Trim(s, " \t,.|•*-–—()")
}

// --- certificates ---

func parseCertificateZone(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		ln = strings.TrimLeft(ln, "•*- \t")
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return out
}
