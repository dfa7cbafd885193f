package matching

// Stopwords is the set of tokens the extractor throws away before any
// skill or keyword logic runs. Lookup keys are lowercase.
type Stopwords map[string]struct{}

// DefaultStopwords covers English function words plus the filler that
// dominates job postings and resumes ("looking", "skills", "requirements").
// Role words such as "developer" or "engineer" stay in, they carry signal.
func DefaultStopwords() Stopwords {
	s := make(Stopwords, len(defaultStopwordList))
	for _, w := range defaultStopwordList {
		s[w] = struct{}{}
	}
	return s
}

func (s Stopwords) Has(token string) bool {
	_, ok := s[token]
	return ok
}

var defaultStopwordList = []string{
	"a", "an", "the", "and", "or", "but", "if", "then", "else",
	"of", "at", "by", "for", "with", "without", "about", "into", "onto",
	"through", "during", "before", "after", "above", "below", "between",
	"to", "from", "up", "down", "in", "out", "on", "off", "over", "under",
	"again", "further", "once", "here", "there", "where", "when", "while",
	"all", "any", "both", "each", "few", "more", "most", "other", "some",
	"such", "no", "nor", "not", "only", "own", "same", "so", "than", "too",
	"very", "just", "also", "etc",
	"i", "me", "my", "we", "us", "our", "you", "your", "he", "him", "his",
	"she", "her", "it", "its", "they", "them", "their", "this", "that",
	"these", "those", "who", "whom", "which", "what", "why", "how",
	"am", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "having", "do", "does", "did", "doing",
	"can", "could", "will", "would", "shall", "should", "may", "might",
	"must", "as", "per",
	"looking", "seeking", "hiring", "join", "work", "working", "worked",
	"team", "teams", "role", "position", "company", "candidate",
	"candidates", "applicant", "opportunity", "responsibilities",
	"responsible", "requirements", "required", "require", "requires",
	"preferred", "plus", "bonus", "nice", "ability", "able", "skill",
	"skills", "experience", "experienced", "years", "year", "knowledge",
	"familiarity", "familiar", "proficiency", "proficient", "strong",
	"solid", "good", "great", "excellent", "including", "include",
	"includes", "related", "relevant", "well", "new", "use",
	"using", "used", "within", "across", "various", "daily", "help",
	"helped", "ensure", "ensured", "environment",
}
