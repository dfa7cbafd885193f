package matching

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// minTokenLen is the shortest token the extractor keeps. Single letters are
// noise ("a 5 b"), two runes already carry signal ("go", "js", "ci").
const minTokenLen = 2

// Extraction is what the engine pulls out of one piece of text: canonical
// skills in first-detection order and ranked keywords.
type Extraction struct {
	Skills   []string `json:"skills"`
	Keywords []string `json:"keywords"`
}

// Extract tokenizes the text, drops stop words, short tokens and free
// floating numbers, then matches taxonomy skills over the remaining stream
// and ranks the rest as keywords. Same text in, same result out.
//
// Skills come back as canonical names in the order first detected.
// Keywords are ordered by frequency, ties broken by first occurrence, and
// include the skill tokens themselves ("python" is both a detected skill
// and a high-signal keyword).
func (e *Engine) Extract(text string) Extraction {
	kept := e.filterTokens(tokenize(text))
	return Extraction{
		Skills:   e.matchSkills(kept),
		Keywords: rankKeywords(kept),
	}
}

// filterTokens applies the stop-word, length and numeric rules. A purely
// numeric token survives only when the previous kept token is a known skill
// alias, so "Java 8" keeps its "8" but "5 years" loses its "5".
func (e *Engine) filterTokens(raw []string) []string {
	kept := make([]string, 0, len(raw))
	for _, tok := range raw {
		if isNumericToken(tok) {
			if len(kept) == 0 {
				continue
			}
			if !e.idx.isAlias(kept[len(kept)-1]) {
				continue
			}
			kept = append(kept, tok)
			continue
		}
		if utf8.RuneCountInString(tok) < minTokenLen {
			continue
		}
		if e.stop.Has(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// matchSkills slides trigram, bigram and unigram windows over the token
// stream and resolves them against the alias index, longest window first.
// A match consumes its window, so "machine learning" never also yields a
// spurious standalone entry for an overlapping shorter alias.
func (e *Engine) matchSkills(tokens []string) []string {
	found := make([]string, 0, 8)
	seen := make(map[string]struct{}, 8)

	maxW := e.idx.maxWindow
	if maxW < 1 {
		maxW = 1
	}

	for i := 0; i < len(tokens); {
		consumed := 0
		for w := maxW; w >= 1; w-- {
			if i+w > len(tokens) {
				continue
			}
			phrase := tokens[i]
			if w > 1 {
				phrase = strings.Join(tokens[i:i+w], " ")
			}
			canonical, ok := e.idx.canonical(phrase)
			if !ok {
				continue
			}
			if _, dup := seen[canonical]; !dup {
				seen[canonical] = struct{}{}
				found = append(found, canonical)
			}
			consumed = w
			break
		}
		if consumed == 0 {
			consumed = 1
		}
		i += consumed
	}
	return found
}

// rankKeywords deduplicates the kept tokens and orders them by frequency,
// first occurrence breaking ties. The ordering is total, so the outcome is
// deterministic for identical input.
func rankKeywords(tokens []string) []string {
	counts := make(map[string]int, len(tokens))
	firstAt := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))

	for i, tok := range tokens {
		if _, ok := counts[tok]; !ok {
			firstAt[tok] = i
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(a, b int) bool {
		ta, tb := order[a], order[b]
		if counts[ta] != counts[tb] {
			return counts[ta] > counts[tb]
		}
		return firstAt[ta] < firstAt[tb]
	})
	return order
}
