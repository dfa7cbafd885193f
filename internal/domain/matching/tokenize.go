package matching

import (
	"strings"
	"unicode"
)

// tokenize lowercases text and splits it into raw tokens. Letters, digits
// and the characters '+', '#', '.' belong to a token, everything else is a
// boundary, so "C++", "C#" and "node.js" survive intact. Trailing dots are
// stripped ("AWS." -> "aws"). No length, stop-word or numeric filtering
// happens here, that is the extractor's job.
func tokenize(text string) []string {
	tokens := make([]string, 0, 64)
	var word strings.Builder

	flush := func() {
		if word.Len() == 0 {
			return
		}
		tok := strings.TrimRight(word.String(), ".")
		word.Reset()
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// isNumericToken reports whether the token is digits only, like a year or
// a bare version number.
func isNumericToken(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
