// Package search ranks stored job postings against a recruiter's free-text
// query. Scoring is lexical and runs in memory over a window of recent
// postings; the pool is small enough that fetch-and-rank beats maintaining
// a search index.
package search

import (
	"strings"
	"unicode"

	"talentsift/internal/domain/matching"
)

// Variant lists never grow past this, however rich the taxonomy entry.
const maxVariants = 10

type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery lowercases the input and strips everything that is not a
// letter, digit or single space.
func NormalizeQuery(input string) string {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return ""
	}

	b := strings.Builder{}
	b.Grow(len(input))
	lastWasSpace := false
	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			lastWasSpace = false
			continue
		}
		if unicode.IsSpace(r) {
			if b.Len() == 0 || lastWasSpace {
				continue
			}
			b.WriteByte(' ')
			lastWasSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// ExpandQuery derives probe variants from the skill taxonomy: when the
// query, or its one- or two-word prefix, names a skill or one of its
// synonyms, the canonical name and the remaining synonyms substitute in,
// so "golang developer" also probes "go developer". The normalized query
// itself is always the first variant.
func ExpandQuery(normalized string, tax *matching.Taxonomy) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, maxVariants)
	seen := make(map[string]struct{}, maxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || len(out) >= maxVariants {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	if tax == nil {
		return out
	}

	aliases := aliasGroups(tax)
	words := strings.Fields(normalized)

	expand := func(prefix string, rest []string) {
		group, ok := aliases[prefix]
		if !ok {
			return
		}
		restStr := strings.Join(rest, " ")
		for _, alias := range group {
			if alias == prefix {
				continue
			}
			if restStr == "" {
				add(alias)
			} else {
				add(alias + " " + restStr)
			}
		}
	}

	expand(normalized, nil)
	if len(words) >= 1 {
		expand(words[0], words[1:])
	}
	if len(words) >= 2 {
		expand(words[0]+" "+words[1], words[2:])
	}
	return out
}

// aliasGroups maps every normalized alias of a skill to the full alias set
// of that skill, canonical name first.
func aliasGroups(tax *matching.Taxonomy) map[string][]string {
	groups := make(map[string][]string, tax.Len()*2)
	for _, s := range tax.Skills() {
		all := make([]string, 0, len(s.Synonyms)+1)
		if name := NormalizeQuery(s.Name); name != "" {
			all = append(all, name)
		}
		for _, syn := range s.Synonyms {
			if v := NormalizeQuery(syn); v != "" {
				all = append(all, v)
			}
		}
		for _, alias := range all {
			if _, taken := groups[alias]; !taken {
				groups[alias] = all
			}
		}
	}
	return groups
}

func ProcessQuery(input string, tax *matching.Taxonomy) QueryContext {
	ctx := QueryContext{Original: input}
	ctx.Normalized = NormalizeQuery(input)
	if ctx.Normalized == "" {
		ctx.Variants = []string{}
		return ctx
	}
	ctx.Variants = ExpandQuery(ctx.Normalized, tax)
	return ctx
}
