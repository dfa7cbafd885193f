package importer

import (
	"encoding/json"
	"html"
	"regexp"
	"strings"
)

var (
	jsonldTagRe   = regexp.MustCompile(`<[^>]+>`)
	jsonldBreakRe = regexp.MustCompile(`(?i)<(?:br\s*/?|/p|/li|/div|/h[1-6])>`)
)

// parseJobPosting looks for a schema.org JobPosting inside a ld+json
// script body. Publishers wrap the node in arrays or @graph containers,
// so the whole document is walked.
func parseJobPosting(raw string) (Posting, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Posting{}, false
	}
	var node any
	if err := json.Unmarshal([]byte(raw), &node); err != nil {
		return Posting{}, false
	}
	return findJobPosting(node)
}

func findJobPosting(node any) (Posting, bool) {
	switch v := node.(type) {
	case []any:
		for _, item := range v {
			if p, ok := findJobPosting(item); ok {
				return p, true
			}
		}
	case map[string]any:
		if hasType(v["@type"], "JobPosting") {
			return postingFromNode(v), true
		}
		if graph, ok := v["@graph"]; ok {
			return findJobPosting(graph)
		}
	}
	return Posting{}, false
}

func hasType(node any, want string) bool {
	switch t := node.(type) {
	case string:
		return strings.EqualFold(strings.TrimSpace(t), want)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(strings.TrimSpace(s), want) {
				return true
			}
		}
	}
	return false
}

func postingFromNode(v map[string]any) Posting {
	p := Posting{
		Title:       stringField(v, "title"),
		Description: htmlToText(stringField(v, "description")),
	}

	switch org := v["hiringOrganization"].(type) {
	case map[string]any:
		p.Company = stringField(org, "name")
	case string:
		p.Company = strings.TrimSpace(org)
	}

	p.Location = locationFromNode(v["jobLocation"])
	return p
}

// locationFromNode digs addressLocality (falling back to region, then
// country) out of the first jobLocation entry.
func locationFromNode(node any) string {
	switch v := node.(type) {
	case []any:
		for _, item := range v {
			if loc := locationFromNode(item); loc != "" {
				return loc
			}
		}
	case map[string]any:
		if addr, ok := v["address"].(map[string]any); ok {
			return firstNonEmpty(
				stringField(addr, "addressLocality"),
				stringField(addr, "addressRegion"),
				stringField(addr, "addressCountry"),
			)
		}
		return stringField(v, "name")
	case string:
		return strings.TrimSpace(v)
	}
	return ""
}

func stringField(v map[string]any, key string) string {
	if s, ok := v[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// htmlToText renders embedded description HTML as plain text: block ends
// become newlines, remaining tags drop, entities unescape.
func htmlToText(s string) string {
	if !strings.Contains(s, "<") {
		return html.UnescapeString(s)
	}
	s = jsonldBreakRe.ReplaceAllString(s, "\n")
	s = jsonldTagRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(html.UnescapeString(s))
}
