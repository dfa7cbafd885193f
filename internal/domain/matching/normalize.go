package matching

import (
	"strings"
	"unicode"
)

// NormalizeText canonicalizes whitespace in already-decoded text: line
// endings become "\n", runs of horizontal whitespace collapse to one space,
// lines come out trimmed, and runs of three or more newlines collapse to
// exactly two so paragraph breaks survive. Total function, empty in empty out.
func NormalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	pendingNewlines := 0
	lastWasCR := false

	for _, r := range text {
		if r == '\n' && lastWasCR {
			lastWasCR = false
			continue
		}
		lastWasCR = r == '\r'
		if r == '\n' || r == '\r' {
			pendingNewlines++
			pendingSpace = false
			continue
		}
		if unicode.IsSpace(r) {
			if b.Len() > 0 && pendingNewlines == 0 {
				pendingSpace = true
			}
			continue
		}

		if pendingNewlines > 0 {
			n := pendingNewlines
			if n > 2 {
				n = 2
			}
			if b.Len() > 0 {
				for ; n > 0; n-- {
					b.WriteByte('\n')
				}
			}
			pendingNewlines = 0
			pendingSpace = false
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
