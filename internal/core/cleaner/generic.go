package cleaner

import (
	"regexp"
	"strings"

	"judolguard/internal/core/normalize"
)

var (
	urlRe   = regexp.MustCompile(`(?i)\bhttps?\S+|\bwww\.\S+|\S+\.(?:com|net|org|id|io|co|xyz|site|link|me)\b\S*`)
	phoneRe = regexp.MustCompile(`\+?\b\d{2,}(?:[\s-]?\d{2,}){3}\b`)
	specRe  = regexp.MustCompile(`[^\w\s]+`)
)

// maxRepeat is how many copies of a repeated letter survive
const maxRepeat = 2

// removeURLsAndPhones drops links and phone numbers. It runs before special
// characters are stripped so the dots and dashes still delimit them
func removeURLsAndPhones(s string) string {
	s = urlRe.ReplaceAllString(s, " ")
	return phoneRe.ReplaceAllString(s, " ")
}

// removeSpecialChars turns everything but letters, digits and spaces into a space.
// Underscores split words too, except inside the domain number sentinel
func removeSpecialChars(s string) string {
	s = specRe.ReplaceAllString(s, " ")
	if !strings.Contains(s, "_") {
		return s
	}
	toks := strings.Fields(s)
	for i, t := range toks {
		if t == DomainNumberToken {
			continue
		}
		toks[i] = strings.ReplaceAll(t, "_", " ")
	}
	return strings.Join(toks, " ")
}

// collapseRepeats caps repeated letters at two and drops consecutive duplicate words
func collapseRepeats(s string) string {
	return dedupeWords(normalize.SquashLetterRuns(s, maxRepeat))
}

// dedupeWords drops consecutive duplicate words
func dedupeWords(s string) string {
	toks := strings.Fields(s)
	out := toks[:0]
	for _, t := range toks {
		if len(out) > 0 && out[len(out)-1] == t {
			continue
		}
		out = append(out, t)
	}
	return strings.Join(out, " ")
}
