package normalize

import (
	"strings"
	"unicode"
)

// CollapseSpaces converts every whitespace run, line breaks included, to a single ASCII space
// and trims both ends
func CollapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}

// SquashLetterRuns caps runs of the same ASCII letter at max. Digits are left alone so
// numeric brand tails like 888 survive
func SquashLetterRuns(s string, max int) string {
	if s == "" || max < 1 {
		return s
	}
	out := make([]rune, 0, len(s))
	var prev rune
	count := 0
	for _, r := range s {
		if r == prev && isASCIILetter(r) {
			count++
			if count <= max {
				out = append(out, r)
			}
			continue
		}
		prev = r
		count = 1
		out = append(out, r)
	}
	return string(out)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
