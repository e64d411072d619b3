package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TranslateEmoji rewrites emoji letters and digits to plain characters and
// meaningful emoji to space padded word tokens. Keycap and variation selectors are dropped.
// A regional indicator run becomes one word, spaced off from neighbouring letters only
func TranslateEmoji(s string) string {
	if s == "" || isASCII(s) {
		return s
	}
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == 0xFE0F || r == 0xFE0E || r == 0x20E3:
			continue
		case isRegional(r):
			j := i
			for j < len(rs) && isRegional(rs[j]) {
				j++
			}
			if prev := lastRune(&b); unicode.IsLetter(prev) {
				b.WriteByte(' ')
			}
			for _, x := range rs[i:j] {
				b.WriteRune('a' + (x - regionalA))
			}
			if j < len(rs) && unicode.IsLetter(rs[j]) {
				b.WriteByte(' ')
			}
			i = j - 1
		default:
			if t, ok := tokenEmoji[r]; ok {
				b.WriteByte(' ')
				b.WriteString(t)
				b.WriteByte(' ')
				continue
			}
			if t, ok := emojiRune(r); ok {
				b.WriteString(t)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func lastRune(b *strings.Builder) rune {
	r, _ := utf8.DecodeLastRuneInString(b.String())
	return r
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
