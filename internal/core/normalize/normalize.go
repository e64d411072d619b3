// Package normalize turns adversarial comment text into plain lowercase ASCII.
// Pipeline order
// 1 encoding repair (RepairEncoding)
// 2 decoration runs to a space (StripDecorations)
// 3 emoji letters, digits and tokens (TranslateEmoji)
// 4 lookalike character map
// 5 NFKD, case fold, strip combining marks and format chars, width fold
// 6 ASCII allow-list, other letters and digits transliterated
// 7 collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)), // combining marks
			runes.Remove(runes.In(unicode.Me)),
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF etc
			width.Fold,
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize runs every step of the package pipeline
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	return n.Fold(StripDecorations(RepairEncoding(s)))
}

// Fold runs steps 3 to 7. The result is lowercase printable ASCII and Fold(Fold(s)) == Fold(s)
func (n *Normalizer) Fold(s string) string {
	if s == "" {
		return ""
	}
	s = mapChars(TranslateEmoji(s))
	if !isASCII(s) {
		tr := chainPool.Get().(transform.Transformer)
		ns, _, err := transform.String(tr, s)
		tr.Reset()
		chainPool.Put(tr)
		if err == nil {
			s = ns
		}

		s = asciiOnly(s)
	}
	return CollapseSpaces(strings.ToLower(s))
}

// mapChars applies the lookalike table once per rune
func mapChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if m, ok := charMap[r]; ok {
			b.WriteString(m)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// asciiOnly keeps printable ASCII, transliterates other letters and digits and turns the rest into spaces
func asciiOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 0x20 && r < 0x7F:
			b.WriteRune(r)
		case r < 0x80:
			b.WriteByte(' ')
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			t := unidecode.Unidecode(string(r))
			if t == "" || !isASCII(t) {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(t)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}
