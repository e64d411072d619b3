// Package stemmer reduces Indonesian words to their root.
// The cleaner only sees the Stemmer interface. Sastrawi wraps the Sastrawi
// algorithm and its default root dictionary, Noop leaves text untouched
package stemmer

import (
	"fmt"
	"strings"

	sastrawi "github.com/RadhiFadlillah/go-sastrawi"
)

// Stemmer reduces every word of a space separated text
type Stemmer interface {
	Stem(text string) string
}

// Noop returns text unchanged
type Noop struct{}

// Stem implements Stemmer
func (Noop) Stem(text string) string { return text }

// Sastrawi stems with the Sastrawi affix rules against its default dictionary.
// Words whose root cannot be confirmed come back unchanged
type Sastrawi struct {
	// Protect marks tokens that must never be stemmed
	Protect func(string) bool

	st sastrawi.Stemmer
}

// NewSastrawi returns a Sastrawi stemmer. protect may be nil
func NewSastrawi(protect func(string) bool) *Sastrawi {
	return &Sastrawi{
		Protect: protect,
		st:      sastrawi.NewStemmer(sastrawi.DefaultDictionary()),
	}
}

// Stem implements Stemmer token by token. Tokens carrying a digit are never touched
func (s *Sastrawi) Stem(text string) string {
	if text == "" {
		return text
	}
	toks := strings.Fields(text)
	for i, t := range toks {
		toks[i] = s.Word(t)
	}
	return strings.Join(toks, " ")
}

// Word stems a single lower case word
func (s *Sastrawi) Word(w string) string {
	if w == "" || hasDigit(w) || (s.Protect != nil && s.Protect(w)) {
		return w
	}
	if root := s.st.Stem(w); root != "" {
		return root
	}
	return w
}

func hasDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}

// ByName returns the stemmer registered under name: "sastrawi" or "none"
func ByName(name string, protect func(string) bool) (Stemmer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sastrawi":
		return NewSastrawi(protect), nil
	case "none", "noop":
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("stemmer: unknown stemmer %q", name)
	}
}
