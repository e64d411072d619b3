package cleaner

import (
	"strings"

	"judolguard/internal/core/rulepack"
)

// StopwordPolicy decides which tokens selective stopword removal may drop
type StopwordPolicy struct {
	pack  *rulepack.Pack
	words map[string]struct{} // stopwords minus important words
}

// maxStopwordLen is the longest token the policy will ever drop
const maxStopwordLen = 3

// NewStopwordPolicy builds the policy from the pack stopword and important sets
func NewStopwordPolicy(p *rulepack.Pack) StopwordPolicy {
	words := make(map[string]struct{}, len(p.Stopwords))
	for w := range p.Stopwords {
		if _, keep := p.Important[w]; keep {
			continue
		}
		words[w] = struct{}{}
	}
	return StopwordPolicy{pack: p, words: words}
}

// Drops reports whether tok is removed: a stopword of at most three characters
// without digits that neither contains a preserved brand nor sits inside one
func (sp StopwordPolicy) Drops(tok string) bool {
	if _, ok := sp.words[tok]; !ok {
		return false
	}
	if len(tok) > maxStopwordLen || hasDigit(tok) {
		return false
	}
	return !sp.pack.BrandRelated(tok)
}

// Remove drops every token Drops accepts
func (sp StopwordPolicy) Remove(s string) string {
	toks := strings.Fields(s)
	out := toks[:0]
	for _, t := range toks {
		if sp.Drops(t) {
			continue
		}
		out = append(out, t)
	}
	return strings.Join(out, " ")
}

// Size is the number of droppable stopwords
func (sp StopwordPolicy) Size() int { return len(sp.words) }
