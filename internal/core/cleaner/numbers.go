package cleaner

import (
	"strings"
)

// digit to lookalike letter for NumberAggressive
var numberMap = [10]byte{'o', 'i', 'z', 'e', 'a', 's', 'g', 't', 'b', 'g'}

// handleNumbers runs, in order: the domain number strategy, brand preservation,
// the leet dictionary and the number replacement strategy
func (c *Cleaner) handleNumbers(s string) string {
	s = c.splitDomainNumbers(s)
	s = c.preserveBrands(s)
	s = c.decodeLeet(s)
	return c.replaceNumbers(s)
}

// splitDomainNumbers applies the domain number strategy to tokens made of a
// judol domain and a two or three digit suffix. Canonical brands are atoms
func (c *Cleaner) splitDomainNumbers(s string) string {
	toks := strings.Fields(s)
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		domain, num, ok := c.domainNumber(t)
		if !ok {
			out = append(out, t)
			continue
		}
		switch c.opts.DomainNumber {
		case DomainRemove:
			out = append(out, domain)
		case DomainSeparate:
			out = append(out, domain, DomainNumberToken)
		default:
			out = append(out, domain, num)
		}
	}
	return strings.Join(out, " ")
}

func (c *Cleaner) domainNumber(tok string) (domain, num string, ok bool) {
	if c.pack.IsBrand(tok) {
		return "", "", false
	}
	for _, d := range c.pack.Domains {
		if len(tok) <= len(d) || !strings.HasPrefix(tok, d) {
			continue
		}
		rest := tok[len(d):]
		if (len(rest) == 2 || len(rest) == 3) && isDigits(rest) {
			return d, rest, true
		}
	}
	return "", "", false
}

// decodeLeet replaces whole tokens found in the leet dictionary
func (c *Cleaner) decodeLeet(s string) string {
	toks := strings.Fields(s)
	for i, t := range toks {
		if v, ok := c.pack.Leet[t]; ok && !c.pack.IsBrand(t) {
			toks[i] = v
		}
	}
	return strings.Join(toks, " ")
}

// replaceNumbers applies the number strategy to the remaining digit-bearing words
func (c *Cleaner) replaceNumbers(s string) string {
	if c.opts.Number != NumberAggressive {
		return s
	}
	toks := strings.Fields(s)
	for i, t := range toks {
		if !hasDigit(t) || isDigits(t) || c.lexicon(t) || c.containsBrand(t) {
			continue
		}
		toks[i] = digitsToLetters(t)
	}
	return strings.Join(toks, " ")
}

// lexicon reports whether tok is a brand, domain or vocabulary word
func (c *Cleaner) lexicon(tok string) bool {
	return c.pack.IsBrand(tok) || c.pack.IsDomain(tok) || c.pack.InVocabulary(tok)
}

// digitsToLetters maps each digit to its lookalike. 7 reads as r before u
func digitsToLetters(t string) string {
	b := []byte(t)
	for i, ch := range b {
		if !isDigit(ch) {
			continue
		}
		if ch == '7' && i+1 < len(b) && b[i+1] == 'u' {
			b[i] = 'r'
			continue
		}
		b[i] = numberMap[ch-'0']
	}
	return string(b)
}
