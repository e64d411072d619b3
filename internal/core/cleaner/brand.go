package cleaner

import (
	"regexp"
	"strings"
)

var alnumRunRe = regexp.MustCompile(`[a-z0-9]+`)

// runs longer than this are never a single brand or vocabulary word
const maxLexiconLen = 64

// recognizeBrands rewrites permissive brand matches to the canonical spelling,
// longest brand first
func (c *Cleaner) recognizeBrands(s string) string {
	for i := range c.pack.Brands {
		br := &c.pack.Brands[i]
		for _, re := range br.Recognizers {
			s = re.ReplaceAllStringFunc(s, func(m string) string {
				return c.canonicalFor(br.Canonical, m)
			})
		}
	}
	return s
}

// canonicalFor maps a recognizer match to canonical unless the match already
// spells a different brand (sg188 must not become sgi88)
func (c *Cleaner) canonicalFor(canonical, match string) string {
	sq := squeeze(strings.ToLower(match))
	if sq != canonical && c.pack.IsBrand(sq) {
		return match
	}
	return canonical
}

// segmentBrands cuts brands out of the words they are glued to, on either side:
// disgi88gacor -> di sgi88 gacor, slottogel62 -> slot togel62
func (c *Cleaner) segmentBrands(s string) string {
	if len(c.pack.Brands) == 0 {
		return s
	}
	return alnumRunRe.ReplaceAllStringFunc(s, func(run string) string {
		return strings.Join(c.splitGlued(run), " ")
	})
}

// splitGlued splits run around every brand gluedBrand finds, left to right
func (c *Cleaner) splitGlued(run string) []string {
	var out []string
	for run != "" {
		if len(run) <= maxLexiconLen && (c.pack.IsBrand(run) || c.pack.InVocabulary(run)) {
			return append(out, run)
		}
		at, br := c.gluedBrand(run)
		if br == "" {
			return append(out, run)
		}
		if at > 0 {
			out = append(out, run[:at])
		}
		out = append(out, br)
		run = run[at+len(br):]
	}
	return out
}

// gluedBrand finds the leftmost brand in run, longest first at each offset. A
// brand is cut out only at the start or behind at least two characters, and only
// when what follows it is empty or starts with a letter, so sgi889 stays whole.
func (c *Cleaner) gluedBrand(run string) (int, string) {
	for at := 0; at < len(run); at++ {
		if at == 1 {
			continue
		}
		rest := run[at:]
		for i := range c.pack.Brands {
			br := c.pack.Brands[i].Canonical
			if !strings.HasPrefix(rest, br) {
				continue
			}
			if tail := rest[len(br):]; tail == "" || isLetter(tail[0]) {
				return at, br
			}
		}
	}
	return -1, ""
}

// containsBrand reports whether tok has a brand anywhere inside it
func (c *Cleaner) containsBrand(tok string) bool {
	for i := range c.pack.Brands {
		if strings.Contains(tok, c.pack.Brands[i].Canonical) {
			return true
		}
	}
	return false
}

// preserveBrands pins every brand to its canonical spelling: variants first,
// then a letter-spaced form for brands that keep their digits
func (c *Cleaner) preserveBrands(s string) string {
	for i := range c.pack.Brands {
		br := &c.pack.Brands[i]
		if br.Exact != nil {
			s = br.Exact.ReplaceAllLiteralString(s, br.Canonical)
		}
	}
	for i := range c.pack.Brands {
		br := &c.pack.Brands[i]
		if !br.PreserveNumbers || br.Spaced == nil {
			continue
		}
		s = br.Spaced.ReplaceAllStringFunc(s, func(m string) string {
			return c.canonicalFor(br.Canonical, m)
		})
	}
	return s
}

// applyFixups runs the brand specific rewrites from the pack
func (c *Cleaner) applyFixups(s string) string {
	for _, f := range c.pack.Fixups {
		s = f.Re.ReplaceAllString(s, f.Replace)
	}
	return s
}

// fixAlphanumeric rejoins a token and a digit led token when together they spell a brand
func (c *Cleaner) fixAlphanumeric(s string) string {
	toks := strings.Fields(s)
	if len(toks) < 2 {
		return s
	}
	return strings.Join(c.joinBrandTails(toks), " ")
}

func (c *Cleaner) joinBrandTails(toks []string) []string {
	out := make([]string, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		if i+1 < len(toks) && startsWithDigit(toks[i+1]) && !hasDigit(toks[i]) {
			if parts := c.joinBrand(toks[i], toks[i+1]); parts != nil {
				out = append(out, parts...)
				i++
				continue
			}
		}
		out = append(out, toks[i])
	}
	return out
}

// joinBrand joins left and right when they spell a brand, cutting a glued affix
// off left when only the remainder does: disgi 88 -> di sgi88
func (c *Cleaner) joinBrand(left, right string) []string {
	if joined := left + right; c.pack.IsBrand(joined) {
		return []string{joined}
	}
	for _, a := range c.pack.Affixes {
		if len(left) <= len(a) || !strings.HasPrefix(left, a) {
			continue
		}
		if joined := left[len(a):] + right; c.pack.IsBrand(joined) {
			return []string{a, joined}
		}
	}
	return nil
}

// squeeze drops all whitespace
func squeeze(s string) string {
	return strings.Join(strings.Fields(s), "")
}
