package cleaner

import (
	"strings"

	"judolguard/internal/core/rulepack"
)

// limits for joining fragments back together
const (
	minLetterRun    = 3 // single letter tokens needed before a run is joined
	maxPairFragment = 4 // letters per token when two fragments precede digits
	maxTrioFragment = 3 // letters per token when three fragments precede digits
	maxMergeSpan    = 4 // tokens considered by the greedy vocabulary merge
	maxMergeToken   = 6
	shortFragment   = 3 // at least one merged token must be this short
)

// applyCombinations rewrites known multi-word splits, longest phrase first
func (c *Cleaner) applyCombinations(s string) string {
	for _, cb := range c.pack.Combinations {
		s = cb.Re.ReplaceAllLiteralString(s, cb.Replace)
	}
	return s
}

// reconstructWords joins fragments split by spaces: letter runs, digit runs,
// brands cut from their number, stem fragments before digits, then the greedy
// vocabulary merge
func (c *Cleaner) reconstructWords(s string) string {
	toks := strings.Fields(s)
	toks = joinLetterRuns(toks)
	toks = joinDigitRuns(toks)
	toks = c.joinBrandTails(toks)
	toks = c.joinStemDigits(toks)
	toks = c.mergeFragments(toks)
	return strings.Join(toks, " ")
}

// joinSpacedRuns repeats the letter and digit run joins after stopword removal
func joinSpacedRuns(s string) string {
	toks := strings.Fields(s)
	return strings.Join(joinDigitRuns(joinLetterRuns(toks)), " ")
}

// joinLetterRuns joins 3+ consecutive single letter tokens: s l o t -> slot
func joinLetterRuns(toks []string) []string {
	out := make([]string, 0, len(toks))
	for i := 0; i < len(toks); {
		j := i
		for j < len(toks) && len(toks[j]) == 1 && isLetter(toks[j][0]) {
			j++
		}
		if j-i >= minLetterRun {
			out = append(out, strings.Join(toks[i:j], ""))
			i = j
			continue
		}
		if j == i {
			j = i + 1
		}
		out = append(out, toks[i:j]...)
		i = j
	}
	return out
}

// joinDigitRuns joins consecutive digit only tokens: 8 8 -> 88
func joinDigitRuns(toks []string) []string {
	out := make([]string, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		if isDigits(toks[i]) && len(out) > 0 && isDigits(out[len(out)-1]) {
			out[len(out)-1] += toks[i]
			continue
		}
		out = append(out, toks[i])
	}
	return out
}

// joinStemDigits glues two or three short letter fragments and a number, either
// standing apart (to gel 62 -> togel62) or carried by the last fragment
// (se ru69 -> seru69)
func (c *Cleaner) joinStemDigits(toks []string) []string {
	out := make([]string, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		n, joined := c.stemDigitsAt(toks, i)
		if n == 0 {
			n, joined = c.gluedDigitsAt(toks, i)
		}
		if n > 0 {
			out = append(out, joined)
			i += n - 1
			continue
		}
		out = append(out, toks[i])
	}
	return out
}

func (c *Cleaner) stemDigitsAt(toks []string, i int) (int, string) {
	for _, frag := range []struct{ n, max int }{{3, maxTrioFragment}, {2, maxPairFragment}} {
		if i+frag.n >= len(toks) || !isDigits(toks[i+frag.n]) {
			continue
		}
		ok := true
		for _, t := range toks[i : i+frag.n] {
			if len(t) > frag.max || !isLetters(t) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		letters := strings.Join(toks[i:i+frag.n], "")
		if c.pack.IsStem(letters) {
			return frag.n + 1, letters + toks[i+frag.n]
		}
	}
	return 0, ""
}

// gluedDigitsAt joins fragments whose last one carries the number. The leading
// fragments must not be stopwords or lexicon words, and a last fragment longer
// than two letters only joins when the result is a known stem
func (c *Cleaner) gluedDigitsAt(toks []string, i int) (int, string) {
	for _, frag := range []struct{ n, max int }{{3, maxTrioFragment}, {2, maxPairFragment}} {
		if i+frag.n > len(toks) {
			continue
		}
		last := toks[i+frag.n-1]
		stem, tail := rulepack.SplitTail(last)
		if len(stem) > frag.max || !isLetters(stem) || !isDigits(tail) {
			continue
		}
		if c.lexicon(last) || c.lexicon(stem) || c.pack.IsStem(stem) {
			continue
		}
		heads := toks[i : i+frag.n-1]
		if !c.looseFragments(heads, frag.max) {
			continue
		}
		letters := strings.Join(heads, "") + stem
		if len(stem) > 2 && !c.pack.IsStem(letters) && !c.pack.InVocabulary(letters) {
			continue
		}
		return frag.n, letters + tail
	}
	return 0, ""
}

func (c *Cleaner) looseFragments(toks []string, limit int) bool {
	for _, t := range toks {
		if len(t) > limit || !isLetters(t) || c.lexicon(t) {
			return false
		}
		if _, stop := c.pack.Stopwords[t]; stop {
			return false
		}
	}
	return true
}

// mergeFragments greedily merges 2..4 short tokens into a vocabulary word,
// trying the longest span first at each position
func (c *Cleaner) mergeFragments(toks []string) []string {
	out := make([]string, 0, len(toks))
	for i := 0; i < len(toks); {
		merged := false
		for span := maxMergeSpan; span >= 2; span-- {
			if i+span > len(toks) {
				continue
			}
			part := toks[i : i+span]
			if !mergeable(part) {
				continue
			}
			if w := strings.Join(part, ""); c.pack.InVocabulary(w) {
				out = append(out, w)
				i += span
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, toks[i])
			i++
		}
	}
	return out
}

func mergeable(part []string) bool {
	short := false
	for _, t := range part {
		if len(t) > maxMergeToken || !isAlnum(t) {
			return false
		}
		if len(t) <= shortFragment {
			short = true
		}
	}
	return short
}

func isLetter(b byte) bool { return b >= 'a' && b <= 'z' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) && !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}

func hasDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			return true
		}
	}
	return false
}

func startsWithDigit(s string) bool { return s != "" && isDigit(s[0]) }
