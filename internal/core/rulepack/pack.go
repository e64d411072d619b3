// Package rulepack loads and compiles the judol lexicon from the embedded rules.json.
// It prepares brand recognizers, leet and combination tables, and the stopword policy
// sets used by the cleaner and the keyword detector
package rulepack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

//go:embed rules.json
var embedded []byte

type rawBrand struct {
	Canonical       string   `json:"canonical"`
	PreserveNumbers bool     `json:"preserve_numbers"`
	Variants        []string `json:"variants,omitempty"`
	Patterns        []string `json:"patterns,omitempty"`
}

type rawFixup struct {
	ID      string `json:"id"`
	Pattern string `json:"pattern"`
	Replace string `json:"replace"`
}

type rawKeyword struct {
	Term     string `json:"term"`
	Category string `json:"category"`
	Severity int    `json:"severity"`
}

type rawPack struct {
	Version      int               `json:"version"`
	Meta         map[string]any    `json:"meta"`
	Affixes      []string          `json:"affixes"`
	Stopwords    []string          `json:"stopwords"`
	Important    []string          `json:"important"`
	Brands       []rawBrand        `json:"brands"`
	Domains      []string          `json:"domains"`
	Vocabulary   []string          `json:"vocabulary"`
	Leet         map[string]string `json:"leet"`
	Combinations map[string]string `json:"combinations"`
	Fixups       []rawFixup        `json:"fixups"`
	Keywords     []rawKeyword      `json:"keywords"`
}

// Pack is the compiled, read-only lexicon shared by every cleaner
type Pack struct {
	Version int
	Meta    map[string]any

	// Brands sorted longest canonical first, ties broken alphabetically
	Brands   []Brand
	BrandSet map[string]*Brand // canonical -> brand

	// Domains sorted longest first, used by the domain-number strategy
	Domains   []string
	DomainSet map[string]struct{}

	// Vocabulary is the judol word list the greedy merge rebuilds into
	Vocabulary map[string]struct{}

	// Stems are letter stems that make a fragment run worth joining
	Stems map[string]struct{}

	Leet         map[string]string
	LeetWords    []string // longest first
	Combinations []Combination
	Fixups       []Fixup
	Affixes      []string

	Stopwords map[string]struct{}
	Important map[string]struct{}

	Keywords []Keyword
}

// Brand is one canonical gambling brand and its recognizers
type Brand struct {
	Canonical       string
	Stem            string // letters before the first digit
	Tail            string // first digit onward, empty for letter-only brands
	PreserveNumbers bool
	Variants        []string

	// Recognizers are permissive patterns, generated plus hand written, de-duplicated
	Recognizers []*regexp.Regexp
	// Exact matches the canonical form and every variant on word boundaries
	Exact *regexp.Regexp
	// Spaced allows optional whitespace between every character of the canonical form
	Spaced *regexp.Regexp
}

// Combination is a known multi-word split of a single judol word
type Combination struct {
	Phrase  string
	Replace string
	Re      *regexp.Regexp
}

// Fixup is a brand specific rewrite applied after preservation
type Fixup struct {
	ID      string
	Replace string
	Re      *regexp.Regexp
}

// Keyword is a detector term
type Keyword struct {
	Term     string
	Category string
	Severity int
}

// substitution classes for permissive recognition
var lookalikes = map[rune]string{
	'a': "[a4]",
	'b': "[b8]",
	'e': "[e3]",
	'g': "[g9]",
	'i': "[i1]",
	'l': "[l1]",
	'o': "[o0]",
	's': "[s5]",
	't': "[t7]",
	'z': "[z2]",
}

// Load returns the compiled pack from the embedded rules.json
func Load() (*Pack, error) {
	return Parse(embedded)
}

// Parse compiles a pack from raw rules JSON
func Parse(b []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(b, &rp); err != nil {
		return nil, fmt.Errorf("rulepack: parse rules.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("rulepack: unsupported rules.json version %d (want 1)", rp.Version)
	}

	p := &Pack{
		Version:    rp.Version,
		Meta:       rp.Meta,
		BrandSet:   make(map[string]*Brand, len(rp.Brands)),
		DomainSet:  toSet(rp.Domains),
		Vocabulary: toSet(rp.Vocabulary),
		Stems:      make(map[string]struct{}, 128),
		Leet:       make(map[string]string, len(rp.Leet)),
		Stopwords:  toSet(rp.Stopwords),
		Important:  toSet(rp.Important),
	}

	// Brands: merge duplicates by canonical, then compile
	merged := make(map[string]*rawBrand, len(rp.Brands))
	var order []string
	for i := range rp.Brands {
		rb := rp.Brands[i]
		c := fold(rb.Canonical)
		if c == "" {
			continue
		}
		if prev, ok := merged[c]; ok {
			prev.PreserveNumbers = prev.PreserveNumbers || rb.PreserveNumbers
			prev.Variants = append(prev.Variants, rb.Variants...)
			prev.Patterns = append(prev.Patterns, rb.Patterns...)
			continue
		}
		rb.Canonical = c
		merged[c] = &rb
		order = append(order, c)
	}
	for _, c := range order {
		br, err := compileBrand(merged[c])
		if err != nil {
			return nil, err
		}
		p.Brands = append(p.Brands, br)
	}
	sort.SliceStable(p.Brands, func(i, j int) bool {
		return longerFirst(p.Brands[i].Canonical, p.Brands[j].Canonical)
	})
	for i := range p.Brands {
		p.BrandSet[p.Brands[i].Canonical] = &p.Brands[i]
	}

	for d := range p.DomainSet {
		p.Domains = append(p.Domains, d)
	}
	sort.Slice(p.Domains, func(i, j int) bool { return longerFirst(p.Domains[i], p.Domains[j]) })

	// Stems: brand letter stems, domain stems, letter-only vocabulary
	for _, br := range p.Brands {
		if len(br.Stem) >= 2 {
			p.Stems[br.Stem] = struct{}{}
		}
	}
	for d := range p.DomainSet {
		if s, _ := SplitTail(d); len(s) >= 2 {
			p.Stems[s] = struct{}{}
		}
	}
	for v := range p.Vocabulary {
		if s, tail := SplitTail(v); tail == "" && len(s) >= 2 {
			p.Stems[s] = struct{}{}
		}
	}

	for k, v := range rp.Leet {
		k, v = fold(k), fold(v)
		if k == "" || v == "" || k == v {
			continue
		}
		p.Leet[k] = v
		p.LeetWords = append(p.LeetWords, k)
	}
	sort.Slice(p.LeetWords, func(i, j int) bool { return longerFirst(p.LeetWords[i], p.LeetWords[j]) })

	for phrase, repl := range rp.Combinations {
		phrase, repl = fold(phrase), fold(repl)
		if phrase == "" || repl == "" || phrase == repl {
			continue
		}
		words := strings.Fields(phrase)
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		expr := `\b` + strings.Join(quoted, `\s+`) + `\b`
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("rulepack: compile combination %q: %w", phrase, err)
		}
		p.Combinations = append(p.Combinations, Combination{Phrase: phrase, Replace: repl, Re: re})
	}
	sort.Slice(p.Combinations, func(i, j int) bool {
		return longerFirst(p.Combinations[i].Phrase, p.Combinations[j].Phrase)
	})

	seenFix := make(map[string]struct{}, len(rp.Fixups))
	for _, f := range rp.Fixups {
		if _, dup := seenFix[f.Pattern]; dup || f.Pattern == "" {
			continue
		}
		seenFix[f.Pattern] = struct{}{}
		re, err := regexp.Compile("(?i)" + f.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rulepack: compile fixup %q: %w", f.ID, err)
		}
		p.Fixups = append(p.Fixups, Fixup{ID: f.ID, Replace: f.Replace, Re: re})
	}

	for _, a := range rp.Affixes {
		if a = fold(a); a != "" {
			p.Affixes = append(p.Affixes, a)
		}
	}
	sort.Slice(p.Affixes, func(i, j int) bool { return longerFirst(p.Affixes[i], p.Affixes[j]) })

	seenKw := make(map[string]struct{}, len(rp.Keywords))
	for _, k := range rp.Keywords {
		term := fold(k.Term)
		if term == "" {
			continue
		}
		if _, dup := seenKw[term]; dup {
			continue
		}
		seenKw[term] = struct{}{}
		p.Keywords = append(p.Keywords, Keyword{Term: term, Category: k.Category, Severity: k.Severity})
	}
	sort.Slice(p.Keywords, func(i, j int) bool { return p.Keywords[i].Term < p.Keywords[j].Term })

	return p, nil
}

// compileBrand builds recognizers for one merged brand entry
func compileBrand(rb *rawBrand) (Brand, error) {
	stem, tail := SplitTail(rb.Canonical)
	br := Brand{
		Canonical:       rb.Canonical,
		Stem:            stem,
		Tail:            tail,
		PreserveNumbers: rb.PreserveNumbers,
	}

	exprs := []string{PermissivePattern(rb.Canonical)}
	exprs = append(exprs, rb.Patterns...)
	seen := make(map[string]struct{}, len(exprs))
	for _, e := range exprs {
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		re, err := regexp.Compile("(?i)" + e)
		if err != nil {
			return Brand{}, fmt.Errorf("rulepack: compile brand %q pattern %q: %w", rb.Canonical, e, err)
		}
		br.Recognizers = append(br.Recognizers, re)
	}

	alts := []string{regexp.QuoteMeta(rb.Canonical)}
	seenV := map[string]struct{}{rb.Canonical: {}}
	for _, v := range rb.Variants {
		v = fold(v)
		if _, dup := seenV[v]; dup || v == "" {
			continue
		}
		seenV[v] = struct{}{}
		br.Variants = append(br.Variants, v)
		alts = append(alts, regexp.QuoteMeta(v))
	}
	sort.Slice(alts[1:], func(i, j int) bool { return len(alts[1+i]) > len(alts[1+j]) })

	var err error
	if br.Exact, err = regexp.Compile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`); err != nil {
		return Brand{}, fmt.Errorf("rulepack: compile brand %q variants: %w", rb.Canonical, err)
	}
	if br.Spaced, err = regexp.Compile("(?i)" + SpacedPattern(rb.Canonical)); err != nil {
		return Brand{}, fmt.Errorf("rulepack: compile brand %q spaced form: %w", rb.Canonical, err)
	}
	return br, nil
}

// PermissivePattern returns a recognizer tolerant of digit/letter lookalikes in the stem
// and of whitespace between the stem and the numeric tail
func PermissivePattern(canonical string) string {
	stem, tail := SplitTail(canonical)
	var b strings.Builder
	b.WriteString(`\b`)
	for _, r := range stem {
		if cls, ok := lookalikes[r]; ok {
			b.WriteString(cls)
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	if tail != "" {
		b.WriteString(`\s*`)
		b.WriteString(joinChars(tail))
	}
	b.WriteString(`\b`)
	return b.String()
}

// SpacedPattern allows optional whitespace between every character of canonical
func SpacedPattern(canonical string) string {
	return `\b` + joinChars(canonical) + `\b`
}

func joinChars(s string) string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	return strings.Join(parts, `\s*`)
}

// SplitTail splits a token at its first digit
func SplitTail(s string) (stem, tail string) {
	for i, r := range s {
		if unicode.IsDigit(r) {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// IsBrand reports whether tok is a canonical brand
func (p *Pack) IsBrand(tok string) bool {
	_, ok := p.BrandSet[tok]
	return ok
}

// BrandRelated reports whether tok contains a preserved brand or is a substring of one
func (p *Pack) BrandRelated(tok string) bool {
	if tok == "" {
		return false
	}
	for i := range p.Brands {
		c := p.Brands[i].Canonical
		if !p.Brands[i].PreserveNumbers {
			continue
		}
		if strings.Contains(tok, c) || strings.Contains(c, tok) {
			return true
		}
	}
	return false
}

// IsStem reports whether s is a known letter stem
func (p *Pack) IsStem(s string) bool {
	_, ok := p.Stems[s]
	return ok
}

// InVocabulary reports whether s is a judol vocabulary word
func (p *Pack) InVocabulary(s string) bool {
	_, ok := p.Vocabulary[s]
	return ok
}

// IsDomain reports whether s is a judol domain name
func (p *Pack) IsDomain(s string) bool {
	_, ok := p.DomainSet[s]
	return ok
}

func longerFirst(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a < b
}

func fold(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func toSet(xs []string) map[string]struct{} {
	out := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		if x = fold(x); x != "" {
			out[x] = struct{}{}
		}
	}
	return out
}
