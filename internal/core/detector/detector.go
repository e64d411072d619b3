// Package detector finds judol keywords and canonical brands in cleaned text
package detector

import (
	"sort"
	"strings"
	"unicode/utf8"

	"judolguard/internal/core/rulepack"

	"github.com/cloudflare/ahocorasick"
)

// Hit spans are [start,end) over the cleaned input. Repeated matches of one term
// are merged into a single Hit with several spans
type Hit struct {
	Term            string   `json:"term"`
	Category        string   `json:"category"`
	Severity        int      `json:"severity"`
	Spans           [][2]int `json:"spans"`
	DetectorVersion int      `json:"detector_version"`

	Pre  string `json:"pre,omitempty"`  // up to Options.ContextWindow bytes preceding the first span
	Post string `json:"post,omitempty"` // up to Options.ContextWindow bytes following the first span
}

// Options controls detector behavior
type Options struct {
	// MaxTotalHits is the hard cap on distinct terms emitted (0 = no cap)
	MaxTotalHits int
	// AllowOverlapping allows keyword hits to overlap (default false)
	AllowOverlapping bool
	// Context window size (bytes) for Pre/Post; 0 disables context capture
	ContextWindow int
}

// Detector runs keyword detection over cleaned text. The automaton only says which
// keywords occur, spans are then located and filtered for word boundaries
type Detector struct {
	p       *rulepack.Pack
	version int
	opts    Options

	m        *ahocorasick.Matcher
	dict     []int // matcher index -> keyword index
	keywords []rulepack.Keyword
}

// New creates a Detector with default options
func New(p *rulepack.Pack, detectorVersion int) *Detector {
	return NewWithOptions(p, detectorVersion, Options{})
}

// NewWithOptions creates a Detector with custom options
func NewWithOptions(p *rulepack.Pack, detectorVersion int, opts Options) *Detector {
	d := &Detector{p: p, version: detectorVersion, opts: opts, keywords: p.Keywords}
	var terms []string
	for i, kw := range p.Keywords {
		if kw.Term != "" {
			terms = append(terms, kw.Term)
			d.dict = append(d.dict, i)
		}
	}
	if len(terms) > 0 {
		d.m = ahocorasick.NewStringMatcher(terms)
	}
	return d
}

type span struct{ start, end, kw int }

// spans returns every whole-word occurrence of the keywords present in text,
// ordered by start with longer matches first
func (d *Detector) spans(text string) []span {
	if text == "" || d.m == nil {
		return nil
	}
	var out []span
	for _, mi := range d.m.MatchThreadSafe([]byte(text)) {
		kw := d.dict[mi]
		term := d.keywords[kw].Term
		for off := 0; off < len(text); {
			i := strings.Index(text[off:], term)
			if i < 0 {
				break
			}
			start := off + i
			if boundaryOK(text, start, start+len(term)) {
				out = append(out, span{start, start + len(term), kw})
			}
			off = start + 1
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].start != out[j].start {
			return out[i].start < out[j].start
		}
		return out[i].end > out[j].end
	})
	return out
}

// Scan returns one Hit per matched keyword, ordered by first occurrence
func (d *Detector) Scan(text string) []Hit {
	byKw := map[int]int{} // keyword index -> index in hits
	var hits []Hit
	lastEnd := -1
	for _, sp := range d.spans(text) {
		if !d.opts.AllowOverlapping {
			if sp.start < lastEnd {
				continue
			}
			lastEnd = sp.end
		}
		if i, ok := byKw[sp.kw]; ok {
			hits[i].Spans = append(hits[i].Spans, [2]int{sp.start, sp.end})
			continue
		}
		if d.opts.MaxTotalHits > 0 && len(hits) >= d.opts.MaxTotalHits {
			break
		}
		kw := d.keywords[sp.kw]
		h := Hit{
			Term:            kw.Term,
			Category:        kw.Category,
			Severity:        kw.Severity,
			DetectorVersion: d.version,
			Spans:           [][2]int{{sp.start, sp.end}},
		}
		if d.opts.ContextWindow > 0 {
			h.Pre, h.Post = contextAround(text, sp.start, sp.end, d.opts.ContextWindow)
		}
		byKw[sp.kw] = len(hits)
		hits = append(hits, h)
	}
	return hits
}

// Contains reports whether any keyword occurs in text as a whole word
func (d *Detector) Contains(text string) bool { return len(d.spans(text)) > 0 }

// Brands returns the distinct canonical brands appearing as whole tokens, sorted
func (d *Detector) Brands(text string) []string {
	seen := map[string]struct{}{}
	for _, tok := range strings.Fields(text) {
		if d.p.IsBrand(tok) {
			seen[tok] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for b := range seen {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

// Severity sums the severity of every span, a rough spam weight for reports
func Severity(hits []Hit) int {
	total := 0
	for _, h := range hits {
		total += h.Severity * len(h.Spans)
	}
	return total
}

func boundaryOK(s string, start, end int) bool {
	var prev, next rune
	if start > 0 {
		prev, _ = utf8.DecodeLastRuneInString(s[:start])
	}
	if end < len(s) {
		next, _ = utf8.DecodeRuneInString(s[end:])
	}
	return !isWord(prev) && !isWord(next)
}

// contextAround returns [pre, post] around [start,end)
func contextAround(s string, start, end, win int) (string, string) {
	if win <= 0 {
		return "", ""
	}
	ls := max(start-win, 0)
	rs := min(end+win, len(s))
	return s[ls:start], s[end:rs]
}
