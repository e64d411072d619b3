// Package cleaner turns raw YouTube comments into canonical text for judol spam detection.
//
// Clean runs a fixed list of stages: encoding repair, decoration removal, unicode and emoji
// folding, brand recognition and segmentation, word reconstruction, brand preservation,
// number handling, generic cleanup, selective stopword removal and stemming. Every known
// gambling brand ends up in one canonical spelling and cleaning a cleaned text is a no-op.
//
// A Cleaner is immutable after New and safe for concurrent use
package cleaner

import (
	"fmt"
	"strings"
	"sync/atomic"

	"judolguard/internal/core/detector"
	"judolguard/internal/core/normalize"
	"judolguard/internal/core/rulepack"
	"judolguard/internal/core/stemmer"
	"judolguard/internal/platform/logger"
)

// Cleaner runs the cleaning pipeline
type Cleaner struct {
	pack *rulepack.Pack
	stem stemmer.Stemmer
	opts Options
	log  *logger.Logger
	norm *normalize.Normalizer
	det  *detector.Detector
	stop StopwordPolicy

	stages   []Stage
	failures atomic.Int64
}

// Result is the outcome of one Clean call
type Result struct {
	Text   string
	Failed []string // stages that panicked and were skipped
}

// New builds a Cleaner. A nil stemmer means no stemming, a nil logger uses the package logger
func New(p *rulepack.Pack, st stemmer.Stemmer, opts Options, log *logger.Logger) (*Cleaner, error) {
	if p == nil {
		return nil, fmt.Errorf("cleaner: nil rule pack")
	}
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if st == nil {
		st = stemmer.Noop{}
	}
	if log == nil {
		log = logger.Named("cleaner")
	}

	c := &Cleaner{
		pack: p,
		stem: st,
		opts: o,
		log:  log,
		norm: normalize.New(),
		det:  detector.New(p, p.Version),
		stop: NewStopwordPolicy(p),
	}
	c.stages = c.buildStages()
	return c, nil
}

// With returns a Cleaner sharing c's pack, stemmer and logger but running opts
func (c *Cleaner) With(opts Options) (*Cleaner, error) {
	return New(c.pack, c.stem, opts, c.log)
}

// Protect reports whether tok must survive stemming untouched: brands, domains,
// vocabulary and the domain number sentinel
func Protect(p *rulepack.Pack) func(string) bool {
	return func(tok string) bool {
		return tok == DomainNumberToken || p.IsBrand(tok) || p.IsDomain(tok) || p.InVocabulary(tok)
	}
}

func (c *Cleaner) buildStages() []Stage {
	stages := []Stage{
		{"encoding", normalize.RepairEncoding},
		{"decorations", normalize.StripDecorations},
		{"unicode", c.norm.Fold},
		{"whitespace", normalize.CollapseSpaces},
		{"brand_recognition", c.recognizeBrands},
		{"segmentation", c.segmentBrands},
		{"spacing", normalize.CollapseSpaces},
		{"combinations", c.applyCombinations},
		{"reconstruction", c.reconstructWords},
		{"brand_preservation", c.preserveBrands},
		{"brand_fixups", c.applyFixups},
		{"urls_phones", removeURLsAndPhones},
		{"numbers", c.handleNumbers},
		{"special_chars", removeSpecialChars},
		{"repeats", collapseRepeats},
		{"lowercase", strings.ToLower},
		{"whitespace_final", normalize.CollapseSpaces},
		{"stopwords", c.stop.Remove},
		{"spaced_fix", joinSpacedRuns},
		{"alphanumeric_fix", c.fixAlphanumeric},
		{"stemming", c.stemText},
	}
	if c.opts.Aggressive {
		stages = append(stages,
			Stage{"aggressive_stopwords", c.stop.Remove},
			Stage{"aggressive_stemming", c.stemText},
			Stage{"aggressive_whitespace", normalize.CollapseSpaces},
		)
	}
	return append(stages,
		Stage{"final_brand_preservation", c.preserveBrands},
		Stage{"final_dedupe", dedupeWords},
	)
}

// Clean returns the canonical form of text, or "" when nothing survives
func (c *Cleaner) Clean(text string) string {
	return c.CleanDetailed(text).Text
}

// CleanDetailed is Clean plus the names of stages that failed
func (c *Cleaner) CleanDetailed(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}
	out, failed := c.run(c.stages, text, nil)
	// stopword removal can bring fragments together that a later pass would join
	for pass := 1; pass < maxPasses && out != ""; pass++ {
		next, f := c.run(c.stages, out, nil)
		failed = appendMissing(failed, f...)
		if next == out {
			break
		}
		out = next
	}
	return Result{Text: out, Failed: failed}
}

// maxPasses bounds how often the pipeline is re-run to reach a fixed point
const maxPasses = 4

func appendMissing(dst []string, names ...string) []string {
	for _, n := range names {
		seen := false
		for _, d := range dst {
			if d == n {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, n)
		}
	}
	return dst
}

// Trace runs the pipeline once and returns every stage output in order
func (c *Cleaner) Trace(text string) []StageResult {
	var trace []StageResult
	if strings.TrimSpace(text) == "" {
		return trace
	}
	c.run(c.stages, text, func(r StageResult) { trace = append(trace, r) })
	return trace
}

// Stages lists the stage names in execution order
func (c *Cleaner) Stages() []string {
	out := make([]string, len(c.stages))
	for i, st := range c.stages {
		out[i] = st.Name
	}
	return out
}

// Failures is the number of stage failures since New
func (c *Cleaner) Failures() int64 { return c.failures.Load() }

// Options returns the options the Cleaner was built with
func (c *Cleaner) Options() Options { return c.opts }

// Pack returns the rule pack in use
func (c *Cleaner) Pack() *rulepack.Pack { return c.pack }

// Detector returns the keyword detector bound to the same pack
func (c *Cleaner) Detector() *detector.Detector { return c.det }

// stemText stems token by token so brands, lexicon words and digit-bearing
// tokens never reach the stemmer. A stem that the stopword policy would drop is
// not taken, otherwise a second pass would remove it
func (c *Cleaner) stemText(s string) string {
	toks := strings.Fields(s)
	protect := Protect(c.pack)
	for i, t := range toks {
		if hasDigit(t) || protect(t) {
			continue
		}
		st := strings.TrimSpace(c.stem.Stem(t))
		if st == "" || strings.ContainsRune(st, ' ') || c.stop.Drops(st) {
			continue
		}
		toks[i] = st
	}
	return strings.Join(toks, " ")
}
