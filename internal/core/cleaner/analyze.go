package cleaner

import (
	"strings"
	"unicode/utf8"

	"judolguard/internal/core/detector"
	"judolguard/internal/core/langhint"
)

// Analysis describes what cleaning did to one comment
type Analysis struct {
	Original       string  `json:"original"`
	Cleaned        string  `json:"cleaned"`
	OriginalLength int     `json:"original_length"`
	CleanedLength  int     `json:"cleaned_length"`
	ReductionRatio float64 `json:"reduction_ratio"`
	OriginalWords  int     `json:"original_words"`
	CleanedWords   int     `json:"cleaned_words"`

	Keywords              []detector.Hit `json:"keywords"`
	KeywordCount          int            `json:"keyword_count"`
	ContainsJudolKeywords bool           `json:"contains_judol_keywords"`
	Brands                []string       `json:"brands"`
	Severity              int            `json:"severity"`

	Script        string   `json:"script"`
	Scripts       []string `json:"scripts,omitempty"`
	MixedScript   bool     `json:"mixed_script"`
	StyledLetters int      `json:"styled_letters"`
	FailedStages  []string `json:"failed_stages,omitempty"`
}

// Analyze cleans raw and reports lengths, keyword hits, brands and the script mix of the raw text
func (c *Cleaner) Analyze(raw string) Analysis {
	res := c.CleanDetailed(raw)
	hint := langhint.Analyze(raw)

	a := Analysis{
		Original:       raw,
		Cleaned:        res.Text,
		OriginalLength: utf8.RuneCountInString(raw),
		CleanedLength:  utf8.RuneCountInString(res.Text),
		OriginalWords:  len(strings.Fields(raw)),
		CleanedWords:   len(strings.Fields(res.Text)),
		Script:         hint.Script,
		Scripts:        hint.Scripts(),
		MixedScript:    hint.Mixed,
		StyledLetters:  hint.Styled,
		FailedStages:   res.Failed,
		Brands:         c.det.Brands(res.Text),
	}
	if a.OriginalLength > 0 {
		a.ReductionRatio = 1 - float64(a.CleanedLength)/float64(a.OriginalLength)
	}
	a.Keywords = c.det.Scan(res.Text)
	if a.Keywords == nil {
		a.Keywords = []detector.Hit{}
	}
	for _, h := range a.Keywords {
		a.KeywordCount += len(h.Spans)
	}
	a.ContainsJudolKeywords = len(a.Keywords) > 0
	a.Severity = detector.Severity(a.Keywords)
	return a
}
