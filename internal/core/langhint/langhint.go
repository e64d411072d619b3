// Package langhint gives a coarse script breakdown of raw comment text.
// Spam comments mix Latin with Cyrillic, Greek and styled letters to dodge filters,
// so the mix itself is a signal
package langhint

import (
	"sort"
	"unicode"
)

// Hint summarizes the scripts seen in a text
type Hint struct {
	Script  string         `json:"script"`          // predominant script, empty without letters
	Lang    string         `json:"lang,omitempty"`  // BCP-47 code when unambiguous
	Mixed   bool           `json:"mixed"`           // more than one script present
	Styled  int            `json:"styled"`          // letters outside every script table (math, enclosed)
	Letters int            `json:"letters"`         // total letters
	Counts  map[string]int `json:"counts,omitempty"` // per script letter counts
}

// minLangLetters is the letter count below which no language is guessed
const minLangLetters = 20

// Analyze returns the script Hint for s
func Analyze(s string) Hint {
	counts := map[string]int{}
	h := Hint{}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		h.Letters++
		if sc := scriptOf(r); sc != nil {
			counts[sc.name]++
		} else {
			h.Styled++
		}
	}
	if len(counts) > 0 {
		h.Counts = counts
	}
	h.Mixed = len(counts) > 1 || (h.Styled > 0 && len(counts) > 0)
	h.Script, h.Lang = pick(counts, h.Letters)
	return h
}

// Scripts returns the scripts present in h, sorted
func (h Hint) Scripts() []string {
	out := make([]string, 0, len(h.Counts))
	for k := range h.Counts {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type script struct {
	name  string
	table *unicode.RangeTable
	lang  string // set only where the script alone identifies the language
}

// scripts in tie-break order; Latin comes last so any other script wins a tie
var scripts = []script{
	{"Hiragana", unicode.Hiragana, "ja"},
	{"Katakana", unicode.Katakana, "ja"},
	{"Hangul", unicode.Hangul, "ko"},
	{"Han", unicode.Han, ""},
	{"Arabic", unicode.Arabic, "ar"},
	{"Hebrew", unicode.Hebrew, "he"},
	{"Thai", unicode.Thai, "th"},
	{"Greek", unicode.Greek, "el"},
	{"Cyrillic", unicode.Cyrillic, ""},
	{"Georgian", unicode.Georgian, ""},
	{"Armenian", unicode.Armenian, ""},
	{"Devanagari", unicode.Devanagari, ""},
	{"Latin", unicode.Latin, ""},
}

func scriptOf(r rune) *script {
	for i := range scripts {
		if unicode.In(r, scripts[i].table) {
			return &scripts[i]
		}
	}
	return nil
}

// pick returns the predominant script and, given enough letters, the language of the
// first decisive script present
func pick(counts map[string]int, letters int) (name, lang string) {
	best := 0
	for _, sc := range scripts {
		n := counts[sc.name]
		if n > best {
			best, name = n, sc.name
		}
		if lang == "" && n > 0 && letters >= minLangLetters {
			lang = sc.lang
		}
	}
	return name, lang
}

// DetectScriptAndLang returns the predominant script of s and a BCP-47 code when the
// script settles the language
func DetectScriptAndLang(s string) (script string, lang string) {
	h := Analyze(s)
	return h.Script, h.Lang
}
