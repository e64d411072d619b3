package cleaner

import (
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"judolguard/internal/core/rulepack"
	"judolguard/internal/core/stemmer"
)

func mustPack(t *testing.T) *rulepack.Pack {
	t.Helper()
	p, err := rulepack.Load()
	if err != nil {
		t.Fatalf("load pack: %v", err)
	}
	return p
}

func newCleaner(t *testing.T, st stemmer.Stemmer, opts Options) *Cleaner {
	t.Helper()
	nop := zerolog.Nop()
	c, err := New(mustPack(t), st, opts, &nop)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestClean_Scenarios(t *testing.T) {
	c := newCleaner(t, stemmer.Noop{}, DefaultOptions())

	cases := []struct{ in, want string }{
		{"DEPO 50K WD 500K DI sgi 88", "depo 50k wd 500k sgi88"},
		{"ga ruda ho ki gacor bosan", "garudahoki gacor bosan"},
		{"s g i 8 8", "sgi88"},
		{"P U L A U W I N", "pulauwin"},
		{"GA RUDa HO KI", "garudahoki"},
		{"G A C O R", "gacor"},
		{"sendal4d", "sendal4d"},
		{"b9s4n", "bosan"},
		{"g4c0r", "gacor"},
		{"disgi88gacor", "sgi88 gacor"},
		{"main di sg188 yang gacor", "main sg188 yang gacor"},
		{"to gel 62 wd", "togel62 wd"},
		{"ps toto 99", "pstoto99"},
		{"pulau win", "pulauwin"},
		{"t0g3l62 jp", "togel62 jp"},
		{"s3ndal 4 d gacor parah", "sendal4d gacor parah"},
		{"b9s4n kalah terus, coba togel62 aja", "bosan kalah terus coba togel62"},
		{"Jangan main slot gan, rungk4d", "jangan main slot gan rungkad"},
		{"http://sgi88.com daftar 081234567890", "daftar"},
		{"mantap bang gacorrrr bgt", "mantap bang gacorr bgt"},
		{"pstoto 99 j01n sekarang", "pstoto99 join sekarang"},
		{"yang yang yang", "yang"},
		{"ini itu dan di ke", "ini itu"},
		{"ho ke ki toto naga", "hoki toto naga"},
		{"sgi88 sgi88 SGI 88", "sgi88"},
		{"selamat pagi semua", "selamat pagi semua"},
		{"d i s g i 8 8", "sgi88"},
		{"k e s g i 8 8 gacor", "sgi88 gacor"},
		{"se ru69 gacor", "seru69 gacor"},
		{"ju di777", "judi 777"},
		{"Halo kak, videonya bagus banget!", "halo kak videonya bagus banget"},
	}
	for _, tc := range cases {
		if got := c.Clean(tc.in); got != tc.want {
			t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClean_EmptyResults(t *testing.T) {
	c := newCleaner(t, stemmer.Noop{}, DefaultOptions())
	for _, in := range []string{"", "   ", "\t\n", "|!\u00a4*~", "di ke dan"} {
		if got := c.Clean(in); got != "" {
			t.Fatalf("Clean(%q) = %q, want empty", in, got)
		}
	}
}

func TestClean_Unicode(t *testing.T) {
	c := newCleaner(t, stemmer.Noop{}, DefaultOptions())

	cases := []struct{ name, in, want string }{
		{"regional indicators", "\U0001F1F8\U0001F1EC\U0001F1EE 88", "sgi88"},
		{"math bold", "\U0001D42C\U0001D420\U0001D422 88 gacor", "sgi88 gacor"},
		{"fullwidth", "\uFF33\uFF27\uFF29\uFF18\uFF18", "sgi88"},
		{"accents", "g\u00e1c\u00f3r", "gacor"},
		{"zero width", "ga\u200bcor", "gacor"},
	}
	for _, tc := range cases {
		if got := c.Clean(tc.in); got != tc.want {
			t.Fatalf("%s: Clean(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestClean_DomainNumberStrategies(t *testing.T) {
	cases := []struct {
		strategy DomainNumberStrategy
		want     string
	}{
		{DomainPreserve, "slot 88 gacor"},
		{DomainRemove, "slot gacor"},
		{DomainSeparate, "slot domain_number gacor"},
	}
	for _, tc := range cases {
		c := newCleaner(t, stemmer.Noop{}, Options{DomainNumber: tc.strategy})
		if got := c.Clean("slot88 gacor"); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.strategy, got, tc.want)
		}
		// brands keep their digits whatever the strategy
		if got := c.Clean("ps toto 99"); got != "pstoto99" {
			t.Fatalf("%s: brand lost its digits: %q", tc.strategy, got)
		}
	}
}

func TestClean_NumberStrategies(t *testing.T) {
	agg := newCleaner(t, stemmer.Noop{}, Options{Number: NumberAggressive, Aggressive: true})
	cases := []struct{ in, want string }{
		{"DEPO 50K WD 500K DI sgi 88", "depo sok wd sook sgi88"},
		{"kemarin wd 2jt garuda hoki", "kemarin wd zjt garudahoki"},
		{"depo 5o wd 5oo sgi88", "depo so wd soo sgi88"},
		{"ayo depo di 5g1 88 sekarang", "ayo depo sg188 sekarang"},
	}
	for _, tc := range cases {
		if got := agg.Clean(tc.in); got != tc.want {
			t.Fatalf("aggressive Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	for _, ns := range []NumberStrategy{NumberSmart, NumberPreserve} {
		c := newCleaner(t, stemmer.Noop{}, Options{Number: ns})
		if got := c.Clean("depo 5o wd 5oo sgi88"); got != "depo 5o wd 5oo sgi88" {
			t.Fatalf("%s: got %q", ns, got)
		}
	}
}

func TestClean_GluedBrands(t *testing.T) {
	cases := []struct{ in, want string }{
		{"gacorsgi88 wd", "gacor sgi88 wd"},
		{"membuatsgi88", "membuat sgi88"},
		{"sgi88sgi88", "sgi88"},
		{"main slottogel62", "main slot togel62"},
		{"sgi88togel62", "sgi88 togel62"},
		{"sgi88gacor", "sgi88 gacor"},
		{"togel62sgi88 wd", "togel62 sgi88 wd"},
		// a single leading letter is not a word
		{"xsgi88 wd", "xsgi88 wd"},
	}
	modes := []Options{
		{Number: NumberSmart},
		{Number: NumberAggressive, Aggressive: true},
	}
	for _, o := range modes {
		c := newCleaner(t, stemmer.Noop{}, o)
		for _, tc := range cases {
			if got := c.Clean(tc.in); got != tc.want {
				t.Fatalf("%s: Clean(%q) = %q, want %q", o.Number, tc.in, got, tc.want)
			}
		}
	}
}

func TestClean_LongAdversarialRuns(t *testing.T) {
	if testing.Short() {
		t.Skip("long inputs")
	}
	inputs := []struct{ name, in string }{
		{"one letter", strings.Repeat("a", 200000)},
		{"spaced letters", strings.Repeat("s g i ", 20000)},
		{"regional indicators", strings.Repeat("\U0001F1F8\U0001F1EC\U0001F1EE", 5000)},
		{"spaced digits", strings.Repeat("8 ", 20000)},
		{"glued brands", strings.Repeat("sgi88", 20000)},
	}
	modes := []Options{DefaultOptions(), {Number: NumberAggressive, Aggressive: true}}
	for _, o := range modes {
		c := newCleaner(t, stemmer.Noop{}, o)
		for _, tc := range inputs {
			done := make(chan string, 1)
			go func() { done <- c.Clean(tc.in) }()
			select {
			case once := <-done:
				if twice := c.Clean(once); twice != once {
					t.Fatalf("%s: Clean not idempotent (%d then %d bytes)", tc.name, len(once), len(twice))
				}
			case <-time.After(30 * time.Second):
				t.Fatalf("%s: Clean did not finish", tc.name)
			}
		}
	}
}

func TestClean_Idempotent(t *testing.T) {
	samples := []string{
		"DEPO 50K WD 500K DI sgi 88",
		"ga ruda ho ki gacor bosan",
		"ho di ki g b9s4n ruda d di",
		"5g1 dan 88 hoki4d",
		"ps 8 8 togel itu 5g1 ke 88",
		"yang ki bosan sg188 dan 8 win ho",
		"slot88 gacor",
		"disgi88gacor",
		"b9s4n kalah terus, coba togel62 aja",
		"mantap bang gacorrrr bgt",
		"\U0001F1F8\U0001F1EC\U0001F1EE 88 maxwin",
		"gacorsgi88 wd",
		"main slottogel62",
		"sgi88togel62 membuatsgi88",
		"d i s g i 8 8",
		"ju di777 se ru69",
	}
	modes := []Options{
		DefaultOptions(),
		{DomainNumber: DomainRemove},
		{DomainNumber: DomainSeparate, Number: NumberAggressive, Aggressive: true},
		{Number: NumberPreserve},
	}
	for _, o := range modes {
		for _, st := range []stemmer.Stemmer{stemmer.Noop{}, nil} {
			if st == nil {
				st = stemmer.NewSastrawi(Protect(mustPack(t)))
			}
			c := newCleaner(t, st, o)
			for _, s := range samples {
				once := c.Clean(s)
				if twice := c.Clean(once); twice != once {
					t.Fatalf("%+v: Clean not idempotent for %q: %q then %q", o, s, once, twice)
				}
			}
		}
	}
}

func TestClean_Stemming(t *testing.T) {
	p := mustPack(t)
	c := newCleaner(t, stemmer.NewSastrawi(Protect(p)), DefaultOptions())

	if got := c.Clean("bermain slot gacor kemenangan"); got != "main slot gacor menang" {
		t.Fatalf("got %q", got)
	}
	// brands and digit tokens never reach the stemmer
	if got := c.Clean("sendal4d pstoto99 bosan"); got != "sendal4d pstoto99 bosan" {
		t.Fatalf("got %q", got)
	}
}

func TestCleaner_StageFailureIsIsolated(t *testing.T) {
	c := newCleaner(t, stemmer.Noop{}, DefaultOptions())

	stages := []Stage{
		{"upper", strings.ToUpper},
		{"boom", func(string) string { panic("boom") }},
		{"trim", strings.TrimSpace},
	}
	out, failed := c.run(stages, " abc ", nil)
	if out != "ABC" {
		t.Fatalf("text did not pass through the failed stage: %q", out)
	}
	if !reflect.DeepEqual(failed, []string{"boom"}) {
		t.Fatalf("failed = %v", failed)
	}
	if c.Failures() != 1 {
		t.Fatalf("Failures() = %d", c.Failures())
	}
}

func TestCleaner_RunStopsOnEmpty(t *testing.T) {
	c := newCleaner(t, stemmer.Noop{}, DefaultOptions())

	called := false
	stages := []Stage{
		{"wipe", func(string) string { return "  " }},
		{"after", func(s string) string { called = true; return s }},
	}
	out, _ := c.run(stages, "abc", nil)
	if out != "" || called {
		t.Fatalf("run continued past an empty text: %q called=%v", out, called)
	}
}

func TestCleaner_Stages(t *testing.T) {
	c := newCleaner(t, stemmer.Noop{}, DefaultOptions())
	names := c.Stages()
	if len(names) != 23 {
		t.Fatalf("default pipeline has %d stages: %v", len(names), names)
	}
	if names[0] != "encoding" || names[len(names)-1] != "final_dedupe" {
		t.Fatalf("unexpected ends: %v", names)
	}
	idx := map[string]int{}
	for i, n := range names {
		idx[n] = i
	}
	order := []string{"unicode", "brand_recognition", "segmentation", "reconstruction", "brand_preservation", "numbers", "stopwords", "stemming", "final_brand_preservation"}
	for i := 1; i < len(order); i++ {
		if idx[order[i-1]] >= idx[order[i]] {
			t.Fatalf("%s must run before %s: %v", order[i-1], order[i], names)
		}
	}
	if _, ok := idx["aggressive_stopwords"]; ok {
		t.Fatalf("aggressive stages in default pipeline")
	}

	agg := newCleaner(t, stemmer.Noop{}, Options{Aggressive: true})
	if n := len(agg.Stages()); n != 26 {
		t.Fatalf("aggressive pipeline has %d stages", n)
	}
}

func TestCleaner_Trace(t *testing.T) {
	c := newCleaner(t, stemmer.Noop{}, DefaultOptions())

	trace := c.Trace("s g i 8 8 gacor")
	if len(trace) != len(c.Stages()) {
		t.Fatalf("trace has %d entries, want %d", len(trace), len(c.Stages()))
	}
	for i, r := range trace {
		if r.Stage != c.Stages()[i] || r.Failed {
			t.Fatalf("trace[%d] = %+v", i, r)
		}
	}
	if last := trace[len(trace)-1].Output; last != "sgi88 gacor" {
		t.Fatalf("last trace output %q", last)
	}
	if c.Trace("   ") != nil {
		t.Fatalf("trace of blank text should be nil")
	}
}

func TestCleaner_ConcurrentUse(t *testing.T) {
	c := newCleaner(t, stemmer.Noop{}, DefaultOptions())

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := c.Clean("ga ruda ho ki gacor bosan"); got != "garudahoki gacor bosan" {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("concurrent Clean returned %q", got)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(nil, nil, DefaultOptions(), nil); err == nil {
		t.Fatalf("expected error for nil pack")
	}
	if _, err := New(mustPack(t), nil, Options{Number: "wild"}, nil); err == nil {
		t.Fatalf("expected error for unknown number strategy")
	}
	c, err := New(mustPack(t), nil, Options{}, nil)
	if err != nil {
		t.Fatalf("New with zero options: %v", err)
	}
	if c.Options() != DefaultOptions() {
		t.Fatalf("zero options not defaulted: %+v", c.Options())
	}
	if c.Pack() == nil || c.Detector() == nil {
		t.Fatalf("accessors returned nil")
	}
}

func TestCleaner_With(t *testing.T) {
	base := newCleaner(t, stemmer.Noop{}, DefaultOptions())
	c, err := base.With(Options{DomainNumber: DomainRemove})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if c.Pack() != base.Pack() {
		t.Fatalf("pack not shared")
	}
	if got := c.Clean("slot88 gacor"); got != "slot gacor" {
		t.Fatalf("got %q", got)
	}
	if got := base.Clean("slot88 gacor"); got != "slot 88 gacor" {
		t.Fatalf("base changed: %q", got)
	}
	if _, err := base.With(Options{Number: "wild"}); err == nil {
		t.Fatalf("expected error for unknown number strategy")
	}
}

func TestAnalyze(t *testing.T) {
	c := newCleaner(t, stemmer.Noop{}, DefaultOptions())

	a := c.Analyze("DEPO 50K WD 500K DI sgi 88")
	if a.Cleaned != "depo 50k wd 500k sgi88" {
		t.Fatalf("Cleaned = %q", a.Cleaned)
	}
	if a.OriginalLength != 26 || a.CleanedLength != 22 {
		t.Fatalf("lengths %d/%d", a.OriginalLength, a.CleanedLength)
	}
	if a.OriginalWords != 7 || a.CleanedWords != 5 {
		t.Fatalf("words %d/%d", a.OriginalWords, a.CleanedWords)
	}
	if want := 1 - 22.0/26.0; math.Abs(a.ReductionRatio-want) > 1e-9 {
		t.Fatalf("ReductionRatio = %v, want %v", a.ReductionRatio, want)
	}
	if !a.ContainsJudolKeywords || a.KeywordCount != 1 || a.Severity != 2 {
		t.Fatalf("keywords %+v count=%d severity=%d", a.Keywords, a.KeywordCount, a.Severity)
	}
	if !reflect.DeepEqual(a.Brands, []string{"sgi88"}) {
		t.Fatalf("Brands = %v", a.Brands)
	}
	if a.Script != "Latin" || a.MixedScript || !reflect.DeepEqual(a.Scripts, []string{"Latin"}) {
		t.Fatalf("script %q scripts=%v mixed=%v", a.Script, a.Scripts, a.MixedScript)
	}

	clean := c.Analyze("selamat pagi semua")
	if clean.ContainsJudolKeywords || clean.Keywords == nil || len(clean.Keywords) != 0 {
		t.Fatalf("clean comment flagged: %+v", clean.Keywords)
	}
	if clean.ReductionRatio != 0 {
		t.Fatalf("ReductionRatio = %v", clean.ReductionRatio)
	}

	empty := c.Analyze("")
	if empty.Cleaned != "" || empty.ReductionRatio != 0 || empty.Keywords == nil {
		t.Fatalf("empty analysis %+v", empty)
	}
}
