package rulepack

import (
	"strings"
	"testing"
)

func mustLoad(t *testing.T) *Pack {
	t.Helper()
	p, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	return p
}

func TestLoad(t *testing.T) {
	p := mustLoad(t)
	if p.Version != 1 {
		t.Fatalf("Version = %d, want 1", p.Version)
	}
	for _, c := range []string{"sgi88", "sgi888", "togel62", "sendal4d", "garudahoki", "pulauwin", "pstoto99"} {
		if !p.IsBrand(c) {
			t.Fatalf("brand %q missing", c)
		}
	}
	if got := p.Leet["b9s4n"]; got != "bosan" {
		t.Fatalf("Leet[b9s4n] = %q, want bosan", got)
	}
	if got := p.Leet["g4c0r"]; got != "gacor" {
		t.Fatalf("Leet[g4c0r] = %q, want gacor", got)
	}
	if _, ok := p.Stopwords["yang"]; !ok {
		t.Fatalf("stopword yang missing")
	}
	if _, ok := p.Important["itu"]; !ok {
		t.Fatalf("important word itu missing")
	}
	if len(p.Keywords) == 0 || len(p.Combinations) == 0 || len(p.Fixups) == 0 {
		t.Fatalf("expected keywords, combinations and fixups")
	}
}

func TestBrandsLongestFirst(t *testing.T) {
	p := mustLoad(t)
	for i := 1; i < len(p.Brands); i++ {
		if len(p.Brands[i-1].Canonical) < len(p.Brands[i].Canonical) {
			t.Fatalf("brands not sorted longest first at %d: %q before %q",
				i, p.Brands[i-1].Canonical, p.Brands[i].Canonical)
		}
	}
	for i := 1; i < len(p.Combinations); i++ {
		if len(p.Combinations[i-1].Phrase) < len(p.Combinations[i].Phrase) {
			t.Fatalf("combinations not sorted longest first at %d", i)
		}
	}
}

func TestPermissivePattern(t *testing.T) {
	if got, want := PermissivePattern("sgi88"), `\b[s5][g9][i1]\s*8\s*8\b`; got != want {
		t.Fatalf("PermissivePattern(sgi88) = %q, want %q", got, want)
	}
	if got, want := PermissivePattern("pulauwin"), `\bpu[l1][a4]uw[i1]n\b`; got != want {
		t.Fatalf("PermissivePattern(pulauwin) = %q, want %q", got, want)
	}
	if got, want := SpacedPattern("sg188"), `\bs\s*g\s*1\s*8\s*8\b`; got != want {
		t.Fatalf("SpacedPattern(sg188) = %q, want %q", got, want)
	}
}

func TestRecognizers(t *testing.T) {
	p := mustLoad(t)
	cases := []struct {
		brand string
		in    string
		match bool
	}{
		{"sgi88", "depo di 5g1 88", true},
		{"sgi88", "sgi888", false},
		{"sg188", "sgi88", false},
		{"togel62", "t0g3l62 gacor", true},
		{"sendal4d", "s3ndal 4 d", true},
		{"pstoto", "pstoto99", false},
		{"lazadatoto", "lazada t0to", true},
	}
	for _, tc := range cases {
		br := p.BrandSet[tc.brand]
		if br == nil {
			t.Fatalf("brand %q missing", tc.brand)
		}
		got := false
		for _, re := range br.Recognizers {
			if re.MatchString(tc.in) {
				got = true
			}
		}
		if got != tc.match {
			t.Fatalf("%s recognizers on %q = %v, want %v", tc.brand, tc.in, got, tc.match)
		}
	}
}

func TestSpacedAndExact(t *testing.T) {
	p := mustLoad(t)
	if !p.BrandSet["pulauwin"].Spaced.MatchString("p u l a u w i n") {
		t.Fatalf("spaced pulauwin should match letter-spaced form")
	}
	if !p.BrandSet["sgi88"].Exact.MatchString("main di sgl88 yuk") {
		t.Fatalf("exact sgi88 should match variant sgl88")
	}
	if p.BrandSet["sgi88"].Exact.MatchString("xsgi88") {
		t.Fatalf("exact must respect word boundaries")
	}
}

func TestSplitTail(t *testing.T) {
	cases := map[string][2]string{
		"sendal4d":   {"sendal", "4d"},
		"sg188":      {"sg", "188"},
		"garudahoki": {"garudahoki", ""},
		"":           {"", ""},
	}
	for in, want := range cases {
		s, tail := SplitTail(in)
		if s != want[0] || tail != want[1] {
			t.Fatalf("SplitTail(%q) = (%q,%q), want (%q,%q)", in, s, tail, want[0], want[1])
		}
	}
}

func TestStemsAndRelations(t *testing.T) {
	p := mustLoad(t)
	for _, s := range []string{"sgi", "hoki", "togel", "slot"} {
		if !p.IsStem(s) {
			t.Fatalf("IsStem(%q) = false", s)
		}
	}
	if !p.BrandRelated("disgi88") || !p.BrandRelated("per") {
		t.Fatalf("BrandRelated should match containing and contained tokens")
	}
	if p.BrandRelated("yang") {
		t.Fatalf("BrandRelated(yang) = true")
	}
	if !p.IsDomain("slot") || !p.InVocabulary("gacor") {
		t.Fatalf("domain/vocabulary lookups failed")
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte(`{`)); err == nil || !strings.Contains(err.Error(), "rulepack: parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
	if _, err := Parse([]byte(`{"version":2}`)); err == nil || !strings.Contains(err.Error(), "version 2") {
		t.Fatalf("expected version error, got %v", err)
	}
	bad := `{"version":1,"brands":[{"canonical":"x1","patterns":["("]}]}`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatalf("expected compile error for bad brand pattern")
	}
}

func TestParseMergesDuplicateBrands(t *testing.T) {
	raw := `{"version":1,"brands":[
		{"canonical":"abc12","variants":["abd12"]},
		{"canonical":"ABC12","preserve_numbers":true,"variants":["abe12"]}
	]}`
	p, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Brands) != 1 {
		t.Fatalf("len(Brands) = %d, want 1", len(p.Brands))
	}
	b := p.Brands[0]
	if !b.PreserveNumbers || len(b.Variants) != 2 {
		t.Fatalf("merged brand = %+v", b)
	}
}
