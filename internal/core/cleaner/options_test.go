package cleaner

import (
	"testing"
)

func TestParseDomainNumberStrategy(t *testing.T) {
	cases := []struct {
		in   string
		want DomainNumberStrategy
	}{
		{"", DomainPreserve},
		{"remove", DomainRemove},
		{" Preserve ", DomainPreserve},
		{"SEPARATE_TOKEN", DomainSeparate},
	}
	for _, tc := range cases {
		got, err := ParseDomainNumberStrategy(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseDomainNumberStrategy(%q) = %q, %v", tc.in, got, err)
		}
	}
	if _, err := ParseDomainNumberStrategy("split"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestParseNumberStrategy(t *testing.T) {
	for _, s := range NumberStrategies() {
		got, err := ParseNumberStrategy(s)
		if err != nil || string(got) != s {
			t.Fatalf("ParseNumberStrategy(%q) = %q, %v", s, got, err)
		}
	}
	if got, _ := ParseNumberStrategy(""); got != NumberSmart {
		t.Fatalf("empty should default to smart, got %q", got)
	}
	if _, err := ParseNumberStrategy("all"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestStopwordPolicy(t *testing.T) {
	sp := NewStopwordPolicy(mustPack(t))

	drops := map[string]bool{
		"di":    true,
		"ke":    true,
		"dan":   true,
		"yg":    true,
		"yang":  false, // longer than three letters
		"ga":    false, // part of a brand
		"ini":   false, // important
		"gacor": false,
		"d1":    false,
	}
	for w, want := range drops {
		if got := sp.Drops(w); got != want {
			t.Fatalf("Drops(%q) = %v, want %v", w, got, want)
		}
	}
	if got := sp.Remove("main di sgi88 ke ga"); got != "main sgi88 ga" {
		t.Fatalf("Remove = %q", got)
	}
	if sp.Size() == 0 {
		t.Fatalf("empty stopword policy")
	}
}

func TestDigitsToLetters(t *testing.T) {
	cases := map[string]string{
		"50k":     "sok",
		"g4c0r":   "gacor",
		"7ungkad": "rungkad",
		"2jt":     "zjt",
	}
	for in, want := range cases {
		if got := digitsToLetters(in); got != want {
			t.Fatalf("digitsToLetters(%q) = %q, want %q", in, got, want)
		}
	}
}
