package langhint

import (
	"reflect"
	"testing"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		script  string
		mixed   bool
		styled  int
		letters int
	}{
		{"plain latin", "depo gacor", "Latin", false, 0, 9},
		{"cyrillic lookalikes", "sg\u0456 \u0441\u043b\u043e\u0442", "Cyrillic", true, 0, 7},
		{"math bold", "\U0001D412\U0001D406\U0001D408 gacor", "Latin", true, 3, 8},
		{"no letters", "12345 !!", "", false, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := Analyze(tc.in)
			if h.Script != tc.script || h.Mixed != tc.mixed || h.Styled != tc.styled || h.Letters != tc.letters {
				t.Fatalf("Analyze(%q) = %+v", tc.in, h)
			}
		})
	}
}

func TestScripts(t *testing.T) {
	h := Analyze("slot \u0441\u043b\u043e\u0442")
	if got, want := h.Scripts(), []string{"Cyrillic", "Latin"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Scripts() = %v, want %v", got, want)
	}
}

func TestDetectScriptAndLang(t *testing.T) {
	script, lang := DetectScriptAndLang("καλημέρα σε όλους τους φίλους μας")
	if script != "Greek" || lang != "el" {
		t.Fatalf("got %q %q", script, lang)
	}
	if _, lang := DetectScriptAndLang("slot"); lang != "" {
		t.Fatalf("short text must not get a lang, got %q", lang)
	}
}
