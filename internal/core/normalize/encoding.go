package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// byte sequences left behind when UTF-8 was decoded as Windows-1252 or Latin-1
var mojibakeMarkers = []string{"Ã", "Â", "â€", "Ä", "Å"}

// encodings tried in order when undoing mojibake
var mojibakeSources = []*charmap.Charmap{charmap.Windows1252, charmap.ISO8859_1}

var zeroWidth = strings.NewReplacer(
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\u2060", "",
	"\ufeff", "",
	"\u00a0", " ",
	"&nbsp;", " ",
)

// RepairEncoding fixes broken text encoding: invalid UTF-8 is dropped, double encoded
// UTF-8 is decoded back, control characters and zero-width characters are removed
// and non-breaking spaces become plain spaces
func RepairEncoding(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToValidUTF8(s, "")
	s = fixMojibake(s)
	s = strings.Map(dropControl, s)
	return zeroWidth.Replace(s)
}

// dropControl removes C0 controls other than tab and newlines, DEL and the C1 block
func dropControl(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return r
	case r < 0x20, r >= 0x7f && r <= 0x9f:
		return -1
	}
	return r
}

func fixMojibake(s string) string {
	before := countMarkers(s)
	if before == 0 {
		return s
	}
	for _, cm := range mojibakeSources {
		raw, err := cm.NewEncoder().String(s)
		if err != nil || !utf8.ValidString(raw) {
			continue
		}
		if countMarkers(raw) < before {
			return raw
		}
	}
	return s
}

func countMarkers(s string) int {
	n := 0
	for _, m := range mojibakeMarkers {
		n += strings.Count(s, m)
	}
	return n
}
