package normalize

import "strings"

// decorative runes that never carry letters
var decorations = map[rune]struct{}{}

func init() {
	for _, r := range "|!¤*'~`¯,¸∙•·‧●○◆◇◈★☆✦✧✩✪✫✬✭✮✯✰❖❤♥♦♣♠♤♧♢♪♫♬¦§¶※⁂" {
		decorations[r] = struct{}{}
	}
	for _, r := range "【】『』〖〗「」｢｣〔〕〈〉《》«»〝〞＂‟〟〘〙〚〛⟦⟧⟨⟩" {
		decorations[r] = struct{}{}
	}
}

// IsDecoration reports whether r belongs to the decorative set: the table above plus
// box drawing, block elements and geometric shapes. Runes with a token meaning are excluded
func IsDecoration(r rune) bool {
	if _, ok := tokenEmoji[r]; ok {
		return false
	}
	if _, ok := decorations[r]; ok {
		return true
	}
	return r >= 0x2500 && r <= 0x25FF
}

// StripDecorations replaces every run of decorative runes with a single space
func StripDecorations(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		if IsDecoration(r) {
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}
