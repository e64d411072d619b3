package normalize

// charMap holds lookalike letters that NFKD does not decompose to ASCII.
// Applied once per rune, before decomposition
var charMap = map[rune]string{
	// latin extended
	'ä': "a", 'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'å': "a", 'ā': "a", 'ă': "a", 'ą': "a",
	'æ': "ae", 'ç': "c", 'ć': "c", 'č': "c", 'ď': "d", 'đ': "d", 'ð': "d",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e", 'ē': "e", 'ė': "e", 'ę': "e", 'ě': "e",
	'ğ': "g", 'ģ': "g", 'ì': "i", 'í': "i", 'î': "i", 'ï': "i", 'ī': "i", 'į': "i", 'ı': "i",
	'ķ': "k", 'ł': "l", 'ļ': "l", 'ľ': "l", 'ñ': "n", 'ń': "n", 'ň': "n", 'ņ': "n",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ø': "o", 'ō': "o", 'ő': "o", 'œ': "oe",
	'ř': "r", 'ś': "s", 'š': "s", 'ş': "s", 'ß': "ss", 'ť': "t", 'ţ': "t", 'þ': "th",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u", 'ū': "u", 'ů': "u", 'ű': "u", 'ų': "u",
	'ý': "y", 'ÿ': "y", 'ź': "z", 'ż': "z", 'ž': "z",
	'Ø': "o", 'Æ': "ae", 'Œ': "oe", 'Ð': "d", 'Þ': "th", 'Ł': "l", 'Đ': "d",
	'º': "o", 'ª': "a",

	// greek
	'α': "a", 'β': "b", 'γ': "g", 'δ': "d", 'ε': "e", 'ζ': "z", 'η': "h", 'θ': "th",
	'ι': "i", 'κ': "k", 'λ': "l", 'μ': "m", 'ν': "n", 'ξ': "x", 'ο': "o", 'π': "p",
	'ρ': "r", 'σ': "s", 'ς': "s", 'τ': "t", 'υ': "u", 'φ': "ph", 'χ': "ch", 'ψ': "ps", 'ω': "w",
	'ή': "n", 'ά': "a", 'έ': "e", 'ί': "i", 'ό': "o", 'ύ': "u", 'ώ': "w",
	'Α': "a", 'Β': "b", 'Γ': "g", 'Δ': "a", 'Ε': "e", 'Ζ': "z", 'Η': "h", 'Θ': "th",
	'Ι': "i", 'Κ': "k", 'Λ': "l", 'Μ': "m", 'Ν': "n", 'Ξ': "x", 'Ο': "o", 'Π': "p",
	'Ρ': "r", 'Σ': "s", 'Τ': "t", 'Υ': "y", 'Φ': "ph", 'Χ': "x", 'Ψ': "ps", 'Ω': "w",

	// cyrillic
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e", 'ж': "zh",
	'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o",
	'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "h", 'ц': "ts",
	'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
	'А': "a", 'Б': "b", 'В': "v", 'Г': "g", 'Д': "d", 'Е': "e", 'Ё': "e", 'Ж': "zh",
	'З': "z", 'И': "i", 'Й': "y", 'К': "k", 'Л': "l", 'М': "m", 'Н': "n", 'О': "o",
	'П': "p", 'Р': "r", 'С': "s", 'Т': "t", 'У': "u", 'Ф': "f", 'Х': "h", 'Ц': "ts",
	'Ч': "ch", 'Ш': "sh", 'Щ': "sch", 'Ъ': "", 'Ы': "y", 'Ь': "", 'Э': "e", 'Ю': "yu", 'Я': "ya",

	// stylised lookalikes
	'ᗯ': "w", 'ᗩ': "a", 'ᗷ': "b", 'ᑕ': "c", 'ᗪ': "d", 'ᗴ': "e", 'ᕼ': "h", 'ᒍ': "j",
	'ᒪ': "l", 'ᑎ': "n", 'ᑭ': "p", 'ᑫ': "q", 'ᖇ': "r", 'ᔕ': "s", 'ᑌ': "u", 'ᐯ': "v",
	'†': "t", '丅': "t", 'ǟ': "a", 'ʀ': "r", 'ա': "w", 'ռ': "n", 'ȶ': "t", 'օ': "o",
	'ɢ': "g", 'ɪ': "i", 'ʟ': "l", 'ɴ': "n", 'ᴀ': "a", 'ᴄ': "c", 'ᴅ': "d", 'ᴇ': "e",
	'ᴊ': "j", 'ᴋ': "k", 'ᴍ': "m", 'ᴏ': "o", 'ᴘ': "p", 'ᴛ': "t", 'ᴜ': "u", 'ᴠ': "v",
	'ᴡ': "w", 'ᴢ': "z", 'ʏ': "y", 'ʜ': "h", 'ꜰ': "f", 'ꜱ': "s", 'ʙ': "b",
	'💮': "o", '🏵': "o", '🍬': "o", '♡': "o", '💞': "o",

	// symbols that read as separators
	'¢': " ", '@': " ", '®': " ", '©': " ", '™': " ", '?': " ", '♜': " ",
	'´': " ", '¨': " ", '°': " ",
}

// tokenEmoji maps emoji that carry meaning to plain word tokens
var tokenEmoji = map[rune]string{
	'💰': "money", '💸': "money", '🤑': "money", '💵': "money", '💴': "money",
	'💶': "money", '💷': "money", '🪙': "money",
	'💳': "card", '💹': "chart",
	'⬆': "up", '↑': "up", '🔼': "up", '⏫': "up",
	'⬇': "down", '↓': "down", '🔽': "down", '⏬': "down",
	'⬅': "left", '←': "left", '◀': "left",
	'➡': "right", '→': "right", '▶': "right",
	'↔': "both", '⬌': "both",
	'🔝': "top", '🔙': "back", '🔛': "on", '🔜': "soon", '🔚': "end",
	'✅': "yes", '✔': "yes", '✓': "yes", '☑': "yes",
	'❌': "no", '✖': "no", '❎': "no", '✗': "no",
	'⚠': "warning", '💎': "diamond", '🏆': "trophy", '🎯': "target",
}

// tokenSymbols are multi-letter squared emoji
var tokenSymbols = map[rune]string{
	'🆎': "ab", '🆑': "cl", '🆒': "cool", '🆓': "free", '🆔': "id", '🆕': "new",
	'🆖': "ng", '🆗': "ok", '🆘': "sos", '🆙': "up", '🆚': "vs", '🔟': "10",
	'🥇': "1", '🥈': "2", '🥉': "3",
	'🄋': "0", '🄌': "0", '⓿': "0",
}

// letterBlocks are contiguous A..Z emoji and enclosed alphabets
var letterBlocks = []rune{
	0x1F170, // negative squared 🅰
	0x1F150, // negative circled 🅐
	0x1F130, // squared 🄰
	0x24B6,  // circled capital Ⓐ
	0x24D0,  // circled small ⓐ
	0x249C,  // parenthesized ⒜
}

// digitBlocks are contiguous 1..10 enclosed digits
var digitBlocks = []rune{
	0x2780, // dingbat circled sans ➀
	0x278A, // dingbat negative circled sans ➊
	0x2776, // dingbat negative circled ❶
	0x24F5, // double circled ⓵
}

const (
	regionalA = 0x1F1E6
	regionalZ = 0x1F1FF
)

func isRegional(r rune) bool { return r >= regionalA && r <= regionalZ }

// emojiRune resolves a single emoji letter or digit, reporting false when r is not one
func emojiRune(r rune) (string, bool) {
	for _, base := range letterBlocks {
		if r >= base && r < base+26 {
			return string(rune('a' + (r - base))), true
		}
	}
	for _, base := range digitBlocks {
		if r >= base && r < base+10 {
			n := int(r-base) + 1
			if n == 10 {
				return "10", true
			}
			return string(rune('0' + n)), true
		}
	}
	if s, ok := tokenSymbols[r]; ok {
		return s, true
	}
	return "", false
}
