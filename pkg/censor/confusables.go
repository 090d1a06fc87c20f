package censor

// confusables folds characters that are commonly used in place of a Latin
// letter onto that letter. It is applied after case folding and mark removal,
// so only lower case sources are listed. The table is read-only.
var confusables = map[rune]rune{
	// Leetspeak digits and symbols.
	'0': 'o',
	'1': 'i',
	'3': 'e',
	'4': 'a',
	'5': 's',
	'7': 't',
	'8': 'b',
	'@': 'a',
	'$': 's',
	'€': 'e',
	'£': 'l',
	'¢': 'c',
	'¥': 'y',
	'ø': 'o',
	'ð': 'd',
	'þ': 'p',
	'ł': 'l',
	'đ': 'd',
	'ħ': 'h',
	'ı': 'i',
	'ſ': 's',
	'ƒ': 'f',
	'µ': 'u',
	'μ': 'u',
	'×': 'x',

	// Cyrillic.
	'а': 'a',
	'б': 'b',
	'в': 'b',
	'г': 'r',
	'д': 'd',
	'е': 'e',
	'ё': 'e',
	'з': 'e',
	'и': 'u',
	'й': 'u',
	'к': 'k',
	'л': 'n',
	'м': 'm',
	'н': 'h',
	'о': 'o',
	'п': 'n',
	'р': 'p',
	'с': 'c',
	'т': 't',
	'у': 'y',
	'ф': 'f',
	'х': 'x',
	'ц': 'u',
	'ч': 'y',
	'ш': 'w',
	'щ': 'w',
	'ъ': 'b',
	'ь': 'b',
	'ы': 'b',
	'э': 'e',
	'ю': 'u',
	'я': 'r',
	'і': 'i',
	'ї': 'i',
	'ј': 'j',
	'ѕ': 's',
	'ԁ': 'd',
	'ԛ': 'q',
	'ԝ': 'w',
	'ү': 'y',
	'һ': 'h',

	// Greek.
	'α': 'a',
	'β': 'b',
	'γ': 'y',
	'δ': 'd',
	'ε': 'e',
	'η': 'n',
	'ι': 'i',
	'κ': 'k',
	'ν': 'v',
	'ο': 'o',
	'ρ': 'p',
	'σ': 'o',
	'ς': 's',
	'τ': 't',
	'υ': 'u',
	'χ': 'x',
	'ω': 'w',

	// Coptic letters that survive case folding.
	'ⲟ': 'o',
	'ⲭ': 'x',
	'ⲩ': 'y',
	'ⲉ': 'e',
	'ⲣ': 'p',
	'ⲕ': 'k',

	// Latin look-alikes outside ASCII.
	'ɑ': 'a',
	'ɡ': 'g',
	'ɩ': 'i',
	'ɪ': 'i',
	'ʀ': 'r',
	'ʏ': 'y',
	'ᴄ': 'c',
	'ᴅ': 'd',
	'ᴇ': 'e',
	'ᴋ': 'k',
	'ᴍ': 'm',
	'ᴏ': 'o',
	'ᴘ': 'p',
	'ᴛ': 't',
	'ᴜ': 'u',
	'ᴠ': 'v',
	'ᴡ': 'w',
	'ᴢ': 'z',
}

// confusable returns the canonical letter for r, or r itself.
func confusable(r rune) (rune, bool) {
	if c, ok := confusables[r]; ok {
		return c, true
	}
	return r, false
}
