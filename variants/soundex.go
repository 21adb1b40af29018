package variants

import (
	"strings"
	"unicode"
)

// Soundex returns the 4-character phonetic code for a name: the first
// letter followed by three digits. Non-letters are ignored and an input
// without letters yields "".
//
// Letters after the first map through the consonant classes below; vowels,
// H, W and Y map to nothing. Adjacent identical mappings collapse, and the
// result is right-padded with zeros or truncated to four characters.
func Soundex(name string) string {
	var letters []byte
	for _, r := range strings.ToUpper(StripAccents(name)) {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			letters = append(letters, byte(r))
		}
	}
	if len(letters) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteByte(letters[0])
	prev := byte(0xff)
	for i, c := range letters[1:] {
		code := soundexCode(c)
		if i > 0 && code == prev {
			continue
		}
		prev = code
		if code != 0 {
			result.WriteByte(code)
		}
	}

	out := result.String() + "000"
	return out[:4]
}

// soundexCode returns the digit for a consonant class, or 0 for letters
// that carry no code.
func soundexCode(c byte) byte {
	switch c {
	case 'B', 'F', 'P', 'V':
		return '1'
	case 'C', 'G', 'J', 'K', 'Q', 'S', 'X', 'Z':
		return '2'
	case 'D', 'T':
		return '3'
	case 'L':
		return '4'
	case 'M', 'N':
		return '5'
	case 'R':
		return '6'
	default:
		return 0
	}
}

// SoundexMatch reports whether two names share a non-empty Soundex code.
func SoundexMatch(a, b string) bool {
	ca := Soundex(a)
	return ca != "" && ca == Soundex(b)
}
