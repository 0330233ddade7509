package treectx

import (
	"unicode"
	"unicode/utf8"
)

// IsBinaryContent checks if content is likely binary by sampling the first
// 100 runes and checking if they are printable Unicode characters.
func IsBinaryContent(content []byte) bool {
	const sampleSize = 100
	var nonPrintable int
	var totalRunes int

	for i := 0; i < len(content) && totalRunes < sampleSize; {
		r, size := utf8.DecodeRune(content[i:])
		if r == utf8.RuneError {
			nonPrintable++
		} else if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			nonPrintable++
		}
		i += size
		totalRunes++
	}

	// More than 10% non-printable in the sample reads as binary.
	if totalRunes == 0 {
		return false
	}
	return float64(nonPrintable)/float64(totalRunes) > 0.1
}
