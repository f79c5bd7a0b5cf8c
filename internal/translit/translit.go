// Package translit converts characters typed on the Russian ЙЦУКЕН keyboard
// layout into the Latin letters that share the same physical keys on QWERTY.
//
// A user who forgets to switch layouts types "руддщ" while meaning "hello".
// Convert fixes such input one keystroke at a time; Normalize fixes a whole
// word at once (pasted or autofilled text).
//
// All functions are safe for concurrent use.
package translit

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// layoutToLatin maps lowercase Cyrillic runes to the Latin letter on the same key.
var layoutToLatin = map[rune]rune{
	'й': 'q', 'ц': 'w', 'у': 'e', 'к': 'r', 'е': 't',
	'н': 'y', 'г': 'u', 'ш': 'i', 'щ': 'o', 'з': 'p',
	'ф': 'a', 'ы': 's', 'в': 'd', 'а': 'f', 'п': 'g',
	'р': 'h', 'о': 'j', 'л': 'k', 'д': 'l', 'я': 'z',
	'ч': 'x', 'с': 'c', 'м': 'v', 'и': 'b', 'т': 'n',
	'ь': 'm',
}

// Map lower-cases r and returns the Latin letter on the same key.
// Runes outside the table are returned lower-cased.
func Map(r rune) rune {
	r = unicode.ToLower(r)
	if lat, ok := layoutToLatin[r]; ok {
		return lat
	}
	return r
}

// Convert returns updated with only its newly appended trailing rune mapped.
//
// current is the word before a keystroke, updated the word after it. When
// updated extends current, the last rune of updated is passed through Map and
// the rest is kept as is. Deletions and edits that do not extend current are
// returned unmodified.
func Convert(current, updated string) string {
	if len(updated) <= len(current) || !strings.HasPrefix(updated, current) {
		return updated
	}

	last, size := utf8.DecodeLastRuneInString(updated)
	if last == utf8.RuneError && size <= 1 {
		return updated
	}

	var b strings.Builder
	b.Grow(len(updated))
	b.WriteString(updated[:len(updated)-size])
	b.WriteRune(Map(last))
	return b.String()
}

// Normalize lower-cases word and maps every rune independently.
//
// The result has the same number of runes as word, in the same order, and
// Normalize(Normalize(w)) == Normalize(w).
func Normalize(word string) string {
	if word == "" {
		return ""
	}
	return strings.Map(Map, word)
}
