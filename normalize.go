package ovp

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// glottalStops are the characters written for a glottal stop: the ASCII
// apostrophe used by the lexicon, the modifier letter apostrophe and the
// right single quotation mark that keyboards substitute for it.
const glottalStops = "'ʼ’"

// Normalize trims s and converts it to Unicode NFC so that decomposed
// input ("u" + combining diaeresis) matches lexicon keys such as "ü".
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// IsWildcard reports whether s is a bracketed placeholder such as "[dog]",
// standing for a word outside the lexicon.
func IsWildcard(s string) bool {
	return len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']'
}

// Wildcard wraps word in brackets unless it already is a wildcard.
func Wildcard(word string) string {
	if IsWildcard(word) {
		return word
	}
	return "[" + word + "]"
}

// Lenis replaces the initial consonant of stem with its lenis counterpart
// (p→b, t→d, k→g, s→z, m→w̃). Other initials are left untouched.
func (l *Lexicon) Lenis(stem string) string {
	r, size := utf8.DecodeRuneInString(stem)
	if r == utf8.RuneError {
		return stem
	}
	if rep, ok := l.lenis[r]; ok {
		return rep + stem[size:]
	}
	return stem
}

// endsInGlottalStop reports whether one of the last two letters of word
// is a glottal stop.
func endsInGlottalStop(word string) bool {
	runes := []rune(word)
	if len(runes) > 2 {
		runes = runes[len(runes)-2:]
	}
	return strings.ContainsAny(string(runes), glottalStops)
}

// dropLastRune returns s without its final letter.
func dropLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
