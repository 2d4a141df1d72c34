// Package textmatch implements the text normalization and approximate matching
// used to corroborate claimed values against OCR output.
//
// All functions are pure and safe for concurrent use.
package textmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// scriptBlocks maps a script to the code blocks whose combining marks and
// tatweel belong to the word they sit in, although their Script property is
// Inherited or Common.
var scriptBlocks = map[*unicode.RangeTable]*unicode.RangeTable{
	unicode.Arabic: arabicBlocks,
}

var arabicBlocks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06ff, Stride: 1},
		{Lo: 0x0750, Hi: 0x077f, Stride: 1},
		{Lo: 0x08a0, Hi: 0x08ff, Stride: 1},
		{Lo: 0xfb50, Hi: 0xfdff, Stride: 1},
		{Lo: 0xfe70, Hi: 0xfeff, Stride: 1},
	},
}

// NormalizeSpaces collapses every run of whitespace (Unicode included) into a
// single ASCII space and trims both ends.
func NormalizeSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// FoldCase lowercases text with full Unicode rules. Scripts without case,
// such as Arabic, pass through unchanged.
func FoldCase(text string) string {
	// A Caser keeps state between calls, so one is built per call.
	return cases.Lower(language.Und).String(text)
}

// FilterScript keeps only the runes of the given script plus whitespace.
// Vowel marks and tatweel of the script's blocks are kept with their word.
// Every other rune becomes a space, then spaces are normalized.
func FilterScript(text string, script *unicode.RangeTable) string {
	var b strings.Builder
	b.Grow(len(text))

	blocks := scriptBlocks[script]
	for _, r := range text {
		if unicode.Is(script, r) || unicode.IsSpace(r) || (blocks != nil && isBlockMark(blocks, r)) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(' ')
	}

	return NormalizeSpaces(b.String())
}

func isBlockMark(blocks *unicode.RangeTable, r rune) bool {
	return unicode.Is(blocks, r) && (unicode.Is(unicode.M, r) || unicode.Is(unicode.Lm, r))
}

// StripArabicMarks removes Arabic vowel marks and tatweel, which OCR reads
// inconsistently and claimed values rarely carry.
func StripArabicMarks(text string) string {
	out, _, err := transform.String(runes.Remove(runes.Predicate(func(r rune) bool {
		return isBlockMark(arabicBlocks, r)
	})), text)
	if err != nil {
		return text
	}
	return out
}

// NormalizeAlnum uppercases text and strips everything that is not an ASCII
// letter or digit. Used for identifiers where separators carry no meaning.
func NormalizeAlnum(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		r = unicode.ToUpper(r)
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Digits returns the ASCII digits of text in order. Arabic-Indic and extended
// Arabic-Indic digits are folded to their ASCII value.
func Digits(text string) string {
	var b strings.Builder

	for _, r := range text {
		if d, ok := foldDigit(r); ok {
			b.WriteRune(d)
		}
	}

	return b.String()
}

// FoldDigits rewrites Arabic-Indic digits as ASCII digits and leaves every
// other rune alone.
func FoldDigits(text string) string {
	return strings.Map(func(r rune) rune {
		if d, ok := foldDigit(r); ok {
			return d
		}
		return r
	}, text)
}

func foldDigit(r rune) (rune, bool) {
	switch {
	case r >= '0' && r <= '9':
		return r, true
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠'), true
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰'), true
	}
	return 0, false
}

// PrepareText is the normalization applied to both sides of a natural
// language comparison.
func PrepareText(text string) string {
	return FoldCase(NormalizeSpaces(StripArabicMarks(text)))
}

// ContainsIgnoreCase reports whether needle occurs in haystack after space
// normalization and case folding. An empty needle never matches.
func ContainsIgnoreCase(haystack, needle string) bool {
	n := PrepareText(needle)
	if n == "" {
		return false
	}
	return strings.Contains(PrepareText(haystack), n)
}
