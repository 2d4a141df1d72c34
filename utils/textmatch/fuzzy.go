package textmatch

import "strings"

// Match is the outcome of a fuzzy search. BestScore is the highest window
// similarity seen, or 1 when the needle was found verbatim.
type Match struct {
	Matched   bool
	BestScore float64
}

// FuzzyTextContains reports whether needle approximately occurs in haystack,
// comparing space-normalized, case-folded text.
func FuzzyTextContains(haystack, needle string, threshold float64) bool {
	return LocateText(haystack, needle, threshold).Matched
}

// FuzzyAlnumContains reports whether the code needle approximately occurs in
// haystack once both are reduced to uppercase ASCII letters and digits.
func FuzzyAlnumContains(haystack, needle string, threshold float64) bool {
	return LocateAlnum(haystack, needle, threshold).Matched
}

// LocateText is FuzzyTextContains with the best score attached.
func LocateText(haystack, needle string, threshold float64) Match {
	return Locate(PrepareText(haystack), PrepareText(needle), threshold)
}

// LocateAlnum is FuzzyAlnumContains with the best score attached.
func LocateAlnum(haystack, needle string, threshold float64) Match {
	return Locate(NormalizeAlnum(haystack), NormalizeAlnum(needle), threshold)
}

// Locate slides a needle-sized window over an already normalized haystack and
// accepts at the first offset whose similarity reaches threshold. A verbatim
// occurrence is accepted without scoring.
func Locate(haystack, needle string, threshold float64) Match {
	if haystack == "" || needle == "" {
		return Match{}
	}

	if strings.Contains(haystack, needle) {
		return Match{Matched: true, BestScore: 1}
	}

	hay := []rune(haystack)
	ndl := []rune(needle)

	if len(hay) <= len(ndl) {
		score := Similarity(haystack, needle)
		return Match{Matched: score >= threshold, BestScore: score}
	}

	ndlNorm := []rune(NormalizeSpaces(needle))

	var best float64
	for i := 0; i <= len(hay)-len(ndl); i++ {
		window := []rune(NormalizeSpaces(string(hay[i : i+len(ndl)])))
		score := similarityRunes(window, ndlNorm)
		if score > best {
			best = score
		}
		if score >= threshold {
			return Match{Matched: true, BestScore: best}
		}
	}

	return Match{BestScore: best}
}
