package textmatch

// Similarity scores a and b in [0,1] as 2*M / (len(a)+len(b)), where M is the
// number of runes matched by recursive longest-common-substring decomposition
// and lengths are counted in runes after space normalization.
//
// The decomposition depends on which side ties are broken on, so both
// orientations are computed and the larger one is kept. This makes the score
// symmetric.
func Similarity(a, b string) float64 {
	ra := []rune(NormalizeSpaces(a))
	rb := []rune(NormalizeSpaces(b))
	return similarityRunes(ra, rb)
}

func similarityRunes(ra, rb []rune) float64 {
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	matched := commonRunes(ra, rb)
	if reverse := commonRunes(rb, ra); reverse > matched {
		matched = reverse
	}

	return 2 * float64(matched) / float64(len(ra)+len(rb))
}

// commonRunes sums the longest common substring of a and b with the same
// measure applied to the parts left and right of it.
func commonRunes(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	length, posA, posB := longestCommonSubstring(a, b)
	if length == 0 {
		return 0
	}

	return length +
		commonRunes(a[:posA], b[:posB]) +
		commonRunes(a[posA+length:], b[posB+length:])
}

// longestCommonSubstring returns the length and start offsets of the longest
// run shared by a and b. Ties go to the earliest start in a, then in b.
func longestCommonSubstring(a, b []rune) (length, posA, posB int) {
	// prev[j+1] holds the length of the common run ending at a[i-1], b[j].
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := range a {
		for j := range b {
			if a[i] != b[j] {
				curr[j+1] = 0
				continue
			}
			curr[j+1] = prev[j] + 1

			// Runs are visited by increasing end position, so with equal
			// lengths the earlier start in a (then b) was already recorded.
			if curr[j+1] > length {
				length = curr[j+1]
				posA = i - length + 1
				posB = j - length + 1
			}
		}
		prev, curr = curr, prev
	}

	return length, posA, posB
}
