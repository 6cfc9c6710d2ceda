// Package fuzzy implements normalized string similarity scores in [0, 100].
package fuzzy

import (
	"math"

	"github.com/agext/levenshtein"
)

// indel distance: insertions and deletions only, a substitution costs a delete plus an insert.
var indelParams = levenshtein.NewParams().InsCost(1).DelCost(1).SubCost(2)

// Ratio returns 100 * (1 - indel(a, b) / (len(a) + len(b))), measured in runes.
func Ratio(a, b string) float64 {
	return ratioRunes([]rune(a), []rune(b))
}

// PartialRatio returns the best Ratio between the shorter string and any
// same-length window of the longer one. Windows cut off at either end of the
// longer string are also considered. Either string empty yields 0.
func PartialRatio(a, b string) float64 {
	s1, s2 := []rune(a), []rune(b)
	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}

	best := partialRatio(s1, s2)
	if len(s1) == len(s2) && best < 100 {
		best = math.Max(best, partialRatio(s2, s1))
	}
	return round2(best)
}

func partialRatio(needle, hay []rune) float64 {
	n, m := len(needle), len(hay)
	chars := make(map[rune]struct{}, n)
	for _, r := range needle {
		chars[r] = struct{}{}
	}
	has := func(r rune) bool {
		_, ok := chars[r]
		return ok
	}

	var best float64
	try := func(window []rune) bool {
		if s := ratioRunes(needle, window); s > best {
			best = s
		}
		return best >= 100
	}

	// windows starting at the head of hay and shorter than needle
	for i := 1; i < n; i++ {
		if has(hay[i-1]) && try(hay[:i]) {
			return best
		}
	}
	// full-length windows
	for i := 0; i < m-n; i++ {
		if has(hay[i+n-1]) && try(hay[i:i+n]) {
			return best
		}
	}
	// windows reaching the tail of hay
	for i := m - n; i < m; i++ {
		if has(hay[i]) && try(hay[i:]) {
			return best
		}
	}
	return best
}

func ratioRunes(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	dist := levenshtein.Distance(string(a), string(b), indelParams)
	return 100 * (1 - float64(dist)/float64(total))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
