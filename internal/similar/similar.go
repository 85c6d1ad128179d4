// Package similar flags canonical uids that are close enough to be the same
// content type spelled two ways. Nothing is merged on that basis; the pairs
// are only reported.
package similar

import "strings"

// DefaultThreshold is the minimum score reported by Pairs.
const DefaultThreshold = 0.85

// Pair is two uids whose score reached the threshold. A precedes B in input order.
type Pair struct {
	A, B  string
	Score float64
}

// Distance is the Levenshtein edit distance between a and b, in bytes.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	if a == "" {
		return len(b)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Score is 1 - distance/maxLen over the squashed forms of a and b, so
// "hero_banner" and "HeroBanner" score 1.
func Score(a, b string) float64 {
	a, b = squash(a), squash(b)
	if a == "" && b == "" {
		return 1
	}

	return 1 - float64(Distance(a, b))/float64(max(len(a), len(b)))
}

// Pairs returns every pair of distinct, non-empty uids scoring at least
// threshold. A threshold <= 0 disables the check.
func Pairs(uids []string, threshold float64) []Pair {
	if threshold <= 0 {
		return nil
	}

	var out []Pair

	for i, a := range uids {
		if a == "" {
			continue
		}

		for _, b := range uids[i+1:] {
			if b == "" || a == b {
				continue
			}

			if s := Score(a, b); s >= threshold {
				out = append(out, Pair{A: a, B: b, Score: s})
			}
		}
	}

	return out
}

func squash(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}

		return r
	}, strings.ToLower(s))
}
