// Package suggest ranks known phrases by similarity to unmatched input
// so the CLI can answer "did you mean ...?".
package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggestion pairs a phrase with its similarity score, 0 to 1 with
// higher meaning closer.
type Suggestion struct {
	Phrase string
	Score  float64
}

// Threshold is the minimum score for a phrase to be offered.
const Threshold = 0.5

// TopN is the maximum number of suggestions offered.
const TopN = 3

// Closest returns up to TopN phrases similar to input, best first.
// Ties keep the order phrases were given in.
func Closest(input string, phrases []string) []Suggestion {
	return ClosestN(input, phrases, TopN, Threshold)
}

// ClosestN is Closest with explicit limit and threshold. A topN of
// zero or less means unlimited.
func ClosestN(input string, phrases []string, topN int, threshold float64) []Suggestion {
	in := canon(input)
	if in == "" || len(phrases) == 0 {
		return nil
	}

	var results []Suggestion
	for _, phrase := range phrases {
		score := similarity(in, canon(phrase))
		if score >= threshold {
			results = append(results, Suggestion{Phrase: phrase, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}
	return results
}

// similarity is normalized Levenshtein similarity with a small bonus
// for a shared prefix, so "comit" lands on "commit" rather than an
// equally distant phrase that starts differently.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	maxLen := max(len(a), len(b))
	dist := levenshtein.ComputeDistance(a, b)
	score := 1.0 - float64(dist)/float64(maxLen)

	score += 0.1 * float64(commonPrefixLen(a, b)) / float64(maxLen)
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func canon(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
