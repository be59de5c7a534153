package command

import "strings"

// Match is a successful phrase lookup: the winning entry and the input
// text that followed the phrase.
type Match struct {
	Entry     Entry
	Remainder string
}

// Match finds the table entry for input. Matching is pure: it reads
// the table and touches nothing else.
//
// An input matches a phrase when it equals it, continues it after a
// space, or continues it with no separator at all. Ties are broken by
// specificity: an exact match beats everything, then the longest
// phrase followed by a space, then the longest bare prefix, so "add
// dev express" picks "add dev" over "add". Equal-length candidates
// cannot collide since phrases are unique.
func (t *Table) Match(input string) (Match, bool) {
	in := Normalize(input)
	if in == "" {
		return Match{}, false
	}

	if e, ok := t.entries[in]; ok {
		return Match{Entry: e}, true
	}

	const (
		tierNone = iota
		tierBare
		tierSeparated
	)
	bestTier := tierNone
	var best Entry

	for _, key := range t.order {
		if !strings.HasPrefix(in, key) {
			continue
		}
		tier := tierBare
		if in[len(key)] == ' ' {
			tier = tierSeparated
		}
		if tier > bestTier || (tier == bestTier && len(key) > len(best.Phrase)) {
			bestTier = tier
			best = t.entries[key]
		}
	}

	if bestTier == tierNone {
		return Match{}, false
	}
	return Match{
		Entry:     best,
		Remainder: strings.TrimSpace(in[len(best.Phrase):]),
	}, true
}
