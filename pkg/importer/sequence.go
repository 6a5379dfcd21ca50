package importer

import "sort"

// Dedupe keeps the first occurrence of each canonical game and drops later
// exact duplicates. Input order decides which occurrence survives, so callers
// must dedupe before sorting.
func Dedupe(games []CanonicalGame) []CanonicalGame {
	seen := make(map[dedupKey]struct{}, len(games))
	out := make([]CanonicalGame, 0, len(games))
	for _, g := range games {
		k := g.key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, g)
	}
	return out
}

// SortDeterministic establishes the one total order every downstream step
// depends on: date, location, sequence hint (records without a hint rank
// after all records with one), then names and scores as tie-breakers. Given
// the same input multiset the result is byte-for-byte reproducible, which is
// what makes round numbering stable.
func SortDeterministic(games []CanonicalGame) {
	sort.SliceStable(games, func(i, j int) bool {
		a, b := games[i], games[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		// Records without a hint share one fixed rank after every hinted record.
		if aHinted, bHinted := a.SeqHint != nil, b.SeqHint != nil; aHinted != bHinted {
			return aHinted
		} else if aHinted && *a.SeqHint != *b.SeqHint {
			return *a.SeqHint < *b.SeqHint
		}
		if a.Player1 != b.Player1 {
			return a.Player1 < b.Player1
		}
		if a.Player2 != b.Player2 {
			return a.Player2 < b.Player2
		}
		if a.Score1 != b.Score1 {
			return a.Score1 < b.Score1
		}
		return a.Score2 < b.Score2
	})
}
