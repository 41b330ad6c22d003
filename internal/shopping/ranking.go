package shopping

import "sort"

// Rank derives a total order over item keys from the recorded uncheck
// sequences of a shop. Each sequence is one shopping trip, earliest trip
// first. Every pair (a, b) where a was unchecked before b counts as a win
// for a over b; items are ranked by net wins across all trips. Human trip
// orders contradict each other, so a strict topological sort would
// deadlock on cycles; net scoring always yields an answer and stabilizes
// as history grows.
//
// Ties are broken by first-ever appearance across history, then by key, so
// the same history always reproduces the same order.
func Rank(sequences [][]string) []string {
	wins := make(map[string]map[string]int)
	firstSeen := make(map[string]int)
	next := 0

	for _, seq := range sequences {
		for i, a := range seq {
			if _, ok := firstSeen[a]; !ok {
				firstSeen[a] = next
				next++
			}
			for _, b := range seq[i+1:] {
				if wins[a] == nil {
					wins[a] = make(map[string]int)
				}
				wins[a][b]++
			}
		}
	}

	scores := make(map[string]int, len(firstSeen))
	for a := range firstSeen {
		for b := range firstSeen {
			scores[a] += wins[a][b] - wins[b][a]
		}
	}

	keys := make([]string, 0, len(firstSeen))
	for key := range firstSeen {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		if firstSeen[a] != firstSeen[b] {
			return firstSeen[a] < firstSeen[b]
		}
		return a < b
	})
	return keys
}
