package report

import "sort"

// TopN returns the n highest-ranked entries. The sort is stable: equal
// values keep their input (insertion/id) order. Entries whose ranking
// denominator is zero are excluded up front so a 0/0 bucket never ranks.
func TopN[T any](entries []T, n int, denominator func(T) int, less func(a, b T) bool) []T {
	ranked := make([]T, 0, len(entries))
	for _, e := range entries {
		if denominator(e) == 0 {
			continue
		}
		ranked = append(ranked, e)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[j], ranked[i]) // descending
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
