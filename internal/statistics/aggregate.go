package statistics

import (
	"sort"

	"github.com/lox/bankjack/internal/deck"
)

// RankCount is the number of records sharing an open card rank
type RankCount struct {
	Rank  deck.Rank
	Count int
}

// CountByOpenRank buckets records by the rank of their open card, most
// frequent first. Ties are ordered by rank.
func CountByOpenRank(records []PlayRecord) []RankCount {
	var counts [deck.King + 1]int
	for _, r := range records {
		counts[r.OpenCard.Rank]++
	}

	out := make([]RankCount, 0, len(deck.Ranks))
	for _, rank := range deck.Ranks {
		if counts[rank] > 0 {
			out = append(out, RankCount{Rank: rank, Count: counts[rank]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Combination is an unordered starting pair, stored with the higher rank first
type Combination struct {
	High deck.Rank
	Low  deck.Rank
}

// CombinationOf orders the open and closed card of a record by rank
func CombinationOf(r PlayRecord) Combination {
	a, b := r.OpenCard.Rank, r.ClosedCard.Rank
	if b.Order() > a.Order() {
		a, b = b, a
	}
	return Combination{High: a, Low: b}
}

// CombinationCount is the number of records sharing a starting pair
type CombinationCount struct {
	Combination
	Count int
}

// BoughtCombinations counts the starting pairs of hands that drew extra
// cards, most frequent first. Ties are ordered by high rank then low rank.
// A positive limit truncates the result.
func BoughtCombinations(records []PlayRecord, limit int) []CombinationCount {
	counts := make(map[Combination]int)
	for _, r := range records {
		if !r.Bought {
			continue
		}
		counts[CombinationOf(r)]++
	}

	out := make([]CombinationCount, 0, len(counts))
	for combo, n := range counts {
		out = append(out, CombinationCount{Combination: combo, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].High != out[j].High {
			return out[i].High < out[j].High
		}
		return out[i].Low < out[j].Low
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
