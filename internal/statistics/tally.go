package statistics

import (
	"fmt"
	"sort"
)

// RoundTally classifies every round of a run. A tracked player wins a round
// when their balance after settlement is above the starting balance; every
// other outcome counts as a bank win. With several tracked players the bank
// can collect more than one win per round, so BankWinRate normalizes by
// rounds times tracked players.
type RoundTally struct {
	StartingBalance int
	Tracked         []int
	Rounds          int
	GamesWon        map[int]int
	BankWins        int
	Net             map[int]*Statistics
}

// NewRoundTally creates a tally for the given tracked player ids
func NewRoundTally(startingBalance int, tracked ...int) *RoundTally {
	t := &RoundTally{
		StartingBalance: startingBalance,
		Tracked:         append([]int(nil), tracked...),
		GamesWon:        make(map[int]int, len(tracked)),
		Net:             make(map[int]*Statistics, len(tracked)),
	}
	for _, id := range tracked {
		t.Net[id] = &Statistics{}
	}
	return t
}

// Record classifies one round from the post-settlement balances. A tracked id
// missing from balances is a caller bug and panics.
func (t *RoundTally) Record(balances map[int]int) {
	t.Rounds++
	for _, id := range t.Tracked {
		money, ok := balances[id]
		if !ok {
			panic(fmt.Sprintf("statistics: tracked player %d is not seated", id))
		}
		if money > t.StartingBalance {
			t.GamesWon[id]++
		} else {
			t.BankWins++
		}
		t.Net[id].Add(money - t.StartingBalance)
	}
}

// WinRate returns the share of rounds won by a tracked player
func (t *RoundTally) WinRate(id int) float64 {
	if t.Rounds == 0 {
		return 0
	}
	return float64(t.GamesWon[id]) / float64(t.Rounds)
}

// BankWinRate returns bank wins over rounds times tracked players
func (t *RoundTally) BankWinRate() float64 {
	if t.Rounds == 0 || len(t.Tracked) == 0 {
		return 0
	}
	return float64(t.BankWins) / float64(t.Rounds*len(t.Tracked))
}

// Merge folds another tally over the same tracked players into t
func (t *RoundTally) Merge(o *RoundTally) error {
	if o == nil {
		return nil
	}
	if !sameIDs(t.Tracked, o.Tracked) {
		return fmt.Errorf("cannot merge tallies tracking %v and %v", t.Tracked, o.Tracked)
	}
	t.Rounds += o.Rounds
	t.BankWins += o.BankWins
	for id, n := range o.GamesWon {
		t.GamesWon[id] += n
	}
	for id, s := range o.Net {
		t.Net[id].Merge(*s)
	}
	return nil
}

// Validate checks the tally is internally consistent
func (t *RoundTally) Validate() error {
	won := 0
	for _, id := range t.Tracked {
		won += t.GamesWon[id]
		if err := t.Net[id].Validate(); err != nil {
			return fmt.Errorf("player %d: %w", id, err)
		}
		if t.Net[id].Rounds != t.Rounds {
			return fmt.Errorf("player %d: %d net results for %d rounds", id, t.Net[id].Rounds, t.Rounds)
		}
	}
	if won+t.BankWins != t.Rounds*len(t.Tracked) {
		return fmt.Errorf("ledger mismatch: %d player wins + %d bank wins != %d rounds x %d players",
			won, t.BankWins, t.Rounds, len(t.Tracked))
	}
	return nil
}

func sameIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]int(nil), a...)
	y := append([]int(nil), b...)
	sort.Ints(x)
	sort.Ints(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
