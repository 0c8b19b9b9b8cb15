package statistics

import (
	"fmt"

	"github.com/lox/bankjack/internal/deck"
)

// Hand is the read surface of a finished hand that the recorder needs
type Hand interface {
	Cards() []deck.Card
}

// PlayRecord is an immutable snapshot of a resolved hand's starting cards
type PlayRecord struct {
	OpenCard   deck.Card // First card dealt, visible to everyone
	ClosedCard deck.Card // Second card dealt, visible to the owner only
	Bought     bool      // Hand drew beyond its first two cards
}

// NewPlayRecord captures the first two cards of a hand. Cards are copied by
// value so later changes to the live hand do not leak into the record.
func NewPlayRecord(hand Hand) PlayRecord {
	cards := hand.Cards()
	if len(cards) < 2 {
		panic(fmt.Sprintf("statistics: cannot record a hand of %d cards", len(cards)))
	}
	return PlayRecord{
		OpenCard:   cards[0],
		ClosedCard: cards[1],
		Bought:     len(cards) > 2,
	}
}

// WinRecords holds every resolved hand of a run, split by outcome.
// Records are only ever appended.
type WinRecords struct {
	wins   []PlayRecord
	losses []PlayRecord
}

// NewWinRecords creates an empty recorder
func NewWinRecords() *WinRecords {
	return &WinRecords{}
}

// RecordWin stores a hand the player won
func (r *WinRecords) RecordWin(hand Hand) {
	r.wins = append(r.wins, NewPlayRecord(hand))
}

// RecordLoss stores a hand the player lost
func (r *WinRecords) RecordLoss(hand Hand) {
	r.losses = append(r.losses, NewPlayRecord(hand))
}

// Wins returns the recorded wins in resolution order. The slice must not be
// modified.
func (r *WinRecords) Wins() []PlayRecord {
	return r.wins
}

// Losses returns the recorded losses in resolution order. The slice must not
// be modified.
func (r *WinRecords) Losses() []PlayRecord {
	return r.losses
}

// Len returns the total number of recorded hands
func (r *WinRecords) Len() int {
	return len(r.wins) + len(r.losses)
}

// Merge appends every record of other after the records already held
func (r *WinRecords) Merge(other *WinRecords) {
	if other == nil {
		return
	}
	r.wins = append(r.wins, other.wins...)
	r.losses = append(r.losses, other.losses...)
}
