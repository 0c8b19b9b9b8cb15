package statistics

import (
	"testing"
	"unsafe"

	"github.com/lox/bankjack/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardList []deck.Card

func (c cardList) Cards() []deck.Card { return c }

func open(suit deck.Suit, rank deck.Rank) deck.Card {
	c := deck.NewCard(suit, rank)
	c.Open()
	return c
}

func TestRecordWinAndLoss(t *testing.T) {
	r := NewWinRecords()

	r.RecordWin(cardList{open(deck.Spades, deck.Ace), open(deck.Hearts, deck.King)})
	r.RecordLoss(cardList{
		open(deck.Clubs, deck.Four),
		open(deck.Clubs, deck.Nine),
		open(deck.Hearts, deck.Queen),
	})

	require.Len(t, r.Wins(), 1)
	require.Len(t, r.Losses(), 1)
	assert.Equal(t, 2, r.Len())

	win := r.Wins()[0]
	assert.Equal(t, deck.Ace, win.OpenCard.Rank)
	assert.Equal(t, deck.King, win.ClosedCard.Rank)
	assert.False(t, win.Bought)

	loss := r.Losses()[0]
	assert.Equal(t, deck.Four, loss.OpenCard.Rank)
	assert.Equal(t, deck.Nine, loss.ClosedCard.Rank)
	assert.True(t, loss.Bought)
}

func TestRecordIsIndependentOfHand(t *testing.T) {
	hand := cardList{open(deck.Spades, deck.Two), open(deck.Spades, deck.Three)}
	r := NewWinRecords()
	r.RecordWin(hand)

	hand[0] = open(deck.Diamonds, deck.King)
	assert.Equal(t, deck.Two, r.Wins()[0].OpenCard.Rank)
}

func TestRecordShortHandPanics(t *testing.T) {
	r := NewWinRecords()
	assert.Panics(t, func() {
		r.RecordWin(cardList{open(deck.Spades, deck.Two)})
	})
}

func TestMergeAppendsInOrder(t *testing.T) {
	a := NewWinRecords()
	b := NewWinRecords()
	a.RecordWin(cardList{open(deck.Spades, deck.Two), open(deck.Spades, deck.Three)})
	b.RecordWin(cardList{open(deck.Hearts, deck.Four), open(deck.Hearts, deck.Five)})
	b.RecordLoss(cardList{open(deck.Hearts, deck.Six), open(deck.Hearts, deck.Seven)})

	a.Merge(b)
	a.Merge(nil)

	require.Len(t, a.Wins(), 2)
	assert.Equal(t, deck.Two, a.Wins()[0].OpenCard.Rank)
	assert.Equal(t, deck.Four, a.Wins()[1].OpenCard.Rank)
	assert.Len(t, a.Losses(), 1)
}

func TestCountByOpenRank(t *testing.T) {
	records := []PlayRecord{
		{OpenCard: open(deck.Spades, deck.Ten)},
		{OpenCard: open(deck.Hearts, deck.Ten)},
		{OpenCard: open(deck.Hearts, deck.Ace)},
		{OpenCard: open(deck.Clubs, deck.Two)},
		{OpenCard: open(deck.Clubs, deck.Ten)},
	}

	counts := CountByOpenRank(records)
	require.Len(t, counts, 3)
	assert.Equal(t, RankCount{Rank: deck.Ten, Count: 3}, counts[0])
	assert.Equal(t, RankCount{Rank: deck.Ace, Count: 1}, counts[1])
	assert.Equal(t, RankCount{Rank: deck.Two, Count: 1}, counts[2])
	assert.Empty(t, CountByOpenRank(nil))
}

func TestBoughtCombinations(t *testing.T) {
	records := []PlayRecord{
		{OpenCard: open(deck.Spades, deck.Five), ClosedCard: open(deck.Hearts, deck.King), Bought: true},
		{OpenCard: open(deck.Clubs, deck.King), ClosedCard: open(deck.Clubs, deck.Five), Bought: true},
		{OpenCard: open(deck.Clubs, deck.Two), ClosedCard: open(deck.Clubs, deck.Three), Bought: true},
		{OpenCard: open(deck.Clubs, deck.King), ClosedCard: open(deck.Clubs, deck.Five), Bought: false},
	}

	combos := BoughtCombinations(records, 0)
	require.Len(t, combos, 2)
	assert.Equal(t, Combination{High: deck.King, Low: deck.Five}, combos[0].Combination)
	assert.Equal(t, 2, combos[0].Count)
	assert.Equal(t, Combination{High: deck.Three, Low: deck.Two}, combos[1].Combination)

	assert.Len(t, BoughtCombinations(records, 1), 1)
}

func TestCombinationOfOrdersByRank(t *testing.T) {
	c := CombinationOf(PlayRecord{OpenCard: open(deck.Spades, deck.Ace), ClosedCard: open(deck.Spades, deck.Jack)})
	assert.Equal(t, deck.Jack, c.High)
	assert.Equal(t, deck.Ace, c.Low)
}

func TestPlayRecordStaysCompact(t *testing.T) {
	// a default run keeps tens of millions of these in memory
	assert.Equal(t, uintptr(3), unsafe.Sizeof(deck.Card{}))
	assert.Equal(t, uintptr(7), unsafe.Sizeof(PlayRecord{}))
}
