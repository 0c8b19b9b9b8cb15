package game

import (
	rand "math/rand/v2"

	"github.com/lox/bankjack/internal/deck"
)

func card(suit deck.Suit, rank deck.Rank, vis deck.Visibility) deck.Card {
	c := deck.NewCard(suit, rank)
	c.Visibility = vis
	return c
}

func open(suit deck.Suit, rank deck.Rank) deck.Card {
	return card(suit, rank, deck.Revealed)
}

func handOf(cards ...deck.Card) *Hand {
	h := &Hand{}
	for _, c := range cards {
		h.Add(c)
	}
	return h
}

// inDrawOrder returns a deck factory whose decks yield cards in the given order
func inDrawOrder(cards ...deck.Card) func(*rand.Rand) *deck.Deck {
	return func(r *rand.Rand) *deck.Deck {
		reversed := make([]deck.Card, len(cards))
		for i, c := range cards {
			reversed[len(cards)-1-i] = c
		}
		return deck.NewStacked(r, reversed...)
	}
}

type fixedView float64

func (v fixedView) ExpectedValue() float64 { return float64(v) }
