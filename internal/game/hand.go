package game

import (
	"strconv"
	"strings"

	"github.com/lox/bankjack/internal/deck"
)

// Blackjack is the target total
const Blackjack = 21

// Hand is the ordered set of cards held by a player or the bank. Cards are
// appended as they are dealt and only removed by Clear.
type Hand struct {
	cards []deck.Card
}

// Add appends a card to the hand
func (h *Hand) Add(card deck.Card) {
	h.cards = append(h.cards, card)
}

// Cards returns a copy of the cards in deal order
func (h *Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// Clear removes every card, keeping the backing storage for the next round
func (h *Hand) Clear() {
	h.cards = h.cards[:0]
}

// Reveal turns every card face up
func (h *Hand) Reveal() {
	for i := range h.cards {
		h.cards[i].Open()
	}
}

// Contains reports whether any card in the hand has the given rank
func (h *Hand) Contains(rank deck.Rank) bool {
	for _, c := range h.cards {
		if c.Rank == rank {
			return true
		}
	}
	return false
}

// Bought reports whether the hand drew beyond its first two cards
func (h *Hand) Bought() bool {
	return len(h.cards) > 2
}

// PossibleValues enumerates every achievable total of the visible cards.
//
// Non-ace cards are summed into a single candidate. Each ace then turns every
// existing candidate v into v+11, adding v+1 as a new candidate, when v+11
// does not exceed 21; otherwise the candidate just becomes v+1. Duplicates
// are kept. The result always holds at least one total.
func (h *Hand) PossibleValues() []int {
	aces, total := 0, 0
	for _, c := range h.cards {
		if !c.IsVisible() {
			continue
		}
		if c.IsAce() {
			aces++
			continue
		}
		total += c.Worth()
	}

	values := make([]int, 1, 1+aces)
	values[0] = total
	for a := 0; a < aces; a++ {
		n := len(values)
		for i := 0; i < n; i++ {
			if values[i]+11 <= Blackjack {
				values = append(values, values[i]+1)
				values[i] += 11
			} else {
				values[i]++
			}
		}
	}
	return values
}

// GreatestValue returns the highest achievable total
func (h *Hand) GreatestValue() int {
	values := h.PossibleValues()
	best := values[0]
	for _, v := range values[1:] {
		if v > best {
			best = v
		}
	}
	return best
}

// SmallestValue returns the lowest achievable total
func (h *Hand) SmallestValue() int {
	values := h.PossibleValues()
	least := values[0]
	for _, v := range values[1:] {
		if v < least {
			least = v
		}
	}
	return least
}

// IsBust reports whether the hand exceeds 21 even with every ace counted as 1
func (h *Hand) IsBust() bool {
	return h.SmallestValue() > Blackjack
}

// HasTwentyOne reports whether 21 is one of the achievable totals
func (h *Hand) HasTwentyOne() bool {
	for _, v := range h.PossibleValues() {
		if v == Blackjack {
			return true
		}
	}
	return false
}

// String renders the cards followed by the achievable totals,
// e.g. " A♠  K♥ (21, 11)".
func (h *Hand) String() string {
	var sb strings.Builder
	for i, c := range h.cards {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
	}
	sb.WriteString(" (")
	for i, v := range h.PossibleValues() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte(')')
	return sb.String()
}
