package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// Size is the number of cards in a full deck
const Size = 52

// Deck represents an ordered deck of playing cards. Cards are drawn from the
// end of the sequence.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a standard 52-card deck in fixed order: suits Spades, Hearts,
// Diamonds, Clubs and ranks Ace through King within each suit. Every card is
// face down. The deck is not shuffled.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("deck: rng is required")
	}
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	return d
}

// NewShuffled creates a full deck and shuffles it
func NewShuffled(rng *rand.Rand) *Deck {
	d := New(rng)
	d.Shuffle()
	return d
}

// NewStacked creates a deck holding exactly the given cards. The last card is
// drawn first. Used to script rounds in tests and replays.
func NewStacked(rng *rand.Rand, cards ...Card) *Deck {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Deck{cards: stacked, rng: rng}
}

// Shuffle randomizes the order of the remaining cards using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the last card of the deck. A round never needs
// more than the full deck, so drawing from an empty deck panics.
func (d *Deck) Draw() Card {
	n := len(d.cards)
	if n == 0 {
		panic("deck: draw from empty deck")
	}
	card := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return card
}

// ExpectedValue returns the mean worth of the remaining cards. It is
// recomputed on every call because the deck changes between calls.
func (d *Deck) ExpectedValue() float64 {
	if len(d.cards) == 0 {
		return 0
	}
	total := 0
	for _, c := range d.cards {
		total += c.Worth()
	}
	return float64(total) / float64(len(d.cards))
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards in draw order reversed
// (the last element is the next card drawn).
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

func (d *Deck) String() string {
	return fmt.Sprintf("Deck(%d cards, ev %.2f)", len(d.cards), d.ExpectedValue())
}
