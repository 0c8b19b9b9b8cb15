package deck

import "fmt"

// Suit represents a card suit
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in deck construction order
var Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Rank represents a card rank. Ranks are ordered Ace (1) through King (13).
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank in deck construction order
var Ranks = [...]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// String returns the two character representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return " A"
	case Two:
		return " 2"
	case Three:
		return " 3"
	case Four:
		return " 4"
	case Five:
		return " 5"
	case Six:
		return " 6"
	case Seven:
		return " 7"
	case Eight:
		return " 8"
	case Nine:
		return " 9"
	case Ten:
		return "10"
	case Jack:
		return " J"
	case Queen:
		return " Q"
	case King:
		return " K"
	default:
		return " ?"
	}
}

// Order returns the position of the rank from Ace (1) to King (13).
// Reports use it to order two-card combinations.
func (r Rank) Order() int {
	return int(r)
}

// Worth returns the value of the rank towards a hand total. Aces are worth 1;
// the alternative 11 is handled by hand scoring.
func (r Rank) Worth() int {
	if r >= Ten {
		return 10
	}
	return int(r)
}

// Visibility describes who may see a card
type Visibility uint8

const (
	// Hidden cards are face down and count towards no total.
	Hidden Visibility = iota
	// OwnerOnly cards are visible to the holder of the hand.
	OwnerOnly
	// Revealed cards are visible to every participant.
	Revealed
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case OwnerOnly:
		return "owner"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Card represents a playing card
type Card struct {
	Suit       Suit
	Rank       Rank
	Visibility Visibility
}

// NewCard creates a new face down card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank, Visibility: Hidden}
}

// Open reveals the card to everyone
func (c *Card) Open() {
	c.Visibility = Revealed
}

// OpenForOwner makes the card visible to its holder only
func (c *Card) OpenForOwner() {
	c.Visibility = OwnerOnly
}

// IsVisible reports whether the card counts towards hand totals
func (c Card) IsVisible() bool {
	return c.Visibility != Hidden
}

// Worth returns the value of the card towards a hand total
func (c Card) Worth() int {
	return c.Rank.Worth()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// SameFace reports whether two cards have the same suit and rank,
// regardless of visibility.
func (c Card) SameFace(o Card) bool {
	return c.Suit == o.Suit && c.Rank == o.Rank
}

// String returns the representation of a card (e.g. " A♠", "10♥"), or " XX"
// while the card is face down.
func (c Card) String() string {
	if c.Visibility == Hidden {
		return " XX"
	}
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}
