package game

import "fmt"

// Player is an automated participant playing against the bank
type Player struct {
	ID     int
	Money  int
	Bid    int // Zero when not playing the current round
	Hand   Hand
	Policy DrawPolicy
}

// IsActive returns true if the player has a stake in the current round
func (p *Player) IsActive() bool {
	return p.Bid > 0
}

func (p *Player) clone() Player {
	c := *p
	c.Hand = Hand{cards: p.Hand.Cards()}
	return c
}

func (p *Player) String() string {
	hand := "no cards"
	if p.Hand.Len() > 0 {
		hand = p.Hand.String()
	}
	bid := "has not placed a bid"
	if p.Bid > 0 {
		bid = fmt.Sprintf("bid %d$", p.Bid)
	}
	return fmt.Sprintf("Player %d: has %s and %s (%d$)", p.ID, hand, bid, p.Money)
}

// Bank is the house. It escrows every bid and settles against each player.
type Bank struct {
	Money int
	Hand  Hand
}

func (b *Bank) String() string {
	hand := "no cards"
	if b.Hand.Len() > 0 {
		hand = b.Hand.String()
	}
	return fmt.Sprintf("Bank: has %s (%d$)", hand, b.Money)
}
