package game

import (
	"fmt"
	"sort"
)

// Decision is the outcome of a draw policy
type Decision int

const (
	Stand Decision = iota
	Draw
)

func (d Decision) String() string {
	if d == Draw {
		return "draw"
	}
	return "stand"
}

// TableView is the part of the table a policy may inspect besides its own hand
type TableView interface {
	// ExpectedValue is the mean worth of the cards left in the deck
	ExpectedValue() float64
}

// DrawPolicy decides whether a player draws another card. A policy is chosen
// once per player and consulted every time the hand is neither bust nor 21.
type DrawPolicy interface {
	Name() string
	Decide(hand *Hand, table TableView) Decision
}

// Policy names accepted by PolicyByName
const (
	ExpectedValuePolicyName  = "expected-value"
	FixedThresholdPolicyName = "fixed-threshold"
)

// DefaultMargin is the fixed card estimate used by FixedThresholdPolicy
const DefaultMargin = 6

// ExpectedValuePolicy stands when the greatest total plus the expected worth
// of the next card would exceed 21.
type ExpectedValuePolicy struct{}

func (ExpectedValuePolicy) Name() string { return ExpectedValuePolicyName }

func (ExpectedValuePolicy) Decide(hand *Hand, table TableView) Decision {
	if float64(hand.GreatestValue())+table.ExpectedValue() > Blackjack {
		return Stand
	}
	return Draw
}

// FixedThresholdPolicy stands when the smallest total plus Margin exceeds 21
type FixedThresholdPolicy struct {
	Margin int
}

func (FixedThresholdPolicy) Name() string { return FixedThresholdPolicyName }

func (p FixedThresholdPolicy) Decide(hand *Hand, _ TableView) Decision {
	if hand.SmallestValue()+p.Margin > Blackjack {
		return Stand
	}
	return Draw
}

var policies = map[string]func() DrawPolicy{
	ExpectedValuePolicyName:  func() DrawPolicy { return ExpectedValuePolicy{} },
	FixedThresholdPolicyName: func() DrawPolicy { return FixedThresholdPolicy{Margin: DefaultMargin} },
}

// PolicyByName returns the policy registered under name
func PolicyByName(name string) (DrawPolicy, error) {
	newPolicy, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("unknown draw policy %q (valid: %v)", name, PolicyNames())
	}
	return newPolicy(), nil
}

// PolicyNames lists the registered policy names in sorted order
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultPolicyFor returns the policy a player gets when none is configured:
// player 1 plays the expected value policy, everyone else the fixed threshold.
func DefaultPolicyFor(id int) DrawPolicy {
	if id == 1 {
		return ExpectedValuePolicy{}
	}
	return FixedThresholdPolicy{Margin: DefaultMargin}
}

// BidPolicy decides how much a player stakes at the start of a round
type BidPolicy interface {
	Bid(p *Player) int
}

// FixedBid stakes the same amount every round
type FixedBid int

func (b FixedBid) Bid(*Player) int { return int(b) }
