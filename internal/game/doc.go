// Package game implements the round engine of the bank-versus-players card
// game.
//
// The main type is Game, which owns the bank, the seated players, the deck and
// the outcome recorder, and walks a round through its fixed phases.
//
// # Basic Usage
//
// Seat players and play a round:
//
//	g := game.NewGame(randutil.New(42))
//	g.AddPlayer(1, game.ExpectedValuePolicy{})
//	g.AddPlayer(2, game.FixedThresholdPolicy{Margin: game.DefaultMargin})
//	result := g.PlayRound()
//	// inspect result.Balances...
//	g.CleanUp()
//
// PlayRound is shorthand for the individual phases, which can also be driven
// one at a time:
//
//	g.StartRound()        // seating, open cards, bids, closed cards
//	g.PlayPlayer(1)       // one player's draw/stand loop
//	g.PlayBank()          // bank draws to 17 and settles
//	g.CleanUp()           // hands cleared, balances restored, new deck
//
// # Scoring
//
// Hand.PossibleValues enumerates every total the visible cards can make,
// counting each ace as 1 or 11. A hand is bust when its smallest total is
// above 21 and wins outright when any total equals 21.
//
// # Deterministic Testing
//
// All randomness comes from the rng passed to NewGame. For full control over
// the cards, supply a stacked deck:
//
//	g := game.NewGame(rng, game.WithDeckFactory(func(r *rand.Rand) *deck.Deck {
//	    return deck.NewStacked(r, cards...)
//	}))
package game
