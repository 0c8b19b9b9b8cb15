package game

import (
	"testing"

	"github.com/lox/bankjack/internal/deck"
	"github.com/lox/bankjack/internal/randutil"
	"github.com/lox/bankjack/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playerID = 2

// newScriptedGame seats a single player and deals cards in the given order:
// player open, bank open, player closed, bank second, then any draws.
func newScriptedGame(t *testing.T, policy DrawPolicy, cards ...deck.Card) *Game {
	t.Helper()
	g := NewGame(randutil.New(1), WithDeckFactory(inDrawOrder(cards...)))
	require.NoError(t, g.AddPlayer(playerID, policy))
	return g
}

func mustPlayer(t *testing.T, g *Game, id int) Player {
	t.Helper()
	p, ok := g.Player(id)
	require.True(t, ok, "player %d not seated", id)
	return p
}

func TestStartRoundDealsAndEscrowsBids(t *testing.T) {
	g := newScriptedGame(t, FixedThresholdPolicy{Margin: DefaultMargin},
		open(deck.Spades, deck.Ten), open(deck.Clubs, deck.Five),
		open(deck.Hearts, deck.Four), open(deck.Diamonds, deck.Nine),
	)
	g.StartRound()

	p := mustPlayer(t, g, playerID)
	cards := p.Hand.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, deck.Revealed, cards[0].Visibility)
	assert.Equal(t, deck.OwnerOnly, cards[1].Visibility)
	assert.Equal(t, 1, p.Bid)
	assert.Equal(t, 99, p.Money)

	bank := g.Bank()
	bankCards := bank.Hand.Cards()
	require.Len(t, bankCards, 2)
	assert.Equal(t, deck.Revealed, bankCards[0].Visibility)
	assert.Equal(t, deck.Hidden, bankCards[1].Visibility)
	assert.Equal(t, 99, bank.Money)
	assert.Equal(t, 5, bank.Hand.GreatestValue(), "hidden card does not count yet")
}

func TestNaturalTwentyOneWins(t *testing.T) {
	g := newScriptedGame(t, FixedThresholdPolicy{Margin: DefaultMargin},
		open(deck.Spades, deck.Ace), open(deck.Clubs, deck.Five),
		open(deck.Hearts, deck.King), open(deck.Diamonds, deck.Nine),
		open(deck.Clubs, deck.Ten),
	)
	g.StartRound()
	g.PlayPlayer(playerID)

	p := mustPlayer(t, g, playerID)
	assert.Equal(t, 101, p.Money)
	assert.Zero(t, p.Bid)

	wins := g.Records().Wins()
	require.Len(t, wins, 1)
	assert.Equal(t, deck.Ace, wins[0].OpenCard.Rank)
	assert.Equal(t, deck.King, wins[0].ClosedCard.Rank)
	assert.False(t, wins[0].Bought)

	g.PlayBank()
	assert.Equal(t, 99, g.Bank().Money, "bank bust with no open bids pays nothing")
	assert.Empty(t, g.Records().Losses())
	assert.Zero(t, g.BankRoundsPlayed())
}

func TestMisdealIsRedealt(t *testing.T) {
	g := newScriptedGame(t, FixedThresholdPolicy{Margin: DefaultMargin},
		open(deck.Spades, deck.Seven), open(deck.Clubs, deck.Two),
		open(deck.Hearts, deck.Eight),
		open(deck.Spades, deck.Ten), open(deck.Hearts, deck.Nine),
		open(deck.Diamonds, deck.Five),
		open(deck.Diamonds, deck.Ten),
	)
	g.StartRound()

	cards := mustPlayer(t, g, playerID).Hand.Cards()
	require.Len(t, cards, 2)
	assert.True(t, cards[0].SameFace(deck.NewCard(deck.Spades, deck.Ten)))
	assert.Equal(t, deck.Revealed, cards[0].Visibility)
	assert.True(t, cards[1].SameFace(deck.NewCard(deck.Hearts, deck.Nine)))
	assert.Equal(t, deck.OwnerOnly, cards[1].Visibility)

	bankCards := g.Bank().Hand.Cards()
	require.Len(t, bankCards, 2)
	assert.Equal(t, deck.Five, bankCards[1].Rank)

	g.PlayPlayer(playerID)
	g.PlayBank()
	assert.Equal(t, 101, mustPlayer(t, g, playerID).Money, "19 beats the bank's 17")
}

func TestRepeatedMisdeal(t *testing.T) {
	g := newScriptedGame(t, FixedThresholdPolicy{Margin: DefaultMargin},
		open(deck.Spades, deck.Seven), open(deck.Clubs, deck.Two),
		open(deck.Hearts, deck.Eight),
		open(deck.Clubs, deck.Eight), open(deck.Diamonds, deck.Seven),
		open(deck.Spades, deck.Ten), open(deck.Hearts, deck.Nine),
		open(deck.Diamonds, deck.Five),
	)
	g.StartRound()

	h := mustPlayer(t, g, playerID).Hand
	assert.False(t, h.Contains(deck.Seven) && h.Contains(deck.Eight))
	assert.Equal(t, 19, h.GreatestValue())
	assert.Zero(t, g.Deck().Remaining())
}

func TestBankStandsOnEighteenPlayerNineteenWins(t *testing.T) {
	g := newScriptedGame(t, FixedThresholdPolicy{Margin: DefaultMargin},
		open(deck.Spades, deck.Ten), open(deck.Clubs, deck.Five),
		open(deck.Hearts, deck.Nine), open(deck.Diamonds, deck.Six),
		open(deck.Clubs, deck.Seven),
	)
	g.StartRound()
	g.PlayPlayer(playerID)
	assert.Equal(t, 1, mustPlayer(t, g, playerID).Bid, "player stands on 19")

	g.PlayBank()

	bank := g.Bank()
	assert.Equal(t, 18, bank.Hand.GreatestValue())
	assert.LessOrEqual(t, bank.Hand.SmallestValue(), 21)
	for _, c := range bank.Hand.Cards() {
		assert.Equal(t, deck.Revealed, c.Visibility)
	}

	assert.Len(t, g.Records().Wins(), 1)
	assert.Empty(t, g.Records().Losses())
	assert.Equal(t, 101, mustPlayer(t, g, playerID).Money)
	assert.Equal(t, 99, bank.Money)
}

func TestTieGoesToBank(t *testing.T) {
	g := newScriptedGame(t, FixedThresholdPolicy{Margin: DefaultMargin},
		open(deck.Spades, deck.Ten), open(deck.Clubs, deck.Ten),
		open(deck.Hearts, deck.Eight), open(deck.Diamonds, deck.Eight),
	)
	g.PlayRound()

	assert.Equal(t, 99, mustPlayer(t, g, playerID).Money)
	assert.Equal(t, 101, g.Bank().Money)
	assert.Len(t, g.Records().Losses(), 1)
	assert.Empty(t, g.Records().Wins())
}

func TestPlayerBust(t *testing.T) {
	g := newScriptedGame(t, FixedThresholdPolicy{Margin: DefaultMargin},
		open(deck.Spades, deck.Ten), open(deck.Clubs, deck.Ten),
		open(deck.Hearts, deck.Five), open(deck.Diamonds, deck.Seven),
		open(deck.Clubs, deck.King),
	)
	g.StartRound()
	g.PlayPlayer(playerID)

	p := mustPlayer(t, g, playerID)
	assert.True(t, p.Hand.IsBust())
	assert.Equal(t, 99, p.Money)
	assert.Zero(t, p.Bid)
	assert.Equal(t, 101, g.Bank().Money)

	losses := g.Records().Losses()
	require.Len(t, losses, 1)
	assert.True(t, losses[0].Bought)
	assert.Equal(t, deck.Ten, losses[0].OpenCard.Rank)
	assert.Equal(t, deck.Five, losses[0].ClosedCard.Rank)

	g.PlayBank()
	assert.Equal(t, 101, g.Bank().Money, "no bids left to settle")
}

func TestBankBustPaysOpenBids(t *testing.T) {
	g := newScriptedGame(t, FixedThresholdPolicy{Margin: DefaultMargin},
		open(deck.Spades, deck.Ten), open(deck.Clubs, deck.Ten),
		open(deck.Hearts, deck.Eight), open(deck.Diamonds, deck.Six),
		open(deck.Clubs, deck.Nine),
	)
	g.StartRound()
	g.PlayPlayer(playerID)
	g.PlayBank()

	assert.True(t, g.Bank().Hand.IsBust())
	assert.Equal(t, 101, mustPlayer(t, g, playerID).Money)
	assert.Len(t, g.Records().Wins(), 1)
	assert.Zero(t, g.BankRoundsPlayed())
}

func TestWinByCardCount(t *testing.T) {
	g := newScriptedGame(t, FixedThresholdPolicy{Margin: DefaultMargin},
		open(deck.Spades, deck.Ace), open(deck.Clubs, deck.Ten),
		open(deck.Hearts, deck.Ace), open(deck.Diamonds, deck.Seven),
		open(deck.Spades, deck.Two), open(deck.Hearts, deck.Two),
		open(deck.Diamonds, deck.Two), open(deck.Clubs, deck.Two),
		open(deck.Spades, deck.Three),
	)
	g.StartRound()
	g.PlayPlayer(playerID)

	p := mustPlayer(t, g, playerID)
	assert.Equal(t, MaxCards+1, p.Hand.Len())
	assert.False(t, p.Hand.HasTwentyOne())
	assert.Equal(t, 101, p.Money)

	wins := g.Records().Wins()
	require.Len(t, wins, 1)
	assert.True(t, wins[0].Bought)

	g.PlayBank()
	assert.Equal(t, 99, g.Bank().Money)
	assert.Equal(t, 1, g.BankRoundsPlayed(), "bank stood, counter keeps running")
}

func TestPlayPlayerPanics(t *testing.T) {
	g := newScriptedGame(t, FixedThresholdPolicy{Margin: DefaultMargin},
		open(deck.Spades, deck.Ace), open(deck.Clubs, deck.Five),
		open(deck.Hearts, deck.King), open(deck.Diamonds, deck.Nine),
	)
	g.StartRound()

	assert.PanicsWithValue(t, "game: player with id 9 does not exist", func() {
		g.PlayPlayer(9)
	})

	g.PlayPlayer(playerID)
	assert.PanicsWithValue(t, "game: player 2 has no bid, but is still being played", func() {
		g.PlayPlayer(playerID)
	})
}

func TestAddPlayerValidation(t *testing.T) {
	g := NewGame(randutil.New(1))
	require.NoError(t, g.AddPlayer(1, ExpectedValuePolicy{}))
	assert.ErrorContains(t, g.AddPlayer(1, ExpectedValuePolicy{}), "already seated")
	assert.ErrorContains(t, g.AddPlayer(2, nil), "policy is required")
}

func TestNewGameRequiresRNG(t *testing.T) {
	assert.Panics(t, func() { NewGame(nil) })
}

func TestCustomBidAndBalance(t *testing.T) {
	g := NewGame(randutil.New(3), WithStartingBalance(50), WithBidPolicy(FixedBid(5)))
	require.NoError(t, g.AddPlayer(1, DefaultPolicyFor(1)))

	result := g.PlayRound()
	assert.Contains(t, []int{45, 55}, result.Balances[1])

	g.CleanUp()
	require.NoError(t, g.VerifyReset())
	assert.Equal(t, 50, mustPlayer(t, g, 1).Money)
	assert.Equal(t, 50, g.Bank().Money)
	assert.Equal(t, 50, g.StartingBalance())
}

func seatDefaultPlayers(t *testing.T, g *Game, n int) {
	t.Helper()
	for id := 1; id <= n; id++ {
		require.NoError(t, g.AddPlayer(id, DefaultPolicyFor(id)))
	}
}

func TestRoundsConserveMoneyAndResetOnCleanup(t *testing.T) {
	records := statistics.NewWinRecords()
	g := NewGame(randutil.New(12345), WithRecords(records))
	seatDefaultPlayers(t, g, 4)

	const rounds = 2000
	for i := 0; i < rounds; i++ {
		result := g.PlayRound()

		total := g.Bank().Money
		for id, money := range result.Balances {
			assert.Contains(t, []int{99, 101}, money, "player %d round %d", id, i)
			total += money
		}
		require.Equal(t, 5*DefaultStartingBalance, total, "round %d leaked money", i)

		for _, p := range g.Players() {
			require.Zero(t, p.Bid, "player %d still holds a bid after settlement", p.ID)
		}

		g.CleanUp()
		require.NoError(t, g.VerifyReset())
		for _, p := range g.Players() {
			require.Equal(t, DefaultStartingBalance, p.Money)
		}
		require.Equal(t, deck.Size, g.Deck().Remaining())
	}

	assert.Equal(t, rounds*4, records.Len(), "every hand resolves exactly once per round")
	assert.Same(t, records, g.Records())
}

func TestSameSeedSameRun(t *testing.T) {
	play := func() *statistics.WinRecords {
		g := NewGame(randutil.New(777))
		seatDefaultPlayers(t, g, 4)
		for i := 0; i < 200; i++ {
			g.PlayRound()
			g.CleanUp()
		}
		return g.Records()
	}

	a, b := play(), play()
	assert.Equal(t, a.Wins(), b.Wins())
	assert.Equal(t, a.Losses(), b.Losses())
}

func TestSeatingOrderIsShuffled(t *testing.T) {
	g := NewGame(randutil.New(5))
	seatDefaultPlayers(t, g, 4)

	orders := map[[4]int]bool{}
	for i := 0; i < 20; i++ {
		g.StartRound()
		var order [4]int
		for j, p := range g.Players() {
			order[j] = p.ID
		}
		orders[order] = true
		g.PlayActivePlayers()
		g.PlayBank()
		g.CleanUp()
	}
	assert.Greater(t, len(orders), 1)
}

func TestGameString(t *testing.T) {
	g := NewGame(randutil.New(1))
	require.NoError(t, g.AddPlayer(2, DefaultPolicyFor(2)))

	s := g.String()
	assert.Contains(t, s, "Bank:\n  Bank: has no cards (100$)")
	assert.Contains(t, s, "Player 2: has no cards and has not placed a bid (100$)")
}
