package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/bankjack/internal/deck"
	"github.com/lox/bankjack/internal/statistics"
)

const (
	// DefaultStartingBalance is the balance every actor holds at the start of a round
	DefaultStartingBalance = 100

	// MaxCards is the hand size above which a player wins outright
	MaxCards = 6

	// BankStandsOn is the greatest total at which the bank stops drawing
	BankStandsOn = 17
)

// Game owns the bank, the players and the deck for a sequence of rounds.
// It is not safe for concurrent use.
type Game struct {
	rng     *rand.Rand
	deck    *deck.Deck
	bank    Bank
	players []*Player
	records *statistics.WinRecords
	logger  *log.Logger

	bids            BidPolicy
	startingBalance int
	newDeck         func(*rand.Rand) *deck.Deck

	bankRoundsPlayed int
}

// Option configures a Game during creation
type Option func(*Game)

// WithLogger sets the logger used for round events
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithStartingBalance sets the balance restored to every actor at cleanup.
// Default is 100.
func WithStartingBalance(balance int) Option {
	return func(g *Game) {
		g.startingBalance = balance
	}
}

// WithBidPolicy sets how players stake each round. Default is FixedBid(1).
func WithBidPolicy(bids BidPolicy) Option {
	return func(g *Game) {
		g.bids = bids
	}
}

// WithRecords shares an outcome recorder with the game
func WithRecords(records *statistics.WinRecords) Option {
	return func(g *Game) {
		g.records = records
	}
}

// WithDeckFactory overrides how a fresh deck is produced at construction and
// cleanup. The default builds a full deck and shuffles it with the game rng.
func WithDeckFactory(newDeck func(*rand.Rand) *deck.Deck) Option {
	return func(g *Game) {
		g.newDeck = newDeck
	}
}

// NewGame creates a game with an empty roster. The rng drives every shuffle,
// so a fixed seed reproduces a whole run.
func NewGame(rng *rand.Rand, opts ...Option) *Game {
	if rng == nil {
		panic("game: rng is required")
	}

	g := &Game{
		rng:             rng,
		bids:            FixedBid(1),
		startingBalance: DefaultStartingBalance,
		newDeck:         deck.NewShuffled,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.records == nil {
		g.records = statistics.NewWinRecords()
	}

	g.bank.Money = g.startingBalance
	g.deck = g.newDeck(g.rng)
	return g
}

// AddPlayer seats a player with the given id and draw policy
func (g *Game) AddPlayer(id int, policy DrawPolicy) error {
	if policy == nil {
		return fmt.Errorf("player %d: draw policy is required", id)
	}
	for _, p := range g.players {
		if p.ID == id {
			return fmt.Errorf("player %d is already seated", id)
		}
	}
	g.players = append(g.players, &Player{
		ID:     id,
		Money:  g.startingBalance,
		Policy: policy,
	})
	return nil
}

// StartRound shuffles the seating, deals the open cards, takes the bids,
// deals the closed cards and gives the bank its face down second card.
func (g *Game) StartRound() {
	g.rng.Shuffle(len(g.players), func(i, j int) {
		g.players[i], g.players[j] = g.players[j], g.players[i]
	})

	for _, p := range g.players {
		p.Hand.Add(g.drawOpen())
	}
	g.bank.Hand.Add(g.drawOpen())

	for _, p := range g.players {
		bid := g.bids.Bid(p)
		p.Bid = bid
		p.Money -= bid
		g.bank.Money -= bid
	}

	for _, p := range g.players {
		p.Hand.Add(g.drawForOwner())

		// A Seven and Eight starting pair is a misdeal and is redealt
		for isMisdeal(&p.Hand) {
			g.logger.Debug("Misdeal, redealing", "player", p.ID, "hand", &p.Hand)
			p.Hand.Clear()
			p.Hand.Add(g.drawOpen())
			p.Hand.Add(g.drawForOwner())
		}
	}

	g.bank.Hand.Add(g.deck.Draw())
}

func isMisdeal(h *Hand) bool {
	return h.Contains(deck.Seven) && h.Contains(deck.Eight)
}

// PlayPlayer plays one player's turn to completion. Playing an unknown id or a
// player without a bid is a caller bug and panics.
func (g *Game) PlayPlayer(id int) {
	p := g.mustPlayer(id)
	if p.Bid == 0 {
		panic(fmt.Sprintf("game: player %d has no bid, but is still being played", id))
	}

	for {
		if p.Hand.IsBust() {
			g.logger.Debug("Player bust", "player", p.ID, "hand", &p.Hand)
			g.bankWins(p)
			return
		}
		if p.Hand.HasTwentyOne() {
			g.logger.Debug("Player reached 21", "player", p.ID, "hand", &p.Hand)
			g.playerWins(p)
			return
		}

		if p.Policy.Decide(&p.Hand, g.deck) == Stand {
			g.logger.Debug("Player stands", "player", p.ID, "policy", p.Policy.Name(), "hand", &p.Hand)
			return
		}
		p.Hand.Add(g.drawOpen())

		if p.Hand.Len() > MaxCards {
			g.logger.Debug("Player won by card count", "player", p.ID, "hand", &p.Hand)
			g.playerWins(p)
			return
		}
	}
}

// PlayActivePlayers plays every player holding a bid, in seating order
func (g *Game) PlayActivePlayers() {
	for _, p := range g.players {
		if !p.IsActive() {
			continue
		}
		g.PlayPlayer(p.ID)
	}
}

// PlayBank reveals the bank's cards and draws until the bank busts or
// reaches 17, then settles with every player still holding a bid.
func (g *Game) PlayBank() {
	g.bankRoundsPlayed++
	g.bank.Hand.Reveal()

	for {
		if g.bank.Hand.IsBust() {
			g.logger.Debug("Bank bust", "hand", &g.bank.Hand, "rounds", g.bankRoundsPlayed)
			g.bankRoundsPlayed = 0
			for _, p := range g.players {
				if p.Bid == 0 {
					continue
				}
				g.playerWins(p)
			}
			return
		}

		bankValue := g.bank.Hand.GreatestValue()
		if bankValue >= BankStandsOn {
			g.logger.Debug("Bank stands", "hand", &g.bank.Hand)
			for _, p := range g.players {
				if p.Bid == 0 {
					continue
				}
				if p.Hand.GreatestValue() > bankValue {
					g.playerWins(p)
				} else {
					g.bankWins(p)
				}
			}
			return
		}

		g.bank.Hand.Add(g.drawOpen())
	}
}

// RoundResult holds every player's balance after settlement
type RoundResult struct {
	Balances map[int]int
}

// PlayRound runs a full round up to settlement. Balances are read before
// cleanup, which the caller still has to invoke.
func (g *Game) PlayRound() RoundResult {
	g.StartRound()
	g.PlayActivePlayers()
	g.PlayBank()

	balances := make(map[int]int, len(g.players))
	for _, p := range g.players {
		balances[p.ID] = p.Money
	}
	return RoundResult{Balances: balances}
}

// CleanUp clears every hand, restores every balance and replaces the deck
// with a freshly shuffled one.
func (g *Game) CleanUp() {
	for _, p := range g.players {
		p.Hand.Clear()
		p.Money = g.startingBalance
		p.Bid = 0
	}
	g.bank.Hand.Clear()
	g.bank.Money = g.startingBalance
	g.deck = g.newDeck(g.rng)
}

// VerifyReset checks that cleanup restored every balance and hand
func (g *Game) VerifyReset() error {
	if g.bank.Money != g.startingBalance {
		return fmt.Errorf("bank balance %d after cleanup, want %d", g.bank.Money, g.startingBalance)
	}
	if g.bank.Hand.Len() != 0 {
		return fmt.Errorf("bank holds %d cards after cleanup", g.bank.Hand.Len())
	}
	for _, p := range g.players {
		if p.Money != g.startingBalance {
			return fmt.Errorf("player %d balance %d after cleanup, want %d", p.ID, p.Money, g.startingBalance)
		}
		if p.Hand.Len() != 0 || p.Bid != 0 {
			return fmt.Errorf("player %d not reset after cleanup (%d cards, bid %d)", p.ID, p.Hand.Len(), p.Bid)
		}
	}
	return nil
}

func (g *Game) playerWins(p *Player) {
	p.Money += p.Bid * 2
	g.records.RecordWin(&p.Hand)
	p.Bid = 0
}

func (g *Game) bankWins(p *Player) {
	g.bank.Money += p.Bid * 2
	g.records.RecordLoss(&p.Hand)
	p.Bid = 0
}

func (g *Game) drawOpen() deck.Card {
	card := g.deck.Draw()
	card.Open()
	return card
}

func (g *Game) drawForOwner() deck.Card {
	card := g.deck.Draw()
	card.OpenForOwner()
	return card
}

func (g *Game) mustPlayer(id int) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	panic(fmt.Sprintf("game: player with id %d does not exist", id))
}

// Player returns a copy of the player with the given id
func (g *Game) Player(id int) (Player, bool) {
	for _, p := range g.players {
		if p.ID == id {
			return p.clone(), true
		}
	}
	return Player{}, false
}

// Players returns copies of every player in seating order
func (g *Game) Players() []Player {
	out := make([]Player, len(g.players))
	for i, p := range g.players {
		out[i] = p.clone()
	}
	return out
}

// Bank returns a copy of the bank
func (g *Game) Bank() Bank {
	return Bank{Money: g.bank.Money, Hand: Hand{cards: g.bank.Hand.Cards()}}
}

// Records returns the outcome recorder
func (g *Game) Records() *statistics.WinRecords {
	return g.records
}

// Deck returns the current deck
func (g *Game) Deck() *deck.Deck {
	return g.deck
}

// StartingBalance returns the balance restored at cleanup
func (g *Game) StartingBalance() int {
	return g.startingBalance
}

// BankRoundsPlayed returns the number of bank turns since the bank last bust
func (g *Game) BankRoundsPlayed() int {
	return g.bankRoundsPlayed
}

func (g *Game) String() string {
	var sb strings.Builder
	sb.WriteString("Bank:\n  ")
	sb.WriteString(g.bank.String())
	sb.WriteString("\nPlayers:\n")
	for _, p := range g.players {
		sb.WriteString("  ")
		sb.WriteString(p.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
