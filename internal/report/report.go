// Package report renders simulation results as terminal text.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/bankjack/internal/deck"
	"github.com/lox/bankjack/internal/game"
	"github.com/lox/bankjack/internal/simulator"
	"github.com/lox/bankjack/internal/statistics"
)

// Bar scales for the rank and combination tables
const (
	RankBarScale        = 200
	CombinationBarScale = 1000
	DefaultTop          = 40
)

// Printer writes report sections to an output
type Printer struct {
	w   io.Writer
	top int

	header lipgloss.Style
	label  lipgloss.Style
	number lipgloss.Style
	win    lipgloss.Style
	loss   lipgloss.Style
	faint  lipgloss.Style
}

// Option configures a Printer
type Option func(*Printer, *lipgloss.Renderer)

// WithColor forces color on or off. Without it the renderer detects the
// terminal behind the writer.
func WithColor(enabled bool) Option {
	return func(_ *Printer, r *lipgloss.Renderer) {
		if !enabled {
			r.SetColorProfile(termenv.Ascii)
		}
	}
}

// WithTop sets how many combinations each combination table lists
func WithTop(n int) Option {
	return func(p *Printer, _ *lipgloss.Renderer) {
		if n > 0 {
			p.top = n
		}
	}
}

// New creates a Printer writing to w
func New(w io.Writer, opts ...Option) *Printer {
	r := lipgloss.NewRenderer(w)
	p := &Printer{w: w, top: DefaultTop}
	for _, opt := range opts {
		opt(p, r)
	}

	p.header = r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	p.label = r.NewStyle().Foreground(lipgloss.Color("#96CEB4"))
	p.number = r.NewStyle().Foreground(lipgloss.Color("#FFEAA7"))
	p.win = r.NewStyle().Foreground(lipgloss.Color("#96CEB4"))
	p.loss = r.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	p.faint = r.NewStyle().Foreground(lipgloss.Color("#626262"))
	return p
}

// PercentageBar renders pct of max as a run of block characters scaled to
// scale cells. Fractions of a cell are dropped.
func PercentageBar(pct, max float64, scale int) string {
	if max <= 0 || pct <= 0 {
		return ""
	}
	n := int(pct / max * float64(scale))
	return strings.Repeat("█", n)
}

func percentOf(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// Print writes every section for a finished run
func (p *Printer) Print(result *simulator.Result) {
	p.Run(result)
	p.Games(result.Tally)
	p.Net(result.Tally)

	wins, losses := result.Records.Wins(), result.Records.Losses()
	p.OpenRanks("Wins per open card:", statistics.CountByOpenRank(wins), len(wins), p.win)
	p.OpenRanks("Losses per open card:", statistics.CountByOpenRank(losses), len(losses), p.loss)
	p.Combinations("Best open closed combination with bought:", statistics.BoughtCombinations(wins, p.top), len(wins), p.win)
	p.Combinations("Worst open closed combination with bought:", statistics.BoughtCombinations(losses, p.top), len(losses), p.loss)
}

// Run writes the run identity and throughput
func (p *Printer) Run(result *simulator.Result) {
	fmt.Fprintf(p.w, "%s %s\n", p.header.Render("Run"), p.faint.Render(result.RunID))
	fmt.Fprintf(p.w, "  seed %d, %d rounds on %d workers in %s (%.0f rounds/s)\n\n",
		result.Seed, result.Rounds, result.Workers,
		result.Elapsed.Round(time.Millisecond), result.RoundsPerSecond())
}

// Games writes round wins per tracked player and for the bank
func (p *Printer) Games(t *statistics.RoundTally) {
	for _, id := range t.Tracked {
		won := t.GamesWon[id]
		fmt.Fprintf(p.w, "%s %s (%.2f%%)\n",
			p.label.Render(fmt.Sprintf("%-22s", fmt.Sprintf("Games won by player %d:", id))),
			p.number.Render(fmt.Sprintf("%6d", won)),
			t.WinRate(id)*100)
	}
	fmt.Fprintf(p.w, "%s %s (%.2f%%)\n\n",
		p.label.Render(fmt.Sprintf("%-22s", "Games won by bank:")),
		p.number.Render(fmt.Sprintf("%6d", t.BankWins)),
		t.BankWinRate()*100)
}

// Net writes the per-round net result of each tracked player
func (p *Printer) Net(t *statistics.RoundTally) {
	fmt.Fprintln(p.w, p.header.Render("Net per round:"))
	for _, id := range t.Tracked {
		s := t.Net[id]
		if s == nil || s.Rounds == 0 {
			continue
		}
		lo, hi := s.ConfidenceInterval95()
		fmt.Fprintf(p.w, " player %d: %+.4f (95%% CI %+.4f to %+.4f, sd %.4f) %d up, %d even, %d down\n",
			id, s.Mean(), lo, hi, s.StdDev(), s.Wins, s.Pushes, s.Losses)
	}
	fmt.Fprintln(p.w)
}

// OpenRanks writes a table of records per open card rank
func (p *Printer) OpenRanks(title string, counts []statistics.RankCount, total int, bar lipgloss.Style) {
	fmt.Fprintln(p.w, p.header.Render(title))
	for _, c := range counts {
		pct := percentOf(c.Count, total)
		fmt.Fprintf(p.w, " %s: %9d (%5.2f%%) %s\n", c.Rank, c.Count, pct, bar.Render(PercentageBar(pct, 100, RankBarScale)))
	}
}

// Combinations writes a table of bought starting pairs
func (p *Printer) Combinations(title string, combos []statistics.CombinationCount, total int, bar lipgloss.Style) {
	fmt.Fprintln(p.w, p.header.Render(title))
	for _, c := range combos {
		pct := percentOf(c.Count, total)
		fmt.Fprintf(p.w, " %-20s %-6d (%5.4f%%) %s\n",
			combinationHand(c.Combination).String(), c.Count, pct,
			bar.Render(PercentageBar(pct, 100, CombinationBarScale)))
	}
}

// combinationHand builds a face-up hand of hearts so the pair renders with
// its possible totals
func combinationHand(c statistics.Combination) *game.Hand {
	var h game.Hand
	for _, rank := range []deck.Rank{c.High, c.Low} {
		card := deck.NewCard(deck.Hearts, rank)
		card.Open()
		h.Add(card)
	}
	return &h
}
