// Package progress shows simulation progress as a terminal progress bar.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"
)

// Interval is the minimum time between redraws
const Interval = 100 * time.Millisecond

const (
	padding  = 2
	maxWidth = 60
)

// ProgressMsg reports the number of completed rounds
type ProgressMsg struct {
	Completed int
	Total     int
}

// DoneMsg ends the display
type DoneMsg struct{}

// Model renders a progress bar with throughput and remaining time
type Model struct {
	bar       progress.Model
	clock     quartz.Clock
	start     time.Time
	completed int
	total     int
	done      bool
}

// NewModel creates a model for a run of total rounds
func NewModel(total int, clock quartz.Clock) Model {
	return Model{
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxWidth-padding)),
		clock: clock,
		start: clock.Now(),
		total: total,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.completed = msg.Completed
		if msg.Total > 0 {
			m.total = msg.Total
		}
		return m, nil

	case DoneMsg:
		m.done = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-padding*2, maxWidth)
		return m, nil
	}
	return m, nil
}

// Percent returns the completed fraction in [0, 1]
func (m Model) Percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(float64(m.completed)/float64(m.total), 1)
}

func (m Model) View() string {
	pad := strings.Repeat(" ", padding)
	elapsed := m.clock.Since(m.start)

	var rate float64
	if elapsed > 0 {
		rate = float64(m.completed) / elapsed.Seconds()
	}

	status := fmt.Sprintf("%d/%d rounds", m.completed, m.total)
	if rate > 0 {
		status += fmt.Sprintf("  %s/s", humanize(rate))
		if !m.done && m.completed < m.total {
			eta := time.Duration(float64(m.total-m.completed) / rate * float64(time.Second))
			status += fmt.Sprintf("  eta %s", eta.Round(time.Second))
		}
	}
	return "\n" + pad + m.bar.ViewAs(m.Percent()) + "\n" + pad + status + "\n"
}

func humanize(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// Reporter drives a progress display from simulation callbacks
type Reporter struct {
	clock quartz.Clock
	send  func(tea.Msg)
	wait  func() error

	mu      sync.Mutex
	last    time.Time
	highest int
}

// Start runs a progress display on w until Finish is called
func Start(w io.Writer, total int, clock quartz.Clock) *Reporter {
	program := tea.NewProgram(NewModel(total, clock),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	errc := make(chan error, 1)
	go func() {
		_, err := program.Run()
		errc <- err
	}()

	return &Reporter{
		clock: clock,
		send:  program.Send,
		wait:  func() error { return <-errc },
	}
}

// Update records progress. Calls closer together than Interval are dropped,
// except the one that completes the run, and so are counts below one already
// seen, since workers may report out of order. Safe for concurrent use.
func (r *Reporter) Update(completed, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if completed < r.highest {
		return
	}
	r.highest = completed

	now := r.clock.Now()
	if completed < total && now.Sub(r.last) < Interval {
		return
	}
	r.last = now
	r.send(ProgressMsg{Completed: completed, Total: total})
}

// Finish stops the display and waits for it to exit
func (r *Reporter) Finish() error {
	r.send(DoneMsg{})
	if r.wait == nil {
		return nil
	}
	return r.wait()
}
