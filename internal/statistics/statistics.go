package statistics

import (
	"fmt"
	"math"
)

// Statistics tracks the net result of one player over many rounds, in
// currency units per round.
type Statistics struct {
	Rounds int
	Sum    float64
	SumSq  float64 // Sum of squares for variance calculation

	Wins   int // Rounds finished above the starting balance
	Pushes int // Rounds finished exactly at the starting balance
	Losses int // Rounds finished below the starting balance
}

// Add incorporates the net result of a single round
func (s *Statistics) Add(net int) {
	v := float64(net)
	s.Rounds++
	s.Sum += v
	s.SumSq += v * v

	switch {
	case net > 0:
		s.Wins++
	case net < 0:
		s.Losses++
	default:
		s.Pushes++
	}
}

// Merge folds another set of statistics into s
func (s *Statistics) Merge(o Statistics) {
	s.Rounds += o.Rounds
	s.Sum += o.Sum
	s.SumSq += o.SumSq
	s.Wins += o.Wins
	s.Pushes += o.Pushes
	s.Losses += o.Losses
}

// Mean returns the average net result per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance of the net results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of the net results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Validate checks that the outcome counters agree with the round count
func (s *Statistics) Validate() error {
	if s.Wins+s.Pushes+s.Losses != s.Rounds {
		return fmt.Errorf("outcome counts (%d wins, %d pushes, %d losses) do not match %d rounds",
			s.Wins, s.Pushes, s.Losses, s.Rounds)
	}
	return nil
}
