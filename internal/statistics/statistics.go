package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/gesture"
)

// Statistics tallies a session of games from the engine's events
type Statistics struct {
	Games  int
	Wins   int
	Losses int
	Ties   int

	Rounds     int
	Captures   int
	Misses     int
	Dismissals int // both sides, excludes target chases
	Chases     int // games the computer won by passing the target

	PlayerRuns   int
	ComputerRuns int
	HighestTotal int // best single innings by either side

	// Moves counts the player's captured gestures, index is the finger count
	Moves [gesture.MaxCount + 1]int

	// Runs per scoring round while the player bats
	ScoringRounds int
	SumRuns       float64
	SumRuns2      float64 // Sum of squares for variance calculation
	Values        []float64
}

// Record incorporates one engine event
func (s *Statistics) Record(ev game.Event) {
	switch ev.Type {
	case game.EventRoundStart:
		s.Rounds++

	case game.EventCapture:
		s.Captures++
		if ev.PlayerMove >= gesture.MinCount && ev.PlayerMove <= gesture.MaxCount {
			s.Moves[ev.PlayerMove]++
		}

	case game.EventMiss:
		s.Misses++

	case game.EventOut:
		s.Dismissals++

	case game.EventRuns:
		if !ev.PlayerBatting {
			s.ComputerRuns += ev.Runs
			return
		}
		runs := float64(ev.Runs)
		s.PlayerRuns += ev.Runs
		s.ScoringRounds++
		s.SumRuns += runs
		s.SumRuns2 += runs * runs
		s.Values = append(s.Values, runs)

	case game.EventGameOver:
		s.Games++
		switch ev.Outcome {
		case game.OutcomeWin:
			s.Wins++
		case game.OutcomeLose:
			s.Losses++
			if ev.Chased {
				s.Chases++
			}
		case game.OutcomeTie:
			s.Ties++
		}
		s.HighestTotal = max(s.HighestTotal, ev.PlayerScore, ev.ComputerScore)
	}
}

// RecordAll incorporates events in order
func (s *Statistics) RecordAll(events []game.Event) {
	for _, ev := range events {
		s.Record(ev)
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Games += other.Games
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Ties += other.Ties
	s.Rounds += other.Rounds
	s.Captures += other.Captures
	s.Misses += other.Misses
	s.Dismissals += other.Dismissals
	s.Chases += other.Chases
	s.PlayerRuns += other.PlayerRuns
	s.ComputerRuns += other.ComputerRuns
	s.HighestTotal = max(s.HighestTotal, other.HighestTotal)
	for i := range s.Moves {
		s.Moves[i] += other.Moves[i]
	}
	s.ScoringRounds += other.ScoringRounds
	s.SumRuns += other.SumRuns
	s.SumRuns2 += other.SumRuns2
	s.Values = append(s.Values, other.Values...)
}

// WinRate is the share of finished games the player won
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// MissRate is the share of rounds where no hand was seen at capture
func (s *Statistics) MissRate() float64 {
	if s.Captures+s.Misses == 0 {
		return 0
	}
	return float64(s.Misses) / float64(s.Captures+s.Misses)
}

// Mean returns the mean runs per scoring round
func (s *Statistics) Mean() float64 {
	if s.ScoringRounds == 0 {
		return 0
	}
	return s.SumRuns / float64(s.ScoringRounds)
}

// Variance returns the sample variance of runs per scoring round
func (s *Statistics) Variance() float64 {
	if s.ScoringRounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumRuns2 - float64(s.ScoringRounds)*mean*mean) / float64(s.ScoringRounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.ScoringRounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.ScoringRounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median runs per scoring round
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// FavouriteMove is the gesture the player showed most, zero if none
func (s *Statistics) FavouriteMove() int {
	best := 0
	for n := gesture.MinCount; n <= gesture.MaxCount; n++ {
		if s.Moves[n] > s.Moves[best] {
			best = n
		}
	}
	return best
}

// Validate checks the tally is internally consistent
func (s *Statistics) Validate() error {
	if s.Wins+s.Losses+s.Ties != s.Games {
		return fmt.Errorf("outcomes (%d+%d+%d) do not match games (%d)", s.Wins, s.Losses, s.Ties, s.Games)
	}

	if s.Captures+s.Misses > s.Rounds {
		return fmt.Errorf("captures and misses (%d) exceed rounds (%d)", s.Captures+s.Misses, s.Rounds)
	}

	moves := 0
	for _, n := range s.Moves {
		moves += n
	}
	if moves != s.Captures {
		return fmt.Errorf("move distribution (%d) does not match captures (%d)", moves, s.Captures)
	}

	if len(s.Values) != s.ScoringRounds {
		return fmt.Errorf("values array length (%d) does not match scoring rounds (%d)", len(s.Values), s.ScoringRounds)
	}

	if s.Chases > s.Losses {
		return fmt.Errorf("target chases (%d) exceed losses (%d)", s.Chases, s.Losses)
	}

	return nil
}
