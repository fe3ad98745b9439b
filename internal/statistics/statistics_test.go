package statistics

import (
	"math"
	"testing"

	"github.com/lox/handcricket/internal/game"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.WinRate() != 0 {
		t.Errorf("Expected win rate of 0 for empty stats, got %f", stats.WinRate())
	}
	if stats.FavouriteMove() != 0 {
		t.Errorf("Expected no favourite move, got %d", stats.FavouriteMove())
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected empty stats to validate, got %v", err)
	}
}

// gameEvents is a complete game: the player scores 4 and 2, is bowled,
// then the computer scores 3 and passes the target with 6.
func gameEvents() []game.Event {
	return []game.Event{
		{Type: game.EventGameStart},
		{Type: game.EventRoundStart, Round: 1, Innings: 1, PlayerBatting: true},
		{Type: game.EventCapture, PlayerMove: 4, ComputerMove: 1, PlayerBatting: true},
		{Type: game.EventRuns, Runs: 4, PlayerBatting: true, PlayerScore: 4},
		{Type: game.EventRoundStart, Round: 2, Innings: 1, PlayerBatting: true},
		{Type: game.EventCapture, PlayerMove: 2, ComputerMove: 6, PlayerBatting: true},
		{Type: game.EventRuns, Runs: 2, PlayerBatting: true, PlayerScore: 6},
		{Type: game.EventRoundStart, Round: 3, Innings: 1, PlayerBatting: true},
		{Type: game.EventMiss},
		{Type: game.EventRoundStart, Round: 4, Innings: 1, PlayerBatting: true},
		{Type: game.EventCapture, PlayerMove: 3, ComputerMove: 3, PlayerBatting: true},
		{Type: game.EventOut, PlayerBatting: true},
		{Type: game.EventInningsBreak, PlayerScore: 6},
		{Type: game.EventRoundStart, Round: 5, Innings: 2},
		{Type: game.EventCapture, PlayerMove: 2, ComputerMove: 3},
		{Type: game.EventRuns, Runs: 3, ComputerScore: 3, PlayerScore: 6},
		{Type: game.EventRoundStart, Round: 6, Innings: 2},
		{Type: game.EventCapture, PlayerMove: 2, ComputerMove: 6},
		{Type: game.EventRuns, Runs: 6, ComputerScore: 9, PlayerScore: 6},
		{Type: game.EventTargetChased, ComputerScore: 9, PlayerScore: 6, Chased: true},
		{Type: game.EventGameOver, Outcome: game.OutcomeLose, ComputerScore: 9, PlayerScore: 6, Chased: true},
	}
}

func TestStatistics_RecordGame(t *testing.T) {
	stats := &Statistics{}
	stats.RecordAll(gameEvents())

	if stats.Games != 1 || stats.Losses != 1 || stats.Wins != 0 {
		t.Errorf("Expected one loss, got games=%d wins=%d losses=%d", stats.Games, stats.Wins, stats.Losses)
	}
	if stats.Rounds != 6 {
		t.Errorf("Expected 6 rounds, got %d", stats.Rounds)
	}
	if stats.Captures != 5 || stats.Misses != 1 {
		t.Errorf("Expected 5 captures and 1 miss, got %d and %d", stats.Captures, stats.Misses)
	}
	if stats.Dismissals != 1 || stats.Chases != 1 {
		t.Errorf("Expected 1 dismissal and 1 chase, got %d and %d", stats.Dismissals, stats.Chases)
	}
	if stats.PlayerRuns != 6 || stats.ComputerRuns != 9 {
		t.Errorf("Expected runs 6-9, got %d-%d", stats.PlayerRuns, stats.ComputerRuns)
	}
	if stats.HighestTotal != 9 {
		t.Errorf("Expected highest total 9, got %d", stats.HighestTotal)
	}
	if stats.FavouriteMove() != 2 {
		t.Errorf("Expected favourite move 2, got %d", stats.FavouriteMove())
	}
	if stats.Mean() != 3 {
		t.Errorf("Expected mean of 3 runs, got %f", stats.Mean())
	}
	if math.Abs(stats.MissRate()-1.0/6) > 1e-9 {
		t.Errorf("Expected miss rate of 1/6, got %f", stats.MissRate())
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_Variance(t *testing.T) {
	stats := &Statistics{}
	for _, r := range []int{1, 2, 3, 4, 6} {
		stats.Record(game.Event{Type: game.EventRuns, Runs: r, PlayerBatting: true})
	}

	if stats.Mean() != 3.2 {
		t.Errorf("Expected mean of 3.2, got %f", stats.Mean())
	}
	// sample variance of {1,2,3,4,6}
	if math.Abs(stats.Variance()-3.7) > 1e-9 {
		t.Errorf("Expected variance of 3.7, got %f", stats.Variance())
	}
	if stats.Median() != 3 {
		t.Errorf("Expected median of 3, got %f", stats.Median())
	}
	if stats.Percentile(1) != 6 {
		t.Errorf("Expected p100 of 6, got %f", stats.Percentile(1))
	}
	lo, hi := stats.ConfidenceInterval95()
	if lo >= stats.Mean() || hi <= stats.Mean() {
		t.Errorf("Expected interval around mean, got [%f, %f]", lo, hi)
	}
}

func TestStatistics_Merge(t *testing.T) {
	a, b := &Statistics{}, &Statistics{}
	a.RecordAll(gameEvents())
	b.RecordAll(gameEvents())
	b.Record(game.Event{Type: game.EventGameOver, Outcome: game.OutcomeTie, PlayerScore: 12})

	a.Merge(b)
	if a.Games != 3 || a.Losses != 2 || a.Ties != 1 {
		t.Errorf("Expected 3 games (2 losses, 1 tie), got %d (%d, %d)", a.Games, a.Losses, a.Ties)
	}
	if a.HighestTotal != 12 {
		t.Errorf("Expected highest total 12, got %d", a.HighestTotal)
	}
	if len(a.Values) != a.ScoringRounds {
		t.Errorf("Expected %d values, got %d", a.ScoringRounds, len(a.Values))
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Expected merged stats to validate, got %v", err)
	}
}

func TestStatistics_ValidateCatchesMismatch(t *testing.T) {
	stats := &Statistics{Games: 2, Wins: 1}
	if err := stats.Validate(); err == nil {
		t.Error("Expected outcome mismatch error")
	}

	stats = &Statistics{Captures: 1, Rounds: 1}
	if err := stats.Validate(); err == nil {
		t.Error("Expected move distribution error")
	}
}

// abandonedEvents is a game restarted after the computer passed the target
// but before the result was announced.
func abandonedEvents() []game.Event {
	return []game.Event{
		{Type: game.EventGameStart},
		{Type: game.EventRoundStart, Round: 1, Innings: 1, PlayerBatting: true},
		{Type: game.EventCapture, PlayerMove: 3, ComputerMove: 3, PlayerBatting: true},
		{Type: game.EventOut, PlayerBatting: true},
		{Type: game.EventInningsBreak},
		{Type: game.EventRoundStart, Round: 2, Innings: 2},
		{Type: game.EventCapture, PlayerMove: 1, ComputerMove: 4},
		{Type: game.EventRuns, Runs: 4, ComputerScore: 4},
		{Type: game.EventTargetChased, ComputerScore: 4, Chased: true},
		{Type: game.EventRestart, ComputerScore: 4, Chased: true},
	}
}

func TestStatistics_RestartBeforeConclusion(t *testing.T) {
	stats := &Statistics{}
	stats.RecordAll(abandonedEvents())

	if stats.Games != 0 || stats.Losses != 0 {
		t.Errorf("Expected no finished games, got games=%d losses=%d", stats.Games, stats.Losses)
	}
	if stats.Chases != 0 {
		t.Errorf("Expected unfinished chase to be ignored, got %d", stats.Chases)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected abandoned game to validate, got %v", err)
	}

	stats.RecordAll(gameEvents())
	if stats.Chases != 1 || stats.Losses != 1 {
		t.Errorf("Expected 1 chase and 1 loss, got %d and %d", stats.Chases, stats.Losses)
	}
}
