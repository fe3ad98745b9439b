package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		event Event
		want  string
	}{
		{Event{Type: EventGameStart}, "New game. You bat first."},
		{Event{Type: EventRoundStart, Round: 4, Innings: 2}, "Round 4, innings 2"},
		{Event{Type: EventCapture, PlayerMove: 3, ComputerMove: 6}, "You showed 3, computer showed 6"},
		{Event{Type: EventRuns, PlayerBatting: true, Runs: 1, PlayerScore: 7}, "You scored 1 run (total 7)"},
		{Event{Type: EventRuns, Runs: 4, ComputerScore: 9}, "Computer scored 4 runs (total 9)"},
		{Event{Type: EventOut, PlayerBatting: true, PlayerMove: 2}, "You OUT on 2"},
		{Event{Type: EventInningsBreak, PlayerScore: 12}, "Innings over. Computer needs 13"},
		{Event{Type: EventGameOver, Outcome: OutcomeTie, PlayerScore: 5, ComputerScore: 5}, "Game over (tie) 5-5"},
		{Event{Type: EventType("custom")}, "custom"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.event.String())
	}
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]Command{
		"start": CommandStart, "s": CommandStart,
		"restart": CommandRestart, "n": CommandRestart,
		"quit": CommandQuit, "q": CommandQuit,
	} {
		got, err := ParseCommand(name)
		assert.NoError(t, err)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseCommand("pause")
	assert.Error(t, err)
}
