package game

// State is the authoritative game state. It is owned by an Engine and only
// mutated from Engine methods; callers receive copies.
type State struct {
	Tick          int // frames since the current round began
	Round         int
	Innings       int // 1 or 2
	PlayerBatting bool

	PlayerScore   int
	ComputerScore int

	Out             bool // active batter dismissed
	ScoredThisRound bool
	Started         bool

	PlayerMove   int // 0 when no move this round
	ComputerMove int
	Detected     bool // gesture captured this round
}

// NewState returns the not-started configuration
func NewState() State {
	return State{
		Innings:       1,
		PlayerBatting: true,
		Detected:      true,
	}
}

// GameOver reports whether the second-innings batter has been dismissed
func (s State) GameOver() bool {
	return s.Innings == 2 && s.Out
}

// Target is the score the computer needs to win during the second innings,
// zero otherwise.
func (s State) Target() int {
	if s.Innings != 2 {
		return 0
	}
	return s.PlayerScore + 1
}

// BattingSide names who is currently batting
func (s State) BattingSide() string {
	if s.PlayerBatting {
		return "You"
	}
	return "Computer"
}

// clearRound drops the per-round fields ahead of the next capture
func (s *State) clearRound() {
	s.Tick = 0
	s.PlayerMove = 0
	s.ComputerMove = 0
	s.Detected = true
}
