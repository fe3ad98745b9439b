package game

import "fmt"

// EventType represents a game event type with type safety
type EventType string

// EventType constants for notable moments in a game
const (
	EventGameStart    EventType = "game_start"
	EventRoundStart   EventType = "round_start"
	EventCapture      EventType = "capture"
	EventMiss         EventType = "miss"
	EventRuns         EventType = "runs"
	EventOut          EventType = "out"
	EventTargetChased EventType = "target_chased"
	EventInningsBreak EventType = "innings_break"
	EventGameOver     EventType = "game_over"
	EventRestart      EventType = "restart"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is emitted by the engine alongside the intent of the frame it
// happened on. Events feed commentary and statistics; the engine itself
// never reads them back.
type Event struct {
	Type          EventType
	GameID        string
	Round         int
	Innings       int
	PlayerBatting bool

	PlayerMove   int
	ComputerMove int
	Runs         int

	PlayerScore   int
	ComputerScore int
	Outcome       Outcome
	Chased        bool // computer passed the target in this game
}

// String renders the event as a line of commentary
func (e Event) String() string {
	switch e.Type {
	case EventGameStart:
		return "New game. You bat first."
	case EventRoundStart:
		return fmt.Sprintf("Round %d, innings %d", e.Round, e.Innings)
	case EventCapture:
		return fmt.Sprintf("You showed %d, computer showed %d", e.PlayerMove, e.ComputerMove)
	case EventMiss:
		return "No hand seen, round lost"
	case EventRuns:
		return fmt.Sprintf("%s scored %d run%s (total %d)", e.batter(), e.Runs, plural(e.Runs), e.batterScore())
	case EventOut:
		return fmt.Sprintf("%s OUT on %d", e.batter(), e.PlayerMove)
	case EventTargetChased:
		return fmt.Sprintf("Computer chased the target with %d", e.ComputerScore)
	case EventInningsBreak:
		return fmt.Sprintf("Innings over. Computer needs %d", e.PlayerScore+1)
	case EventGameOver:
		return fmt.Sprintf("Game over (%s) %d-%d", e.Outcome, e.PlayerScore, e.ComputerScore)
	case EventRestart:
		return "Game reset"
	default:
		return string(e.Type)
	}
}

func (e Event) batter() string {
	if e.PlayerBatting {
		return "You"
	}
	return "Computer"
}

func (e Event) batterScore() int {
	if e.PlayerBatting {
		return e.PlayerScore
	}
	return e.ComputerScore
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
