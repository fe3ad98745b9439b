package game

// Round timing is measured in rendered frames, not wall-clock time, so a
// round runs faster or slower with the frame rate.
const (
	// CountdownEnd is the first tick after the "Get Ready" countdown
	CountdownEnd = 5
	// CaptureTick is the single tick on which the gesture is sampled
	CaptureTick = 15
	// ResolveStart is the first tick of result display and scoring
	ResolveStart = 16
	// RoundEndTick is where innings and game-over transitions happen
	RoundEndTick = 25

	// RunCueStart and RunCueEnd bound the running loop, inclusive
	RunCueStart = 10
	RunCueEnd   = 30
)

// Phase is the stage of the game, derived from the round tick
type Phase int

const (
	PhaseIdle        Phase = iota // not started, waiting for the start command
	PhaseCountdown                // ticks 0-4
	PhaseCapturing                // ticks 5-14, waiting for the hand
	PhaseCapture                  // tick 15, gesture sampled
	PhaseResolving                // ticks 16-24, result shown and scored
	PhaseRoundEnd                 // tick 25, innings/game transitions
	PhaseAutoAdvance              // past tick 25, next round begins
	PhaseGameOver                 // outcome announced, clock frozen
)

var phaseNames = map[Phase]string{
	PhaseIdle:        "Idle",
	PhaseCountdown:   "Countdown",
	PhaseCapturing:   "Capturing",
	PhaseCapture:     "Capture",
	PhaseResolving:   "Resolving",
	PhaseRoundEnd:    "RoundEnd",
	PhaseAutoAdvance: "AutoAdvance",
	PhaseGameOver:    "GameOver",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

// PhaseFor maps a round-relative tick of a running game onto its phase.
func PhaseFor(tick int) Phase {
	switch {
	case tick < CountdownEnd:
		return PhaseCountdown
	case tick < CaptureTick:
		return PhaseCapturing
	case tick == CaptureTick:
		return PhaseCapture
	case tick < RoundEndTick:
		return PhaseResolving
	case tick == RoundEndTick:
		return PhaseRoundEnd
	default:
		return PhaseAutoAdvance
	}
}

// inRunWindow reports whether the running loop may be audible at tick
func inRunWindow(tick int) bool {
	return tick >= RunCueStart && tick <= RunCueEnd
}
