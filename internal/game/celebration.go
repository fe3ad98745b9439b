package game

// Sequencer plays the end-of-game celebration overlay. It is stepped once per
// rendered frame, independently of the round tick which is frozen by then.
type Sequencer struct {
	frames map[Animation]int

	active Animation // empty when idle
	frame  int
	played map[Animation]bool
}

// NewSequencer creates a sequencer with the frame count of each animation.
// Animations missing from frames have no frames and never draw.
func NewSequencer(frames map[Animation]int) *Sequencer {
	f := make(map[Animation]int, len(frames))
	for k, v := range frames {
		f[k] = max(v, 0)
	}
	return &Sequencer{
		frames: f,
		played: make(map[Animation]bool),
	}
}

func animationFor(o Outcome) (Animation, bool) {
	switch o {
	case OutcomeWin:
		return AnimationVictory, true
	case OutcomeLose:
		return AnimationGameOver, true
	}
	return "", false
}

// Trigger starts the celebration for outcome. Ties have none. A celebration
// can't start while another is running or once either has played this game.
func (s *Sequencer) Trigger(o Outcome) bool {
	anim, ok := animationFor(o)
	if !ok || s.active != "" || s.played[AnimationVictory] || s.played[AnimationGameOver] {
		return false
	}
	s.active = anim
	s.frame = 0
	return true
}

// Step returns the overlay for this frame, or nil when nothing is playing
func (s *Sequencer) Step() *Overlay {
	if s.active == "" {
		return nil
	}
	if s.frame >= s.frames[s.active] {
		s.played[s.active] = true
		s.active = ""
		return nil
	}
	ov := &Overlay{Animation: s.active, FrameIndex: s.frame}
	s.frame++
	return ov
}

// Active reports whether a celebration is currently drawing
func (s *Sequencer) Active() bool { return s.active != "" }

// Played reports whether anim has finished this game
func (s *Sequencer) Played(anim Animation) bool { return s.played[anim] }

// Reset clears playback and played flags
func (s *Sequencer) Reset() {
	s.active = ""
	s.frame = 0
	clear(s.played)
}
