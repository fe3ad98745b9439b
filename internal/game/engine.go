package game

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lox/handcricket/internal/gesture"
	"github.com/lox/handcricket/internal/randutil"
)

// Engine is the round clock and state machine. It is not safe for concurrent
// use; a single frame loop owns it and calls Tick once per rendered frame.
type Engine struct {
	state State

	text      string
	result    string
	outcome   Outcome
	concluded bool // outcome announced, fires once per game
	reset     bool // round was reset this frame, skip the increment
	quitting  bool

	runLoop   bool // continuous channel is playing the run loop
	dismissed bool // batter went out this round, keeps the run loop off
	chased    bool

	cues   []Cue
	events []Event

	gameID      string
	newID       func() string
	opponent    Opponent
	celebration *Sequencer
	logger      *log.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithOpponent sets how computer moves are chosen
func WithOpponent(o Opponent) Option {
	return func(e *Engine) { e.opponent = o }
}

// WithAnimations sets the frame count of each celebration overlay
func WithAnimations(frames map[Animation]int) Option {
	return func(e *Engine) { e.celebration = NewSequencer(frames) }
}

// WithGameIDs overrides game ID generation
func WithGameIDs(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// NewEngine creates an engine in the not-started configuration
func NewEngine(logger *log.Logger, opts ...Option) *Engine {
	e := &Engine{
		state:  NewState(),
		logger: logger.WithPrefix("engine"),
		newID: func() string {
			return uuid.Must(uuid.NewV7()).String()
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.opponent == nil {
		e.opponent = NewRandomOpponent(randutil.New(time.Now().UnixNano()))
	}
	if e.celebration == nil {
		e.celebration = NewSequencer(nil)
	}
	return e
}

// Tick advances the game by one frame and returns what to present
func (e *Engine) Tick(sample *gesture.Reading) RenderIntent {
	e.reset = false
	phase := e.Phase()

	switch {
	case !e.state.Started:
		e.text = TextStartPrompt
	case !e.concluded:
		e.advance(sample)
	}
	if e.concluded {
		phase = PhaseGameOver
	}

	e.syncRunLoop()
	overlay := e.celebration.Step()
	intent := e.snapshot(phase, overlay)

	if e.state.Started && !e.concluded && !e.reset {
		e.state.Tick++
	}
	return intent
}

func (e *Engine) advance(sample *gesture.Reading) {
	tick := e.state.Tick
	if tick == 0 {
		e.beginRound()
	}

	switch PhaseFor(tick) {
	case PhaseCountdown:
		e.state.Detected = true
		e.text = TextGetReady
	case PhaseCapturing:
		e.text = TextShowHand
	case PhaseCapture:
		e.capture(sample)
	case PhaseResolving:
		e.resolve()
	case PhaseRoundEnd:
		e.endRound()
	case PhaseAutoAdvance:
		if !e.state.GameOver() {
			e.state.clearRound()
			e.reset = true
		}
	}
}

func (e *Engine) beginRound() {
	e.state.Round++
	e.state.ScoredThisRound = false
	e.dismissed = false
	e.result = ""
	e.emit(EventRoundStart, 0)
	e.logger.Debug("Round start", "round", e.state.Round, "innings", e.state.Innings, "batting", e.state.BattingSide())
}

func (e *Engine) capture(sample *gesture.Reading) {
	if sample == nil {
		e.state.Detected = false
		e.emit(EventMiss, 0)
		return
	}
	if !sample.Valid() {
		e.logger.Warn("Ignoring out of range gesture", "count", sample.Count)
		e.state.Detected = false
		e.emit(EventMiss, 0)
		return
	}

	e.state.Detected = true
	e.state.PlayerMove = sample.Count
	e.state.ComputerMove = e.opponent.Move()
	e.emit(EventCapture, 0)
	e.logger.Debug("Captured", "player", e.state.PlayerMove, "computer", e.state.ComputerMove)
}

func (e *Engine) resolve() {
	if !e.state.Detected {
		e.text = TextNotDetected
		return
	}

	e.result = fmt.Sprintf("You: %d  |  Computer: %d", e.state.PlayerMove, e.state.ComputerMove)
	if e.state.ScoredThisRound {
		return
	}
	e.state.ScoredThisRound = true

	if e.state.PlayerMove == e.state.ComputerMove {
		e.state.Out = true
		e.dismissed = true
		e.text = TextOut
		e.cues = append(e.cues, playOnce(SoundOut))
		e.emit(EventOut, 0)
		e.logger.Debug("Batter out", "batting", e.state.BattingSide(), "move", e.state.PlayerMove)
		return
	}

	if e.state.PlayerBatting {
		runs := e.state.PlayerMove
		e.state.PlayerScore += runs
		e.text = fmt.Sprintf("You scored %d run%s", runs, plural(runs))
		e.emit(EventRuns, runs)
		return
	}

	runs := e.state.ComputerMove
	e.state.ComputerScore += runs
	e.text = fmt.Sprintf("Computer scored %d run%s", runs, plural(runs))
	e.emit(EventRuns, runs)

	if e.state.Innings == 2 && e.state.ComputerScore > e.state.PlayerScore {
		// Target reached; end the innings as though the batter were out so
		// the game concludes on the normal round end path.
		e.state.Out = true
		e.dismissed = true
		e.chased = true
		e.text = TextChased
		e.emit(EventTargetChased, runs)
	}
}

func (e *Engine) endRound() {
	if !e.state.Out {
		return
	}
	if e.state.Innings == 1 {
		e.state.Innings = 2
		e.state.PlayerBatting = false
		e.state.Out = false
		e.text = TextInningsOver
		e.emit(EventInningsBreak, 0)
		e.logger.Info("Innings over", "target", e.state.Target())
		return
	}
	e.conclude()
}

func (e *Engine) conclude() {
	if e.concluded {
		return
	}
	e.concluded = true

	var sound Sound
	switch {
	case e.state.PlayerScore > e.state.ComputerScore:
		e.outcome, e.text, sound = OutcomeWin, TextWin, SoundWin
	case e.state.PlayerScore < e.state.ComputerScore:
		e.outcome, e.text, sound = OutcomeLose, TextLose, SoundLose
	default:
		e.outcome, e.text, sound = OutcomeTie, TextTie, SoundTie
	}
	e.cues = append(e.cues, playOnce(sound))
	e.celebration.Trigger(e.outcome)
	e.emit(EventGameOver, 0)
	e.logger.Info("Game over", "game", e.gameID, "outcome", e.outcome,
		"player", e.state.PlayerScore, "computer", e.state.ComputerScore)
}

// syncRunLoop starts or stops the run loop on edges only, so the loop is never
// started twice.
func (e *Engine) syncRunLoop() {
	want := e.state.Started && !e.concluded && !e.dismissed && !e.quitting && inRunWindow(e.state.Tick)
	if want == e.runLoop {
		return
	}
	e.runLoop = want
	if want {
		e.cues = append(e.cues, playLoop(SoundRun))
	} else {
		e.cues = append(e.cues, stop(ChannelContinuous))
	}
}

func (e *Engine) emit(t EventType, runs int) {
	e.events = append(e.events, Event{
		Type:          t,
		GameID:        e.gameID,
		Round:         e.state.Round,
		Innings:       e.state.Innings,
		PlayerBatting: e.state.PlayerBatting,
		PlayerMove:    e.state.PlayerMove,
		ComputerMove:  e.state.ComputerMove,
		Runs:          runs,
		PlayerScore:   e.state.PlayerScore,
		ComputerScore: e.state.ComputerScore,
		Outcome:       e.outcome,
		Chased:        e.chased,
	})
}

func (e *Engine) snapshot(phase Phase, overlay *Overlay) RenderIntent {
	s := e.state
	ri := RenderIntent{
		GameID:        e.gameID,
		Phase:         phase,
		Tick:          s.Tick,
		Round:         s.Round,
		Innings:       s.Innings,
		PlayerBatting: s.PlayerBatting,
		PlayerScore:   s.PlayerScore,
		ComputerScore: s.ComputerScore,
		Target:        s.Target(),
		Out:           s.Out,
		GameOver:      s.GameOver(),
		Outcome:       e.outcome,
		PlayerMove:    s.PlayerMove,
		ComputerMove:  s.ComputerMove,
		Detected:      s.Detected,
		Text:          e.text,
		Result:        e.result,
		Cues:          e.cues,
		Overlay:       overlay,
		Events:        e.events,
		Quit:          e.quitting,
	}
	switch {
	case s.GameOver():
		ri.Footer = FooterRestart
	case s.Started:
		ri.Footer = FooterAutoAdvance
	}
	e.cues = nil
	e.events = nil
	return ri
}

// Start begins a game. It is ignored once a game is running.
func (e *Engine) Start() bool {
	if e.state.Started {
		return false
	}
	e.state.Started = true
	e.state.Tick = 0
	e.text = ""
	e.gameID = e.newID()
	e.emit(EventGameStart, 0)
	e.logger.Info("Game started", "game", e.gameID)
	return true
}

// Restart returns the engine to the not-started configuration, silencing
// both audio channels. It is only permitted once the game is over.
func (e *Engine) Restart() bool {
	if !e.state.GameOver() {
		return false
	}
	e.emit(EventRestart, 0)
	e.logger.Info("Game restarted", "game", e.gameID)

	e.state = NewState()
	e.text = ""
	e.result = ""
	e.outcome = OutcomeNone
	e.concluded = false
	e.dismissed = false
	e.chased = false
	e.runLoop = false
	e.celebration.Reset()
	e.cues = append(e.cues, stop(ChannelContinuous), stop(ChannelEvent))
	return true
}

// Quit silences audio and marks subsequent intents as quitting
func (e *Engine) Quit() {
	if e.quitting {
		return
	}
	e.quitting = true
	e.runLoop = false
	e.cues = append(e.cues, stop(ChannelContinuous), stop(ChannelEvent))
}

// Handle dispatches a player command, reporting whether it changed anything
func (e *Engine) Handle(cmd Command) bool {
	var ok bool
	switch cmd {
	case CommandStart:
		ok = e.Start()
	case CommandRestart:
		ok = e.Restart()
	case CommandQuit:
		e.Quit()
		ok = true
	}
	if !ok {
		e.logger.Debug("Ignoring command", "command", cmd, "phase", e.Phase())
	}
	return ok
}

// Phase is the phase the next Tick will process
func (e *Engine) Phase() Phase {
	switch {
	case !e.state.Started:
		return PhaseIdle
	case e.concluded:
		return PhaseGameOver
	default:
		return PhaseFor(e.state.Tick)
	}
}

// State returns a copy of the game state
func (e *Engine) State() State { return e.state }

// Outcome is the announced result, OutcomeNone until the game concludes
func (e *Engine) Outcome() Outcome { return e.outcome }

// Concluded reports whether the outcome has been announced
func (e *Engine) Concluded() bool { return e.concluded }

// GameID identifies the current game; empty before the first start
func (e *Engine) GameID() string { return e.gameID }

// Celebration exposes the overlay sequencer for inspection
func (e *Engine) Celebration() *Sequencer { return e.celebration }
