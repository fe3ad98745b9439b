package game

import "fmt"

// Sound names a cue asset
type Sound string

const (
	SoundOut  Sound = "out"
	SoundRun  Sound = "run"
	SoundWin  Sound = "win"
	SoundLose Sound = "lose"
	SoundTie  Sound = "tie"
)

// Sounds lists every cue the engine can emit
func Sounds() []Sound {
	return []Sound{SoundOut, SoundRun, SoundWin, SoundLose, SoundTie}
}

// CueMode says what to do with a sound
type CueMode int

const (
	CueOnce CueMode = iota
	CueLoop
	CueStop
)

func (m CueMode) String() string {
	switch m {
	case CueOnce:
		return "once"
	case CueLoop:
		return "loop"
	case CueStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Channel is a logical audio channel. Starting a cue on a channel replaces
// whatever was playing on it; the two channels never interrupt each other.
type Channel int

const (
	ChannelContinuous Channel = iota // looping run cue
	ChannelEvent                     // one-shot result cues
)

func (c Channel) String() string {
	switch c {
	case ChannelContinuous:
		return "continuous"
	case ChannelEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Cue is a request for the audio collaborator. Stop cues carry no sound.
type Cue struct {
	Sound   Sound
	Mode    CueMode
	Channel Channel
}

func (c Cue) String() string {
	if c.Mode == CueStop {
		return fmt.Sprintf("stop(%s)", c.Channel)
	}
	return fmt.Sprintf("%s(%s@%s)", c.Mode, c.Sound, c.Channel)
}

func playOnce(s Sound) Cue { return Cue{Sound: s, Mode: CueOnce, Channel: ChannelEvent} }
func playLoop(s Sound) Cue { return Cue{Sound: s, Mode: CueLoop, Channel: ChannelContinuous} }
func stop(ch Channel) Cue  { return Cue{Mode: CueStop, Channel: ch} }

// Animation names a celebration overlay
type Animation string

const (
	AnimationVictory  Animation = "victory"
	AnimationGameOver Animation = "game_over"
)

// Overlay asks the presentation layer to draw one frame of an animation
type Overlay struct {
	Animation  Animation
	FrameIndex int
}

// Outcome of a finished game from the player's perspective
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
	OutcomeTie
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomeTie:
		return "tie"
	default:
		return "unknown"
	}
}

// Command is an input from the player
type Command int

const (
	CommandStart Command = iota
	CommandRestart
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandStart:
		return "start"
	case CommandRestart:
		return "restart"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ParseCommand maps a command name to a Command
func ParseCommand(name string) (Command, error) {
	switch name {
	case "start", "s":
		return CommandStart, nil
	case "restart", "n":
		return CommandRestart, nil
	case "quit", "q":
		return CommandQuit, nil
	}
	return 0, fmt.Errorf("unknown command: %q", name)
}

// Display text
const (
	TextStartPrompt   = "Press 'S' to Start the Game!"
	TextGetReady      = "Get Ready..."
	TextShowHand      = "Show your hand!"
	TextOut           = "OUT!"
	TextNotDetected   = "Hand not detected!"
	TextChased        = "Computer Won! They chased the target!"
	TextInningsOver   = "Innings Over. Now Computer Bats!"
	TextWin           = "You Won the Game! Press 'n' to restart"
	TextLose          = "You Lost the Game! Press 'n' to restart"
	TextTie           = "It's a Tie! Press 'n' to restart"
	FooterRestart     = "Press 'N' to Restart Game"
	FooterAutoAdvance = "Auto Next Round"
)

// RenderIntent is everything the collaborators need for one frame
type RenderIntent struct {
	GameID string
	Phase  Phase
	Tick   int

	Round         int
	Innings       int
	PlayerBatting bool
	PlayerScore   int
	ComputerScore int
	Target        int
	Out           bool
	GameOver      bool
	Outcome       Outcome

	PlayerMove   int
	ComputerMove int
	Detected     bool

	Text   string // main message
	Result string // moves line during resolution
	Footer string

	Cues    []Cue
	Overlay *Overlay
	Events  []Event
	Quit    bool
}

// Scoreboard renders the score line
func (ri RenderIntent) Scoreboard() string {
	return fmt.Sprintf("You: %d | Computer: %d", ri.PlayerScore, ri.ComputerScore)
}

// Progress renders the round/innings counter
func (ri RenderIntent) Progress() string {
	return fmt.Sprintf("Round: %d | Innings: %d", ri.Round, ri.Innings)
}
