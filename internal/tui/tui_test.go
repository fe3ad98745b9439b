package tui

import (
	"fmt"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/gesture"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type recordingSink struct {
	cues []game.Cue
}

func (s *recordingSink) Apply(cues []game.Cue) { s.cues = append(s.cues, cues...) }

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests
}

func newTestModel(t *testing.T, opts Options, moves ...int) *Model {
	t.Helper()
	n := 0
	engine := game.NewEngine(quietLogger(),
		game.WithOpponent(game.FixedMoves(moves...)),
		game.WithAnimations(AnimationFrames()),
		game.WithGameIDs(func() string { n++; return fmt.Sprintf("tui-%d", n) }),
	)
	m := New(engine, quietLogger(), opts)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func press(m *Model, k string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return cmd
}

func ticks(m *Model, n int) {
	for i := 0; i < n; i++ {
		m.Update(TickMsg{})
	}
}

func TestViewBeforeSizing(t *testing.T) {
	engine := game.NewEngine(quietLogger())
	m := New(engine, quietLogger(), Options{})
	assert.Equal(t, "Loading...", m.View())
	assert.NotNil(t, m.Init())
}

func TestIdleScreen(t *testing.T) {
	m := newTestModel(t, Options{ShowClock: true}, 2)

	view := m.View()
	assert.Contains(t, view, "HAND CRICKET")
	assert.Contains(t, view, game.TextStartPrompt)
	assert.Contains(t, view, "You: 0 | Computer: 0")
	assert.Contains(t, view, "clock : 0")
	assert.Contains(t, view, "Hand: down")
}

func TestKeyboardRound(t *testing.T) {
	sink := &recordingSink{}
	m := newTestModel(t, Options{Sink: sink, ShowClock: true}, 2)

	assert.Nil(t, press(m, "3"))
	assert.Contains(t, m.View(), "Hand: 3")

	press(m, "s")
	// one full round plus the first frame of the next
	ticks(m, game.RoundEndTick+3)

	assert.Equal(t, 3, m.Intent().PlayerScore)
	assert.Equal(t, 2, m.Intent().Round)

	lines := m.Commentary()
	assert.Contains(t, lines, "New game. You bat first.")
	assert.Contains(t, lines, "You showed 3, computer showed 2")
	assert.Contains(t, lines, "You scored 3 runs (total 3)")

	assert.Equal(t, 2, m.Statistics().Rounds)
	assert.Equal(t, 1, m.Statistics().Captures)
	assert.NotEmpty(t, sink.cues, "run loop cues should reach the sink")

	press(m, "0")
	assert.Contains(t, m.View(), "Hand: down")
	assert.Contains(t, m.View(), "Round: 2 | Innings: 1")
}

func TestLostGameShowsCelebration(t *testing.T) {
	m := newTestModel(t, Options{}, 2, 1)
	press(m, "2")
	press(m, "s")

	// out in the first round, then the computer passes 0 in the second
	ticks(m, 2*(game.RoundEndTick+2))

	ri := m.Intent()
	require.True(t, ri.GameOver)
	assert.Equal(t, game.OutcomeLose, ri.Outcome)
	require.NotNil(t, ri.Overlay)
	assert.Equal(t, game.AnimationGameOver, ri.Overlay.Animation)

	view := m.View()
	assert.Contains(t, view, "GAME OVER")
	assert.Contains(t, view, game.TextLose)
	assert.Contains(t, view, game.FooterRestart)
	assert.Contains(t, view, "Target: 1")

	assert.Equal(t, 1, m.Statistics().Losses)
	assert.Equal(t, 1, m.Statistics().Chases)
	assert.Contains(t, m.Commentary(), "Computer chased the target with 1")

	// restart returns to the start prompt
	press(m, "n")
	ticks(m, 1)
	assert.Equal(t, game.TextStartPrompt, m.Intent().Text)
	assert.Contains(t, m.View(), "W/L/T: 0/1/0")
}

func TestQuitKey(t *testing.T) {
	sink := &recordingSink{}
	m := newTestModel(t, Options{Sink: sink}, 2)
	press(m, "s")
	ticks(m, game.RunCueStart+1)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Intent().Quit)
	assert.Empty(t, m.View())

	last := sink.cues[len(sink.cues)-1]
	assert.Equal(t, game.CueStop, last.Mode)
}

func TestDetectorMode(t *testing.T) {
	connected := false
	m := newTestModel(t, Options{
		Source:    gesture.None,
		Held:      gesture.NewHeld(),
		Connected: func() bool { return connected },
	}, 2)

	assert.Contains(t, m.View(), "Detector: waiting")
	connected = true
	assert.Contains(t, m.View(), "Detector: connected")

	// number keys do nothing when a detector supplies the hand
	press(m, "4")
	assert.NotContains(t, m.View(), "Hand: 4")
	assert.NotContains(t, m.View(), "1-6")

	m.Update(CommandMsg(game.CommandStart))
	ticks(m, game.RoundEndTick+1)
	assert.Equal(t, game.TextNotDetected, m.Intent().Text)
	assert.Contains(t, m.Commentary(), "No hand seen, round lost")
}

func TestAnimationFrames(t *testing.T) {
	frames := AnimationFrames()
	require.Len(t, frames, 2)
	assert.Equal(t, len(animations[game.AnimationVictory])*frameHold, frames[game.AnimationVictory])

	assert.Empty(t, overlayArt(nil))
	assert.Empty(t, overlayArt(&game.Overlay{Animation: "fireworks"}))
	assert.Empty(t, overlayArt(&game.Overlay{Animation: game.AnimationVictory, FrameIndex: frames[game.AnimationVictory]}))
	assert.Contains(t, overlayArt(&game.Overlay{Animation: game.AnimationVictory, FrameIndex: frameHold - 1}), "VICTORY")
}
