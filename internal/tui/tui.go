package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/handcricket/internal/audio"
	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/gesture"
	"github.com/lox/handcricket/internal/statistics"
)

const sidebarWidth = 26

// Options configures where the model gets gestures and sends sound
type Options struct {
	// Held is driven by the number keys. Ignored when Source is set.
	Held      *gesture.Held
	// Source overrides the keyboard, e.g. with a detector feed
	Source    gesture.Source
	// Connected reports detector status for the sidebar
	Connected func() bool

	Sink      audio.Sink
	Interval  time.Duration
	ShowClock bool
}

// TickMsg advances the engine by one frame
type TickMsg time.Time

// CommandMsg delivers a command from outside the terminal, such as a
// detector client
type CommandMsg game.Command

// Model is the Bubble Tea model for the game screen
type Model struct {
	engine *game.Engine
	logger *log.Logger

	held      *gesture.Held
	source    gesture.Source
	connected func() bool
	sink      audio.Sink
	interval  time.Duration
	showClock bool

	stats  *statistics.Statistics
	intent game.RenderIntent

	// UI components
	keys       KeyMap
	help       help.Model
	commentary viewport.Model
	lines      []string

	width    int
	height   int
	quitting bool
}

// New creates a model around engine
func New(engine *game.Engine, logger *log.Logger, opts Options) *Model {
	m := &Model{
		engine:    engine,
		logger:    logger.WithPrefix("tui"),
		held:      opts.Held,
		source:    opts.Source,
		connected: opts.Connected,
		sink:      opts.Sink,
		interval:  opts.Interval,
		showClock: opts.ShowClock,
		stats:     &statistics.Statistics{},
		help:      help.New(),
	}
	// Will be properly sized when WindowSizeMsg arrives
	m.commentary = viewport.New(10, 5)

	if m.source == nil {
		if m.held == nil {
			m.held = gesture.NewHeld()
		}
		m.source = m.held
	} else {
		m.held = nil
	}
	if m.sink == nil {
		m.sink = audio.Nop{}
	}
	if m.interval <= 0 {
		m.interval = time.Second / 12
	}
	m.keys = DefaultKeyMap(m.held != nil)
	m.intent = engine.Tick(nil)
	return m
}

// Init starts the frame clock
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.step()
		if m.intent.Quit {
			return m, m.quit()
		}
		return m, m.tick()

	case CommandMsg:
		return m, m.command(game.Command(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, m.command(game.CommandQuit)
		case key.Matches(msg, m.keys.Start):
			return m, m.command(game.CommandStart)
		case key.Matches(msg, m.keys.Restart):
			return m, m.command(game.CommandRestart)
		case key.Matches(msg, m.keys.Hand):
			n, _ := strconv.Atoi(msg.String())
			if err := m.held.Set(n); err != nil {
				m.logger.Warn("Ignoring hand key", "key", msg.String(), "error", err)
			}
			return m, nil
		case key.Matches(msg, m.keys.Lower):
			m.held.Clear()
			return m, nil
		}
	}

	// Everything else scrolls the commentary
	var cmd tea.Cmd
	m.commentary, cmd = m.commentary.Update(msg)
	return m, cmd
}

// command applies cmd to the engine. Quit is handled immediately so the
// stop cues reach the mixer before the program exits.
func (m *Model) command(cmd game.Command) tea.Cmd {
	m.logger.Debug("Command", "command", cmd)
	m.engine.Handle(cmd)
	if cmd == game.CommandQuit {
		m.step()
		return m.quit()
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	return tea.Quit
}

// step runs one engine frame and routes its side effects
func (m *Model) step() {
	ri := m.engine.Tick(m.source.Sample())
	m.sink.Apply(ri.Cues)
	m.stats.RecordAll(ri.Events)
	for _, ev := range ri.Events {
		if ev.Type == game.EventRoundStart || ev.Type == game.EventRestart {
			continue
		}
		m.addCommentary(ev.String())
	}
	m.intent = ri
}

func (m *Model) addCommentary(line string) {
	m.lines = append(m.lines, line)
	m.commentary.SetContent(strings.Join(m.lines, "\n"))

	// Only call GotoBottom if viewport has valid dimensions
	if m.commentary.Height > 0 && m.commentary.Width > 0 {
		m.commentary.GotoBottom()
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpView := m.help.View(m.keys)
	main := m.renderMain()
	sidebar := m.renderSidebar()

	mainWidth := max(m.width-sidebarWidth-4, 1)
	topHeight := max(lipgloss.Height(main), lipgloss.Height(sidebar))

	mainPane := paneStyle.
		BorderForeground(focusColor).
		Width(mainWidth).
		Height(topHeight).
		Render(main)
	sidePane := paneStyle.
		Width(sidebarWidth).
		Height(topHeight).
		Render(sidebar)
	top := lipgloss.JoinHorizontal(lipgloss.Top, mainPane, sidePane)

	// Commentary fills what is left
	m.commentary.Width = max(m.width-2, 1)
	m.commentary.Height = max(m.height-lipgloss.Height(top)-lipgloss.Height(helpView)-2, 1)
	logPane := paneStyle.
		Width(m.commentary.Width).
		Height(m.commentary.Height).
		Render(m.commentary.View())

	return lipgloss.JoinVertical(lipgloss.Left, top, logPane, helpView)
}

// renderMain draws the game panel
func (m *Model) renderMain() string {
	ri := m.intent
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("HAND CRICKET"))
	b.WriteString("\n")
	if m.showClock {
		b.WriteString(ClockStyle.Render(fmt.Sprintf("clock : %d", ri.Tick)))
	}
	b.WriteString("\n\n")

	if ri.Result != "" {
		b.WriteString(ResultStyle.Render(ri.Result))
	}
	b.WriteString("\n")
	b.WriteString(textStyle(ri.Text).Render(ri.Text))
	b.WriteString("\n\n")

	b.WriteString(ScoreStyle.Render(ri.Scoreboard()))
	b.WriteString("\n")
	if ri.Round > 0 {
		b.WriteString(InfoStyle.Render(ri.Progress()))
		if ri.Target > 0 {
			b.WriteString(InfoStyle.Render(fmt.Sprintf("  Target: %d", ri.Target)))
		}
	}
	b.WriteString("\n")

	if art := overlayArt(ri.Overlay); art != "" {
		b.WriteString(OverlayStyle.Render(art))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(ri.Footer))
	return b.String()
}

// renderSidebar draws the hand indicator and session tally
func (m *Model) renderSidebar() string {
	var b strings.Builder

	b.WriteString(m.renderHand())
	b.WriteString("\n\n")

	s := m.stats
	b.WriteString(InfoStyle.Render("Session"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Games: %d\n", s.Games)
	fmt.Fprintf(&b, "  W/L/T: %d/%d/%d\n", s.Wins, s.Losses, s.Ties)
	fmt.Fprintf(&b, "  Win rate: %.0f%%\n", s.WinRate()*100)
	fmt.Fprintf(&b, "  Best innings: %d\n", s.HighestTotal)
	if fav := s.FavouriteMove(); fav > 0 {
		fmt.Fprintf(&b, "  Favourite: %d\n", fav)
	}
	fmt.Fprintf(&b, "  Missed: %d", s.Misses)
	return b.String()
}

func (m *Model) renderHand() string {
	if m.held == nil {
		if m.connected != nil && !m.connected() {
			return WarningStyle.Render("Detector: waiting")
		}
		return SuccessStyle.Render("Detector: connected")
	}
	if r := m.held.Sample(); r != nil {
		return SuccessStyle.Render(fmt.Sprintf("Hand: %d", r.Count))
	}
	return InfoStyle.Render("Hand: down")
}

// Intent returns the most recent frame
func (m *Model) Intent() game.RenderIntent { return m.intent }

// Statistics returns the session tally
func (m *Model) Statistics() *statistics.Statistics { return m.stats }

// Commentary returns the commentary lines so far
func (m *Model) Commentary() []string {
	result := make([]string, len(m.lines))
	copy(result, m.lines)
	return result
}
