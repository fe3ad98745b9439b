// Package runner drives a game engine from a clock instead of a terminal
// UI, for headless play against a remote detector.
package runner

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/handcricket/internal/audio"
	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/gesture"
)

// ErrQuit is returned once the engine has been asked to quit
var ErrQuit = errors.New("quit requested")

// Observer receives every intent after its cues have been applied
type Observer func(game.RenderIntent)

// Runner owns an engine and ticks it at a fixed interval. Commands from other
// goroutines are queued and applied at the start of the next frame.
type Runner struct {
	engine   *game.Engine
	source   gesture.Source
	sink     audio.Sink
	observe  Observer
	clock    quartz.Clock
	interval time.Duration
	commands chan game.Command
	logger   *log.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithClock sets the clock that paces frames
func WithClock(clock quartz.Clock) Option {
	return func(r *Runner) { r.clock = clock }
}

// WithObserver sets a callback for each frame's intent
func WithObserver(fn Observer) Option {
	return func(r *Runner) { r.observe = fn }
}

// New creates a runner ticking engine every interval
func New(engine *game.Engine, source gesture.Source, sink audio.Sink, interval time.Duration, logger *log.Logger, opts ...Option) *Runner {
	r := &Runner{
		engine:   engine,
		source:   source,
		sink:     sink,
		observe:  func(game.RenderIntent) {},
		clock:    quartz.NewReal(),
		interval: interval,
		commands: make(chan game.Command, 16),
		logger:   logger.WithPrefix("runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sink == nil {
		r.sink = audio.Nop{}
	}
	if r.source == nil {
		r.source = gesture.None
	}
	return r
}

// Send queues a command for the next frame. It never blocks; commands
// arriving faster than frames are dropped.
func (r *Runner) Send(cmd game.Command) bool {
	select {
	case r.commands <- cmd:
		return true
	default:
		r.logger.Warn("Dropping command, queue full", "command", cmd)
		return false
	}
}

// Step runs a single frame
func (r *Runner) Step() game.RenderIntent {
	for {
		select {
		case cmd := <-r.commands:
			r.engine.Handle(cmd)
			continue
		default:
		}
		break
	}

	intent := r.engine.Tick(r.source.Sample())
	r.sink.Apply(intent.Cues)
	r.observe(intent)
	return intent
}

// Start begins ticking in the background. The returned waiter yields
// ErrQuit once the engine quits, or the context error.
func (r *Runner) Start(ctx context.Context) quartz.Waiter {
	r.logger.Info("Starting frame loop", "interval", r.interval)
	return r.clock.TickerFunc(ctx, r.interval, func() error {
		if intent := r.Step(); intent.Quit {
			return ErrQuit
		}
		return nil
	}, "runner")
}

// Run ticks until the engine quits or ctx is cancelled
func (r *Runner) Run(ctx context.Context) error {
	err := r.Start(ctx).Wait()
	if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// LogObserver logs events and text changes, for running without a screen
func LogObserver(logger *log.Logger) Observer {
	logger = logger.WithPrefix("game")
	var lastText, lastResult string
	return func(ri game.RenderIntent) {
		for _, ev := range ri.Events {
			logger.Info(ev.String(), "event", ev.Type, "round", ev.Round)
		}
		if ri.Text != lastText && ri.Text != "" {
			logger.Info(ri.Text, "score", ri.Scoreboard(), "phase", ri.Phase)
		}
		if ri.Result != lastResult && ri.Result != "" {
			logger.Info(ri.Result)
		}
		if ri.Overlay != nil && ri.Overlay.FrameIndex == 0 {
			logger.Info("Celebration", "animation", ri.Overlay.Animation)
		}
		lastText, lastResult = ri.Text, ri.Result
	}
}
