package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/handcricket/cmd/handcricket/shared"
	"github.com/lox/handcricket/internal/detector"
	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/statistics"
	"github.com/lox/handcricket/internal/tui"
	"golang.org/x/sync/errgroup"
)

// PlayCmd runs the game in the terminal
type PlayCmd struct {
	GameFlags `embed:""`

	Detector bool   `help:"Read gestures from the detector websocket instead of the keyboard"`
	Addr     string `help:"Detector listen address (overrides config)"`
	Stats    string `help:"Keep a running tally across sessions in this JSON file"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Detector.Address = c.Addr
	}
	if err := c.apply(cfg); err != nil {
		return err
	}

	// The terminal belongs to bubbletea, so logs go to a file
	logger, logFile, err := shared.SetupFileLogger(cfg.UI.LogFile, cfg.UI.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	sink, closeAudio := setupAudio(cfg, logger)
	defer closeAudio()

	engine := newEngine(cfg, logger, game.WithAnimations(tui.AnimationFrames()))
	opts := tui.Options{
		Sink:      sink,
		Interval:  cfg.FrameInterval(),
		ShowClock: cfg.ShowClock(),
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	var program *tea.Program
	var server *detector.Server
	if c.Detector {
		server = detector.NewServer(cfg.Detector.Address, logger,
			detector.WithStaleAfter(cfg.StaleAfter()),
			detector.WithCommandHandler(func(cmd game.Command) bool {
				program.Send(tui.CommandMsg(cmd))
				return true
			}),
		)
		opts.Source = server
		opts.Connected = func() bool { return server.Connected() > 0 }
	}

	eg, ctx := errgroup.WithContext(ctx)
	model := tui.New(engine, logger, opts)
	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if server != nil {
		eg.Go(func() error {
			return server.ListenAndServe(ctx)
		})
	}
	eg.Go(func() error {
		// Leaving the game stops the detector server too
		defer cancel()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("terminal UI: %w", err)
		}
		return nil
	})

	err = eg.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if c.Stats != "" {
		if serr := saveSession(c.Stats, model.Statistics()); serr != nil {
			logger.Error("Failed to save statistics", "file", c.Stats, "error", serr)
			err = errors.Join(err, serr)
		}
	}
	return err
}

// saveSession folds this session's tally into the file at path
func saveSession(path string, session *statistics.Statistics) error {
	total, err := statistics.Load(path)
	if err != nil {
		return err
	}
	total.Merge(session)
	return total.Save(path)
}
