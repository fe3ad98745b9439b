package main

import (
	"github.com/lox/handcricket/cmd/handcricket/shared"
	"github.com/lox/handcricket/internal/detector"
	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/runner"
	"golang.org/x/sync/errgroup"
)

// HeadlessCmd plays against a remote detector, logging instead of drawing
type HeadlessCmd struct {
	GameFlags `embed:""`

	Addr      string `help:"Detector listen address (overrides config)"`
	AutoStart bool   `help:"Start a game immediately instead of waiting for a start command"`
}

func (c *HeadlessCmd) Run(g *Globals) error {
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

	logger, err := shared.SetupLogger(cfg.UI.LogLevel)
	if err != nil {
		return err
	}

	sink, closeAudio := setupAudio(cfg, logger)
	defer closeAudio()

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	engine := newEngine(cfg, logger)

	var r *runner.Runner
	server := detector.NewServer(cfg.Detector.Address, logger,
		detector.WithStaleAfter(cfg.StaleAfter()),
		detector.WithCommandHandler(func(cmd game.Command) bool {
			return r.Send(cmd)
		}),
	)
	r = runner.New(engine, server, sink, cfg.FrameInterval(), logger,
		runner.WithObserver(runner.LogObserver(logger)),
	)
	if c.AutoStart {
		r.Send(game.CommandStart)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return server.ListenAndServe(ctx)
	})
	eg.Go(func() error {
		// A quit from the detector shuts the server down too
		defer cancel()
		return r.Run(ctx)
	})

	logger.Info("Waiting for detector", "addr", cfg.Detector.Address, "fps", cfg.Game.FPS)
	return eg.Wait()
}
