package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/handcricket/internal/audio"
	"github.com/lox/handcricket/internal/config"
	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/randutil"
)

// loadConfig reads the config file and applies the global overrides
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.UI.LogLevel = g.LogLevel
	}
	return cfg, nil
}

// GameFlags are the per-command overrides of the game block
type GameFlags struct {
	FPS  int    `help:"Frames per second (overrides config)"`
	Seed *int64 `help:"Seed for the computer's moves (overrides config)"`
	Mute bool   `help:"Disable sound"`
}

func (s GameFlags) apply(cfg *config.Config) error {
	if s.FPS > 0 {
		cfg.Game.FPS = s.FPS
	}
	if s.Seed != nil {
		cfg.Game.Seed = *s.Seed
	}
	if s.Mute {
		off := false
		cfg.Audio.Enabled = &off
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// newEngine builds an engine from the game block
func newEngine(cfg *config.Config, logger *log.Logger, opts ...game.Option) *game.Engine {
	seed := randutil.Resolve(cfg.Game.Seed)
	logger.Info("Using seed", "seed", seed)
	opts = append([]game.Option{game.WithOpponent(game.NewRandomOpponent(randutil.New(seed)))}, opts...)
	return game.NewEngine(logger, opts...)
}

// setupAudio opens the speaker and loads the cue sounds. Audio problems are
// never fatal; the game carries on silently.
func setupAudio(cfg *config.Config, logger *log.Logger) (audio.Sink, func()) {
	if !cfg.AudioEnabled() {
		logger.Info("Audio disabled")
		return audio.Nop{}, func() {}
	}

	mixer := audio.NewMixer(logger, cfg.Volume())
	loaded := mixer.Load(cfg.Audio.AssetsDir, cfg.SoundFiles(), cfg.SynthesizeMissing())
	if err := mixer.Initialize(); err != nil {
		logger.Warn("Audio unavailable, continuing without sound", "error", err)
		return audio.Nop{}, func() {}
	}
	logger.Info("Audio ready", "sounds", len(loaded))
	return mixer, mixer.Close
}
