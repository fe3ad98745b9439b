// Package config loads the hand cricket HCL configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/handcricket/internal/game"
)

// Config represents the complete configuration
type Config struct {
	Game     GameSettings
	Audio    AudioSettings
	Detector DetectorSettings
	UI       UISettings
}

// GameSettings controls pacing and randomness
type GameSettings struct {
	FPS  int   `hcl:"fps,optional"`
	Seed int64 `hcl:"seed,optional"` // 0 picks one from the clock
}

// AudioSettings controls cue playback
type AudioSettings struct {
	Enabled           *bool             `hcl:"enabled,optional"`
	Volume            *float64          `hcl:"volume,optional"` // 0 mutes
	AssetsDir         string            `hcl:"assets_dir,optional"`
	SynthesizeMissing *bool             `hcl:"synthesize_missing,optional"`
	Sounds            map[string]string `hcl:"sounds,optional"`
}

// DetectorSettings configures the gesture feed server
type DetectorSettings struct {
	Address      string `hcl:"address,optional"`
	StaleAfterMS int    `hcl:"stale_after_ms,optional"`
}

// UISettings contains user interface settings
type UISettings struct {
	LogLevel  string `hcl:"log_level,optional"`
	LogFile   string `hcl:"log_file,optional"`
	ShowClock *bool  `hcl:"show_clock,optional"`
}

// file mirrors Config with every block optional
type file struct {
	Game     *GameSettings     `hcl:"game,block"`
	Audio    *AudioSettings    `hcl:"audio,block"`
	Detector *DetectorSettings `hcl:"detector,block"`
	UI       *UISettings       `hcl:"ui,block"`
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Game: GameSettings{
			FPS: 12,
		},
		Audio: AudioSettings{
			Enabled:           boolPtr(true),
			Volume:            floatPtr(1),
			AssetsDir:         "assets",
			SynthesizeMissing: boolPtr(true),
		},
		Detector: DetectorSettings{
			Address:      "localhost:8090",
			StaleAfterMS: 500,
		},
		UI: UISettings{
			LogLevel:  "info",
			LogFile:   "handcricket.log",
			ShowClock: boolPtr(true),
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults, and values left out of the file keep their default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := DefaultConfig()
	defaults := DefaultConfig()

	if raw.Game != nil {
		config.Game = *raw.Game
		if config.Game.FPS == 0 {
			config.Game.FPS = defaults.Game.FPS
		}
	}

	if raw.Audio != nil {
		config.Audio = *raw.Audio
		if config.Audio.Enabled == nil {
			config.Audio.Enabled = defaults.Audio.Enabled
		}
		if config.Audio.SynthesizeMissing == nil {
			config.Audio.SynthesizeMissing = defaults.Audio.SynthesizeMissing
		}
		if config.Audio.Volume == nil {
			config.Audio.Volume = defaults.Audio.Volume
		}
		if config.Audio.AssetsDir == "" {
			config.Audio.AssetsDir = defaults.Audio.AssetsDir
		}
	}

	if raw.Detector != nil {
		config.Detector = *raw.Detector
		if config.Detector.Address == "" {
			config.Detector.Address = defaults.Detector.Address
		}
		if config.Detector.StaleAfterMS == 0 {
			config.Detector.StaleAfterMS = defaults.Detector.StaleAfterMS
		}
	}

	if raw.UI != nil {
		config.UI = *raw.UI
		if config.UI.LogLevel == "" {
			config.UI.LogLevel = defaults.UI.LogLevel
		}
		if config.UI.LogFile == "" {
			config.UI.LogFile = defaults.UI.LogFile
		}
		if config.UI.ShowClock == nil {
			config.UI.ShowClock = defaults.UI.ShowClock
		}
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.FPS < 1 || c.Game.FPS > 120 {
		return fmt.Errorf("fps must be between 1 and 120, got %d", c.Game.FPS)
	}

	if v := c.Volume(); v < 0 || v > 4 {
		return fmt.Errorf("volume must be between 0 and 4, got %g", v)
	}

	known := make(map[string]bool)
	for _, s := range game.Sounds() {
		known[string(s)] = true
	}
	for name := range c.Audio.Sounds {
		if !known[name] {
			return fmt.Errorf("unknown sound: %s", name)
		}
	}

	if c.Detector.Address == "" {
		return fmt.Errorf("detector address is required")
	}
	if c.Detector.StaleAfterMS <= 0 {
		return fmt.Errorf("detector stale_after_ms must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	return nil
}

// FrameInterval is the time between rendered frames
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Game.FPS)
}

// StaleAfter is how long a detector reading stays current
func (c *Config) StaleAfter() time.Duration {
	return time.Duration(c.Detector.StaleAfterMS) * time.Millisecond
}

// AudioEnabled reports whether sounds should play
func (c *Config) AudioEnabled() bool {
	return c.Audio.Enabled == nil || *c.Audio.Enabled
}

// Volume is the cue playback gain, 1 when unset
func (c *Config) Volume() float64 {
	if c.Audio.Volume == nil {
		return 1
	}
	return *c.Audio.Volume
}

// SynthesizeMissing reports whether missing sounds get a generated stand-in
func (c *Config) SynthesizeMissing() bool {
	return c.Audio.SynthesizeMissing == nil || *c.Audio.SynthesizeMissing
}

// ShowClock reports whether the frame counter is drawn
func (c *Config) ShowClock() bool {
	return c.UI.ShowClock == nil || *c.UI.ShowClock
}

// SoundFiles maps each cue to its file, applying overrides
func (c *Config) SoundFiles() map[game.Sound]string {
	files := make(map[game.Sound]string, len(c.Audio.Sounds))
	for name, path := range c.Audio.Sounds {
		files[game.Sound(name)] = path
	}
	return files
}
