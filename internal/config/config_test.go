package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/handcricket/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "handcricket.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
game {
  fps  = 30
  seed = 42
}

audio {
  enabled = false
  volume  = 0.5
  sounds = {
    win = "fanfare.wav"
  }
}

detector {
  address = "0.0.0.0:9000"
}

ui {
  log_level  = "debug"
  show_clock = false
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 30, cfg.Game.FPS)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.False(t, cfg.AudioEnabled())
	assert.True(t, cfg.SynthesizeMissing(), "unset keeps default")
	assert.Equal(t, 0.5, cfg.Volume())
	assert.Equal(t, "assets", cfg.Audio.AssetsDir)
	assert.Equal(t, map[game.Sound]string{game.SoundWin: "fanfare.wav"}, cfg.SoundFiles())
	assert.Equal(t, "0.0.0.0:9000", cfg.Detector.Address)
	assert.Equal(t, 500*time.Millisecond, cfg.StaleAfter())
	assert.Equal(t, "debug", cfg.UI.LogLevel)
	assert.Equal(t, "handcricket.log", cfg.UI.LogFile)
	assert.False(t, cfg.ShowClock())
	assert.Equal(t, time.Second/30, cfg.FrameInterval())
}

func TestLoadPartialFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "ui {\n  log_file = \"x.log\"\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Game.FPS)
	assert.True(t, cfg.AudioEnabled())
	assert.Equal(t, "x.log", cfg.UI.LogFile)
	assert.Equal(t, "info", cfg.UI.LogLevel)
}

func TestLoadKeepsZeroVolume(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "audio {\n  volume = 0\n}\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.0, cfg.Volume())

	cfg, err = Load(writeConfig(t, "audio {\n  enabled = true\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.Volume())
}

func TestLoadInvalidHCL(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "game {\n  fps = \n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "game {\n  frames = 3\n}\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero fps", func(c *Config) { c.Game.FPS = 0 }, "fps"},
		{"negative volume", func(c *Config) { c.Audio.Volume = floatPtr(-1) }, "volume"},
		{"unknown sound", func(c *Config) { c.Audio.Sounds = map[string]string{"boo": "x.wav"} }, "unknown sound"},
		{"empty address", func(c *Config) { c.Detector.Address = "" }, "address"},
		{"stale", func(c *Config) { c.Detector.StaleAfterMS = -5 }, "stale_after_ms"},
		{"log level", func(c *Config) { c.UI.LogLevel = "loud" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
