package audio

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/wav"
	"github.com/lox/handcricket/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func loadedMixer(t *testing.T) *Mixer {
	t.Helper()
	m := NewMixer(testLogger(), 1)
	for _, s := range game.Sounds() {
		m.Set(s, Synthesize(s))
	}
	return m
}

var (
	runLoop  = game.Cue{Sound: game.SoundRun, Mode: game.CueLoop, Channel: game.ChannelContinuous}
	outOnce  = game.Cue{Sound: game.SoundOut, Mode: game.CueOnce, Channel: game.ChannelEvent}
	winOnce  = game.Cue{Sound: game.SoundWin, Mode: game.CueOnce, Channel: game.ChannelEvent}
	stopRun  = game.Cue{Mode: game.CueStop, Channel: game.ChannelContinuous}
	stopCues = []game.Cue{stopRun, {Mode: game.CueStop, Channel: game.ChannelEvent}}
)

func TestChannelsAreIndependent(t *testing.T) {
	t.Parallel()

	m := loadedMixer(t)
	m.Apply([]game.Cue{runLoop, outOnce})

	s, ok := m.Playing(game.ChannelContinuous)
	require.True(t, ok)
	assert.Equal(t, game.SoundRun, s)
	s, ok = m.Playing(game.ChannelEvent)
	require.True(t, ok)
	assert.Equal(t, game.SoundOut, s)

	m.Apply([]game.Cue{stopRun})
	_, ok = m.Playing(game.ChannelContinuous)
	assert.False(t, ok)
	s, ok = m.Playing(game.ChannelEvent)
	require.True(t, ok, "stopping the loop leaves the event channel alone")
	assert.Equal(t, game.SoundOut, s)
}

func TestStartingReplacesSameChannel(t *testing.T) {
	t.Parallel()

	m := loadedMixer(t)
	m.Apply([]game.Cue{outOnce})
	first := m.channels[game.ChannelEvent].ctrl

	m.Apply([]game.Cue{winOnce})
	s, _ := m.Playing(game.ChannelEvent)
	assert.Equal(t, game.SoundWin, s)
	assert.Nil(t, first.Streamer, "previous stream is ended")
}

func TestMissingSoundIsIgnored(t *testing.T) {
	t.Parallel()

	m := NewMixer(testLogger(), 1)
	assert.NotPanics(t, func() {
		m.Apply([]game.Cue{runLoop, outOnce})
		m.Apply(stopCues)
	})
	_, ok := m.Playing(game.ChannelContinuous)
	assert.False(t, ok)
}

func TestCloseStopsEverything(t *testing.T) {
	t.Parallel()

	m := loadedMixer(t)
	m.Apply([]game.Cue{runLoop, winOnce})
	m.Close()

	_, ok := m.Playing(game.ChannelContinuous)
	assert.False(t, ok)
	_, ok = m.Playing(game.ChannelEvent)
	assert.False(t, ok)
}

func TestSynthesize(t *testing.T) {
	t.Parallel()

	for _, s := range game.Sounds() {
		buf := Synthesize(s)
		assert.Greater(t, buf.Len(), sampleRate.N(200*time.Millisecond), s)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "out.wav"))
	require.NoError(t, err)
	buf := Synthesize(game.SoundOut)
	require.NoError(t, wav.Encode(f, buf.Streamer(0, buf.Len()), format))
	require.NoError(t, f.Close())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Win.wav"), []byte("not a wav"), 0o644))

	m := NewMixer(testLogger(), 1)
	loaded := m.Load(dir, nil, false)
	assert.Equal(t, []game.Sound{game.SoundOut}, loaded)
	assert.True(t, m.Has(game.SoundOut))
	assert.False(t, m.Has(game.SoundWin))

	synth := NewMixer(testLogger(), 1)
	synth.Load(dir, nil, true)
	for _, s := range game.Sounds() {
		assert.True(t, synth.Has(s), s)
	}
}

func TestNop(t *testing.T) {
	t.Parallel()

	var sink Sink = Nop{}
	assert.NotPanics(t, func() { sink.Apply([]game.Cue{runLoop}) })
}
