// Package audio plays game cues through a beep mixer with one stream per
// logical channel.
package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/lox/handcricket/internal/game"
)

const sampleRate = beep.SampleRate(44100)

var format = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// DefaultFiles maps each cue to its asset file name
var DefaultFiles = map[game.Sound]string{
	game.SoundOut:  "out.wav",
	game.SoundRun:  "score.wav",
	game.SoundWin:  "Win.wav",
	game.SoundLose: "lose.wav",
	game.SoundTie:  "tie.wav",
}

// Sink executes cue intents
type Sink interface {
	Apply(cues []game.Cue)
}

// Nop discards every cue
type Nop struct{}

func (Nop) Apply([]game.Cue) {}

type channel struct {
	ctrl  *beep.Ctrl
	sound game.Sound
}

// Mixer plays cues on two independent channels. Starting a cue replaces
// whatever the same channel was playing. Cues for sounds that failed to load
// are silently dropped.
type Mixer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	sounds      map[game.Sound]*beep.Buffer
	channels    map[game.Channel]*channel
	volume      float64
	initialized bool
	logger      *log.Logger
}

// NewMixer creates a mixer with no sounds loaded. volume is linear, 0 mutes.
func NewMixer(logger *log.Logger, volume float64) *Mixer {
	return &Mixer{
		mixer:    &beep.Mixer{},
		sounds:   make(map[game.Sound]*beep.Buffer),
		channels: make(map[game.Channel]*channel),
		volume:   volume,
		logger:   logger.WithPrefix("audio"),
	}
}

// Initialize opens the speaker and starts streaming the mixer
func (m *Mixer) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops every channel and releases the speaker
func (m *Mixer) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for ch := range m.channels {
		m.stopLocked(ch)
	}
	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// Set registers buf as the stream for sound, replacing any previous one
func (m *Mixer) Set(sound game.Sound, buf *beep.Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sounds[sound] = buf
}

// Has reports whether sound can be played
func (m *Mixer) Has(sound game.Sound) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sounds[sound]
	return ok
}

// Load decodes the WAV assets in dir. Files that are missing or unreadable
// are logged and left out, or replaced by a synthesized tone when synthesize
// is set. It returns the sounds that were loaded from disk.
func (m *Mixer) Load(dir string, files map[game.Sound]string, synthesize bool) []game.Sound {
	var loaded []game.Sound
	for _, sound := range game.Sounds() {
		name, ok := files[sound]
		if !ok {
			name = DefaultFiles[sound]
		}
		path := filepath.Join(dir, name)

		buf, err := decodeFile(path)
		if err == nil {
			m.Set(sound, buf)
			loaded = append(loaded, sound)
			continue
		}

		if synthesize {
			m.logger.Warn("Sound unavailable, using synthesized tone", "sound", sound, "path", path, "error", err)
			m.Set(sound, Synthesize(sound))
			continue
		}
		m.logger.Warn("Sound unavailable", "sound", sound, "path", path, "error", err)
	}
	return loaded
}

func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, sf, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if sf.SampleRate != sampleRate {
		src = beep.Resample(4, sf.SampleRate, sampleRate, s)
	}
	buf := beep.NewBuffer(format)
	buf.Append(src)
	return buf, nil
}

// Apply executes cues in order
func (m *Mixer) Apply(cues []game.Cue) {
	if len(cues) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, cue := range cues {
		switch cue.Mode {
		case game.CueStop:
			m.stopLocked(cue.Channel)
		case game.CueOnce, game.CueLoop:
			m.playLocked(cue)
		}
	}
}

// Playing reports what a channel was last asked to play
func (m *Mixer) Playing(ch game.Channel) (game.Sound, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.channels[ch]
	if !ok {
		return "", false
	}
	return c.sound, true
}

func (m *Mixer) playLocked(cue game.Cue) {
	m.stopLocked(cue.Channel)

	buf, ok := m.sounds[cue.Sound]
	if !ok {
		m.logger.Debug("Dropping cue for unavailable sound", "cue", cue)
		return
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if cue.Mode == game.CueLoop {
		s = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	}
	ctrl := &beep.Ctrl{Streamer: volume(s, m.volume)}
	m.channels[cue.Channel] = &channel{ctrl: ctrl, sound: cue.Sound}

	m.withSpeaker(func() { m.mixer.Add(ctrl) })
}

func (m *Mixer) stopLocked(ch game.Channel) {
	c, ok := m.channels[ch]
	if !ok {
		return
	}
	delete(m.channels, ch)
	// a nil streamer ends the ctrl and the mixer drops it
	m.withSpeaker(func() { c.ctrl.Streamer = nil })
}

func (m *Mixer) withSpeaker(fn func()) {
	if m.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

func volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
