package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/lox/handcricket/internal/game"
)

// note is a frequency held for a duration, zero frequency is a rest
type note struct {
	freq float64
	dur  time.Duration
}

var melodies = map[game.Sound][]note{
	game.SoundOut:  {{220, 120 * time.Millisecond}, {165, 120 * time.Millisecond}, {110, 300 * time.Millisecond}},
	game.SoundRun:  {{440, 60 * time.Millisecond}, {0, 190 * time.Millisecond}, {330, 60 * time.Millisecond}, {0, 190 * time.Millisecond}},
	game.SoundWin:  {{523, 120 * time.Millisecond}, {659, 120 * time.Millisecond}, {784, 120 * time.Millisecond}, {1047, 360 * time.Millisecond}},
	game.SoundLose: {{392, 180 * time.Millisecond}, {330, 180 * time.Millisecond}, {262, 180 * time.Millisecond}, {196, 420 * time.Millisecond}},
	game.SoundTie:  {{440, 200 * time.Millisecond}, {0, 80 * time.Millisecond}, {440, 200 * time.Millisecond}},
}

// Synthesize renders a short stand-in melody for sound
func Synthesize(sound game.Sound) *beep.Buffer {
	buf := beep.NewBuffer(format)
	for _, n := range melodies[sound] {
		buf.Append(newTone(n.freq, sampleRate.N(n.dur)))
	}
	return buf
}

// tone is a sine wave with a short linear attack and release so notes
// don't click when they join.
type tone struct {
	freq  float64
	total int
	pos   int
}

func newTone(freq float64, samples int) *tone {
	return &tone{freq: freq, total: samples}
}

const toneAmplitude = 0.25

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	ramp := sampleRate.N(5 * time.Millisecond)
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		env := 1.0
		if t.pos < ramp {
			env = float64(t.pos) / float64(ramp)
		} else if rem := t.total - t.pos; rem < ramp {
			env = float64(rem) / float64(ramp)
		}

		v := 0.0
		if t.freq > 0 {
			v = toneAmplitude * env * math.Sin(2*math.Pi*t.freq*float64(t.pos)/float64(sampleRate))
		}
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
