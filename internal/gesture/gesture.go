// Package gesture defines hand gesture readings and the sources that produce them.
//
// A Source is sampled once per rendered frame. It returns nil when no hand is
// visible, otherwise a Reading carrying a finger count in the range 1–6.
package gesture

import (
	"fmt"
	"sync"

	rand "math/rand/v2"
)

// Finger-count bounds for a valid reading
const (
	MinCount = 1
	MaxCount = 6
)

// Reading is a single recognised hand gesture
type Reading struct {
	Count      int     `json:"count"`
	Handedness string  `json:"handedness,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Valid reports whether the finger count is within 1–6
func (r Reading) Valid() bool {
	return r.Count >= MinCount && r.Count <= MaxCount
}

func (r Reading) String() string {
	if r.Handedness == "" {
		return fmt.Sprintf("%d", r.Count)
	}
	return fmt.Sprintf("%d (%s)", r.Count, r.Handedness)
}

// Source supplies zero-or-one gesture per frame
type Source interface {
	Sample() *Reading
}

// SourceFunc adapts a function to the Source interface
type SourceFunc func() *Reading

// Sample implements Source
func (f SourceFunc) Sample() *Reading { return f() }

// None is a Source that never sees a hand
var None Source = SourceFunc(func() *Reading { return nil })

// Held is a latched gesture, set by an input device and held until cleared.
// It is safe for concurrent use.
type Held struct {
	mu      sync.RWMutex
	reading *Reading
}

// NewHeld creates an empty latch
func NewHeld() *Held {
	return &Held{}
}

// Set raises a hand showing count fingers
func (h *Held) Set(count int) error {
	r := Reading{Count: count, Handedness: "Keyboard", Confidence: 1}
	if !r.Valid() {
		return fmt.Errorf("finger count must be between %d and %d, got %d", MinCount, MaxCount, count)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reading = &r
	return nil
}

// Clear lowers the hand
func (h *Held) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reading = nil
}

// Sample implements Source
func (h *Held) Sample() *Reading {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.reading == nil {
		return nil
	}
	r := *h.reading
	return &r
}

// Scripted replays a fixed sequence of readings, one per Sample call.
// A nil entry means no hand for that frame. Once exhausted it keeps
// returning nil.
type Scripted struct {
	mu    sync.Mutex
	queue []*Reading
}

// NewScripted creates a scripted source from the given frames
func NewScripted(frames ...*Reading) *Scripted {
	return &Scripted{queue: frames}
}

// Push appends frames to the script
func (s *Scripted) Push(frames ...*Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, frames...)
}

// Remaining returns the number of frames not yet sampled
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Sample implements Source
func (s *Scripted) Sample() *Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil
	}
	r := s.queue[0]
	s.queue = s.queue[1:]
	return r
}

// Show is shorthand for a valid reading of count fingers
func Show(count int) *Reading {
	return &Reading{Count: count, Confidence: 1}
}

// Random produces uniformly distributed finger counts, missing the hand
// with the configured probability. Not safe for concurrent use.
type Random struct {
	rng      *rand.Rand
	missRate float64
}

// NewRandom creates a random source. missRate is clamped to [0, 1].
func NewRandom(rng *rand.Rand, missRate float64) *Random {
	return &Random{rng: rng, missRate: min(max(missRate, 0), 1)}
}

// Sample implements Source
func (r *Random) Sample() *Reading {
	if r.missRate > 0 && r.rng.Float64() < r.missRate {
		return nil
	}
	return Show(MinCount + r.rng.IntN(MaxCount-MinCount+1))
}
