package game

import (
	rand "math/rand/v2"

	"github.com/lox/handcricket/internal/randutil"
)

// ComputerMoves are the values the computer may throw. Five is never played.
var ComputerMoves = []int{1, 2, 3, 4, 6}

// Opponent chooses the computer's move on capture ticks
type Opponent interface {
	Move() int
}

// OpponentFunc adapts a function to Opponent
type OpponentFunc func() int

func (f OpponentFunc) Move() int { return f() }

// RandomOpponent picks uniformly from ComputerMoves
type RandomOpponent struct {
	rng *rand.Rand
}

// NewRandomOpponent returns an opponent drawing from rng
func NewRandomOpponent(rng *rand.Rand) *RandomOpponent {
	return &RandomOpponent{rng: rng}
}

func (o *RandomOpponent) Move() int {
	return randutil.Pick(o.rng, ComputerMoves)
}

// FixedMoves replays moves in order, repeating the last one once exhausted.
// Useful for scripted games.
func FixedMoves(moves ...int) Opponent {
	i := 0
	return OpponentFunc(func() int {
		if len(moves) == 0 {
			return ComputerMoves[0]
		}
		m := moves[min(i, len(moves)-1)]
		i++
		return m
	})
}
