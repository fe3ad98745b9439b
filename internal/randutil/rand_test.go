package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()

	a, b := New(99), New(99)
	for i := 0; i < 32; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}

	c := New(100)
	assert.NotEqual(t, New(99).Uint64(), c.Uint64())
}

func TestResolve(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(17), Resolve(17))
	assert.NotZero(t, Resolve(0))
}

func TestPick(t *testing.T) {
	t.Parallel()

	rng := New(1)
	items := []int{1, 2, 3, 4, 6}
	seen := map[int]int{}
	for i := 0; i < 1000; i++ {
		v := Pick(rng, items)
		assert.Contains(t, items, v)
		seen[v]++
	}
	assert.Len(t, seen, len(items))
}
