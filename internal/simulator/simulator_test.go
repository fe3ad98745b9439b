package simulator

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestNewAppliesDefaults(t *testing.T) {
	sim := New(Config{Games: 3})
	assert.Positive(t, sim.config.Workers)
	assert.Equal(t, DefaultMaxTicks, sim.config.MaxTicks)
	assert.NotNil(t, sim.config.Logger)
}

func TestPlayGameFinishes(t *testing.T) {
	t.Parallel()

	sim := New(Config{Logger: testLogger()})
	stats, err := sim.PlayGame(12345)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Games)
	assert.Equal(t, 1, stats.Wins+stats.Losses+stats.Ties)
	assert.Positive(t, stats.Rounds)
	require.NoError(t, stats.Validate())
}

func TestPlayGameIsDeterministic(t *testing.T) {
	t.Parallel()

	sim := New(Config{Logger: testLogger(), MissRate: 0.1})
	a, err := sim.PlayGame(99)
	require.NoError(t, err)
	b, err := sim.PlayGame(99)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPlayGameTickBound(t *testing.T) {
	t.Parallel()

	sim := New(Config{Logger: testLogger(), MaxTicks: 10})
	_, err := sim.PlayGame(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not finish within 10 ticks")
}

func TestRunMergesAllGames(t *testing.T) {
	t.Parallel()

	stats, err := RunSimulation(context.Background(), 40, 7, 0.05, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 40, stats.Games)
	assert.Positive(t, stats.Misses)

	// scheduling must not change the result
	serial, err := New(Config{Games: 40, Seed: 7, MissRate: 0.05, Workers: 1, Logger: testLogger()}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, serial.Wins, stats.Wins)
	assert.Equal(t, serial.Rounds, stats.Rounds)
	assert.Equal(t, serial.Values, stats.Values)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Config{Games: 10, Logger: testLogger()}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	stats, err := RunSimulation(context.Background(), 5, 3, 0, testLogger())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, stats)
	out := buf.String()
	assert.Contains(t, out, "Games played: 5")
	assert.Contains(t, out, "=== GESTURES ===")
	assert.Contains(t, out, "Hands missed: 0")
}
