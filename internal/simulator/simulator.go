package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/gesture"
	"github.com/lox/handcricket/internal/randutil"
	"github.com/lox/handcricket/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxTicks bounds a single simulated game. A game averages a few
// hundred frames; hitting this means the state machine is stuck.
const DefaultMaxTicks = 200_000

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Seed     int64
	MissRate float64 // chance the simulated camera misses the hand
	Workers  int
	MaxTicks int
	Logger   *log.Logger
}

// Simulator plays complete games headlessly with random gestures
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.MaxTicks <= 0 {
		config.MaxTicks = DefaultMaxTicks
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{config: config}
}

// Run plays every game and returns the merged statistics. Game i uses seed
// Seed+i, so results do not depend on scheduling.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	results := make([]*statistics.Statistics, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Games; i++ {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats, err := s.PlayGame(seed)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, r := range results {
		total.Merge(r)
	}

	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return total, nil
}

// PlayGame simulates one complete game from seed
func (s *Simulator) PlayGame(seed int64) (*statistics.Statistics, error) {
	rng := randutil.New(seed)
	engine := game.NewEngine(s.config.Logger,
		game.WithOpponent(game.NewRandomOpponent(rng)),
		game.WithGameIDs(func() string { return fmt.Sprintf("sim-%d", seed) }),
	)
	source := gesture.NewRandom(rng, s.config.MissRate)

	stats := &statistics.Statistics{}
	engine.Start()
	for tick := 0; tick < s.config.MaxTicks; tick++ {
		intent := engine.Tick(source.Sample())
		stats.RecordAll(intent.Events)
		if engine.Concluded() {
			return stats, nil
		}
	}
	return nil, fmt.Errorf("game did not finish within %d ticks (seed: %d)", s.config.MaxTicks, seed)
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, games int, seed int64, missRate float64, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{
		Games:    games,
		Seed:     seed,
		MissRate: missRate,
		Logger:   logger,
	}).Run(ctx)
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics) {
	pct := func(n, of int) float64 {
		if of == 0 {
			return 0
		}
		return float64(n) / float64(of) * 100
	}

	fmt.Fprintf(w, "\n=== RESULTS ===\n")
	fmt.Fprintf(w, "Games played: %d\n", stats.Games)
	fmt.Fprintf(w, "Won: %d (%.1f%%)  Lost: %d (%.1f%%)  Tied: %d (%.1f%%)\n",
		stats.Wins, pct(stats.Wins, stats.Games),
		stats.Losses, pct(stats.Losses, stats.Games),
		stats.Ties, pct(stats.Ties, stats.Games))
	fmt.Fprintf(w, "Lost to a chase: %d\n", stats.Chases)

	fmt.Fprintf(w, "\n=== ROUNDS ===\n")
	fmt.Fprintf(w, "Rounds: %d (%.1f per game)\n", stats.Rounds, float64(stats.Rounds)/float64(max(stats.Games, 1)))
	fmt.Fprintf(w, "Hands missed: %d (%.1f%%)\n", stats.Misses, stats.MissRate()*100)
	fmt.Fprintf(w, "Dismissals: %d\n", stats.Dismissals)
	fmt.Fprintf(w, "Runs: you %d, computer %d\n", stats.PlayerRuns, stats.ComputerRuns)
	fmt.Fprintf(w, "Highest innings: %d\n", stats.HighestTotal)

	low, high := stats.ConfidenceInterval95()
	fmt.Fprintf(w, "\n=== RUNS PER SCORING ROUND ===\n")
	fmt.Fprintf(w, "Mean: %.3f  Median: %.1f  Std Dev: %.3f\n", stats.Mean(), stats.Median(), stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.3f, %.3f]\n", low, high)

	fmt.Fprintf(w, "\n=== GESTURES ===\n")
	for n := gesture.MinCount; n <= gesture.MaxCount; n++ {
		fmt.Fprintf(w, "%d: %d (%.1f%%)\n", n, stats.Moves[n], pct(stats.Moves[n], stats.Captures))
	}
}
