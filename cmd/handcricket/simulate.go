package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/handcricket/cmd/handcricket/shared"
	"github.com/lox/handcricket/internal/randutil"
	"github.com/lox/handcricket/internal/simulator"
)

// SimulateCmd plays many games with random gestures and prints a summary
type SimulateCmd struct {
	Games    int     `default:"1000" help:"Number of games to simulate"`
	Seed     int64   `default:"0" help:"RNG seed (0 for random)"`
	MissRate float64 `default:"0.05" help:"Chance the camera misses the hand each round"`
	Workers  int     `default:"0" help:"Parallel workers (0 for one per CPU)"`
	Output   string  `short:"o" help:"Also write the statistics as JSON to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.MissRate < 0 || c.MissRate > 1 {
		return fmt.Errorf("miss rate must be between 0 and 1, got %v", c.MissRate)
	}

	// The engine logs every game; keep the console readable
	level := cfg.UI.LogLevel
	if g.LogLevel == "" {
		level = "warn"
	}
	logger, err := shared.SetupLogger(level)
	if err != nil {
		return err
	}

	seed := randutil.Resolve(c.Seed)

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	fmt.Printf("Simulating %d games (seed: %d, miss rate: %.2f)\n", c.Games, seed, c.MissRate)
	start := time.Now()

	stats, err := simulator.New(simulator.Config{
		Games:    c.Games,
		Seed:     seed,
		MissRate: c.MissRate,
		Workers:  c.Workers,
		Logger:   logger,
	}).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, stats)
	fmt.Printf("\nCompleted in %s\n", time.Since(start).Round(time.Millisecond))

	if c.Output != "" {
		if err := stats.Save(c.Output); err != nil {
			return err
		}
		fmt.Printf("Statistics written to %s\n", c.Output)
	}
	return nil
}
