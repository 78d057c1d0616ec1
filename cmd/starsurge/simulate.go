package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/starsurge/internal/sim"
)

var (
	flagTicks    int
	flagPilot    string
	flagHold     int
	flagVerify   bool
	flagContinue bool
	flagYAML     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [mode]",
	Short: "Run a headless, seeded simulation",
	Long: `Play a run without a terminal and print a report. The same seed,
pilot and configuration always produce the same state hash.

Pilots:
  idle    - Never moves
  random  - Wanders, changing heading every --hold ticks, and uses powers

Examples:
  starsurge simulate --seed 7 --ticks 3600
  starsurge simulate --pilot random --verify
  starsurge simulate starsurge_endless --yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Number of ticks to simulate")
	simulateCmd.Flags().StringVar(&flagPilot, "pilot", "random", "Input pilot: idle, random")
	simulateCmd.Flags().IntVar(&flagHold, "hold", 30, "Ticks between heading changes for the random pilot")
	simulateCmd.Flags().BoolVar(&flagVerify, "verify", false, "Replay the run and fail if the state hash differs")
	simulateCmd.Flags().BoolVar(&flagContinue, "continue", false, "Continue into endless play after a campaign victory")
	simulateCmd.Flags().BoolVar(&flagYAML, "yaml", false, "Print the report as YAML")
}

func pilotFactory(name string, seed int64, hold int) (func() sim.Pilot, error) {
	switch strings.ToLower(name) {
	case "idle":
		return func() sim.Pilot { return sim.IdlePilot{} }, nil
	case "random":
		return func() sim.Pilot { return sim.NewRandomPilot(seed, hold) }, nil
	}
	return nil, fmt.Errorf("unknown pilot %q (want idle or random)", name)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	gameID := "starsurge"
	if len(args) == 1 {
		gameID = args[0]
	}

	newPilot, err := pilotFactory(flagPilot, flagSeed, flagHold)
	if err != nil {
		return err
	}

	// No terminal to protect here, so logs go to stderr unless redirected.
	logger := appLogger
	if flagLogFile == "" {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "simulate"})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	opts := sim.Options{
		GameID:   gameID,
		Seed:     flagSeed,
		Ticks:    flagTicks,
		TickRate: flagFPS,
		Continue: flagContinue,
	}

	var rep sim.Report
	if flagVerify {
		rep, err = sim.Verify(ctx, opts, newPilot)
	} else {
		opts.Pilot = newPilot()
		rep, err = sim.Run(ctx, opts)
	}
	if err != nil {
		logger.Error("simulation failed", "game", gameID, "seed", flagSeed, "error", err)
		return err
	}
	logger.Info("simulation finished",
		"game", rep.Game,
		"seed", rep.Seed,
		"ticks", rep.Ticks,
		"score", rep.Score,
		"level", rep.Level,
		"hash", rep.Hash,
	)

	if flagYAML {
		return yaml.NewEncoder(os.Stdout).Encode(rep)
	}
	printReport(rep, flagVerify)
	return nil
}

func printReport(rep sim.Report, verified bool) {
	outcome := "running"
	switch {
	case rep.Victory:
		outcome = "victory"
	case rep.GameOver:
		outcome = "game over"
	}

	fmt.Printf("Simulation - %s (seed %d)\n\n", rep.Game, rep.Seed)
	fmt.Printf("  %-8s %d\n", "Ticks", rep.Ticks)
	fmt.Printf("  %-8s %s\n", "Outcome", outcome)
	fmt.Printf("  %-8s %d\n", "Score", rep.Score)
	fmt.Printf("  %-8s %d\n", "Level", rep.Level)
	fmt.Printf("  %-8s %d\n", "Lives", rep.Lives)
	fmt.Printf("  %-8s %s\n", "Hash", rep.Hash)
	if len(rep.LevelTicks) > 0 {
		fmt.Printf("  %-8s %v\n", "Levels", rep.LevelTicks)
	}
	if verified {
		fmt.Println()
		fmt.Println("Replay verified: fresh and reset runs match.")
	}
}
