// starsurge is a survive-and-collect arcade game for the terminal.
//
// Usage:
//
//	starsurge play [mode]     - Fly a run (campaign by default)
//	starsurge menu            - Title menu with mode picker and scoreboard
//	starsurge serve           - Host the game over SSH
//	starsurge scores [mode]   - Print the high-score table
//	starsurge simulate        - Run a headless, seeded simulation
//	starsurge config          - Print the effective configuration
//	starsurge list            - List the registered modes
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.starsurge/scores.db)
//	--config <path>      - Use a custom configuration file
//	--difficulty <name>  - easy, normal or hard
//	--log-file <path>    - Write debug logs to a file
//	--name <name>        - Name recorded in the high-score table
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/starsurge/internal/config"
	"github.com/vovakirdan/starsurge/internal/core"
	"github.com/vovakirdan/starsurge/internal/games/starsurge"
	"github.com/vovakirdan/starsurge/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
	flagName       string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starsurge",
	Short: "Starsurge - dodge, collect and survive in your terminal",
	Long: `Starsurge is a survive-and-collect arcade game. Gather gold stars to
clear levels, unlock powers, and outlast the boss fights every fifteen levels.

Available commands:
  play      - Fly a run directly
  menu      - Title menu
  serve     - Host the game over SSH
  scores    - View high scores
  simulate  - Headless seeded run
  config    - Print the effective configuration
  list      - Show registered modes

Examples:
  starsurge play
  starsurge play starsurge_endless --difficulty hard
  starsurge serve --ssh :2222
  starsurge simulate --seed 7 --ticks 3600`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
			return err
		}
		logger, err := newLogger()
		if err != nil {
			return err
		}
		appLogger = logger
		starsurge.SetLogger(logger)
		starsurge.SetConfigPath(flagConfig)
		starsurge.SetDifficultyPreset(flagDifficulty)
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logOutput != nil {
			logOutput.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.starsurge/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal is reserved for the game)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "", "Name for the high-score table (default: $USER)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

var (
	// logOutput is the open log file, if any.
	logOutput io.WriteCloser

	// appLogger is the logger built from --log-file and --log-level.
	appLogger = log.New(io.Discard)
)

// newLogger builds the game logger. Without --log-file, logs are discarded
// so they never draw over the playfield.
func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	if flagLogFile == "" {
		return log.New(io.Discard), nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logOutput = f
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "starsurge",
	}), nil
}

// openStore opens the score database. Failures are reported and the game
// continues without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// playerName is the name recorded in the high-score table.
func playerName() string {
	if flagName != "" {
		return flagName
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return storage.DefaultName
}
