package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starsurge/internal/platform/tui"
	"github.com/vovakirdan/starsurge/internal/registry"
)

var flagEndless bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Fly a run",
	Long: `Start a run in the given mode (default: starsurge).

Controls:
  Arrows/WASD  - Move
  E            - Shield
  Q/Space      - Ion pulse
  R            - Radar
  P/Esc        - Pause
  Enter        - Continue into endless after victory
  N            - New run (after game over)
  Ctrl+S       - Save a screenshot
  Ctrl+C       - Quit

Difficulty options:
  easy   - Five lives, slower respawns, longer bomb warnings
  normal - Configured values
  hard   - Two lives, faster respawns, an extra enemy per level

Examples:
  starsurge play
  starsurge play --endless
  starsurge play --difficulty hard --name ace
  starsurge play --config ./my-starsurge.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Start in endless mode")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "starsurge"
	if len(args) == 1 {
		gameID = args[0]
	}
	if flagEndless {
		gameID = "starsurge_endless"
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'starsurge list' to see available modes)", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, terminalConfig(), tui.WithPlayerName(playerName())); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
