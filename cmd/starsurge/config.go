package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starsurge/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a run would use, after the search order
(--config, ~/.starsurge/configs, ./configs, built-in) and the difficulty
preset are applied. Redirect it to a file to start a custom config.

Examples:
  starsurge config > my-starsurge.yaml
  starsurge config --difficulty hard
  starsurge config --defaults`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults file unchanged")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	doc, src, err := config.Load(flagConfig, nil)
	if err != nil {
		return err
	}
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	doc = config.ApplyPreset(doc, preset)

	out, err := config.Marshal(doc)
	if err != nil {
		return err
	}
	fmt.Printf("# source: %s, difficulty: %s\n", src, preset)
	_, err = os.Stdout.Write(out)
	return err
}
