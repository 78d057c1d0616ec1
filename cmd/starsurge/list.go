package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starsurge/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered game modes",
	Long: `List every mode with the best run recorded in the scores database.
A missing database is not an error; the Best column is left empty.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  MODE\tTITLE\tBEST")
	for _, m := range modes {
		best := ""
		if store != nil {
			if n, err := store.BestScore(m.ID); err == nil && n > 0 {
				best = fmt.Sprint(n)
			}
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", m.ID, m.Title, best)
	}
	w.Flush()

	fmt.Println("\nStart a run with: starsurge play <mode>")
}
