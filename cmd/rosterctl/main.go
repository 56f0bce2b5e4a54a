package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appVersion = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rosterctl",
		Short: "Query player-season records offline",
		Long: `rosterctl runs the player records query engine against a CSV file or URL.

Examples:
  rosterctl query --file players.csv --team lakers --include-stats
  rosterctl query --url https://example.com/players.csv --group-by season
  rosterctl version`,
		SilenceUsage: true,
	}
	root.AddCommand(newQueryCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
