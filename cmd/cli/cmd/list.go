package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mdforge/lmpgen/pkg/config"
	"github.com/mdforge/lmpgen/pkg/utils"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available decks",
	Long:  `List the deck documents found in the configured deck directories`,
	RunE:  listDecks,
}

func listDecks(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	decks, err := utils.DiscoverDecks(settings.DeckDirs)
	if err != nil {
		return fmt.Errorf("failed to discover decks: %w", err)
	}

	if len(decks) == 0 {
		fmt.Println("No decks found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tDIRECTIVES\tRUN STEPS\tSTATUS\tPATH")
	_, _ = fmt.Fprintln(w, "----\t----------\t---------\t------\t----")

	for _, d := range decks {
		status := "valid"
		if d.Violations > 0 {
			status = fmt.Sprintf("%d violations", d.Violations)
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			d.Name, d.Directives, d.RunSteps, status, d.Path)
	}

	return w.Flush()
}
