package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mdforge/lmpgen/pkg/deck"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Show the directive and attribute vocabulary",
	Long:  `Show the directive names and dump/thermo attribute tokens the validator accepts`,
	RunE:  showVocab,
}

func showVocab(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "VOCABULARY\tTOKENS")
	_, _ = fmt.Fprintln(w, "----------\t------")
	_, _ = fmt.Fprintf(w, "directives\t%s\n", strings.Join(deck.KnownDirectives(), " "))
	_, _ = fmt.Fprintf(w, "dump attributes\t%s\n", strings.Join(deck.DumpAttributes(), " "))
	_, _ = fmt.Fprintf(w, "thermo attributes\t%s\n", strings.Join(deck.ThermoAttributes(), " "))
	return w.Flush()
}
