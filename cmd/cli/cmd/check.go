package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mdforge/lmpgen/pkg/deck"
	"github.com/mdforge/lmpgen/pkg/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check <deck>",
	Short: "Validate a deck",
	Long:  `Load a deck document and report every validation violation found`,
	Args:  cobra.ExactArgs(1),
	RunE:  checkDeck,
}

func checkDeck(cmd *cobra.Command, args []string) error {
	path := args[0]

	d, err := deck.LoadFile(path)
	if err != nil {
		return err
	}

	_, violations := d.Validate()
	if len(violations) == 0 {
		logger.Successf("%s is valid: %d directives, %d run steps", path, len(d.Directives), d.Runs())
		return nil
	}

	red := color.New(color.FgRed)
	for _, v := range violations {
		_, _ = red.Fprintf(os.Stderr, "  %s\n", v)
	}
	return fmt.Errorf("%s: %d validation violations", path, len(violations))
}
