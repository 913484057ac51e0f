package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdforge/lmpgen/pkg/deck"
	"github.com/mdforge/lmpgen/pkg/logger"
)

var emitCmd = &cobra.Command{
	Use:   "emit <deck>",
	Short: "Emit the engine command script for a deck",
	Long:  `Validate a deck and write the ordered engine command script it describes`,
	Args:  cobra.ExactArgs(1),
	RunE:  emitDeck,
}

func init() {
	emitCmd.Flags().StringP("output", "o", "", "write the script to a file instead of stdout")
}

func emitDeck(cmd *cobra.Command, args []string) error {
	path := args[0]

	d, err := deck.LoadFile(path)
	if err != nil {
		return err
	}
	vd, violations := d.Validate()
	if len(violations) > 0 {
		return &deck.ValidationError{Violations: violations}
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return vd.Emit(os.Stdout)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := vd.Emit(f); err != nil {
		return err
	}
	logger.Successf("wrote %s", output)
	return nil
}
