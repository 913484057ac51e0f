package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdforge/lmpgen/pkg/logger"
	"github.com/mdforge/lmpgen/pkg/utils"
)

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write a starter deck",
	Long:  `Write a starter deck document to the given path as a template to edit`,
	Args:  cobra.ExactArgs(1),
	RunE:  initDeck,
}

// starterDeck is a minimal Lennard-Jones NVT run that passes validation
// as written.
const starterDeck = `# Starter deck: Lennard-Jones fluid, NVT equilibration.
units: lj
dimension: 3
boundary: p p p
atom_style: atomic
read_data: data.lj

pair_style: lj/cut 2.5
pair_coeff: "* * 1.0 1.0 2.5"

neighbor: [0.3, bin]
timestep: 0.005
velocity:
  group: all
  style: create
  args: [1.0, 87287]

fix1:
  id: nvt
  group: all
  style: nvt
  args: [temp, 1.0, 1.0, 0.1]

thermo: 100
thermo_style:
  style: custom
  attributes: [step, temp, press, etotal]

run1: 10000
unfix1: nvt
write_restart: lj.final.restart
`

func initDeck(cmd *cobra.Command, args []string) error {
	path := args[0]

	if _, err := os.Stat(path); err == nil {
		ok, err := utils.Confirm(fmt.Sprintf("%s already exists, overwrite?", path))
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("leaving existing deck untouched")
			return nil
		}
	}

	if err := os.WriteFile(path, []byte(starterDeck), 0644); err != nil {
		return fmt.Errorf("failed to write deck: %w", err)
	}
	logger.Successf("wrote starter deck to %s", path)
	return nil
}
