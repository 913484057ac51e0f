package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mdforge/lmpgen/pkg/config"
	"github.com/mdforge/lmpgen/pkg/deck"
	"github.com/mdforge/lmpgen/pkg/engine"
	"github.com/mdforge/lmpgen/pkg/logger"
	"github.com/mdforge/lmpgen/pkg/utils"
)

var runCmd = &cobra.Command{
	Use:   "run [deck]",
	Short: "Run a deck through the MD engine",
	Long:  `Validate a deck, emit its command script, and invoke the external MD engine on it`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDeck,
}

func init() {
	runCmd.Flags().String("engine", "", "engine binary (overrides settings)")
}

func runDeck(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	path, err := selectDeckPath(args, settings)
	if err != nil {
		return err
	}

	d, err := deck.LoadFile(path)
	if err != nil {
		return err
	}
	vd, violations := d.Validate()
	if len(violations) > 0 {
		return &deck.ValidationError{Violations: violations}
	}

	scriptPath, err := writeScript(vd, settings.OutputDir)
	if err != nil {
		return err
	}
	logger.Infof("emitted %s", scriptPath)

	binary := settings.Engine
	if flagEngine, _ := cmd.Flags().GetString("engine"); flagEngine != "" {
		binary = flagEngine
	}
	runner := engine.NewRunner(binary)
	runner.Args = settings.EngineArgs
	if err := runner.Available(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		logger.Warn("received interrupt signal, stopping engine...")
		cancel()
	}()

	logger.Section(fmt.Sprintf("Running %s", filepath.Base(path)))
	runID, err := runner.Run(ctx, scriptPath)
	if err != nil {
		return err
	}

	logger.Successf("run %s completed", runID)
	return nil
}

// selectDeckPath resolves the deck to run: the positional argument if given,
// otherwise an interactive pick from the configured deck directories.
func selectDeckPath(args []string, settings *config.Settings) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	decks, err := utils.DiscoverDecks(settings.DeckDirs)
	if err != nil {
		return "", fmt.Errorf("failed to discover decks: %w", err)
	}
	info, err := utils.SelectDeck(decks)
	if err != nil {
		return "", err
	}
	return info.Path, nil
}

func writeScript(vd *deck.ValidatedDeck, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	base := filepath.Base(vd.Deck().Source)
	name := base[:len(base)-len(filepath.Ext(base))] + ".in"
	scriptPath := filepath.Join(outputDir, name)

	f, err := os.Create(scriptPath)
	if err != nil {
		return "", fmt.Errorf("failed to create script file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := vd.Emit(f); err != nil {
		return "", err
	}
	return scriptPath, nil
}
